package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tlecomte/formatrack/internal/domain"
)

// EquipeRepository implémente repository.EquipeRepository pour PostgreSQL
type EquipeRepository struct {
	db *pgxpool.Pool
}

// NewEquipeRepository crée un nouveau EquipeRepository
func NewEquipeRepository(db *pgxpool.Pool) *EquipeRepository {
	return &EquipeRepository{db: db}
}

const equipeColumns = `id, nom, code, adresse, actif, entreprise_id`

func scanEquipe(row pgx.Row, e *domain.Equipe) error {
	return row.Scan(&e.ID, &e.Nom, &e.Code, &e.Adresse, &e.Actif, &e.EntrepriseID)
}

// Create insère une nouvelle équipe
func (r *EquipeRepository) Create(ctx context.Context, e *domain.Equipe) error {
	query := `
		INSERT INTO equipes (id, nom, code, adresse, actif, entreprise_id)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query, e.ID, e.Nom, e.Code, e.Adresse, e.Actif, e.EntrepriseID)
	return err
}

// GetByID retourne une équipe avec responsables et membres (formations des
// membres incluses)
func (r *EquipeRepository) GetByID(ctx context.Context, id string) (*domain.Equipe, error) {
	query := `SELECT ` + equipeColumns + ` FROM equipes WHERE id = $1`

	var e domain.Equipe
	if err := scanEquipe(r.db.QueryRow(ctx, query, id), &e); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEquipeNotFound
		}
		return nil, err
	}

	if err := r.loadEffectif(ctx, &e); err != nil {
		return nil, err
	}

	return &e, nil
}

// ListByEntreprise retourne les équipes actives d'une entreprise avec
// responsables et membres
func (r *EquipeRepository) ListByEntreprise(ctx context.Context, entrepriseID string) ([]domain.Equipe, error) {
	query := `
		SELECT ` + equipeColumns + `
		FROM equipes
		WHERE entreprise_id = $1 AND actif = TRUE
		ORDER BY nom
	`

	rows, err := r.db.Query(ctx, query, entrepriseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var equipes []domain.Equipe
	for rows.Next() {
		var e domain.Equipe
		if err := scanEquipe(rows, &e); err != nil {
			return nil, err
		}
		equipes = append(equipes, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range equipes {
		if err := r.loadEffectif(ctx, &equipes[i]); err != nil {
			return nil, err
		}
	}

	return equipes, nil
}

// CountByIDs compte combien des équipes données existent dans l'entreprise
func (r *EquipeRepository) CountByIDs(ctx context.Context, entrepriseID string, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query := `SELECT COUNT(*) FROM equipes WHERE entreprise_id = $1 AND id = ANY($2)`

	var count int
	if err := r.db.QueryRow(ctx, query, entrepriseID, ids).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

// ResponsablesDeMembre retourne les IDs distincts des responsables des
// équipes dont l'utilisateur est membre
func (r *EquipeRepository) ResponsablesDeMembre(ctx context.Context, userID string) ([]string, error) {
	query := `
		SELECT DISTINCT resp.user_id
		FROM equipe_membres m
		JOIN equipe_responsables resp ON resp.equipe_id = m.equipe_id
		WHERE m.user_id = $1 AND resp.user_id != $1
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// Update met à jour les champs de l'équipe
func (r *EquipeRepository) Update(ctx context.Context, e *domain.Equipe) error {
	query := `
		UPDATE equipes
		SET nom = $1, code = $2, adresse = $3, actif = $4
		WHERE id = $5
	`

	result, err := r.db.Exec(ctx, query, e.Nom, e.Code, e.Adresse, e.Actif, e.ID)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrEquipeNotFound
	}

	return nil
}

// Delete supprime l'équipe, les affectations suivent par cascade
func (r *EquipeRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM equipes WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrEquipeNotFound
	}

	return nil
}

// loadEffectif charge responsables et membres de l'équipe, formations des
// membres incluses
func (r *EquipeRepository) loadEffectif(ctx context.Context, e *domain.Equipe) error {
	query := `
		SELECT u.id, u.nom, u.prenom, u.email, u.telephone, u.adresse,
		       u.num_securite_sociale, u.role, u.entreprise_id, u.password_hash,
		       rel.relation
		FROM (
			SELECT user_id, 'membre' AS relation FROM equipe_membres WHERE equipe_id = $1
			UNION ALL
			SELECT user_id, 'responsable' AS relation FROM equipe_responsables WHERE equipe_id = $1
		) rel
		JOIN utilisateurs u ON u.id = rel.user_id
		ORDER BY u.nom, u.prenom
	`

	rows, err := r.db.Query(ctx, query, e.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	memberIndex := make(map[string]int)
	for rows.Next() {
		var u domain.Utilisateur
		var relation string
		if err := rows.Scan(
			&u.ID, &u.Nom, &u.Prenom, &u.Email, &u.Telephone, &u.Adresse,
			&u.NumSecuriteSociale, &u.Role, &u.EntrepriseID, &u.PasswordHash,
			&relation,
		); err != nil {
			return err
		}
		if relation == "membre" {
			memberIndex[u.ID] = len(e.Membres)
			e.Membres = append(e.Membres, u)
		} else {
			e.Responsables = append(e.Responsables, u)
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	if len(e.Membres) == 0 {
		return nil
	}

	memberIDs := make([]string, 0, len(e.Membres))
	for _, m := range e.Membres {
		memberIDs = append(memberIDs, m.ID)
	}

	fRows, err := r.db.Query(ctx, `
		SELECT `+formationColumns+`
		FROM formations
		WHERE user_id = ANY($1)
		ORDER BY date_expiration NULLS LAST
	`, memberIDs)
	if err != nil {
		return err
	}
	defer fRows.Close()

	for fRows.Next() {
		var f domain.Formation
		if err := scanFormation(fRows, &f); err != nil {
			return err
		}
		if i, ok := memberIndex[f.UserID]; ok {
			e.Membres[i].Formations = append(e.Membres[i].Formations, f)
		}
	}

	return fRows.Err()
}
