package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tlecomte/formatrack/internal/domain"
)

// UtilisateurRepository implémente repository.UtilisateurRepository pour
// PostgreSQL
type UtilisateurRepository struct {
	db *pgxpool.Pool
}

// NewUtilisateurRepository crée un nouveau UtilisateurRepository
func NewUtilisateurRepository(db *pgxpool.Pool) *UtilisateurRepository {
	return &UtilisateurRepository{db: db}
}

const utilisateurColumns = `id, nom, prenom, email, telephone, adresse, num_securite_sociale, role, entreprise_id, password_hash`

func scanUtilisateur(row pgx.Row, u *domain.Utilisateur) error {
	return row.Scan(
		&u.ID,
		&u.Nom,
		&u.Prenom,
		&u.Email,
		&u.Telephone,
		&u.Adresse,
		&u.NumSecuriteSociale,
		&u.Role,
		&u.EntrepriseID,
		&u.PasswordHash,
	)
}

// Create insère un nouvel utilisateur
func (r *UtilisateurRepository) Create(ctx context.Context, u *domain.Utilisateur) error {
	query := `
		INSERT INTO utilisateurs (id, nom, prenom, email, telephone, adresse, num_securite_sociale, role, entreprise_id, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		u.ID, u.Nom, u.Prenom, u.Email, u.Telephone, u.Adresse,
		u.NumSecuriteSociale, u.Role, u.EntrepriseID, u.PasswordHash,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return domain.ErrEmailExists
		}
		return err
	}

	return nil
}

// GetByID retourne un utilisateur avec ses équipes et ses formations
func (r *UtilisateurRepository) GetByID(ctx context.Context, id string) (*domain.Utilisateur, error) {
	query := `SELECT ` + utilisateurColumns + ` FROM utilisateurs WHERE id = $1`

	var u domain.Utilisateur
	if err := scanUtilisateur(r.db.QueryRow(ctx, query, id), &u); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUtilisateurNotFound
		}
		return nil, err
	}

	if err := r.loadEquipes(ctx, &u); err != nil {
		return nil, err
	}
	if err := r.loadFormations(ctx, &u); err != nil {
		return nil, err
	}

	return &u, nil
}

// GetByEmail retourne un utilisateur avec ses équipes (sans formations)
func (r *UtilisateurRepository) GetByEmail(ctx context.Context, email string) (*domain.Utilisateur, error) {
	query := `SELECT ` + utilisateurColumns + ` FROM utilisateurs WHERE email = $1`

	var u domain.Utilisateur
	if err := scanUtilisateur(r.db.QueryRow(ctx, query, email), &u); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUtilisateurNotFound
		}
		return nil, err
	}

	if err := r.loadEquipes(ctx, &u); err != nil {
		return nil, err
	}

	return &u, nil
}

// ListByEntreprise retourne les utilisateurs d'une entreprise avec équipes
// et formations, chargés en trois requêtes (pas de N+1)
func (r *UtilisateurRepository) ListByEntreprise(ctx context.Context, entrepriseID string) ([]domain.Utilisateur, error) {
	query := `SELECT ` + utilisateurColumns + ` FROM utilisateurs WHERE entreprise_id = $1 ORDER BY nom, prenom`

	rows, err := r.db.Query(ctx, query, entrepriseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.Utilisateur
	index := make(map[string]int)
	for rows.Next() {
		var u domain.Utilisateur
		if err := scanUtilisateur(rows, &u); err != nil {
			return nil, err
		}
		index[u.ID] = len(users)
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Affectations d'équipe de toute l'entreprise
	relQuery := `
		SELECT m.user_id, e.id, e.nom, 'membre' AS rel
		FROM equipe_membres m
		JOIN equipes e ON e.id = m.equipe_id
		WHERE e.entreprise_id = $1
		UNION ALL
		SELECT resp.user_id, e.id, e.nom, 'responsable' AS rel
		FROM equipe_responsables resp
		JOIN equipes e ON e.id = resp.equipe_id
		WHERE e.entreprise_id = $1
	`

	relRows, err := r.db.Query(ctx, relQuery, entrepriseID)
	if err != nil {
		return nil, err
	}
	defer relRows.Close()

	for relRows.Next() {
		var userID, rel string
		var ref domain.EquipeRef
		if err := relRows.Scan(&userID, &ref.ID, &ref.Nom, &rel); err != nil {
			return nil, err
		}
		i, ok := index[userID]
		if !ok {
			continue
		}
		if rel == "membre" {
			users[i].EquipesMembre = append(users[i].EquipesMembre, ref)
		} else {
			users[i].EquipesResponsable = append(users[i].EquipesResponsable, ref)
		}
	}
	if err := relRows.Err(); err != nil {
		return nil, err
	}

	// Formations de toute l'entreprise
	fRows, err := r.db.Query(ctx, `
		SELECT `+formationColumns+`
		FROM formations
		WHERE entreprise_id = $1
		ORDER BY date_expiration NULLS LAST
	`, entrepriseID)
	if err != nil {
		return nil, err
	}
	defer fRows.Close()

	for fRows.Next() {
		var f domain.Formation
		if err := scanFormation(fRows, &f); err != nil {
			return nil, err
		}
		if i, ok := index[f.UserID]; ok {
			users[i].Formations = append(users[i].Formations, f)
		}
	}
	if err := fRows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

// Update met à jour les champs de profil de l'utilisateur
func (r *UtilisateurRepository) Update(ctx context.Context, u *domain.Utilisateur) error {
	query := `
		UPDATE utilisateurs
		SET nom = $1, prenom = $2, email = $3, telephone = $4, adresse = $5,
		    num_securite_sociale = $6, role = $7, password_hash = $8, updated_at = NOW()
		WHERE id = $9
	`

	result, err := r.db.Exec(ctx, query,
		u.Nom, u.Prenom, u.Email, u.Telephone, u.Adresse,
		u.NumSecuriteSociale, u.Role, u.PasswordHash, u.ID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrEmailExists
		}
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrUtilisateurNotFound
	}

	return nil
}

// SetEquipes remplace les affectations d'équipe de l'utilisateur dans une
// transaction
func (r *UtilisateurRepository) SetEquipes(ctx context.Context, userID string, membreIDs, responsableIDs []string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM equipe_membres WHERE user_id = $1`, userID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM equipe_responsables WHERE user_id = $1`, userID); err != nil {
		return err
	}

	for _, equipeID := range membreIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO equipe_membres (equipe_id, user_id) VALUES ($1, $2)`,
			equipeID, userID,
		); err != nil {
			return err
		}
	}
	for _, equipeID := range responsableIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO equipe_responsables (equipe_id, user_id) VALUES ($1, $2)`,
			equipeID, userID,
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// Delete supprime l'utilisateur
func (r *UtilisateurRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM utilisateurs WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrUtilisateurNotFound
	}

	return nil
}

// loadEquipes charge les relations d'équipe de l'utilisateur
func (r *UtilisateurRepository) loadEquipes(ctx context.Context, u *domain.Utilisateur) error {
	query := `
		SELECT e.id, e.nom, 'membre' AS rel
		FROM equipe_membres m
		JOIN equipes e ON e.id = m.equipe_id
		WHERE m.user_id = $1
		UNION ALL
		SELECT e.id, e.nom, 'responsable' AS rel
		FROM equipe_responsables resp
		JOIN equipes e ON e.id = resp.equipe_id
		WHERE resp.user_id = $1
		ORDER BY nom
	`

	rows, err := r.db.Query(ctx, query, u.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var ref domain.EquipeRef
		var rel string
		if err := rows.Scan(&ref.ID, &ref.Nom, &rel); err != nil {
			return err
		}
		if rel == "membre" {
			u.EquipesMembre = append(u.EquipesMembre, ref)
		} else {
			u.EquipesResponsable = append(u.EquipesResponsable, ref)
		}
	}

	return rows.Err()
}

// loadFormations charge les formations de l'utilisateur
func (r *UtilisateurRepository) loadFormations(ctx context.Context, u *domain.Utilisateur) error {
	query := `
		SELECT ` + formationColumns + `
		FROM formations
		WHERE user_id = $1
		ORDER BY date_expiration NULLS LAST
	`

	rows, err := r.db.Query(ctx, query, u.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var f domain.Formation
		if err := scanFormation(rows, &f); err != nil {
			return err
		}
		u.Formations = append(u.Formations, f)
	}

	return rows.Err()
}
