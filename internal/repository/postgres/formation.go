package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tlecomte/formatrack/internal/domain"
	"github.com/tlecomte/formatrack/internal/repository"
)

// FormationRepository implémente repository.FormationRepository pour
// PostgreSQL
type FormationRepository struct {
	db *pgxpool.Pool
}

// NewFormationRepository crée un nouveau FormationRepository
func NewFormationRepository(db *pgxpool.Pool) *FormationRepository {
	return &FormationRepository{db: db}
}

const formationColumns = `id, type_formation, nom, description, organisme, date_delivrance, date_expiration, validite_mois, obligatoire, user_id, entreprise_id`

func scanFormation(row pgx.Row, f *domain.Formation) error {
	return row.Scan(
		&f.ID,
		&f.TypeFormation,
		&f.Nom,
		&f.Description,
		&f.Organisme,
		&f.DateDelivrance,
		&f.DateExpiration,
		&f.ValiditeMois,
		&f.Obligatoire,
		&f.UserID,
		&f.EntrepriseID,
	)
}

// Create insère une nouvelle formation
func (r *FormationRepository) Create(ctx context.Context, f *domain.Formation) error {
	query := `
		INSERT INTO formations (id, type_formation, nom, description, organisme, date_delivrance, date_expiration, validite_mois, obligatoire, user_id, entreprise_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		f.ID, f.TypeFormation, f.Nom, f.Description, f.Organisme,
		f.DateDelivrance, f.DateExpiration, f.ValiditeMois, f.Obligatoire,
		f.UserID, f.EntrepriseID,
	)
	return err
}

// GetByID retourne une formation
func (r *FormationRepository) GetByID(ctx context.Context, id string) (*domain.Formation, error) {
	query := `SELECT ` + formationColumns + ` FROM formations WHERE id = $1`

	var f domain.Formation
	if err := scanFormation(r.db.QueryRow(ctx, query, id), &f); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFormationNotFound
		}
		return nil, err
	}

	return &f, nil
}

// ListAvecExpiration retourne les formations de l'entreprise ayant une
// date d'expiration, avec l'identité du porteur
func (r *FormationRepository) ListAvecExpiration(ctx context.Context, entrepriseID string) ([]repository.FormationAvecPorteur, error) {
	query := `
		SELECT f.id, f.type_formation, f.nom, f.description, f.organisme,
		       f.date_delivrance, f.date_expiration, f.validite_mois, f.obligatoire,
		       f.user_id, f.entreprise_id, u.nom, u.prenom
		FROM formations f
		JOIN utilisateurs u ON u.id = f.user_id
		WHERE f.entreprise_id = $1 AND f.date_expiration IS NOT NULL
		ORDER BY f.date_expiration
	`

	rows, err := r.db.Query(ctx, query, entrepriseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []repository.FormationAvecPorteur
	for rows.Next() {
		var fp repository.FormationAvecPorteur
		f := &fp.Formation
		if err := rows.Scan(
			&f.ID, &f.TypeFormation, &f.Nom, &f.Description, &f.Organisme,
			&f.DateDelivrance, &f.DateExpiration, &f.ValiditeMois, &f.Obligatoire,
			&f.UserID, &f.EntrepriseID,
			&fp.Nom, &fp.Prenom,
		); err != nil {
			return nil, err
		}
		result = append(result, fp)
	}

	return result, rows.Err()
}

// Update met à jour une formation
func (r *FormationRepository) Update(ctx context.Context, f *domain.Formation) error {
	query := `
		UPDATE formations
		SET type_formation = $1, nom = $2, description = $3, organisme = $4,
		    date_delivrance = $5, date_expiration = $6, validite_mois = $7, obligatoire = $8
		WHERE id = $9
	`

	result, err := r.db.Exec(ctx, query,
		f.TypeFormation, f.Nom, f.Description, f.Organisme,
		f.DateDelivrance, f.DateExpiration, f.ValiditeMois, f.Obligatoire, f.ID,
	)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrFormationNotFound
	}

	return nil
}

// Delete supprime une formation
func (r *FormationRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM formations WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrFormationNotFound
	}

	return nil
}
