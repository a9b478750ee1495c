package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tlecomte/formatrack/internal/domain"
)

// DevisRepository implémente repository.DevisRepository pour PostgreSQL
type DevisRepository struct {
	db *pgxpool.Pool
}

// NewDevisRepository crée un nouveau DevisRepository
func NewDevisRepository(db *pgxpool.Pool) *DevisRepository {
	return &DevisRepository{db: db}
}

const devisColumns = `id, montant, statut, user_id, entreprise_id, COALESCE(rendez_vous_id, ''), created_at`

func scanDevis(row pgx.Row, d *domain.Devis) error {
	return row.Scan(&d.ID, &d.Montant, &d.Statut, &d.UserID, &d.EntrepriseID, &d.RendezVousID, &d.CreatedAt)
}

// Create insère un devis
func (r *DevisRepository) Create(ctx context.Context, d *domain.Devis) error {
	query := `
		INSERT INTO devis (id, montant, statut, user_id, entreprise_id, rendez_vous_id)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
	`

	_, err := r.db.Exec(ctx, query, d.ID, d.Montant, d.Statut, d.UserID, d.EntrepriseID, d.RendezVousID)
	return err
}

// GetByID retourne un devis
func (r *DevisRepository) GetByID(ctx context.Context, id string) (*domain.Devis, error) {
	query := `SELECT ` + devisColumns + ` FROM devis WHERE id = $1`

	var d domain.Devis
	if err := scanDevis(r.db.QueryRow(ctx, query, id), &d); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDevisNotFound
		}
		return nil, err
	}

	return &d, nil
}

// ListByEntreprise retourne les devis d'une entreprise, du plus récent au
// plus ancien
func (r *DevisRepository) ListByEntreprise(ctx context.Context, entrepriseID string) ([]domain.Devis, error) {
	query := `
		SELECT ` + devisColumns + `
		FROM devis
		WHERE entreprise_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, entrepriseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Devis
	for rows.Next() {
		var d domain.Devis
		if err := scanDevis(rows, &d); err != nil {
			return nil, err
		}
		result = append(result, d)
	}

	return result, rows.Err()
}

// UpdateStatut change le statut d'un devis
func (r *DevisRepository) UpdateStatut(ctx context.Context, id string, statut domain.StatutDevis) error {
	result, err := r.db.Exec(ctx, `UPDATE devis SET statut = $1 WHERE id = $2`, statut, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrDevisNotFound
	}

	return nil
}
