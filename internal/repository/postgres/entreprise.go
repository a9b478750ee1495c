package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tlecomte/formatrack/internal/domain"
)

// EntrepriseRepository implémente repository.EntrepriseRepository pour
// PostgreSQL
type EntrepriseRepository struct {
	db *pgxpool.Pool
}

// NewEntrepriseRepository crée un nouveau EntrepriseRepository
func NewEntrepriseRepository(db *pgxpool.Pool) *EntrepriseRepository {
	return &EntrepriseRepository{db: db}
}

// Create insère une entreprise
func (r *EntrepriseRepository) Create(ctx context.Context, e *domain.Entreprise) error {
	query := `
		INSERT INTO entreprises (id, nom, adresse, telephone, email)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query, e.ID, e.Nom, e.Adresse, e.Telephone, e.Email)
	return err
}

// GetByID retourne une entreprise
func (r *EntrepriseRepository) GetByID(ctx context.Context, id string) (*domain.Entreprise, error) {
	query := `SELECT id, nom, adresse, telephone, email FROM entreprises WHERE id = $1`

	var e domain.Entreprise
	err := r.db.QueryRow(ctx, query, id).Scan(&e.ID, &e.Nom, &e.Adresse, &e.Telephone, &e.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntrepriseNotFound
		}
		return nil, err
	}

	return &e, nil
}
