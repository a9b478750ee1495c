package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tlecomte/formatrack/internal/domain"
	"github.com/tlecomte/formatrack/internal/repository"
)

// CalendrierRepository implémente repository.CalendrierRepository pour
// PostgreSQL
type CalendrierRepository struct {
	db *pgxpool.Pool
}

// NewCalendrierRepository crée un nouveau CalendrierRepository
func NewCalendrierRepository(db *pgxpool.Pool) *CalendrierRepository {
	return &CalendrierRepository{db: db}
}

const rendezVousInsert = `
	INSERT INTO calendrier (id, titre, description, date_heure, statut, user_id, entreprise_id)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
`

// Create insère un rendez-vous
func (r *CalendrierRepository) Create(ctx context.Context, rdv *domain.RendezVous) error {
	_, err := r.db.Exec(ctx, rendezVousInsert,
		rdv.ID, rdv.Titre, rdv.Description, rdv.DateHeure, rdv.Statut,
		rdv.UserID, rdv.EntrepriseID,
	)
	return err
}

// CreateWithDevis insère le rendez-vous et son devis dans une même
// transaction : soit les deux, soit aucun
func (r *CalendrierRepository) CreateWithDevis(ctx context.Context, rdv *domain.RendezVous, devis *domain.Devis) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, rendezVousInsert,
		rdv.ID, rdv.Titre, rdv.Description, rdv.DateHeure, rdv.Statut,
		rdv.UserID, rdv.EntrepriseID,
	); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO devis (id, montant, statut, user_id, entreprise_id, rendez_vous_id)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, devis.ID, devis.Montant, devis.Statut, devis.UserID, devis.EntrepriseID, rdv.ID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// GetByID retourne un rendez-vous avec son utilisateur et son devis
// éventuel
func (r *CalendrierRepository) GetByID(ctx context.Context, id string) (*domain.RendezVous, error) {
	query := `
		SELECT c.id, c.titre, c.description, c.date_heure, c.statut, c.user_id, c.entreprise_id,
		       u.nom, u.prenom, u.email
		FROM calendrier c
		JOIN utilisateurs u ON u.id = c.user_id
		WHERE c.id = $1
	`

	var rdv domain.RendezVous
	var porteur domain.Utilisateur
	err := r.db.QueryRow(ctx, query, id).Scan(
		&rdv.ID, &rdv.Titre, &rdv.Description, &rdv.DateHeure, &rdv.Statut,
		&rdv.UserID, &rdv.EntrepriseID,
		&porteur.Nom, &porteur.Prenom, &porteur.Email,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRendezVousNotFound
		}
		return nil, err
	}

	porteur.ID = rdv.UserID
	rdv.Utilisateur = &porteur

	if err := r.loadDevis(ctx, &rdv); err != nil {
		return nil, err
	}

	return &rdv, nil
}

// List retourne les rendez-vous d'une entreprise, filtrés et triés par
// date croissante
func (r *CalendrierRepository) List(ctx context.Context, entrepriseID string, filter repository.CalendrierFilter) ([]domain.RendezVous, error) {
	query := `
		SELECT c.id, c.titre, c.description, c.date_heure, c.statut, c.user_id, c.entreprise_id,
		       u.nom, u.prenom, u.email,
		       d.id, d.montant, d.statut
		FROM calendrier c
		JOIN utilisateurs u ON u.id = c.user_id
		LEFT JOIN devis d ON d.rendez_vous_id = c.id
		WHERE c.entreprise_id = $1
		  AND ($2::timestamptz IS NULL OR c.date_heure >= $2)
		  AND ($3::timestamptz IS NULL OR c.date_heure <= $3)
		  AND ($4::text = '' OR c.user_id = $4)
		ORDER BY c.date_heure
	`

	rows, err := r.db.Query(ctx, query, entrepriseID, filter.De, filter.A, filter.UserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.RendezVous
	for rows.Next() {
		var rdv domain.RendezVous
		var porteur domain.Utilisateur
		var devisID *string
		var devisMontant *float64
		var devisStatut *domain.StatutDevis

		if err := rows.Scan(
			&rdv.ID, &rdv.Titre, &rdv.Description, &rdv.DateHeure, &rdv.Statut,
			&rdv.UserID, &rdv.EntrepriseID,
			&porteur.Nom, &porteur.Prenom, &porteur.Email,
			&devisID, &devisMontant, &devisStatut,
		); err != nil {
			return nil, err
		}

		porteur.ID = rdv.UserID
		rdv.Utilisateur = &porteur

		if devisID != nil {
			rdv.Devis = &domain.Devis{
				ID:           *devisID,
				Montant:      *devisMontant,
				Statut:       *devisStatut,
				UserID:       rdv.UserID,
				EntrepriseID: rdv.EntrepriseID,
				RendezVousID: rdv.ID,
			}
		}

		result = append(result, rdv)
	}

	return result, rows.Err()
}

// Update met à jour un rendez-vous
func (r *CalendrierRepository) Update(ctx context.Context, rdv *domain.RendezVous) error {
	query := `
		UPDATE calendrier
		SET titre = $1, description = $2, date_heure = $3, statut = $4
		WHERE id = $5
	`

	result, err := r.db.Exec(ctx, query, rdv.Titre, rdv.Description, rdv.DateHeure, rdv.Statut, rdv.ID)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrRendezVousNotFound
	}

	return nil
}

// Delete supprime un rendez-vous, le devis rattaché est détaché par la
// contrainte ON DELETE SET NULL
func (r *CalendrierRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM calendrier WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrRendezVousNotFound
	}

	return nil
}

// loadDevis charge le devis rattaché au rendez-vous, s'il existe
func (r *CalendrierRepository) loadDevis(ctx context.Context, rdv *domain.RendezVous) error {
	query := `
		SELECT id, montant, statut, user_id, entreprise_id, created_at
		FROM devis
		WHERE rendez_vous_id = $1
	`

	var d domain.Devis
	err := r.db.QueryRow(ctx, query, rdv.ID).Scan(
		&d.ID, &d.Montant, &d.Statut, &d.UserID, &d.EntrepriseID, &d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return err
	}

	d.RendezVousID = rdv.ID
	rdv.Devis = &d

	return nil
}
