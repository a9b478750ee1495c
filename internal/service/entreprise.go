package service

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tlecomte/formatrack/internal/domain"
	"github.com/tlecomte/formatrack/internal/rbac"
	"github.com/tlecomte/formatrack/internal/repository"
)

// EntrepriseDetail associe une entreprise à ses compteurs d'entités
type EntrepriseDetail struct {
	*domain.Entreprise
	NbUtilisateurs int `json:"nb_utilisateurs"`
	NbEquipes      int `json:"nb_equipes"`
	NbFormations   int `json:"nb_formations"`
	NbRendezVous   int `json:"nb_rendez_vous"`
	NbDevis        int `json:"nb_devis"`
}

// EntrepriseService porte la consultation des entreprises. Les compteurs
// sont calculés par requêtes directes sur le pool.
type EntrepriseService struct {
	db             *pgxpool.Pool
	entrepriseRepo repository.EntrepriseRepository
}

// NewEntrepriseService crée un nouveau EntrepriseService
func NewEntrepriseService(db *pgxpool.Pool, entrepriseRepo repository.EntrepriseRepository) *EntrepriseService {
	return &EntrepriseService{db: db, entrepriseRepo: entrepriseRepo}
}

// Get retourne une entreprise avec ses compteurs d'entités. Réservé aux
// représentants et admins de l'entreprise.
func (s *EntrepriseService) Get(ctx context.Context, caller rbac.Caller, id string) (*EntrepriseDetail, error) {
	if err := rbac.CheckAccess(caller, id, domain.RoleRepresentant); err != nil {
		return nil, err
	}

	entreprise, err := s.entrepriseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &EntrepriseDetail{Entreprise: entreprise}

	countQuery := `
		SELECT
			(SELECT COUNT(*) FROM utilisateurs WHERE entreprise_id = $1) AS nb_utilisateurs,
			(SELECT COUNT(*) FROM equipes WHERE entreprise_id = $1) AS nb_equipes,
			(SELECT COUNT(*) FROM formations WHERE entreprise_id = $1) AS nb_formations,
			(SELECT COUNT(*) FROM calendrier WHERE entreprise_id = $1) AS nb_rendez_vous,
			(SELECT COUNT(*) FROM devis WHERE entreprise_id = $1) AS nb_devis
	`

	if err := s.db.QueryRow(ctx, countQuery, id).Scan(
		&detail.NbUtilisateurs,
		&detail.NbEquipes,
		&detail.NbFormations,
		&detail.NbRendezVous,
		&detail.NbDevis,
	); err != nil {
		return nil, err
	}

	return detail, nil
}
