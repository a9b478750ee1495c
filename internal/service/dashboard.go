package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tlecomte/formatrack/internal/domain"
	"github.com/tlecomte/formatrack/internal/rbac"
	"github.com/tlecomte/formatrack/internal/repository"
	"github.com/tlecomte/formatrack/internal/status"
)

// Dashboard est la synthèse de conformité d'une entreprise
type Dashboard struct {
	Entreprise          *domain.Entreprise  `json:"entreprise"`
	Effectif            int                 `json:"effectif"`
	NbEquipes           int                 `json:"nb_equipes"`
	NbFormations        int                 `json:"nb_formations"`
	FormationsParStatut status.Counts       `json:"formations_par_statut"`
	TauxConformite      int                 `json:"taux_conformite"`
	EquipesNonConformes int                 `json:"equipes_non_conformes"`
	RendezVousAVenir    int                 `json:"rendez_vous_a_venir"`
	DevisEnAttente      int                 `json:"devis_en_attente"`
	DernieresFormations []domain.Formation  `json:"dernieres_formations"`
	ProchainsRendezVous []domain.RendezVous `json:"prochains_rendez_vous"`
}

// DashboardService calcule la synthèse d'entreprise par requêtes directes
// sur le pool. Les compteurs de statut passent par le classifieur : la
// base ne stocke jamais de statut dérivé.
type DashboardService struct {
	db             *pgxpool.Pool
	entrepriseRepo repository.EntrepriseRepository
	equipeRepo     repository.EquipeRepository
	now            func() time.Time
}

// NewDashboardService crée un nouveau DashboardService
func NewDashboardService(db *pgxpool.Pool, entrepriseRepo repository.EntrepriseRepository, equipeRepo repository.EquipeRepository, now func() time.Time) *DashboardService {
	return &DashboardService{
		db:             db,
		entrepriseRepo: entrepriseRepo,
		equipeRepo:     equipeRepo,
		now:            now,
	}
}

// Get retourne le tableau de bord de l'entreprise. Réservé aux admins de
// l'entreprise.
func (s *DashboardService) Get(ctx context.Context, caller rbac.Caller, entrepriseID string) (*Dashboard, error) {
	if err := rbac.CheckAccess(caller, entrepriseID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	entreprise, err := s.entrepriseRepo.GetByID(ctx, entrepriseID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	dashboard := &Dashboard{Entreprise: entreprise}

	countQuery := `
		SELECT
			(SELECT COUNT(*) FROM utilisateurs WHERE entreprise_id = $1) AS effectif,
			(SELECT COUNT(*) FROM equipes WHERE entreprise_id = $1 AND actif = TRUE) AS nb_equipes,
			(SELECT COUNT(*) FROM calendrier WHERE entreprise_id = $1 AND statut = $2 AND date_heure >= $3) AS rendez_vous_a_venir,
			(SELECT COUNT(*) FROM devis WHERE entreprise_id = $1 AND statut = $4) AS devis_en_attente
	`

	if err := s.db.QueryRow(ctx, countQuery,
		entrepriseID, domain.RendezVousPlanifie, now, domain.DevisEnAttente,
	).Scan(
		&dashboard.Effectif,
		&dashboard.NbEquipes,
		&dashboard.RendezVousAVenir,
		&dashboard.DevisEnAttente,
	); err != nil {
		return nil, err
	}

	if err := s.compterFormations(ctx, entrepriseID, now, dashboard); err != nil {
		return nil, err
	}
	if err := s.compterEquipesNonConformes(ctx, entrepriseID, now, dashboard); err != nil {
		return nil, err
	}
	if err := s.chargerDernieresFormations(ctx, entrepriseID, now, dashboard); err != nil {
		return nil, err
	}
	if err := s.chargerProchainsRendezVous(ctx, entrepriseID, now, dashboard); err != nil {
		return nil, err
	}

	return dashboard, nil
}

// compterFormations ventile toutes les formations de l'entreprise par
// statut dérivé et calcule le taux de conformité global
func (s *DashboardService) compterFormations(ctx context.Context, entrepriseID string, now time.Time, dashboard *Dashboard) error {
	rows, err := s.db.Query(ctx,
		`SELECT date_expiration, obligatoire FROM formations WHERE entreprise_id = $1`,
		entrepriseID,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	var formations []domain.Formation
	for rows.Next() {
		var f domain.Formation
		if err := rows.Scan(&f.DateExpiration, &f.Obligatoire); err != nil {
			return err
		}
		formations = append(formations, f)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	dashboard.NbFormations = len(formations)
	dashboard.FormationsParStatut = status.CountByStatus(formations, now)
	dashboard.TauxConformite = status.ComplianceRate(formations, now)

	return nil
}

// compterEquipesNonConformes compte les équipes actives dont le taux de
// conformité regroupé est sous 100
func (s *DashboardService) compterEquipesNonConformes(ctx context.Context, entrepriseID string, now time.Time, dashboard *Dashboard) error {
	equipes, err := s.equipeRepo.ListByEntreprise(ctx, entrepriseID)
	if err != nil {
		return err
	}

	for i := range equipes {
		formations := make([][]domain.Formation, 0, len(equipes[i].Membres))
		for _, m := range equipes[i].Membres {
			formations = append(formations, m.Formations)
		}
		if status.TeamComplianceRate(formations, now) < 100 {
			dashboard.EquipesNonConformes++
		}
	}

	return nil
}

// chargerDernieresFormations charge les cinq formations les plus récentes
func (s *DashboardService) chargerDernieresFormations(ctx context.Context, entrepriseID string, now time.Time, dashboard *Dashboard) error {
	rows, err := s.db.Query(ctx, `
		SELECT id, type_formation, nom, description, organisme, date_delivrance,
		       date_expiration, validite_mois, obligatoire, user_id, entreprise_id
		FROM formations
		WHERE entreprise_id = $1
		ORDER BY created_at DESC
		LIMIT 5
	`, entrepriseID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var f domain.Formation
		if err := rows.Scan(
			&f.ID, &f.TypeFormation, &f.Nom, &f.Description, &f.Organisme,
			&f.DateDelivrance, &f.DateExpiration, &f.ValiditeMois, &f.Obligatoire,
			&f.UserID, &f.EntrepriseID,
		); err != nil {
			return err
		}
		f.Statut = status.Classify(f.DateExpiration, now)
		dashboard.DernieresFormations = append(dashboard.DernieresFormations, f)
	}

	return rows.Err()
}

// chargerProchainsRendezVous charge les cinq prochains rendez-vous
// planifiés
func (s *DashboardService) chargerProchainsRendezVous(ctx context.Context, entrepriseID string, now time.Time, dashboard *Dashboard) error {
	rows, err := s.db.Query(ctx, `
		SELECT id, titre, description, date_heure, statut, user_id, entreprise_id
		FROM calendrier
		WHERE entreprise_id = $1 AND statut = $2 AND date_heure >= $3
		ORDER BY date_heure
		LIMIT 5
	`, entrepriseID, domain.RendezVousPlanifie, now)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var rdv domain.RendezVous
		if err := rows.Scan(
			&rdv.ID, &rdv.Titre, &rdv.Description, &rdv.DateHeure, &rdv.Statut,
			&rdv.UserID, &rdv.EntrepriseID,
		); err != nil {
			return err
		}
		dashboard.ProchainsRendezVous = append(dashboard.ProchainsRendezVous, rdv)
	}

	return rows.Err()
}
