package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tlecomte/formatrack/internal/domain"
	"github.com/tlecomte/formatrack/internal/rbac"
	"github.com/tlecomte/formatrack/internal/repository"
	"github.com/tlecomte/formatrack/internal/status"
)

// EquipeService porte la logique métier des équipes : CRUD et synthèse de
// conformité agrégée sur les membres.
type EquipeService struct {
	equipeRepo repository.EquipeRepository
	now        func() time.Time
}

// NewEquipeService crée un nouveau EquipeService
func NewEquipeService(equipeRepo repository.EquipeRepository, now func() time.Time) *EquipeService {
	return &EquipeService{equipeRepo: equipeRepo, now: now}
}

// CreateEquipeInput décrit la création d'une équipe
type CreateEquipeInput struct {
	Nom     string
	Code    string
	Adresse string
}

// UpdateEquipeInput décrit une mise à jour partielle d'équipe
type UpdateEquipeInput struct {
	Nom     *string
	Code    *string
	Adresse *string
	Actif   *bool
}

// StatsEquipe est la synthèse de conformité d'une équipe. Le taux regroupe
// les formations obligatoires de tous les membres, ce n'est pas une
// moyenne des taux individuels.
type StatsEquipe struct {
	EquipeID       string        `json:"equipe_id"`
	Nom            string        `json:"nom"`
	Effectif       int           `json:"effectif"`
	Statut         domain.Statut `json:"statut"`
	TauxConformite int           `json:"taux_conformite"`
	Compteurs      status.Counts `json:"compteurs"`
}

// EquipeAvecStats associe une équipe à sa synthèse de conformité
type EquipeAvecStats struct {
	Equipe *domain.Equipe `json:"equipe"`
	Stats  StatsEquipe    `json:"stats"`
}

// statsPour calcule la synthèse de conformité d'une équipe à l'instant now
func statsPour(e *domain.Equipe, now time.Time) StatsEquipe {
	formations := make([][]domain.Formation, 0, len(e.Membres))
	var pool []domain.Formation
	for _, m := range e.Membres {
		formations = append(formations, m.Formations)
		pool = append(pool, m.Formations...)
	}

	return StatsEquipe{
		EquipeID:       e.ID,
		Nom:            e.Nom,
		Effectif:       len(e.Membres),
		Statut:         status.TeamStatus(formations, now),
		TauxConformite: status.TeamComplianceRate(formations, now),
		Compteurs:      status.CountByStatus(pool, now),
	}
}

// Create crée une équipe dans l'entreprise de l'appelant. Réservé aux
// admins.
func (s *EquipeService) Create(ctx context.Context, caller rbac.Caller, input CreateEquipeInput) (*domain.Equipe, error) {
	if err := rbac.CheckAccess(caller, caller.EntrepriseID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	equipe := &domain.Equipe{
		ID:           uuid.NewString(),
		Nom:          input.Nom,
		Code:         input.Code,
		Adresse:      input.Adresse,
		Actif:        true,
		EntrepriseID: caller.EntrepriseID,
	}

	if err := s.equipeRepo.Create(ctx, equipe); err != nil {
		return nil, err
	}

	return equipe, nil
}

// Get retourne une équipe avec sa synthèse de conformité. Visible par les
// admins et représentants de l'entreprise, et par les membres et
// responsables de l'équipe. Les données personnelles de l'effectif sont
// masquées par le filtrage de vue côté handler ; ici les formations des
// membres reçoivent leur statut dérivé.
func (s *EquipeService) Get(ctx context.Context, caller rbac.Caller, id string) (*EquipeAvecStats, error) {
	equipe, err := s.equipeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := rbac.CheckAccess(caller, equipe.EntrepriseID, domain.RoleOuvrier); err != nil {
		return nil, err
	}
	if !rbac.CanViewEquipe(caller, equipe) {
		return nil, rbac.ErrRoleInsuffisant
	}

	now := s.now()
	for i := range equipe.Membres {
		equipe.Membres[i].PasswordHash = ""
		annoterStatuts(equipe.Membres[i].Formations, now)
	}
	for i := range equipe.Responsables {
		equipe.Responsables[i].PasswordHash = ""
	}

	stats := statsPour(equipe, now)
	return &EquipeAvecStats{Equipe: equipe, Stats: stats}, nil
}

// List retourne les équipes actives de l'entreprise avec leur synthèse.
// Les admins et représentants voient toutes les équipes, un ouvrier
// uniquement celles auxquelles il appartient.
func (s *EquipeService) List(ctx context.Context, caller rbac.Caller) ([]EquipeAvecStats, error) {
	if err := rbac.CheckAccess(caller, caller.EntrepriseID, domain.RoleOuvrier); err != nil {
		return nil, err
	}

	equipes, err := s.equipeRepo.ListByEntreprise(ctx, caller.EntrepriseID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	result := make([]EquipeAvecStats, 0, len(equipes))
	for i := range equipes {
		e := &equipes[i]
		if !rbac.CanViewEquipe(caller, e) {
			continue
		}
		for j := range e.Membres {
			e.Membres[j].PasswordHash = ""
			annoterStatuts(e.Membres[j].Formations, now)
		}
		for j := range e.Responsables {
			e.Responsables[j].PasswordHash = ""
		}
		result = append(result, EquipeAvecStats{Equipe: e, Stats: statsPour(e, now)})
	}

	return result, nil
}

// Update applique une mise à jour partielle. Réservé aux admins et au
// responsable de l'équipe.
func (s *EquipeService) Update(ctx context.Context, caller rbac.Caller, id string, input UpdateEquipeInput) (*domain.Equipe, error) {
	equipe, err := s.equipeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := rbac.CheckAccess(caller, equipe.EntrepriseID, domain.RoleOuvrier); err != nil {
		return nil, err
	}
	if !rbac.CanUpdateEquipe(caller, equipe) {
		return nil, rbac.ErrRoleInsuffisant
	}

	if input.Nom != nil {
		equipe.Nom = *input.Nom
	}
	if input.Code != nil {
		equipe.Code = *input.Code
	}
	if input.Adresse != nil {
		equipe.Adresse = *input.Adresse
	}
	if input.Actif != nil {
		equipe.Actif = *input.Actif
	}

	if err := s.equipeRepo.Update(ctx, equipe); err != nil {
		return nil, err
	}

	return equipe, nil
}

// Delete supprime une équipe et ses affectations. Réservé aux admins.
func (s *EquipeService) Delete(ctx context.Context, caller rbac.Caller, id string) error {
	equipe, err := s.equipeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := rbac.CheckAccess(caller, equipe.EntrepriseID, domain.RoleAdmin); err != nil {
		return err
	}

	return s.equipeRepo.Delete(ctx, id)
}
