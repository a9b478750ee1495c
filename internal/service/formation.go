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

// FormationService porte la logique métier des formations : CRUD et
// dérivation de la date d'expiration à partir de la durée de validité.
type FormationService struct {
	formationRepo   repository.FormationRepository
	utilisateurRepo repository.UtilisateurRepository
	now             func() time.Time
}

// NewFormationService crée un nouveau FormationService
func NewFormationService(formationRepo repository.FormationRepository, utilisateurRepo repository.UtilisateurRepository, now func() time.Time) *FormationService {
	return &FormationService{
		formationRepo:   formationRepo,
		utilisateurRepo: utilisateurRepo,
		now:             now,
	}
}

// CreateFormationInput décrit la création d'une formation
type CreateFormationInput struct {
	TypeFormation  string
	Nom            string
	Description    string
	Organisme      string
	DateDelivrance *time.Time
	DateExpiration *time.Time
	ValiditeMois   int
	Obligatoire    bool
	UserID         string
}

// UpdateFormationInput décrit une mise à jour partielle de formation
type UpdateFormationInput struct {
	TypeFormation  *string
	Nom            *string
	Description    *string
	Organisme      *string
	DateDelivrance *time.Time
	DateExpiration *time.Time
	ValiditeMois   *int
	Obligatoire    *bool
}

// Create crée une formation pour un utilisateur de l'entreprise de
// l'appelant. Réservé aux admins. Si la date d'expiration est absente mais
// que la date de délivrance et la durée de validité sont fournies,
// l'expiration est dérivée par addition calendaire.
func (s *FormationService) Create(ctx context.Context, caller rbac.Caller, input CreateFormationInput) (*domain.Formation, error) {
	porteur, err := s.utilisateurRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	if err := rbac.CheckAccess(caller, porteur.EntrepriseID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	expiration := input.DateExpiration
	if expiration == nil && input.DateDelivrance != nil && input.ValiditeMois > 0 {
		d := input.DateDelivrance.AddDate(0, input.ValiditeMois, 0)
		expiration = &d
	}

	formation := &domain.Formation{
		ID:             uuid.NewString(),
		TypeFormation:  input.TypeFormation,
		Nom:            input.Nom,
		Description:    input.Description,
		Organisme:      input.Organisme,
		DateDelivrance: input.DateDelivrance,
		DateExpiration: expiration,
		ValiditeMois:   input.ValiditeMois,
		Obligatoire:    input.Obligatoire,
		UserID:         porteur.ID,
		EntrepriseID:   porteur.EntrepriseID,
	}

	if err := s.formationRepo.Create(ctx, formation); err != nil {
		return nil, err
	}

	formation.Statut = status.Classify(formation.DateExpiration, s.now())
	return formation, nil
}

// Get retourne une formation avec son statut dérivé. Le profil complet du
// porteur conditionne la visibilité : hors admin, propriétaire et
// responsables, seules les formations obligatoires sont consultables.
func (s *FormationService) Get(ctx context.Context, caller rbac.Caller, id string) (*domain.Formation, error) {
	formation, err := s.formationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := rbac.CheckAccess(caller, formation.EntrepriseID, domain.RoleOuvrier); err != nil {
		return nil, err
	}

	if !formation.Obligatoire {
		porteur, err := s.utilisateurRepo.GetByID(ctx, formation.UserID)
		if err != nil {
			return nil, err
		}
		if !rbac.CanViewFullProfile(caller, porteur) {
			return nil, rbac.ErrRoleInsuffisant
		}
	}

	formation.Statut = status.Classify(formation.DateExpiration, s.now())
	return formation, nil
}

// Update applique une mise à jour partielle. Réservé aux admins. Si la
// date de délivrance ou la durée de validité change sans date d'expiration
// explicite, l'expiration est re-dérivée.
func (s *FormationService) Update(ctx context.Context, caller rbac.Caller, id string, input UpdateFormationInput) (*domain.Formation, error) {
	formation, err := s.formationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := rbac.CheckAccess(caller, formation.EntrepriseID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	if input.TypeFormation != nil {
		formation.TypeFormation = *input.TypeFormation
	}
	if input.Nom != nil {
		formation.Nom = *input.Nom
	}
	if input.Description != nil {
		formation.Description = *input.Description
	}
	if input.Organisme != nil {
		formation.Organisme = *input.Organisme
	}
	if input.DateDelivrance != nil {
		formation.DateDelivrance = input.DateDelivrance
	}
	if input.ValiditeMois != nil {
		formation.ValiditeMois = *input.ValiditeMois
	}
	if input.Obligatoire != nil {
		formation.Obligatoire = *input.Obligatoire
	}

	switch {
	case input.DateExpiration != nil:
		formation.DateExpiration = input.DateExpiration
	case (input.DateDelivrance != nil || input.ValiditeMois != nil) &&
		formation.DateDelivrance != nil && formation.ValiditeMois > 0:
		d := formation.DateDelivrance.AddDate(0, formation.ValiditeMois, 0)
		formation.DateExpiration = &d
	}

	if err := s.formationRepo.Update(ctx, formation); err != nil {
		return nil, err
	}

	formation.Statut = status.Classify(formation.DateExpiration, s.now())
	return formation, nil
}

// Delete supprime une formation. Réservé aux admins.
func (s *FormationService) Delete(ctx context.Context, caller rbac.Caller, id string) error {
	formation, err := s.formationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := rbac.CheckAccess(caller, formation.EntrepriseID, domain.RoleAdmin); err != nil {
		return err
	}

	return s.formationRepo.Delete(ctx, id)
}
