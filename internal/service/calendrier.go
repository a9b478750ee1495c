package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tlecomte/formatrack/internal/domain"
	"github.com/tlecomte/formatrack/internal/rbac"
	"github.com/tlecomte/formatrack/internal/repository"
)

// CalendrierService porte la logique métier des rendez-vous : sessions de
// recyclage, réunions sécurité, visites médicales.
type CalendrierService struct {
	calendrierRepo  repository.CalendrierRepository
	utilisateurRepo repository.UtilisateurRepository
}

// NewCalendrierService crée un nouveau CalendrierService
func NewCalendrierService(calendrierRepo repository.CalendrierRepository, utilisateurRepo repository.UtilisateurRepository) *CalendrierService {
	return &CalendrierService{
		calendrierRepo:  calendrierRepo,
		utilisateurRepo: utilisateurRepo,
	}
}

// DevisInput décrit le devis créé en même temps que le rendez-vous
type DevisInput struct {
	Montant float64
}

// CreateRendezVousInput décrit la création d'un rendez-vous, avec devis
// rattaché optionnel
type CreateRendezVousInput struct {
	Titre       string
	Description string
	DateHeure   time.Time
	UserID      string
	Devis       *DevisInput
}

// UpdateRendezVousInput décrit une mise à jour partielle de rendez-vous
type UpdateRendezVousInput struct {
	Titre       *string
	Description *string
	DateHeure   *time.Time
	Statut      *domain.StatutRendezVous
}

// Create crée un rendez-vous, et son devis dans la même transaction si un
// montant est fourni. Réservé aux représentants et admins.
func (s *CalendrierService) Create(ctx context.Context, caller rbac.Caller, input CreateRendezVousInput) (*domain.RendezVous, error) {
	if err := rbac.CheckAccess(caller, caller.EntrepriseID, domain.RoleRepresentant); err != nil {
		return nil, err
	}

	concerne, err := s.utilisateurRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if concerne.EntrepriseID != caller.EntrepriseID {
		return nil, rbac.ErrMauvaiseEntreprise
	}

	rdv := &domain.RendezVous{
		ID:           uuid.NewString(),
		Titre:        input.Titre,
		Description:  input.Description,
		DateHeure:    input.DateHeure,
		Statut:       domain.RendezVousPlanifie,
		UserID:       concerne.ID,
		EntrepriseID: caller.EntrepriseID,
	}

	if input.Devis == nil {
		if err := s.calendrierRepo.Create(ctx, rdv); err != nil {
			return nil, err
		}
		return s.calendrierRepo.GetByID(ctx, rdv.ID)
	}

	devis := &domain.Devis{
		ID:           uuid.NewString(),
		Montant:      input.Devis.Montant,
		Statut:       domain.DevisEnAttente,
		UserID:       concerne.ID,
		EntrepriseID: caller.EntrepriseID,
		RendezVousID: rdv.ID,
	}

	if err := s.calendrierRepo.CreateWithDevis(ctx, rdv, devis); err != nil {
		return nil, err
	}

	return s.calendrierRepo.GetByID(ctx, rdv.ID)
}

// Get retourne un rendez-vous. Un ouvrier ne consulte que les siens.
func (s *CalendrierService) Get(ctx context.Context, caller rbac.Caller, id string) (*domain.RendezVous, error) {
	rdv, err := s.calendrierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := rbac.CheckAccess(caller, rdv.EntrepriseID, domain.RoleOuvrier); err != nil {
		return nil, err
	}
	if !rbac.HasRequiredRole(caller.Role, domain.RoleRepresentant) && rdv.UserID != caller.ID {
		return nil, rbac.ErrRoleInsuffisant
	}

	if rdv.Utilisateur != nil {
		rdv.Utilisateur.PasswordHash = ""
	}

	return rdv, nil
}

// List retourne les rendez-vous de l'entreprise dans la fenêtre demandée.
// Le filtre utilisateur est forcé sur l'appelant quand c'est un ouvrier.
func (s *CalendrierService) List(ctx context.Context, caller rbac.Caller, filter repository.CalendrierFilter) ([]domain.RendezVous, error) {
	if err := rbac.CheckAccess(caller, caller.EntrepriseID, domain.RoleOuvrier); err != nil {
		return nil, err
	}

	if !rbac.HasRequiredRole(caller.Role, domain.RoleRepresentant) {
		filter.UserID = caller.ID
	}

	rdvs, err := s.calendrierRepo.List(ctx, caller.EntrepriseID, filter)
	if err != nil {
		return nil, err
	}

	for i := range rdvs {
		if rdvs[i].Utilisateur != nil {
			rdvs[i].Utilisateur.PasswordHash = ""
		}
	}

	return rdvs, nil
}

// Update applique une mise à jour partielle. Réservé aux représentants et
// admins.
func (s *CalendrierService) Update(ctx context.Context, caller rbac.Caller, id string, input UpdateRendezVousInput) (*domain.RendezVous, error) {
	rdv, err := s.calendrierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := rbac.CheckAccess(caller, rdv.EntrepriseID, domain.RoleRepresentant); err != nil {
		return nil, err
	}

	if input.Titre != nil {
		rdv.Titre = *input.Titre
	}
	if input.Description != nil {
		rdv.Description = *input.Description
	}
	if input.DateHeure != nil {
		rdv.DateHeure = *input.DateHeure
	}
	if input.Statut != nil {
		rdv.Statut = *input.Statut
	}

	if err := s.calendrierRepo.Update(ctx, rdv); err != nil {
		return nil, err
	}

	return s.calendrierRepo.GetByID(ctx, id)
}

// Delete supprime un rendez-vous. Le devis rattaché est conservé mais
// détaché. Réservé aux représentants et admins.
func (s *CalendrierService) Delete(ctx context.Context, caller rbac.Caller, id string) error {
	rdv, err := s.calendrierRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := rbac.CheckAccess(caller, rdv.EntrepriseID, domain.RoleRepresentant); err != nil {
		return err
	}

	return s.calendrierRepo.Delete(ctx, id)
}
