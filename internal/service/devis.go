package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/tlecomte/formatrack/internal/domain"
	"github.com/tlecomte/formatrack/internal/rbac"
	"github.com/tlecomte/formatrack/internal/repository"
)

// DevisService porte la logique métier des devis de formation. Les données
// financières sont réservées aux représentants et admins.
type DevisService struct {
	devisRepo       repository.DevisRepository
	utilisateurRepo repository.UtilisateurRepository
}

// NewDevisService crée un nouveau DevisService
func NewDevisService(devisRepo repository.DevisRepository, utilisateurRepo repository.UtilisateurRepository) *DevisService {
	return &DevisService{
		devisRepo:       devisRepo,
		utilisateurRepo: utilisateurRepo,
	}
}

// CreateDevisInput décrit la création d'un devis autonome (sans
// rendez-vous)
type CreateDevisInput struct {
	Montant float64
	UserID  string
}

// Create crée un devis. Réservé aux représentants et admins.
func (s *DevisService) Create(ctx context.Context, caller rbac.Caller, input CreateDevisInput) (*domain.Devis, error) {
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

	devis := &domain.Devis{
		ID:           uuid.NewString(),
		Montant:      input.Montant,
		Statut:       domain.DevisEnAttente,
		UserID:       concerne.ID,
		EntrepriseID: caller.EntrepriseID,
	}

	if err := s.devisRepo.Create(ctx, devis); err != nil {
		return nil, err
	}

	return s.devisRepo.GetByID(ctx, devis.ID)
}

// Get retourne un devis. Réservé aux représentants et admins.
func (s *DevisService) Get(ctx context.Context, caller rbac.Caller, id string) (*domain.Devis, error) {
	devis, err := s.devisRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := rbac.CheckAccess(caller, devis.EntrepriseID, domain.RoleRepresentant); err != nil {
		return nil, err
	}

	return devis, nil
}

// List retourne les devis de l'entreprise de l'appelant, du plus récent au
// plus ancien. Réservé aux représentants et admins.
func (s *DevisService) List(ctx context.Context, caller rbac.Caller) ([]domain.Devis, error) {
	if err := rbac.CheckAccess(caller, caller.EntrepriseID, domain.RoleRepresentant); err != nil {
		return nil, err
	}

	return s.devisRepo.ListByEntreprise(ctx, caller.EntrepriseID)
}

// UpdateStatut valide ou refuse un devis. Réservé aux admins.
func (s *DevisService) UpdateStatut(ctx context.Context, caller rbac.Caller, id string, statut domain.StatutDevis) (*domain.Devis, error) {
	devis, err := s.devisRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := rbac.CheckAccess(caller, devis.EntrepriseID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	if err := s.devisRepo.UpdateStatut(ctx, id, statut); err != nil {
		return nil, err
	}

	return s.devisRepo.GetByID(ctx, id)
}
