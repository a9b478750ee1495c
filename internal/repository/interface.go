package repository

import (
	"context"
	"time"

	"github.com/tlecomte/formatrack/internal/domain"
)

// UtilisateurRepository définit les accès aux données des utilisateurs
type UtilisateurRepository interface {
	// Create insère un nouvel utilisateur
	Create(ctx context.Context, u *domain.Utilisateur) error

	// GetByID retourne un utilisateur avec ses équipes et ses formations
	GetByID(ctx context.Context, id string) (*domain.Utilisateur, error)

	// GetByEmail retourne un utilisateur avec ses équipes (sans formations),
	// utilisé pour l'authentification et la construction de l'identité
	GetByEmail(ctx context.Context, email string) (*domain.Utilisateur, error)

	// ListByEntreprise retourne les utilisateurs d'une entreprise avec
	// équipes et formations
	ListByEntreprise(ctx context.Context, entrepriseID string) ([]domain.Utilisateur, error)

	// Update met à jour les champs de profil (y compris rôle et hash du mot
	// de passe)
	Update(ctx context.Context, u *domain.Utilisateur) error

	// SetEquipes remplace les affectations d'équipe de l'utilisateur
	// (sémantique "set" : les anciennes affectations sont supprimées)
	SetEquipes(ctx context.Context, userID string, membreIDs, responsableIDs []string) error

	// Delete supprime l'utilisateur
	Delete(ctx context.Context, id string) error
}

// EquipeRepository définit les accès aux données des équipes
type EquipeRepository interface {
	// Create insère une nouvelle équipe
	Create(ctx context.Context, e *domain.Equipe) error

	// GetByID retourne une équipe avec responsables et membres (formations
	// des membres incluses)
	GetByID(ctx context.Context, id string) (*domain.Equipe, error)

	// ListByEntreprise retourne les équipes actives d'une entreprise avec
	// responsables et membres (formations incluses)
	ListByEntreprise(ctx context.Context, entrepriseID string) ([]domain.Equipe, error)

	// CountByIDs compte combien des équipes données existent dans
	// l'entreprise (validation des affectations)
	CountByIDs(ctx context.Context, entrepriseID string, ids []string) (int, error)

	// ResponsablesDeMembre retourne les IDs distincts des responsables des
	// équipes dont l'utilisateur est membre
	ResponsablesDeMembre(ctx context.Context, userID string) ([]string, error)

	// Update met à jour les champs de l'équipe
	Update(ctx context.Context, e *domain.Equipe) error

	// Delete supprime l'équipe et ses affectations
	Delete(ctx context.Context, id string) error
}

// FormationAvecPorteur associe une formation à l'identité de son porteur,
// pour la génération des notifications d'expiration
type FormationAvecPorteur struct {
	Formation domain.Formation
	Nom       string
	Prenom    string
}

// FormationRepository définit les accès aux données des formations
type FormationRepository interface {
	// Create insère une nouvelle formation
	Create(ctx context.Context, f *domain.Formation) error

	// GetByID retourne une formation
	GetByID(ctx context.Context, id string) (*domain.Formation, error)

	// ListAvecExpiration retourne les formations de l'entreprise ayant une
	// date d'expiration, avec l'identité du porteur (balayage notifications)
	ListAvecExpiration(ctx context.Context, entrepriseID string) ([]FormationAvecPorteur, error)

	// Update met à jour une formation
	Update(ctx context.Context, f *domain.Formation) error

	// Delete supprime une formation
	Delete(ctx context.Context, id string) error
}

// CalendrierFilter restreint la liste des rendez-vous
type CalendrierFilter struct {
	De     *time.Time // Borne basse sur date_heure
	A      *time.Time // Borne haute sur date_heure
	UserID string     // Si non vide, rendez-vous de cet utilisateur uniquement
}

// CalendrierRepository définit les accès aux rendez-vous
type CalendrierRepository interface {
	// Create insère un rendez-vous
	Create(ctx context.Context, rdv *domain.RendezVous) error

	// CreateWithDevis insère un rendez-vous et son devis dans une même
	// transaction
	CreateWithDevis(ctx context.Context, rdv *domain.RendezVous, devis *domain.Devis) error

	// GetByID retourne un rendez-vous avec utilisateur et devis éventuels
	GetByID(ctx context.Context, id string) (*domain.RendezVous, error)

	// List retourne les rendez-vous d'une entreprise, filtrés et triés par
	// date croissante
	List(ctx context.Context, entrepriseID string, filter CalendrierFilter) ([]domain.RendezVous, error)

	// Update met à jour un rendez-vous
	Update(ctx context.Context, rdv *domain.RendezVous) error

	// Delete supprime un rendez-vous (et détache son devis)
	Delete(ctx context.Context, id string) error
}

// DevisRepository définit les accès aux devis
type DevisRepository interface {
	// Create insère un devis
	Create(ctx context.Context, d *domain.Devis) error

	// GetByID retourne un devis
	GetByID(ctx context.Context, id string) (*domain.Devis, error)

	// ListByEntreprise retourne les devis d'une entreprise, du plus récent
	// au plus ancien
	ListByEntreprise(ctx context.Context, entrepriseID string) ([]domain.Devis, error)

	// UpdateStatut change le statut d'un devis
	UpdateStatut(ctx context.Context, id string, statut domain.StatutDevis) error
}

// EntrepriseRepository définit les accès aux entreprises
type EntrepriseRepository interface {
	// Create insère une entreprise
	Create(ctx context.Context, e *domain.Entreprise) error

	// GetByID retourne une entreprise
	GetByID(ctx context.Context, id string) (*domain.Entreprise, error)
}

// NotificationRepository définit les accès aux notifications
type NotificationRepository interface {
	// CreateBatch insère un lot de notifications dans une même transaction
	CreateBatch(ctx context.Context, notifications []domain.Notification) error

	// ListByUtilisateur retourne les notifications d'un utilisateur, de la
	// plus récente à la plus ancienne
	ListByUtilisateur(ctx context.Context, userID string) ([]domain.Notification, error)

	// MarquerLue marque une notification comme lue. L'utilisateur doit être
	// le destinataire.
	MarquerLue(ctx context.Context, id, userID string) error
}
