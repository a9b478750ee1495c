// Package rbac porte les règles d'accès : hiérarchie des rôles, isolation
// par entreprise et filtrage des champs visibles selon la relation entre
// l'appelant et la cible. Les décisions sont pures et fail-closed : toute
// information manquante vaut refus.
package rbac

import (
	"errors"

	"github.com/tlecomte/formatrack/internal/domain"
)

// Les trois refus possibles, distincts pour que la couche HTTP puisse
// répondre 401 ou 403 avec le bon code
var (
	// ErrNonAuthentifie est retournée quand aucune identité n'est présente
	ErrNonAuthentifie = errors.New("caller is not authenticated")

	// ErrMauvaiseEntreprise est retournée quand l'appelant vise une autre
	// entreprise que la sienne. Jamais de réponse vide en 200 : l'isolation
	// ne doit pas laisser deviner l'existence des données.
	ErrMauvaiseEntreprise = errors.New("caller belongs to a different entreprise")

	// ErrRoleInsuffisant est retournée quand le rôle de l'appelant est sous
	// le seuil requis
	ErrRoleInsuffisant = errors.New("caller role is insufficient")
)

// Caller représente l'identité de l'appelant, extraite du token par le
// middleware d'authentification. Une valeur zéro est non authentifiée.
type Caller struct {
	ID                 string
	Role               domain.Role
	EntrepriseID       string
	EquipesMembre      []string
	EquipesResponsable []string
}

// Authentifie indique si une identité est présente
func (c Caller) Authentifie() bool {
	return c.ID != ""
}

// EstResponsableDe indique si l'appelant est responsable de l'équipe donnée
func (c Caller) EstResponsableDe(equipeID string) bool {
	for _, id := range c.EquipesResponsable {
		if id == equipeID {
			return true
		}
	}
	return false
}

// EstMembreDe indique si l'appelant est membre de l'équipe donnée
func (c Caller) EstMembreDe(equipeID string) bool {
	for _, id := range c.EquipesMembre {
		if id == equipeID {
			return true
		}
	}
	return false
}

// HasRequiredRole indique si le rôle atteint le seuil requis dans la
// hiérarchie ouvrier < representant < admin. Un rôle inconnu échoue
// toujours.
func HasRequiredRole(role, required domain.Role) bool {
	if role.Niveau() < 0 || required.Niveau() < 0 {
		return false
	}
	return role.Niveau() >= required.Niveau()
}

// CheckAccess vérifie l'accès de l'appelant aux données d'une entreprise
// avec un seuil de rôle. Les refus sont rendus dans l'ordre : identité
// absente, mauvaise entreprise, rôle insuffisant.
func CheckAccess(caller Caller, entrepriseID string, required domain.Role) error {
	if !caller.Authentifie() {
		return ErrNonAuthentifie
	}
	if caller.EntrepriseID == "" || caller.EntrepriseID != entrepriseID {
		return ErrMauvaiseEntreprise
	}
	if !HasRequiredRole(caller.Role, required) {
		return ErrRoleInsuffisant
	}
	return nil
}

// estResponsableDeLaCible indique si l'appelant encadre la cible, c'est à
// dire s'il est responsable d'au moins une équipe dont la cible est membre
func estResponsableDeLaCible(caller Caller, cible *domain.Utilisateur) bool {
	for _, e := range cible.EquipesMembre {
		if caller.EstResponsableDe(e.ID) {
			return true
		}
	}
	return false
}

// CanViewFullProfile indique si l'appelant voit le profil complet de la
// cible (PII et liste complète des formations) : admin de la même
// entreprise, la cible elle-même, ou responsable d'une équipe de la cible.
func CanViewFullProfile(caller Caller, cible *domain.Utilisateur) bool {
	if !caller.Authentifie() || caller.EntrepriseID != cible.EntrepriseID {
		return false
	}
	if caller.Role == domain.RoleAdmin {
		return true
	}
	if caller.ID == cible.ID {
		return true
	}
	return estResponsableDeLaCible(caller, cible)
}

// CanUpdateProfil indique si l'appelant peut modifier les champs de profil
// de la cible (nom, coordonnées, mot de passe). Admin de l'entreprise ou
// la cible elle-même.
func CanUpdateProfil(caller Caller, cible *domain.Utilisateur) bool {
	if !caller.Authentifie() || caller.EntrepriseID != cible.EntrepriseID {
		return false
	}
	return caller.Role == domain.RoleAdmin || caller.ID == cible.ID
}

// CanChangeRole indique si l'appelant peut changer le rôle de la cible.
// Réservé aux admins : un utilisateur ne s'auto-promeut pas.
func CanChangeRole(caller Caller, cible *domain.Utilisateur) bool {
	if !caller.Authentifie() || caller.EntrepriseID != cible.EntrepriseID {
		return false
	}
	return caller.Role == domain.RoleAdmin
}

// CanAssignEquipes indique si l'appelant peut modifier les affectations
// d'équipe de la cible : admin, ou responsable d'une équipe de la cible.
func CanAssignEquipes(caller Caller, cible *domain.Utilisateur) bool {
	if !caller.Authentifie() || caller.EntrepriseID != cible.EntrepriseID {
		return false
	}
	if caller.Role == domain.RoleAdmin {
		return true
	}
	return estResponsableDeLaCible(caller, cible)
}

// CanDeleteUtilisateur indique si l'appelant peut supprimer la cible.
// Admin de l'entreprise uniquement.
func CanDeleteUtilisateur(caller Caller, cible *domain.Utilisateur) bool {
	if !caller.Authentifie() || caller.EntrepriseID != cible.EntrepriseID {
		return false
	}
	return caller.Role == domain.RoleAdmin
}

// CanUpdateEquipe indique si l'appelant peut modifier une équipe : admin
// de l'entreprise ou responsable de l'équipe.
func CanUpdateEquipe(caller Caller, equipe *domain.Equipe) bool {
	if !caller.Authentifie() || caller.EntrepriseID != equipe.EntrepriseID {
		return false
	}
	return caller.Role == domain.RoleAdmin || caller.EstResponsableDe(equipe.ID)
}

// CanViewEquipe indique si l'appelant peut consulter le détail d'une
// équipe : admin ou représentant de l'entreprise, membre ou responsable de
// l'équipe.
func CanViewEquipe(caller Caller, equipe *domain.Equipe) bool {
	if !caller.Authentifie() || caller.EntrepriseID != equipe.EntrepriseID {
		return false
	}
	if HasRequiredRole(caller.Role, domain.RoleRepresentant) {
		return true
	}
	return caller.EstMembreDe(equipe.ID) || caller.EstResponsableDe(equipe.ID)
}
