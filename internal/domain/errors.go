package domain

import "errors"

// Erreurs métier retournées par les services et traduites en réponses HTTP
// par la couche handler
var (
	// ErrNotFound est retournée quand une ressource n'existe pas
	ErrNotFound = errors.New("resource not found")

	// ErrUtilisateurNotFound est retournée quand l'utilisateur n'existe pas
	ErrUtilisateurNotFound = errors.New("utilisateur not found")

	// ErrEquipeNotFound est retournée quand l'équipe n'existe pas
	ErrEquipeNotFound = errors.New("equipe not found")

	// ErrFormationNotFound est retournée quand la formation n'existe pas
	ErrFormationNotFound = errors.New("formation not found")

	// ErrEntrepriseNotFound est retournée quand l'entreprise n'existe pas
	ErrEntrepriseNotFound = errors.New("entreprise not found")

	// ErrRendezVousNotFound est retournée quand le rendez-vous n'existe pas
	ErrRendezVousNotFound = errors.New("rendez-vous not found")

	// ErrDevisNotFound est retournée quand le devis n'existe pas
	ErrDevisNotFound = errors.New("devis not found")

	// ErrNotificationNotFound est retournée quand la notification n'existe pas
	ErrNotificationNotFound = errors.New("notification not found")

	// ErrEmailExists est retournée quand l'email est déjà utilisé par un
	// autre utilisateur
	ErrEmailExists = errors.New("email already in use")

	// ErrEquipeConflict est retournée quand un utilisateur serait à la fois
	// membre et responsable de la même équipe
	ErrEquipeConflict = errors.New("user cannot be both membre and responsable of the same equipe")

	// ErrEquipeInconnue est retournée quand une affectation référence une
	// équipe absente de l'entreprise
	ErrEquipeInconnue = errors.New("one or more equipes do not exist in this entreprise")

	// ErrRoleInvalide est retournée quand le rôle demandé n'existe pas
	ErrRoleInvalide = errors.New("unknown role")

	// ErrInvalidCredentials est retournée quand email ou mot de passe est
	// incorrect. Volontairement indistincte pour ne pas révéler l'existence
	// d'un compte.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthorized est retournée en cas d'échec d'authentification
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidToken est retournée quand le token JWT est invalide
	ErrInvalidToken = errors.New("invalid token")
)

// ErrorCode représente les codes d'erreur de l'API
type ErrorCode string

// Codes d'erreur exposés dans l'enveloppe {"error":{"code","message"}}
const (
	CodeNotFound        ErrorCode = "NOT_FOUND"      // Ressource non trouvée
	CodeEmailExists     ErrorCode = "EMAIL_EXISTS"   // Email déjà utilisé
	CodeEquipeConflict  ErrorCode = "TEAM_CONFLICT"  // Membre et responsable à la fois
	CodeBadRequest      ErrorCode = "BAD_REQUEST"    // Requête invalide
	CodeUnauthorized    ErrorCode = "UNAUTHORIZED"   // Non authentifié
	CodeWrongEntreprise ErrorCode = "WRONG_COMPANY"  // Mauvaise entreprise
	CodeForbidden       ErrorCode = "FORBIDDEN"      // Rôle ou droits insuffisants
	CodeInternal        ErrorCode = "INTERNAL_ERROR" // Erreur interne
)

// MapErrorToCode traduit une erreur métier en code d'erreur API
func MapErrorToCode(err error) ErrorCode {
	switch {
	case errors.Is(err, ErrEmailExists):
		return CodeEmailExists
	case errors.Is(err, ErrEquipeConflict), errors.Is(err, ErrEquipeInconnue):
		return CodeEquipeConflict
	case errors.Is(err, ErrRoleInvalide):
		return CodeBadRequest
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrInvalidToken),
		errors.Is(err, ErrInvalidCredentials):
		return CodeUnauthorized
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrUtilisateurNotFound),
		errors.Is(err, ErrEquipeNotFound), errors.Is(err, ErrFormationNotFound),
		errors.Is(err, ErrEntrepriseNotFound), errors.Is(err, ErrRendezVousNotFound),
		errors.Is(err, ErrDevisNotFound), errors.Is(err, ErrNotificationNotFound):
		return CodeNotFound
	default:
		return CodeInternal
	}
}
