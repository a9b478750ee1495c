package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/tlecomte/formatrack/internal/domain"
	"github.com/tlecomte/formatrack/internal/rbac"
)

// ErrorResponse est l'enveloppe d'erreur de l'API
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contient le code et la description de l'erreur
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondWithError envoie une réponse d'erreur
func RespondWithError(w http.ResponseWriter, r *http.Request, statusCode int, code domain.ErrorCode, message string) {
	render.Status(r, statusCode)
	render.JSON(w, r, ErrorResponse{
		Error: ErrorDetail{
			Code:    string(code),
			Message: message,
		},
	})
}

// HandleError traduit les erreurs métier et d'accès en réponses HTTP. Les
// trois refus d'accès restent distincts : non authentifié (401), mauvaise
// entreprise (403 WRONG_COMPANY), rôle insuffisant (403 FORBIDDEN).
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, rbac.ErrNonAuthentifie):
		RespondWithError(w, r, http.StatusUnauthorized, domain.CodeUnauthorized, "authentication required")
	case errors.Is(err, rbac.ErrMauvaiseEntreprise):
		RespondWithError(w, r, http.StatusForbidden, domain.CodeWrongEntreprise, "resource belongs to a different entreprise")
	case errors.Is(err, rbac.ErrRoleInsuffisant):
		RespondWithError(w, r, http.StatusForbidden, domain.CodeForbidden, "insufficient role")
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrUnauthorized):
		RespondWithError(w, r, http.StatusUnauthorized, domain.CodeUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrEmailExists):
		RespondWithError(w, r, http.StatusConflict, domain.CodeEmailExists, "email already in use")
	case errors.Is(err, domain.ErrEquipeConflict):
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeEquipeConflict, "user cannot be both membre and responsable of the same equipe")
	case errors.Is(err, domain.ErrEquipeInconnue):
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeEquipeConflict, "one or more equipes do not exist in this entreprise")
	case errors.Is(err, domain.ErrRoleInvalide):
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeBadRequest, "unknown role")
	case errors.Is(err, domain.ErrUtilisateurNotFound),
		errors.Is(err, domain.ErrEquipeNotFound),
		errors.Is(err, domain.ErrFormationNotFound),
		errors.Is(err, domain.ErrEntrepriseNotFound),
		errors.Is(err, domain.ErrRendezVousNotFound),
		errors.Is(err, domain.ErrDevisNotFound),
		errors.Is(err, domain.ErrNotificationNotFound),
		errors.Is(err, domain.ErrNotFound):
		RespondWithError(w, r, http.StatusNotFound, domain.CodeNotFound, "resource not found")
	default:
		RespondWithError(w, r, http.StatusInternalServerError, domain.CodeInternal, "internal server error")
	}
}
