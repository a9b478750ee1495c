package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tlecomte/formatrack/internal/domain"
	"github.com/tlecomte/formatrack/internal/middleware"
	"github.com/tlecomte/formatrack/internal/rbac"
	"github.com/tlecomte/formatrack/internal/service"
)

// NotificationHandler traite les endpoints des notifications
type NotificationHandler struct {
	notificationService *service.NotificationService
}

// NewNotificationHandler crée un nouveau NotificationHandler
func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// Verifier traite POST /notifications/verification : le balayage des
// expirations de l'entreprise de l'appelant, déclenché quotidiennement par
// un admin ou un ordonnanceur externe muni d'un token admin
func (h *NotificationHandler) Verifier(w http.ResponseWriter, r *http.Request) {
	caller := middleware.GetCallerFromContext(r.Context())
	if !caller.Authentifie() {
		HandleError(w, r, rbac.ErrNonAuthentifie)
		return
	}
	if !rbac.HasRequiredRole(caller.Role, domain.RoleAdmin) {
		HandleError(w, r, rbac.ErrRoleInsuffisant)
		return
	}

	rapport, err := h.notificationService.VerifierExpirations(r.Context(), caller.EntrepriseID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, rapport)
}

// List traite GET /notifications : les notifications de l'appelant
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	caller := middleware.GetCallerFromContext(r.Context())

	notifications, err := h.notificationService.Lister(r.Context(), caller)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{"notifications": notifications})
}

// MarquerLue traite POST /notifications/{id}/lu
func (h *NotificationHandler) MarquerLue(w http.ResponseWriter, r *http.Request) {
	caller := middleware.GetCallerFromContext(r.Context())

	if err := h.notificationService.MarquerLue(r.Context(), caller, chi.URLParam(r, "id")); err != nil {
		HandleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
