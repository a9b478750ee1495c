package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tlecomte/formatrack/internal/middleware"
	"github.com/tlecomte/formatrack/internal/service"
)

// EntrepriseHandler traite les endpoints des entreprises
type EntrepriseHandler struct {
	entrepriseService *service.EntrepriseService
}

// NewEntrepriseHandler crée un nouveau EntrepriseHandler
func NewEntrepriseHandler(entrepriseService *service.EntrepriseService) *EntrepriseHandler {
	return &EntrepriseHandler{entrepriseService: entrepriseService}
}

// Get traite GET /entreprises/{id}
func (h *EntrepriseHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller := middleware.GetCallerFromContext(r.Context())

	detail, err := h.entrepriseService.Get(r.Context(), caller, chi.URLParam(r, "id"))
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, detail)
}
