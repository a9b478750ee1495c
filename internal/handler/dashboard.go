package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tlecomte/formatrack/internal/middleware"
	"github.com/tlecomte/formatrack/internal/service"
)

// DashboardHandler traite le tableau de bord d'entreprise
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler crée un nouveau DashboardHandler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Get traite GET /entreprises/{id}/dashboard
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller := middleware.GetCallerFromContext(r.Context())

	dashboard, err := h.dashboardService.Get(r.Context(), caller, chi.URLParam(r, "id"))
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, dashboard)
}
