package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tlecomte/formatrack/internal/domain"
	"github.com/tlecomte/formatrack/internal/middleware"
	"github.com/tlecomte/formatrack/internal/service"
)

// DevisHandler traite les endpoints des devis
type DevisHandler struct {
	devisService *service.DevisService
}

// NewDevisHandler crée un nouveau DevisHandler
func NewDevisHandler(devisService *service.DevisService) *DevisHandler {
	return &DevisHandler{devisService: devisService}
}

// CreateDevisRequest est le corps de création d'un devis
type CreateDevisRequest struct {
	Montant float64 `json:"montant"`
	UserID  string  `json:"user_id"`
}

// UpdateStatutDevisRequest est le corps de changement de statut
type UpdateStatutDevisRequest struct {
	Statut domain.StatutDevis `json:"statut"`
}

// Create traite POST /devis
func (h *DevisHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateDevisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeBadRequest, "invalid request body")
		return
	}

	if req.UserID == "" || req.Montant <= 0 {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeBadRequest, "user_id and a positive montant are required")
		return
	}

	caller := middleware.GetCallerFromContext(r.Context())
	devis, err := h.devisService.Create(r.Context(), caller, service.CreateDevisInput{
		Montant: req.Montant,
		UserID:  req.UserID,
	})
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, devis)
}

// Get traite GET /devis/{id}
func (h *DevisHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller := middleware.GetCallerFromContext(r.Context())

	devis, err := h.devisService.Get(r.Context(), caller, chi.URLParam(r, "id"))
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, devis)
}

// List traite GET /devis
func (h *DevisHandler) List(w http.ResponseWriter, r *http.Request) {
	caller := middleware.GetCallerFromContext(r.Context())

	devis, err := h.devisService.List(r.Context(), caller)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{"devis": devis})
}

// UpdateStatut traite PUT /devis/{id}/statut
func (h *DevisHandler) UpdateStatut(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatutDevisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeBadRequest, "invalid request body")
		return
	}

	switch req.Statut {
	case domain.DevisEnAttente, domain.DevisValide, domain.DevisRefuse:
	default:
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeBadRequest, "unknown devis statut")
		return
	}

	caller := middleware.GetCallerFromContext(r.Context())
	devis, err := h.devisService.UpdateStatut(r.Context(), caller, chi.URLParam(r, "id"), req.Statut)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, devis)
}
