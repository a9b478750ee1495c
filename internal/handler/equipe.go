package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tlecomte/formatrack/internal/domain"
	"github.com/tlecomte/formatrack/internal/middleware"
	"github.com/tlecomte/formatrack/internal/service"
)

// EquipeHandler traite les endpoints des équipes
type EquipeHandler struct {
	equipeService *service.EquipeService
}

// NewEquipeHandler crée un nouveau EquipeHandler
func NewEquipeHandler(equipeService *service.EquipeService) *EquipeHandler {
	return &EquipeHandler{equipeService: equipeService}
}

// CreateEquipeRequest est le corps de création d'une équipe
type CreateEquipeRequest struct {
	Nom     string `json:"nom"`
	Code    string `json:"code"`
	Adresse string `json:"adresse"`
}

// UpdateEquipeRequest est le corps de mise à jour partielle d'une équipe
type UpdateEquipeRequest struct {
	Nom     *string `json:"nom"`
	Code    *string `json:"code"`
	Adresse *string `json:"adresse"`
	Actif   *bool   `json:"actif"`
}

// Create traite POST /equipes
func (h *EquipeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateEquipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeBadRequest, "invalid request body")
		return
	}

	if req.Nom == "" {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeBadRequest, "nom is required")
		return
	}

	caller := middleware.GetCallerFromContext(r.Context())
	equipe, err := h.equipeService.Create(r.Context(), caller, service.CreateEquipeInput{
		Nom:     req.Nom,
		Code:    req.Code,
		Adresse: req.Adresse,
	})
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, equipe)
}

// Get traite GET /equipes/{id}
func (h *EquipeHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller := middleware.GetCallerFromContext(r.Context())

	result, err := h.equipeService.Get(r.Context(), caller, chi.URLParam(r, "id"))
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, result)
}

// List traite GET /equipes
func (h *EquipeHandler) List(w http.ResponseWriter, r *http.Request) {
	caller := middleware.GetCallerFromContext(r.Context())

	equipes, err := h.equipeService.List(r.Context(), caller)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{"equipes": equipes})
}

// Update traite PUT /equipes/{id}
func (h *EquipeHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateEquipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeBadRequest, "invalid request body")
		return
	}

	caller := middleware.GetCallerFromContext(r.Context())
	equipe, err := h.equipeService.Update(r.Context(), caller, chi.URLParam(r, "id"), service.UpdateEquipeInput{
		Nom:     req.Nom,
		Code:    req.Code,
		Adresse: req.Adresse,
		Actif:   req.Actif,
	})
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, equipe)
}

// Delete traite DELETE /equipes/{id}
func (h *EquipeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller := middleware.GetCallerFromContext(r.Context())

	if err := h.equipeService.Delete(r.Context(), caller, chi.URLParam(r, "id")); err != nil {
		HandleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
