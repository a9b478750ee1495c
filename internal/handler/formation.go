package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tlecomte/formatrack/internal/domain"
	"github.com/tlecomte/formatrack/internal/middleware"
	"github.com/tlecomte/formatrack/internal/service"
)

// FormationHandler traite les endpoints des formations
type FormationHandler struct {
	formationService *service.FormationService
}

// NewFormationHandler crée un nouveau FormationHandler
func NewFormationHandler(formationService *service.FormationService) *FormationHandler {
	return &FormationHandler{formationService: formationService}
}

// Les dates de formation sont échangées au format AAAA-MM-JJ : la
// péremption se joue à la journée, pas à l'heure
const dateLayout = "2006-01-02"

// parseDate analyse une date optionnelle au format AAAA-MM-JJ
func parseDate(value string) (*time.Time, bool) {
	if value == "" {
		return nil, true
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, false
	}
	return &t, true
}

// CreateFormationRequest est le corps de création d'une formation
type CreateFormationRequest struct {
	TypeFormation  string `json:"type_formation"`
	Nom            string `json:"nom"`
	Description    string `json:"description"`
	Organisme      string `json:"organisme"`
	DateDelivrance string `json:"date_delivrance"`
	DateExpiration string `json:"date_expiration"`
	ValiditeMois   int    `json:"validite"`
	Obligatoire    bool   `json:"obligatoire"`
	UserID         string `json:"user_id"`
}

// UpdateFormationRequest est le corps de mise à jour partielle
type UpdateFormationRequest struct {
	TypeFormation  *string `json:"type_formation"`
	Nom            *string `json:"nom"`
	Description    *string `json:"description"`
	Organisme      *string `json:"organisme"`
	DateDelivrance *string `json:"date_delivrance"`
	DateExpiration *string `json:"date_expiration"`
	ValiditeMois   *int    `json:"validite"`
	Obligatoire    *bool   `json:"obligatoire"`
}

// Create traite POST /formations
func (h *FormationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateFormationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeBadRequest, "invalid request body")
		return
	}

	if req.Nom == "" || req.TypeFormation == "" || req.UserID == "" {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeBadRequest, "nom, type_formation and user_id are required")
		return
	}

	delivrance, ok := parseDate(req.DateDelivrance)
	if !ok {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeBadRequest, "date_delivrance must be YYYY-MM-DD")
		return
	}
	expiration, ok := parseDate(req.DateExpiration)
	if !ok {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeBadRequest, "date_expiration must be YYYY-MM-DD")
		return
	}

	caller := middleware.GetCallerFromContext(r.Context())
	formation, err := h.formationService.Create(r.Context(), caller, service.CreateFormationInput{
		TypeFormation:  req.TypeFormation,
		Nom:            req.Nom,
		Description:    req.Description,
		Organisme:      req.Organisme,
		DateDelivrance: delivrance,
		DateExpiration: expiration,
		ValiditeMois:   req.ValiditeMois,
		Obligatoire:    req.Obligatoire,
		UserID:         req.UserID,
	})
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, formation)
}

// Get traite GET /formations/{id}
func (h *FormationHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller := middleware.GetCallerFromContext(r.Context())

	formation, err := h.formationService.Get(r.Context(), caller, chi.URLParam(r, "id"))
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, formation)
}

// Update traite PUT /formations/{id}
func (h *FormationHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateFormationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeBadRequest, "invalid request body")
		return
	}

	input := service.UpdateFormationInput{
		TypeFormation: req.TypeFormation,
		Nom:           req.Nom,
		Description:   req.Description,
		Organisme:     req.Organisme,
		ValiditeMois:  req.ValiditeMois,
		Obligatoire:   req.Obligatoire,
	}

	if req.DateDelivrance != nil {
		d, ok := parseDate(*req.DateDelivrance)
		if !ok || d == nil {
			RespondWithError(w, r, http.StatusBadRequest, domain.CodeBadRequest, "date_delivrance must be YYYY-MM-DD")
			return
		}
		input.DateDelivrance = d
	}
	if req.DateExpiration != nil {
		d, ok := parseDate(*req.DateExpiration)
		if !ok || d == nil {
			RespondWithError(w, r, http.StatusBadRequest, domain.CodeBadRequest, "date_expiration must be YYYY-MM-DD")
			return
		}
		input.DateExpiration = d
	}

	caller := middleware.GetCallerFromContext(r.Context())
	formation, err := h.formationService.Update(r.Context(), caller, chi.URLParam(r, "id"), input)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, formation)
}

// Delete traite DELETE /formations/{id}
func (h *FormationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller := middleware.GetCallerFromContext(r.Context())

	if err := h.formationService.Delete(r.Context(), caller, chi.URLParam(r, "id")); err != nil {
		HandleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
