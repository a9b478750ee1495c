package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tlecomte/formatrack/internal/domain"
	"github.com/tlecomte/formatrack/internal/middleware"
	"github.com/tlecomte/formatrack/internal/repository"
	"github.com/tlecomte/formatrack/internal/service"
)

// CalendrierHandler traite les endpoints du calendrier
type CalendrierHandler struct {
	calendrierService *service.CalendrierService
}

// NewCalendrierHandler crée un nouveau CalendrierHandler
func NewCalendrierHandler(calendrierService *service.CalendrierService) *CalendrierHandler {
	return &CalendrierHandler{calendrierService: calendrierService}
}

// CreateRendezVousRequest est le corps de création d'un rendez-vous, avec
// devis rattaché optionnel
type CreateRendezVousRequest struct {
	Titre       string    `json:"titre"`
	Description string    `json:"description"`
	DateHeure   time.Time `json:"date_heure"`
	UserID      string    `json:"user_id"`
	Devis       *struct {
		Montant float64 `json:"montant"`
	} `json:"devis"`
}

// UpdateRendezVousRequest est le corps de mise à jour partielle
type UpdateRendezVousRequest struct {
	Titre       *string                  `json:"titre"`
	Description *string                  `json:"description"`
	DateHeure   *time.Time               `json:"date_heure"`
	Statut      *domain.StatutRendezVous `json:"statut"`
}

// parseBorne analyse une borne temporelle optionnelle, en RFC 3339 ou
// AAAA-MM-JJ
func parseBorne(value string) (*time.Time, bool) {
	if value == "" {
		return nil, true
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, true
	}
	if t, err := time.Parse(dateLayout, value); err == nil {
		return &t, true
	}
	return nil, false
}

// Create traite POST /calendrier
func (h *CalendrierHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRendezVousRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeBadRequest, "invalid request body")
		return
	}

	if req.Titre == "" || req.UserID == "" || req.DateHeure.IsZero() {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeBadRequest, "titre, date_heure and user_id are required")
		return
	}

	input := service.CreateRendezVousInput{
		Titre:       req.Titre,
		Description: req.Description,
		DateHeure:   req.DateHeure,
		UserID:      req.UserID,
	}
	if req.Devis != nil {
		input.Devis = &service.DevisInput{Montant: req.Devis.Montant}
	}

	caller := middleware.GetCallerFromContext(r.Context())
	rdv, err := h.calendrierService.Create(r.Context(), caller, input)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, rdv)
}

// Get traite GET /calendrier/{id}
func (h *CalendrierHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller := middleware.GetCallerFromContext(r.Context())

	rdv, err := h.calendrierService.Get(r.Context(), caller, chi.URLParam(r, "id"))
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, rdv)
}

// List traite GET /calendrier?de=...&a=...&user_id=...
func (h *CalendrierHandler) List(w http.ResponseWriter, r *http.Request) {
	de, ok := parseBorne(r.URL.Query().Get("de"))
	if !ok {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeBadRequest, "de must be RFC 3339 or YYYY-MM-DD")
		return
	}
	a, ok := parseBorne(r.URL.Query().Get("a"))
	if !ok {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeBadRequest, "a must be RFC 3339 or YYYY-MM-DD")
		return
	}

	filter := repository.CalendrierFilter{
		De:     de,
		A:      a,
		UserID: r.URL.Query().Get("user_id"),
	}

	caller := middleware.GetCallerFromContext(r.Context())
	rdvs, err := h.calendrierService.List(r.Context(), caller, filter)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{"rendez_vous": rdvs})
}

// Update traite PUT /calendrier/{id}
func (h *CalendrierHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateRendezVousRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeBadRequest, "invalid request body")
		return
	}

	caller := middleware.GetCallerFromContext(r.Context())
	rdv, err := h.calendrierService.Update(r.Context(), caller, chi.URLParam(r, "id"), service.UpdateRendezVousInput{
		Titre:       req.Titre,
		Description: req.Description,
		DateHeure:   req.DateHeure,
		Statut:      req.Statut,
	})
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, rdv)
}

// Delete traite DELETE /calendrier/{id}
func (h *CalendrierHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller := middleware.GetCallerFromContext(r.Context())

	if err := h.calendrierService.Delete(r.Context(), caller, chi.URLParam(r, "id")); err != nil {
		HandleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
