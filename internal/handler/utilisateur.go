package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tlecomte/formatrack/internal/domain"
	"github.com/tlecomte/formatrack/internal/middleware"
	"github.com/tlecomte/formatrack/internal/service"
)

// UtilisateurHandler traite les endpoints des utilisateurs
type UtilisateurHandler struct {
	utilisateurService *service.UtilisateurService
}

// NewUtilisateurHandler crée un nouveau UtilisateurHandler
func NewUtilisateurHandler(utilisateurService *service.UtilisateurService) *UtilisateurHandler {
	return &UtilisateurHandler{utilisateurService: utilisateurService}
}

// CreateUtilisateurRequest est le corps de création d'un utilisateur
type CreateUtilisateurRequest struct {
	Nom                string      `json:"nom"`
	Prenom             string      `json:"prenom"`
	Email              string      `json:"email"`
	Password           string      `json:"password"`
	Telephone          string      `json:"telephone"`
	Adresse            string      `json:"adresse"`
	NumSecuriteSociale string      `json:"num_securite_sociale"`
	Role               domain.Role `json:"role"`
	EquipesMembre      []string    `json:"equipes_membre"`
	EquipesResponsable []string    `json:"equipes_responsable"`
}

// UpdateUtilisateurRequest est le corps de mise à jour partielle : seuls
// les champs présents sont modifiés
type UpdateUtilisateurRequest struct {
	Nom                *string      `json:"nom"`
	Prenom             *string      `json:"prenom"`
	Email              *string      `json:"email"`
	Password           *string      `json:"password"`
	Telephone          *string      `json:"telephone"`
	Adresse            *string      `json:"adresse"`
	NumSecuriteSociale *string      `json:"num_securite_sociale"`
	Role               *domain.Role `json:"role"`
	EquipesMembre      *[]string    `json:"equipes_membre"`
	EquipesResponsable *[]string    `json:"equipes_responsable"`
}

// Create traite POST /utilisateurs
func (h *UtilisateurHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUtilisateurRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeBadRequest, "invalid request body")
		return
	}

	if req.Nom == "" || req.Prenom == "" || req.Email == "" || req.Password == "" {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeBadRequest, "nom, prenom, email and password are required")
		return
	}

	caller := middleware.GetCallerFromContext(r.Context())
	user, err := h.utilisateurService.Create(r.Context(), caller, service.CreateUtilisateurInput{
		Nom:                req.Nom,
		Prenom:             req.Prenom,
		Email:              req.Email,
		Password:           req.Password,
		Telephone:          req.Telephone,
		Adresse:            req.Adresse,
		NumSecuriteSociale: req.NumSecuriteSociale,
		Role:               req.Role,
		EquipesMembre:      req.EquipesMembre,
		EquipesResponsable: req.EquipesResponsable,
	})
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, user)
}

// Get traite GET /utilisateurs/{id}
func (h *UtilisateurHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller := middleware.GetCallerFromContext(r.Context())

	vue, err := h.utilisateurService.Get(r.Context(), caller, chi.URLParam(r, "id"))
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, vue)
}

// List traite GET /utilisateurs
func (h *UtilisateurHandler) List(w http.ResponseWriter, r *http.Request) {
	caller := middleware.GetCallerFromContext(r.Context())

	vues, err := h.utilisateurService.List(r.Context(), caller)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{"utilisateurs": vues})
}

// Export traite GET /utilisateurs/export : le registre CSV des employés de
// l'entreprise
func (h *UtilisateurHandler) Export(w http.ResponseWriter, r *http.Request) {
	caller := middleware.GetCallerFromContext(r.Context())

	contenu, err := h.utilisateurService.ExportCSV(r.Context(), caller)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="employes.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(contenu)
}

// GetFormations traite GET /utilisateurs/{id}/formations
func (h *UtilisateurHandler) GetFormations(w http.ResponseWriter, r *http.Request) {
	caller := middleware.GetCallerFromContext(r.Context())

	formations, err := h.utilisateurService.GetFormations(r.Context(), caller, chi.URLParam(r, "id"))
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{"formations": formations})
}

// GetStatut traite GET /utilisateurs/{id}/statut
func (h *UtilisateurHandler) GetStatut(w http.ResponseWriter, r *http.Request) {
	caller := middleware.GetCallerFromContext(r.Context())

	statut, err := h.utilisateurService.GetStatut(r.Context(), caller, chi.URLParam(r, "id"))
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, statut)
}

// Update traite PUT /utilisateurs/{id}
func (h *UtilisateurHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateUtilisateurRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeBadRequest, "invalid request body")
		return
	}

	caller := middleware.GetCallerFromContext(r.Context())
	user, err := h.utilisateurService.Update(r.Context(), caller, chi.URLParam(r, "id"), service.UpdateUtilisateurInput{
		Nom:                req.Nom,
		Prenom:             req.Prenom,
		Email:              req.Email,
		Password:           req.Password,
		Telephone:          req.Telephone,
		Adresse:            req.Adresse,
		NumSecuriteSociale: req.NumSecuriteSociale,
		Role:               req.Role,
		EquipesMembre:      req.EquipesMembre,
		EquipesResponsable: req.EquipesResponsable,
	})
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, user)
}

// Delete traite DELETE /utilisateurs/{id}
func (h *UtilisateurHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller := middleware.GetCallerFromContext(r.Context())

	if err := h.utilisateurService.Delete(r.Context(), caller, chi.URLParam(r, "id")); err != nil {
		HandleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
