package handler

import (
	"encoding/json"
	"net/http"

	"github.com/tlecomte/formatrack/internal/domain"
	"github.com/tlecomte/formatrack/internal/service"
)

// AuthHandler traite les endpoints d'authentification
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler crée un nouveau AuthHandler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest est le corps de requête de connexion
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse est la réponse de connexion
type LoginResponse struct {
	Token       string              `json:"token"`
	Utilisateur *domain.Utilisateur `json:"utilisateur"`
}

// Login traite POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeBadRequest, "invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeBadRequest, "email and password are required")
		return
	}

	token, user, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, LoginResponse{Token: token, Utilisateur: user})
}
