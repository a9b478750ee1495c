package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/tlecomte/formatrack/internal/domain"
	"github.com/tlecomte/formatrack/internal/rbac"
	"github.com/tlecomte/formatrack/internal/repository"
)

// Claims représente les claims du token JWT. L'identité complète de
// l'appelant (rôle, entreprise, équipes) est embarquée dans le token pour
// que les décisions d'accès n'exigent pas de lecture en base.
type Claims struct {
	UserID             string      `json:"user_id"`
	Role               domain.Role `json:"role"`
	EntrepriseID       string      `json:"entreprise_id"`
	EquipesMembre      []string    `json:"equipes_membre,omitempty"`
	EquipesResponsable []string    `json:"equipes_responsable,omitempty"`
	jwt.RegisteredClaims
}

// Caller construit l'identité d'accès portée par les claims
func (c *Claims) Caller() rbac.Caller {
	return rbac.Caller{
		ID:                 c.UserID,
		Role:               c.Role,
		EntrepriseID:       c.EntrepriseID,
		EquipesMembre:      c.EquipesMembre,
		EquipesResponsable: c.EquipesResponsable,
	}
}

// AuthService gère l'authentification et les opérations JWT
type AuthService struct {
	utilisateurRepo repository.UtilisateurRepository
	jwtSecret       string
	jwtExpiry       time.Duration
}

// NewAuthService crée un nouveau AuthService
func NewAuthService(utilisateurRepo repository.UtilisateurRepository, jwtSecret string, jwtExpiry time.Duration) *AuthService {
	return &AuthService{
		utilisateurRepo: utilisateurRepo,
		jwtSecret:       jwtSecret,
		jwtExpiry:       jwtExpiry,
	}
}

// Login vérifie les identifiants et émet un token JWT. L'échec est
// toujours ErrInvalidCredentials, que le compte existe ou non.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.Utilisateur, error) {
	user, err := s.utilisateurRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUtilisateurNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	membre := make([]string, 0, len(user.EquipesMembre))
	for _, e := range user.EquipesMembre {
		membre = append(membre, e.ID)
	}
	responsable := make([]string, 0, len(user.EquipesResponsable))
	for _, e := range user.EquipesResponsable {
		responsable = append(responsable, e.ID)
	}

	claims := &Claims{
		UserID:             user.ID,
		Role:               user.Role,
		EntrepriseID:       user.EntrepriseID,
		EquipesMembre:      membre,
		EquipesResponsable: responsable,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.jwtExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, user, nil
}

// ValidateToken valide un token JWT et retourne ses claims
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, domain.ErrInvalidToken
	}

	return claims, nil
}

// HashPassword calcule le hash bcrypt d'un mot de passe
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
