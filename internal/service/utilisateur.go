package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tlecomte/formatrack/internal/domain"
	"github.com/tlecomte/formatrack/internal/rbac"
	"github.com/tlecomte/formatrack/internal/repository"
	"github.com/tlecomte/formatrack/internal/status"
)

// UtilisateurService porte la logique métier des utilisateurs : création,
// profils filtrés selon l'appelant, affectations d'équipe et statut de
// conformité.
type UtilisateurService struct {
	utilisateurRepo repository.UtilisateurRepository
	equipeRepo      repository.EquipeRepository

	// now est l'horloge injectée, les statuts dérivés dépendent de
	// l'instant d'évaluation
	now func() time.Time
}

// NewUtilisateurService crée un nouveau UtilisateurService
func NewUtilisateurService(utilisateurRepo repository.UtilisateurRepository, equipeRepo repository.EquipeRepository, now func() time.Time) *UtilisateurService {
	return &UtilisateurService{
		utilisateurRepo: utilisateurRepo,
		equipeRepo:      equipeRepo,
		now:             now,
	}
}

// CreateUtilisateurInput décrit la création d'un utilisateur
type CreateUtilisateurInput struct {
	Nom                string
	Prenom             string
	Email              string
	Password           string
	Telephone          string
	Adresse            string
	NumSecuriteSociale string
	Role               domain.Role
	EquipesMembre      []string
	EquipesResponsable []string
}

// UpdateUtilisateurInput décrit une mise à jour partielle : seuls les
// champs non nil sont modifiés
type UpdateUtilisateurInput struct {
	Nom                *string
	Prenom             *string
	Email              *string
	Password           *string
	Telephone          *string
	Adresse            *string
	NumSecuriteSociale *string
	Role               *domain.Role
	EquipesMembre      *[]string
	EquipesResponsable *[]string
}

// StatutUtilisateur est la synthèse de conformité d'un utilisateur
type StatutUtilisateur struct {
	UserID         string        `json:"user_id"`
	Statut         domain.Statut `json:"statut"`
	TauxConformite int           `json:"taux_conformite"`
	Compteurs      status.Counts `json:"compteurs"`
}

// annoterStatuts dérive le statut de chaque formation à l'instant now
func annoterStatuts(formations []domain.Formation, now time.Time) {
	for i := range formations {
		formations[i].Statut = status.Classify(formations[i].DateExpiration, now)
	}
}

// validerAffectations vérifie la cohérence des affectations d'équipe : un
// utilisateur ne peut pas être membre et responsable de la même équipe, et
// toutes les équipes doivent exister dans l'entreprise.
func (s *UtilisateurService) validerAffectations(ctx context.Context, entrepriseID string, membre, responsable []string) error {
	vu := make(map[string]bool, len(membre))
	for _, id := range membre {
		vu[id] = true
	}
	for _, id := range responsable {
		if vu[id] {
			return domain.ErrEquipeConflict
		}
	}

	union := make([]string, 0, len(membre)+len(responsable))
	dedup := make(map[string]bool, len(membre)+len(responsable))
	for _, id := range append(append([]string{}, membre...), responsable...) {
		if !dedup[id] {
			dedup[id] = true
			union = append(union, id)
		}
	}
	if len(union) == 0 {
		return nil
	}

	count, err := s.equipeRepo.CountByIDs(ctx, entrepriseID, union)
	if err != nil {
		return err
	}
	if count != len(union) {
		return domain.ErrEquipeInconnue
	}

	return nil
}

// Create crée un utilisateur dans l'entreprise de l'appelant. Réservé aux
// admins.
func (s *UtilisateurService) Create(ctx context.Context, caller rbac.Caller, input CreateUtilisateurInput) (*domain.Utilisateur, error) {
	if err := rbac.CheckAccess(caller, caller.EntrepriseID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = domain.RoleOuvrier
	}
	if !role.Valid() {
		return nil, domain.ErrRoleInvalide
	}

	if err := s.validerAffectations(ctx, caller.EntrepriseID, input.EquipesMembre, input.EquipesResponsable); err != nil {
		return nil, err
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.Utilisateur{
		ID:                 uuid.NewString(),
		Nom:                input.Nom,
		Prenom:             input.Prenom,
		Email:              input.Email,
		Telephone:          input.Telephone,
		Adresse:            input.Adresse,
		NumSecuriteSociale: input.NumSecuriteSociale,
		Role:               role,
		EntrepriseID:       caller.EntrepriseID,
		PasswordHash:       hash,
	}

	if err := s.utilisateurRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if len(input.EquipesMembre) > 0 || len(input.EquipesResponsable) > 0 {
		if err := s.utilisateurRepo.SetEquipes(ctx, user.ID, input.EquipesMembre, input.EquipesResponsable); err != nil {
			return nil, err
		}
	}

	return s.utilisateurRepo.GetByID(ctx, user.ID)
}

// Get retourne la vue de l'utilisateur autorisée pour l'appelant, avec les
// statuts de formation dérivés
func (s *UtilisateurService) Get(ctx context.Context, caller rbac.Caller, id string) (rbac.VueUtilisateur, error) {
	user, err := s.utilisateurRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := rbac.CheckAccess(caller, user.EntrepriseID, domain.RoleOuvrier); err != nil {
		return nil, err
	}

	annoterStatuts(user.Formations, s.now())
	return rbac.FiltrerUtilisateur(caller, user), nil
}

// GetFormations retourne les formations visibles de l'utilisateur, selon
// la vue autorisée pour l'appelant
func (s *UtilisateurService) GetFormations(ctx context.Context, caller rbac.Caller, id string) ([]domain.Formation, error) {
	vue, err := s.Get(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	switch v := vue.(type) {
	case rbac.ProfilComplet:
		return v.Formations, nil
	case rbac.ProfilRestreint:
		return v.Formations, nil
	default:
		return nil, nil
	}
}

// GetStatut retourne la synthèse de conformité d'un utilisateur : pire
// statut, taux de conformité et ventilation par statut
func (s *UtilisateurService) GetStatut(ctx context.Context, caller rbac.Caller, id string) (*StatutUtilisateur, error) {
	user, err := s.utilisateurRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := rbac.CheckAccess(caller, user.EntrepriseID, domain.RoleOuvrier); err != nil {
		return nil, err
	}

	now := s.now()
	return &StatutUtilisateur{
		UserID:         user.ID,
		Statut:         status.UserStatus(user.Formations, now),
		TauxConformite: status.ComplianceRate(user.Formations, now),
		Compteurs:      status.CountByStatus(user.Formations, now),
	}, nil
}

// List retourne les utilisateurs de l'entreprise de l'appelant, chacun
// projeté dans la vue autorisée pour l'appelant
func (s *UtilisateurService) List(ctx context.Context, caller rbac.Caller) ([]rbac.VueUtilisateur, error) {
	if err := rbac.CheckAccess(caller, caller.EntrepriseID, domain.RoleOuvrier); err != nil {
		return nil, err
	}

	users, err := s.utilisateurRepo.ListByEntreprise(ctx, caller.EntrepriseID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	vues := make([]rbac.VueUtilisateur, 0, len(users))
	for i := range users {
		annoterStatuts(users[i].Formations, now)
		vues = append(vues, rbac.FiltrerUtilisateur(caller, &users[i]))
	}

	return vues, nil
}

// ExportCSV construit le registre CSV des employés de l'entreprise de
// l'appelant, trié par nom : une ligne par utilisateur avec ses équipes et
// la ventilation de ses formations par statut dérivé. Réservé aux
// représentants et admins.
func (s *UtilisateurService) ExportCSV(ctx context.Context, caller rbac.Caller) ([]byte, error) {
	if err := rbac.CheckAccess(caller, caller.EntrepriseID, domain.RoleRepresentant); err != nil {
		return nil, err
	}

	users, err := s.utilisateurRepo.ListByEntreprise(ctx, caller.EntrepriseID)
	if err != nil {
		return nil, err
	}

	sort.Slice(users, func(i, j int) bool { return users[i].Nom < users[j].Nom })

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	entete := []string{
		"Nom", "Prénom", "Email", "Rôle", "Équipe",
		"Formations valides", "Formations à renouveler", "Formations expirées",
	}
	if err := w.Write(entete); err != nil {
		return nil, err
	}

	now := s.now()
	for i := range users {
		u := &users[i]

		equipe := "Sans équipe"
		if len(u.EquipesMembre) > 0 {
			noms := make([]string, 0, len(u.EquipesMembre))
			for _, e := range u.EquipesMembre {
				noms = append(noms, e.Nom)
			}
			equipe = strings.Join(noms, " / ")
		}

		c := status.CountByStatus(u.Formations, now)
		ligne := []string{
			u.Nom, u.Prenom, u.Email, string(u.Role), equipe,
			strconv.Itoa(c.Valides), strconv.Itoa(c.ARenouveler), strconv.Itoa(c.Expirees),
		}
		if err := w.Write(ligne); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Update applique une mise à jour partielle sur l'utilisateur. Les droits
// sont vérifiés champ par champ : profil (admin ou soi-même), rôle (admin),
// affectations d'équipe (admin ou responsable de la cible).
func (s *UtilisateurService) Update(ctx context.Context, caller rbac.Caller, id string, input UpdateUtilisateurInput) (*domain.Utilisateur, error) {
	user, err := s.utilisateurRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := rbac.CheckAccess(caller, user.EntrepriseID, domain.RoleOuvrier); err != nil {
		return nil, err
	}

	profilModifie := input.Nom != nil || input.Prenom != nil || input.Email != nil ||
		input.Password != nil || input.Telephone != nil || input.Adresse != nil ||
		input.NumSecuriteSociale != nil
	if profilModifie && !rbac.CanUpdateProfil(caller, user) {
		return nil, rbac.ErrRoleInsuffisant
	}
	if input.Role != nil && !rbac.CanChangeRole(caller, user) {
		return nil, rbac.ErrRoleInsuffisant
	}
	equipesModifiees := input.EquipesMembre != nil || input.EquipesResponsable != nil
	if equipesModifiees && !rbac.CanAssignEquipes(caller, user) {
		return nil, rbac.ErrRoleInsuffisant
	}

	if input.Nom != nil {
		user.Nom = *input.Nom
	}
	if input.Prenom != nil {
		user.Prenom = *input.Prenom
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Telephone != nil {
		user.Telephone = *input.Telephone
	}
	if input.Adresse != nil {
		user.Adresse = *input.Adresse
	}
	if input.NumSecuriteSociale != nil {
		user.NumSecuriteSociale = *input.NumSecuriteSociale
	}
	if input.Role != nil {
		if !input.Role.Valid() {
			return nil, domain.ErrRoleInvalide
		}
		user.Role = *input.Role
	}
	if input.Password != nil {
		hash, err := HashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.utilisateurRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	if equipesModifiees {
		membre := make([]string, 0, len(user.EquipesMembre))
		for _, e := range user.EquipesMembre {
			membre = append(membre, e.ID)
		}
		responsable := make([]string, 0, len(user.EquipesResponsable))
		for _, e := range user.EquipesResponsable {
			responsable = append(responsable, e.ID)
		}
		if input.EquipesMembre != nil {
			membre = *input.EquipesMembre
		}
		if input.EquipesResponsable != nil {
			responsable = *input.EquipesResponsable
		}

		if err := s.validerAffectations(ctx, user.EntrepriseID, membre, responsable); err != nil {
			return nil, err
		}
		if err := s.utilisateurRepo.SetEquipes(ctx, user.ID, membre, responsable); err != nil {
			return nil, err
		}
	}

	return s.utilisateurRepo.GetByID(ctx, user.ID)
}

// Delete supprime un utilisateur. Réservé aux admins de l'entreprise.
func (s *UtilisateurService) Delete(ctx context.Context, caller rbac.Caller, id string) error {
	user, err := s.utilisateurRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := rbac.CheckAccess(caller, user.EntrepriseID, domain.RoleOuvrier); err != nil {
		return err
	}
	if !rbac.CanDeleteUtilisateur(caller, user) {
		return rbac.ErrRoleInsuffisant
	}

	return s.utilisateurRepo.Delete(ctx, id)
}
