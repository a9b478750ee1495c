package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tlecomte/formatrack/internal/domain"
)

func adminCaller() Caller {
	return Caller{ID: "admin-1", Role: domain.RoleAdmin, EntrepriseID: "ent-1"}
}

func representantCaller() Caller {
	return Caller{ID: "rep-1", Role: domain.RoleRepresentant, EntrepriseID: "ent-1"}
}

func cible() *domain.Utilisateur {
	return &domain.Utilisateur{
		ID:                 "user-1",
		Nom:                "Bernard",
		Prenom:             "Pierre",
		Email:              "p.bernard@btpconstruct.fr",
		Telephone:          "0678912347",
		Adresse:            "3 Rue de la Paix, 75000 Paris",
		NumSecuriteSociale: "1234567890125",
		Role:               domain.RoleOuvrier,
		EntrepriseID:       "ent-1",
		EquipesMembre:      []domain.EquipeRef{{ID: "eq-1", Nom: "Équipe Montage Nord"}},
		Formations: []domain.Formation{
			{ID: "f-1", Nom: "Montage échafaudage", Obligatoire: true},
			{ID: "f-2", Nom: "Secourisme avancé", Obligatoire: false},
		},
	}
}

func TestHasRequiredRole(t *testing.T) {
	tests := []struct {
		role     domain.Role
		required domain.Role
		want     bool
	}{
		{domain.RoleAdmin, domain.RoleAdmin, true},
		{domain.RoleAdmin, domain.RoleRepresentant, true},
		{domain.RoleRepresentant, domain.RoleAdmin, false},
		{domain.RoleRepresentant, domain.RoleRepresentant, true},
		{domain.RoleOuvrier, domain.RoleRepresentant, false},
		{domain.RoleOuvrier, domain.RoleOuvrier, true},
		{domain.Role("inconnu"), domain.RoleOuvrier, false},
		{domain.RoleAdmin, domain.Role("inconnu"), false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, HasRequiredRole(tt.role, tt.required),
			"role=%s required=%s", tt.role, tt.required)
	}
}

func TestCheckAccess(t *testing.T) {
	t.Run("accès accordé", func(t *testing.T) {
		assert.NoError(t, CheckAccess(adminCaller(), "ent-1", domain.RoleAdmin))
		assert.NoError(t, CheckAccess(representantCaller(), "ent-1", domain.RoleRepresentant))
	})

	t.Run("identité absente", func(t *testing.T) {
		err := CheckAccess(Caller{}, "ent-1", domain.RoleRepresentant)
		assert.ErrorIs(t, err, ErrNonAuthentifie)
	})

	t.Run("scénario F mauvaise entreprise", func(t *testing.T) {
		err := CheckAccess(adminCaller(), "ent-2", domain.RoleRepresentant)
		assert.ErrorIs(t, err, ErrMauvaiseEntreprise)
	})

	t.Run("rôle insuffisant", func(t *testing.T) {
		err := CheckAccess(representantCaller(), "ent-1", domain.RoleAdmin)
		assert.ErrorIs(t, err, ErrRoleInsuffisant)
	})

	t.Run("la mauvaise entreprise prime sur le rôle", func(t *testing.T) {
		caller := Caller{ID: "x", Role: domain.RoleOuvrier, EntrepriseID: "ent-1"}
		err := CheckAccess(caller, "ent-2", domain.RoleAdmin)
		assert.ErrorIs(t, err, ErrMauvaiseEntreprise)
	})

	t.Run("rôle inconnu refusé", func(t *testing.T) {
		caller := Caller{ID: "x", Role: domain.Role("stagiaire"), EntrepriseID: "ent-1"}
		err := CheckAccess(caller, "ent-1", domain.RoleOuvrier)
		assert.ErrorIs(t, err, ErrRoleInsuffisant)
	})
}

func TestCanViewFullProfile(t *testing.T) {
	target := cible()

	t.Run("admin de la même entreprise", func(t *testing.T) {
		assert.True(t, CanViewFullProfile(adminCaller(), target))
	})

	t.Run("soi-même", func(t *testing.T) {
		caller := Caller{ID: "user-1", Role: domain.RoleOuvrier, EntrepriseID: "ent-1"}
		assert.True(t, CanViewFullProfile(caller, target))
	})

	t.Run("responsable d'une équipe de la cible", func(t *testing.T) {
		caller := representantCaller()
		caller.EquipesResponsable = []string{"eq-1"}
		assert.True(t, CanViewFullProfile(caller, target))
	})

	t.Run("représentant sans lien d'équipe", func(t *testing.T) {
		assert.False(t, CanViewFullProfile(representantCaller(), target))
	})

	t.Run("admin d'une autre entreprise", func(t *testing.T) {
		caller := adminCaller()
		caller.EntrepriseID = "ent-2"
		assert.False(t, CanViewFullProfile(caller, target))
	})

	t.Run("non authentifié", func(t *testing.T) {
		assert.False(t, CanViewFullProfile(Caller{}, target))
	})
}

// Scénario E : le représentant ne voit que les formations obligatoires et
// aucune coordonnée personnelle ; l'admin voit tout.
func TestFiltrerUtilisateur(t *testing.T) {
	target := cible()

	t.Run("vue restreinte pour un représentant", func(t *testing.T) {
		vue := FiltrerUtilisateur(representantCaller(), target)

		restreint, ok := vue.(ProfilRestreint)
		require.True(t, ok, "un représentant sans lien reçoit la vue restreinte")

		assert.Equal(t, "Bernard", restreint.Nom)
		require.Len(t, restreint.Formations, 1)
		assert.Equal(t, "f-1", restreint.Formations[0].ID,
			"seules les formations obligatoires sont visibles")
	})

	t.Run("vue complète pour un admin", func(t *testing.T) {
		vue := FiltrerUtilisateur(adminCaller(), target)

		complet, ok := vue.(ProfilComplet)
		require.True(t, ok)

		assert.Equal(t, "0678912347", complet.Telephone)
		assert.Equal(t, "1234567890125", complet.NumSecuriteSociale)
		assert.Len(t, complet.Formations, 2)
	})

	t.Run("vue complète pour le responsable d'équipe", func(t *testing.T) {
		caller := representantCaller()
		caller.EquipesResponsable = []string{"eq-1"}

		_, ok := FiltrerUtilisateur(caller, target).(ProfilComplet)
		assert.True(t, ok)
	})
}

func TestCanAssignEquipes(t *testing.T) {
	target := cible()

	t.Run("admin", func(t *testing.T) {
		assert.True(t, CanAssignEquipes(adminCaller(), target))
	})

	t.Run("responsable de l'équipe du membre", func(t *testing.T) {
		caller := representantCaller()
		caller.EquipesResponsable = []string{"eq-1"}
		assert.True(t, CanAssignEquipes(caller, target))
	})

	t.Run("responsable d'une autre équipe", func(t *testing.T) {
		caller := representantCaller()
		caller.EquipesResponsable = []string{"eq-9"}
		assert.False(t, CanAssignEquipes(caller, target))
	})
}

func TestCanUpdateProfil(t *testing.T) {
	target := cible()

	t.Run("soi-même", func(t *testing.T) {
		caller := Caller{ID: "user-1", Role: domain.RoleOuvrier, EntrepriseID: "ent-1"}
		assert.True(t, CanUpdateProfil(caller, target))
	})

	t.Run("mais pas son propre rôle", func(t *testing.T) {
		caller := Caller{ID: "user-1", Role: domain.RoleOuvrier, EntrepriseID: "ent-1"}
		assert.False(t, CanChangeRole(caller, target))
	})

	t.Run("autre ouvrier refusé", func(t *testing.T) {
		caller := Caller{ID: "user-2", Role: domain.RoleOuvrier, EntrepriseID: "ent-1"}
		assert.False(t, CanUpdateProfil(caller, target))
	})
}

func TestCanUpdateEquipe(t *testing.T) {
	equipe := &domain.Equipe{ID: "eq-1", EntrepriseID: "ent-1"}

	t.Run("admin de l'entreprise", func(t *testing.T) {
		assert.True(t, CanUpdateEquipe(adminCaller(), equipe))
	})

	t.Run("responsable de l'équipe", func(t *testing.T) {
		caller := representantCaller()
		caller.EquipesResponsable = []string{"eq-1"}
		assert.True(t, CanUpdateEquipe(caller, equipe))
	})

	t.Run("représentant sans responsabilité", func(t *testing.T) {
		assert.False(t, CanUpdateEquipe(representantCaller(), equipe))
	})

	t.Run("autre entreprise", func(t *testing.T) {
		caller := adminCaller()
		caller.EntrepriseID = "ent-2"
		assert.False(t, CanUpdateEquipe(caller, equipe))
	})
}

func TestCanViewEquipe(t *testing.T) {
	equipe := &domain.Equipe{ID: "eq-1", EntrepriseID: "ent-1"}

	t.Run("admin et représentant de l'entreprise", func(t *testing.T) {
		assert.True(t, CanViewEquipe(adminCaller(), equipe))
		assert.True(t, CanViewEquipe(representantCaller(), equipe))
	})

	t.Run("ouvrier membre de l'équipe", func(t *testing.T) {
		caller := Caller{ID: "u", Role: domain.RoleOuvrier, EntrepriseID: "ent-1", EquipesMembre: []string{"eq-1"}}
		assert.True(t, CanViewEquipe(caller, equipe))
	})

	t.Run("ouvrier étranger à l'équipe", func(t *testing.T) {
		caller := Caller{ID: "u", Role: domain.RoleOuvrier, EntrepriseID: "ent-1"}
		assert.False(t, CanViewEquipe(caller, equipe))
	})

	t.Run("autre entreprise", func(t *testing.T) {
		caller := adminCaller()
		caller.EntrepriseID = "ent-2"
		assert.False(t, CanViewEquipe(caller, equipe))
	})
}
