package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Structures de test alignées sur l'API
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token       string `json:"token"`
	Utilisateur struct {
		ID           string `json:"id"`
		Role         string `json:"role"`
		EntrepriseID string `json:"entreprise_id"`
	} `json:"utilisateur"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type statutResponse struct {
	UserID         string `json:"user_id"`
	Statut         string `json:"statut"`
	TauxConformite int    `json:"taux_conformite"`
	Compteurs      struct {
		Valides     int `json:"valides"`
		ARenouveler int `json:"a_renouveler"`
		Expirees    int `json:"expirees"`
	} `json:"compteurs"`
}

func login(t *testing.T, env *TestEnvironment, email, password string) loginResponse {
	t.Helper()

	body, _ := json.Marshal(loginRequest{Email: email, Password: password})
	resp := env.MakeRequest(t, http.MethodPost, "/auth/login", bytes.NewReader(body), "")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode, "Login should succeed for %s", email)

	var out loginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.NotEmpty(t, out.Token)
	return out
}

func decodeError(t *testing.T, resp *http.Response) errorResponse {
	t.Helper()

	var out errorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// TestE2E_ParcoursConformite couvre le parcours complet : équipes,
// utilisateurs, formations, statuts agrégés, isolation d'entreprise,
// calendrier, devis, notifications et tableau de bord.
func TestE2E_ParcoursConformite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	env := SetupTestEnvironment(t)
	defer env.Cleanup(t)

	env.WaitForHealthCheck(t)

	env.SeedEntreprise(t, "ent-1", "Bâtiment Durand")
	env.SeedEntreprise(t, "ent-2", "Constructions Morel")
	env.SeedUtilisateur(t, "admin-1", "Durand", "Paul", "paul@durand.fr", "motdepasse", "admin", "ent-1")
	env.SeedUtilisateur(t, "admin-2", "Morel", "Claire", "claire@morel.fr", "motdepasse", "admin", "ent-2")

	adminToken := login(t, env, "paul@durand.fr", "motdepasse").Token

	t.Run("Login refuse un mauvais mot de passe", func(t *testing.T) {
		body, _ := json.Marshal(loginRequest{Email: "paul@durand.fr", Password: "mauvais"})
		resp := env.MakeRequest(t, http.MethodPost, "/auth/login", bytes.NewReader(body), "")
		defer resp.Body.Close()

		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "UNAUTHORIZED", decodeError(t, resp).Error.Code)
	})

	var equipeID string
	t.Run("Création d'une équipe", func(t *testing.T) {
		body := []byte(`{"nom":"Gros œuvre","code":"GO"}`)
		resp := env.MakeRequest(t, http.MethodPost, "/equipes", bytes.NewReader(body), adminToken)
		defer resp.Body.Close()

		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var equipe struct {
			ID    string `json:"id"`
			Actif bool   `json:"actif"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&equipe))
		require.NotEmpty(t, equipe.ID)
		assert.True(t, equipe.Actif)
		equipeID = equipe.ID
	})

	var sophieID, karimID string
	t.Run("Création des utilisateurs avec affectations", func(t *testing.T) {
		body, _ := json.Marshal(map[string]interface{}{
			"nom": "Bernard", "prenom": "Sophie",
			"email": "sophie@durand.fr", "password": "motdepasse",
			"role":                "representant",
			"equipes_responsable": []string{equipeID},
		})
		resp := env.MakeRequest(t, http.MethodPost, "/utilisateurs", bytes.NewReader(body), adminToken)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		var sophie struct {
			ID string `json:"id"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&sophie))
		resp.Body.Close()
		sophieID = sophie.ID

		body, _ = json.Marshal(map[string]interface{}{
			"nom": "Haddad", "prenom": "Karim",
			"email": "karim@durand.fr", "password": "motdepasse",
			"role":                 "ouvrier",
			"telephone":            "0601020304",
			"num_securite_sociale": "1850778123456",
			"equipes_membre":       []string{equipeID},
		})
		resp = env.MakeRequest(t, http.MethodPost, "/utilisateurs", bytes.NewReader(body), adminToken)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		var karim struct {
			ID string `json:"id"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&karim))
		resp.Body.Close()
		karimID = karim.ID
	})

	t.Run("Membre et responsable de la même équipe refusé", func(t *testing.T) {
		body, _ := json.Marshal(map[string]interface{}{
			"nom": "Doublon", "prenom": "Jean",
			"email": "jean@durand.fr", "password": "motdepasse",
			"equipes_membre":      []string{equipeID},
			"equipes_responsable": []string{equipeID},
		})
		resp := env.MakeRequest(t, http.MethodPost, "/utilisateurs", bytes.NewReader(body), adminToken)
		defer resp.Body.Close()

		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "TEAM_CONFLICT", decodeError(t, resp).Error.Code)
	})

	now := time.Now()
	dansDixJours := now.AddDate(0, 0, 10).Format("2006-01-02")
	dansSixMois := now.AddDate(0, 6, 0).Format("2006-01-02")
	ilYaDixJours := now.AddDate(0, 0, -10).Format("2006-01-02")

	t.Run("Création des formations avec statut dérivé", func(t *testing.T) {
		cases := []struct {
			payload map[string]interface{}
			statut  string
		}{
			{
				payload: map[string]interface{}{
					"type_formation": "CACES", "nom": "CACES R489",
					"date_expiration": dansDixJours, "obligatoire": true,
					"user_id": karimID,
				},
				statut: "À renouveler",
			},
			{
				payload: map[string]interface{}{
					"type_formation": "SST", "nom": "Sauveteur secouriste",
					"date_expiration": dansSixMois, "obligatoire": true,
					"user_id": karimID,
				},
				statut: "Valide",
			},
			{
				payload: map[string]interface{}{
					"type_formation": "HABILITATION", "nom": "Habilitation électrique",
					"date_expiration": ilYaDixJours, "obligatoire": false,
					"user_id": karimID,
				},
				statut: "Expirée",
			},
		}

		for _, tc := range cases {
			body, _ := json.Marshal(tc.payload)
			resp := env.MakeRequest(t, http.MethodPost, "/formations", bytes.NewReader(body), adminToken)
			require.Equal(t, http.StatusCreated, resp.StatusCode)

			var formation struct {
				Statut string `json:"statut_formation"`
			}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&formation))
			resp.Body.Close()
			assert.Equal(t, tc.statut, formation.Statut)
		}
	})

	t.Run("Statut agrégé de l'utilisateur", func(t *testing.T) {
		resp := env.MakeRequest(t, http.MethodGet, "/utilisateurs/"+karimID+"/statut", nil, adminToken)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var statut statutResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&statut))

		// Pire statut sur toutes les formations, taux sur les
		// obligatoires uniquement (1 Valide sur 2)
		assert.Equal(t, "Expirée", statut.Statut)
		assert.Equal(t, 50, statut.TauxConformite)
		assert.Equal(t, 1, statut.Compteurs.Valides)
		assert.Equal(t, 1, statut.Compteurs.ARenouveler)
		assert.Equal(t, 1, statut.Compteurs.Expirees)
	})

	t.Run("Synthèse d'équipe", func(t *testing.T) {
		resp := env.MakeRequest(t, http.MethodGet, "/equipes", nil, adminToken)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var out struct {
			Equipes []struct {
				Stats struct {
					Effectif       int    `json:"effectif"`
					Statut         string `json:"statut"`
					TauxConformite int    `json:"taux_conformite"`
				} `json:"stats"`
			} `json:"equipes"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		require.Len(t, out.Equipes, 1)

		stats := out.Equipes[0].Stats
		assert.Equal(t, 1, stats.Effectif)
		assert.Equal(t, "Expirée", stats.Statut)
		assert.Equal(t, 50, stats.TauxConformite)
	})

	t.Run("Export CSV des employés", func(t *testing.T) {
		resp := env.MakeRequest(t, http.MethodGet, "/utilisateurs/export", nil, adminToken)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")

		contenu, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		lignes := strings.Split(strings.TrimSpace(string(contenu)), "\n")
		require.Len(t, lignes, 4, "en-tête + Paul + Sophie + Karim")
		assert.Equal(t,
			"Nom,Prénom,Email,Rôle,Équipe,Formations valides,Formations à renouveler,Formations expirées",
			lignes[0])
		// Trié par nom : Bernard, Durand, Haddad
		assert.Contains(t, lignes[1], "Bernard,Sophie")
		assert.Equal(t, "Haddad,Karim,karim@durand.fr,ouvrier,Gros œuvre,1,1,1", lignes[3])
	})

	karimToken := login(t, env, "karim@durand.fr", "motdepasse").Token
	sophieToken := login(t, env, "sophie@durand.fr", "motdepasse").Token

	t.Run("Profil complet pour soi-même, restreint pour un collègue", func(t *testing.T) {
		resp := env.MakeRequest(t, http.MethodGet, "/utilisateurs/"+karimID, nil, karimToken)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var complet map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&complet))
		resp.Body.Close()
		assert.Equal(t, "1850778123456", complet["num_securite_sociale"])

		// Karim consulte Sophie : vue restreinte, sans données personnelles
		resp = env.MakeRequest(t, http.MethodGet, "/utilisateurs/"+sophieID, nil, karimToken)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var restreint map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&restreint))
		resp.Body.Close()
		assert.NotContains(t, restreint, "num_securite_sociale")
		assert.NotContains(t, restreint, "telephone")
	})

	t.Run("Le responsable voit le profil complet de son membre", func(t *testing.T) {
		resp := env.MakeRequest(t, http.MethodGet, "/utilisateurs/"+karimID, nil, sophieToken)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var vue struct {
			NumSecuriteSociale string `json:"num_securite_sociale"`
			Formations         []struct {
				Nom string `json:"nom"`
			} `json:"formations"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&vue))
		assert.Equal(t, "1850778123456", vue.NumSecuriteSociale)
		assert.Len(t, vue.Formations, 3)
	})

	t.Run("Isolation d'entreprise", func(t *testing.T) {
		autreToken := login(t, env, "claire@morel.fr", "motdepasse").Token

		resp := env.MakeRequest(t, http.MethodGet, "/utilisateurs/"+karimID, nil, autreToken)
		defer resp.Body.Close()

		require.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Equal(t, "WRONG_COMPANY", decodeError(t, resp).Error.Code)
	})

	t.Run("Un ouvrier ne crée pas d'équipe", func(t *testing.T) {
		body := []byte(`{"nom":"Interdite"}`)
		resp := env.MakeRequest(t, http.MethodPost, "/equipes", bytes.NewReader(body), karimToken)
		defer resp.Body.Close()

		require.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Equal(t, "FORBIDDEN", decodeError(t, resp).Error.Code)
	})

	t.Run("L'export est réservé aux représentants et admins", func(t *testing.T) {
		resp := env.MakeRequest(t, http.MethodGet, "/utilisateurs/export", nil, karimToken)
		defer resp.Body.Close()

		require.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Equal(t, "FORBIDDEN", decodeError(t, resp).Error.Code)
	})

	var devisID string
	t.Run("Rendez-vous avec devis rattaché", func(t *testing.T) {
		body, _ := json.Marshal(map[string]interface{}{
			"titre":      "Recyclage CACES",
			"date_heure": now.AddDate(0, 0, 20).Format(time.RFC3339),
			"user_id":    karimID,
			"devis":      map[string]interface{}{"montant": 450.0},
		})
		resp := env.MakeRequest(t, http.MethodPost, "/calendrier", bytes.NewReader(body), sophieToken)
		defer resp.Body.Close()

		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var rdv struct {
			Statut string `json:"statut"`
			Devis  *struct {
				ID      string  `json:"id"`
				Montant float64 `json:"montant"`
				Statut  string  `json:"statut"`
			} `json:"devis"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&rdv))
		assert.Equal(t, "Planifié", rdv.Statut)
		require.NotNil(t, rdv.Devis)
		assert.Equal(t, 450.0, rdv.Devis.Montant)
		assert.Equal(t, "En attente", rdv.Devis.Statut)
		devisID = rdv.Devis.ID
	})

	t.Run("Les devis sont réservés aux représentants et admins", func(t *testing.T) {
		resp := env.MakeRequest(t, http.MethodGet, "/devis", nil, karimToken)
		defer resp.Body.Close()

		require.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Equal(t, "FORBIDDEN", decodeError(t, resp).Error.Code)
	})

	t.Run("Validation du devis par l'admin uniquement", func(t *testing.T) {
		body := []byte(`{"statut":"Validé"}`)

		resp := env.MakeRequest(t, http.MethodPut, "/devis/"+devisID+"/statut", bytes.NewReader(body), sophieToken)
		require.Equal(t, http.StatusForbidden, resp.StatusCode)
		resp.Body.Close()

		resp = env.MakeRequest(t, http.MethodPut, "/devis/"+devisID+"/statut", bytes.NewReader(body), adminToken)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var devis struct {
			Statut string `json:"statut"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&devis))
		assert.Equal(t, "Validé", devis.Statut)
	})

	t.Run("Balayage des expirations et notifications", func(t *testing.T) {
		resp := env.MakeRequest(t, http.MethodPost, "/notifications/verification", nil, adminToken)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var rapport struct {
			FormationsExaminees   int `json:"formations_examinees"`
			FormationsExpirees    int `json:"formations_expirees"`
			FormationsARenouveler int `json:"formations_a_renouveler"`
			NotificationsCreees   int `json:"notifications_creees"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&rapport))
		resp.Body.Close()

		assert.Equal(t, 3, rapport.FormationsExaminees)
		assert.Equal(t, 1, rapport.FormationsExpirees)
		assert.Equal(t, 1, rapport.FormationsARenouveler)
		// Porteur + responsable d'équipe pour chacune des deux formations
		assert.Equal(t, 4, rapport.NotificationsCreees)

		// Karim reçoit ses deux notifications et peut en marquer une lue
		resp = env.MakeRequest(t, http.MethodGet, "/notifications", nil, karimToken)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var out struct {
			Notifications []struct {
				ID      string `json:"id"`
				Type    string `json:"type"`
				Message string `json:"message"`
				Lu      bool   `json:"lu"`
			} `json:"notifications"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		resp.Body.Close()
		require.Len(t, out.Notifications, 2)
		assert.False(t, out.Notifications[0].Lu)
		assert.Contains(t, out.Notifications[0].Message, "Karim Haddad")

		resp = env.MakeRequest(t, http.MethodPost, "/notifications/"+out.Notifications[0].ID+"/lu", nil, karimToken)
		defer resp.Body.Close()
		require.Equal(t, http.StatusNoContent, resp.StatusCode)
	})

	t.Run("Le balayage est réservé aux admins", func(t *testing.T) {
		resp := env.MakeRequest(t, http.MethodPost, "/notifications/verification", nil, sophieToken)
		defer resp.Body.Close()

		require.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("Tableau de bord d'entreprise", func(t *testing.T) {
		resp := env.MakeRequest(t, http.MethodGet, "/entreprises/ent-1/dashboard", nil, adminToken)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var dashboard struct {
			Effectif            int `json:"effectif"`
			NbEquipes           int `json:"nb_equipes"`
			NbFormations        int `json:"nb_formations"`
			FormationsParStatut struct {
				Valides     int `json:"valides"`
				ARenouveler int `json:"a_renouveler"`
				Expirees    int `json:"expirees"`
			} `json:"formations_par_statut"`
			TauxConformite      int `json:"taux_conformite"`
			EquipesNonConformes int `json:"equipes_non_conformes"`
			RendezVousAVenir    int `json:"rendez_vous_a_venir"`
			DevisEnAttente      int `json:"devis_en_attente"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&dashboard))

		assert.Equal(t, 3, dashboard.Effectif)
		assert.Equal(t, 1, dashboard.NbEquipes)
		assert.Equal(t, 3, dashboard.NbFormations)
		assert.Equal(t, 1, dashboard.FormationsParStatut.Valides)
		assert.Equal(t, 1, dashboard.FormationsParStatut.ARenouveler)
		assert.Equal(t, 1, dashboard.FormationsParStatut.Expirees)
		assert.Equal(t, 50, dashboard.TauxConformite)
		assert.Equal(t, 1, dashboard.EquipesNonConformes)
		assert.Equal(t, 1, dashboard.RendezVousAVenir)
		assert.Equal(t, 0, dashboard.DevisEnAttente)
	})

	t.Run("Le tableau de bord d'une autre entreprise est refusé", func(t *testing.T) {
		resp := env.MakeRequest(t, http.MethodGet, "/entreprises/ent-2/dashboard", nil, adminToken)
		defer resp.Body.Close()

		require.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Equal(t, "WRONG_COMPANY", decodeError(t, resp).Error.Code)
	})

	t.Run("Le tableau de bord est réservé aux admins", func(t *testing.T) {
		resp := env.MakeRequest(t, http.MethodGet, "/entreprises/ent-1/dashboard", nil, sophieToken)
		defer resp.Body.Close()

		require.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Equal(t, "FORBIDDEN", decodeError(t, resp).Error.Code)
	})

	t.Run("Détail d'entreprise avec compteurs", func(t *testing.T) {
		// Accessible aux représentants, contrairement au tableau de bord
		resp := env.MakeRequest(t, http.MethodGet, "/entreprises/ent-1", nil, sophieToken)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var detail struct {
			Nom            string `json:"nom"`
			NbUtilisateurs int    `json:"nb_utilisateurs"`
			NbEquipes      int    `json:"nb_equipes"`
			NbFormations   int    `json:"nb_formations"`
			NbRendezVous   int    `json:"nb_rendez_vous"`
			NbDevis        int    `json:"nb_devis"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&detail))

		assert.Equal(t, "Bâtiment Durand", detail.Nom)
		assert.Equal(t, 3, detail.NbUtilisateurs)
		assert.Equal(t, 1, detail.NbEquipes)
		assert.Equal(t, 3, detail.NbFormations)
		assert.Equal(t, 1, detail.NbRendezVous)
		assert.Equal(t, 1, detail.NbDevis)
	})

	t.Run("Le détail d'une autre entreprise est refusé", func(t *testing.T) {
		resp := env.MakeRequest(t, http.MethodGet, "/entreprises/ent-2", nil, sophieToken)
		defer resp.Body.Close()

		require.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Equal(t, "WRONG_COMPANY", decodeError(t, resp).Error.Code)
	})

	t.Run("Les statuts basculent à la journée", func(t *testing.T) {
		// Expire aujourd'hui : encore dans la fenêtre de renouvellement,
		// pas expirée, quelle que soit l'heure du serveur
		body, _ := json.Marshal(map[string]interface{}{
			"type_formation": "AIPR", "nom": "AIPR opérateur",
			"date_expiration": now.Format("2006-01-02"), "obligatoire": false,
			"user_id": sophieID,
		})
		resp := env.MakeRequest(t, http.MethodPost, "/formations", bytes.NewReader(body), adminToken)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var formation struct {
			Statut string `json:"statut_formation"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&formation))
		resp.Body.Close()
		assert.Equal(t, "À renouveler", formation.Statut)

		// Expire dans exactement un mois calendaire : la fenêtre de
		// renouvellement ne s'ouvre que demain
		body, _ = json.Marshal(map[string]interface{}{
			"type_formation": "HAUTEUR", "nom": "Travail en hauteur",
			"date_expiration": now.AddDate(0, 1, 0).Format("2006-01-02"), "obligatoire": false,
			"user_id": sophieID,
		})
		resp = env.MakeRequest(t, http.MethodPost, "/formations", bytes.NewReader(body), adminToken)
		defer resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		require.NoError(t, json.NewDecoder(resp.Body).Decode(&formation))
		assert.Equal(t, "Valide", formation.Statut)
	})

	t.Run("Le balayage est limité à l'entreprise de l'appelant", func(t *testing.T) {
		autreToken := login(t, env, "claire@morel.fr", "motdepasse").Token

		resp := env.MakeRequest(t, http.MethodPost, "/notifications/verification", nil, autreToken)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var rapport struct {
			FormationsExaminees int `json:"formations_examinees"`
			NotificationsCreees int `json:"notifications_creees"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&rapport))
		assert.Equal(t, 0, rapport.FormationsExaminees,
			"les formations des autres entreprises ne sont pas balayées")
		assert.Equal(t, 0, rapport.NotificationsCreees)
	})

	t.Run("Les métriques sont exposées", func(t *testing.T) {
		resp, err := http.Get(env.BaseURL + "/metrics")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}
