package status

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tlecomte/formatrack/internal/domain"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func datePtr(s string) *time.Time {
	t := date(s)
	return &t
}

func formation(exp string, obligatoire bool) domain.Formation {
	f := domain.Formation{Obligatoire: obligatoire}
	if exp != "" {
		f.DateExpiration = datePtr(exp)
	}
	return f
}

func TestClassify(t *testing.T) {
	now := date("2024-06-01")

	tests := []struct {
		name       string
		expiration *time.Time
		want       domain.Statut
	}{
		{"sans expiration toujours valide", nil, domain.StatutValide},
		{"expirée depuis longtemps", datePtr("2024-01-01"), domain.StatutExpiree},
		{"expirée hier", datePtr("2024-05-31"), domain.StatutExpiree},
		{"pas encore expirée le jour même de l'expiration", datePtr("2024-06-01"), domain.StatutARenouveler},
		{"à renouveler dans la fenêtre d'un mois", datePtr("2024-06-15"), domain.StatutARenouveler},
		{"valide bien avant la fenêtre", datePtr("2025-01-01"), domain.StatutValide},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.expiration, now))
		})
	}
}

// TestClassify_BordExpiration épingle la convention stricte : Valide le
// jour même de l'expiration, Expirée le lendemain.
func TestClassify_BordExpiration(t *testing.T) {
	exp := datePtr("2024-07-15")

	assert.NotEqual(t, domain.StatutExpiree, Classify(exp, date("2024-07-15")),
		"le jour de l'expiration la formation n'est pas encore expirée")
	assert.Equal(t, domain.StatutExpiree, Classify(exp, date("2024-07-16")),
		"le lendemain de l'expiration la formation est expirée")
}

// TestClassify_BordUnMois épingle la frontière d'entrée dans la fenêtre
// "À renouveler" : strictement après la date un mois calendaire avant
// l'expiration.
func TestClassify_BordUnMois(t *testing.T) {
	exp := datePtr("2024-07-15")

	// Un mois avant exactement : pas encore dans la fenêtre (comparaison stricte)
	assert.Equal(t, domain.StatutValide, Classify(exp, date("2024-06-15")))
	// Le lendemain : dans la fenêtre
	assert.Equal(t, domain.StatutARenouveler, Classify(exp, date("2024-06-16")))
	// Un mois et un jour avant : valide
	assert.Equal(t, domain.StatutValide, Classify(exp, date("2024-06-14")))
}

// La soustraction est calendaire (AddDate normalise le 31 février 2024 en
// 2 mars), pas 30 jours fixes.
func TestClassify_MoisCalendaire(t *testing.T) {
	exp := datePtr("2024-03-31")

	assert.Equal(t, domain.StatutARenouveler, Classify(exp, date("2024-03-05")))
	assert.Equal(t, domain.StatutValide, Classify(exp, date("2024-02-28")))
}

func TestClassify_Idempotent(t *testing.T) {
	now := date("2024-06-20")
	exp := datePtr("2024-07-15")

	first := Classify(exp, now)
	second := Classify(exp, now)
	assert.Equal(t, first, second)
}

func TestUserStatus(t *testing.T) {
	now := date("2024-06-01")

	t.Run("sans formation l'utilisateur est valide", func(t *testing.T) {
		assert.Equal(t, domain.StatutValide, UserStatus(nil, now))
	})

	t.Run("scénario A formation expirée", func(t *testing.T) {
		formations := []domain.Formation{formation("2024-01-01", true)}
		assert.Equal(t, domain.StatutExpiree, UserStatus(formations, now))
	})

	t.Run("scénario B formation à renouveler", func(t *testing.T) {
		formations := []domain.Formation{formation("2024-07-15", true)}
		assert.Equal(t, domain.StatutARenouveler, UserStatus(formations, date("2024-06-20")))
	})

	t.Run("le pire statut l'emporte", func(t *testing.T) {
		formations := []domain.Formation{
			formation("2025-12-31", true),
			formation("2024-06-10", false),
			formation("2024-01-01", true),
		}
		assert.Equal(t, domain.StatutExpiree, UserStatus(formations, now))
	})
}

// Monotonie du pire-statut : ajouter une formation expirée ne peut jamais
// améliorer le statut, ajouter une formation valide ne peut pas effacer
// une expiration.
func TestUserStatus_Monotonie(t *testing.T) {
	now := date("2024-06-01")

	base := []domain.Formation{formation("2025-12-31", true)}
	assert.Equal(t, domain.StatutValide, UserStatus(base, now))

	avecExpiree := append(append([]domain.Formation{}, base...), formation("2024-01-01", true))
	assert.Equal(t, domain.StatutExpiree, UserStatus(avecExpiree, now))

	encorePlus := append(append([]domain.Formation{}, avecExpiree...), formation("2026-01-01", true))
	assert.Equal(t, domain.StatutExpiree, UserStatus(encorePlus, now),
		"une formation valide supplémentaire n'efface pas l'expiration")
}

func TestTeamStatus(t *testing.T) {
	now := date("2024-06-01")

	t.Run("équipe vide valide", func(t *testing.T) {
		assert.Equal(t, domain.StatutValide, TeamStatus(nil, now))
	})

	t.Run("scénario C un membre expiré contamine l'équipe", func(t *testing.T) {
		membres := [][]domain.Formation{
			{formation("2025-12-31", true)}, // membre valide
			{formation("2024-01-01", true)}, // membre expiré
		}
		assert.Equal(t, domain.StatutExpiree, TeamStatus(membres, now))
	})

	t.Run("à renouveler sans expiration", func(t *testing.T) {
		membres := [][]domain.Formation{
			{formation("2025-12-31", true)},
			{formation("2024-06-15", true)},
		}
		assert.Equal(t, domain.StatutARenouveler, TeamStatus(membres, now))
	})
}

func TestComplianceRate(t *testing.T) {
	now := date("2024-06-01")

	t.Run("sans formation obligatoire le taux est 100", func(t *testing.T) {
		assert.Equal(t, 100, ComplianceRate(nil, now))

		// Les formations facultatives ne comptent pas, même expirées
		facultatives := []domain.Formation{
			formation("2024-01-01", false),
			formation("2024-01-01", false),
		}
		assert.Equal(t, 100, ComplianceRate(facultatives, now))
	})

	t.Run("seules les obligatoires comptent", func(t *testing.T) {
		formations := []domain.Formation{
			formation("2025-12-31", true),
			formation("2024-01-01", false), // facultative expirée, ignorée
		}
		assert.Equal(t, 100, ComplianceRate(formations, now))
	})

	t.Run("arrondi demi vers le haut", func(t *testing.T) {
		// 1 valide sur 3 obligatoires = 33.33 -> 33
		formations := []domain.Formation{
			formation("2025-12-31", true),
			formation("2024-01-01", true),
			formation("2024-01-02", true),
		}
		assert.Equal(t, 33, ComplianceRate(formations, now))

		// 2 valides sur 3 = 66.67 -> 67
		formations[1] = formation("2025-12-31", true)
		assert.Equal(t, 67, ComplianceRate(formations, now))
	})

	t.Run("à renouveler n'est pas valide", func(t *testing.T) {
		formations := []domain.Formation{
			formation("2024-06-15", true), // à renouveler
			formation("2025-12-31", true),
		}
		assert.Equal(t, 50, ComplianceRate(formations, now))
	})
}

// Scénario D : le taux d'équipe regroupe les formations de tous les
// membres dans un seul ratio, ce n'est pas une moyenne de taux.
func TestTeamComplianceRate_Pooling(t *testing.T) {
	now := date("2024-06-01")

	membres := [][]domain.Formation{
		{
			formation("2025-12-31", true),
			formation("2025-12-31", true),
			formation("2025-12-31", true),
		},
		{
			formation("2024-01-01", true),
		},
	}

	// 3 valides sur 4 obligatoires regroupées = 75.
	// Une moyenne de taux individuels donnerait (100+0)/2 = 50.
	assert.Equal(t, 75, TeamComplianceRate(membres, now))
}

func TestCountByStatus(t *testing.T) {
	now := date("2024-06-01")

	formations := []domain.Formation{
		formation("2025-12-31", true),
		formation("2024-06-15", false),
		formation("2024-01-01", true),
		formation("", false),
	}

	c := CountByStatus(formations, now)
	assert.Equal(t, 2, c.Valides)
	assert.Equal(t, 1, c.ARenouveler)
	assert.Equal(t, 1, c.Expirees)
}

// L'horloge de production est tronquée à minuit avant classification : un
// instant en cours de journée ne fait ni expirer une formation le jour
// même de son expiration, ni glisser la fenêtre d'un mois.
func TestClassify_HorlogeTronqueeALaJournee(t *testing.T) {
	enJournee := time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)

	t.Run("le jour de l'expiration", func(t *testing.T) {
		exp := datePtr("2024-06-01")
		assert.Equal(t, domain.StatutARenouveler, Classify(exp, StartOfDay(enJournee)),
			"pas encore expirée le jour même, quelle que soit l'heure")
	})

	t.Run("exactement un mois avant l'expiration", func(t *testing.T) {
		exp := datePtr("2024-07-01")
		assert.Equal(t, domain.StatutValide, Classify(exp, StartOfDay(enJournee)),
			"la fenêtre de renouvellement ne s'ouvre pas en cours de journée")
	})
}

func TestStartOfDay(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Paris")
	assert.NoError(t, err)

	instant := time.Date(2024, 6, 1, 15, 42, 7, 123, loc)
	debut := StartOfDay(instant)

	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, loc), debut)
	assert.Equal(t, loc, debut.Location())
}
