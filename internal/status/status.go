// Package status dérive les statuts de conformité à partir des dates
// d'expiration des formations. Toutes les fonctions sont pures : l'instant
// de référence est injecté par l'appelant, jamais lu sur l'horloge système.
package status

import (
	"math"
	"time"

	"github.com/tlecomte/formatrack/internal/domain"
)

// StartOfDay ramène l'instant à minuit dans sa timezone. Les statuts sont
// évalués à la journée : une formation n'expire pas en cours d'après-midi.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Classify calcule le statut d'une formation à l'instant now.
//
// La convention de bord est stricte partout : la formation est encore
// Valide le jour même de l'expiration et devient Expirée le lendemain.
// La fenêtre "À renouveler" s'ouvre strictement après la date située un
// mois calendaire avant l'expiration (soustraction calendaire, pas 30
// jours fixes). Une expiration absente signifie une formation sans
// péremption, toujours Valide.
func Classify(expiration *time.Time, now time.Time) domain.Statut {
	if expiration == nil {
		return domain.StatutValide
	}

	exp := *expiration
	unMoisAvant := exp.AddDate(0, -1, 0)

	switch {
	case now.After(exp):
		return domain.StatutExpiree
	case now.After(unMoisAvant):
		return domain.StatutARenouveler
	default:
		return domain.StatutValide
	}
}

// UserStatus agrège le statut d'un utilisateur : le pire statut parmi ses
// formations. Sans formation, l'utilisateur est Valide.
func UserStatus(formations []domain.Formation, now time.Time) domain.Statut {
	statut := domain.StatutValide
	for _, f := range formations {
		statut = domain.Pire(statut, Classify(f.DateExpiration, now))
	}
	return statut
}

// TeamStatus agrège le statut d'une équipe : le pire statut parmi les
// statuts agrégés de ses membres. Sans membre, l'équipe est Valide.
func TeamStatus(membres [][]domain.Formation, now time.Time) domain.Statut {
	statut := domain.StatutValide
	for _, formations := range membres {
		statut = domain.Pire(statut, UserStatus(formations, now))
	}
	return statut
}

// ComplianceRate calcule le taux de conformité en pourcentage entier :
// part des formations obligatoires encore Valides. Sans formation
// obligatoire, le taux est de 100 (conforme par défaut, jamais 0/0).
// Arrondi au plus proche, demi vers le haut.
func ComplianceRate(formations []domain.Formation, now time.Time) int {
	obligatoires := 0
	valides := 0
	for _, f := range formations {
		if !f.Obligatoire {
			continue
		}
		obligatoires++
		if Classify(f.DateExpiration, now) == domain.StatutValide {
			valides++
		}
	}

	if obligatoires == 0 {
		return 100
	}
	return int(math.Floor(float64(valides)/float64(obligatoires)*100 + 0.5))
}

// TeamComplianceRate calcule le taux de conformité d'une équipe en
// regroupant les formations obligatoires de tous les membres dans un seul
// numérateur et un seul dénominateur. Ce n'est PAS une moyenne des taux
// individuels : un membre avec dix formations pèse dix fois plus qu'un
// membre avec une seule.
func TeamComplianceRate(membres [][]domain.Formation, now time.Time) int {
	var pool []domain.Formation
	for _, formations := range membres {
		pool = append(pool, formations...)
	}
	return ComplianceRate(pool, now)
}

// Counts dénombre les formations par statut (pour les tableaux de bord)
type Counts struct {
	Valides     int `json:"valides"`
	ARenouveler int `json:"a_renouveler"`
	Expirees    int `json:"expirees"`
}

// CountByStatus ventile les formations données par statut à l'instant now
func CountByStatus(formations []domain.Formation, now time.Time) Counts {
	var c Counts
	for _, f := range formations {
		switch Classify(f.DateExpiration, now) {
		case domain.StatutExpiree:
			c.Expirees++
		case domain.StatutARenouveler:
			c.ARenouveler++
		default:
			c.Valides++
		}
	}
	return c
}
