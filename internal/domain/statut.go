package domain

// Statut représente l'état de conformité d'une formation, d'un utilisateur
// ou d'une équipe. Les valeurs sont le vocabulaire métier échangé avec les
// clients de l'API : elles ne doivent pas être traduites.
type Statut string

// Valeurs possibles du statut, de la moins grave à la plus grave
const (
	StatutValide      Statut = "Valide"       // Formation à jour
	StatutARenouveler Statut = "À renouveler" // Expire dans moins d'un mois
	StatutExpiree     Statut = "Expirée"      // Date d'expiration dépassée
)

// Severite retourne le rang de gravité du statut (plus grand = plus grave).
// Un statut inconnu est traité comme Valide.
func (s Statut) Severite() int {
	switch s {
	case StatutExpiree:
		return 2
	case StatutARenouveler:
		return 1
	default:
		return 0
	}
}

// Pire retourne le plus grave des deux statuts
func Pire(a, b Statut) Statut {
	if b.Severite() > a.Severite() {
		return b
	}
	return a
}
