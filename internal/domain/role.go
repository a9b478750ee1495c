package domain

// Role représente le rôle d'un utilisateur dans son entreprise
type Role string

// Rôles supportés, du moins privilégié au plus privilégié
const (
	RoleOuvrier      Role = "ouvrier"      // Salarié sans droit particulier
	RoleRepresentant Role = "representant" // Chef de chantier - accès limité
	RoleAdmin        Role = "admin"        // Admin, RH - accès complet
)

// Niveau retourne le niveau hiérarchique du rôle. Un rôle inconnu vaut -1
// pour que toute comparaison de seuil échoue (fail closed).
func (r Role) Niveau() int {
	switch r {
	case RoleAdmin:
		return 2
	case RoleRepresentant:
		return 1
	case RoleOuvrier:
		return 0
	default:
		return -1
	}
}

// Valid indique si la valeur correspond à un rôle connu
func (r Role) Valid() bool {
	return r.Niveau() >= 0
}
