package rbac

import "github.com/tlecomte/formatrack/internal/domain"

// VueUtilisateur est la projection d'un utilisateur autorisée pour un
// appelant donné. Deux variantes typées remplacent la construction
// conditionnelle de payload champ par champ : soit le profil complet, soit
// le profil restreint, jamais un mélange.
type VueUtilisateur interface {
	vueUtilisateur()
}

// ProfilRestreint contient les champs visibles par tout collègue de la
// même entreprise : identité de base et formations obligatoires
// uniquement. Pas de coordonnées personnelles.
type ProfilRestreint struct {
	ID                 string             `json:"id"`
	Nom                string             `json:"nom"`
	Prenom             string             `json:"prenom"`
	Email              string             `json:"email"`
	Role               domain.Role        `json:"role"`
	EquipesMembre      []domain.EquipeRef `json:"equipes_membre"`
	EquipesResponsable []domain.EquipeRef `json:"equipes_responsable"`

	// Formations ne contient que les formations obligatoires
	Formations []domain.Formation `json:"formations"`
}

func (ProfilRestreint) vueUtilisateur() {}

// ProfilComplet contient tous les champs, y compris les données
// personnelles. Visible par l'admin, le propriétaire du profil et ses
// responsables d'équipe.
type ProfilComplet struct {
	ID                 string             `json:"id"`
	Nom                string             `json:"nom"`
	Prenom             string             `json:"prenom"`
	Email              string             `json:"email"`
	Role               domain.Role        `json:"role"`
	Telephone          string             `json:"telephone"`
	Adresse            string             `json:"adresse"`
	NumSecuriteSociale string             `json:"num_securite_sociale"`
	EquipesMembre      []domain.EquipeRef `json:"equipes_membre"`
	EquipesResponsable []domain.EquipeRef `json:"equipes_responsable"`
	Formations         []domain.Formation `json:"formations"`
}

func (ProfilComplet) vueUtilisateur() {}

// FiltrerUtilisateur construit la vue de la cible autorisée pour
// l'appelant. L'isolation d'entreprise doit avoir été vérifiée en amont
// par CheckAccess ; par sécurité un appelant d'une autre entreprise reçoit
// tout de même la vue restreinte la plus pauvre possible.
func FiltrerUtilisateur(caller Caller, cible *domain.Utilisateur) VueUtilisateur {
	if CanViewFullProfile(caller, cible) {
		return ProfilComplet{
			ID:                 cible.ID,
			Nom:                cible.Nom,
			Prenom:             cible.Prenom,
			Email:              cible.Email,
			Role:               cible.Role,
			Telephone:          cible.Telephone,
			Adresse:            cible.Adresse,
			NumSecuriteSociale: cible.NumSecuriteSociale,
			EquipesMembre:      cible.EquipesMembre,
			EquipesResponsable: cible.EquipesResponsable,
			Formations:         cible.Formations,
		}
	}

	obligatoires := make([]domain.Formation, 0, len(cible.Formations))
	for _, f := range cible.Formations {
		if f.Obligatoire {
			obligatoires = append(obligatoires, f)
		}
	}

	return ProfilRestreint{
		ID:                 cible.ID,
		Nom:                cible.Nom,
		Prenom:             cible.Prenom,
		Email:              cible.Email,
		Role:               cible.Role,
		EquipesMembre:      cible.EquipesMembre,
		EquipesResponsable: cible.EquipesResponsable,
		Formations:         obligatoires,
	}
}
