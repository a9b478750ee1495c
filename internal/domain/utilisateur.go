package domain

// Utilisateur représente un salarié de l'entreprise
type Utilisateur struct {
	ID                 string `json:"id"`
	Nom                string `json:"nom"`
	Prenom             string `json:"prenom"`
	Email              string `json:"email"`
	Telephone          string `json:"telephone,omitempty"`
	Adresse            string `json:"adresse,omitempty"`
	NumSecuriteSociale string `json:"num_securite_sociale,omitempty"`
	Role               Role   `json:"role"`
	EntrepriseID       string `json:"entreprise_id"`

	// PasswordHash n'est jamais sérialisé vers les clients
	PasswordHash string `json:"-"`

	// Relations many-to-many avec les équipes
	EquipesMembre      []EquipeRef `json:"equipes_membre,omitempty"`
	EquipesResponsable []EquipeRef `json:"equipes_responsable,omitempty"`

	Formations []Formation `json:"formations,omitempty"`
}

// EquipeRef est une référence légère vers une équipe (utilisée dans les
// relations de l'utilisateur)
type EquipeRef struct {
	ID  string `json:"id"`
	Nom string `json:"nom"`
}

// EstMembreDe indique si l'utilisateur est membre de l'équipe donnée
func (u *Utilisateur) EstMembreDe(equipeID string) bool {
	for _, e := range u.EquipesMembre {
		if e.ID == equipeID {
			return true
		}
	}
	return false
}

// EstResponsableDe indique si l'utilisateur est responsable de l'équipe donnée
func (u *Utilisateur) EstResponsableDe(equipeID string) bool {
	for _, e := range u.EquipesResponsable {
		if e.ID == equipeID {
			return true
		}
	}
	return false
}
