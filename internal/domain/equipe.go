package domain

// Equipe représente une équipe de chantier avec ses membres et ses
// responsables (relations many-to-many : un utilisateur peut appartenir à
// plusieurs équipes, une équipe peut avoir plusieurs responsables)
type Equipe struct {
	ID           string `json:"id"`
	Nom          string `json:"nom"`
	Code         string `json:"code,omitempty"`
	Adresse      string `json:"adresse,omitempty"`
	Actif        bool   `json:"actif"`
	EntrepriseID string `json:"entreprise_id"`

	Membres      []Utilisateur `json:"membres,omitempty"`
	Responsables []Utilisateur `json:"responsables,omitempty"`
}

// AResponsable indique si l'utilisateur donné est responsable de l'équipe
func (e *Equipe) AResponsable(userID string) bool {
	for _, r := range e.Responsables {
		if r.ID == userID {
			return true
		}
	}
	return false
}

// AMembre indique si l'utilisateur donné est membre de l'équipe
func (e *Equipe) AMembre(userID string) bool {
	for _, m := range e.Membres {
		if m.ID == userID {
			return true
		}
	}
	return false
}
