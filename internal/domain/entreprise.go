package domain

// Entreprise représente un client de la plateforme. C'est la frontière
// d'isolation : aucune donnée ne traverse deux entreprises.
type Entreprise struct {
	ID        string `json:"id"`
	Nom       string `json:"nom"`
	Adresse   string `json:"adresse,omitempty"`
	Telephone string `json:"telephone,omitempty"`
	Email     string `json:"email,omitempty"`
}
