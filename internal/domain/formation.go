package domain

import "time"

// Formation représente une certification ou habilitation détenue par un
// utilisateur. DateExpiration absente signifie que la formation n'expire
// jamais et reste Valide.
type Formation struct {
	ID             string     `json:"id"`
	TypeFormation  string     `json:"type_formation"`
	Nom            string     `json:"nom"`
	Description    string     `json:"description,omitempty"`
	Organisme      string     `json:"organisme,omitempty"`
	DateDelivrance *time.Time `json:"date_delivrance,omitempty"`
	DateExpiration *time.Time `json:"date_expiration,omitempty"`
	ValiditeMois   int        `json:"validite,omitempty"`
	Obligatoire    bool       `json:"obligatoire"`
	UserID         string     `json:"user_id"`
	EntrepriseID   string     `json:"entreprise_id"`

	// Statut est dérivé de DateExpiration au moment de la lecture,
	// jamais stocké en base
	Statut Statut `json:"statut_formation,omitempty"`
}
