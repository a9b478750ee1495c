package domain

import "time"

// StatutDevis représente l'état d'un devis de formation
type StatutDevis string

// Statuts possibles d'un devis
const (
	DevisEnAttente StatutDevis = "En attente"
	DevisValide    StatutDevis = "Validé"
	DevisRefuse    StatutDevis = "Refusé"
)

// Devis représente un devis émis pour une prestation de formation ou de
// recyclage, éventuellement rattaché à un rendez-vous du calendrier
type Devis struct {
	ID           string      `json:"id"`
	Montant      float64     `json:"montant"`
	Statut       StatutDevis `json:"statut"`
	UserID       string      `json:"user_id"`
	EntrepriseID string      `json:"entreprise_id"`
	RendezVousID string      `json:"rendez_vous_id,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}
