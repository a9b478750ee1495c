package domain

import "time"

// StatutRendezVous représente l'état d'un événement du calendrier
type StatutRendezVous string

// Statuts possibles d'un rendez-vous
const (
	RendezVousPlanifie StatutRendezVous = "Planifié"
	RendezVousTermine  StatutRendezVous = "Terminé"
	RendezVousAnnule   StatutRendezVous = "Annulé"
)

// RendezVous représente un événement du calendrier : réunion sécurité,
// session de recyclage, visite médicale, etc.
type RendezVous struct {
	ID           string           `json:"id"`
	Titre        string           `json:"titre"`
	Description  string           `json:"description,omitempty"`
	DateHeure    time.Time        `json:"date_heure"`
	Statut       StatutRendezVous `json:"statut"`
	UserID       string           `json:"user_id"`
	EntrepriseID string           `json:"entreprise_id"`

	// Utilisateur concerné, renseigné à la lecture
	Utilisateur *Utilisateur `json:"utilisateur,omitempty"`

	// Devis éventuellement rattaché au rendez-vous
	Devis *Devis `json:"devis,omitempty"`
}
