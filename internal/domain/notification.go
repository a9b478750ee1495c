package domain

import "time"

// TypeNotification catégorise les notifications
type TypeNotification string

// Types de notification émis par le service
const (
	NotificationFormation  TypeNotification = "FORMATION"
	NotificationRendezVous TypeNotification = "RENDEZ_VOUS"
)

// Notification représente un message interne destiné à un utilisateur
// (formation expirée, formation à renouveler, rendez-vous à venir).
// L'envoi effectif par email ou SMS est hors du périmètre du service.
type Notification struct {
	ID          string           `json:"id"`
	UserID      string           `json:"user_id"`
	FormationID string           `json:"formation_id,omitempty"`
	Type        TypeNotification `json:"type"`
	Message     string           `json:"message"`
	Lu          bool             `json:"lu"`
	CreatedAt   time.Time        `json:"created_at"`
}
