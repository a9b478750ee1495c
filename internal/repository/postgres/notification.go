package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tlecomte/formatrack/internal/domain"
)

// NotificationRepository implémente repository.NotificationRepository pour
// PostgreSQL
type NotificationRepository struct {
	db *pgxpool.Pool
}

// NewNotificationRepository crée un nouveau NotificationRepository
func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// CreateBatch insère un lot de notifications dans une même transaction
func (r *NotificationRepository) CreateBatch(ctx context.Context, notifications []domain.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, n := range notifications {
		if _, err := tx.Exec(ctx, `
			INSERT INTO notifications (id, user_id, formation_id, type, message, lu)
			VALUES ($1, $2, NULLIF($3, ''), $4, $5, FALSE)
		`, n.ID, n.UserID, n.FormationID, n.Type, n.Message); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// ListByUtilisateur retourne les notifications d'un utilisateur, de la
// plus récente à la plus ancienne
func (r *NotificationRepository) ListByUtilisateur(ctx context.Context, userID string) ([]domain.Notification, error) {
	query := `
		SELECT id, user_id, COALESCE(formation_id, ''), type, message, lu, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.FormationID, &n.Type, &n.Message, &n.Lu, &n.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, n)
	}

	return result, rows.Err()
}

// MarquerLue marque une notification comme lue si l'utilisateur en est le
// destinataire
func (r *NotificationRepository) MarquerLue(ctx context.Context, id, userID string) error {
	result, err := r.db.Exec(ctx,
		`UPDATE notifications SET lu = TRUE WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrNotificationNotFound
	}

	return nil
}
