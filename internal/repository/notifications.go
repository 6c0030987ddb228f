package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/workhive/backend/internal/domain"
)

// insertNotificationTx is the single notification write path; every producer
// runs it inside the transaction of the workflow that triggered the event.
func insertNotificationTx(ctx context.Context, tx *sql.Tx, notification *domain.Notification) error {
	query := `
		INSERT INTO notifications (user_id, type, message, invitation_status, related_entity_id, related_entity_type)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, read, created_at
	`

	var relatedID *int64
	var relatedType *string
	if notification.Related != nil {
		relatedID = &notification.Related.EntityID
		relatedType = &notification.Related.EntityType
	}

	args := []any{
		notification.UserID,
		notification.Type,
		notification.Message,
		notification.InvitationStatus,
		relatedID,
		relatedType,
	}
	return tx.QueryRowContext(ctx, query, args...).Scan(&notification.ID, &notification.Read, &notification.CreatedAt)
}

func (r *Repository) ListNotificationsForUser(userID int64) ([]*domain.Notification, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id, type, message, invitation_status, related_entity_id, related_entity_type, read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.dbpool.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := make([]*domain.Notification, 0)
	for rows.Next() {
		notification := &domain.Notification{UserID: userID}
		var relatedID *int64
		var relatedType *string
		dst := []any{
			&notification.ID,
			&notification.Type,
			&notification.Message,
			&notification.InvitationStatus,
			&relatedID,
			&relatedType,
			&notification.Read,
			&notification.CreatedAt,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		if relatedID != nil && relatedType != nil {
			notification.Related = &domain.RelatedEntity{EntityID: *relatedID, EntityType: *relatedType}
		}
		notifications = append(notifications, notification)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return notifications, nil
}

// MarkNotificationRead flips the read flag, scoped to the owner so one user
// cannot touch another's notifications.
func (r *Repository) MarkNotificationRead(userID, notificationID int64) (*domain.Notification, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		UPDATE notifications
		SET read = TRUE
		WHERE id = $1 AND user_id = $2
		RETURNING type, message, invitation_status, related_entity_id, related_entity_type, created_at
	`

	notification := &domain.Notification{ID: notificationID, UserID: userID, Read: true}
	var relatedID *int64
	var relatedType *string
	dst := []any{
		&notification.Type,
		&notification.Message,
		&notification.InvitationStatus,
		&relatedID,
		&relatedType,
		&notification.CreatedAt,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, notificationID, userID).Scan(dst...); err != nil {
		return nil, notFound(err, "notification")
	}
	if relatedID != nil && relatedType != nil {
		notification.Related = &domain.RelatedEntity{EntityID: *relatedID, EntityType: *relatedType}
	}

	return notification, nil
}
