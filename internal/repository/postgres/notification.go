package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/igabay/booking-api/internal/model"
	"github.com/igabay/booking-api/internal/repository"
)

func (r *notificationRepository) Create(ctx context.Context, notification *model.Notification) error {
	query := `
		INSERT INTO notifications (
			id, patient_id, channel, subject, content, recipient,
			status, read, retry_count, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	notification.ID = uuid.New()
	notification.CreatedAt = time.Now()
	notification.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		notification.ID,
		notification.PatientID,
		notification.Channel,
		notification.Subject,
		notification.Content,
		notification.Recipient,
		notification.Status,
		notification.Read,
		notification.RetryCount,
		notification.CreatedAt,
		notification.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

func (r *notificationRepository) Update(ctx context.Context, notification *model.Notification) error {
	query := `
		UPDATE notifications
		SET status = $1, retry_count = $2, last_error = $3,
			next_retry_at = $4, sent_at = $5, updated_at = $6
		WHERE id = $7
	`
	notification.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		notification.Status,
		notification.RetryCount,
		notification.LastError,
		notification.NextRetryAt,
		notification.SentAt,
		notification.UpdatedAt,
		notification.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update notification: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *notificationRepository) ListForPatient(ctx context.Context, patientID uuid.UUID, limit int) ([]*model.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT id, patient_id, channel, subject, content, recipient,
			   status, read, retry_count, last_error, next_retry_at, sent_at,
			   created_at, updated_at
		FROM notifications
		WHERE patient_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	var notifications []*model.Notification
	err := r.db.SelectContext(ctx, &notifications, query, patientID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id, patientID uuid.UUID) error {
	query := `
		UPDATE notifications
		SET read = TRUE, updated_at = $1
		WHERE id = $2 AND patient_id = $3
	`
	result, err := r.db.ExecContext(ctx, query, time.Now(), id, patientID)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// FetchPending returns a batch of dispatchable rows. SKIP LOCKED keeps
// concurrent pollers from blocking on one another, but the locks only
// last for the statement; deployments run a single dispatcher to keep
// sends exactly-once.
func (r *notificationRepository) FetchPending(ctx context.Context, limit int) ([]*model.Notification, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT id, patient_id, channel, subject, content, recipient,
			   status, read, retry_count, last_error, next_retry_at, sent_at,
			   created_at, updated_at
		FROM notifications
		WHERE status IN ('pending', 'retrying')
		AND (next_retry_at IS NULL OR next_retry_at <= NOW())
		ORDER BY created_at ASC
		LIMIT $1
		FOR UPDATE SKIP LOCKED
	`
	var notifications []*model.Notification
	err := r.db.SelectContext(ctx, &notifications, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pending notifications: %w", err)
	}
	return notifications, nil
}
