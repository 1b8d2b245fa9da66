package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/igabay/booking-api/internal/model"
	"github.com/igabay/booking-api/internal/repository"
	apperrors "github.com/igabay/booking-api/pkg/errors"
	"github.com/igabay/booking-api/pkg/messaging"
)

type Service interface {
	Send(ctx context.Context, notification *model.Notification) error
	ListForPatient(ctx context.Context, patientID uuid.UUID, limit int) ([]*model.Notification, error)
	MarkRead(ctx context.Context, id, patientID uuid.UUID) error
}

type service struct {
	repo    repository.NotificationRepository
	broker  messaging.Broker
	channel string
}

func NewService(repo repository.NotificationRepository, broker messaging.Broker, channel string) Service {
	if channel == "" {
		channel = "notifications"
	}
	return &service{
		repo:    repo,
		broker:  broker,
		channel: channel,
	}
}

// Send persists the notification for the dispatch worker and, for in-app
// rows, fans it out over the broker right away. Broker failures don't fail
// the send; the worker retries delivery from the persisted row.
func (s *service) Send(ctx context.Context, notification *model.Notification) error {
	if err := s.validate(notification); err != nil {
		return fmt.Errorf("invalid notification: %w", err)
	}

	notification.Status = model.NotificationStatusPending

	if err := s.repo.Create(ctx, notification); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	if notification.Channel == model.NotificationChannelInApp {
		event := &model.NotificationEvent{
			ID:             uuid.New(),
			NotificationID: notification.ID,
			PatientID:      notification.PatientID,
			Type:           "in_app_notification",
			Content:        notification.Content,
			CreatedAt:      time.Now(),
		}
		if err := s.broker.Publish(ctx, s.channel, event); err != nil {
			log.Warn().Err(err).
				Str("notification_id", notification.ID.String()).
				Msg("failed to publish notification event")
		}
	}

	return nil
}

func (s *service) ListForPatient(ctx context.Context, patientID uuid.UUID, limit int) ([]*model.Notification, error) {
	return s.repo.ListForPatient(ctx, patientID, limit)
}

// MarkRead only touches rows owned by patientID; anyone else's
// notification reads as not found.
func (s *service) MarkRead(ctx context.Context, id, patientID uuid.UUID) error {
	if err := s.repo.MarkRead(ctx, id, patientID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("notification", err)
		}
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

func (s *service) validate(notification *model.Notification) error {
	if notification.PatientID == uuid.Nil {
		return fmt.Errorf("patient ID is required")
	}
	if notification.Channel == "" {
		return fmt.Errorf("channel is required")
	}
	if notification.Content == "" {
		return fmt.Errorf("content is required")
	}
	if notification.Channel == model.NotificationChannelEmail && notification.Recipient == "" {
		return fmt.Errorf("recipient is required for email notifications")
	}
	return nil
}
