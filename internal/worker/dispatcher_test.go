package worker

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/igabay/booking-api/internal/model"
	"github.com/igabay/booking-api/pkg/logger"
)

type fakeNotificationRepo struct {
	pending []*model.Notification
	updated []*model.Notification
}

func (f *fakeNotificationRepo) Create(ctx context.Context, n *model.Notification) error { return nil }

func (f *fakeNotificationRepo) Update(ctx context.Context, n *model.Notification) error {
	f.updated = append(f.updated, n)
	return nil
}

func (f *fakeNotificationRepo) ListForPatient(ctx context.Context, patientID uuid.UUID, limit int) ([]*model.Notification, error) {
	return nil, nil
}

func (f *fakeNotificationRepo) MarkRead(ctx context.Context, id, patientID uuid.UUID) error {
	return nil
}

func (f *fakeNotificationRepo) FetchPending(ctx context.Context, limit int) ([]*model.Notification, error) {
	out := f.pending
	f.pending = nil
	return out, nil
}

type fakeSender struct {
	sent []string
	err  error
}

func (f *fakeSender) Send(ctx context.Context, to, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, to)
	return nil
}

func quietLogger() *logger.Logger {
	return logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: io.Discard})
}

func emailNotification() *model.Notification {
	return &model.Notification{
		Base:      model.Base{ID: uuid.New()},
		PatientID: uuid.New(),
		Channel:   model.NotificationChannelEmail,
		Subject:   "Appointment confirmed",
		Content:   "Your appointment has been booked.",
		Recipient: "maria@example.com",
		Status:    model.NotificationStatusPending,
	}
}

func TestProcessBatch_DeliversEmail(t *testing.T) {
	repo := &fakeNotificationRepo{pending: []*model.Notification{emailNotification()}}
	sender := &fakeSender{}
	d := NewDispatcher(repo, sender, DispatcherConfig{}, quietLogger())

	d.processBatch(context.Background())

	assert.Equal(t, []string{"maria@example.com"}, sender.sent)
	require.Len(t, repo.updated, 1)
	assert.Equal(t, model.NotificationStatusSent, repo.updated[0].Status)
	assert.NotNil(t, repo.updated[0].SentAt)
}

func TestProcessBatch_InAppJustMarkedSent(t *testing.T) {
	n := emailNotification()
	n.Channel = model.NotificationChannelInApp
	n.Recipient = ""

	repo := &fakeNotificationRepo{pending: []*model.Notification{n}}
	sender := &fakeSender{}
	d := NewDispatcher(repo, sender, DispatcherConfig{}, quietLogger())

	d.processBatch(context.Background())

	assert.Empty(t, sender.sent, "in-app rows never hit SMTP")
	require.Len(t, repo.updated, 1)
	assert.Equal(t, model.NotificationStatusSent, repo.updated[0].Status)
}

func TestProcessBatch_FailureSchedulesRetry(t *testing.T) {
	n := emailNotification()
	repo := &fakeNotificationRepo{pending: []*model.Notification{n}}
	sender := &fakeSender{err: errors.New("smtp unavailable")}
	d := NewDispatcher(repo, sender, DispatcherConfig{RetryDelay: time.Minute}, quietLogger())

	d.processBatch(context.Background())

	require.Len(t, repo.updated, 1)
	got := repo.updated[0]
	assert.Equal(t, model.NotificationStatusRetrying, got.Status)
	assert.Equal(t, 1, got.RetryCount)
	assert.Equal(t, "smtp unavailable", got.LastError)
	require.NotNil(t, got.NextRetryAt)
	assert.True(t, got.NextRetryAt.After(time.Now()))
}

func TestProcessBatch_GivesUpAfterMaxRetries(t *testing.T) {
	n := emailNotification()
	n.RetryCount = maxRetries - 1
	n.Status = model.NotificationStatusRetrying

	repo := &fakeNotificationRepo{pending: []*model.Notification{n}}
	sender := &fakeSender{err: errors.New("smtp unavailable")}
	d := NewDispatcher(repo, sender, DispatcherConfig{}, quietLogger())

	d.processBatch(context.Background())

	require.Len(t, repo.updated, 1)
	got := repo.updated[0]
	assert.Equal(t, model.NotificationStatusFailed, got.Status)
	assert.Equal(t, maxRetries, got.RetryCount)
	assert.Nil(t, got.NextRetryAt)
}

func TestStart_StopsOnContextCancel(t *testing.T) {
	repo := &fakeNotificationRepo{}
	d := NewDispatcher(repo, &fakeSender{}, DispatcherConfig{PollInterval: time.Millisecond}, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		d.Start(ctx)
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("dispatcher did not stop")
	}
}
