package notification

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/igabay/booking-api/internal/model"
	"github.com/igabay/booking-api/internal/repository"
	redisbroker "github.com/igabay/booking-api/pkg/messaging/redis"
)

type fakeNotificationRepo struct {
	created []*model.Notification
	read    []uuid.UUID
}

func (f *fakeNotificationRepo) Create(ctx context.Context, n *model.Notification) error {
	n.ID = uuid.New()
	f.created = append(f.created, n)
	return nil
}

func (f *fakeNotificationRepo) Update(ctx context.Context, n *model.Notification) error {
	return nil
}

func (f *fakeNotificationRepo) ListForPatient(ctx context.Context, patientID uuid.UUID, limit int) ([]*model.Notification, error) {
	var out []*model.Notification
	for _, n := range f.created {
		if n.PatientID == patientID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) MarkRead(ctx context.Context, id, patientID uuid.UUID) error {
	for _, n := range f.created {
		if n.ID == id && n.PatientID == patientID {
			f.read = append(f.read, id)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeNotificationRepo) FetchPending(ctx context.Context, limit int) ([]*model.Notification, error) {
	return nil, nil
}

func newTestService(t *testing.T) (Service, *fakeNotificationRepo, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	logger := zerolog.Nop()
	repo := &fakeNotificationRepo{}
	svc := NewService(repo, redisbroker.NewRedisBrokerWithClient(client, &logger), "notifications")
	return svc, repo, client
}

func TestSend_PersistsAndPublishesInApp(t *testing.T) {
	svc, repo, client := newTestService(t)
	ctx := context.Background()

	sub := client.Subscribe(ctx, "notifications")
	t.Cleanup(func() { sub.Close() })
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	patientID := uuid.New()
	err = svc.Send(ctx, &model.Notification{
		PatientID: patientID,
		Channel:   model.NotificationChannelInApp,
		Subject:   "Appointment confirmed",
		Content:   "Your appointment has been booked.",
	})
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	assert.Equal(t, model.NotificationStatusPending, repo.created[0].Status)

	msg, err := sub.ReceiveMessage(ctx)
	require.NoError(t, err)

	var event model.NotificationEvent
	require.NoError(t, json.Unmarshal([]byte(msg.Payload), &event))
	assert.Equal(t, patientID, event.PatientID)
	assert.Equal(t, "in_app_notification", event.Type)
	assert.Equal(t, repo.created[0].ID, event.NotificationID)
}

func TestSend_EmailIsPersistedOnly(t *testing.T) {
	svc, repo, _ := newTestService(t)

	err := svc.Send(context.Background(), &model.Notification{
		PatientID: uuid.New(),
		Channel:   model.NotificationChannelEmail,
		Subject:   "Appointment confirmed",
		Content:   "Your appointment has been booked.",
		Recipient: "maria@example.com",
	})
	require.NoError(t, err)
	require.Len(t, repo.created, 1)
	assert.Equal(t, model.NotificationChannelEmail, repo.created[0].Channel)
}

func TestSend_Validation(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name string
		n    *model.Notification
	}{
		{"missing patient", &model.Notification{Channel: model.NotificationChannelInApp, Content: "x"}},
		{"missing channel", &model.Notification{PatientID: uuid.New(), Content: "x"}},
		{"missing content", &model.Notification{PatientID: uuid.New(), Channel: model.NotificationChannelInApp}},
		{"email without recipient", &model.Notification{PatientID: uuid.New(), Channel: model.NotificationChannelEmail, Content: "x"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, svc.Send(ctx, tc.n))
		})
	}
	assert.Empty(t, repo.created)
}

func TestMarkRead(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	patientID := uuid.New()
	n := &model.Notification{PatientID: patientID, Channel: model.NotificationChannelInApp, Content: "hello"}
	require.NoError(t, svc.Send(ctx, n))

	require.NoError(t, svc.MarkRead(ctx, n.ID, patientID))
	assert.Equal(t, []uuid.UUID{n.ID}, repo.read)
}

func TestMarkRead_OtherPatientsNotificationNotFound(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	n := &model.Notification{PatientID: uuid.New(), Channel: model.NotificationChannelInApp, Content: "hello"}
	require.NoError(t, svc.Send(ctx, n))

	err := svc.MarkRead(ctx, n.ID, uuid.New())
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Empty(t, repo.read)
}

var _ repository.NotificationRepository = (*fakeNotificationRepo)(nil)
