package clinic

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/igabay/booking-api/internal/model"
	"github.com/igabay/booking-api/internal/repository"
	apperrors "github.com/igabay/booking-api/pkg/errors"
)

type fakeClinicRepo struct {
	clinics map[uuid.UUID]*model.Clinic
	gets    int
}

func newFakeClinicRepo() *fakeClinicRepo {
	return &fakeClinicRepo{clinics: make(map[uuid.UUID]*model.Clinic)}
}

func (f *fakeClinicRepo) Create(ctx context.Context, clinic *model.Clinic) error {
	clinic.ID = uuid.New()
	f.clinics[clinic.ID] = clinic
	return nil
}

func (f *fakeClinicRepo) Get(ctx context.Context, id uuid.UUID) (*model.Clinic, error) {
	f.gets++
	clinic, ok := f.clinics[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clinic, nil
}

func (f *fakeClinicRepo) Update(ctx context.Context, clinic *model.Clinic) error {
	f.clinics[clinic.ID] = clinic
	return nil
}

func (f *fakeClinicRepo) List(ctx context.Context) ([]*model.Clinic, error) {
	out := make([]*model.Clinic, 0, len(f.clinics))
	for _, c := range f.clinics {
		out = append(out, c)
	}
	return out, nil
}

func TestCreateClinic(t *testing.T) {
	repo := newFakeClinicRepo()
	svc := NewService(repo)

	clinic, err := svc.CreateClinic(context.Background(), &model.CreateClinicRequest{
		Name:            "Santos Family Clinic",
		Address:         "123 Rizal Ave",
		ConsultationFee: 500,
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, clinic.ID)
	assert.Equal(t, model.ClinicStatusActive, clinic.Status, "new clinics start active")
}

func TestGetClinic_CachesReads(t *testing.T) {
	repo := newFakeClinicRepo()
	svc := NewService(repo)

	created, err := svc.CreateClinic(context.Background(), &model.CreateClinicRequest{
		Name:    "Santos Family Clinic",
		Address: "123 Rizal Ave",
	})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		got, err := svc.GetClinic(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
	}
	assert.Equal(t, 1, repo.gets, "repeat reads must come from the cache")
}

func TestGetClinic_NotFound(t *testing.T) {
	svc := NewService(newFakeClinicRepo())

	_, err := svc.GetClinic(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdateClinic_InvalidatesCache(t *testing.T) {
	repo := newFakeClinicRepo()
	svc := NewService(repo)

	created, err := svc.CreateClinic(context.Background(), &model.CreateClinicRequest{
		Name:    "Santos Family Clinic",
		Address: "123 Rizal Ave",
	})
	require.NoError(t, err)

	// prime the cache
	_, err = svc.GetClinic(context.Background(), created.ID)
	require.NoError(t, err)

	newName := "Santos Medical Center"
	updated, err := svc.UpdateClinic(context.Background(), created.ID, &model.UpdateClinicRequest{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, newName, updated.Name)

	got, err := svc.GetClinic(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, newName, got.Name, "stale cache entry must be dropped on update")
}

func TestUpdateClinic_PartialUpdate(t *testing.T) {
	repo := newFakeClinicRepo()
	svc := NewService(repo)

	created, err := svc.CreateClinic(context.Background(), &model.CreateClinicRequest{
		Name:            "Santos Family Clinic",
		Address:         "123 Rizal Ave",
		ConsultationFee: 500,
	})
	require.NoError(t, err)

	inactive := model.ClinicStatusInactive
	updated, err := svc.UpdateClinic(context.Background(), created.ID, &model.UpdateClinicRequest{Status: &inactive})
	require.NoError(t, err)

	assert.Equal(t, model.ClinicStatusInactive, updated.Status)
	assert.Equal(t, "Santos Family Clinic", updated.Name, "unset fields stay as they were")
	assert.Equal(t, int64(500), updated.ConsultationFee)
}
