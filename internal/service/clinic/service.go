package clinic

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	cache "github.com/patrickmn/go-cache"

	"github.com/igabay/booking-api/internal/model"
	"github.com/igabay/booking-api/internal/repository"
	apperrors "github.com/igabay/booking-api/pkg/errors"
)

const (
	cacheTTL     = 1 * time.Minute
	cacheCleanup = 5 * time.Minute
)

// Service manages clinic records. Reads go through a short-TTL in-process
// cache since every availability lookup fetches the clinic row.
type Service struct {
	repo  repository.ClinicRepository
	cache *cache.Cache
}

func NewService(repo repository.ClinicRepository) *Service {
	return &Service{
		repo:  repo,
		cache: cache.New(cacheTTL, cacheCleanup),
	}
}

func (s *Service) CreateClinic(ctx context.Context, req *model.CreateClinicRequest) (*model.Clinic, error) {
	clinic := &model.Clinic{
		Name:            req.Name,
		Address:         req.Address,
		Phone:           req.Phone,
		Email:           req.Email,
		Status:          model.ClinicStatusActive,
		OperatingHours:  req.OperatingHours,
		ConsultationFee: req.ConsultationFee,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
	}

	if err := s.repo.Create(ctx, clinic); err != nil {
		return nil, fmt.Errorf("failed to create clinic: %w", err)
	}
	return clinic, nil
}

func (s *Service) GetClinic(ctx context.Context, id uuid.UUID) (*model.Clinic, error) {
	if cached, ok := s.cache.Get(id.String()); ok {
		return cached.(*model.Clinic), nil
	}

	clinic, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("clinic", err)
		}
		return nil, err
	}

	s.cache.SetDefault(id.String(), clinic)
	return clinic, nil
}

func (s *Service) UpdateClinic(ctx context.Context, id uuid.UUID, req *model.UpdateClinicRequest) (*model.Clinic, error) {
	clinic, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("clinic", err)
		}
		return nil, err
	}

	if req.Name != nil {
		clinic.Name = *req.Name
	}
	if req.Address != nil {
		clinic.Address = *req.Address
	}
	if req.Phone != nil {
		clinic.Phone = *req.Phone
	}
	if req.Email != nil {
		clinic.Email = *req.Email
	}
	if req.Status != nil {
		clinic.Status = *req.Status
	}
	if req.OperatingHours != nil {
		clinic.OperatingHours = *req.OperatingHours
	}
	if req.ConsultationFee != nil {
		clinic.ConsultationFee = *req.ConsultationFee
	}

	if err := s.repo.Update(ctx, clinic); err != nil {
		return nil, fmt.Errorf("failed to update clinic: %w", err)
	}

	s.cache.Delete(id.String())
	return clinic, nil
}

func (s *Service) ListClinics(ctx context.Context) ([]*model.Clinic, error) {
	clinics, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list clinics: %w", err)
	}
	return clinics, nil
}
