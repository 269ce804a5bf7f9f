package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/petportal/booking-api/internal/model"
	"github.com/petportal/booking-api/internal/repository"
)

const clinicsCacheKey = "clinics"

// Service serves the wizard's resource catalogs from the repositories.
// Clinics change rarely and are identical for every owner, so the clinic
// list is cached briefly; the keyed catalogs are read through every time and
// replaced wholesale by the caller.
type Service struct {
	clinics  repository.ClinicRepository
	services repository.ServiceRepository
	shifts   repository.ShiftRepository
	pets     repository.PetRepository
	cache    *cache.Cache
}

func NewService(
	clinics repository.ClinicRepository,
	services repository.ServiceRepository,
	shifts repository.ShiftRepository,
	pets repository.PetRepository,
) *Service {
	return &Service{
		clinics:  clinics,
		services: services,
		shifts:   shifts,
		pets:     pets,
		cache:    cache.New(5*time.Minute, 10*time.Minute),
	}
}

func (s *Service) ListClinics(ctx context.Context) ([]model.Clinic, error) {
	if cached, ok := s.cache.Get(clinicsCacheKey); ok {
		return cached.([]model.Clinic), nil
	}

	clinics, err := s.clinics.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list clinics: %w", err)
	}
	s.cache.SetDefault(clinicsCacheKey, clinics)
	return clinics, nil
}

func (s *Service) ListServices(ctx context.Context, clinicID uuid.UUID) ([]model.Service, error) {
	services, err := s.services.ListByClinic(ctx, clinicID)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}

func (s *Service) ListShifts(ctx context.Context, clinicID uuid.UUID) ([]model.Shift, error) {
	shifts, err := s.shifts.ListByClinic(ctx, clinicID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	return shifts, nil
}

func (s *Service) ListPets(ctx context.Context, ownerID uuid.UUID) ([]model.Pet, error) {
	pets, err := s.pets.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pets: %w", err)
	}
	return pets, nil
}
