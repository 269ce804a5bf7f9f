package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/petportal/booking-api/internal/model"
)

type ClinicRepository interface {
	List(ctx context.Context) ([]model.Clinic, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Clinic, error)
}

type ServiceRepository interface {
	ListByClinic(ctx context.Context, clinicID uuid.UUID) ([]model.Service, error)
}

type ShiftRepository interface {
	ListByClinic(ctx context.Context, clinicID uuid.UUID) ([]model.Shift, error)
}

type PetRepository interface {
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Pet, error)
}

type OwnerRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*model.Owner, error)
}

// BookingRepository persists a booking, its pet and service links and the
// outbox event in a single transaction.
type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking, event *model.OutboxEvent) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.Booking, error)
}

type OutboxRepository interface {
	GetPendingEventsWithLock(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
	MarkProcessed(ctx context.Context, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID) error
}
