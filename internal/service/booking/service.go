package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/petportal/booking-api/internal/email"
	"github.com/petportal/booking-api/internal/model"
	"github.com/petportal/booking-api/internal/repository"
)

var ErrIncompleteRequest = errors.New("booking request is incomplete")

// Service accepts the wizard's submitted payload. The booking, its pet and
// service links and the booking.created outbox event are written atomically;
// the confirmation email is fire-and-forget.
type Service struct {
	repo     repository.BookingRepository
	owners   repository.OwnerRepository
	emailSvc email.Service
}

func NewService(repo repository.BookingRepository, owners repository.OwnerRepository, emailSvc email.Service) *Service {
	return &Service{
		repo:     repo,
		owners:   owners,
		emailSvc: emailSvc,
	}
}

func (s *Service) CreateBooking(ctx context.Context, ownerID uuid.UUID, req *model.BookingRequest) (*model.Booking, error) {
	if err := validateRequest(ownerID, req); err != nil {
		return nil, err
	}

	booking := &model.Booking{
		Base:       model.Base{ID: uuid.New()},
		OwnerID:    ownerID,
		ClinicID:   req.ClinicID,
		ShiftID:    req.ShiftID,
		Date:       req.Date,
		Status:     model.BookingStatusPending,
		PetIDs:     req.PetIDs,
		ServiceIDs: req.ServiceIDs,
	}

	payload, err := json.Marshal(booking)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal booking event: %w", err)
	}
	event := &model.OutboxEvent{
		ID:        uuid.New(),
		EventType: model.EventBookingCreated,
		Payload:   payload,
		Status:    model.OutboxStatusPending,
		CreatedAt: time.Now(),
	}

	if err := s.repo.Create(ctx, booking, event); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	go s.sendConfirmation(booking)

	return booking, nil
}

func (s *Service) ListBookings(ctx context.Context, ownerID uuid.UUID) ([]*model.Booking, error) {
	bookings, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

func (s *Service) sendConfirmation(booking *model.Booking) {
	if s.emailSvc == nil || s.owners == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	owner, err := s.owners.Get(ctx, booking.OwnerID)
	if err != nil {
		log.Warn().Err(err).
			Str("booking_id", booking.ID.String()).
			Msg("could not resolve owner for confirmation email")
		return
	}
	if err := s.emailSvc.SendBookingConfirmation(ctx, owner, booking); err != nil {
		log.Warn().Err(err).
			Str("booking_id", booking.ID.String()).
			Msg("could not send confirmation email")
	}
}

func validateRequest(ownerID uuid.UUID, req *model.BookingRequest) error {
	if ownerID == uuid.Nil || req == nil {
		return ErrIncompleteRequest
	}
	if req.ClinicID == uuid.Nil || req.ShiftID == uuid.Nil || req.Date.IsZero() {
		return ErrIncompleteRequest
	}
	if len(req.PetIDs) == 0 || len(req.ServiceIDs) == 0 {
		return ErrIncompleteRequest
	}
	return nil
}
