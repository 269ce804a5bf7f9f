package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/petportal/booking-api/internal/model"
	"github.com/petportal/booking-api/internal/repository"
)

type bookingRepository struct {
	BaseRepository
}

func NewBookingRepository(base BaseRepository) repository.BookingRepository {
	return &bookingRepository{base}
}

// Create inserts the booking, its pet and service links and the outbox event
// in one transaction. Either all of it lands or nothing does.
func (r *bookingRepository) Create(ctx context.Context, booking *model.Booking, event *model.OutboxEvent) error {
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO bookings (
				id, owner_id, clinic_id, shift_id, date, status, created_at, updated_at
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8
			)
		`
		if _, err := tx.ExecContext(ctx, query,
			booking.ID,
			booking.OwnerID,
			booking.ClinicID,
			booking.ShiftID,
			booking.Date,
			booking.Status,
			booking.CreatedAt,
			booking.UpdatedAt,
		); err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}

		for _, petID := range booking.PetIDs {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO booking_pets (booking_id, pet_id) VALUES ($1, $2)`,
				booking.ID, petID,
			); err != nil {
				return fmt.Errorf("failed to link pet to booking: %w", err)
			}
		}

		for _, serviceID := range booking.ServiceIDs {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO booking_services (booking_id, service_id) VALUES ($1, $2)`,
				booking.ID, serviceID,
			); err != nil {
				return fmt.Errorf("failed to link service to booking: %w", err)
			}
		}

		if event != nil {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO outbox_events (id, event_type, payload, status, retry_count, created_at)
				 VALUES ($1, $2, $3, $4, $5, $6)`,
				event.ID, event.EventType, event.Payload, event.Status, event.RetryCount, event.CreatedAt,
			); err != nil {
				return fmt.Errorf("failed to create outbox event: %w", err)
			}
		}

		return nil
	})
}

func (r *bookingRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.Booking, error) {
	query := `
		SELECT id, owner_id, clinic_id, shift_id, date, status, created_at, updated_at
		FROM bookings
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`
	var bookings []*model.Booking
	if err := r.db.SelectContext(ctx, &bookings, query, ownerID); err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	for _, b := range bookings {
		if err := r.db.SelectContext(ctx, &b.PetIDs,
			`SELECT pet_id FROM booking_pets WHERE booking_id = $1`, b.ID); err != nil {
			return nil, fmt.Errorf("failed to load booking pets: %w", err)
		}
		if err := r.db.SelectContext(ctx, &b.ServiceIDs,
			`SELECT service_id FROM booking_services WHERE booking_id = $1`, b.ID); err != nil {
			return nil, fmt.Errorf("failed to load booking services: %w", err)
		}
	}
	return bookings, nil
}
