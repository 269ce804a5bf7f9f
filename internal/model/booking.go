package model

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking is the persisted result of a submitted wizard draft. PetIDs and
// ServiceIDs live in join tables; the client treats the whole thing as atomic.
type Booking struct {
	Base
	OwnerID    uuid.UUID     `db:"owner_id" json:"owner_id"`
	ClinicID   uuid.UUID     `db:"clinic_id" json:"clinic_id"`
	ShiftID    uuid.UUID     `db:"shift_id" json:"shift_id"`
	Date       time.Time     `db:"date" json:"date"`
	Status     BookingStatus `db:"status" json:"status"`
	PetIDs     []uuid.UUID   `db:"-" json:"pet_ids"`
	ServiceIDs []uuid.UUID   `db:"-" json:"service_ids"`
}

// BookingRequest is the single all-or-nothing payload built from a completed
// wizard draft: the clinic, every pet with at least one assignment, the
// deduplicated union of assigned services, the calendar day and the shift.
type BookingRequest struct {
	ClinicID   uuid.UUID   `json:"clinic_id"`
	PetIDs     []uuid.UUID `json:"pet_ids"`
	ServiceIDs []uuid.UUID `json:"service_ids"`
	Date       time.Time   `json:"date"`
	ShiftID    uuid.UUID   `json:"shift_id"`
}
