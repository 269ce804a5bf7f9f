package model

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the wire format for calendar days (no time component).
const DateLayout = "2006-01-02"

// Base contains common fields for all models
type Base struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
