package model

import "github.com/google/uuid"

// Service is a treatment offered by exactly one clinic. Price is an integer
// currency unit; a service assigned to N pets is charged N times.
type Service struct {
	Base
	ClinicID    uuid.UUID `db:"clinic_id" json:"clinic_id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description,omitempty"`
	Duration    int       `db:"duration" json:"duration"` // in minutes
	Price       int64     `db:"price" json:"price"`
}
