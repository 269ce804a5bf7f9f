package model

import "github.com/google/uuid"

type ShiftName string

const (
	ShiftMorning   ShiftName = "morning"
	ShiftAfternoon ShiftName = "afternoon"
	ShiftEvening   ShiftName = "evening"
	ShiftNight     ShiftName = "night"
)

// TimeOfDayLayout is the wire format for shift boundaries.
const TimeOfDayLayout = "15:04"

// Shift is a named time window offered by a clinic on any given day.
// StartTime and EndTime are times of day in TimeOfDayLayout.
type Shift struct {
	Base
	ClinicID  uuid.UUID `db:"clinic_id" json:"clinic_id"`
	Name      ShiftName `db:"name" json:"name"`
	StartTime string    `db:"start_time" json:"start_time"`
	EndTime   string    `db:"end_time" json:"end_time"`
}
