package wizard

import (
	"github.com/google/uuid"

	"github.com/petportal/booking-api/internal/model"
)

// ShiftOption is a shift annotated with its own expiry for the currently
// selected date, so expired options can be disabled without being hidden.
type ShiftOption struct {
	model.Shift
	Expired bool `json:"expired"`
}

type DraftView struct {
	ClinicID         string                 `json:"clinic_id,omitempty"`
	Date             string                 `json:"date,omitempty"`
	ShiftID          string                 `json:"shift_id,omitempty"`
	SelectedServices []uuid.UUID            `json:"selected_services"`
	Assignments      map[string][]uuid.UUID `json:"assignments"`
}

type SubmissionView struct {
	Status    SubmissionStatus `json:"status"`
	Error     string           `json:"error,omitempty"`
	BookingID string           `json:"booking_id,omitempty"`
}

// State is the full snapshot the presentation layer binds to.
type State struct {
	ID         uuid.UUID                 `json:"id"`
	Step       int                       `json:"step"`
	StepName   string                    `json:"step_name"`
	CanAdvance bool                      `json:"can_advance"`
	Draft      DraftView                 `json:"draft"`
	Clinics    CatalogView[model.Clinic] `json:"clinics"`
	Services   CatalogView[model.Service] `json:"services"`
	Shifts     CatalogView[ShiftOption]  `json:"shifts"`
	Pets       CatalogView[model.Pet]    `json:"pets"`
	Total      int64                     `json:"total"`
	Submission SubmissionView            `json:"submission"`
}

// State snapshots the session. Shift expiry is recomputed on every call
// because wall-clock time advances independently of user input.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reconcileShiftLocked()

	now := s.clock.Now()
	shiftOptions := make([]ShiftOption, 0, len(s.shifts.items))
	for i := range s.shifts.items {
		shiftOptions = append(shiftOptions, ShiftOption{
			Shift:   s.shifts.items[i],
			Expired: IsExpired(&s.shifts.items[i], s.draft.Date, now),
		})
	}

	draft := DraftView{
		SelectedServices: append([]uuid.UUID{}, s.draft.SelectedServices...),
		Assignments:      make(map[string][]uuid.UUID, len(s.draft.Assignments)),
	}
	if s.draft.ClinicID != uuid.Nil {
		draft.ClinicID = s.draft.ClinicID.String()
	}
	if !s.draft.Date.IsZero() {
		draft.Date = s.draft.Date.Format(model.DateLayout)
	}
	if s.draft.Shift != nil {
		draft.ShiftID = s.draft.Shift.ID.String()
	}
	for petID, assigned := range s.draft.Assignments {
		draft.Assignments[petID.String()] = append([]uuid.UUID{}, assigned...)
	}

	submission := SubmissionView{Status: s.submission, Error: s.submissionErr}
	if s.bookingID != uuid.Nil {
		submission.BookingID = s.bookingID.String()
	}

	return State{
		ID:         s.ID,
		Step:       int(s.step),
		StepName:   s.step.String(),
		CanAdvance: s.canAdvanceLocked(s.step),
		Draft:      draft,
		Clinics:    s.clinics.view(),
		Services:   s.services.view(),
		Shifts:     CatalogView[ShiftOption]{Items: shiftOptions, Loading: s.shifts.loading, Error: s.shifts.loadErr},
		Pets:       s.pets.view(),
		Total:      Total(s.draft, s.services.items),
		Submission: submission,
	}
}
