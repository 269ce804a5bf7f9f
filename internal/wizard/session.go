package wizard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/petportal/booking-api/internal/model"
	"github.com/petportal/booking-api/pkg/metrics"

	"sync"
)

// Source exposes the read-only backend collaborators the wizard consumes.
type Source interface {
	ListClinics(ctx context.Context) ([]model.Clinic, error)
	ListServices(ctx context.Context, clinicID uuid.UUID) ([]model.Service, error)
	ListShifts(ctx context.Context, clinicID uuid.UUID) ([]model.Shift, error)
	ListPets(ctx context.Context, ownerID uuid.UUID) ([]model.Pet, error)
}

// Booker performs the single all-or-nothing booking call.
type Booker interface {
	CreateBooking(ctx context.Context, ownerID uuid.UUID, req *model.BookingRequest) (*model.Booking, error)
}

type SubmissionStatus string

const (
	SubmissionIdle       SubmissionStatus = "idle"
	SubmissionSubmitting SubmissionStatus = "submitting"
	SubmissionSucceeded  SubmissionStatus = "succeeded"
	SubmissionFailed     SubmissionStatus = "failed"
)

type SessionConfig struct {
	// LoadTimeout bounds each catalog fetch.
	LoadTimeout time.Duration
	// ResetDelay is how long the succeeded state stays visible before the
	// draft and step are reset. Zero resets immediately.
	ResetDelay time.Duration
}

// Session is one owner's booking wizard: the draft, the current step, the
// four resource catalogs and the submission lifecycle. Catalog loads resolve
// on their own goroutines; everything behind mu is otherwise mutated only in
// response to discrete user actions.
type Session struct {
	ID      uuid.UUID
	OwnerID uuid.UUID

	source Source
	booker Booker
	clock  Clock
	cfg    SessionConfig
	m      *metrics.Metrics

	mu            sync.Mutex
	step          Step
	draft         *Draft
	clinics       catalogState[model.Clinic]
	services      catalogState[model.Service]
	shifts        catalogState[model.Shift]
	pets          catalogState[model.Pet]
	submission    SubmissionStatus
	submissionErr string
	bookingID     uuid.UUID
}

func NewSession(ownerID uuid.UUID, source Source, booker Booker, clock Clock, cfg SessionConfig, m *metrics.Metrics) *Session {
	if cfg.LoadTimeout <= 0 {
		cfg.LoadTimeout = 10 * time.Second
	}
	return &Session{
		ID:         uuid.New(),
		OwnerID:    ownerID,
		source:     source,
		booker:     booker,
		clock:      clock,
		cfg:        cfg,
		m:          m,
		step:       StepClinic,
		draft:      NewDraft(),
		submission: SubmissionIdle,
	}
}

// Start kicks off the loads that do not depend on a clinic selection:
// clinics once per session, pets once per owner. The loads are independent
// and unordered relative to each other.
func (s *Session) Start() {
	s.mu.Lock()
	clinicsGen := s.clinics.begin()
	petsGen := s.pets.begin()
	s.mu.Unlock()

	go s.loadClinics(clinicsGen)
	go s.loadPets(petsGen)
}

func (s *Session) loadClinics(gen uint64) {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.LoadTimeout)
	defer cancel()

	items, err := s.source.ListClinics(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.clinics.resolve(gen, items, err) {
		s.countStale("clinics")
		return
	}
	s.countLoad("clinics", err)
}

func (s *Session) loadPets(gen uint64) {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.LoadTimeout)
	defer cancel()

	items, err := s.source.ListPets(ctx, s.OwnerID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.pets.resolve(gen, items, err) {
		s.countStale("pets")
		return
	}
	s.countLoad("pets", err)
}

func (s *Session) loadServices(clinicID uuid.UUID, gen uint64) {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.LoadTimeout)
	defer cancel()

	items, err := s.source.ListServices(ctx, clinicID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.services.resolve(gen, items, err) {
		s.countStale("services")
		return
	}
	s.countLoad("services", err)
}

func (s *Session) loadShifts(clinicID uuid.UUID, gen uint64) {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.LoadTimeout)
	defer cancel()

	items, err := s.source.ListShifts(ctx, clinicID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.shifts.resolve(gen, items, err) {
		s.countStale("shifts")
		return
	}
	s.countLoad("shifts", err)
	// A reload can invalidate the current shift selection.
	s.reconcileShiftLocked()
}

// SelectClinic sets the clinic on the draft, clears the clinic-scoped
// catalogs immediately and reloads them. A load still in flight for the
// previous clinic is invalidated by the generation bump.
func (s *Session) SelectClinic(clinicID uuid.UUID) error {
	s.mu.Lock()
	if s.submission == SubmissionSubmitting {
		s.mu.Unlock()
		return ErrSubmissionInFlight
	}
	if s.draft.ClinicID == clinicID {
		s.mu.Unlock()
		return nil
	}
	s.draft.SelectClinic(clinicID)
	s.services.clear()
	s.shifts.clear()
	if clinicID == uuid.Nil {
		s.mu.Unlock()
		return nil
	}
	servicesGen := s.services.begin()
	shiftsGen := s.shifts.begin()
	s.mu.Unlock()

	go s.loadServices(clinicID, servicesGen)
	go s.loadShifts(clinicID, shiftsGen)
	return nil
}

// SelectDate sets the calendar day and clears the selected shift if the new
// date makes it expired. Changing the date alone can invalidate a previously
// valid shift choice.
func (s *Session) SelectDate(date time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submission == SubmissionSubmitting {
		return ErrSubmissionInFlight
	}
	s.draft.SelectDate(date)
	s.reconcileShiftLocked()
	return nil
}

// SelectShift picks a shift from the loaded shifts catalog.
func (s *Session) SelectShift(shiftID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.submission == SubmissionSubmitting {
		return ErrSubmissionInFlight
	}
	if s.draft.ClinicID == uuid.Nil {
		return ErrNoClinicSelected
	}
	var shift *model.Shift
	for i := range s.shifts.items {
		if s.shifts.items[i].ID == shiftID {
			shift = &s.shifts.items[i]
			break
		}
	}
	if shift == nil {
		return ErrUnknownShift
	}
	if IsExpired(shift, s.draft.Date, s.clock.Now()) {
		return ErrShiftExpired
	}

	selected := *shift
	s.draft.SelectShift(&selected)
	return nil
}

// ToggleService toggles membership of a clinic service in the selection.
func (s *Session) ToggleService(serviceID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.submission == SubmissionSubmitting {
		return ErrSubmissionInFlight
	}
	if s.draft.ClinicID == uuid.Nil {
		return ErrNoClinicSelected
	}
	if s.draft.ServiceSelected(serviceID) {
		s.draft.ToggleService(serviceID)
		return nil
	}
	for _, svc := range s.services.items {
		if svc.ID == serviceID {
			s.draft.ToggleService(serviceID)
			return nil
		}
	}
	return ErrUnknownService
}

// ToggleAssignment flips a pet/service assignment. Assignment controls are
// only rendered for currently selected services; a stale client still gets a
// hard error rather than a corrupted matrix.
func (s *Session) ToggleAssignment(petID, serviceID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.submission == SubmissionSubmitting {
		return ErrSubmissionInFlight
	}
	known := false
	for _, p := range s.pets.items {
		if p.ID == petID {
			known = true
			break
		}
	}
	if !known {
		return ErrUnknownPet
	}
	return s.draft.ToggleAssignment(petID, serviceID)
}

// CanAdvance reports whether the current step's completion gate holds. The
// "continue" affordance binds its enabled state to this.
func (s *Session) CanAdvance() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reconcileShiftLocked()
	return s.canAdvanceLocked(s.step)
}

func (s *Session) canAdvanceLocked(step Step) bool {
	switch step {
	case StepClinic:
		return s.draft.ClinicID != uuid.Nil
	case StepSchedule:
		return !s.draft.Date.IsZero() && s.draft.Shift != nil &&
			!IsExpired(s.draft.Shift, s.draft.Date, s.clock.Now())
	case StepServices:
		return len(s.draft.SelectedServices) > 0
	case StepPets:
		return s.draft.HasAssignments()
	case StepConfirm:
		return true
	default:
		return false
	}
}

// Advance moves one step forward iff the current step's gate holds.
func (s *Session) Advance() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.submission == SubmissionSubmitting {
		return ErrSubmissionInFlight
	}
	s.reconcileShiftLocked()
	if !s.canAdvanceLocked(s.step) {
		return ErrStepGated
	}
	if s.step < maxStep {
		s.step++
	}
	return nil
}

// Retreat moves one step back, never below the first step, and never touches
// the draft.
func (s *Session) Retreat() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.submission == SubmissionSubmitting {
		return ErrSubmissionInFlight
	}
	if s.step > minStep {
		s.step--
	}
	return nil
}

// reconcileShiftLocked clears the shift selection when it is no longer valid
// for the currently selected date, either because time moved past the
// shift's end or because a catalog reload dropped the shift.
func (s *Session) reconcileShiftLocked() {
	if s.draft.Shift == nil {
		return
	}
	if IsExpired(s.draft.Shift, s.draft.Date, s.clock.Now()) {
		s.draft.ClearShift()
		return
	}
	if s.shifts.loading || s.shifts.loadErr != "" {
		return
	}
	for _, sh := range s.shifts.items {
		if sh.ID == s.draft.Shift.ID {
			return
		}
	}
	s.draft.ClearShift()
}

// Submit builds the booking payload and performs the single backend call.
// One submission may be in flight at a time; on failure the draft and step
// are left untouched so the user can retry with identical data. While the
// succeeded state is still showing (before the delayed reset) the draft is
// already booked, so a repeat submit is rejected instead of double-booking.
func (s *Session) Submit(ctx context.Context) error {
	s.mu.Lock()
	if s.step != StepConfirm {
		s.mu.Unlock()
		return ErrNotAtConfirmation
	}
	if s.submission == SubmissionSubmitting {
		s.mu.Unlock()
		return ErrSubmissionInFlight
	}
	if s.submission == SubmissionSucceeded {
		s.mu.Unlock()
		return ErrAlreadySubmitted
	}
	s.reconcileShiftLocked()
	for step := StepClinic; step < StepConfirm; step++ {
		if !s.canAdvanceLocked(step) {
			s.mu.Unlock()
			return ErrStepGated
		}
	}
	req := &model.BookingRequest{
		ClinicID:   s.draft.ClinicID,
		PetIDs:     s.draft.AssignedPetIDs(s.pets.items),
		ServiceIDs: s.draft.AssignedServiceIDs(),
		Date:       s.draft.Date,
		ShiftID:    s.draft.Shift.ID,
	}
	s.submission = SubmissionSubmitting
	s.submissionErr = ""
	s.mu.Unlock()

	start := time.Now()
	booking, err := s.booker.CreateBooking(ctx, s.OwnerID, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.m != nil {
		s.m.SubmissionLatency.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		s.submission = SubmissionFailed
		s.submissionErr = err.Error()
		if s.m != nil {
			s.m.SubmissionsTotal.WithLabelValues("failed").Inc()
		}
		return fmt.Errorf("failed to create booking: %w", err)
	}

	s.submission = SubmissionSucceeded
	s.bookingID = booking.ID
	if s.m != nil {
		s.m.SubmissionsTotal.WithLabelValues("succeeded").Inc()
	}
	if s.cfg.ResetDelay > 0 {
		time.AfterFunc(s.cfg.ResetDelay, s.resetAfterSuccess)
	} else {
		s.resetLocked()
	}
	return nil
}

func (s *Session) resetAfterSuccess() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submission == SubmissionSucceeded {
		s.resetLocked()
	}
}

// resetLocked returns the wizard to its initial state. Clinics and pets stay
// loaded; the clinic-scoped catalogs are dropped with the draft.
func (s *Session) resetLocked() {
	s.step = StepClinic
	s.draft = NewDraft()
	s.services.clear()
	s.shifts.clear()
	s.submission = SubmissionIdle
	s.submissionErr = ""
	s.bookingID = uuid.Nil
}

func (s *Session) countLoad(catalog string, err error) {
	if s.m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	s.m.CatalogLoads.WithLabelValues(catalog, status).Inc()
}

func (s *Session) countStale(catalog string) {
	if s.m == nil {
		return
	}
	s.m.StaleCatalogResponses.WithLabelValues(catalog).Inc()
}
