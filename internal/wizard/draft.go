package wizard

import (
	"time"

	"github.com/google/uuid"

	"github.com/petportal/booking-api/internal/model"
)

// Draft is the in-progress state of one booking. It is the single source of
// truth for step gating and is never partially submitted.
//
// The pet/service assignment matrix is only mutated through ToggleService and
// ToggleAssignment, which maintain two invariants: every assigned service id
// is also in SelectedServices, and no pet entry maps to an empty set (the
// entry is deleted instead). "Has the user assigned anything" is therefore a
// plain non-emptiness check on Assignments.
type Draft struct {
	ClinicID         uuid.UUID
	Date             time.Time // calendar day at midnight; zero means unset
	Shift            *model.Shift
	SelectedServices []uuid.UUID                 // insertion-ordered, unique
	Assignments      map[uuid.UUID][]uuid.UUID   // pet id -> assigned service ids
}

func NewDraft() *Draft {
	return &Draft{
		Assignments: make(map[uuid.UUID][]uuid.UUID),
	}
}

// SelectClinic sets the clinic and drops everything clinic-scoped: the
// selected services, the assignment matrix and the selected shift. The date
// is kept. Re-selecting the current clinic is a no-op.
func (d *Draft) SelectClinic(clinicID uuid.UUID) {
	if d.ClinicID == clinicID {
		return
	}
	d.ClinicID = clinicID
	d.Shift = nil
	d.SelectedServices = nil
	d.Assignments = make(map[uuid.UUID][]uuid.UUID)
}

func (d *Draft) SelectDate(date time.Time) {
	d.Date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

func (d *Draft) SelectShift(shift *model.Shift) {
	d.Shift = shift
}

func (d *Draft) ClearShift() {
	d.Shift = nil
}

// ToggleService adds the service to the selection, or removes it and
// cascade-removes it from every pet's assignments. Returns true when the
// service is selected after the call.
func (d *Draft) ToggleService(serviceID uuid.UUID) bool {
	if !d.ServiceSelected(serviceID) {
		d.SelectedServices = append(d.SelectedServices, serviceID)
		return true
	}

	d.SelectedServices = removeID(d.SelectedServices, serviceID)
	for petID, assigned := range d.Assignments {
		assigned = removeID(assigned, serviceID)
		if len(assigned) == 0 {
			delete(d.Assignments, petID)
		} else {
			d.Assignments[petID] = assigned
		}
	}
	return false
}

// ToggleAssignment flips membership of the service in the pet's assignment
// set. The pet entry is created lazily on first assignment and deleted
// outright when its last service is removed.
func (d *Draft) ToggleAssignment(petID, serviceID uuid.UUID) error {
	if !d.ServiceSelected(serviceID) {
		return ErrServiceNotSelected
	}

	assigned := d.Assignments[petID]
	if containsID(assigned, serviceID) {
		assigned = removeID(assigned, serviceID)
		if len(assigned) == 0 {
			delete(d.Assignments, petID)
		} else {
			d.Assignments[petID] = assigned
		}
		return nil
	}

	d.Assignments[petID] = append(assigned, serviceID)
	return nil
}

func (d *Draft) ServiceSelected(serviceID uuid.UUID) bool {
	return containsID(d.SelectedServices, serviceID)
}

func (d *Draft) HasAssignments() bool {
	return len(d.Assignments) > 0
}

// AssignedPetIDs returns every pet with at least one assignment, in the order
// given by pets (so the payload is deterministic regardless of map iteration).
func (d *Draft) AssignedPetIDs(pets []model.Pet) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(d.Assignments))
	for _, p := range pets {
		if _, ok := d.Assignments[p.ID]; ok {
			ids = append(ids, p.ID)
		}
	}
	if len(ids) == len(d.Assignments) {
		return ids
	}
	// Assignments referencing pets missing from the catalog still count.
	for petID := range d.Assignments {
		if !containsID(ids, petID) {
			ids = append(ids, petID)
		}
	}
	return ids
}

// AssignedServiceIDs returns the deduplicated union of assigned service ids
// across all pets, in selection order.
func (d *Draft) AssignedServiceIDs() []uuid.UUID {
	var ids []uuid.UUID
	for _, serviceID := range d.SelectedServices {
		for _, assigned := range d.Assignments {
			if containsID(assigned, serviceID) {
				ids = append(ids, serviceID)
				break
			}
		}
	}
	return ids
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func removeID(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
