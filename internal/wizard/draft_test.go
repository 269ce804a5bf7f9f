package wizard

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petportal/booking-api/internal/model"
)

func TestDraftSelectClinic(t *testing.T) {
	d := NewDraft()
	clinicA := uuid.New()
	clinicB := uuid.New()
	svc := uuid.New()
	pet := uuid.New()

	d.SelectClinic(clinicA)
	d.SelectDate(time.Date(2026, 9, 1, 14, 30, 0, 0, time.UTC))
	d.SelectShift(&model.Shift{Base: model.Base{ID: uuid.New()}})
	d.ToggleService(svc)
	require.NoError(t, d.ToggleAssignment(pet, svc))

	// Re-selecting the same clinic changes nothing.
	d.SelectClinic(clinicA)
	assert.Len(t, d.SelectedServices, 1)
	assert.NotNil(t, d.Shift)

	// A different clinic drops everything clinic-scoped but keeps the date.
	d.SelectClinic(clinicB)
	assert.Equal(t, clinicB, d.ClinicID)
	assert.Nil(t, d.Shift)
	assert.Empty(t, d.SelectedServices)
	assert.Empty(t, d.Assignments)
	assert.False(t, d.Date.IsZero())
}

func TestDraftSelectDateTruncates(t *testing.T) {
	d := NewDraft()
	d.SelectDate(time.Date(2026, 9, 1, 14, 30, 45, 123, time.UTC))
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), d.Date)
}

func TestDraftToggleService(t *testing.T) {
	d := NewDraft()
	svcA := uuid.New()
	svcB := uuid.New()
	pet1 := uuid.New()
	pet2 := uuid.New()

	assert.True(t, d.ToggleService(svcA))
	assert.True(t, d.ToggleService(svcB))
	require.NoError(t, d.ToggleAssignment(pet1, svcA))
	require.NoError(t, d.ToggleAssignment(pet1, svcB))
	require.NoError(t, d.ToggleAssignment(pet2, svcA))

	// Deselecting cascades through the matrix. pet2 had only svcA, so its
	// entry disappears entirely.
	assert.False(t, d.ToggleService(svcA))
	assert.Equal(t, []uuid.UUID{svcB}, d.SelectedServices)
	assert.Equal(t, []uuid.UUID{svcB}, d.Assignments[pet1])
	_, ok := d.Assignments[pet2]
	assert.False(t, ok)
}

func TestDraftToggleAssignment(t *testing.T) {
	d := NewDraft()
	svc := uuid.New()
	pet := uuid.New()

	// Assigning an unselected service is rejected.
	assert.ErrorIs(t, d.ToggleAssignment(pet, svc), ErrServiceNotSelected)

	d.ToggleService(svc)
	require.NoError(t, d.ToggleAssignment(pet, svc))
	assert.True(t, d.HasAssignments())
	assert.Equal(t, []uuid.UUID{svc}, d.Assignments[pet])

	// Toggling off the last assignment deletes the pet entry rather than
	// leaving an empty slice behind.
	require.NoError(t, d.ToggleAssignment(pet, svc))
	assert.False(t, d.HasAssignments())
	_, ok := d.Assignments[pet]
	assert.False(t, ok)
}

func TestDraftAssignedIDs(t *testing.T) {
	d := NewDraft()
	svcA := uuid.New()
	svcB := uuid.New()
	svcC := uuid.New()
	pet1 := model.Pet{Base: model.Base{ID: uuid.New()}, Name: "Rex"}
	pet2 := model.Pet{Base: model.Base{ID: uuid.New()}, Name: "Mia"}
	pet3 := model.Pet{Base: model.Base{ID: uuid.New()}, Name: "Tom"}
	pets := []model.Pet{pet1, pet2, pet3}

	d.ToggleService(svcA)
	d.ToggleService(svcB)
	d.ToggleService(svcC)
	require.NoError(t, d.ToggleAssignment(pet3.ID, svcB))
	require.NoError(t, d.ToggleAssignment(pet1.ID, svcB))
	require.NoError(t, d.ToggleAssignment(pet1.ID, svcA))

	// Pet order follows the catalog, not map iteration.
	assert.Equal(t, []uuid.UUID{pet1.ID, pet3.ID}, d.AssignedPetIDs(pets))

	// Service union follows selection order and dedupes across pets. svcC is
	// selected but never assigned, so it does not appear.
	assert.Equal(t, []uuid.UUID{svcA, svcB}, d.AssignedServiceIDs())
}

func TestDraftAssignedPetIDsUnknownPet(t *testing.T) {
	d := NewDraft()
	svc := uuid.New()
	ghost := uuid.New()

	d.ToggleService(svc)
	require.NoError(t, d.ToggleAssignment(ghost, svc))

	// A pet missing from the catalog still makes it into the payload.
	assert.Equal(t, []uuid.UUID{ghost}, d.AssignedPetIDs(nil))
}
