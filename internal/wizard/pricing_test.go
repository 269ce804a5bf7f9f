package wizard

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petportal/booking-api/internal/model"
)

func TestTotalChargesPerPet(t *testing.T) {
	grooming := model.Service{Base: model.Base{ID: uuid.New()}, Name: "Grooming", Price: 150}
	checkup := model.Service{Base: model.Base{ID: uuid.New()}, Name: "Checkup", Price: 100}
	vaccine := model.Service{Base: model.Base{ID: uuid.New()}, Name: "Vaccination", Price: 50}
	services := []model.Service{grooming, checkup, vaccine}

	pet1 := uuid.New()
	pet2 := uuid.New()

	d := NewDraft()
	d.ToggleService(grooming.ID)
	d.ToggleService(checkup.ID)
	require.NoError(t, d.ToggleAssignment(pet1, grooming.ID))
	require.NoError(t, d.ToggleAssignment(pet1, checkup.ID))
	require.NoError(t, d.ToggleAssignment(pet2, grooming.ID))

	// Grooming is charged once per assigned pet: 150*2 + 100 = 400.
	assert.Equal(t, int64(400), Total(d, services))
}

func TestTotalEmptyMatrix(t *testing.T) {
	d := NewDraft()
	d.ToggleService(uuid.New())
	assert.Equal(t, int64(0), Total(d, nil))
}

func TestTotalSkipsUnknownServices(t *testing.T) {
	known := model.Service{Base: model.Base{ID: uuid.New()}, Price: 75}
	stale := uuid.New()
	pet := uuid.New()

	d := NewDraft()
	d.ToggleService(known.ID)
	d.ToggleService(stale)
	require.NoError(t, d.ToggleAssignment(pet, known.ID))
	require.NoError(t, d.ToggleAssignment(pet, stale))

	// The stale id has no price in the catalog; it contributes nothing
	// instead of failing the whole computation.
	assert.Equal(t, int64(75), Total(d, []model.Service{known}))
}
