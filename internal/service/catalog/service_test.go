package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petportal/booking-api/internal/model"
)

type stubClinicRepo struct {
	clinics []model.Clinic
	err     error
	calls   int
}

func (r *stubClinicRepo) List(ctx context.Context) ([]model.Clinic, error) {
	r.calls++
	return r.clinics, r.err
}

func (r *stubClinicRepo) Get(ctx context.Context, id uuid.UUID) (*model.Clinic, error) {
	return nil, errors.New("not implemented")
}

func TestListClinicsCaches(t *testing.T) {
	repo := &stubClinicRepo{clinics: []model.Clinic{{Name: "Happy Paws"}}}
	svc := NewService(repo, nil, nil, nil)

	first, err := svc.ListClinics(context.Background())
	require.NoError(t, err)
	second, err := svc.ListClinics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.calls)
}

func TestListClinicsErrorNotCached(t *testing.T) {
	repo := &stubClinicRepo{err: errors.New("db down")}
	svc := NewService(repo, nil, nil, nil)

	_, err := svc.ListClinics(context.Background())
	require.Error(t, err)

	// The failure is not cached; the next call hits the repository again.
	_, err = svc.ListClinics(context.Background())
	require.Error(t, err)
	assert.Equal(t, 2, repo.calls)
}
