package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/petportal/booking-api/internal/model"
	"github.com/petportal/booking-api/internal/repository"
)

type clinicRepository struct {
	BaseRepository
}

func NewClinicRepository(base BaseRepository) repository.ClinicRepository {
	return &clinicRepository{base}
}

func (r *clinicRepository) List(ctx context.Context) ([]model.Clinic, error) {
	query := `
		SELECT
			id, name, address_detail, ward, district, city, phone,
			created_at, updated_at
		FROM clinics
		ORDER BY name
	`
	var clinics []model.Clinic
	if err := r.db.SelectContext(ctx, &clinics, query); err != nil {
		return nil, fmt.Errorf("failed to list clinics: %w", err)
	}
	return clinics, nil
}

func (r *clinicRepository) Get(ctx context.Context, id uuid.UUID) (*model.Clinic, error) {
	query := `
		SELECT
			id, name, address_detail, ward, district, city, phone,
			created_at, updated_at
		FROM clinics
		WHERE id = $1
	`
	var clinic model.Clinic
	if err := r.db.GetContext(ctx, &clinic, query, id); err != nil {
		return nil, fmt.Errorf("failed to get clinic: %w", err)
	}
	return &clinic, nil
}
