package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/petportal/booking-api/internal/model"
	"github.com/petportal/booking-api/internal/repository"
)

type shiftRepository struct {
	BaseRepository
}

func NewShiftRepository(base BaseRepository) repository.ShiftRepository {
	return &shiftRepository{base}
}

func (r *shiftRepository) ListByClinic(ctx context.Context, clinicID uuid.UUID) ([]model.Shift, error) {
	query := `
		SELECT
			id, clinic_id, name, start_time, end_time,
			created_at, updated_at
		FROM shifts
		WHERE clinic_id = $1
		ORDER BY start_time
	`
	var shifts []model.Shift
	if err := r.db.SelectContext(ctx, &shifts, query, clinicID); err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	return shifts, nil
}
