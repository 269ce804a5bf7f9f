package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/petportal/booking-api/internal/model"
	"github.com/petportal/booking-api/internal/repository"
)

type serviceRepository struct {
	BaseRepository
}

func NewServiceRepository(base BaseRepository) repository.ServiceRepository {
	return &serviceRepository{base}
}

func (r *serviceRepository) ListByClinic(ctx context.Context, clinicID uuid.UUID) ([]model.Service, error) {
	query := `
		SELECT
			id, clinic_id, name, description, duration, price,
			created_at, updated_at
		FROM services
		WHERE clinic_id = $1
		ORDER BY name
	`
	var services []model.Service
	if err := r.db.SelectContext(ctx, &services, query, clinicID); err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}
