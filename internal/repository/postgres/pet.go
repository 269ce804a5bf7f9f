package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/petportal/booking-api/internal/model"
	"github.com/petportal/booking-api/internal/repository"
)

type petRepository struct {
	BaseRepository
}

func NewPetRepository(base BaseRepository) repository.PetRepository {
	return &petRepository{base}
}

func (r *petRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Pet, error) {
	query := `
		SELECT
			id, owner_id, name, species, breed, avatar_url,
			created_at, updated_at
		FROM pets
		WHERE owner_id = $1
		ORDER BY created_at
	`
	var pets []model.Pet
	if err := r.db.SelectContext(ctx, &pets, query, ownerID); err != nil {
		return nil, fmt.Errorf("failed to list pets: %w", err)
	}
	return pets, nil
}
