package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/petportal/booking-api/internal/model"
	"github.com/petportal/booking-api/internal/repository"
)

type ownerRepository struct {
	BaseRepository
}

func NewOwnerRepository(base BaseRepository) repository.OwnerRepository {
	return &ownerRepository{base}
}

func (r *ownerRepository) Get(ctx context.Context, id uuid.UUID) (*model.Owner, error) {
	query := `
		SELECT id, name, email, phone, created_at, updated_at
		FROM owners
		WHERE id = $1
	`
	var owner model.Owner
	if err := r.db.GetContext(ctx, &owner, query, id); err != nil {
		return nil, fmt.Errorf("failed to get owner: %w", err)
	}
	return &owner, nil
}
