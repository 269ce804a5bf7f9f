package model

import "github.com/google/uuid"

// Pet belongs to exactly one owner, the signed-in customer.
type Pet struct {
	Base
	OwnerID   uuid.UUID `db:"owner_id" json:"owner_id"`
	Name      string    `db:"name" json:"name"`
	Species   string    `db:"species" json:"species"`
	Breed     string    `db:"breed" json:"breed"`
	AvatarURL string    `db:"avatar_url" json:"avatar_url,omitempty"`
}
