package model

// Owner is the signed-in customer. Profile management lives in a separate
// service; the portal only needs enough to address the confirmation email.
type Owner struct {
	Base
	Name  string `db:"name" json:"name"`
	Email string `db:"email" json:"email"`
	Phone string `db:"phone" json:"phone,omitempty"`
}
