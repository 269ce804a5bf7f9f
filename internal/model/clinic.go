package model

// Clinic is a bookable clinic location. Immutable once fetched.
type Clinic struct {
	Base
	Name          string `db:"name" json:"name"`
	AddressDetail string `db:"address_detail" json:"address_detail"`
	Ward          string `db:"ward" json:"ward"`
	District      string `db:"district" json:"district"`
	City          string `db:"city" json:"city"`
	Phone         string `db:"phone" json:"phone"`
}
