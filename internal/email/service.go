package email

import (
	"context"

	"github.com/petportal/booking-api/internal/model"
)

type Service interface {
	SendBookingConfirmation(ctx context.Context, owner *model.Owner, booking *model.Booking) error
}
