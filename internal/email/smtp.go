package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/petportal/booking-api/internal/config"
	"github.com/petportal/booking-api/internal/model"
)

type smtpService struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPService(cfg config.SMTPConfig) Service {
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *smtpService) SendBookingConfirmation(ctx context.Context, owner *model.Owner, booking *model.Booking) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", owner.Email)
	msg.SetHeader("Subject", "Your appointment request was received")
	msg.SetBody("text/plain", fmt.Sprintf(
		"Hi %s,\n\nWe received your appointment request for %s (%d pets, %d services).\n"+
			"The clinic will confirm your booking shortly.\n\nBooking reference: %s\n",
		owner.Name,
		booking.Date.Format(model.DateLayout),
		len(booking.PetIDs),
		len(booking.ServiceIDs),
		booking.ID,
	))

	if err := s.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}
	return nil
}
