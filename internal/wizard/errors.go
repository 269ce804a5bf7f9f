package wizard

import "errors"

var (
	ErrSessionNotFound    = errors.New("wizard session not found")
	ErrStepGated          = errors.New("current step is incomplete")
	ErrNotAtConfirmation  = errors.New("submission is only available at the confirmation step")
	ErrSubmissionInFlight = errors.New("a submission is already in progress")
	ErrAlreadySubmitted   = errors.New("this draft was already submitted")
	ErrShiftExpired       = errors.New("selected shift has already ended for that date")
	ErrUnknownShift       = errors.New("shift does not belong to the selected clinic")
	ErrUnknownService     = errors.New("service does not belong to the selected clinic")
	ErrUnknownPet         = errors.New("pet does not belong to the signed-in owner")
	ErrServiceNotSelected = errors.New("service is not in the current selection")
	ErrNoClinicSelected   = errors.New("no clinic selected")
)
