package wizard

import (
	"time"

	"github.com/petportal/booking-api/internal/model"
)

// Clock supplies wall-clock time. Injected so expiry checks are
// deterministic under test.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// IsExpired reports whether the shift's end, composed with the given calendar
// day, is at or before now. It is pure: callers must re-evaluate it rather
// than cache the result, since now advances independently of user input.
// An unset date or nil shift is never expired; an unparseable end time is
// always expired so malformed shifts cannot be booked.
func IsExpired(shift *model.Shift, date time.Time, now time.Time) bool {
	if shift == nil || date.IsZero() {
		return false
	}
	end, err := time.Parse(model.TimeOfDayLayout, shift.EndTime)
	if err != nil {
		return true
	}
	endAt := time.Date(date.Year(), date.Month(), date.Day(),
		end.Hour(), end.Minute(), 0, 0, date.Location())
	return !endAt.After(now)
}
