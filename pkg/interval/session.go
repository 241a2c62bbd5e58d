package interval

import (
	"fmt"
	"time"

	"github.com/muhammadchandra19/tickstore/pkg/errors"
)

// Session is a daily trading session, bounds inclusive, evaluated in the
// location of the instant being checked.
type Session struct {
	Open  time.Duration
	Close time.Duration
}

// DefaultSession is 09:30 to 16:00.
var DefaultSession = Session{
	Open:  9*time.Hour + 30*time.Minute,
	Close: 16 * time.Hour,
}

// ParseSession builds a Session from "HH:MM" clock strings.
func ParseSession(open, close string) (Session, error) {
	o, err := parseClock(open)
	if err != nil {
		return Session{}, err
	}
	c, err := parseClock(close)
	if err != nil {
		return Session{}, err
	}
	if c <= o {
		return Session{}, fmt.Errorf("session close %s must be after open %s", close, open)
	}
	return Session{Open: o, Close: c}, nil
}

func parseClock(s string) (time.Duration, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid session clock %q: %w", s, err)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

// Contains reports whether t's wall clock lies within the session.
func (s Session) Contains(t time.Time) bool {
	clock := time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second +
		time.Duration(t.Nanosecond())
	return clock >= s.Open && clock <= s.Close
}

// ValidateWindow checks that start precedes end and that both fall inside the session.
func (s Session) ValidateWindow(start, end time.Time) error {
	if !start.Before(end) {
		return errors.NewErrorDetails("start_time should be earlier than end_time", string(errors.StoreInvalidWindow), "start_time")
	}
	if !s.Contains(start) || !s.Contains(end) {
		return errors.NewErrorDetails(
			fmt.Sprintf("both start_time and end_time should be within trading hours (%s to %s)", formatClock(s.Open), formatClock(s.Close)),
			string(errors.StoreInvalidWindow), "window")
	}
	return nil
}

func formatClock(d time.Duration) string {
	return fmt.Sprintf("%02d:%02d", int(d/time.Hour), int(d%time.Hour/time.Minute))
}
