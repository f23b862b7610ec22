package scheme

import (
	"math"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"

	"github.com/turtacn/ScholarAI/pkg/errors"
)

// ReminderWindowDays is the lookahead in which a deadline produces a reminder.
const ReminderWindowDays = 30

const isoDate = "2006-01-02"

// ParseDeadline converts admin input into a calendar date at midnight UTC.
// ISO dates are tried first, then RFC 3339, then natural language such as
// "June 30, 2025".  Relative expressions are resolved against now.
func ParseDeadline(raw string, now time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, errors.New(errors.ErrCodeDeadlineInvalid, "deadline is required").WithDetail("deadline")
	}

	if t, err := time.Parse(isoDate, raw); err == nil {
		return truncateDay(t), nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return truncateDay(t), nil
	}

	cfg := &dateparser.Configuration{CurrentTime: now}
	result, err := dateparser.Parse(cfg, raw)
	if err != nil || result.Time.IsZero() {
		return time.Time{}, errors.Newf(errors.ErrCodeDeadlineInvalid, "could not parse deadline %q", raw).WithDetail("deadline")
	}
	return truncateDay(result.Time), nil
}

// DaysUntil returns floor((deadline - now) / 24h).
func DaysUntil(deadline, now time.Time) int {
	return int(math.Floor(deadline.Sub(now).Hours() / 24))
}

// InReminderWindow reports whether the deadline is 0..ReminderWindowDays
// days away, inclusive.
func InReminderWindow(deadline, now time.Time) bool {
	days := DaysUntil(deadline, now)
	return days >= 0 && days <= ReminderWindowDays
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

//Personal.AI order the ending
