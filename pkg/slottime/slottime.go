// Package slottime parses slot dates ("2006-01-02") and 12-hour slot times
// ("2:00 PM") into comparable instants.
package slottime

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

const DateLayout = "2006-01-02"

var (
	ErrMissing     = errors.New("slot must include both date and time")
	ErrInvalidDate = errors.New("slot date must be an ISO calendar date (YYYY-MM-DD)")
	ErrInvalidTime = errors.New("slot time must look like \"H:MM AM\" or \"H:MM PM\"")
)

var clock12 = regexp.MustCompile(`^(1[0-2]|0?[1-9]):([0-5][0-9]) (AM|PM)$`)

// To24Hour converts "H:MM AM|PM" into hour and minute on a 24-hour clock.
// 12 AM is hour 0 and 12 PM is hour 12.
func To24Hour(clock string) (hour, minute int, err error) {
	m := clock12.FindStringSubmatch(clock)
	if m == nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTime, clock)
	}

	hour, _ = strconv.Atoi(m[1])
	minute, _ = strconv.Atoi(m[2])

	switch {
	case m[3] == "AM" && hour == 12:
		hour = 0
	case m[3] == "PM" && hour < 12:
		hour += 12
	}
	return hour, minute, nil
}

// Parse combines a slot date and a 12-hour slot time into an instant in loc.
// A nil loc means UTC.
func Parse(date, clock string, loc *time.Location) (time.Time, error) {
	if date == "" || clock == "" {
		return time.Time{}, ErrMissing
	}
	if loc == nil {
		loc = time.UTC
	}

	day, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}

	hour, minute, err := To24Hour(clock)
	if err != nil {
		return time.Time{}, err
	}

	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, loc), nil
}

// IsFuture reports whether the slot starts strictly after now.
func IsFuture(slot, now time.Time) bool {
	return slot.After(now)
}
