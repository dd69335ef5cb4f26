package onboarding

import (
	"errors"
	"strings"
	"time"
)

const (
	// MinimumAge is the youngest age the birth date input accepts.
	MinimumAge = 10

	DateLayout = "2006-01-02"
)

var (
	ErrInvalidBirthDate = errors.New("birth date must look like YYYY-MM-DD")
	ErrTooYoung         = errors.New("birth date must be at least 10 years ago")
)

// MaxBirthDate is the latest date the birth date input offers on day now.
func MaxBirthDate(now time.Time) time.Time {
	y, m, d := now.UTC().AddDate(-MinimumAge, 0, 0).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseBirthDate is the birth date input: it accepts an ISO date no later
// than MaxBirthDate and returns it normalised. An empty value is passed
// through so the field can be cleared; validation catches it later.
func ParseBirthDate(value string, now time.Time) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}
	d, err := time.Parse(DateLayout, value)
	if err != nil {
		return "", ErrInvalidBirthDate
	}
	if d.After(MaxBirthDate(now)) {
		return "", ErrTooYoung
	}
	return d.Format(DateLayout), nil
}
