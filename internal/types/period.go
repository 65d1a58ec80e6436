// Package types implements special types for the ledger.
package types

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

// ErrInvalidPeriod is returned when a string is not a valid "YYYY-MM" period key.
var ErrInvalidPeriod = errors.New("the period must be in YYYY-MM format")

var periodPattern = regexp.MustCompile(`^[0-9]{4}-(0[1-9]|1[0-2])$`)

// Period is a calendar month in "YYYY-MM" format.
//
// Periods are zero-padded and therefore sort lexicographically in
// chronological order.
type Period string

// NewPeriod returns the Period for a year and month.
func NewPeriod(year int, month time.Month) Period {
	return Period(fmt.Sprintf("%04d-%02d", year, month))
}

// PeriodOf returns the Period in which a time occurs in that time's location.
func PeriodOf(t time.Time) Period {
	year, month, _ := t.Date()
	return NewPeriod(year, month)
}

// PeriodOfDate derives the Period of an ISO 8601 date or timestamp by
// taking its first seven characters.
func PeriodOfDate(s string) (Period, error) {
	if len(s) < 7 {
		return "", fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}

	return ParsePeriod(s[:7])
}

// ParsePeriod parses a "YYYY-MM" string and returns the Period it represents.
func ParsePeriod(s string) (Period, error) {
	if !periodPattern.MatchString(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}

	return Period(s), nil
}

// Valid reports whether the period is a well-formed "YYYY-MM" key.
func (p Period) Valid() bool {
	return periodPattern.MatchString(string(p))
}

// String returns the period as "YYYY-MM".
func (p Period) String() string {
	return string(p)
}

// Time returns 00:00 UTC on the first day of the period.
//
// Invalid periods return the zero time.
func (p Period) Time() time.Time {
	t, err := time.Parse("2006-01", string(p))
	if err != nil {
		return time.Time{}
	}
	return t
}

// AddMonths returns the period shifted by the given number of months.
func (p Period) AddMonths(months int) Period {
	t := p.Time()
	if t.IsZero() {
		return p
	}

	return PeriodOf(t.AddDate(0, months, 0))
}

// Next returns the calendar period following p.
func (p Period) Next() Period {
	return p.AddMonths(1)
}

// Previous returns the calendar period preceding p.
func (p Period) Previous() Period {
	return p.AddMonths(-1)
}

// Before reports whether p is earlier than q.
func (p Period) Before(q Period) bool {
	return p < q
}

// Contains reports whether the time instant is in the period.
func (p Period) Contains(t time.Time) bool {
	return PeriodOf(t) == p
}
