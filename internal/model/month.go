// Package model contains the core data types for the sales analysis pipeline.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Month is one of the twelve calendar months.
type Month time.Month

// Calendar months in chronological order.
const (
	January   = Month(time.January)
	February  = Month(time.February)
	March     = Month(time.March)
	April     = Month(time.April)
	May       = Month(time.May)
	June      = Month(time.June)
	July      = Month(time.July)
	August    = Month(time.August)
	September = Month(time.September)
	October   = Month(time.October)
	November  = Month(time.November)
	December  = Month(time.December)
)

// AllMonths returns January through December.
func AllMonths() []Month {
	months := make([]Month, 0, 12)
	for m := January; m <= December; m++ {
		months = append(months, m)
	}
	return months
}

var monthLookup = func() map[string]Month {
	lookup := make(map[string]Month, 24)
	for _, m := range AllMonths() {
		name := strings.ToLower(m.String())
		lookup[name] = m
		lookup[name[:3]] = m
	}
	return lookup
}()

// ParseMonth converts a month label into a Month. It accepts the English full
// name or its three-letter abbreviation, ignoring case and surrounding whitespace.
func ParseMonth(label string) (Month, error) {
	m, ok := monthLookup[strings.ToLower(strings.TrimSpace(label))]
	if !ok {
		return 0, fmt.Errorf("unrecognized month label %q", label)
	}
	return m, nil
}

// Valid reports whether m is one of the twelve calendar months.
func (m Month) Valid() bool {
	return m >= January && m <= December
}

// String returns the English name of the month.
func (m Month) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Month(%d)", int(m))
	}
	return time.Month(m).String()
}

// MarshalText implements encoding.TextMarshaler.
func (m Month) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("invalid month %d", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Month) UnmarshalText(text []byte) error {
	parsed, err := ParseMonth(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
