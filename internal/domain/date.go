package domain

import "time"

const dateLayout = "2006-01-02"

// Date is a calendar date with no time component, the granularity at which
// bookings are made.
type Date struct {
	t time.Time
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(value string) (Date, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return Date{}, err
	}
	return Date{t: t}, nil
}

// DateOf truncates a time.Time to its calendar date in UTC.
func DateOf(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return Date{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// String renders YYYY-MM-DD.
func (d Date) String() string {
	return d.t.Format(dateLayout)
}

// Time exposes the underlying midnight-UTC instant for database scans.
func (d Date) Time() time.Time {
	return d.t
}

// Before reports calendar ordering.
func (d Date) Before(other Date) bool {
	return d.t.Before(other.t)
}

// Equal reports whether both values name the same calendar day.
func (d Date) Equal(other Date) bool {
	return d.t.Equal(other.t)
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool {
	return d.t.IsZero()
}
