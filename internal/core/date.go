package core

import (
	"encoding/json"
	"time"
)

// DateFormat is the only wire format accepted for calendar dates.
const DateFormat = "2006-01-02"

// Date is a calendar date with day granularity. The zero value means
// "absent": optional dates, like the payment date of a pending
// transaction, are represented by the zero Date.
type Date struct {
	time.Time
}

// NewDate returns the normalized date for year, month and day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// Today returns the current calendar date.
func Today() Date { return DateOf(time.Now()) }

// ParseDate normalizes a raw date string. It accepts exactly the
// YYYY-MM-DD pattern; an empty or malformed string yields the absent
// date. It never returns an error: optional dates from forms and query
// strings are routed through it constantly and report rendering must
// stay resilient.
func ParseDate(s string) Date {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return Date{}
	}
	return DateOf(t)
}

// IsAbsent reports whether the date is the absent sentinel.
func (d Date) IsAbsent() bool { return d.IsZero() }

// Equal reports whether two dates fall on the same calendar day.
func (d Date) Equal(x Date) bool { return d.Time.Equal(x.Time) }

// Before reports whether d falls before x.
func (d Date) Before(x Date) bool { return d.Time.Before(x.Time) }

// After reports whether d falls after x.
func (d Date) After(x Date) bool { return d.Time.After(x.Time) }

// String renders the date in wire format, or "" when absent.
func (d Date) String() string {
	if d.IsAbsent() {
		return ""
	}
	return d.Format(DateFormat)
}

// MonthKey returns the zero-padded YYYY-MM bucket key for the date.
// Lexicographic order on these keys is chronologically correct.
func (d Date) MonthKey() string {
	if d.IsAbsent() {
		return ""
	}
	return d.Format("2006-01")
}

// MarshalJSON renders the date as a wire-format string, "" when absent.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON parses a wire-format string, degrading to absent like ParseDate.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*d = ParseDate(s)
	return nil
}

var (
	_ json.Marshaler   = (*Date)(nil)
	_ json.Unmarshaler = (*Date)(nil)
)
