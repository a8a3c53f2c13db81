package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// InputDateLayout is dd/MM/yyyy, the d/ field format.
	InputDateLayout = "02/01/2006"
	// InputMonthLayout is MM/yyyy, the m/ field format.
	InputMonthLayout = "01/2006"

	storedDateLayout  = "2006-01-02"
	storedMonthLayout = "2006-01"
)

var ErrInvalidDate = errors.New("invalid date")

// Date is a calendar date at UTC midnight.
type Date struct {
	time.Time
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// ParseInputDate parses dd/MM/yyyy strictly; impossible dates are rejected.
func ParseInputDate(s string) (Date, error) {
	t, err := time.Parse(InputDateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// ParseStoredDate parses the persisted yyyy-MM-dd form.
func ParseStoredDate(s string) (Date, error) {
	t, err := time.Parse(storedDateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date{Time: t}, nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return errors.New("date cannot be zero")
	}
	return nil
}

// String renders the date as dd/MM/yyyy.
func (d Date) String() string {
	return d.Format(InputDateLayout)
}

// Stored renders the persisted yyyy-MM-dd form.
func (d Date) Stored() string {
	return d.Format(storedDateLayout)
}

// YearMonth identifies one calendar month.
type YearMonth struct {
	Year  int
	Month time.Month
}

// NewYearMonth creates a YearMonth from year and month number.
func NewYearMonth(year, month int) YearMonth {
	return YearMonth{Year: year, Month: time.Month(month)}
}

// YearMonthOf returns the month bucket of d, ignoring the day.
func YearMonthOf(d Date) YearMonth {
	return YearMonth{Year: d.Year(), Month: d.Month()}
}

// ParseInputYearMonth parses MM/yyyy.
func ParseInputYearMonth(s string) (YearMonth, error) {
	t, err := time.Parse(InputMonthLayout, strings.TrimSpace(s))
	if err != nil {
		return YearMonth{}, ErrInvalidDate
	}
	return YearMonth{Year: t.Year(), Month: t.Month()}, nil
}

// ParseStoredYearMonth parses the persisted yyyy-MM form.
func ParseStoredYearMonth(s string) (YearMonth, error) {
	t, err := time.Parse(storedMonthLayout, s)
	if err != nil {
		return YearMonth{}, fmt.Errorf("parse month %q: %w", s, err)
	}
	return YearMonth{Year: t.Year(), Month: t.Month()}, nil
}

func (ym YearMonth) IsZero() bool {
	return ym.Year == 0 && ym.Month == 0
}

// String renders MM/yyyy.
func (ym YearMonth) String() string {
	return fmt.Sprintf("%02d/%04d", int(ym.Month), ym.Year)
}

// Stored renders the persisted yyyy-MM form.
func (ym YearMonth) Stored() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}
