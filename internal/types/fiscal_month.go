// Package types implements special types for the budget backend.
package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidFiscalMonth is returned when a month name cannot be parsed.
var ErrInvalidFiscalMonth = errors.New("the month must be the English name of a calendar month, e.g. April")

// FiscalYearStart is the calendar month the fiscal year starts in.
const FiscalYearStart = time.April

// FiscalMonth is a month of the fiscal year, identified by its calendar month.
//
// The zero value means that no month is selected.
type FiscalMonth time.Month

// FiscalMonths returns all months in fiscal year order, April to March.
func FiscalMonths() []FiscalMonth {
	months := make([]FiscalMonth, 0, 12)
	for i := 0; i < 12; i++ {
		months = append(months, FiscalMonth((int(FiscalYearStart)-1+i)%12+1))
	}
	return months
}

// ParseFiscalMonth parses an English month name. Matching is case insensitive,
// three letter abbreviations are accepted.
func ParseFiscalMonth(s string) (FiscalMonth, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	for m := time.January; m <= time.December; m++ {
		if strings.EqualFold(s, m.String()) || strings.EqualFold(s, m.String()[:3]) {
			return FiscalMonth(m), nil
		}
	}

	return 0, fmt.Errorf("%w, got '%s'", ErrInvalidFiscalMonth, s)
}

// String returns the English name of the month or an empty string for the zero value.
func (m FiscalMonth) String() string {
	if m.IsZero() {
		return ""
	}
	return time.Month(m).String()
}

// IsZero reports if no month is set.
func (m FiscalMonth) IsZero() bool {
	return m < 1 || m > 12
}

// Index returns the 1-based position of the month in the fiscal year,
// 1 for April and 12 for March. It is 0 for the zero value.
func (m FiscalMonth) Index() int {
	if m.IsZero() {
		return 0
	}
	return (int(m)-int(FiscalYearStart)+12)%12 + 1
}

// MarshalJSON implements the json.Marshaler interface.
func (m FiscalMonth) MarshalJSON() ([]byte, error) {
	if m.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (m *FiscalMonth) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "null" {
		*m = 0
		return nil
	}

	parsed, err := ParseFiscalMonth(value)
	if err != nil {
		return err
	}

	*m = parsed
	return nil
}

// UnmarshalParam lets gin bind query and form values to a FiscalMonth.
func (m *FiscalMonth) UnmarshalParam(param string) error {
	parsed, err := ParseFiscalMonth(param)
	if err != nil {
		return err
	}

	*m = parsed
	return nil
}

// Scan writes the value from the database.
func (m *FiscalMonth) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*m = 0
		return nil
	case string:
		return m.UnmarshalParam(v)
	case []byte:
		return m.UnmarshalParam(string(v))
	}

	return fmt.Errorf("cannot scan %T into FiscalMonth", value)
}

// Value returns the value for the SQL driver to write to the database.
func (m FiscalMonth) Value() (driver.Value, error) {
	return m.String(), nil
}

// GormDataType defines the data type used by gorm for the type.
func (FiscalMonth) GormDataType() string {
	return "string"
}

// Date returns the first day of the month within the fiscal year that starts
// in startYear.
func (m FiscalMonth) Date(startYear int) time.Time {
	year := startYear
	if time.Month(m) < FiscalYearStart {
		year++
	}
	return time.Date(year, time.Month(m), 1, 0, 0, 0, 0, time.UTC)
}
