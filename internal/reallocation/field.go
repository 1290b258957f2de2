package reallocation

import (
	"errors"
	"fmt"
)

var ErrUnknownField = errors.New("unknown field")

// Field is a field of a Record that users edit directly.
type Field int

const (
	FieldCompany Field = iota
	FieldCostCenter
	FieldFiscalYear
	FieldAccount
	FieldMonth
	FieldNewBudget
)

// identifying lists the identifying fields in dependency order.
var identifying = []Field{FieldCompany, FieldCostCenter, FieldFiscalYear, FieldAccount, FieldMonth}

var fieldNames = map[Field]string{
	FieldCompany:    "company",
	FieldCostCenter: "costCenter",
	FieldFiscalYear: "fiscalYear",
	FieldAccount:    "account",
	FieldMonth:      "month",
	FieldNewBudget:  "newBudget",
}

func (f Field) String() string {
	if name, ok := fieldNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Field(%d)", int(f))
}

// Identifying reports if the field is one of company, cost center,
// fiscal year, account and month.
func (f Field) Identifying() bool {
	return f >= FieldCompany && f <= FieldMonth
}

// ParseField returns the field for its API name.
func ParseField(name string) (Field, error) {
	for f, n := range fieldNames {
		if n == name {
			return f, nil
		}
	}

	return 0, fmt.Errorf("%w '%s', must be one of company, costCenter, fiscalYear, account, month, newBudget", ErrUnknownField, name)
}

// MarshalText implements encoding.TextMarshaler.
func (f Field) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Field) UnmarshalText(text []byte) error {
	parsed, err := ParseField(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
