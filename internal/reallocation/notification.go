package reallocation

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// swagger:enum Severity
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
)

// Notification is a dismissible message for the user.
type Notification struct {
	Title    string   `json:"title" example:"Budget Limit Warning"`
	Severity Severity `json:"severity" example:"warning"`
	Message  string   `json:"message" example:"New budget will exceed the master budget limit by 200.00"`
	Warning  *Warning `json:"warning,omitempty"` // The values the message is built from
}

var printer = message.NewPrinter(language.English)

// FormatAmount formats a currency amount with thousands separators and two
// decimals. The amount is rounded half away from zero and never converted
// to a float.
func FormatAmount(d decimal.Decimal) string {
	fixed := d.Abs().StringFixed(2)
	integer, fraction, _ := strings.Cut(fixed, ".")

	var sign string
	if d.Round(2).IsNegative() {
		sign = "-"
	}

	return sign + groupThousands(integer) + "." + fraction
}

// groupThousands inserts thousands separators into a string of digits.
func groupThousands(digits string) string {
	value, err := decimal.NewFromString(digits)
	if err == nil && value.BigInt().IsUint64() {
		return printer.Sprint(number.Decimal(value.BigInt().Uint64()))
	}

	// Above the uint64 range
	var b strings.Builder
	for i, c := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return b.String()
}

// Notification builds the user facing message for the warning.
func (w Warning) Notification() Notification {
	return Notification{
		Title:    "Budget Limit Warning",
		Severity: SeverityWarning,
		Message: printer.Sprintf(
			"New budget will exceed Master Budget Limit! Master Budget Limit: %s, Current Total Allocated: %s, New Total Allocated: %s, Excess Amount: %s",
			FormatAmount(w.MasterBudgetLimit),
			FormatAmount(w.TotalAllocatedBudget),
			FormatAmount(w.NewTotalAllocated),
			FormatAmount(w.Excess),
		),
		Warning: &w,
	}
}
