package reallocation

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Warning is raised when a reallocation would push the total allocated
// budget of a cost center above its master budget. It does not block the
// reallocation.
type Warning struct {
	MasterBudgetLimit    decimal.Decimal `json:"masterBudgetLimit" example:"20000"`    // Master budget of the cost center
	TotalAllocatedBudget decimal.Decimal `json:"totalAllocatedBudget" example:"20000"` // Allocated budget before the reallocation
	NewTotalAllocated    decimal.Decimal `json:"newTotalAllocated" example:"20200"`    // Allocated budget after the reallocation
	Excess               decimal.Decimal `json:"excess" example:"200"`                 // Amount above the master budget
}

// Recompute derives difference, percentage change and new annual total from
// the current and the new budget and checks the master budget limit.
//
// Nothing happens unless both CurrentBudget and NewBudget are set. The
// derived fields are always written, a returned Warning is advisory.
func Recompute(r *Record) *Warning {
	if !r.CurrentBudget.Valid || !r.NewBudget.Valid {
		return nil
	}

	current := r.CurrentBudget.Decimal
	difference := r.NewBudget.Decimal.Sub(current)
	r.Difference = decimal.NewNullDecimal(difference)

	if current.IsZero() {
		r.PercentageChange = decimal.NullDecimal{}
	} else {
		r.PercentageChange = decimal.NewNullDecimal(difference.Div(current).Mul(hundred))
	}

	newTotal := valueOf(r.TotalAnnualBudget).Sub(current).Add(r.NewBudget.Decimal)
	r.NewTotalAnnualBudget = decimal.NewNullDecimal(newTotal)

	if !difference.IsPositive() || !r.MasterBudgetLimit.Valid {
		return nil
	}

	otherAccounts := valueOf(r.TotalAllocatedBudget).Sub(valueOf(r.TotalAnnualBudget))
	newTotalAllocated := otherAccounts.Add(newTotal)
	limit := r.MasterBudgetLimit.Decimal

	if !newTotalAllocated.GreaterThan(limit) {
		return nil
	}

	return &Warning{
		MasterBudgetLimit:    limit,
		TotalAllocatedBudget: valueOf(r.TotalAllocatedBudget),
		NewTotalAllocated:    newTotalAllocated,
		Excess:               newTotalAllocated.Sub(limit),
	}
}

// valueOf treats an unset value as zero.
func valueOf(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	return d.Decimal
}
