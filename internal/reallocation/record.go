// Package reallocation keeps the figures of a budget reallocation consistent
// with the company, cost center, fiscal year, account and month it is made for.
package reallocation

import (
	"github.com/budget-desk/backend/internal/types"
	"github.com/shopspring/decimal"
)

// Record is the state of one budget reallocation while it is edited.
//
// Numeric fields use decimal.NullDecimal. An invalid NullDecimal means the
// value is not known, which is different from zero.
type Record struct {
	Company    string            `json:"company" example:"Springfield Institute"`   // Company the budget belongs to
	CostCenter string            `json:"costCenter" example:"Physics - SI"`         // Cost center of the budget
	FiscalYear string            `json:"fiscalYear" example:"2025-2026"`            // Fiscal year of the budget
	Account    string            `json:"account" example:"Lab Equipment - SI"`      // Expense account to reallocate
	Month      types.FiscalMonth `json:"month" example:"July" swaggertype:"string"` // Month to reallocate

	CurrentBudget        decimal.NullDecimal `json:"currentBudget" swaggertype:"string" example:"1000"`         // Budget of the month before the reallocation
	TotalAnnualBudget    decimal.NullDecimal `json:"totalAnnualBudget" swaggertype:"string" example:"5000"`     // Annual budget of the account
	MasterBudgetLimit    decimal.NullDecimal `json:"masterBudgetLimit" swaggertype:"string" example:"20500"`    // Master budget of the cost center, null if there is none
	TotalAllocatedBudget decimal.NullDecimal `json:"totalAllocatedBudget" swaggertype:"string" example:"20000"` // Sum of annual budgets of all accounts of the cost center

	NewBudget decimal.NullDecimal `json:"newBudget" swaggertype:"string" example:"1200"` // Requested budget for the month

	Difference           decimal.NullDecimal `json:"difference" swaggertype:"string" example:"200"`            // NewBudget - CurrentBudget
	PercentageChange     decimal.NullDecimal `json:"percentageChange" swaggertype:"string" example:"20"`       // Difference relative to CurrentBudget in percent. Null if CurrentBudget is 0
	NewTotalAnnualBudget decimal.NullDecimal `json:"newTotalAnnualBudget" swaggertype:"string" example:"5200"` // Annual budget after the reallocation
}

// NewRecord returns a record for a key with the figures looked up for it and
// the requested new budget. The derived fields are not computed.
func NewRecord(key Key, figures Figures, newBudget decimal.NullDecimal) Record {
	r := Record{
		Company:    key.Company,
		CostCenter: key.CostCenter,
		FiscalYear: key.FiscalYear,
		Account:    key.Account,
		Month:      key.Month,
		NewBudget:  newBudget,
	}
	r.setFigures(figures)
	return r
}

// Key returns the identifying fields of the record.
func (r Record) Key() Key {
	return Key{
		Company:    r.Company,
		CostCenter: r.CostCenter,
		FiscalYear: r.FiscalYear,
		Account:    r.Account,
		Month:      r.Month,
	}
}

// Depth is the number of leading identifying fields that are set,
// following the dependency order. A record with depth 5 can be looked up.
func (r Record) Depth() int {
	depth := 0
	for _, f := range identifying {
		if !r.isSet(f) {
			break
		}
		depth++
	}
	return depth
}

// Complete reports if all identifying fields are set.
func (r Record) Complete() bool {
	return r.Key().Complete()
}

func (r Record) isSet(f Field) bool {
	switch f {
	case FieldCompany:
		return r.Company != ""
	case FieldCostCenter:
		return r.CostCenter != ""
	case FieldFiscalYear:
		return r.FiscalYear != ""
	case FieldAccount:
		return r.Account != ""
	case FieldMonth:
		return !r.Month.IsZero()
	case FieldNewBudget:
		return r.NewBudget.Valid
	}
	return false
}

// setFigures writes the lookup figures to the record.
func (r *Record) setFigures(f Figures) {
	r.CurrentBudget = decimal.NewNullDecimal(f.CurrentBudget)
	r.TotalAnnualBudget = decimal.NewNullDecimal(f.TotalAnnualBudget)
	r.MasterBudgetLimit = f.MasterBudgetLimit
	r.TotalAllocatedBudget = decimal.NewNullDecimal(f.TotalAllocatedBudget)
}

func (r *Record) clearFigures() {
	r.CurrentBudget = decimal.NullDecimal{}
	r.TotalAnnualBudget = decimal.NullDecimal{}
	r.MasterBudgetLimit = decimal.NullDecimal{}
	r.TotalAllocatedBudget = decimal.NullDecimal{}
}

func (r *Record) clearDerived() {
	r.Difference = decimal.NullDecimal{}
	r.PercentageChange = decimal.NullDecimal{}
	r.NewTotalAnnualBudget = decimal.NullDecimal{}
}
