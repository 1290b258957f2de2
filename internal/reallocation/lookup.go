package reallocation

import (
	"context"
	"errors"

	"github.com/budget-desk/backend/internal/types"
	"github.com/shopspring/decimal"
)

// ErrNoBudgetData is returned by a Lookup when there is no budget for a key.
var ErrNoBudgetData = errors.New("there is no budget data for this selection")

// Key identifies the budget of one account in one month.
type Key struct {
	Company    string            `json:"company" form:"company"`
	CostCenter string            `json:"costCenter" form:"costCenter"`
	FiscalYear string            `json:"fiscalYear" form:"fiscalYear"`
	Account    string            `json:"account" form:"account"`
	Month      types.FiscalMonth `json:"month" form:"month" swaggertype:"string"`
}

// Complete reports if all fields of the key are set.
func (k Key) Complete() bool {
	return k.Company != "" && k.CostCenter != "" && k.FiscalYear != "" && k.Account != "" && !k.Month.IsZero()
}

// Figures are the budget values for a Key.
type Figures struct {
	CurrentBudget        decimal.Decimal     `json:"currentBudget" example:"1000"`                           // Budget of the month
	TotalAnnualBudget    decimal.Decimal     `json:"totalAnnualBudget" example:"5000"`                       // Annual budget of the account
	MasterBudgetLimit    decimal.NullDecimal `json:"masterBudgetLimit" swaggertype:"string" example:"20500"` // Master budget of the cost center, null if there is none
	TotalAllocatedBudget decimal.Decimal     `json:"totalAllocatedBudget" example:"20000"`                   // Sum of the annual budgets of all accounts of the cost center
}

// Lookup returns the budget figures for a key.
type Lookup interface {
	LookupBudget(ctx context.Context, key Key) (Figures, error)
}

// LookupFunc adapts a function to the Lookup interface.
type LookupFunc func(ctx context.Context, key Key) (Figures, error)

func (f LookupFunc) LookupBudget(ctx context.Context, key Key) (Figures, error) {
	return f(ctx, key)
}
