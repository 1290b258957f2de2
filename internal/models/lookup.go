package models

import (
	"context"
	"fmt"

	"github.com/budget-desk/backend/internal/reallocation"
	"gorm.io/gorm"
)

// LookupBudget returns the budget figures for an account in a month.
//
// The submitted budget of the cost center provides the annual amount of the
// account, the monthly distribution its share for the month.
func LookupBudget(db *gorm.DB, key reallocation.Key) (reallocation.Figures, error) {
	if !key.Complete() {
		return reallocation.Figures{}, fmt.Errorf("%w: company, cost center, fiscal year, account and month are required", reallocation.ErrNoBudgetData)
	}

	budget, err := SubmittedBudget(db, key.Company, key.FiscalYear, key.CostCenter)
	if err != nil {
		return reallocation.Figures{}, noBudgetData(err)
	}

	line, ok := budget.Account(key.Account)
	if !ok {
		return reallocation.Figures{}, fmt.Errorf("%w: %w budget account matching your query", reallocation.ErrNoBudgetData, ErrResourceNotFound)
	}

	distribution, err := FindMonthlyDistribution(db, key.FiscalYear, key.CostCenter, key.Account)
	if err != nil {
		return reallocation.Figures{}, noBudgetData(err)
	}

	limit, err := MasterBudgetLimit(db, key.Company, key.FiscalYear, key.CostCenter)
	if err != nil {
		return reallocation.Figures{}, err
	}

	allocated, err := TotalAllocated(db, key.Company, key.FiscalYear, key.CostCenter)
	if err != nil {
		return reallocation.Figures{}, err
	}

	return reallocation.Figures{
		CurrentBudget:        line.Amount.Mul(distribution.Percentage(key.Month)).Div(hundred),
		TotalAnnualBudget:    line.Amount,
		MasterBudgetLimit:    limit,
		TotalAllocatedBudget: allocated,
	}, nil
}

func noBudgetData(err error) error {
	if isNotFound(err) {
		return fmt.Errorf("%w: %w", reallocation.ErrNoBudgetData, err)
	}
	return err
}

// DatabaseLookup looks up budget figures in the database.
// Without a DB, the package connection is used.
type DatabaseLookup struct {
	DB *gorm.DB
}

func (l DatabaseLookup) LookupBudget(ctx context.Context, key reallocation.Key) (reallocation.Figures, error) {
	db := l.DB
	if db == nil {
		db = DB
	}
	return LookupBudget(db.WithContext(ctx), key)
}
