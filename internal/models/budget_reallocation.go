package models

import (
	"fmt"
	"time"

	"github.com/budget-desk/backend/internal/reallocation"
	"github.com/budget-desk/backend/internal/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BudgetReallocation is an approved change of the budget of an account
// in one month.
type BudgetReallocation struct {
	DefaultModel
	Company    string            `json:"company" example:"Acme Ltd"`
	CostCenter string            `json:"costCenter" example:"Marketing - AL"`
	FiscalYear string            `json:"fiscalYear" example:"2024-2025"`
	Account    string            `json:"account" example:"Travel Expenses - AL"`
	Month      types.FiscalMonth `json:"month" swaggertype:"string" example:"July"`

	CurrentBudget        decimal.Decimal     `json:"currentBudget" gorm:"type:DECIMAL(20,8)" example:"1000"`
	NewBudget            decimal.Decimal     `json:"newBudget" gorm:"type:DECIMAL(20,8)" example:"1200"`
	Difference           decimal.Decimal     `json:"difference" gorm:"type:DECIMAL(20,8)" example:"200"`
	PercentageChange     decimal.NullDecimal `json:"percentageChange" gorm:"type:DECIMAL(20,8)" swaggertype:"string" example:"20"`
	TotalAnnualBudget    decimal.Decimal     `json:"totalAnnualBudget" gorm:"type:DECIMAL(20,8)" example:"5000"`
	NewTotalAnnualBudget decimal.Decimal     `json:"newTotalAnnualBudget" gorm:"type:DECIMAL(20,8)" example:"5200"`
	MasterBudgetLimit    decimal.NullDecimal `json:"masterBudgetLimit" gorm:"type:DECIMAL(20,8)" swaggertype:"string" example:"20500"`
	TotalAllocatedBudget decimal.Decimal     `json:"totalAllocatedBudget" gorm:"type:DECIMAL(20,8)" example:"20000"`

	OldBudgetID uuid.UUID `json:"oldBudgetId" example:"0b8a3d1e-0e4e-4a3f-8e1a-3b6a4f1c2d3e"` // The cancelled budget
	NewBudgetID uuid.UUID `json:"newBudgetId" example:"9f1c2d3e-4a3f-4e0e-8e1a-0b8a3d1e3b6a"` // The amended budget
	ApprovedAt  time.Time `json:"approvedAt" example:"2024-07-12T09:30:00Z"`
}

func (r *BudgetReallocation) AfterFind(tx *gorm.DB) error {
	r.ApprovedAt = r.ApprovedAt.In(time.UTC)
	return r.DefaultModel.AfterFind(tx)
}

// Reallocate changes the budget of an account in a month to newBudget.
//
// The figures are looked up again so that the result does not depend on what
// a client has seen before. If the new budget pushes the cost center above its
// master budget limit, the reallocation is rejected when enforceLimit is set.
// Otherwise, the warning is returned together with the reallocation.
//
// The lookup, the limit check and all writes happen in one transaction:
// the monthly distribution is rescaled to the new annual total, the budget
// is cancelled and replaced by an amended copy and the reallocation is stored.
// Connect limits the pool to one connection, so concurrent reallocations are
// serialized and each one checks the limit against the committed state.
func Reallocate(db *gorm.DB, key reallocation.Key, newBudget decimal.Decimal, enforceLimit bool) (BudgetReallocation, *reallocation.Warning, error) {
	if newBudget.IsNegative() {
		return BudgetReallocation{}, nil, ErrAmountNegative
	}

	var (
		result  BudgetReallocation
		warning *reallocation.Warning
	)

	err := db.Transaction(func(tx *gorm.DB) error {
		figures, err := LookupBudget(tx, key)
		if err != nil {
			return err
		}

		record := reallocation.NewRecord(key, figures, decimal.NewNullDecimal(newBudget))
		warning = reallocation.Recompute(&record)
		if warning != nil && enforceLimit {
			return fmt.Errorf("%w: the new total allocated budget %s exceeds the master budget limit %s by %s",
				ErrMasterBudgetLimitExceeded,
				reallocation.FormatAmount(warning.NewTotalAllocated),
				reallocation.FormatAmount(warning.MasterBudgetLimit),
				reallocation.FormatAmount(warning.Excess),
			)
		}

		result = BudgetReallocation{
			Company:              record.Company,
			CostCenter:           record.CostCenter,
			FiscalYear:           record.FiscalYear,
			Account:              record.Account,
			Month:                record.Month,
			CurrentBudget:        record.CurrentBudget.Decimal,
			NewBudget:            newBudget,
			Difference:           record.Difference.Decimal,
			PercentageChange:     record.PercentageChange,
			TotalAnnualBudget:    record.TotalAnnualBudget.Decimal,
			NewTotalAnnualBudget: record.NewTotalAnnualBudget.Decimal,
			MasterBudgetLimit:    record.MasterBudgetLimit,
			TotalAllocatedBudget: record.TotalAllocatedBudget.Decimal,
		}

		budget, err := SubmittedBudget(tx, key.Company, key.FiscalYear, key.CostCenter)
		if err != nil {
			return err
		}

		distribution, err := FindMonthlyDistribution(tx, key.FiscalYear, key.CostCenter, key.Account)
		if err != nil {
			return err
		}

		err = distribution.Rescale(tx, result.TotalAnnualBudget, result.NewTotalAnnualBudget, key.Month, newBudget)
		if err != nil {
			return err
		}

		amended, err := budget.Amend(tx, key.Account, result.NewTotalAnnualBudget)
		if err != nil {
			return err
		}

		result.OldBudgetID = budget.ID
		result.NewBudgetID = amended.ID
		result.ApprovedAt = time.Now().UTC()

		return tx.Create(&result).Error
	})
	if err != nil {
		return BudgetReallocation{}, warning, err
	}

	log.Info().
		Str("company", result.Company).
		Str("costCenter", result.CostCenter).
		Str("fiscalYear", result.FiscalYear).
		Str("account", result.Account).
		Str("month", result.Month.String()).
		Str("difference", result.Difference.String()).
		Msg("budget reallocated")

	return result, warning, nil
}
