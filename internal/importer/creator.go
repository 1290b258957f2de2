package importer

import (
	"errors"
	"fmt"

	"github.com/budget-desk/backend/internal/models"
	"github.com/budget-desk/backend/internal/reallocation"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrNothingToImport = errors.New("the upload does not contain any account with a budget")

// Create creates a monthly distribution for every row and adds the accounts to
// the submitted budget of the cost center. If there is no submitted budget yet,
// one is created.
//
// Rows with a total of zero are ignored. Accounts that already have a budget
// keep it.
//
// The upload is refused if the cost center has no master budget or the
// accounts it adds would exceed it.
func Create(db *gorm.DB, resources ParsedResources) (Result, error) {
	// Start a transaction so we can roll back all created resources if an error occurs
	tx := db.Begin()

	limit, err := models.MasterBudgetLimit(tx, resources.Company, resources.FiscalYear, resources.CostCenter)
	if err != nil {
		tx.Rollback()
		return Result{}, err
	}

	if !limit.Valid {
		tx.Rollback()
		return Result{}, fmt.Errorf("%w for cost center '%s' of company '%s' in fiscal year '%s'", models.ErrNoMasterBudget, resources.CostCenter, resources.Company, resources.FiscalYear)
	}

	allocated, err := models.TotalAllocated(tx, resources.Company, resources.FiscalYear, resources.CostCenter)
	if err != nil {
		tx.Rollback()
		return Result{}, err
	}

	budget, err := models.SubmittedBudget(tx, resources.Company, resources.FiscalYear, resources.CostCenter)
	budgetExists := err == nil
	if err != nil && !errors.Is(err, models.ErrResourceNotFound) {
		tx.Rollback()
		return Result{}, err
	}

	if !budgetExists {
		budget = models.Budget{
			BudgetEditable: models.BudgetEditable{
				Company:       resources.Company,
				CostCenter:    resources.CostCenter,
				FiscalYear:    resources.FiscalYear,
				BudgetAgainst: models.BudgetAgainstCostCenter,
				Status:        models.BudgetStatusSubmitted,
			},
		}
	}

	var result Result
	var lines []models.BudgetAccount

	for _, row := range resources.Rows {
		annual := row.Total()
		if annual.IsZero() {
			continue
		}

		_, hasAccount := budget.Account(row.Account)

		_, err := models.FindMonthlyDistribution(tx, resources.FiscalYear, resources.CostCenter, row.Account)
		distributionExists := err == nil
		if err != nil && !errors.Is(err, models.ErrResourceNotFound) {
			tx.Rollback()
			return Result{}, err
		}

		if distributionExists {
			result.SkippedDistributions = append(result.SkippedDistributions, models.DistributionName(resources.FiscalYear, resources.CostCenter, row.Account))
		} else {
			distribution := models.MonthlyDistribution{
				FiscalYear:  resources.FiscalYear,
				CostCenter:  resources.CostCenter,
				Account:     row.Account,
				Percentages: models.DistributionFromAmounts(row.Amounts),
			}

			err := tx.Create(&distribution).Error
			if err != nil {
				tx.Rollback()
				return Result{}, fmt.Errorf("creating the distribution for row %d: %w", row.Line, err)
			}
			result.Distributions = append(result.Distributions, distribution)
		}

		if hasAccount {
			result.SkippedAccounts = append(result.SkippedAccounts, row.Account)
			continue
		}

		lines = append(lines, models.BudgetAccount{Account: row.Account, Amount: annual})
	}

	if len(lines) == 0 && len(result.Distributions) == 0 && len(result.SkippedAccounts) == 0 {
		tx.Rollback()
		return Result{}, ErrNothingToImport
	}

	added := decimal.Zero
	for _, line := range lines {
		added = added.Add(line.Amount)
	}

	after := allocated.Add(added)
	if after.GreaterThan(limit.Decimal) {
		tx.Rollback()
		return Result{}, fmt.Errorf("%w: the master budget limit is %s, %s is already allocated and the upload adds %s. The total of %s exceeds the limit by %s",
			models.ErrMasterBudgetLimitExceeded,
			reallocation.FormatAmount(limit.Decimal),
			reallocation.FormatAmount(allocated),
			reallocation.FormatAmount(added),
			reallocation.FormatAmount(after),
			reallocation.FormatAmount(after.Sub(limit.Decimal)),
		)
	}

	switch {
	case !budgetExists:
		budget.Accounts = lines
		err = tx.Create(&budget).Error
	default:
		for i := range lines {
			lines[i].BudgetID = budget.ID
		}

		if len(lines) > 0 {
			err = tx.Create(&lines).Error
		}
		budget.Accounts = append(budget.Accounts, lines...)
	}

	if err != nil {
		tx.Rollback()
		return Result{}, err
	}

	err = tx.Commit().Error
	if err != nil {
		return Result{}, err
	}

	result.Budget = budget

	log.Info().
		Str("company", resources.Company).
		Str("cost_center", resources.CostCenter).
		Str("fiscal_year", resources.FiscalYear).
		Int("distributions", len(result.Distributions)).
		Int("accounts", len(lines)).
		Msg("budget upload imported")

	return result, nil
}
