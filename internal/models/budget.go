package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type BudgetStatus string

const (
	BudgetStatusDraft     BudgetStatus = "DRAFT"
	BudgetStatusSubmitted BudgetStatus = "SUBMITTED"
	BudgetStatusCancelled BudgetStatus = "CANCELLED"
)

type BudgetAgainst string

const (
	BudgetAgainstCostCenter BudgetAgainst = "COST_CENTER"
	BudgetAgainstProject    BudgetAgainst = "PROJECT"
)

// Budget is the yearly budget of a cost center, split into accounts.
type Budget struct {
	DefaultModel
	BudgetEditable
	AmendedFromID *uuid.UUID      `json:"amendedFromId" example:"8e4a5bd4-7bf5-4ad2-8c7e-bf1b3b1e0a11"` // The budget this one replaces after a reallocation
	Accounts      []BudgetAccount `json:"accounts" gorm:"constraint:OnDelete:CASCADE"`
}

type BudgetEditable struct {
	Company         string              `json:"company" example:"Acme Ltd"`
	CostCenter      string              `json:"costCenter" example:"Marketing - AL"`
	FiscalYear      string              `json:"fiscalYear" example:"2024-2025"`
	BudgetAgainst   BudgetAgainst       `json:"budgetAgainst" example:"COST_CENTER"`
	Status          BudgetStatus        `json:"status" example:"SUBMITTED"`
	BudgetAllocated decimal.NullDecimal `json:"budgetAllocated" gorm:"type:DECIMAL(20,8)" example:"20000"` // Upper bound for the sum of the accounts. Taken from the master budget for cost center budgets
}

// BudgetAccount is the annual amount budgeted for one account.
type BudgetAccount struct {
	DefaultModel
	BudgetID uuid.UUID       `json:"budgetId" gorm:"uniqueIndex:budget_account_account"`
	Account  string          `json:"account" gorm:"uniqueIndex:budget_account_account" example:"Travel Expenses - AL"`
	Amount   decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"5000"`
}

func (b *Budget) BeforeSave(tx *gorm.DB) error {
	b.Company = strings.TrimSpace(b.Company)
	b.CostCenter = strings.TrimSpace(b.CostCenter)
	b.FiscalYear = strings.TrimSpace(b.FiscalYear)

	if b.BudgetAgainst == "" {
		b.BudgetAgainst = BudgetAgainstCostCenter
	}

	if b.Status == "" {
		b.Status = BudgetStatusDraft
	}

	seen := make(map[string]bool, len(b.Accounts))
	for i := range b.Accounts {
		a := &b.Accounts[i]
		a.Account = strings.TrimSpace(a.Account)

		if seen[a.Account] {
			return ErrBudgetAccountRepeated
		}
		seen[a.Account] = true

		if a.Amount.IsNegative() {
			return ErrAmountNegative
		}
	}

	if b.BudgetAgainst == BudgetAgainstCostCenter && !b.BudgetAllocated.Valid {
		limit, err := MasterBudgetLimit(tx, b.Company, b.FiscalYear, b.CostCenter)
		if err != nil {
			return err
		}
		b.BudgetAllocated = limit
	}

	// Amended budgets are checked against the master budget limit
	// when the reallocation is made
	if b.AmendedFromID == nil && b.BudgetAllocated.Valid && b.Total().GreaterThan(b.BudgetAllocated.Decimal) {
		return ErrBudgetAllocatedExceeded
	}

	if b.Status == BudgetStatusSubmitted {
		var count int64
		err := tx.Model(&Budget{}).
			Where("company = ? AND fiscal_year = ? AND cost_center = ? AND status = ? AND id != ?", b.Company, b.FiscalYear, b.CostCenter, BudgetStatusSubmitted, b.ID).
			Count(&count).Error
		if err != nil {
			return err
		}

		if count > 0 {
			return ErrBudgetAlreadySubmitted
		}
	}

	return nil
}

// Total returns the sum of all account amounts.
func (b Budget) Total() decimal.Decimal {
	sum := decimal.Zero
	for _, a := range b.Accounts {
		sum = sum.Add(a.Amount)
	}
	return sum
}

// Account returns the budget line for the account.
func (b Budget) Account(account string) (BudgetAccount, bool) {
	for _, a := range b.Accounts {
		if a.Account == account {
			return a, true
		}
	}
	return BudgetAccount{}, false
}

// SubmittedBudget returns the submitted budget of a cost center in a fiscal year
// with its accounts.
func SubmittedBudget(db *gorm.DB, company, fiscalYear, costCenter string) (Budget, error) {
	var budget Budget
	err := db.Preload("Accounts").
		Where(&Budget{BudgetEditable: BudgetEditable{
			Company:    company,
			FiscalYear: fiscalYear,
			CostCenter: costCenter,
			Status:     BudgetStatusSubmitted,
		}}).
		First(&budget).Error

	return budget, err
}

// TotalAllocated returns the sum of all account amounts of submitted budgets
// for the cost center in the fiscal year.
func TotalAllocated(db *gorm.DB, company, fiscalYear, costCenter string) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := db.
		Table("budget_accounts").
		Select("SUM(budget_accounts.amount)").
		Joins("JOIN budgets ON budgets.id = budget_accounts.budget_id AND budgets.deleted_at IS NULL").
		Where("budget_accounts.deleted_at IS NULL").
		Where("budgets.company = ? AND budgets.fiscal_year = ? AND budgets.cost_center = ? AND budgets.status = ?", company, fiscalYear, costCenter, BudgetStatusSubmitted).
		Find(&total).Error
	if err != nil {
		return decimal.Zero, err
	}

	// No submitted budget lines
	if !total.Valid {
		return decimal.Zero, nil
	}

	return total.Decimal, nil
}

// Amend cancels the budget and creates a submitted copy of it where the amount of
// one account is replaced. The copy references the cancelled budget.
//
// It must be called inside a transaction.
func (b Budget) Amend(tx *gorm.DB, account string, amount decimal.Decimal) (Budget, error) {
	err := tx.Model(&Budget{}).Where("id = ?", b.ID).UpdateColumn("status", BudgetStatusCancelled).Error
	if err != nil {
		return Budget{}, err
	}

	amended := Budget{
		BudgetEditable: b.BudgetEditable,
		AmendedFromID:  &b.ID,
	}
	amended.Status = BudgetStatusSubmitted

	for _, a := range b.Accounts {
		line := BudgetAccount{Account: a.Account, Amount: a.Amount}
		if a.Account == account {
			line.Amount = amount
		}
		amended.Accounts = append(amended.Accounts, line)
	}

	err = tx.Create(&amended).Error
	if err != nil {
		return Budget{}, err
	}

	return amended, nil
}

// KnownAccounts returns the names of all accounts used in budgets of a company,
// sorted by name.
func KnownAccounts(db *gorm.DB, company string) ([]string, error) {
	var accounts []string
	err := db.
		Model(&BudgetAccount{}).
		Distinct("budget_accounts.account").
		Joins("JOIN budgets ON budgets.id = budget_accounts.budget_id AND budgets.deleted_at IS NULL").
		Where("budgets.company = ?", strings.TrimSpace(company)).
		Order("budget_accounts.account").
		Pluck("budget_accounts.account", &accounts).Error

	return accounts, err
}
