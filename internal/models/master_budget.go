package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MasterBudget is the yearly spending ceiling of a company, split into
// limits per cost center.
type MasterBudget struct {
	DefaultModel
	MasterBudgetEditable
	Departments []MasterBudgetDepartment `json:"departments" gorm:"constraint:OnDelete:CASCADE"`
}

type MasterBudgetEditable struct {
	Company     string              `json:"company" gorm:"uniqueIndex:master_budget_company_fiscal_year" example:"Acme Ltd"`     // Company the master budget is for
	FiscalYear  string              `json:"fiscalYear" gorm:"uniqueIndex:master_budget_company_fiscal_year" example:"2024-2025"` // Fiscal year, starting in April
	TotalBudget decimal.NullDecimal `json:"totalBudget" gorm:"type:DECIMAL(20,8)" swaggertype:"string" example:"1000000"`        // Ceiling for all departments together. Not checked when null
}

// MasterBudgetDepartment is the limit for one cost center.
type MasterBudgetDepartment struct {
	DefaultModel
	MasterBudgetID uuid.UUID       `json:"masterBudgetId" gorm:"uniqueIndex:master_budget_department_cost_center" example:"3b1ea324-d438-4419-882a-2fc91d71772f"`
	CostCenter     string          `json:"costCenter" gorm:"uniqueIndex:master_budget_department_cost_center" example:"Marketing - AL"` // Cost center the limit applies to
	Budget         decimal.Decimal `json:"budget" gorm:"type:DECIMAL(20,8)" example:"20000"`                                            // Master budget limit of the cost center
}

func (m *MasterBudget) BeforeSave(_ *gorm.DB) error {
	m.Company = strings.TrimSpace(m.Company)
	m.FiscalYear = strings.TrimSpace(m.FiscalYear)

	if m.TotalBudget.Valid && m.TotalBudget.Decimal.IsNegative() {
		return ErrAmountNegative
	}

	seen := make(map[string]bool, len(m.Departments))
	sum := decimal.Zero
	for i := range m.Departments {
		d := &m.Departments[i]
		d.CostCenter = strings.TrimSpace(d.CostCenter)

		if seen[d.CostCenter] {
			return ErrMasterBudgetDepartmentRepeated
		}
		seen[d.CostCenter] = true

		if d.Budget.IsNegative() {
			return ErrAmountNegative
		}
		sum = sum.Add(d.Budget)
	}

	if m.TotalBudget.Valid && sum.GreaterThan(m.TotalBudget.Decimal) {
		return ErrMasterBudgetTotalExceeded
	}

	return nil
}

// Allocated returns the sum of the department budgets.
func (m MasterBudget) Allocated() decimal.Decimal {
	sum := decimal.Zero
	for _, d := range m.Departments {
		sum = sum.Add(d.Budget)
	}
	return sum
}

// Department returns the department for the cost center.
func (m MasterBudget) Department(costCenter string) (MasterBudgetDepartment, bool) {
	for _, d := range m.Departments {
		if d.CostCenter == costCenter {
			return d, true
		}
	}
	return MasterBudgetDepartment{}, false
}

// MasterBudgetLimit returns the limit configured for a cost center in the master budget
// of the company for the fiscal year. The result is invalid if there is no such limit.
func MasterBudgetLimit(db *gorm.DB, company, fiscalYear, costCenter string) (decimal.NullDecimal, error) {
	var department MasterBudgetDepartment
	err := db.
		Joins("JOIN master_budgets ON master_budgets.id = master_budget_departments.master_budget_id AND master_budgets.deleted_at IS NULL").
		Where("master_budgets.company = ? AND master_budgets.fiscal_year = ? AND master_budget_departments.cost_center = ?", company, fiscalYear, costCenter).
		First(&department).Error

	if err != nil {
		if isNotFound(err) {
			return decimal.NullDecimal{}, nil
		}
		return decimal.NullDecimal{}, err
	}

	return decimal.NewNullDecimal(department.Budget), nil
}
