package models

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/budget-desk/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// maxDistributionName is the maximum length of a distribution name in characters.
const maxDistributionName = 140

var hundred = decimal.NewFromInt(100)

// MonthlyDistribution splits the annual budget of an account
// in a cost center over the months of the fiscal year.
type MonthlyDistribution struct {
	DefaultModel
	Name        string                          `json:"name" gorm:"uniqueIndex" example:"2024-2025 - Marketing - AL - Travel Expenses - AL"` // Derived from fiscal year, cost center and account
	FiscalYear  string                          `json:"fiscalYear" example:"2024-2025"`
	CostCenter  string                          `json:"costCenter" example:"Marketing - AL"`
	Account     string                          `json:"account" example:"Travel Expenses - AL"`
	Percentages []MonthlyDistributionPercentage `json:"percentages" gorm:"constraint:OnDelete:CASCADE"`
}

// MonthlyDistributionPercentage is the share of the annual budget of one month.
type MonthlyDistributionPercentage struct {
	DefaultModel
	MonthlyDistributionID uuid.UUID         `json:"monthlyDistributionId" gorm:"uniqueIndex:distribution_percentage_month"`
	Month                 types.FiscalMonth `json:"month" gorm:"uniqueIndex:distribution_percentage_month" swaggertype:"string" example:"June"`
	Percentage            decimal.Decimal   `json:"percentage" gorm:"type:DECIMAL(20,8)" example:"8.3333"`
}

// DistributionName returns the name of the monthly distribution for an account
// of a cost center in a fiscal year.
func DistributionName(fiscalYear, costCenter, account string) string {
	return fmt.Sprintf("%s - %s - %s", fiscalYear, costCenter, account)
}

func (d *MonthlyDistribution) BeforeSave(_ *gorm.DB) error {
	d.FiscalYear = strings.TrimSpace(d.FiscalYear)
	d.CostCenter = strings.TrimSpace(d.CostCenter)
	d.Account = strings.TrimSpace(d.Account)
	d.Name = DistributionName(d.FiscalYear, d.CostCenter, d.Account)
	if utf8.RuneCountInString(d.Name) > maxDistributionName {
		return fmt.Errorf("%w: %d characters at most", ErrDistributionNameTooLong, maxDistributionName)
	}

	seen := make(map[types.FiscalMonth]bool, len(d.Percentages))
	for _, p := range d.Percentages {
		if p.Month.IsZero() {
			return types.ErrInvalidFiscalMonth
		}

		if seen[p.Month] {
			return ErrMonthlyDistributionExists
		}
		seen[p.Month] = true

		if p.Percentage.IsNegative() {
			return ErrAmountNegative
		}
	}

	return nil
}

// Percentage returns the share of the month in percent. Months without
// a row have a share of zero.
func (d MonthlyDistribution) Percentage(month types.FiscalMonth) decimal.Decimal {
	if p, ok := d.find(month); ok {
		return p.Percentage
	}
	return decimal.Zero
}

// Amounts returns the monthly amounts of an annual budget.
func (d MonthlyDistribution) Amounts(annual decimal.Decimal) map[types.FiscalMonth]decimal.Decimal {
	amounts := make(map[types.FiscalMonth]decimal.Decimal, len(d.Percentages))
	for _, p := range d.Percentages {
		amounts[p.Month] = annual.Mul(p.Percentage).Div(hundred)
	}
	return amounts
}

// EvenDistribution returns percentages splitting a budget evenly over all
// months of the fiscal year.
func EvenDistribution() []MonthlyDistributionPercentage {
	months := types.FiscalMonths()
	share := hundred.Div(decimal.NewFromInt(int64(len(months))))

	percentages := make([]MonthlyDistributionPercentage, 0, len(months))
	for _, m := range months {
		percentages = append(percentages, MonthlyDistributionPercentage{Month: m, Percentage: share})
	}
	return percentages
}

// DistributionFromAmounts returns the percentages matching monthly amounts.
// All percentages are zero if the amounts add up to zero.
func DistributionFromAmounts(amounts map[types.FiscalMonth]decimal.Decimal) []MonthlyDistributionPercentage {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}

	percentages := make([]MonthlyDistributionPercentage, 0, len(amounts))
	for _, m := range types.FiscalMonths() {
		amount, ok := amounts[m]
		if !ok {
			continue
		}

		share := decimal.Zero
		if !total.IsZero() {
			share = amount.Div(total).Mul(hundred)
		}
		percentages = append(percentages, MonthlyDistributionPercentage{Month: m, Percentage: share})
	}
	return percentages
}

// Rescale updates the percentages so that the month amounts stay the same
// when the annual budget changes from oldAnnual to newAnnual, except for the
// month that is set to amount.
//
// It must be called inside a transaction.
func (d *MonthlyDistribution) Rescale(tx *gorm.DB, oldAnnual, newAnnual decimal.Decimal, month types.FiscalMonth, amount decimal.Decimal) error {
	amounts := d.Amounts(oldAnnual)
	amounts[month] = amount

	for i := range d.Percentages {
		p := &d.Percentages[i]

		share := decimal.Zero
		if !newAnnual.IsZero() {
			share = amounts[p.Month].Div(newAnnual).Mul(hundred)
		}

		err := tx.Model(p).UpdateColumn("percentage", share).Error
		if err != nil {
			return err
		}
		p.Percentage = share
	}

	if _, ok := d.find(month); !ok {
		share := decimal.Zero
		if !newAnnual.IsZero() {
			share = amount.Div(newAnnual).Mul(hundred)
		}

		p := MonthlyDistributionPercentage{MonthlyDistributionID: d.ID, Month: month, Percentage: share}
		err := tx.Create(&p).Error
		if err != nil {
			return err
		}
		d.Percentages = append(d.Percentages, p)
	}

	return nil
}

func (d MonthlyDistribution) find(month types.FiscalMonth) (MonthlyDistributionPercentage, bool) {
	for _, p := range d.Percentages {
		if p.Month == month {
			return p, true
		}
	}
	return MonthlyDistributionPercentage{}, false
}

// FindMonthlyDistribution returns the distribution for an account of a cost center
// in a fiscal year with its percentages.
func FindMonthlyDistribution(db *gorm.DB, fiscalYear, costCenter, account string) (MonthlyDistribution, error) {
	var distribution MonthlyDistribution
	err := db.Preload("Percentages").
		Where(&MonthlyDistribution{Name: DistributionName(strings.TrimSpace(fiscalYear), strings.TrimSpace(costCenter), strings.TrimSpace(account))}).
		First(&distribution).Error

	return distribution, err
}
