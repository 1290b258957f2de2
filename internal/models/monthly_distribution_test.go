package models_test

import (
	"strings"

	"github.com/budget-desk/backend/internal/models"
	"github.com/budget-desk/backend/internal/types"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestDistributionName() {
	suite.Assert().Equal("2024-2025 - Marketing - AL - Travel Expenses - AL", models.DistributionName(fiscalYear, costCenter, travel))

	long := models.DistributionName(fiscalYear, costCenter, strings.Repeat("a", 200))
	suite.Assert().Contains(long, strings.Repeat("a", 200), "names are never truncated")
}

func (suite *TestSuiteStandard) TestMonthlyDistributionNameTooLong() {
	// 29 characters for fiscal year, cost center and separators, 111 for the account
	prefix := strings.Repeat("ä", 100)

	fits := models.MonthlyDistribution{FiscalYear: fiscalYear, CostCenter: costCenter, Account: prefix + strings.Repeat("b", 11)}
	suite.Require().Nil(models.DB.Create(&fits).Error, "140 multi-byte characters are allowed")

	for _, account := range []string{prefix + strings.Repeat("b", 12), prefix + strings.Repeat("b", 30)} {
		d := models.MonthlyDistribution{FiscalYear: fiscalYear, CostCenter: costCenter, Account: account}
		suite.Assert().ErrorIs(models.DB.Create(&d).Error, models.ErrDistributionNameTooLong)
	}
}

func (suite *TestSuiteStandard) TestMonthlyDistributionCreate() {
	distribution := suite.createDistribution()
	suite.Assert().Equal("2024-2025 - Marketing - AL - Travel Expenses - AL", distribution.Name)

	found, err := models.FindMonthlyDistribution(models.DB, " 2024-2025", costCenter, travel+" ")
	suite.Require().Nil(err)
	suite.Assert().Equal(distribution.ID, found.ID)
	suite.Assert().Len(found.Percentages, 4)
	suite.Assert().True(found.Percentage(types.FiscalMonth(6)).Equal(decimal.NewFromInt(25)))
	suite.Assert().True(found.Percentage(types.FiscalMonth(7)).IsZero(), "Months without a row have no share")
}

func (suite *TestSuiteStandard) TestMonthlyDistributionDuplicate() {
	_ = suite.createDistribution()

	duplicate := models.MonthlyDistribution{FiscalYear: fiscalYear, CostCenter: costCenter, Account: travel}
	suite.Assert().ErrorIs(models.DB.Create(&duplicate).Error, models.ErrMonthlyDistributionExists)
}

func (suite *TestSuiteStandard) TestMonthlyDistributionValidation() {
	distribution := models.MonthlyDistribution{
		FiscalYear: fiscalYear,
		CostCenter: costCenter,
		Account:    office,
		Percentages: []models.MonthlyDistributionPercentage{
			{Month: types.FiscalMonth(4), Percentage: decimal.NewFromInt(50)},
			{Month: types.FiscalMonth(4), Percentage: decimal.NewFromInt(50)},
		},
	}
	suite.Assert().ErrorIs(models.DB.Create(&distribution).Error, models.ErrMonthlyDistributionExists)

	distribution.Percentages = []models.MonthlyDistributionPercentage{{Percentage: decimal.NewFromInt(50)}}
	suite.Assert().ErrorIs(models.DB.Create(&distribution).Error, types.ErrInvalidFiscalMonth)

	distribution.Percentages = []models.MonthlyDistributionPercentage{{Month: types.FiscalMonth(5), Percentage: decimal.NewFromInt(-5)}}
	suite.Assert().ErrorIs(models.DB.Create(&distribution).Error, models.ErrAmountNegative)
}

func (suite *TestSuiteStandard) TestMonthlyDistributionNotFound() {
	_, err := models.FindMonthlyDistribution(models.DB, fiscalYear, costCenter, travel)
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
	suite.Assert().Contains(err.Error(), "monthly distribution")
}

func (suite *TestSuiteStandard) TestEvenDistribution() {
	percentages := models.EvenDistribution()
	suite.Require().Len(percentages, 12)
	suite.Assert().Equal(types.FiscalMonth(4), percentages[0].Month)
	suite.Assert().Equal(types.FiscalMonth(3), percentages[11].Month)

	sum := decimal.Zero
	for _, p := range percentages {
		sum = sum.Add(p.Percentage)
	}
	suite.Assert().InDelta(100, sum.InexactFloat64(), 0.000001)
}

func (suite *TestSuiteStandard) TestDistributionFromAmounts() {
	percentages := models.DistributionFromAmounts(map[types.FiscalMonth]decimal.Decimal{
		types.FiscalMonth(5): decimal.NewFromInt(300),
		types.FiscalMonth(4): decimal.NewFromInt(100),
	})

	suite.Require().Len(percentages, 2)
	suite.Assert().Equal(types.FiscalMonth(4), percentages[0].Month, "Percentages are in fiscal year order")
	suite.Assert().True(percentages[0].Percentage.Equal(decimal.NewFromInt(25)))
	suite.Assert().True(percentages[1].Percentage.Equal(decimal.NewFromInt(75)))

	percentages = models.DistributionFromAmounts(map[types.FiscalMonth]decimal.Decimal{
		types.FiscalMonth(4): decimal.Zero,
	})
	suite.Assert().True(percentages[0].Percentage.IsZero())
}

func (suite *TestSuiteStandard) TestMonthlyDistributionRescale() {
	distribution := suite.createDistribution()

	// The annual budget of 5000 grows to 5200, June goes from 1250 to 1450
	err := distribution.Rescale(models.DB, decimal.NewFromInt(5000), decimal.NewFromInt(5200), types.FiscalMonth(6), decimal.NewFromInt(1450))
	suite.Require().Nil(err)

	found, err := models.FindMonthlyDistribution(models.DB, fiscalYear, costCenter, travel)
	suite.Require().Nil(err)

	suite.Assert().InDelta(24.0384615, found.Percentage(types.FiscalMonth(4)).InexactFloat64(), 0.00001)
	suite.Assert().InDelta(27.8846153, found.Percentage(types.FiscalMonth(6)).InexactFloat64(), 0.00001)

	amounts := found.Amounts(decimal.NewFromInt(5200))
	suite.Assert().InDelta(1250, amounts[types.FiscalMonth(9)].InexactFloat64(), 0.001)
	suite.Assert().InDelta(1450, amounts[types.FiscalMonth(6)].InexactFloat64(), 0.001)
}

func (suite *TestSuiteStandard) TestMonthlyDistributionRescaleNewMonth() {
	distribution := suite.createDistribution()

	// July had no share so far
	err := distribution.Rescale(models.DB, decimal.NewFromInt(5000), decimal.NewFromInt(5500), types.FiscalMonth(7), decimal.NewFromInt(500))
	suite.Require().Nil(err)

	found, err := models.FindMonthlyDistribution(models.DB, fiscalYear, costCenter, travel)
	suite.Require().Nil(err)
	suite.Assert().Len(found.Percentages, 5)

	amounts := found.Amounts(decimal.NewFromInt(5500))
	suite.Assert().InDelta(500, amounts[types.FiscalMonth(7)].InexactFloat64(), 0.001)
	suite.Assert().InDelta(1250, amounts[types.FiscalMonth(4)].InexactFloat64(), 0.001)
}
