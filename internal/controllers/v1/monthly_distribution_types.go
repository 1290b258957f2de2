package v1

import (
	"fmt"

	"github.com/budget-desk/backend/internal/models"
	"github.com/budget-desk/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type MonthlyDistributionPercentageEditable struct {
	Month      types.FiscalMonth `json:"month" swaggertype:"string" example:"June"` // Month of the fiscal year
	Percentage decimal.Decimal   `json:"percentage" example:"25"`                   // Share of the annual budget in percent
}

type MonthlyDistributionEditable struct {
	FiscalYear  string                                  `json:"fiscalYear" example:"2024-2025"`         // Fiscal year of the distribution
	CostCenter  string                                  `json:"costCenter" example:"Marketing - AL"`    // Cost center of the distribution
	Account     string                                  `json:"account" example:"Travel Expenses - AL"` // Account of the distribution
	Percentages []MonthlyDistributionPercentageEditable `json:"percentages"`                            // Share of the annual budget per month. Missing months get nothing
}

// model returns the database resource for the API representation of the editable fields
func (editable MonthlyDistributionEditable) model() models.MonthlyDistribution {
	percentages := make([]models.MonthlyDistributionPercentage, 0, len(editable.Percentages))
	for _, p := range editable.Percentages {
		percentages = append(percentages, models.MonthlyDistributionPercentage{
			Month:      p.Month,
			Percentage: p.Percentage,
		})
	}

	return models.MonthlyDistribution{
		FiscalYear:  editable.FiscalYear,
		CostCenter:  editable.CostCenter,
		Account:     editable.Account,
		Percentages: percentages,
	}
}

type MonthlyDistributionLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/monthly-distributions/d6e5a3c1-6f0b-4d8e-9a38-2c8b7f1e4a90"` // The monthly distribution itself
}

type MonthlyDistribution struct {
	models.DefaultModel
	Name string `json:"name" example:"2024-2025 - Marketing - AL - Travel Expenses - AL"` // Derived from fiscal year, cost center and account
	MonthlyDistributionEditable
	Total decimal.Decimal          `json:"total" example:"100"` // Sum of all percentages
	Links MonthlyDistributionLinks `json:"links"`
}

// newMonthlyDistribution returns the API v1 representation of the resource
func newMonthlyDistribution(c *gin.Context, model models.MonthlyDistribution) MonthlyDistribution {
	url := c.GetString(string(models.DBContextURL))

	total := decimal.Zero
	percentages := make([]MonthlyDistributionPercentageEditable, 0, len(model.Percentages))
	for _, m := range types.FiscalMonths() {
		percentage := model.Percentage(m)
		total = total.Add(percentage)

		percentages = append(percentages, MonthlyDistributionPercentageEditable{
			Month:      m,
			Percentage: percentage,
		})
	}

	return MonthlyDistribution{
		DefaultModel: model.DefaultModel,
		Name:         model.Name,
		MonthlyDistributionEditable: MonthlyDistributionEditable{
			FiscalYear:  model.FiscalYear,
			CostCenter:  model.CostCenter,
			Account:     model.Account,
			Percentages: percentages,
		},
		Total: total,
		Links: MonthlyDistributionLinks{
			Self: fmt.Sprintf("%s/v1/monthly-distributions/%s", url, model.ID),
		},
	}
}

type MonthlyDistributionListResponse struct {
	Data       []MonthlyDistribution `json:"data"`                                                          // List of resources
	Error      *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination           `json:"pagination"`                                                    // Pagination information
}

type MonthlyDistributionCreateResponse struct {
	Error *string                       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []MonthlyDistributionResponse `json:"data"`                                                          // List of created resources
}

func (m *MonthlyDistributionCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	m.Data = append(m.Data, MonthlyDistributionResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type MonthlyDistributionResponse struct {
	Error *string              `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *MonthlyDistribution `json:"data"`                                                          // The resource
}

type MonthlyDistributionQueryFilter struct {
	Name       string `form:"name"`                       // By name
	FiscalYear string `form:"fiscalYear"`                 // By fiscal year
	CostCenter string `form:"costCenter"`                 // By cost center
	Account    string `form:"account"`                    // By account
	Offset     uint   `form:"offset" filterField:"false"` // The offset of the first distribution returned. Defaults to 0.
	Limit      int    `form:"limit" filterField:"false"`  // Maximum number of distributions to return. Defaults to 50.
}

func (f MonthlyDistributionQueryFilter) model() models.MonthlyDistribution {
	return models.MonthlyDistribution{
		Name:       f.Name,
		FiscalYear: f.FiscalYear,
		CostCenter: f.CostCenter,
		Account:    f.Account,
	}
}
