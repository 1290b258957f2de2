package v1

import (
	"fmt"

	"github.com/budget-desk/backend/internal/models"
	"github.com/budget-desk/backend/internal/reallocation"
	"github.com/budget-desk/backend/internal/types"
	"github.com/gin-gonic/gin"
)

type BudgetReallocationLinks struct {
	Self      string `json:"self" example:"https://example.com/api/v1/budget-reallocations/5c1e2b3a-7d4f-4e8a-9b6c-1a2d3e4f5a6b"` // The reallocation itself
	OldBudget string `json:"oldBudget" example:"https://example.com/api/v1/budgets/0b8a3d1e-0e4e-4a3f-8e1a-3b6a4f1c2d3e"`         // The cancelled budget
	NewBudget string `json:"newBudget" example:"https://example.com/api/v1/budgets/9f1c2d3e-4a3f-4e0e-8e1a-0b8a3d1e3b6a"`         // The amended budget
}

type BudgetReallocation struct {
	models.BudgetReallocation
	Links BudgetReallocationLinks `json:"links"`
}

// newBudgetReallocation returns the API v1 representation of the resource
func newBudgetReallocation(c *gin.Context, model models.BudgetReallocation) BudgetReallocation {
	url := c.GetString(string(models.DBContextURL))

	return BudgetReallocation{
		BudgetReallocation: model,
		Links: BudgetReallocationLinks{
			Self:      fmt.Sprintf("%s/v1/budget-reallocations/%s", url, model.ID),
			OldBudget: fmt.Sprintf("%s/v1/budgets/%s", url, model.OldBudgetID),
			NewBudget: fmt.Sprintf("%s/v1/budgets/%s", url, model.NewBudgetID),
		},
	}
}

type BudgetReallocationListResponse struct {
	Data       []BudgetReallocation `json:"data"`                                                          // List of resources
	Error      *string              `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination          `json:"pagination"`                                                    // Pagination information
}

type BudgetReallocationResponse struct {
	Error        *string                    `json:"error" example:"budget limit exceeded"` // The error, if any occurred
	Data         *BudgetReallocation        `json:"data"`                                  // The resource
	Notification *reallocation.Notification `json:"notification,omitempty"`                // Advisory message when the master budget limit is exceeded
}

type BudgetReallocationQueryFilter struct {
	Company    string            `form:"company"`                    // By company
	CostCenter string            `form:"costCenter"`                 // By cost center
	FiscalYear string            `form:"fiscalYear"`                 // By fiscal year
	Account    string            `form:"account"`                    // By account
	Month      types.FiscalMonth `form:"month"`                      // By month
	Offset     uint              `form:"offset" filterField:"false"` // The offset of the first reallocation returned. Defaults to 0.
	Limit      int               `form:"limit" filterField:"false"`  // Maximum number of reallocations to return. Defaults to 50.
}

func (f BudgetReallocationQueryFilter) model() models.BudgetReallocation {
	return models.BudgetReallocation{
		Company:    f.Company,
		CostCenter: f.CostCenter,
		FiscalYear: f.FiscalYear,
		Account:    f.Account,
		Month:      f.Month,
	}
}
