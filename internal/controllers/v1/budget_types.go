package v1

import (
	"fmt"

	"github.com/budget-desk/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BudgetAccountEditable struct {
	Account string          `json:"account" example:"Travel Expenses - AL"` // Expense account
	Amount  decimal.Decimal `json:"amount" example:"5000"`                  // Annual budget of the account
}

type BudgetEditable struct {
	Company         string                  `json:"company" example:"Acme Ltd"`                                                            // Company the budget belongs to
	CostCenter      string                  `json:"costCenter" example:"Marketing - AL"`                                                   // Cost center of the budget
	FiscalYear      string                  `json:"fiscalYear" example:"2024-2025"`                                                        // Fiscal year of the budget
	BudgetAgainst   models.BudgetAgainst    `json:"budgetAgainst" example:"COST_CENTER" enums:"COST_CENTER,PROJECT" default:"COST_CENTER"` // What the budget is for
	Status          models.BudgetStatus     `json:"status" example:"SUBMITTED" enums:"DRAFT,SUBMITTED" default:"DRAFT"`                    // Submitted budgets are used for reallocations
	BudgetAllocated decimal.NullDecimal     `json:"budgetAllocated" swaggertype:"string" example:"20500"`                                  // Upper bound for the sum of the accounts. Taken from the master budget for cost center budgets if not set
	Accounts        []BudgetAccountEditable `json:"accounts"`                                                                              // Annual budget per account
}

// model returns the database resource for the API representation of the editable fields
func (editable BudgetEditable) model() models.Budget {
	accounts := make([]models.BudgetAccount, 0, len(editable.Accounts))
	for _, a := range editable.Accounts {
		accounts = append(accounts, models.BudgetAccount{
			Account: a.Account,
			Amount:  a.Amount,
		})
	}

	return models.Budget{
		BudgetEditable: models.BudgetEditable{
			Company:         editable.Company,
			CostCenter:      editable.CostCenter,
			FiscalYear:      editable.FiscalYear,
			BudgetAgainst:   editable.BudgetAgainst,
			Status:          editable.Status,
			BudgetAllocated: editable.BudgetAllocated,
		},
		Accounts: accounts,
	}
}

type BudgetLinks struct {
	Self        string `json:"self" example:"https://example.com/api/v1/budgets/550dc009-cea6-4c12-b2a5-03446eb7b7cf"`        // The budget itself
	AmendedFrom string `json:"amendedFrom" example:"https://example.com/api/v1/budgets/2a8e4bd2-3fb6-4c24-b1f5-0f8e4f32a1d7"` // The budget this one replaces. Empty if it is an original budget
}

type Budget struct {
	models.DefaultModel
	BudgetEditable
	AmendedFromID *uuid.UUID      `json:"amendedFromId" example:"2a8e4bd2-3fb6-4c24-b1f5-0f8e4f32a1d7"` // The budget this one replaces after a reallocation
	Total         decimal.Decimal `json:"total" example:"20000"`                                        // Sum of all account budgets
	Links         BudgetLinks     `json:"links"`
}

// newBudget returns the API v1 representation of the resource
func newBudget(c *gin.Context, model models.Budget) Budget {
	url := c.GetString(string(models.DBContextURL))

	accounts := make([]BudgetAccountEditable, 0, len(model.Accounts))
	for _, a := range model.Accounts {
		accounts = append(accounts, BudgetAccountEditable{
			Account: a.Account,
			Amount:  a.Amount,
		})
	}

	links := BudgetLinks{
		Self: fmt.Sprintf("%s/v1/budgets/%s", url, model.ID),
	}

	if model.AmendedFromID != nil {
		links.AmendedFrom = fmt.Sprintf("%s/v1/budgets/%s", url, model.AmendedFromID)
	}

	return Budget{
		DefaultModel: model.DefaultModel,
		BudgetEditable: BudgetEditable{
			Company:         model.Company,
			CostCenter:      model.CostCenter,
			FiscalYear:      model.FiscalYear,
			BudgetAgainst:   model.BudgetAgainst,
			Status:          model.Status,
			BudgetAllocated: model.BudgetAllocated,
			Accounts:        accounts,
		},
		AmendedFromID: model.AmendedFromID,
		Total:         model.Total(),
		Links:         links,
	}
}

type BudgetListResponse struct {
	Data       []Budget    `json:"data"`                                                          // List of resources
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type BudgetCreateResponse struct {
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []BudgetResponse `json:"data"`                                                          // List of created resources
}

func (b *BudgetCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	b.Data = append(b.Data, BudgetResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type BudgetResponse struct {
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *Budget `json:"data"`                                                          // The resource
}

type BudgetQueryFilter struct {
	Company    string              `form:"company"`                     // By company
	CostCenter string              `form:"costCenter"`                  // By cost center
	FiscalYear string              `form:"fiscalYear"`                  // By fiscal year
	Status     models.BudgetStatus `form:"status"`                      // By status
	Account    string              `form:"account" filterField:"false"` // Budgets containing this account
	Offset     uint                `form:"offset" filterField:"false"`  // The offset of the first budget returned. Defaults to 0.
	Limit      int                 `form:"limit" filterField:"false"`   // Maximum number of budgets to return. Defaults to 50.
}

func (f BudgetQueryFilter) model() models.Budget {
	return models.Budget{
		BudgetEditable: models.BudgetEditable{
			Company:    f.Company,
			CostCenter: f.CostCenter,
			FiscalYear: f.FiscalYear,
			Status:     f.Status,
		},
	}
}

type BudgetAllocatedQuery struct {
	Company    string `form:"company" binding:"required"`    // Company of the master budget
	CostCenter string `form:"costCenter" binding:"required"` // Cost center of the department
	FiscalYear string `form:"fiscalYear" binding:"required"` // Fiscal year of the master budget
}

type BudgetAllocatedResponse struct {
	Success bool                `json:"success" example:"true"`                              // If a master budget was found
	Message string              `json:"message" example:"Budget allocated found: 20,500.00"` // Readable result
	Budget  decimal.NullDecimal `json:"budget" swaggertype:"string" example:"20500"`         // Master budget limit of the cost center, null if there is none
}
