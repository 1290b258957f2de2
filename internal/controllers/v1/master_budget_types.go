package v1

import (
	"fmt"

	"github.com/budget-desk/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type MasterBudgetDepartmentEditable struct {
	CostCenter string          `json:"costCenter" example:"Marketing - AL"` // Cost center the limit applies to
	Budget     decimal.Decimal `json:"budget" example:"20500"`              // Master budget limit of the cost center
}

type MasterBudgetEditable struct {
	Company     string                           `json:"company" example:"Acme Ltd"`                        // Company the master budget is for
	FiscalYear  string                           `json:"fiscalYear" example:"2024-2025"`                    // Fiscal year, starting in April
	TotalBudget decimal.NullDecimal              `json:"totalBudget" swaggertype:"string" example:"100000"` // Ceiling for all departments together. Not checked when null
	Departments []MasterBudgetDepartmentEditable `json:"departments"`                                       // Limits per cost center
}

// model returns the database resource for the API representation of the editable fields
func (editable MasterBudgetEditable) model() models.MasterBudget {
	departments := make([]models.MasterBudgetDepartment, 0, len(editable.Departments))
	for _, d := range editable.Departments {
		departments = append(departments, models.MasterBudgetDepartment{
			CostCenter: d.CostCenter,
			Budget:     d.Budget,
		})
	}

	return models.MasterBudget{
		MasterBudgetEditable: models.MasterBudgetEditable{
			Company:     editable.Company,
			FiscalYear:  editable.FiscalYear,
			TotalBudget: editable.TotalBudget,
		},
		Departments: departments,
	}
}

type MasterBudgetLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/master-budgets/3b1ea324-d438-4419-882a-2fc91d71772f"` // The master budget itself
}

type MasterBudget struct {
	models.DefaultModel
	MasterBudgetEditable
	Allocated decimal.Decimal   `json:"allocated" example:"50500"` // Sum of all department budgets
	Links     MasterBudgetLinks `json:"links"`
}

// newMasterBudget returns the API v1 representation of the resource
func newMasterBudget(c *gin.Context, model models.MasterBudget) MasterBudget {
	url := c.GetString(string(models.DBContextURL))

	departments := make([]MasterBudgetDepartmentEditable, 0, len(model.Departments))
	for _, d := range model.Departments {
		departments = append(departments, MasterBudgetDepartmentEditable{
			CostCenter: d.CostCenter,
			Budget:     d.Budget,
		})
	}

	return MasterBudget{
		DefaultModel: model.DefaultModel,
		MasterBudgetEditable: MasterBudgetEditable{
			Company:     model.Company,
			FiscalYear:  model.FiscalYear,
			TotalBudget: model.TotalBudget,
			Departments: departments,
		},
		Allocated: model.Allocated(),
		Links: MasterBudgetLinks{
			Self: fmt.Sprintf("%s/v1/master-budgets/%s", url, model.ID),
		},
	}
}

type MasterBudgetListResponse struct {
	Data       []MasterBudget `json:"data"`                                                          // List of resources
	Error      *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination    `json:"pagination"`                                                    // Pagination information
}

type MasterBudgetCreateResponse struct {
	Error *string                `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []MasterBudgetResponse `json:"data"`                                                          // List of created resources
}

func (m *MasterBudgetCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	m.Data = append(m.Data, MasterBudgetResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type MasterBudgetResponse struct {
	Error *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *MasterBudget `json:"data"`                                                          // The resource
}

type MasterBudgetQueryFilter struct {
	Company    string `form:"company"`                    // By company
	FiscalYear string `form:"fiscalYear"`                 // By fiscal year
	Offset     uint   `form:"offset" filterField:"false"` // The offset of the first master budget returned. Defaults to 0.
	Limit      int    `form:"limit" filterField:"false"`  // Maximum number of master budgets to return. Defaults to 50.
}

func (f MasterBudgetQueryFilter) model() models.MasterBudget {
	return models.MasterBudget{
		MasterBudgetEditable: models.MasterBudgetEditable{
			Company:    f.Company,
			FiscalYear: f.FiscalYear,
		},
	}
}
