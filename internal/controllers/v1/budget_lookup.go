package v1

import (
	"net/http"

	"github.com/budget-desk/backend/internal/httputil"
	"github.com/budget-desk/backend/internal/models"
	"github.com/budget-desk/backend/internal/reallocation"
	"github.com/budget-desk/backend/internal/types"
	"github.com/gin-gonic/gin"
)

type BudgetLookupQuery struct {
	Company    string            `form:"company" binding:"required"`                    // Company of the budget
	CostCenter string            `form:"costCenter" binding:"required"`                 // Cost center of the budget
	FiscalYear string            `form:"fiscalYear" binding:"required"`                 // Fiscal year of the budget
	Account    string            `form:"account" binding:"required"`                    // Account to look up
	Month      types.FiscalMonth `form:"month" binding:"required" swaggertype:"string"` // Month to look up
}

func (q BudgetLookupQuery) key() reallocation.Key {
	return reallocation.Key{
		Company:    q.Company,
		CostCenter: q.CostCenter,
		FiscalYear: q.FiscalYear,
		Account:    q.Account,
		Month:      q.Month,
	}
}

type BudgetLookupResponse struct {
	Error *string               `json:"error" example:"there is no budget data for this selection"` // The error, if any occurred
	Data  *reallocation.Figures `json:"data"`                                                       // The budget figures
}

func RegisterBudgetLookupRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsBudgetLookup)
	r.GET("", GetBudgetLookup)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budget Lookup
// @Success		204
// @Router			/v1/budget-lookup [options]
func OptionsBudgetLookup(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Look up budget figures
// @Description	Returns the budget of an account in a month together with the annual budget, the master budget limit and the total allocated budget of the cost center
// @Tags			Budget Lookup
// @Produce		json
// @Success		200			{object}	BudgetLookupResponse
// @Failure		400			{object}	BudgetLookupResponse
// @Failure		404			{object}	BudgetLookupResponse
// @Failure		500			{object}	BudgetLookupResponse
// @Param			company		query		string	true	"Company"
// @Param			costCenter	query		string	true	"Cost center"
// @Param			fiscalYear	query		string	true	"Fiscal year"
// @Param			account		query		string	true	"Account"
// @Param			month		query		string	true	"Month, e.g. June"
// @Router			/v1/budget-lookup [get]
func GetBudgetLookup(c *gin.Context) {
	var query BudgetLookupQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}

	figures, err := models.DatabaseLookup{}.LookupBudget(c.Request.Context(), query.key())
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetLookupResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, BudgetLookupResponse{Data: &figures})
}
