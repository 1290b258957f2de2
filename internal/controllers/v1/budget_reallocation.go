package v1

import (
	"net/http"

	"github.com/budget-desk/backend/internal/httputil"
	"github.com/budget-desk/backend/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterBudgetReallocationRoutes registers the routes for budget reallocations with
// the RouterGroup that is passed.
//
// Reallocations are created by submitting a reallocation session.
func RegisterBudgetReallocationRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsBudgetReallocationList)
		r.GET("", GetBudgetReallocations)
	}

	// Reallocation with ID
	{
		r.OPTIONS("/:id", OptionsBudgetReallocationDetail)
		r.GET("/:id", GetBudgetReallocation)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budget Reallocations
// @Success		204
// @Router			/v1/budget-reallocations [options]
func OptionsBudgetReallocationList(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budget Reallocations
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budget-reallocations/{id} [options]
func OptionsBudgetReallocationDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.BudgetReallocation{}, httputil.OptionsGet)
}

// @Summary		Get budget reallocations
// @Description	Returns a list of approved budget reallocations, newest first
// @Tags			Budget Reallocations
// @Produce		json
// @Success		200			{object}	BudgetReallocationListResponse
// @Failure		400			{object}	BudgetReallocationListResponse
// @Failure		500			{object}	BudgetReallocationListResponse
// @Router			/v1/budget-reallocations [get]
// @Param			company		query	string	false	"Filter by company"
// @Param			costCenter	query	string	false	"Filter by cost center"
// @Param			fiscalYear	query	string	false	"Filter by fiscal year"
// @Param			account		query	string	false	"Filter by account"
// @Param			month		query	string	false	"Filter by month"
// @Param			offset		query	uint	false	"The offset of the first reallocation returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of reallocations to return. Defaults to 50."
func GetBudgetReallocations(c *gin.Context) {
	var filter BudgetReallocationQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, BudgetReallocationListResponse{
			Error: &s,
		})
		return
	}

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	where := filter.model()
	q := models.DB.
		Order("approved_at DESC, created_at DESC").
		Where(&where, queryFields...)

	q = q.Offset(int(filter.Offset))

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var reallocations []models.BudgetReallocation
	err := q.Find(&reallocations).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetReallocationListResponse{
			Error: &e,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetReallocationListResponse{
			Error: &e,
		})
		return
	}

	data := make([]BudgetReallocation, 0, len(reallocations))
	for _, r := range reallocations {
		data = append(data, newBudgetReallocation(c, r))
	}

	c.JSON(http.StatusOK, BudgetReallocationListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get budget reallocation
// @Description	Returns a specific budget reallocation
// @Tags			Budget Reallocations
// @Produce		json
// @Success		200	{object}	BudgetReallocationResponse
// @Failure		400	{object}	BudgetReallocationResponse
// @Failure		404	{object}	BudgetReallocationResponse
// @Failure		500	{object}	BudgetReallocationResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budget-reallocations/{id} [get]
func GetBudgetReallocation(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetReallocationResponse{
			Error: &e,
		})
		return
	}

	var reallocation models.BudgetReallocation
	err = models.DB.First(&reallocation, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetReallocationResponse{
			Error: &e,
		})
		return
	}

	apiResource := newBudgetReallocation(c, reallocation)
	c.JSON(http.StatusOK, BudgetReallocationResponse{Data: &apiResource})
}
