package v1

import (
	"net/http"

	"github.com/budget-desk/backend/internal/httputil"
	"github.com/budget-desk/backend/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// RegisterMasterBudgetRoutes registers the routes for master budgets with
// the RouterGroup that is passed.
func RegisterMasterBudgetRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsMasterBudgetList)
		r.GET("", GetMasterBudgets)
		r.POST("", CreateMasterBudgets)
	}

	// Master budget with ID
	{
		r.OPTIONS("/:id", OptionsMasterBudgetDetail)
		r.GET("/:id", GetMasterBudget)
		r.DELETE("/:id", DeleteMasterBudget)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Master Budgets
// @Success		204
// @Router			/v1/master-budgets [options]
func OptionsMasterBudgetList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Master Budgets
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/master-budgets/{id} [options]
func OptionsMasterBudgetDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.MasterBudget{}, httputil.OptionsGetDelete)
}

// @Summary		Create master budgets
// @Description	Creates new master budgets with their department limits
// @Tags			Master Budgets
// @Accept			json
// @Produce		json
// @Success		201				{object}	MasterBudgetCreateResponse
// @Failure		400				{object}	MasterBudgetCreateResponse
// @Failure		500				{object}	MasterBudgetCreateResponse
// @Param			masterBudgets	body		[]MasterBudgetEditable	true	"Master budgets"
// @Router			/v1/master-budgets [post]
func CreateMasterBudgets(c *gin.Context) {
	var masterBudgets []MasterBudgetEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &masterBudgets)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MasterBudgetCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := MasterBudgetCreateResponse{}

	for _, editable := range masterBudgets {
		masterBudget := editable.model()
		err = models.DB.Create(&masterBudget).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		apiResource := newMasterBudget(c, masterBudget)
		r.Data = append(r.Data, MasterBudgetResponse{Data: &apiResource})
	}

	c.JSON(status, r)
}

// @Summary		Get master budgets
// @Description	Returns a list of master budgets
// @Tags			Master Budgets
// @Produce		json
// @Success		200			{object}	MasterBudgetListResponse
// @Failure		400			{object}	MasterBudgetListResponse
// @Failure		500			{object}	MasterBudgetListResponse
// @Router			/v1/master-budgets [get]
// @Param			company		query	string	false	"Filter by company"
// @Param			fiscalYear	query	string	false	"Filter by fiscal year"
// @Param			offset		query	uint	false	"The offset of the first master budget returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of master budgets to return. Defaults to 50."
func GetMasterBudgets(c *gin.Context) {
	var filter MasterBudgetQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, MasterBudgetListResponse{
			Error: &s,
		})
		return
	}

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	where := filter.model()
	q := models.DB.
		Order("master_budgets.fiscal_year DESC, master_budgets.company ASC").
		Where(&where, queryFields...)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 master budgets and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	// The departments are loaded in a separate session so that
	// counting does not preload them
	var masterBudgets []models.MasterBudget
	err := q.Session(&gorm.Session{}).Preload("Departments").Find(&masterBudgets).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MasterBudgetListResponse{
			Error: &e,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MasterBudgetListResponse{
			Error: &e,
		})
		return
	}

	data := make([]MasterBudget, 0, len(masterBudgets))
	for _, masterBudget := range masterBudgets {
		data = append(data, newMasterBudget(c, masterBudget))
	}

	c.JSON(http.StatusOK, MasterBudgetListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get master budget
// @Description	Returns a specific master budget
// @Tags			Master Budgets
// @Produce		json
// @Success		200	{object}	MasterBudgetResponse
// @Failure		400	{object}	MasterBudgetResponse
// @Failure		404	{object}	MasterBudgetResponse
// @Failure		500	{object}	MasterBudgetResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/master-budgets/{id} [get]
func GetMasterBudget(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MasterBudgetResponse{
			Error: &e,
		})
		return
	}

	var masterBudget models.MasterBudget
	err = models.DB.Preload("Departments").First(&masterBudget, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MasterBudgetResponse{
			Error: &e,
		})
		return
	}

	apiResource := newMasterBudget(c, masterBudget)
	c.JSON(http.StatusOK, MasterBudgetResponse{Data: &apiResource})
}

// @Summary		Delete master budget
// @Description	Deletes a master budget with all of its department limits
// @Tags			Master Budgets
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/master-budgets/{id} [delete]
func DeleteMasterBudget(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var masterBudget models.MasterBudget
	err = models.DB.First(&masterBudget, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	// Removed for good so that a new master budget can be created
	// for the company and fiscal year
	err = models.DB.Unscoped().Delete(&masterBudget).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
