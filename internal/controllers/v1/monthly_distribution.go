package v1

import (
	"net/http"

	"github.com/budget-desk/backend/internal/httputil"
	"github.com/budget-desk/backend/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// RegisterMonthlyDistributionRoutes registers the routes for monthly distributions with
// the RouterGroup that is passed.
func RegisterMonthlyDistributionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsMonthlyDistributionList)
		r.GET("", GetMonthlyDistributions)
		r.POST("", CreateMonthlyDistributions)
	}

	// Monthly distribution with ID
	{
		r.OPTIONS("/:id", OptionsMonthlyDistributionDetail)
		r.GET("/:id", GetMonthlyDistribution)
		r.DELETE("/:id", DeleteMonthlyDistribution)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Monthly Distributions
// @Success		204
// @Router			/v1/monthly-distributions [options]
func OptionsMonthlyDistributionList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Monthly Distributions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/monthly-distributions/{id} [options]
func OptionsMonthlyDistributionDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.MonthlyDistribution{}, httputil.OptionsGetDelete)
}

// @Summary		Create monthly distributions
// @Description	Creates new monthly distributions. The name is derived from fiscal year, cost center and account.
// @Tags			Monthly Distributions
// @Accept			json
// @Produce		json
// @Success		201						{object}	MonthlyDistributionCreateResponse
// @Failure		400						{object}	MonthlyDistributionCreateResponse
// @Failure		500						{object}	MonthlyDistributionCreateResponse
// @Param			monthlyDistributions	body		[]MonthlyDistributionEditable	true	"Monthly distributions"
// @Router			/v1/monthly-distributions [post]
func CreateMonthlyDistributions(c *gin.Context) {
	var distributions []MonthlyDistributionEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &distributions)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MonthlyDistributionCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := MonthlyDistributionCreateResponse{}

	for _, editable := range distributions {
		distribution := editable.model()
		err = models.DB.Create(&distribution).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		apiResource := newMonthlyDistribution(c, distribution)
		r.Data = append(r.Data, MonthlyDistributionResponse{Data: &apiResource})
	}

	c.JSON(status, r)
}

// @Summary		Get monthly distributions
// @Description	Returns a list of monthly distributions
// @Tags			Monthly Distributions
// @Produce		json
// @Success		200			{object}	MonthlyDistributionListResponse
// @Failure		400			{object}	MonthlyDistributionListResponse
// @Failure		500			{object}	MonthlyDistributionListResponse
// @Router			/v1/monthly-distributions [get]
// @Param			name		query	string	false	"Filter by name"
// @Param			fiscalYear	query	string	false	"Filter by fiscal year"
// @Param			costCenter	query	string	false	"Filter by cost center"
// @Param			account		query	string	false	"Filter by account"
// @Param			offset		query	uint	false	"The offset of the first distribution returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of distributions to return. Defaults to 50."
func GetMonthlyDistributions(c *gin.Context) {
	var filter MonthlyDistributionQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, MonthlyDistributionListResponse{
			Error: &s,
		})
		return
	}

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	where := filter.model()
	q := models.DB.
		Order("monthly_distributions.name ASC").
		Where(&where, queryFields...)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 distributions and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var distributions []models.MonthlyDistribution
	err := q.Session(&gorm.Session{}).Preload("Percentages").Find(&distributions).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MonthlyDistributionListResponse{
			Error: &e,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MonthlyDistributionListResponse{
			Error: &e,
		})
		return
	}

	data := make([]MonthlyDistribution, 0, len(distributions))
	for _, distribution := range distributions {
		data = append(data, newMonthlyDistribution(c, distribution))
	}

	c.JSON(http.StatusOK, MonthlyDistributionListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get monthly distribution
// @Description	Returns a specific monthly distribution with the percentages of all months
// @Tags			Monthly Distributions
// @Produce		json
// @Success		200	{object}	MonthlyDistributionResponse
// @Failure		400	{object}	MonthlyDistributionResponse
// @Failure		404	{object}	MonthlyDistributionResponse
// @Failure		500	{object}	MonthlyDistributionResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/monthly-distributions/{id} [get]
func GetMonthlyDistribution(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MonthlyDistributionResponse{
			Error: &e,
		})
		return
	}

	var distribution models.MonthlyDistribution
	err = models.DB.Preload("Percentages").First(&distribution, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MonthlyDistributionResponse{
			Error: &e,
		})
		return
	}

	apiResource := newMonthlyDistribution(c, distribution)
	c.JSON(http.StatusOK, MonthlyDistributionResponse{Data: &apiResource})
}

// @Summary		Delete monthly distribution
// @Description	Deletes a monthly distribution
// @Tags			Monthly Distributions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/monthly-distributions/{id} [delete]
func DeleteMonthlyDistribution(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var distribution models.MonthlyDistribution
	err = models.DB.First(&distribution, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	// Removed for good so that the name can be used again
	err = models.DB.Unscoped().Delete(&distribution).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
