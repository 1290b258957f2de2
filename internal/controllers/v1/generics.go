package v1

import (
	"github.com/budget-desk/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// resourceOptionsDetail returns the response for an HTTP OPTIONS request for a specific
// resource stored in the database. allowed writes the allow header.
func resourceOptionsDetail[R models.MasterBudget | models.Budget | models.MonthlyDistribution | models.BudgetReallocation](c *gin.Context, resource R, allowed func(*gin.Context)) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&resource, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	allowed(c)
}
