package v1

import (
	"context"
	"net/http"
	"time"

	"github.com/budget-desk/backend/internal/httputil"
	"github.com/budget-desk/backend/internal/models"
	"github.com/budget-desk/backend/internal/reallocation"
	"github.com/gin-gonic/gin"
)

var (
	// sessions are the reallocation sessions open in this process
	sessions = reallocation.NewStore()

	// lookup is used by reallocation sessions. If nil, the database is used.
	lookup reallocation.Lookup

	// enforceLimit blocks the submission of reallocations that exceed the master budget limit
	enforceLimit = true
)

// Configure sets the budget lookup used by reallocation sessions, if
// submitting a reallocation over the master budget limit is an error and
// after how long without requests a session expires.
//
// A nil lookup uses the database. An idle timeout of zero keeps sessions
// until they are closed.
func Configure(l reallocation.Lookup, enforce bool, idle time.Duration) {
	lookup = l
	enforceLimit = enforce
	sessions.SetIdleTimeout(idle)
}

// ExpireSessions discards idle reallocation sessions every interval
// until ctx is done.
func ExpireSessions(ctx context.Context, interval time.Duration) {
	sessions.Run(ctx, interval)
}

func sessionLookup() reallocation.Lookup {
	if lookup == nil {
		return models.DatabaseLookup{}
	}
	return lookup
}

type Response struct {
	Links Links `json:"links"` // Links for the v1 API
}

type Links struct {
	MasterBudgets        string `json:"masterBudgets" example:"https://example.com/api/v1/master-budgets"`                // URL of master budget list endpoint
	Budgets              string `json:"budgets" example:"https://example.com/api/v1/budgets"`                             // URL of budget list endpoint
	MonthlyDistributions string `json:"monthlyDistributions" example:"https://example.com/api/v1/monthly-distributions"`  // URL of monthly distribution list endpoint
	BudgetLookup         string `json:"budgetLookup" example:"https://example.com/api/v1/budget-lookup"`                  // URL of the budget lookup endpoint
	ReallocationSessions string `json:"reallocationSessions" example:"https://example.com/api/v1/reallocation-sessions"`  // URL to open reallocation sessions
	BudgetReallocations  string `json:"budgetReallocations" example:"https://example.com/api/v1/budget-reallocations"`    // URL of budget reallocation list endpoint
	BudgetTemplate       string `json:"budgetTemplate" example:"https://example.com/api/v1/budget-template"`              // URL to download budget spreadsheet templates
	BudgetUploads        string `json:"budgetUploads" example:"https://example.com/api/v1/budget-uploads"`                // URL to upload budget spreadsheets
	BudgetUploadsPreview string `json:"budgetUploadsPreview" example:"https://example.com/api/v1/budget-uploads/preview"` // URL to preview budget spreadsheets
}

// RegisterRoutes registers all v1 routes with the RouterGroup that is passed.
func RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", Get)
	r.OPTIONS("", Options)

	RegisterMasterBudgetRoutes(r.Group("/master-budgets"))
	RegisterBudgetRoutes(r.Group("/budgets"))
	RegisterMonthlyDistributionRoutes(r.Group("/monthly-distributions"))
	RegisterBudgetLookupRoutes(r.Group("/budget-lookup"))
	RegisterReallocationSessionRoutes(r.Group("/reallocation-sessions"))
	RegisterBudgetReallocationRoutes(r.Group("/budget-reallocations"))
	RegisterBudgetUploadRoutes(r)
}

// @Summary		v1 API
// @Description	Returns general information about the v1 API
// @Tags			v1
// @Success		200	{object}	Response
// @Router			/v1 [get]
func Get(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, Response{
		Links: Links{
			MasterBudgets:        url + "/v1/master-budgets",
			Budgets:              url + "/v1/budgets",
			MonthlyDistributions: url + "/v1/monthly-distributions",
			BudgetLookup:         url + "/v1/budget-lookup",
			ReallocationSessions: url + "/v1/reallocation-sessions",
			BudgetReallocations:  url + "/v1/budget-reallocations",
			BudgetTemplate:       url + "/v1/budget-template",
			BudgetUploads:        url + "/v1/budget-uploads",
			BudgetUploadsPreview: url + "/v1/budget-uploads/preview",
		},
	})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			v1
// @Success		204
// @Router			/v1 [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}
