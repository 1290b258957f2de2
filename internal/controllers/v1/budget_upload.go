package v1

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/budget-desk/backend/internal/httputil"
	"github.com/budget-desk/backend/internal/importer"
	"github.com/budget-desk/backend/internal/importer/parser/budgetxlsx"
	"github.com/budget-desk/backend/internal/models"
	"github.com/budget-desk/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/ryanuber/go-glob"
	"github.com/shopspring/decimal"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type BudgetTemplateQuery struct {
	Company  string `form:"company" binding:"required"` // Company whose accounts are listed
	Accounts string `form:"accounts"`                   // Glob pattern for the accounts to list, e.g. "Travel*". Defaults to all accounts.
}

type BudgetUploadQuery struct {
	Company    string `form:"company" binding:"required"`    // Company of the budget
	CostCenter string `form:"costCenter" binding:"required"` // Cost center of the budget
	FiscalYear string `form:"fiscalYear" binding:"required"` // Fiscal year of the budget
}

type BudgetUploadMonth struct {
	Month  types.FiscalMonth `json:"month" swaggertype:"string" example:"June"` // Month of the column
	Amount decimal.Decimal   `json:"amount" example:"250"`                      // Budget for the month
}

type BudgetUploadRow struct {
	Line    int                 `json:"line" example:"2"`                       // Row number in the spreadsheet
	Account string              `json:"account" example:"Travel Expenses - AL"` // Account of the row
	Months  []BudgetUploadMonth `json:"months"`                                 // Budget per month, in the order of the columns
	Total   decimal.Decimal     `json:"total" example:"3000"`                   // Annual budget of the account
}

type BudgetUploadPreview struct {
	Rows      []BudgetUploadRow    `json:"rows"`                      // Parsed rows
	Errors    []importer.CellError `json:"errors"`                    // Cells that do not contain a valid amount
	HasErrors bool                 `json:"hasErrors" example:"false"` // If any cell could not be parsed
	Total     decimal.Decimal      `json:"total" example:"12000"`     // Sum of all rows
}

// newBudgetUploadPreview returns the API v1 representation of a parsed sheet
func newBudgetUploadPreview(sheet importer.Sheet) BudgetUploadPreview {
	total := decimal.Zero
	rows := make([]BudgetUploadRow, 0, len(sheet.Rows))
	for _, r := range sheet.Rows {
		months := make([]BudgetUploadMonth, 0, len(sheet.Months))
		for _, m := range sheet.Months {
			months = append(months, BudgetUploadMonth{Month: m, Amount: r.Amounts[m]})
		}

		rows = append(rows, BudgetUploadRow{
			Line:    r.Line,
			Account: r.Account,
			Months:  months,
			Total:   r.Total(),
		})
		total = total.Add(r.Total())
	}

	errs := sheet.Errors
	if errs == nil {
		errs = make([]importer.CellError, 0)
	}

	return BudgetUploadPreview{
		Rows:      rows,
		Errors:    errs,
		HasErrors: sheet.HasErrors(),
		Total:     total,
	}
}

type BudgetUploadPreviewResponse struct {
	Error *string              `json:"error" example:"the file is not a valid xlsx file"` // The error, if any occurred
	Data  *BudgetUploadPreview `json:"data"`                                              // The parsed sheet
}

type BudgetUploadResult struct {
	Budget               Budget                `json:"budget"`               // Submitted budget the accounts were added to
	Distributions        []MonthlyDistribution `json:"distributions"`        // Created monthly distributions
	SkippedDistributions []string              `json:"skippedDistributions"` // Monthly distributions that already existed
	SkippedAccounts      []string              `json:"skippedAccounts"`      // Accounts that already were in the budget
}

type BudgetUploadResponse struct {
	Error  *string              `json:"error" example:"budget limit exceeded"` // The error, if any occurred
	Errors []importer.CellError `json:"errors,omitempty"`                      // Cells that do not contain a valid amount
	Data   *BudgetUploadResult  `json:"data"`                                  // What was created
}

// RegisterBudgetUploadRoutes registers the routes for budget spreadsheets.
func RegisterBudgetUploadRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("/budget-template", OptionsBudgetTemplate)
		r.GET("/budget-template", GetBudgetTemplate)
	}

	{
		r.OPTIONS("/budget-uploads", OptionsBudgetUpload)
		r.POST("/budget-uploads", CreateBudgetUpload)
		r.OPTIONS("/budget-uploads/preview", OptionsBudgetUploadPreview)
		r.POST("/budget-uploads/preview", CreateBudgetUploadPreview)
	}
}

// getUploadedFile returns the form file and handles potential errors.
func getUploadedFile(c *gin.Context, suffix string) (multipart.File, error) {
	formFile, err := c.FormFile("file")
	if formFile == nil {
		return nil, ErrNoFilePost
	}

	if err != nil {
		return nil, err
	}

	if !strings.HasSuffix(strings.ToLower(formFile.Filename), suffix) {
		return nil, fmt.Errorf("%w: %s", ErrWrongFileSuffix, suffix)
	}

	return formFile.Open()
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budget Uploads
// @Success		204
// @Router			/v1/budget-template [options]
func OptionsBudgetTemplate(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budget Uploads
// @Success		204
// @Router			/v1/budget-uploads [options]
func OptionsBudgetUpload(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budget Uploads
// @Success		204
// @Router			/v1/budget-uploads/preview [options]
func OptionsBudgetUploadPreview(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Budget template
// @Description	Returns a spreadsheet to fill in a budget. It has one column per month and one row per account the company has budgeted before.
// @Tags			Budget Uploads
// @Produce		application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success		200
// @Failure		400			{object}	httpError
// @Failure		500			{object}	httpError
// @Param			company		query		string	true	"Company whose accounts are listed"
// @Param			accounts	query		string	false	"Glob pattern for the accounts to list, e.g. Travel*"
// @Router			/v1/budget-template [get]
func GetBudgetTemplate(c *gin.Context) {
	var query BudgetTemplateQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}

	known, err := models.KnownAccounts(models.DB, query.Company)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	pattern := query.Accounts
	if pattern == "" {
		pattern = "*"
	}

	accounts := make([]string, 0, len(known))
	for _, account := range known {
		if glob.Glob(pattern, account) {
			accounts = append(accounts, account)
		}
	}

	f, err := budgetxlsx.Template(accounts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, httpError{
			Error: err.Error(),
		})
		return
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		c.JSON(http.StatusInternalServerError, httpError{
			Error: err.Error(),
		})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="Budget_Format_%s.xlsx"`, strings.ReplaceAll(query.Company, `"`, "")))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// @Summary		Preview budget upload
// @Description	Parses a budget spreadsheet and returns the budget per account and month together with all cells that could not be parsed. Nothing is stored.
// @Tags			Budget Uploads
// @Accept			multipart/form-data
// @Produce		json
// @Success		200		{object}	BudgetUploadPreviewResponse
// @Failure		400		{object}	BudgetUploadPreviewResponse
// @Param			file	formData	file	true	"Budget spreadsheet"
// @Router			/v1/budget-uploads/preview [post]
func CreateBudgetUploadPreview(c *gin.Context) {
	f, err := getUploadedFile(c, ".xlsx")
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetUploadPreviewResponse{
			Error: &e,
		})
		return
	}
	defer f.Close()

	sheet, err := budgetxlsx.Parse(f)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, BudgetUploadPreviewResponse{
			Error: &e,
		})
		return
	}

	preview := newBudgetUploadPreview(sheet)
	c.JSON(http.StatusOK, BudgetUploadPreviewResponse{Data: &preview})
}

// @Summary		Upload budget
// @Description	Creates a monthly distribution per account and adds the accounts to the submitted budget of the cost center.
// @Description	If there is no submitted budget, one is created.
// @Description
// @Description	The upload is rejected if any cell cannot be parsed, if there is no master budget for the cost center or if the master budget limit would be exceeded.
// @Tags			Budget Uploads
// @Accept			multipart/form-data
// @Produce		json
// @Success		201			{object}	BudgetUploadResponse
// @Failure		400			{object}	BudgetUploadResponse
// @Failure		500			{object}	BudgetUploadResponse
// @Param			file		formData	file				true	"Budget spreadsheet"
// @Param			company		query		BudgetUploadQuery	false	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budget-uploads [post]
func CreateBudgetUpload(c *gin.Context) {
	var query BudgetUploadQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}

	f, err := getUploadedFile(c, ".xlsx")
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetUploadResponse{
			Error: &e,
		})
		return
	}
	defer f.Close()

	sheet, err := budgetxlsx.Parse(f)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, BudgetUploadResponse{
			Error: &e,
		})
		return
	}

	if sheet.HasErrors() {
		e := fmt.Sprintf("%d cells do not contain a valid amount. The first one is %s", len(sheet.Errors), sheet.Errors[0].Error())
		c.JSON(http.StatusBadRequest, BudgetUploadResponse{
			Error:  &e,
			Errors: sheet.Errors,
		})
		return
	}

	result, err := importer.Create(models.DB, importer.ParsedResources{
		Company:    query.Company,
		CostCenter: query.CostCenter,
		FiscalYear: query.FiscalYear,
		Rows:       sheet.Rows,
	})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetUploadResponse{
			Error: &e,
		})
		return
	}

	// The budget is loaded again to include the accounts that were there before
	var budget models.Budget
	err = models.DB.Preload("Accounts").First(&budget, result.Budget.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetUploadResponse{
			Error: &e,
		})
		return
	}

	distributions := make([]MonthlyDistribution, 0, len(result.Distributions))
	for _, d := range result.Distributions {
		distributions = append(distributions, newMonthlyDistribution(c, d))
	}

	c.JSON(http.StatusCreated, BudgetUploadResponse{
		Data: &BudgetUploadResult{
			Budget:               newBudget(c, budget),
			Distributions:        distributions,
			SkippedDistributions: emptyIfNil(result.SkippedDistributions),
			SkippedAccounts:      emptyIfNil(result.SkippedAccounts),
		},
	})
}

// emptyIfNil returns an empty slice for nil so that it is marshalled to [] instead of null.
func emptyIfNil(s []string) []string {
	if s == nil {
		return make([]string, 0)
	}
	return s
}
