package v1_test

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	v1 "github.com/budget-desk/backend/internal/controllers/v1"
	"github.com/budget-desk/backend/internal/importer/parser/budgetxlsx"
	"github.com/budget-desk/backend/internal/models"
	"github.com/budget-desk/backend/internal/types"
	"github.com/budget-desk/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// budgetSheet returns a budget spreadsheet with the rows below the month header.
func budgetSheet(t *testing.T, rows ...[]interface{}) []byte {
	f, err := budgetxlsx.Template(nil)
	require.Nil(t, err)
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.Nil(t, err)
		require.Nil(t, f.SetSheetRow(budgetxlsx.SheetName, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.Nil(t, err)
	return buf.Bytes()
}

func uploadQuery(costCenter string) string {
	return url.Values{
		"company":    {testCompany},
		"costCenter": {costCenter},
		"fiscalYear": {testFiscalYear},
	}.Encode()
}

func (suite *TestSuiteStandard) TestBudgetTemplate() {
	_ = createReallocationFixture(suite.T())

	tests := []struct {
		name     string
		accounts string
		expected []string
	}{
		{"All accounts", "", []string{testOffice, testAccount}},
		{"Glob", "Travel*", []string{testAccount}},
		{"No match", "Rent*", []string{}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			query := url.Values{"company": {testCompany}}
			if tt.accounts != "" {
				query.Set("accounts", tt.accounts)
			}

			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/budget-template?%s", query.Encode()), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)
			assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", r.Header().Get("Content-Type"))
			assert.Equal(t, `attachment; filename="Budget_Format_Acme Ltd.xlsx"`, r.Header().Get("Content-Disposition"))

			f, err := excelize.OpenReader(bytes.NewReader(r.Body.Bytes()))
			require.Nil(t, err)
			defer f.Close()

			rows, err := f.GetRows(budgetxlsx.SheetName)
			require.Nil(t, err)
			require.Len(t, rows, len(tt.expected)+1)
			assert.Equal(t, "Acc Name", rows[0][0])
			assert.Equal(t, "April", rows[0][1])
			assert.Equal(t, "March", rows[0][12])

			accounts := make([]string, 0, len(rows)-1)
			for _, row := range rows[1:] {
				accounts = append(accounts, row[0])
			}
			assert.Equal(t, tt.expected, accounts)
		})
	}

	suite.T().Run("Company missing", func(t *testing.T) {
		r := test.Request(t, http.MethodGet, "http://example.com/v1/budget-template", "")
		test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
	})
}

func (suite *TestSuiteStandard) TestBudgetUploadPreview() {
	body, headers := test.UploadFile(suite.T(), "Budget_Format_Acme.xlsx", budgetSheet(suite.T(),
		[]interface{}{"Rent - AL", 100, 100, 100},
		[]interface{}{"Travel Expenses - AL", 50, "n/a", -20},
	))

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/budget-uploads/preview", body, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.BudgetUploadPreviewResponse
	test.DecodeResponse(suite.T(), &r, &response)

	preview := response.Data
	require.NotNil(suite.T(), preview)
	assert.True(suite.T(), preview.HasErrors)
	require.Len(suite.T(), preview.Rows, 2)
	require.Len(suite.T(), preview.Errors, 2)

	rent := preview.Rows[0]
	assert.Equal(suite.T(), "Rent - AL", rent.Account)
	assert.Equal(suite.T(), 2, rent.Line)
	require.Len(suite.T(), rent.Months, 12)
	assert.Equal(suite.T(), types.FiscalMonth(4), rent.Months[0].Month)
	assert.True(suite.T(), decimal.NewFromInt(300).Equal(rent.Total))

	assert.Equal(suite.T(), "May", preview.Errors[0].Month)
	assert.Equal(suite.T(), "n/a", preview.Errors[0].Value)
	assert.Equal(suite.T(), 3, preview.Errors[0].Row)
}

func (suite *TestSuiteStandard) TestBudgetUploadPreviewErrors() {
	tests := []struct {
		name     string
		fileName string
		content  []byte
		err      string
	}{
		{"Wrong suffix", "budget.csv", []byte("Acc Name,April"), v1.ErrWrongFileSuffix.Error()},
		{"Not a spreadsheet", "budget.xlsx", []byte("Acc Name,April"), budgetxlsx.ErrInvalidFile.Error()},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			body, headers := test.UploadFile(t, tt.fileName, tt.content)

			r := test.Request(t, http.MethodPost, "http://example.com/v1/budget-uploads/preview", body, headers)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

			var response v1.BudgetUploadPreviewResponse
			test.DecodeResponse(t, &r, &response)
			assert.Contains(t, *response.Error, tt.err)
		})
	}

	suite.T().Run("No file", func(t *testing.T) {
		r := test.Request(t, http.MethodPost, "http://example.com/v1/budget-uploads/preview", "")
		test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

		var response v1.BudgetUploadPreviewResponse
		test.DecodeResponse(t, &r, &response)
		assert.Equal(t, v1.ErrNoFilePost.Error(), *response.Error)
	})
}

func (suite *TestSuiteStandard) TestBudgetUpload() {
	fixture := createReallocationFixture(suite.T())

	body, headers := test.UploadFile(suite.T(), "budget.xlsx", budgetSheet(suite.T(),
		[]interface{}{"Rent - AL", 100, 100, 100, 100},
		[]interface{}{"Unused - AL"},
	))

	r := test.Request(suite.T(), http.MethodPost, fmt.Sprintf("http://example.com/v1/budget-uploads?%s", uploadQuery(testCostCenter)), body, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response v1.BudgetUploadResponse
	test.DecodeResponse(suite.T(), &r, &response)

	result := response.Data
	require.NotNil(suite.T(), result)
	assert.Equal(suite.T(), fixture.Budget.ID, result.Budget.ID, "Accounts must be added to the submitted budget")
	assert.Len(suite.T(), result.Budget.Accounts, 3)
	assert.True(suite.T(), decimal.NewFromInt(20400).Equal(result.Budget.Total))
	assert.Empty(suite.T(), result.SkippedAccounts)

	require.Len(suite.T(), result.Distributions, 1)
	distribution := result.Distributions[0]
	assert.Equal(suite.T(), "2024-2025 - Marketing - AL - Rent - AL", distribution.Name)
	assert.True(suite.T(), decimal.NewFromInt(25).Equal(distribution.Percentages[0].Percentage), distribution.Percentages[0].Percentage.String())
	assert.True(suite.T(), distribution.Percentages[4].Percentage.IsZero())

	// The uploaded budget can be looked up
	query := lookupQuery("Rent - AL", "May")
	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/budget-lookup?%s", query.Encode()), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var lookup v1.BudgetLookupResponse
	test.DecodeResponse(suite.T(), &r, &lookup)
	assert.True(suite.T(), decimal.NewFromInt(100).Equal(lookup.Data.CurrentBudget), lookup.Data.CurrentBudget.String())
	assert.True(suite.T(), decimal.NewFromInt(20400).Equal(lookup.Data.TotalAllocatedBudget))
}

func (suite *TestSuiteStandard) TestBudgetUploadErrors() {
	_ = createReallocationFixture(suite.T())

	tests := []struct {
		name       string
		costCenter string
		rows       [][]interface{}
		err        error
		cellErrors int
	}{
		{"Limit exceeded", testCostCenter, [][]interface{}{{"Rent - AL", 400, 200}}, models.ErrMasterBudgetLimitExceeded, 0},
		{"No master budget", "Sales - AL", [][]interface{}{{"Rent - AL", 400}}, models.ErrNoMasterBudget, 0},
		{"Invalid cells", testCostCenter, [][]interface{}{{"Rent - AL", "lots", 10, "some"}}, nil, 2},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			body, headers := test.UploadFile(t, "budget.xlsx", budgetSheet(t, tt.rows...))

			r := test.Request(t, http.MethodPost, fmt.Sprintf("http://example.com/v1/budget-uploads?%s", uploadQuery(tt.costCenter)), body, headers)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

			var response v1.BudgetUploadResponse
			test.DecodeResponse(t, &r, &response)
			assert.Nil(t, response.Data)
			assert.Len(t, response.Errors, tt.cellErrors)

			if tt.err != nil {
				assert.Contains(t, *response.Error, tt.err.Error())
			}
		})
	}

	suite.T().Run("Query missing", func(t *testing.T) {
		body, headers := test.UploadFile(t, "budget.xlsx", budgetSheet(t, []interface{}{"Rent - AL", 1}))

		r := test.Request(t, http.MethodPost, "http://example.com/v1/budget-uploads?company=Acme", body, headers)
		test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
	})

	// Nothing was created
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/monthly-distributions?account=Rent+-+AL", "")
	var distributions v1.MonthlyDistributionListResponse
	test.DecodeResponse(suite.T(), &r, &distributions)
	assert.Len(suite.T(), distributions.Data, 0)
}
