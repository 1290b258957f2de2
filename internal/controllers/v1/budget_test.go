package v1_test

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"

	v1 "github.com/budget-desk/backend/internal/controllers/v1"
	"github.com/budget-desk/backend/internal/models"
	"github.com/budget-desk/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestBudgetsDBClosed() {
	suite.CloseDB()

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/budgets", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusInternalServerError)

	var response v1.BudgetListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Contains(suite.T(), *response.Error, models.ErrGeneral.Error())
}

func (suite *TestSuiteStandard) TestBudgetsCreate() {
	createTestMasterBudget(suite.T(), v1.MasterBudgetEditable{
		Company: testCompany,
		Departments: []v1.MasterBudgetDepartmentEditable{
			{CostCenter: testCostCenter, Budget: decimal.NewFromInt(20500)},
		},
	})

	tests := []struct {
		name      string
		editable  v1.BudgetEditable
		status    int
		err       error
		allocated decimal.NullDecimal
	}{
		{
			"Allocated from master budget",
			v1.BudgetEditable{
				Company: testCompany,
				Accounts: []v1.BudgetAccountEditable{
					{Account: testAccount, Amount: decimal.NewFromInt(12000)},
				},
			},
			http.StatusCreated,
			nil,
			decimal.NewNullDecimal(decimal.NewFromInt(20500)),
		},
		{
			"Master budget exceeded",
			v1.BudgetEditable{
				Company: testCompany,
				Accounts: []v1.BudgetAccountEditable{
					{Account: testAccount, Amount: decimal.NewFromInt(30000)},
				},
			},
			http.StatusBadRequest,
			models.ErrBudgetAllocatedExceeded,
			decimal.NullDecimal{},
		},
		{
			"Project budget without master budget",
			v1.BudgetEditable{
				BudgetAgainst: models.BudgetAgainstProject,
				Accounts: []v1.BudgetAccountEditable{
					{Account: testAccount, Amount: decimal.NewFromInt(30000)},
				},
			},
			http.StatusCreated,
			nil,
			decimal.NullDecimal{},
		},
		{
			"Repeated account",
			v1.BudgetEditable{
				Accounts: []v1.BudgetAccountEditable{
					{Account: testAccount, Amount: decimal.NewFromInt(10)},
					{Account: testAccount, Amount: decimal.NewFromInt(20)},
				},
			},
			http.StatusBadRequest,
			models.ErrBudgetAccountRepeated,
			decimal.NullDecimal{},
		},
		{
			"Negative amount",
			v1.BudgetEditable{
				Accounts: []v1.BudgetAccountEditable{
					{Account: testAccount, Amount: decimal.NewFromInt(-10)},
				},
			},
			http.StatusBadRequest,
			models.ErrAmountNegative,
			decimal.NullDecimal{},
		},
		{
			"Cancelled",
			v1.BudgetEditable{
				Status: models.BudgetStatusCancelled,
			},
			http.StatusBadRequest,
			v1.ErrInvalidStatus,
			decimal.NullDecimal{},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			if tt.editable.Company == "" {
				tt.editable.Company = uuid.NewString()
			}
			tt.editable.CostCenter = testCostCenter
			tt.editable.FiscalYear = testFiscalYear

			r := test.Request(t, http.MethodPost, "http://example.com/v1/budgets", []v1.BudgetEditable{tt.editable})
			test.AssertHTTPStatus(t, &r, tt.status)

			var response v1.BudgetCreateResponse
			test.DecodeResponse(t, &r, &response)

			if tt.err != nil {
				assert.Contains(t, *response.Data[0].Error, tt.err.Error())
				return
			}

			budget := response.Data[0].Data
			assert.Equal(t, tt.allocated.Valid, budget.BudgetAllocated.Valid)
			if tt.allocated.Valid {
				assert.True(t, tt.allocated.Decimal.Equal(budget.BudgetAllocated.Decimal))
			}
			assert.Equal(t, models.BudgetStatusDraft, budget.Status)
			assert.Equal(t, "", budget.Links.AmendedFrom)
		})
	}
}

func (suite *TestSuiteStandard) TestBudgetsCreateSecondSubmitted() {
	b := v1.BudgetEditable{
		Company: testCompany,
		Status:  models.BudgetStatusSubmitted,
	}

	createTestBudget(suite.T(), b)
	createTestBudget(suite.T(), b, http.StatusBadRequest)

	// Drafts are not limited
	b.Status = models.BudgetStatusDraft
	createTestBudget(suite.T(), b)
	createTestBudget(suite.T(), b)
}

func (suite *TestSuiteStandard) TestBudgetsList() {
	createTestBudget(suite.T(), v1.BudgetEditable{
		Company: testCompany,
		Status:  models.BudgetStatusSubmitted,
		Accounts: []v1.BudgetAccountEditable{
			{Account: testAccount, Amount: decimal.NewFromInt(100)},
		},
	})
	createTestBudget(suite.T(), v1.BudgetEditable{
		Company: testCompany,
		Accounts: []v1.BudgetAccountEditable{
			{Account: testOffice, Amount: decimal.NewFromInt(100)},
		},
	})
	createTestBudget(suite.T(), v1.BudgetEditable{CostCenter: "Sales - AL"})

	tests := []struct {
		name  string
		query url.Values
		len   int
	}{
		{"All", url.Values{}, 3},
		{"Company", url.Values{"company": {testCompany}}, 2},
		{"Cost center", url.Values{"costCenter": {"Sales - AL"}}, 1},
		{"Status", url.Values{"status": {"SUBMITTED"}}, 1},
		{"Account", url.Values{"account": {testOffice}}, 1},
		{"Company and account", url.Values{"company": {testCompany}, "account": {testAccount}}, 1},
		{"No match", url.Values{"fiscalYear": {"1999-2000"}}, 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/budgets?%s", tt.query.Encode()), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.BudgetListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.len)
			assert.Equal(t, int64(tt.len), response.Pagination.Total)
		})
	}
}

func (suite *TestSuiteStandard) TestBudgetsGetAllocated() {
	createTestMasterBudget(suite.T(), v1.MasterBudgetEditable{
		Company: testCompany,
		Departments: []v1.MasterBudgetDepartmentEditable{
			{CostCenter: testCostCenter, Budget: decimal.NewFromInt(20500)},
		},
	})

	tests := []struct {
		name    string
		query   url.Values
		success bool
		message string
	}{
		{
			"Found",
			url.Values{"company": {testCompany}, "costCenter": {testCostCenter}, "fiscalYear": {testFiscalYear}},
			true,
			"Budget allocated found: 20,500.00",
		},
		{
			"No department",
			url.Values{"company": {testCompany}, "costCenter": {"Sales - AL"}, "fiscalYear": {testFiscalYear}},
			false,
			"No master budget found for cost center 'Sales - AL' of company 'Acme Ltd' in fiscal year '2024-2025'",
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/budgets/allocated?%s", tt.query.Encode()), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.BudgetAllocatedResponse
			test.DecodeResponse(t, &r, &response)
			assert.Equal(t, tt.success, response.Success)
			assert.Equal(t, tt.message, response.Message)
			assert.Equal(t, tt.success, response.Budget.Valid)
		})
	}

	suite.T().Run("Missing parameter", func(t *testing.T) {
		r := test.Request(t, http.MethodGet, "http://example.com/v1/budgets/allocated?company=Acme", "")
		test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
	})
}

func (suite *TestSuiteStandard) TestBudgetsGetSingle() {
	b := createTestBudget(suite.T(), v1.BudgetEditable{
		Accounts: []v1.BudgetAccountEditable{
			{Account: testAccount, Amount: decimal.NewFromInt(100)},
			{Account: testOffice, Amount: decimal.NewFromInt(50)},
		},
	})

	r := test.Request(suite.T(), http.MethodGet, b.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.BudgetResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.Len(suite.T(), response.Data.Accounts, 2)
	assert.True(suite.T(), decimal.NewFromInt(150).Equal(response.Data.Total))

	tests := []struct {
		name   string
		id     string
		method string
		status int
	}{
		{"GET No Budget with this ID", uuid.New().String(), http.MethodGet, http.StatusNotFound},
		{"GET Invalid ID", "notaUUID", http.MethodGet, http.StatusBadRequest},
		{"OPTIONS Existing Budget", b.Data.ID.String(), http.MethodOptions, http.StatusNoContent},
		{"OPTIONS No Budget with this ID", uuid.New().String(), http.MethodOptions, http.StatusNotFound},
		{"DELETE Invalid ID", "-56", http.MethodDelete, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, tt.method, fmt.Sprintf("http://example.com/v1/budgets/%s", tt.id), "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestBudgetsDelete() {
	draft := createTestBudget(suite.T(), v1.BudgetEditable{})
	submitted := createTestBudget(suite.T(), v1.BudgetEditable{Status: models.BudgetStatusSubmitted})

	r := test.Request(suite.T(), http.MethodDelete, draft.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodDelete, submitted.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response struct{ Error string }
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), v1.ErrBudgetNotDraft.Error(), response.Error)
}
