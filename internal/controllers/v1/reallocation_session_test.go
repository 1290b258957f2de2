package v1_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	v1 "github.com/budget-desk/backend/internal/controllers/v1"
	"github.com/budget-desk/backend/internal/models"
	"github.com/budget-desk/backend/internal/reallocation"
	"github.com/budget-desk/backend/internal/types"
	"github.com/budget-desk/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestSession(t *testing.T) v1.ReallocationSession {
	r := test.Request(t, http.MethodPost, "http://example.com/v1/reallocation-sessions", "")
	test.AssertHTTPStatus(t, &r, http.StatusCreated)

	var response v1.ReallocationSessionResponse
	test.DecodeResponse(t, &r, &response)
	require.NotNil(t, response.Data)

	return *response.Data
}

func patchTestSession(t *testing.T, s v1.ReallocationSession, field string, value any, expectedStatus ...int) v1.ReallocationSessionResponse {
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusOK)
	}

	r := test.Request(t, http.MethodPatch, s.Links.Self, map[string]any{"field": field, "value": value})
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.ReallocationSessionResponse
	test.DecodeResponse(t, &r, &response)
	return response
}

// selectTestBudget sets all identifying fields to the account of the reallocation fixture.
func selectTestBudget(t *testing.T, s v1.ReallocationSession, account, month string) v1.ReallocationSessionResponse {
	patchTestSession(t, s, "company", testCompany)
	patchTestSession(t, s, "costCenter", testCostCenter)
	patchTestSession(t, s, "fiscalYear", testFiscalYear)
	patchTestSession(t, s, "account", account)
	return patchTestSession(t, s, "month", month)
}

func submitTestSession(t *testing.T, s v1.ReallocationSession, expectedStatus ...int) v1.BudgetReallocationResponse {
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := test.Request(t, http.MethodPost, s.Links.Submit, "")
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.BudgetReallocationResponse
	test.DecodeResponse(t, &r, &response)
	return response
}

func (suite *TestSuiteStandard) TestReallocationSessionsOpen() {
	s := openTestSession(suite.T())

	assert.NotEqual(suite.T(), uuid.Nil, s.ID)
	assert.Equal(suite.T(), 0, s.Depth)
	assert.Equal(suite.T(), uint64(0), s.Sequence)
	assert.Equal(suite.T(), fmt.Sprintf("http://example.com/v1/reallocation-sessions/%s", s.ID), s.Links.Self)
	assert.Equal(suite.T(), fmt.Sprintf("http://example.com/v1/reallocation-sessions/%s/submit", s.ID), s.Links.Submit)
	assert.False(suite.T(), s.Record.CurrentBudget.Valid)

	r := test.Request(suite.T(), http.MethodGet, s.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
}

func (suite *TestSuiteStandard) TestReallocationSessionsNotFound() {
	tests := []struct {
		name   string
		id     string
		method string
		path   string
		status int
	}{
		{"GET No Session with this ID", uuid.New().String(), http.MethodGet, "", http.StatusNotFound},
		{"GET Invalid ID", "notaUUID", http.MethodGet, "", http.StatusBadRequest},
		{"OPTIONS No Session with this ID", uuid.New().String(), http.MethodOptions, "", http.StatusNotFound},
		{"PATCH No Session with this ID", uuid.New().String(), http.MethodPatch, "", http.StatusNotFound},
		{"DELETE No Session with this ID", uuid.New().String(), http.MethodDelete, "", http.StatusNotFound},
		{"DELETE Invalid ID", "-56", http.MethodDelete, "", http.StatusBadRequest},
		{"OPTIONS submit No Session with this ID", uuid.New().String(), http.MethodOptions, "/submit", http.StatusNotFound},
		{"POST submit No Session with this ID", uuid.New().String(), http.MethodPost, "/submit", http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, tt.method, fmt.Sprintf("http://example.com/v1/reallocation-sessions/%s%s", tt.id, tt.path), `{"field": "company", "value": "Acme"}`)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestReallocationSessionsOptions() {
	s := openTestSession(suite.T())

	r := test.Request(suite.T(), http.MethodOptions, s.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET, PATCH, DELETE", r.Header().Get("allow"))

	r = test.Request(suite.T(), http.MethodOptions, s.Links.Submit, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, POST", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestReallocationSessionsCascade() {
	_ = createReallocationFixture(suite.T())
	s := openTestSession(suite.T())

	response := selectTestBudget(suite.T(), s, testAccount, "June")
	assert.Equal(suite.T(), 5, response.Data.Depth)
	assert.Equal(suite.T(), uint64(5), response.Data.Sequence)
	assert.Equal(suite.T(), v1.LookupApplied, response.Lookup)
	assert.True(suite.T(), decimal.NewFromInt(1200).Equal(response.Data.Record.CurrentBudget.Decimal))

	response = patchTestSession(suite.T(), s, "newBudget", "1500")
	assert.True(suite.T(), response.Data.Record.Difference.Valid)

	tests := []struct {
		name   string
		field  string
		depth  int
		lookup v1.LookupOutcome
	}{
		{"Month", "month", 4, v1.LookupSkipped},
		{"Account", "account", 3, ""},
		{"Fiscal year", "fiscalYear", 2, ""},
		{"Cost center", "costCenter", 1, ""},
		{"Company", "company", 0, ""},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			response := patchTestSession(t, s, tt.field, nil)
			record := response.Data.Record

			assert.Equal(t, tt.depth, response.Data.Depth)
			assert.False(t, record.CurrentBudget.Valid)
			assert.False(t, record.TotalAnnualBudget.Valid)
			assert.False(t, record.MasterBudgetLimit.Valid)
			assert.False(t, record.TotalAllocatedBudget.Valid)
			assert.False(t, record.NewBudget.Valid)
			assert.False(t, record.Difference.Valid)
			assert.False(t, record.PercentageChange.Valid)
			assert.False(t, record.NewTotalAnnualBudget.Valid)
			assert.Equal(t, tt.lookup, response.Lookup)
		})
	}

	// Changing an upstream field clears everything below it
	selectTestBudget(suite.T(), s, testAccount, "June")
	response = patchTestSession(suite.T(), s, "company", "Initech")
	assert.Equal(suite.T(), "Initech", response.Data.Record.Company)
	assert.Equal(suite.T(), "", response.Data.Record.CostCenter)
	assert.Equal(suite.T(), "", response.Data.Record.Account)
	assert.True(suite.T(), response.Data.Record.Month.IsZero())
	assert.Equal(suite.T(), 1, response.Data.Depth)
}

func (suite *TestSuiteStandard) TestReallocationSessionsLookupOutcomes() {
	_ = createReallocationFixture(suite.T())

	suite.T().Run("Skipped", func(t *testing.T) {
		s := openTestSession(t)
		patchTestSession(t, s, "company", testCompany)

		response := patchTestSession(t, s, "month", "June")
		assert.Equal(t, v1.LookupSkipped, response.Lookup)
		assert.False(t, response.Data.Record.CurrentBudget.Valid)
	})

	suite.T().Run("Unavailable", func(t *testing.T) {
		s := openTestSession(t)

		response := selectTestBudget(t, s, testOffice, "June")
		assert.Equal(t, v1.LookupUnavailable, response.Lookup)
		assert.False(t, response.Data.Record.CurrentBudget.Valid)
		assert.False(t, response.Data.Record.MasterBudgetLimit.Valid)
	})

	suite.T().Run("Zero month", func(t *testing.T) {
		s := openTestSession(t)

		response := selectTestBudget(t, s, testAccount, "April")
		assert.Equal(t, v1.LookupApplied, response.Lookup)
		assert.True(t, response.Data.Record.CurrentBudget.Valid)
		assert.True(t, response.Data.Record.CurrentBudget.Decimal.IsZero())

		// No percentage change can be computed for a month without budget
		response = patchTestSession(t, s, "newBudget", 100)
		assert.True(t, decimal.NewFromInt(100).Equal(response.Data.Record.Difference.Decimal))
		assert.False(t, response.Data.Record.PercentageChange.Valid)
		assert.True(t, decimal.NewFromInt(12100).Equal(response.Data.Record.NewTotalAnnualBudget.Decimal))
	})
}

func (suite *TestSuiteStandard) TestReallocationSessionsNewBudget() {
	_ = createReallocationFixture(suite.T())

	tests := []struct {
		name            string
		value           any
		difference      decimal.Decimal
		percentage      decimal.Decimal
		newAnnual       decimal.Decimal
		notification    bool
		notificationMsg string
	}{
		{
			"Within limit",
			"1500",
			decimal.NewFromInt(300),
			decimal.NewFromInt(25),
			decimal.NewFromInt(12300),
			false,
			"",
		},
		{
			"Exceeds limit",
			1800,
			decimal.NewFromInt(600),
			decimal.NewFromInt(50),
			decimal.NewFromInt(12600),
			true,
			"New budget will exceed Master Budget Limit! Master Budget Limit: 20,500.00, Current Total Allocated: 20,000.00, New Total Allocated: 20,600.00, Excess Amount: 100.00",
		},
		{
			"Decrease",
			"200",
			decimal.NewFromInt(-1000),
			decimal.NewFromFloat(-83.33333333333333),
			decimal.NewFromInt(11000),
			false,
			"",
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			s := openTestSession(t)
			selectTestBudget(t, s, testAccount, "June")

			response := patchTestSession(t, s, "newBudget", tt.value)
			record := response.Data.Record

			assert.True(t, tt.difference.Equal(record.Difference.Decimal), record.Difference.Decimal.String())
			assert.InDelta(t, tt.percentage.InexactFloat64(), record.PercentageChange.Decimal.InexactFloat64(), 0.0001)
			assert.True(t, tt.newAnnual.Equal(record.NewTotalAnnualBudget.Decimal), record.NewTotalAnnualBudget.Decimal.String())

			if !tt.notification {
				assert.Nil(t, response.Notification)
				return
			}

			require.NotNil(t, response.Notification)
			assert.Equal(t, "Budget Limit Warning", response.Notification.Title)
			assert.Equal(t, reallocation.SeverityWarning, response.Notification.Severity)
			assert.Equal(t, tt.notificationMsg, response.Notification.Message)
			assert.True(t, decimal.NewFromInt(100).Equal(response.Notification.Warning.Excess))
		})
	}
}

func (suite *TestSuiteStandard) TestReallocationSessionsPatchErrors() {
	s := openTestSession(suite.T())

	tests := []struct {
		name string
		body any
		err  string
	}{
		{"Unknown field", map[string]any{"field": "approver", "value": "Jane"}, reallocation.ErrUnknownField.Error()},
		{"Invalid month", map[string]any{"field": "month", "value": "Smarch"}, types.ErrInvalidFiscalMonth.Error()},
		{"Month not a string", map[string]any{"field": "month", "value": 6}, ""},
		{"Negative new budget", map[string]any{"field": "newBudget", "value": "-5"}, models.ErrAmountNegative.Error()},
		{"New budget not a number", map[string]any{"field": "newBudget", "value": "lots"}, ""},
		{"Empty body", "", ""},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPatch, s.Links.Self, tt.body)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

			var response v1.ReallocationSessionResponse
			test.DecodeResponse(t, &r, &response)
			require.NotNil(t, response.Error)
			if tt.err != "" {
				assert.Contains(t, *response.Error, tt.err)
			}
		})
	}

	// Nothing was changed
	r := test.Request(suite.T(), http.MethodGet, s.Links.Self, "")
	var response v1.ReallocationSessionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), uint64(0), response.Data.Sequence)
}

func (suite *TestSuiteStandard) TestReallocationSessionsDelete() {
	s := openTestSession(suite.T())

	r := test.Request(suite.T(), http.MethodDelete, s.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, s.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	var response v1.ReallocationSessionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), v1.ErrSessionNotFound.Error(), *response.Error)
}

func (suite *TestSuiteStandard) TestReallocationSessionsSubmit() {
	fixture := createReallocationFixture(suite.T())

	s := openTestSession(suite.T())
	selectTestBudget(suite.T(), s, testAccount, "June")
	patchTestSession(suite.T(), s, "newBudget", "1500")

	response := submitTestSession(suite.T(), s)
	result := response.Data
	require.NotNil(suite.T(), result)
	assert.Nil(suite.T(), response.Notification)

	assert.Equal(suite.T(), testAccount, result.Account)
	assert.Equal(suite.T(), types.FiscalMonth(6), result.Month)
	assert.True(suite.T(), decimal.NewFromInt(1200).Equal(result.CurrentBudget))
	assert.True(suite.T(), decimal.NewFromInt(1500).Equal(result.NewBudget))
	assert.True(suite.T(), decimal.NewFromInt(300).Equal(result.Difference))
	assert.True(suite.T(), decimal.NewFromInt(12300).Equal(result.NewTotalAnnualBudget))
	assert.Equal(suite.T(), fixture.Budget.ID, result.OldBudgetID)
	assert.Equal(suite.T(), fmt.Sprintf("http://example.com/v1/budgets/%s", result.NewBudgetID), result.Links.NewBudget)

	// The session is closed
	r := test.Request(suite.T(), http.MethodGet, s.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	// The old budget is cancelled
	r = test.Request(suite.T(), http.MethodGet, result.Links.OldBudget, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	var old v1.BudgetResponse
	test.DecodeResponse(suite.T(), &r, &old)
	assert.Equal(suite.T(), models.BudgetStatusCancelled, old.Data.Status)

	// The amended budget carries the new annual amount
	r = test.Request(suite.T(), http.MethodGet, result.Links.NewBudget, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	var amended v1.BudgetResponse
	test.DecodeResponse(suite.T(), &r, &amended)
	assert.Equal(suite.T(), models.BudgetStatusSubmitted, amended.Data.Status)
	assert.Equal(suite.T(), &fixture.Budget.ID, amended.Data.AmendedFromID)
	assert.True(suite.T(), decimal.NewFromInt(20300).Equal(amended.Data.Total), amended.Data.Total.String())

	// The month now has the new budget, the other months keep theirs
	for month, amount := range map[string]float64{"June": 1500, "July": 10800} {
		r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/budget-lookup?%s", lookupQuery(testAccount, month).Encode()), "")
		test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

		var lookup v1.BudgetLookupResponse
		test.DecodeResponse(suite.T(), &r, &lookup)
		assert.InDelta(suite.T(), amount, lookup.Data.CurrentBudget.InexactFloat64(), 0.001, month)
	}
}

func (suite *TestSuiteStandard) TestReallocationSessionsSubmitErrors() {
	_ = createReallocationFixture(suite.T())

	suite.T().Run("Incomplete selection", func(t *testing.T) {
		s := openTestSession(t)
		patchTestSession(t, s, "company", testCompany)

		response := submitTestSession(t, s, http.StatusBadRequest)
		assert.Equal(t, v1.ErrIncompleteSelection.Error(), *response.Error)

		r := test.Request(t, http.MethodGet, s.Links.Self, "")
		test.AssertHTTPStatus(t, &r, http.StatusOK)
	})

	suite.T().Run("New budget not set", func(t *testing.T) {
		s := openTestSession(t)
		selectTestBudget(t, s, testAccount, "June")

		response := submitTestSession(t, s, http.StatusBadRequest)
		assert.Equal(t, models.ErrNewBudgetNotSet.Error(), *response.Error)
	})

	suite.T().Run("No budget data", func(t *testing.T) {
		s := openTestSession(t)
		selectTestBudget(t, s, testOffice, "June")
		patchTestSession(t, s, "newBudget", "100")

		response := submitTestSession(t, s, http.StatusNotFound)
		assert.Contains(t, *response.Error, reallocation.ErrNoBudgetData.Error())
	})

	suite.T().Run("Master budget limit exceeded", func(t *testing.T) {
		s := openTestSession(t)
		selectTestBudget(t, s, testAccount, "June")
		patchTestSession(t, s, "newBudget", "1800")

		response := submitTestSession(t, s, http.StatusBadRequest)
		assert.Contains(t, *response.Error, models.ErrMasterBudgetLimitExceeded.Error())
		require.NotNil(t, response.Notification)
		assert.Equal(t, reallocation.SeverityWarning, response.Notification.Severity)

		// The session stays open so that the new budget can be corrected
		r := test.Request(t, http.MethodGet, s.Links.Self, "")
		test.AssertHTTPStatus(t, &r, http.StatusOK)
	})
}

func (suite *TestSuiteStandard) TestReallocationSessionsSubmitTwice() {
	_ = createReallocationFixture(suite.T())

	s := openTestSession(suite.T())
	selectTestBudget(suite.T(), s, testAccount, "June")
	patchTestSession(suite.T(), s, "newBudget", "1500")

	submitTestSession(suite.T(), s)
	response := submitTestSession(suite.T(), s, http.StatusNotFound)
	assert.Equal(suite.T(), v1.ErrSessionNotFound.Error(), *response.Error)

	var count int64
	require.Nil(suite.T(), models.DB.Model(&models.BudgetReallocation{}).Count(&count).Error)
	assert.Equal(suite.T(), int64(1), count)
}

func (suite *TestSuiteStandard) TestReallocationSessionsExpire() {
	suite.T().Setenv("SESSION_IDLE_TIMEOUT", "20ms")

	s := openTestSession(suite.T())
	time.Sleep(50 * time.Millisecond)

	r := test.Request(suite.T(), http.MethodGet, s.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestReallocationSessionsSubmitLimitNotEnforced() {
	suite.T().Setenv("ENFORCE_MASTER_BUDGET_LIMIT", "false")
	_ = createReallocationFixture(suite.T())

	s := openTestSession(suite.T())
	selectTestBudget(suite.T(), s, testAccount, "June")
	patchTestSession(suite.T(), s, "newBudget", "1800")

	response := submitTestSession(suite.T(), s)
	require.NotNil(suite.T(), response.Notification)
	assert.True(suite.T(), decimal.NewFromInt(100).Equal(response.Notification.Warning.Excess))
	assert.True(suite.T(), decimal.NewFromInt(12600).Equal(response.Data.NewTotalAnnualBudget))
}

func (suite *TestSuiteStandard) TestReallocationSessionsRemoteLookup() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/budget-lookup" || r.URL.Query().Get("account") != testAccount {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error": "there is no budget data for this selection"}`))
			return
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": reallocation.Figures{
				CurrentBudget:        decimal.NewFromInt(700),
				TotalAnnualBudget:    decimal.NewFromInt(8400),
				MasterBudgetLimit:    decimal.NewNullDecimal(decimal.NewFromInt(10000)),
				TotalAllocatedBudget: decimal.NewFromInt(9000),
			},
		})
	}))
	defer server.Close()

	suite.T().Setenv("BUDGET_LOOKUP_URL", server.URL)

	s := openTestSession(suite.T())
	response := selectTestBudget(suite.T(), s, testAccount, "May")
	assert.Equal(suite.T(), v1.LookupApplied, response.Lookup)
	assert.True(suite.T(), decimal.NewFromInt(700).Equal(response.Data.Record.CurrentBudget.Decimal))
	assert.True(suite.T(), decimal.NewFromInt(10000).Equal(response.Data.Record.MasterBudgetLimit.Decimal))

	response = patchTestSession(suite.T(), s, "newBudget", "2000")
	require.NotNil(suite.T(), response.Notification)
	assert.True(suite.T(), decimal.NewFromInt(300).Equal(response.Notification.Warning.Excess))

	s = openTestSession(suite.T())
	response = selectTestBudget(suite.T(), s, testOffice, "May")
	assert.Equal(suite.T(), v1.LookupUnavailable, response.Lookup)
}
