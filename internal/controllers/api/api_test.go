package api_test

import (
	"net/http"
	"time"

	"github.com/expense-tracker/backend/internal/controllers/api"
	"github.com/expense-tracker/backend/internal/httperror"
	"github.com/expense-tracker/backend/internal/stats"
	"github.com/expense-tracker/backend/test"
)

// Thursday, the week started on Monday, January 12
var now = time.Date(2026, time.January, 15, 12, 0, 0, 0, time.UTC)

// seed creates expenses for jane and a large expense for john, which
// must never show up in jane's statistics.
func (suite *TestSuiteStandard) seed() test.Client {
	jane := suite.createTestUser("jane", "jane@example.com", "secret")
	john := suite.createTestUser("john", "john@example.com", "secret")

	suite.createTestExpense(jane, "100", "2025-11-20", "Flight", "Travel")
	suite.createTestExpense(jane, "50", "2025-12-24", "Presents", "Shopping")
	suite.createTestExpense(jane, "20", "2026-01-02", "Brunch", "Food & Dining")
	suite.createTestExpense(jane, "30", "2026-01-13", "Dinner", "Food & Dining")
	suite.createTestExpense(jane, "15", "2026-01-14", "Taxi", "Transportation")
	suite.createTestExpense(john, "5000", "2026-01-14", "Car", "Transportation")

	return test.Login(suite.T(), jane.ID)
}

func (suite *TestSuiteStandard) TestUnauthorized() {
	for _, path := range []string{"/api/expense-stats", "/api/category-breakdown", "/api/monthly-trend", "/api/financial-insights"} {
		suite.Run(path, func() {
			recorder := test.Request(suite.T(), http.MethodGet, "http://example.com"+path, nil)
			test.AssertHTTPStatus(suite.T(), &recorder, http.StatusUnauthorized)

			var response httperror.Error
			test.DecodeResponse(suite.T(), &recorder, &response)
			suite.Assert().NotEmpty(response.Message)
		})
	}
}

func (suite *TestSuiteStandard) TestOptions() {
	for _, path := range []string{"/api", "/api/expense-stats", "/api/category-breakdown", "/api/monthly-trend", "/api/financial-insights"} {
		suite.Run(path, func() {
			recorder := test.Request(suite.T(), http.MethodOptions, "http://example.com"+path, nil)
			test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
			suite.Assert().Equal("OPTIONS, GET", recorder.Header().Get("allow"))
		})
	}
}

func (suite *TestSuiteStandard) TestRoot() {
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/api", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response api.RootResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().Equal("http://example.com/api/expense-stats", response.Links.ExpenseStats)
	suite.Assert().Equal("http://example.com/docs/index.html", response.Links.Docs)
}

func (suite *TestSuiteStandard) TestUnknownEndpoint() {
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/api/unknown", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)

	var response httperror.Error
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().Contains(response.Message, "there is no")
}

func (suite *TestSuiteStandard) TestExpenseStats() {
	defer api.SetNow(now)()
	client := suite.seed()

	tests := []struct {
		period   string
		expected stats.Summary
	}{
		{"week", stats.Summary{Total: 45, AveragePerDay: 15, Count: 2}},
		{"month", stats.Summary{Total: 65, AveragePerDay: 4.64, Count: 3}},
		{"", stats.Summary{Total: 65, AveragePerDay: 4.64, Count: 3}},
		{"year", stats.Summary{Total: 65, AveragePerDay: 4.64, Count: 3}},
	}

	for _, tt := range tests {
		suite.Run(tt.period, func() {
			recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/api/expense-stats?period="+tt.period, nil, client.Headers)
			test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

			var response stats.Summary
			test.DecodeResponse(suite.T(), &recorder, &response)
			suite.Assert().Equal(tt.expected, response)
		})
	}

	// Unknown periods cover all time
	for _, period := range []string{"all", "decade"} {
		recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/api/expense-stats?period="+period, nil, client.Headers)
		test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

		var response stats.Summary
		test.DecodeResponse(suite.T(), &recorder, &response)
		suite.Assert().Equal(215.0, response.Total)
		suite.Assert().Equal(5, response.Count)
	}
}

func (suite *TestSuiteStandard) TestExpenseStatsEmpty() {
	defer api.SetNow(now)()
	user := suite.createTestUser("jane", "jane@example.com", "secret")
	suite.createTestExpense(user, "100", "2025-11-20", "Flight", "Travel")
	client := test.Login(suite.T(), user.ID)

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/api/expense-stats?period=week", nil, client.Headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
	suite.Assert().JSONEq(`{"total": 0, "average_per_day": 0, "count": 0}`, recorder.Body.String())
}

func (suite *TestSuiteStandard) TestCategoryBreakdown() {
	defer api.SetNow(now)()
	client := suite.seed()

	tests := []struct {
		period   string
		expected string
	}{
		{"month", `{"labels": ["Food & Dining", "Transportation"], "data": [50, 15]}`},
		{"week", `{"labels": ["Food & Dining", "Transportation"], "data": [30, 15]}`},
		{"all", `{"labels": ["Travel", "Shopping", "Food & Dining", "Transportation"], "data": [100, 50, 50, 15]}`},
	}

	for _, tt := range tests {
		suite.Run(tt.period, func() {
			recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/api/category-breakdown?period="+tt.period, nil, client.Headers)
			test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
			suite.Assert().JSONEq(tt.expected, recorder.Body.String())
		})
	}
}

func (suite *TestSuiteStandard) TestMonthlyTrend() {
	defer api.SetNow(now)()
	client := suite.seed()

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/api/monthly-trend?months=3", nil, client.Headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
	suite.Assert().JSONEq(`{"labels": ["Nov 2025", "Dec 2025", "Jan 2026"], "data": [100, 50, 65]}`, recorder.Body.String())

	// Six months by default
	recorder = test.Request(suite.T(), http.MethodGet, "http://example.com/api/monthly-trend", nil, client.Headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response stats.Series
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().Len(response.Labels, 6)
	suite.Assert().Len(response.Data, 6)
	suite.Assert().Equal("Jan 2026", response.Labels[5])
}

func (suite *TestSuiteStandard) TestMonthlyTrendInvalid() {
	client := suite.seed()

	for _, months := range []string{"0", "-1", "121", "six", "1.5", ""} {
		suite.Run(months, func() {
			recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/api/monthly-trend?months="+months, nil, client.Headers)
			test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

			var response httperror.Error
			test.DecodeResponse(suite.T(), &recorder, &response)
			suite.Assert().Contains(response.Message, "between 1 and 120")
		})
	}
}

func (suite *TestSuiteStandard) TestFinancialInsights() {
	client := suite.seed()

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/api/financial-insights", nil, client.Headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
	suite.Assert().JSONEq(`{
		"top_spending_category": "Travel ($100.00)",
		"biggest_expense": "Flight ($100.00)",
		"average_transaction": 43,
		"spending_trend": "Decreasing"
	}`, recorder.Body.String())
}

func (suite *TestSuiteStandard) TestFinancialInsightsNoData() {
	user := suite.createTestUser("jane", "jane@example.com", "secret")
	client := test.Login(suite.T(), user.ID)

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/api/financial-insights", nil, client.Headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
	suite.Assert().JSONEq(`{
		"top_spending_category": "No data available",
		"biggest_expense": "No data available",
		"average_transaction": 0,
		"spending_trend": "No data available"
	}`, recorder.Body.String())
}

func (suite *TestSuiteStandard) TestDatabaseError() {
	user := suite.createTestUser("jane", "jane@example.com", "secret")
	client := test.Login(suite.T(), user.ID)
	suite.CloseDB()

	// The session cannot be resolved, the request is anonymous
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/api/financial-insights", nil, client.Headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusUnauthorized)
}
