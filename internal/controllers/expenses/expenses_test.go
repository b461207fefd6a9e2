package expenses_test

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/expense-tracker/backend/internal/models"
	"github.com/expense-tracker/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func expenseForm(amount, date, description, category string) url.Values {
	return url.Values{
		"amount":      {amount},
		"date":        {date},
		"description": {description},
		"category":    {category},
	}
}

func (suite *TestSuiteStandard) TestLoginRequired() {
	paths := []string{"/dashboard", "/expenses", "/expense/add", "/expense/edit/" + uuid.NewString()}

	for _, path := range paths {
		suite.Run(path, func() {
			recorder := test.Request(suite.T(), http.MethodGet, "http://example.com"+path, nil)
			test.AssertRedirect(suite.T(), &recorder, "/login?next="+url.QueryEscape(path))
		})
	}
}

func (suite *TestSuiteStandard) TestDashboard() {
	user := suite.createTestUser("jane", "jane@example.com", "secret")
	client := test.Login(suite.T(), user.ID)

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/dashboard", nil, client.Headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
	suite.Assert().Contains(recorder.Body.String(), "category-chart")
	suite.Assert().Contains(recorder.Body.String(), "Miscellaneous")
	suite.Assert().Contains(recorder.Body.String(), "jane")
}

func (suite *TestSuiteStandard) TestList() {
	jane := suite.createTestUser("jane", "jane@example.com", "secret")
	john := suite.createTestUser("john", "john@example.com", "secret")

	suite.createTestExpense(jane, "12.50", "2025-01-10", "Lunch with Bob", "Food & Dining")
	suite.createTestExpense(jane, "89", "2025-02-01", "Train to Berlin", "Travel")
	suite.createTestExpense(jane, "4.20", "2025-02-03", "Coffee", "Food & Dining")
	suite.createTestExpense(john, "1000", "2025-02-03", "John's rent", "Housing")

	client := test.Login(suite.T(), jane.ID)

	tests := []struct {
		name     string
		query    string
		expected []string
	}{
		{"Default is newest first", "", []string{"Coffee", "Train to Berlin", "Lunch with Bob"}},
		{"Oldest first", "?sort_order=asc", []string{"Lunch with Bob", "Train to Berlin", "Coffee"}},
		{"By amount", "?sort_by=amount", []string{"Train to Berlin", "Lunch with Bob", "Coffee"}},
		{"Unknown sort field", "?sort_by=user_id&sort_order=asc", []string{"Lunch with Bob", "Train to Berlin", "Coffee"}},
		{"Category", "?category=" + url.QueryEscape("Food & Dining"), []string{"Coffee", "Lunch with Bob"}},
		{"Start date", "?start_date=2025-02-01", []string{"Coffee", "Train to Berlin"}},
		{"End date", "?end_date=2025-02-01", []string{"Train to Berlin", "Lunch with Bob"}},
		{"Search", "?search=BERLIN", []string{"Train to Berlin"}},
		{"Search with wildcard", "?search=*with*", []string{"Lunch with Bob"}},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/expenses"+tt.query, nil, client.Headers)
			test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

			body := recorder.Body.String()
			suite.Assert().NotContains(body, "John")

			last := -1
			for _, description := range tt.expected {
				index := strings.Index(body, "<td>"+description+"</td>")
				suite.Require().Greater(index, last, "%s is missing or in the wrong position", description)
				last = index
			}

			suite.Assert().Equal(len(tt.expected), strings.Count(body, `href="/expense/edit/`))
		})
	}
}

func (suite *TestSuiteStandard) TestListEchoesFilter() {
	user := suite.createTestUser("jane", "jane@example.com", "secret")
	client := test.Login(suite.T(), user.ID)

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/expenses?category=Travel&start_date=2025-01-01&sort_by=amount&sort_order=asc&search=train", nil, client.Headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	body := recorder.Body.String()
	suite.Assert().Contains(body, `<option value="Travel" selected>`)
	suite.Assert().Contains(body, `name="start_date" value="2025-01-01"`)
	suite.Assert().Contains(body, `<option value="amount" selected>`)
	suite.Assert().Contains(body, `<option value="asc" selected>`)
	suite.Assert().Contains(body, `value="train"`)
	suite.Assert().Contains(body, "No expenses found.")
}

func (suite *TestSuiteStandard) TestListInvalidDate() {
	user := suite.createTestUser("jane", "jane@example.com", "secret")
	suite.createTestExpense(user, "12.50", "2025-01-10", "Lunch", "Food & Dining")
	client := test.Login(suite.T(), user.ID)

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/expenses?start_date=10.01.2025", nil, client.Headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	body := recorder.Body.String()
	suite.Assert().Contains(body, "alert-danger")
	suite.Assert().Contains(body, "YYYY-MM-DD")
	suite.Assert().Contains(body, "<td>Lunch</td>", "the invalid filter is not ignored")
}

func (suite *TestSuiteStandard) TestAdd() {
	user := suite.createTestUser("jane", "jane@example.com", "secret")
	client := test.Login(suite.T(), user.ID)

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/expense/add", nil, client.Headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
	suite.Assert().Contains(recorder.Body.String(), "Add Expense")

	recorder = test.Request(suite.T(), http.MethodPost, "http://example.com/expense/add", client.Form(expenseForm("12.345", "2025-03-01", "  Groceries  ", "Food & Dining")), client.Headers)
	test.AssertRedirect(suite.T(), &recorder, "/expenses")

	expenses, err := user.Expenses(models.DB, models.ExpenseFilter{})
	suite.Require().Nil(err)
	suite.Require().Len(expenses, 1)
	suite.Assert().True(decimal.RequireFromString("12.345").Equal(expenses[0].Amount))
	suite.Assert().Equal("2025-03-01", expenses[0].Date.String())
	suite.Assert().Equal("Groceries", expenses[0].Description)
	suite.Assert().Equal(user.ID, expenses[0].UserID)
}

func (suite *TestSuiteStandard) TestAddInvalid() {
	user := suite.createTestUser("jane", "jane@example.com", "secret")
	client := test.Login(suite.T(), user.ID)

	tests := []struct {
		name    string
		form    url.Values
		message string
	}{
		{"Negative amount", expenseForm("-5", "2025-03-01", "Groceries", "Shopping"), "Amount must be a positive number"},
		{"Zero amount", expenseForm("0", "2025-03-01", "Groceries", "Shopping"), "Amount must be a positive number"},
		{"Text amount", expenseForm("ten", "2025-03-01", "Groceries", "Shopping"), "Amount must be a positive number"},
		{"Missing amount", expenseForm("", "2025-03-01", "Groceries", "Shopping"), "This field is required."},
		{"Wrong date format", expenseForm("5", "01/03/2025", "Groceries", "Shopping"), "Date must be in YYYY-MM-DD format"},
		{"Impossible date", expenseForm("5", "2025-02-30", "Groceries", "Shopping"), "Date must be in YYYY-MM-DD format"},
		{"Blank description", expenseForm("5", "2025-03-01", "   ", "Shopping"), "This field is required."},
		{"Long description", expenseForm("5", "2025-03-01", strings.Repeat("x", 256), "Shopping"), "cannot be longer than 255"},
		{"Unknown category", expenseForm("5", "2025-03-01", "Groceries", "Gambling"), "Please select a valid category"},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/expense/add", client.Form(tt.form), client.Headers)
			test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
			suite.Assert().Contains(recorder.Body.String(), tt.message)

			// The submitted values are shown again
			suite.Assert().Contains(recorder.Body.String(), fmt.Sprintf(`name="amount" value="%s"`, tt.form.Get("amount")))
		})
	}

	count, err := user.ExpenseCount(models.DB)
	suite.Require().Nil(err)
	suite.Assert().Equal(int64(0), count)
}

func (suite *TestSuiteStandard) TestAddCSRF() {
	user := suite.createTestUser("jane", "jane@example.com", "secret")
	client := test.Login(suite.T(), user.ID)

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/expense/add", expenseForm("5", "2025-03-01", "Groceries", "Shopping"), client.Headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusForbidden)
}

func (suite *TestSuiteStandard) TestEdit() {
	user := suite.createTestUser("jane", "jane@example.com", "secret")
	expense := suite.createTestExpense(user, "12.50", "2025-01-10", "Lunch", "Food & Dining")
	client := test.Login(suite.T(), user.ID)

	path := "http://example.com/expense/edit/" + expense.ID.String()

	recorder := test.Request(suite.T(), http.MethodGet, path, nil, client.Headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
	body := recorder.Body.String()
	suite.Assert().Contains(body, `name="amount" value="12.50"`)
	suite.Assert().Contains(body, `name="date" value="2025-01-10"`)
	suite.Assert().Contains(body, `name="description" value="Lunch"`)
	suite.Assert().Contains(body, `<option value="Food &amp; Dining" selected>`)

	recorder = test.Request(suite.T(), http.MethodPost, path, client.Form(expenseForm("15", "2025-01-11", "Dinner", "Entertainment")), client.Headers)
	test.AssertRedirect(suite.T(), &recorder, "/expenses")

	updated, err := user.Expense(models.DB, expense.ID)
	suite.Require().Nil(err)
	suite.Assert().True(decimal.NewFromInt(15).Equal(updated.Amount))
	suite.Assert().Equal("2025-01-11", updated.Date.String())
	suite.Assert().Equal("Dinner", updated.Description)
	suite.Assert().Equal("Entertainment", updated.Category)
	suite.Assert().Equal(user.ID, updated.UserID)
	suite.Assert().Equal(expense.CreatedAt.Unix(), updated.CreatedAt.Unix())
}

func (suite *TestSuiteStandard) TestEditInvalid() {
	user := suite.createTestUser("jane", "jane@example.com", "secret")
	expense := suite.createTestExpense(user, "12.50", "2025-01-10", "Lunch", "Food & Dining")
	client := test.Login(suite.T(), user.ID)

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/expense/edit/"+expense.ID.String(), client.Form(expenseForm("-1", "2025-01-11", "Dinner", "Entertainment")), client.Headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
	suite.Assert().Contains(recorder.Body.String(), "Amount must be a positive number")

	unchanged, err := user.Expense(models.DB, expense.ID)
	suite.Require().Nil(err)
	suite.Assert().Equal("Lunch", unchanged.Description)
}

func (suite *TestSuiteStandard) TestAddThenDeleteRestoresCount() {
	user := suite.createTestUser("jane", "jane@example.com", "secret")
	suite.createTestExpense(user, "3", "2025-01-10", "Bus", "Transportation")
	client := test.Login(suite.T(), user.ID)

	before, err := user.ExpenseCount(models.DB)
	suite.Require().Nil(err)

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/expense/add", client.Form(expenseForm("7", "2025-03-01", "Cinema", "Entertainment")), client.Headers)
	test.AssertRedirect(suite.T(), &recorder, "/expenses")

	expenses, err := user.Expenses(models.DB, models.ExpenseFilter{Search: "Cinema"})
	suite.Require().Nil(err)
	suite.Require().Len(expenses, 1)

	recorder = test.Request(suite.T(), http.MethodPost, "http://example.com/expense/delete/"+expenses[0].ID.String(), client.Form(nil), client.Headers)
	test.AssertRedirect(suite.T(), &recorder, "/expenses")

	after, err := user.ExpenseCount(models.DB)
	suite.Require().Nil(err)
	suite.Assert().Equal(before, after)
}

func (suite *TestSuiteStandard) TestNotFound() {
	jane := suite.createTestUser("jane", "jane@example.com", "secret")
	john := suite.createTestUser("john", "john@example.com", "secret")
	foreign := suite.createTestExpense(john, "1000", "2025-02-03", "Rent", "Housing")
	client := test.Login(suite.T(), jane.ID)

	ids := map[string]string{
		"Foreign expense": foreign.ID.String(),
		"Missing expense": uuid.NewString(),
		"Malformed ID":    "not-a-uuid",
	}

	for name, id := range ids {
		suite.Run(name, func() {
			recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/expense/edit/"+id, nil, client.Headers)
			test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
			suite.Assert().Contains(recorder.Body.String(), "404")

			recorder = test.Request(suite.T(), http.MethodPost, "http://example.com/expense/edit/"+id, client.Form(expenseForm("1", "2025-02-03", "Mine now", "Housing")), client.Headers)
			test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)

			recorder = test.Request(suite.T(), http.MethodPost, "http://example.com/expense/delete/"+id, client.Form(nil), client.Headers)
			test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
		})
	}

	// John's expense is untouched
	expense, err := john.Expense(models.DB, foreign.ID)
	suite.Require().Nil(err)
	suite.Assert().Equal("Rent", expense.Description)
}

func (suite *TestSuiteStandard) TestDatabaseError() {
	user := suite.createTestUser("jane", "jane@example.com", "secret")
	client := test.Login(suite.T(), user.ID)

	// Without the database, the session cannot be resolved
	suite.CloseDB()

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/expenses", nil, client.Headers)
	test.AssertRedirect(suite.T(), &recorder, "/login?next=%2Fexpenses")
}
