// Package api implements the JSON endpoints the dashboard charts are
// drawn from.
package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/expense-tracker/backend/internal/auth"
	"github.com/expense-tracker/backend/internal/httperror"
	"github.com/expense-tracker/backend/internal/httputil"
	"github.com/expense-tracker/backend/internal/models"
	"github.com/expense-tracker/backend/internal/stats"
	"github.com/gin-gonic/gin"
)

const (
	defaultMonths = 6
	maxMonths     = 120
)

var errMonths = errors.New("months must be an integer between 1 and 120")

// now is replaced in tests.
var now = time.Now

func RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", GetRoot)
	r.OPTIONS("", OptionsRoot)
	r.OPTIONS("/expense-stats", OptionsExpenseStats)
	r.OPTIONS("/category-breakdown", OptionsCategoryBreakdown)
	r.OPTIONS("/monthly-trend", OptionsMonthlyTrend)
	r.OPTIONS("/financial-insights", OptionsFinancialInsights)

	authenticated := r.Group("", auth.RequiredAPI())
	{
		authenticated.GET("/expense-stats", GetExpenseStats)
		authenticated.GET("/category-breakdown", GetCategoryBreakdown)
		authenticated.GET("/monthly-trend", GetMonthlyTrend)
		authenticated.GET("/financial-insights", GetFinancialInsights)
	}
}

// expenses returns the user's expenses from the given date on, oldest first.
func expenses(c *gin.Context, filter models.ExpenseFilter) ([]models.Expense, bool) {
	filter.SortBy = "date"
	filter.SortOrder = models.SortAscending

	list, err := auth.MustUser(c).Expenses(models.DB, filter)
	if err != nil {
		httperror.Handler(c, err)
		return nil, false
	}

	return list, true
}

// periodExpenses returns the expenses in the period requested with the
// period query parameter.
func periodExpenses(c *gin.Context, t time.Time) (stats.Period, []models.Expense, bool) {
	period := stats.ParsePeriod(c.Query("period"))
	start := period.StartDate(t)

	list, ok := expenses(c, models.ExpenseFilter{Start: &start})
	return period, list, ok
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Statistics
// @Success		204
// @Router			/api/expense-stats [options]
func OptionsExpenseStats(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Expense statistics
// @Description	Returns the total, the average per day and the number of expenses in a period
// @Tags			Statistics
// @Produce		json
// @Success		200		{object}	stats.Summary
// @Failure		401		{object}	httperror.Error
// @Failure		500		{object}	httperror.Error
// @Param			period	query		string	false	"Period"	Enums(week, month, year, all)	default(month)
// @Router			/api/expense-stats [get]
func GetExpenseStats(c *gin.Context) {
	t := now()
	period, list, ok := periodExpenses(c, t)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, stats.Totals(list, period, t))
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Statistics
// @Success		204
// @Router			/api/category-breakdown [options]
func OptionsCategoryBreakdown(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Category breakdown
// @Description	Returns the spending per category in a period. Categories are listed in the order of their first expense.
// @Tags			Statistics
// @Produce		json
// @Success		200		{object}	stats.Series
// @Failure		401		{object}	httperror.Error
// @Failure		500		{object}	httperror.Error
// @Param			period	query		string	false	"Period"	Enums(week, month, year, all)	default(month)
// @Router			/api/category-breakdown [get]
func GetCategoryBreakdown(c *gin.Context) {
	t := now()
	period, list, ok := periodExpenses(c, t)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, stats.CategoryBreakdown(list, period, t))
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Statistics
// @Success		204
// @Router			/api/monthly-trend [options]
func OptionsMonthlyTrend(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Monthly trend
// @Description	Returns the spending for each of the last months, oldest first
// @Tags			Statistics
// @Produce		json
// @Success		200		{object}	stats.Series
// @Failure		400		{object}	httperror.Error
// @Failure		401		{object}	httperror.Error
// @Failure		500		{object}	httperror.Error
// @Param			months	query		int	false	"Number of months"	minimum(1)	maximum(120)	default(6)
// @Router			/api/monthly-trend [get]
func GetMonthlyTrend(c *gin.Context) {
	months := defaultMonths
	if value, ok := c.GetQuery("months"); ok {
		m, err := strconv.Atoi(value)
		if err != nil || m < 1 || m > maxMonths {
			c.AbortWithStatusJSON(http.StatusBadRequest, httperror.New(errMonths))
			return
		}
		months = m
	}

	list, ok := expenses(c, models.ExpenseFilter{})
	if !ok {
		return
	}

	c.JSON(http.StatusOK, stats.MonthlyTrend(list, months, now()))
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Statistics
// @Success		204
// @Router			/api/financial-insights [options]
func OptionsFinancialInsights(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Financial insights
// @Description	Returns the top category, the biggest expense, the average expense and the spending trend across all expenses
// @Tags			Statistics
// @Produce		json
// @Success		200	{object}	stats.Insights
// @Failure		401	{object}	httperror.Error
// @Failure		500	{object}	httperror.Error
// @Router			/api/financial-insights [get]
func GetFinancialInsights(c *gin.Context) {
	list, ok := expenses(c, models.ExpenseFilter{})
	if !ok {
		return
	}

	c.JSON(http.StatusOK, stats.CalculateInsights(list))
}

type RootResponse struct {
	Links RootLinks `json:"links"`
}

type RootLinks struct {
	ExpenseStats      string `json:"expense_stats" example:"https://example.com/api/expense-stats"`           // Totals for a period
	CategoryBreakdown string `json:"category_breakdown" example:"https://example.com/api/category-breakdown"` // Spending per category for a period
	MonthlyTrend      string `json:"monthly_trend" example:"https://example.com/api/monthly-trend"`           // Spending per month
	FinancialInsights string `json:"financial_insights" example:"https://example.com/api/financial-insights"` // Insights across all expenses
	Docs              string `json:"docs" example:"https://example.com/docs/index.html"`                      // Swagger API documentation
}

// @Summary		API root
// @Description	Entrypoint for the JSON API, listing all endpoints
// @Tags			General
// @Success		200	{object}	RootResponse
// @Router			/api [get]
func GetRoot(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, RootResponse{
		Links: RootLinks{
			ExpenseStats:      url + "/api/expense-stats",
			CategoryBreakdown: url + "/api/category-breakdown",
			MonthlyTrend:      url + "/api/monthly-trend",
			FinancialInsights: url + "/api/financial-insights",
			Docs:              url + "/docs/index.html",
		},
	})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/api [options]
func OptionsRoot(c *gin.Context) {
	httputil.OptionsGet(c)
}
