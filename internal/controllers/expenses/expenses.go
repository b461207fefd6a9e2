// Package expenses implements the pages to list, add, edit and delete
// expenses, and the dashboard.
package expenses

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/expense-tracker/backend/internal/auth"
	"github.com/expense-tracker/backend/internal/httputil"
	"github.com/expense-tracker/backend/internal/models"
	"github.com/expense-tracker/backend/internal/types"
	"github.com/expense-tracker/backend/internal/uuid"
	"github.com/expense-tracker/backend/internal/validation"
	"github.com/expense-tracker/backend/internal/views"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.RouterGroup) {
	r.Use(auth.Required())

	r.GET("/dashboard", GetDashboard)
	r.GET("/expenses", GetExpenses)

	r.GET("/expense/add", GetAdd)
	r.POST("/expense/add", PostAdd)
	r.GET("/expense/edit/:id", GetEdit)
	r.POST("/expense/edit/:id", PostEdit)
	r.POST("/expense/delete/:id", PostDelete)
}

func GetDashboard(c *gin.Context) {
	views.Render(c, http.StatusOK, "dashboard.html", views.Page{Title: "Dashboard"})
}

// parseDate parses a date filter. Invalid dates are reported with a flash
// message and ignored.
func parseDate(c *gin.Context, value *string, name string) *types.Date {
	if *value == "" {
		return nil
	}

	d, err := types.ParseDate(*value)
	if err != nil {
		httputil.AddFlash(c, httputil.FlashDanger, fmt.Sprintf("Invalid %s %q, dates must be in YYYY-MM-DD format.", name, *value))
		*value = ""
		return nil
	}

	return &d
}

func GetExpenses(c *gin.Context) {
	user := auth.MustUser(c)

	var query Query
	if err := c.ShouldBindQuery(&query); err != nil {
		views.Error(c, err)
		return
	}

	if query.SortBy == "" {
		query.SortBy = "date"
	}
	query.SortOrder = strings.ToLower(query.SortOrder)
	if query.SortOrder != models.SortAscending {
		query.SortOrder = models.SortDescending
	}

	filter := models.ExpenseFilter{
		Category:  query.Category,
		Start:     parseDate(c, &query.StartDate, "start date"),
		End:       parseDate(c, &query.EndDate, "end date"),
		SortBy:    query.SortBy,
		SortOrder: query.SortOrder,
		Search:    query.Search,
	}

	expenses, err := user.Expenses(models.DB, filter)
	if err != nil {
		views.Error(c, err)
		return
	}

	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}

	views.Render(c, http.StatusOK, "expenses.html", views.Page{
		Title: "Expenses",
		Data: listPage{
			Filter:   query,
			Expenses: expenses,
			Total:    total,
		},
	})
}

// renderForm shows the expense form. Validation errors are listed per field.
func renderForm(c *gin.Context, status int, title string, page formPage) {
	views.Render(c, status, "expense_form.html", views.Page{Title: title, Data: page})
}

// bindForm binds and validates the submitted form. When it is not valid,
// the form is rendered again and false is returned.
func bindForm(c *gin.Context, title, action string) (Form, bool) {
	var form Form
	err := c.ShouldBindWith(&form, binding.Form)
	if err == nil {
		return form, true
	}

	renderForm(c, http.StatusBadRequest, title, formPage{
		Action: action,
		Form:   form,
		Errors: validation.Messages(err),
	})
	return form, false
}

// saveError handles errors from saving an expense. Errors of the model
// validation are shown with the form.
func saveError(c *gin.Context, err error, title string, page formPage) {
	if errors.Is(err, models.ErrGeneral) {
		views.Error(c, err)
		return
	}

	httputil.AddFlash(c, httputil.FlashDanger, err.Error())
	renderForm(c, http.StatusBadRequest, title, page)
}

func GetAdd(c *gin.Context) {
	renderForm(c, http.StatusOK, "Add Expense", formPage{
		Action: "/expense/add",
		Form:   Form{Date: types.DateOf(time.Now()).String()},
	})
}

func PostAdd(c *gin.Context) {
	const title = "Add Expense"
	page := formPage{Action: "/expense/add"}

	form, ok := bindForm(c, title, page.Action)
	if !ok {
		return
	}
	page.Form = form

	expense := models.Expense{UserID: auth.MustUser(c).ID}
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		if err := form.apply(&expense); err != nil {
			return err
		}
		return tx.Create(&expense).Error
	})
	if err != nil {
		saveError(c, err, title, page)
		return
	}

	httputil.AddFlash(c, httputil.FlashSuccess, "Expense added successfully!")
	c.Redirect(http.StatusFound, "/expenses")
}

// getExpense returns the expense from the path parameter. Malformed IDs
// and expenses of other users are rendered as not found.
func getExpense(c *gin.Context) (models.Expense, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		views.NotFound(c)
		return models.Expense{}, false
	}

	expense, err := auth.MustUser(c).Expense(models.DB, id.UUID)
	if err != nil {
		views.Error(c, err)
		return models.Expense{}, false
	}

	return expense, true
}

func GetEdit(c *gin.Context) {
	expense, ok := getExpense(c)
	if !ok {
		return
	}

	renderForm(c, http.StatusOK, "Edit Expense", formPage{
		Action: "/expense/edit/" + expense.ID.String(),
		Form:   formOf(expense),
	})
}

func PostEdit(c *gin.Context) {
	const title = "Edit Expense"

	expense, ok := getExpense(c)
	if !ok {
		return
	}

	page := formPage{Action: "/expense/edit/" + expense.ID.String()}
	form, ok := bindForm(c, title, page.Action)
	if !ok {
		return
	}
	page.Form = form

	err := models.DB.Transaction(func(tx *gorm.DB) error {
		if err := form.apply(&expense); err != nil {
			return err
		}
		return tx.Save(&expense).Error
	})
	if err != nil {
		saveError(c, err, title, page)
		return
	}

	httputil.AddFlash(c, httputil.FlashSuccess, "Expense updated successfully!")
	c.Redirect(http.StatusFound, "/expenses")
}

func PostDelete(c *gin.Context) {
	expense, ok := getExpense(c)
	if !ok {
		return
	}

	err := models.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Delete(&expense).Error
	})
	if err != nil {
		views.Error(c, err)
		return
	}

	httputil.AddFlash(c, httputil.FlashSuccess, "Expense deleted successfully!")
	c.Redirect(http.StatusFound, "/expenses")
}
