// Package views renders the HTML pages of the application.
package views

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/expense-tracker/backend/internal/auth"
	"github.com/expense-tracker/backend/internal/httperror"
	"github.com/expense-tracker/backend/internal/httputil"
	"github.com/expense-tracker/backend/internal/models"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var printer = message.NewPrinter(language.English)

// Page is passed to every template.
type Page struct {
	Title      string
	User       *models.User
	Flashes    []httputil.Flash
	CSRFToken  string
	Categories []string

	// Data holds the values specific to the page
	Data any
}

// Templates parses all page templates.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"money": Money,
	}).ParseFS(templateFS, "templates/*.html")
}

// Static returns the file system with the stylesheets and scripts.
func Static() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

// Money formats an amount with two decimals and thousands separators.
func Money(d decimal.Decimal) string {
	return printer.Sprintf("$%.2f", d.Round(2).InexactFloat64())
}

// Render renders the page template with the values shared by all pages.
// Pending flash messages are consumed.
func Render(c *gin.Context, status int, name string, page Page) {
	if user, ok := auth.User(c); ok {
		page.User = &user
	}

	page.Flashes = httputil.Flashes(c)
	page.CSRFToken = auth.CSRFToken(c)
	page.Categories = models.Categories

	c.HTML(status, name, page)
}

// NotFound renders the 404 page.
func NotFound(c *gin.Context) {
	Render(c, http.StatusNotFound, "not_found.html", Page{Title: "Page not found"})
	c.Abort()
}

// Error renders the page for an error. Errors for missing resources
// show the 404 page.
func Error(c *gin.Context, err error) {
	status := httperror.Status(err)
	if status == http.StatusNotFound {
		NotFound(c)
		return
	}

	if status == http.StatusInternalServerError {
		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
	}

	Render(c, status, "error.html", Page{Title: "Error", Data: err.Error()})
	c.Abort()
}
