package version

import (
	"net/http"

	"github.com/expense-tracker/backend/internal/httputil"
	"github.com/expense-tracker/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// Version of the application
//
// This is set at build time with -ldflags and passed in by the router.
var appVersion = "0.0.0"

type Response struct {
	Data Object `json:"data"` // Data object for the version endpoint
}

type Object struct {
	Version  string `json:"version" example:"1.1.0"`   // the running version of the expense tracker
	Database string `json:"database" example:"sqlite"` // the database backend in use, "sqlite" or "postgres"
}

func RegisterRoutes(r *gin.RouterGroup, version string) {
	// set the version so that responses are correct
	appVersion = version

	r.GET("", Get)
	r.OPTIONS("", Options)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/version [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Application version
// @Description	Returns the software version of the application
// @Tags			General
// @Success		200	{object}	Response
// @Router			/version [get]
func Get(c *gin.Context) {
	var database string
	if models.DB != nil {
		database = models.DB.Dialector.Name()
	}

	c.JSON(http.StatusOK, Response{
		Data: Object{
			Version:  appVersion,
			Database: database,
		},
	})
}
