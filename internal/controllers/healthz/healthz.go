// Package healthz reports whether the expense database can be used.
package healthz

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/expense-tracker/backend/internal/httperror"
	"github.com/expense-tracker/backend/internal/httputil"
	"github.com/expense-tracker/backend/internal/models"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// pingTimeout bounds the database check so that a hanging database
// does not block health checks.
const pingTimeout = 2 * time.Second

var errMissingTable = errors.New("database schema is not migrated")

func RegisterRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", Options)
	r.GET("", Get)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/healthz [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get health
// @Description	Returns the application health and, if not healthy, an error
// @Tags			General
// @Produce		json
// @Success		204
// @Failure		500	{object}	httperror.Error
// @Router			/healthz [get]
func Get(c *gin.Context) {
	if err := check(c.Request.Context()); err != nil {
		log.Error().Str("request-id", requestid.Get(c)).Err(err).Msg("Health check failed")
		httperror.Handler(c, models.ErrGeneral)
		return
	}

	c.Status(http.StatusNoContent)
}

// check pings the database and verifies that the expense tables exist.
func check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	sqlDB, err := models.DB.DB()
	if err != nil {
		return err
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return err
	}

	migrator := models.DB.WithContext(ctx).Migrator()
	for _, table := range []any{&models.User{}, &models.Session{}, &models.Expense{}} {
		if !migrator.HasTable(table) {
			return errMissingTable
		}
	}

	return nil
}
