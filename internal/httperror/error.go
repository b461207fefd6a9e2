// Package httperror renders errors for the JSON API.
package httperror

import (
	"errors"
	"net/http"

	"github.com/expense-tracker/backend/internal/models"
	"github.com/expense-tracker/backend/internal/uuid"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Error is the body of all error responses of the JSON API.
type Error struct {
	Message string `json:"error" example:"there is no expense matching your query"`
}

func New(e error) Error {
	return Error{
		Message: e.Error(),
	}
}

// Status returns the HTTP status code for an error.
func Status(err error) int {
	switch {
	case errors.Is(err, models.ErrGeneral):
		return http.StatusInternalServerError
	case errors.Is(err, models.ErrResourceNotFound), errors.Is(err, uuid.ErrInvalid):
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}

// Handler writes the error with the matching status code.
func Handler(c *gin.Context, err error) {
	status := Status(err)
	if status == http.StatusInternalServerError {
		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
	}

	c.AbortWithStatusJSON(status, New(err))
}
