package auth

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/expense-tracker/backend/internal/models"
	"github.com/gin-gonic/gin"
)

const (
	// CSRFField is the name of the form field and the cookie holding the
	// CSRF token for anonymous visitors.
	CSRFField = "csrf_token"

	// CSRFHeader can be used instead of the form field.
	CSRFHeader = "X-CSRF-Token"

	csrfKey = "auth-csrf"
)

var errCSRF = errors.New("The CSRF token is missing or invalid.")

// CSRFToken returns the token forms must send back.
//
// For logged in users, it is stored with the session. Anonymous visitors
// get a token in a cookie that is created on first use.
func CSRFToken(c *gin.Context) string {
	if session, ok := Session(c); ok {
		return session.CSRFToken
	}

	if token := c.GetString(csrfKey); token != "" {
		return token
	}

	if token, err := c.Cookie(CSRFField); err == nil && token != "" {
		return token
	}

	token, err := models.NewToken()
	if err != nil {
		return ""
	}

	setCookie(c, CSRFField, token, 0)
	c.Set(csrfKey, token)
	return token
}

// CSRF rejects form submissions that do not send the CSRF token.
func CSRF() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		var expected string
		if session, ok := Session(c); ok {
			expected = session.CSRFToken
		} else if cookie, err := c.Cookie(CSRFField); err == nil {
			expected = cookie
		}

		sent := c.GetHeader(CSRFHeader)
		if sent == "" {
			sent = c.PostForm(CSRFField)
		}

		if expected == "" || subtle.ConstantTimeCompare([]byte(expected), []byte(sent)) != 1 {
			c.String(http.StatusForbidden, errCSRF.Error())
			c.Abort()
			return
		}

		c.Next()
	}
}
