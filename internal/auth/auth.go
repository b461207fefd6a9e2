// Package auth resolves the session cookie to a user and protects the
// routes that need a login.
package auth

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/expense-tracker/backend/internal/httperror"
	"github.com/expense-tracker/backend/internal/httputil"
	"github.com/expense-tracker/backend/internal/models"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// CookieName is the name of the session cookie.
const CookieName = "session"

const (
	userKey    = "auth-user"
	sessionKey = "auth-session"
)

var errLoginRequired = errors.New("you need to log in to use this endpoint")

// duration is the session lifetime.
var duration = 30 * 24 * time.Hour

// Configure sets the session lifetime and whether the session, CSRF and
// flash cookies are only sent over HTTPS.
func Configure(sessionDuration time.Duration, secure bool) {
	duration = sessionDuration
	httputil.SecureCookies(secure)
}

// Duration returns the configured session lifetime.
func Duration() time.Duration {
	return duration
}

func setCookie(c *gin.Context, name, value string, maxAge int) {
	httputil.SetCookie(c, name, value, maxAge)
}

// Load resolves the session cookie and stores the session and its user
// in the context. Sessions in the second half of their lifetime are renewed.
func Load() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(CookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		session, err := models.SessionByToken(models.DB, token)
		if err != nil {
			if !errors.Is(err, models.ErrResourceNotFound) {
				log.Error().Str("request-id", requestid.Get(c)).Err(err).Msg("Session lookup failed")
			}

			// Invalid or expired session, clear the cookie
			setCookie(c, CookieName, "", -1)
			c.Next()
			return
		}

		if session.NeedsRenewal(duration, time.Now()) {
			if err := session.Renew(models.DB, duration); err == nil {
				setCookie(c, CookieName, session.Token, int(duration.Seconds()))
			} else {
				log.Warn().Str("request-id", requestid.Get(c)).Err(err).Msg("Session renewal failed")
			}
		}

		c.Set(sessionKey, session)
		c.Set(userKey, session.User)
		c.Next()
	}
}

// User returns the logged in user.
func User(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return models.User{}, false
	}

	user, ok := v.(models.User)
	return user, ok
}

// Session returns the session of the logged in user.
func Session(c *gin.Context) (models.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return models.Session{}, false
	}

	session, ok := v.(models.Session)
	return session, ok
}

// MustUser returns the logged in user. It must only be used behind
// Required or RequiredAPI.
func MustUser(c *gin.Context) models.User {
	return c.MustGet(userKey).(models.User)
}

// Required redirects anonymous visitors to the login page. After logging
// in, they are sent back to the page they requested.
func Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := User(c); ok {
			c.Next()
			return
		}

		httputil.AddFlash(c, httputil.FlashInfo, "Please log in to access this page.")
		c.Redirect(http.StatusFound, "/login?next="+url.QueryEscape(c.Request.URL.RequestURI()))
		c.Abort()
	}
}

// RequiredAPI rejects anonymous requests with 401 Unauthorized.
func RequiredAPI() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := User(c); ok {
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusUnauthorized, httperror.New(errLoginRequired))
	}
}

// Anonymous sends logged in users to the dashboard.
func Anonymous() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := User(c); ok {
			c.Redirect(http.StatusFound, "/dashboard")
			c.Abort()
			return
		}

		c.Next()
	}
}

// Login starts a session for the user and sets the session cookie.
func Login(c *gin.Context, user models.User) (models.Session, error) {
	session, err := models.NewSession(models.DB, user.ID, duration)
	if err != nil {
		return models.Session{}, err
	}

	setCookie(c, CookieName, session.Token, int(duration.Seconds()))

	if removed, err := models.CleanExpiredSessions(models.DB); err != nil {
		log.Warn().Str("request-id", requestid.Get(c)).Err(err).Msg("Removing expired sessions failed")
	} else if removed > 0 {
		log.Debug().Int64("count", removed).Msg("Removed expired sessions")
	}

	c.Set(sessionKey, session)
	c.Set(userKey, user)
	return session, nil
}

// Logout ends the current session and clears the session cookie.
func Logout(c *gin.Context) error {
	setCookie(c, CookieName, "", -1)

	session, ok := Session(c)
	if !ok {
		return nil
	}

	c.Set(sessionKey, nil)
	c.Set(userKey, nil)
	return models.DeleteSession(models.DB, session.Token)
}
