package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// secureCookies marks all cookies as HTTPS only.
var secureCookies = false

// SecureCookies sets whether cookies are only sent over HTTPS.
func SecureCookies(secure bool) {
	secureCookies = secure
}

// SetCookie sets an HttpOnly, SameSite=Lax cookie for the whole site.
// A negative maxAge deletes the cookie, 0 makes it a session cookie.
func SetCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", secureCookies, true)
}
