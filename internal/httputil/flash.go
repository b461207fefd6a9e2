package httputil

import (
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	flashCookie     = "flash"
	flashContextKey = "flashes"
)

// Flash categories, they match the alert styles of the templates.
const (
	FlashSuccess = "success"
	FlashInfo    = "info"
	FlashWarning = "warning"
	FlashDanger  = "danger"
)

// Flash is a message shown once on the next rendered page.
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// AddFlash queues a message for the next page that is rendered, either in
// this request or, after a redirect, in the next one.
func AddFlash(c *gin.Context, category, message string) {
	flashes := append(pending(c), Flash{Category: category, Message: message})
	c.Set(flashContextKey, flashes)

	value, err := json.Marshal(flashes)
	if err != nil {
		return
	}

	SetCookie(c, flashCookie, base64.RawURLEncoding.EncodeToString(value), 0)
}

// Flashes returns all queued messages and removes them.
func Flashes(c *gin.Context) []Flash {
	flashes := pending(c)
	c.Set(flashContextKey, []Flash{})

	if _, err := c.Cookie(flashCookie); err == nil || len(flashes) > 0 {
		SetCookie(c, flashCookie, "", -1)
	}

	return flashes
}

// pending returns the flashes of this request. On first use, they are
// read from the cookie.
func pending(c *gin.Context) []Flash {
	if v, ok := c.Get(flashContextKey); ok {
		return v.([]Flash)
	}

	flashes := make([]Flash, 0)

	cookie, err := c.Cookie(flashCookie)
	if err == nil && cookie != "" {
		if value, err := base64.RawURLEncoding.DecodeString(cookie); err == nil {
			_ = json.Unmarshal(value, &flashes)
		}
	}

	c.Set(flashContextKey, flashes)
	return flashes
}

// LocalPath returns the path if it is a path on this server, otherwise
// the fallback. This prevents open redirects through the next parameter.
func LocalPath(path, fallback string) string {
	if !strings.HasPrefix(path, "/") || strings.HasPrefix(path, "//") || strings.HasPrefix(path, "/\\") {
		return fallback
	}
	return path
}
