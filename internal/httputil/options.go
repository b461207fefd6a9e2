package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// OptionsGet answers OPTIONS requests for read-only endpoints.
func OptionsGet(c *gin.Context) {
	c.Header("allow", "OPTIONS, GET")
	c.Status(http.StatusNoContent)
}

// OptionsGetPost answers OPTIONS requests for form endpoints.
func OptionsGetPost(c *gin.Context) {
	c.Header("allow", "OPTIONS, GET, POST")
	c.Status(http.StatusNoContent)
}
