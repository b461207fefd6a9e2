package router

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	docs "github.com/expense-tracker/backend/api"
	"github.com/expense-tracker/backend/internal/auth"
	"github.com/expense-tracker/backend/internal/config"
	"github.com/expense-tracker/backend/internal/controllers/account"
	"github.com/expense-tracker/backend/internal/controllers/api"
	"github.com/expense-tracker/backend/internal/controllers/expenses"
	"github.com/expense-tracker/backend/internal/controllers/healthz"
	"github.com/expense-tracker/backend/internal/controllers/version"
	"github.com/expense-tracker/backend/internal/httperror"
	"github.com/expense-tracker/backend/internal/validation"
	"github.com/expense-tracker/backend/internal/views"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/logger"
	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// This is set at build time with -ldflags "-X github.com/expense-tracker/backend/internal/router.appVersion=...".
var appVersion = "0.0.0"

var errMethodNotAllowed = errors.New("this HTTP method is not allowed for the endpoint you called")

// Config creates the engine with all middlewares. The returned teardown
// function must be called when the engine is not used anymore.
func Config(cfg config.Config) (*gin.Engine, func(), error) {
	teardown := func() {
		if !unregisterPrometheusMetrics() {
			log.Error().Msg("Failed to unregister prometheus metrics")
		}
	}

	gin.SetMode(cfg.GinMode)

	// Set up the router and middlewares
	r := gin.New()

	// Don’t process X-Forwarded-For header as we do not do anything with
	// client IPs
	r.ForwardedByClientIP = false

	// Send a HTTP 405 (Method not allowed) for all paths where there is
	// a handler, but not for the specific method used
	r.HandleMethodNotAllowed = true

	err := registerPrometheusMetrics()
	if err != nil {
		return nil, teardown, err
	}

	err = validation.Register()
	if err != nil {
		return nil, teardown, err
	}

	templates, err := views.Templates()
	if err != nil {
		return nil, teardown, fmt.Errorf("could not parse templates: %w", err)
	}
	r.SetHTMLTemplate(templates)

	auth.Configure(cfg.SessionDuration, cfg.SessionSecureCookie)

	r.Use(gin.Recovery())
	r.Use(requestid.New())
	r.Use(URLMiddleware(cfg.APIURL))
	r.Use(MetricsMiddleware())
	r.Use(logger.SetLogger(
		logger.WithDefaultLevel(zerolog.InfoLevel),
		logger.WithClientErrorLevel(zerolog.InfoLevel),
		logger.WithServerErrorLevel(zerolog.ErrorLevel),
		logger.WithLogger(func(c *gin.Context, logger zerolog.Logger) zerolog.Logger {
			return logger.With().
				Str("request-id", requestid.Get(c)).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Int("status", c.Writer.Status()).
				Int("size", c.Writer.Size()).
				Str("user-agent", c.Request.UserAgent()).
				Logger()
		})))

	// CORS settings
	if len(cfg.CORSAllowOrigins) > 0 {
		log.Debug().Strs("CORS Allowed Origins", cfg.CORSAllowOrigins).Msg("Router")

		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowOrigins,
			AllowMethods:     []string{"OPTIONS", "GET", "POST"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", auth.CSRFHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.Use(auth.Load())

	r.NoRoute(func(c *gin.Context) {
		if isAPI(c) {
			c.AbortWithStatusJSON(http.StatusNotFound, httperror.Error{Message: "there is no endpoint matching your request"})
			return
		}
		views.NotFound(c)
	})

	r.NoMethod(func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusMethodNotAllowed, httperror.New(errMethodNotAllowed))
	})

	// Disable the gin debug route printing as it clutters logs (and test logs)
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, numHandlers int) {}

	// Don’t trust any proxy. We do not process any client IPs,
	// therefore we don’t need to trust anyone here.
	_ = r.SetTrustedProxies([]string{})

	log.Debug().Str("API Base URL", cfg.APIURL.String()).Str("Host", cfg.APIURL.Host).Str("Path", cfg.APIURL.Path).Msg("Router")
	log.Info().Str("version", appVersion).Msg("Router")

	docs.SwaggerInfo.Host = cfg.APIURL.Host
	docs.SwaggerInfo.BasePath = cfg.APIURL.Path
	docs.SwaggerInfo.Title = "Expense Tracker"
	docs.SwaggerInfo.Version = appVersion
	docs.SwaggerInfo.Description = "JSON API of the expense tracker. All statistics endpoints need a session cookie."

	return r, teardown, nil
}

func isAPI(c *gin.Context) bool {
	return c.Request.URL.Path == "/api" || strings.HasPrefix(c.Request.URL.Path, "/api/")
}

// AttachRoutes attaches the routes to the router group that is passed in.
func AttachRoutes(cfg config.Config, group *gin.RouterGroup) {
	group.StaticFS("/static", views.Static())

	healthz.RegisterRoutes(group.Group("/healthz"))
	version.RegisterRoutes(group.Group("/version"), appVersion)
	group.GET("/metrics", gin.WrapH(promhttp.Handler()))
	group.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// pprof performance profiles
	if cfg.EnablePprof {
		pprof.RouteRegister(group, "debug/pprof")
	}

	api.RegisterRoutes(group.Group("/api"))

	// HTML pages submit forms, they are protected against CSRF
	pages := group.Group("", auth.CSRF())
	account.RegisterRoutes(pages.Group(""))
	expenses.RegisterRoutes(pages.Group(""))
}
