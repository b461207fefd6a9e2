// Package config reads the runtime configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	// HTTP server
	Port   string
	APIURL *url.URL

	// Database
	DataDir     string
	DatabaseURL string // PostgreSQL DSN, SQLite in DataDir is used when empty or unreachable

	// Sessions
	SessionDuration     time.Duration
	SessionSecureCookie bool

	// Router
	GinMode          string
	LogFormat        string
	CORSAllowOrigins []string
	EnablePprof      bool

	// Values that could not be parsed, reported by Validate
	parseErrors []string
}

// Load reads the configuration from the environment.
//
// If files are passed, they are loaded with godotenv first. Variables that
// are already set in the environment are not overridden. Missing files are
// ignored so that a .env file is optional.
func Load(files ...string) (Config, error) {
	for _, f := range files {
		err := godotenv.Load(f)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("could not load %s: %w", f, err)
		}

		if err == nil {
			log.Debug().Str("file", f).Msg("Loaded environment file")
		}
	}

	var parseErrors []string

	cfg := Config{
		Port:                getEnv("PORT", "8080"),
		DataDir:             getEnv("DATA_DIR", "data"),
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		SessionDuration:     getEnvDuration("SESSION_DURATION", 30*24*time.Hour, &parseErrors),
		SessionSecureCookie: getEnvBool("SESSION_SECURE_COOKIE", false, &parseErrors),
		GinMode:             getEnv("GIN_MODE", "release"),
		LogFormat:           getEnv("LOG_FORMAT", ""),
		CORSAllowOrigins:    strings.Fields(getEnv("CORS_ALLOW_ORIGINS", "")),
		EnablePprof:         getEnvBool("ENABLE_PPROF", false, &parseErrors),
		parseErrors:         parseErrors,
	}

	apiURL, err := url.Parse(getEnv("API_URL", "http://localhost:"+cfg.Port))
	if err != nil {
		return Config{}, fmt.Errorf("environment variable API_URL must be a valid URL: %w", err)
	}
	cfg.APIURL = apiURL

	return cfg, cfg.Validate()
}

// Validate validates the configuration and returns an error if invalid.
func (c Config) Validate() error {
	problems := append([]string{}, c.parseErrors...)

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.APIURL == nil || c.APIURL.Scheme == "" || c.APIURL.Host == "" {
		problems = append(problems, "API_URL must be an absolute URL, e.g. https://expenses.example.com")
	}

	if c.DataDir == "" {
		problems = append(problems, "DATA_DIR cannot be empty")
	}

	if c.SessionDuration < time.Minute {
		problems = append(problems, fmt.Sprintf("invalid session duration %v: must be at least one minute", c.SessionDuration))
	}

	switch c.GinMode {
	case "debug", "release", "test":
	default:
		problems = append(problems, fmt.Sprintf("invalid GIN_MODE '%s': must be one of debug, release, test", c.GinMode))
	}

	switch c.LogFormat {
	case "", "human", "json":
	default:
		problems = append(problems, fmt.Sprintf("invalid LOG_FORMAT '%s': must be human or json", c.LogFormat))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool parses a boolean variable. Unparsable values are added to
// problems and the default is used.
func getEnvBool(key string, defaultValue bool, problems *[]string) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	b, err := strconv.ParseBool(value)
	if err != nil {
		*problems = append(*problems, fmt.Sprintf("invalid %s '%s': must be true or false", key, value))
		return defaultValue
	}
	return b
}

// getEnvDuration parses a duration variable like "720h". Unparsable values
// are added to problems and the default is used.
func getEnvDuration(key string, defaultValue time.Duration, problems *[]string) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		*problems = append(*problems, fmt.Sprintf("invalid %s '%s': must be a duration like 720h", key, value))
		return defaultValue
	}
	return d
}
