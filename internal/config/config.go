package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultAppEnv         = "dev"
	defaultHTTPPort       = "8080"
	defaultDatabaseURL    = "profhub.db"
	defaultJWTSecret      = "change-me-jwt-secret"
	defaultJWTTTL         = "24h"
	defaultLogLevel       = "info"
	defaultCookieName     = "session"
	defaultCookieSecure   = false
	defaultShutdownPeriod = "15s"
)

type Config struct {
	AppEnv             string
	HTTPPort           string
	DatabaseURL        string
	JWTSecret          string
	JWTTTL             time.Duration
	LogLevel           string
	CookieName         string
	CookieSecure       bool
	CORSAllowedOrigins []string
	ShutdownTimeout    time.Duration
}

// Load reads an optional .env file and then the process environment.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", defaultAppEnv)
	v.SetDefault("HTTP_PORT", defaultHTTPPort)
	v.SetDefault("DATABASE_URL", defaultDatabaseURL)
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_TTL", defaultJWTTTL)
	v.SetDefault("LOG_LEVEL", defaultLogLevel)
	v.SetDefault("COOKIE_NAME", defaultCookieName)
	v.SetDefault("COOKIE_SECURE", defaultCookieSecure)
	v.SetDefault("SHUTDOWN_TIMEOUT", defaultShutdownPeriod)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		AppEnv:       strings.ToLower(strings.TrimSpace(v.GetString("APP_ENV"))),
		HTTPPort:     strings.TrimSpace(v.GetString("HTTP_PORT")),
		DatabaseURL:  strings.TrimSpace(v.GetString("DATABASE_URL")),
		JWTSecret:    strings.TrimSpace(v.GetString("JWT_SECRET")),
		LogLevel:     strings.TrimSpace(v.GetString("LOG_LEVEL")),
		CookieName:   strings.TrimSpace(v.GetString("COOKIE_NAME")),
		CookieSecure: v.GetBool("COOKIE_SECURE"),
	}

	var err error
	cfg.JWTTTL, err = parseDuration(v, "JWT_TTL")
	if err != nil {
		return nil, err
	}
	cfg.ShutdownTimeout, err = parseDuration(v, "SHUTDOWN_TIMEOUT")
	if err != nil {
		return nil, err
	}

	// CORS_ALLOWED_ORIGINS=https://app.com,https://admin.app.com
	for _, o := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.HTTPPort == "" {
		return fmt.Errorf("HTTP_PORT must not be empty")
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if c.CookieName == "" {
		return fmt.Errorf("COOKIE_NAME must not be empty")
	}

	if c.IsProd() {
		if c.JWTSecret == "" || c.JWTSecret == defaultJWTSecret {
			return fmt.Errorf("in prod JWT_SECRET must be set and not default")
		}
		if !c.CookieSecure {
			return fmt.Errorf("in prod COOKIE_SECURE must be true")
		}
	}
	return nil
}

func (c *Config) IsProd() bool {
	return c.AppEnv == "prod" || c.AppEnv == "production" || c.AppEnv == "release"
}

func parseDuration(v *viper.Viper, name string) (time.Duration, error) {
	value := strings.TrimSpace(v.GetString(name))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}
