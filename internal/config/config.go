package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// ErrMissingAdminCredentials is returned by RequireAdminCredentials when either
// half of the admin pair is unset.
var ErrMissingAdminCredentials = errors.New("admin credentials must be provided")

// Config holds runtime configuration values for the survey service.
type Config struct {
	AppName         string
	AppEnv          string
	AppPort         string
	DatabaseDriver  string
	DatabaseURL     string
	RedisURL        string
	StatsCacheTTL   time.Duration
	AdminUsername   string
	AdminPassword   string
	CatalogPath     string
	NATSURL         string
	NATSSubject     string
	SubmitRateLimit int
	AllowOrigins    string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// RequireAdminCredentials fails unless both SURVEY_ADMIN_USERNAME and
// SURVEY_ADMIN_PASSWORD are set. Only processes serving admin routes need them.
func (c Config) RequireAdminCredentials() error {
	if c.AdminUsername == "" || c.AdminPassword == "" {
		return ErrMissingAdminCredentials
	}
	return nil
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("SURVEY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "ACT Survey")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "5000")
	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.url", "survey_data.db")
	v.SetDefault("stats.cache_ttl", "30s")
	v.SetDefault("nats.subject", "survey.responses.submitted")
	v.SetDefault("submit.rate_limit", 30)
	v.SetDefault("http.allow_origins", "*")

	// PORT is honoured for platforms that inject it directly.
	_ = v.BindEnv("app.port", "SURVEY_APP_PORT", "PORT")

	return fromViper(v)
}

func fromViper(v *viper.Viper) (Config, error) {
	ttlString := v.GetString("stats.cache_ttl")
	if ttlString == "" {
		ttlString = "30s"
	}

	ttl, err := time.ParseDuration(ttlString)
	if err != nil {
		return Config{}, fmt.Errorf("invalid stats cache ttl: %w", err)
	}

	cfg := Config{
		AppName:         v.GetString("app.name"),
		AppEnv:          v.GetString("app.env"),
		AppPort:         v.GetString("app.port"),
		DatabaseDriver:  strings.ToLower(strings.TrimSpace(v.GetString("database.driver"))),
		DatabaseURL:     v.GetString("database.url"),
		RedisURL:        v.GetString("redis.url"),
		StatsCacheTTL:   ttl,
		AdminUsername:   v.GetString("admin.username"),
		AdminPassword:   v.GetString("admin.password"),
		CatalogPath:     v.GetString("catalog.path"),
		NATSURL:         v.GetString("nats.url"),
		NATSSubject:     v.GetString("nats.subject"),
		SubmitRateLimit: v.GetInt("submit.rate_limit"),
		AllowOrigins:    v.GetString("http.allow_origins"),
	}

	switch cfg.DatabaseDriver {
	case DriverSQLite, DriverPostgres:
	default:
		return Config{}, fmt.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}

	if cfg.SubmitRateLimit <= 0 {
		cfg.SubmitRateLimit = 30
	}

	return cfg, nil
}
