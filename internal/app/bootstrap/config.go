// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for WayGO.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, cookie_name, etc.
//   - Environment variables: WAYGO_MONGO_URI, WAYGO_COOKIE_NAME, etc.
//   - Command-line flags: --mongo_uri, --cookie_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "CWT", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 5, Desc: "MongoDB min connection pool size (default: 5)"},
	{Name: "mongo_connect_timeout", Default: "10s", Desc: "MongoDB connect and initial ping timeout"},

	{Name: "cors_allowed_origins", Default: "http://localhost:3000", Desc: "Comma-separated list of allowed CORS origins"},
	{Name: "cookie_name", Default: "token", Desc: "Auth cookie cleared by /logout"},
	{Name: "cookie_key", Default: "", Desc: "Cookie signing key (blank generates a random key at startup)"},

	{Name: "bus_reverse_block", Default: true, Desc: "Reject a from/to bus search when the reverse route also exists"},

	{Name: "write_rate_limit", Default: 60, Desc: "Mutating requests allowed per client IP per window (0 disables)"},
	{Name: "write_rate_window", Default: "1m", Desc: "Window for write_rate_limit"},

	{Name: "timeout_short", Default: "5s", Desc: "Deadline for single-document store calls"},
	{Name: "timeout_medium", Default: "10s", Desc: "Deadline for listings and multi-step store calls"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, WAYGO_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "WAYGO", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:            appValues.String("mongo_uri"),
		MongoDatabase:       appValues.String("mongo_database"),
		MongoMaxPoolSize:    uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize:    uint64(appValues.Int("mongo_min_pool_size")),
		MongoConnectTimeout: appValues.Duration("mongo_connect_timeout", 10*time.Second),

		CORSAllowedOrigins: splitList(appValues.String("cors_allowed_origins")),
		CookieName:         appValues.String("cookie_name"),
		CookieKey:          appValues.String("cookie_key"),

		BusReverseBlock: appValues.Bool("bus_reverse_block"),

		WriteRateLimit:  appValues.Int("write_rate_limit"),
		WriteRateWindow: appValues.Duration("write_rate_window", time.Minute),

		TimeoutShort:  appValues.Duration("timeout_short", 5*time.Second),
		TimeoutMedium: appValues.Duration("timeout_medium", 10*time.Second),
	}

	return coreCfg, appCfg, nil
}

// splitList turns "a, b,,c" into [a b c].
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ValidateConfig performs app-specific config validation.
//
// WayGO validates the MongoDB URI format to catch configuration errors
// early, before attempting to connect, and refuses a production start
// without an explicit CORS whitelist.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if strings.TrimSpace(appCfg.MongoDatabase) == "" {
		return errors.New("mongo_database must not be empty")
	}
	if appCfg.MongoMinPoolSize > appCfg.MongoMaxPoolSize {
		return fmt.Errorf("mongo_min_pool_size (%d) exceeds mongo_max_pool_size (%d)",
			appCfg.MongoMinPoolSize, appCfg.MongoMaxPoolSize)
	}
	if strings.TrimSpace(appCfg.CookieName) == "" {
		return errors.New("cookie_name must not be empty")
	}
	if appCfg.WriteRateLimit < 0 {
		return errors.New("write_rate_limit must not be negative")
	}
	if appCfg.WriteRateLimit > 0 && appCfg.WriteRateWindow <= 0 {
		return errors.New("write_rate_window must be positive when write_rate_limit is set")
	}
	for _, o := range appCfg.CORSAllowedOrigins {
		if o == "*" {
			return errors.New("cors_allowed_origins cannot be * because credentials are allowed")
		}
	}
	if coreCfg != nil && coreCfg.Env == "prod" {
		if len(appCfg.CORSAllowedOrigins) == 0 {
			return errors.New("cors_allowed_origins is required in production")
		}
		if appCfg.CookieKey == "" {
			logger.Warn("cookie_key not set; a random key will be generated")
		}
	}
	return nil
}
