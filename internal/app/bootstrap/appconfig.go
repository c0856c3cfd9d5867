// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig covers the
// framework settings (ports, TLS, log level, environment); everything the
// API itself needs lives here.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI            string        // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase       string        // Database name within MongoDB (CWT)
	MongoMaxPoolSize    uint64        // Upper bound on pooled connections
	MongoMinPoolSize    uint64        // Connections kept warm
	MongoConnectTimeout time.Duration // Deadline for the initial connect and ping

	// Browser-facing settings
	CORSAllowedOrigins []string // Origins allowed to call the API with credentials
	CookieName         string   // Auth cookie cleared by /logout
	CookieKey          string   // Signing key for the cookie store (blank generates one)

	// Route search policy
	BusReverseBlock bool // Fail a from/to search when the reverse route also exists

	// Per-IP throttle on mutating requests (0 disables)
	WriteRateLimit  int
	WriteRateWindow time.Duration

	// Store call deadlines
	TimeoutShort  time.Duration
	TimeoutMedium time.Duration
}
