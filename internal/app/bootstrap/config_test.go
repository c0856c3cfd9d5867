package bootstrap

import (
	"reflect"
	"testing"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

func validConfig() AppConfig {
	return AppConfig{
		MongoURI:           "mongodb://localhost:27017",
		MongoDatabase:      "CWT",
		MongoMaxPoolSize:   100,
		MongoMinPoolSize:   5,
		CORSAllowedOrigins: []string{"http://localhost:3000"},
		CookieName:         "token",
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" http://a.com, ,http://b.com,")
	want := []string{"http://a.com", "http://b.com"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if splitList("") != nil {
		t.Error("empty input should give nil")
	}
}

func TestValidateConfig(t *testing.T) {
	logger := zap.NewNop()
	dev := &config.CoreConfig{Env: "dev"}
	prod := &config.CoreConfig{Env: "prod"}

	if err := ValidateConfig(dev, validConfig(), logger); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	tests := []struct {
		name   string
		core   *config.CoreConfig
		mutate func(*AppConfig)
	}{
		{"no database", dev, func(c *AppConfig) { c.MongoDatabase = " " }},
		{"pool sizes", dev, func(c *AppConfig) { c.MongoMinPoolSize = 200 }},
		{"no cookie name", dev, func(c *AppConfig) { c.CookieName = "" }},
		{"wildcard origin", dev, func(c *AppConfig) { c.CORSAllowedOrigins = []string{"*"} }},
		{"negative write limit", dev, func(c *AppConfig) { c.WriteRateLimit = -1 }},
		{"write limit without window", dev, func(c *AppConfig) { c.WriteRateLimit = 10; c.WriteRateWindow = 0 }},
		{"prod without origins", prod, func(c *AppConfig) { c.CORSAllowedOrigins = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			if err := ValidateConfig(tt.core, cfg, logger); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
