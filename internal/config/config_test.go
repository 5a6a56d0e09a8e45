package config

import (
	"strings"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()

	vars := map[string]string{
		"QA_PRIMARY.ENV":                 "development",
		"QA_SERVER.PORT":                 "8080",
		"QA_SERVER.READ_TIMEOUT":         "30",
		"QA_SERVER.WRITE_TIMEOUT":        "30",
		"QA_SERVER.IDLE_TIMEOUT":         "60",
		"QA_SERVER.CORS_ALLOWED_ORIGINS": "http://localhost:3000",
		"QA_DATABASE.HOST":               "localhost",
		"QA_DATABASE.PORT":               "5432",
		"QA_DATABASE.USER":               "postgres",
		"QA_DATABASE.PASSWORD":           "p@ss:word",
		"QA_DATABASE.NAME":               "qa",
		"QA_DATABASE.SSL_MODE":           "disable",
		"QA_DATABASE.MAX_OPEN_CONNS":     "5",
		"QA_DATABASE.MAX_IDLE_CONNS":     "2",
		"QA_DATABASE.CONN_MAX_LIFETIME":  "300",
		"QA_DATABASE.CONN_MAX_IDLE_TIME": "60",
		"QA_DATABASE.RUN_MIGRATIONS":     "true",
	}
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func TestLoadConfig(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Primary.Env != "development" {
		t.Errorf("Primary.Env = %q, want development", cfg.Primary.Env)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("Server.Port = %q, want 8080", cfg.Server.Port)
	}
	if len(cfg.Server.CORSAllowedOrigins) != 1 {
		t.Errorf("CORSAllowedOrigins = %v, want 1 entry", cfg.Server.CORSAllowedOrigins)
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("Database.Port = %d, want 5432", cfg.Database.Port)
	}
	if !cfg.Database.RunMigrations {
		t.Error("Database.RunMigrations = false, want true")
	}

	if cfg.Observability == nil {
		t.Fatal("Observability should be defaulted")
	}
	if cfg.Observability.ServiceName != ServiceName {
		t.Errorf("ServiceName = %q, want %q", cfg.Observability.ServiceName, ServiceName)
	}
	if cfg.Observability.Environment != "development" {
		t.Errorf("Environment = %q, want development", cfg.Observability.Environment)
	}
}

func TestLoadConfigMissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("QA_DATABASE.HOST", "")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("LoadConfig() expected error for missing database host")
	}
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "qa",
		Password: "p@ss:word/x",
		Name:     "questions",
		SSLMode:  "require",
	}

	dsn := cfg.DSN()

	if !strings.HasPrefix(dsn, "postgres://qa:") {
		t.Errorf("DSN() = %q, want postgres://qa: prefix", dsn)
	}
	if !strings.Contains(dsn, "@db.internal:5433/questions?sslmode=require") {
		t.Errorf("DSN() = %q, missing host/db/sslmode", dsn)
	}
	if strings.Contains(dsn, "p@ss:word/x") {
		t.Errorf("DSN() = %q, password must be escaped", dsn)
	}
}

func TestObservabilityValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *ObservabilityConfig)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *ObservabilityConfig) {}},
		{name: "empty service name", mutate: func(c *ObservabilityConfig) { c.ServiceName = "" }, wantErr: true},
		{name: "bad level", mutate: func(c *ObservabilityConfig) { c.Logging.Level = "verbose" }, wantErr: true},
		{name: "bad format", mutate: func(c *ObservabilityConfig) { c.Logging.Format = "xml" }, wantErr: true},
		{name: "negative threshold", mutate: func(c *ObservabilityConfig) { c.Logging.SlowQueryThreshold = -time.Second }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultObservabilityConfig()
			tt.mutate(c)

			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetLogLevel(t *testing.T) {
	c := DefaultObservabilityConfig()
	c.Logging.Level = ""

	c.Environment = "production"
	if got := c.GetLogLevel(); got != "info" {
		t.Errorf("production GetLogLevel() = %q, want info", got)
	}

	c.Environment = "development"
	if got := c.GetLogLevel(); got != "debug" {
		t.Errorf("development GetLogLevel() = %q, want debug", got)
	}

	c.Logging.Level = "warn"
	if got := c.GetLogLevel(); got != "warn" {
		t.Errorf("explicit GetLogLevel() = %q, want warn", got)
	}
	if c.IsProduction() {
		t.Error("IsProduction() = true for development")
	}
}
