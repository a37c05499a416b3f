// Package config carga la configuración del servicio desde variables de entorno.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "dev"
	EnvStaging     = "staging"
	EnvProduction  = "prod"
	EnvTest        = "test"
)

type Config struct {
	Port      string
	Env       string
	LogLevel  string
	LogFormat string
	AppName   string

	// DBDSN vacío => storage in-memory.
	DBDSN string

	RulesFile string
	RulesURL  string

	AuthVerifyURL string
	AuthAPIKey    string

	// RateLimitRate en requests/segundo por IP. 0 => sin rate limit.
	RateLimitRate     float64
	RateLimitCapacity int64

	// SweepInterval 0 => barrido de interacciones deshabilitado.
	SweepInterval time.Duration

	MaxRequestBody int64
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

// Load lee .env (si existe) y el entorno, y valida el resultado.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:              getEnvWithDefault("PORT", "8080"),
		Env:               strings.ToLower(getEnvWithDefault("ENV", EnvDevelopment)),
		LogLevel:          strings.ToLower(getEnvWithDefault("LOG_LEVEL", "info")),
		LogFormat:         strings.ToLower(getEnvWithDefault("LOG_FORMAT", "text")),
		AppName:           getEnvWithDefault("APP_NAME", "regimen-tracker"),
		DBDSN:             strings.TrimSpace(os.Getenv("DB_DSN")),
		RulesFile:         strings.TrimSpace(os.Getenv("RULES_FILE")),
		RulesURL:          strings.TrimSpace(os.Getenv("RULES_URL")),
		AuthVerifyURL:     strings.TrimSpace(os.Getenv("AUTH_VERIFY_URL")),
		AuthAPIKey:        os.Getenv("AUTH_API_KEY"),
		RateLimitRate:     getFloatEnvWithDefault("RATE_LIMIT_RATE", 10),
		RateLimitCapacity: getInt64EnvWithDefault("RATE_LIMIT_CAPACITY", 20),
		SweepInterval:     getDurationEnvWithDefault("INTERACTION_SWEEP_INTERVAL", time.Hour),
		MaxRequestBody:    getInt64EnvWithDefault("MAX_REQUEST_BODY", 1048576), // 1MB
		ReadTimeout:       getDurationEnvWithDefault("HTTP_READ_TIMEOUT", 5*time.Second),
		WriteTimeout:      getDurationEnvWithDefault("HTTP_WRITE_TIMEOUT", 10*time.Second),
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// IsDev indica si se aceptan cabeceras de depuración sin verificador de tokens.
func (c *Config) IsDev() bool {
	return c.Env == EnvDevelopment || c.Env == EnvTest
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

func validateConfig(cfg *Config) error {
	if err := validatePort(cfg.Port); err != nil {
		return fmt.Errorf("invalid PORT: %w", err)
	}
	if err := validateEnv(cfg.Env); err != nil {
		return fmt.Errorf("invalid ENV: %w", err)
	}
	if err := validateLogLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	if err := validateLogFormat(cfg.LogFormat); err != nil {
		return fmt.Errorf("invalid LOG_FORMAT: %w", err)
	}
	if err := validateOptionalURL(cfg.RulesURL, "RULES_URL"); err != nil {
		return fmt.Errorf("invalid RULES_URL: %w", err)
	}
	if err := validateOptionalURL(cfg.AuthVerifyURL, "AUTH_VERIFY_URL"); err != nil {
		return fmt.Errorf("invalid AUTH_VERIFY_URL: %w", err)
	}
	if err := validateRateLimit(cfg.RateLimitRate, cfg.RateLimitCapacity); err != nil {
		return fmt.Errorf("invalid RATE_LIMIT: %w", err)
	}
	if cfg.SweepInterval < 0 {
		return fmt.Errorf("invalid INTERACTION_SWEEP_INTERVAL: must not be negative, got: %s", cfg.SweepInterval)
	}
	if err := validateSizeLimit(cfg.MaxRequestBody, "MAX_REQUEST_BODY"); err != nil {
		return fmt.Errorf("invalid MAX_REQUEST_BODY: %w", err)
	}
	if err := validateTimeout(cfg.ReadTimeout, "HTTP_READ_TIMEOUT"); err != nil {
		return fmt.Errorf("invalid HTTP_READ_TIMEOUT: %w", err)
	}
	if err := validateTimeout(cfg.WriteTimeout, "HTTP_WRITE_TIMEOUT"); err != nil {
		return fmt.Errorf("invalid HTTP_WRITE_TIMEOUT: %w", err)
	}
	if !cfg.IsDev() && cfg.AuthVerifyURL == "" {
		return fmt.Errorf("AUTH_VERIFY_URL is required when ENV=%s", cfg.Env)
	}
	return nil
}

func validatePort(port string) error {
	if port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}

	portNum, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf("PORT must be a valid number: %w", err)
	}

	if portNum < 1 || portNum > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535")
	}

	if portNum < 1024 {
		return fmt.Errorf("PORT %d is privileged (less than 1024), use ports 1024-65535", portNum)
	}

	return nil
}

func validateEnv(env string) error {
	if env == "" {
		return fmt.Errorf("ENV cannot be empty")
	}

	validEnvs := []string{EnvDevelopment, EnvStaging, EnvProduction, EnvTest}
	for _, validEnv := range validEnvs {
		if env == validEnv {
			return nil
		}
	}

	return fmt.Errorf("ENV must be one of: %v, got: %s", validEnvs, env)
}

func validateLogLevel(logLevel string) error {
	validLevels := []string{"debug", "info", "warn", "error"}
	for _, level := range validLevels {
		if logLevel == level {
			return nil
		}
	}

	return fmt.Errorf("LOG_LEVEL must be one of: %v, got: %s", validLevels, logLevel)
}

func validateLogFormat(format string) error {
	if format == "text" || format == "json" {
		return nil
	}
	return fmt.Errorf("LOG_FORMAT must be text or json, got: %s", format)
}

func validateOptionalURL(raw, name string) error {
	if raw == "" {
		return nil
	}
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return fmt.Errorf("%s must be a valid URL: %w", name, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must use http or https, got: %s", name, u.Scheme)
	}
	return nil
}

func validateRateLimit(rate float64, capacity int64) error {
	if rate < 0 {
		return fmt.Errorf("RATE_LIMIT_RATE must not be negative, got: %v", rate)
	}
	if rate > 0 && capacity <= 0 {
		return fmt.Errorf("RATE_LIMIT_CAPACITY must be positive when RATE_LIMIT_RATE is set, got: %d", capacity)
	}
	return nil
}

func validateSizeLimit(size int64, configName string) error {
	if size <= 0 {
		return fmt.Errorf("%s must be positive, got: %d", configName, size)
	}

	if size > 100*1024*1024 { // 100MB
		return fmt.Errorf("%s is too large (max 100MB), got: %d bytes", configName, size)
	}

	return nil
}

func validateTimeout(d time.Duration, name string) error {
	if d <= 0 {
		return fmt.Errorf("%s must be positive, got: %s", name, d)
	}
	if d > 5*time.Minute {
		return fmt.Errorf("%s is too large (max 5m), got: %s", name, d)
	}
	return nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getInt64EnvWithDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getFloatEnvWithDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getDurationEnvWithDefault acepta "90s", "1h" o un número entero de segundos.
func getDurationEnvWithDefault(key string, defaultValue time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
