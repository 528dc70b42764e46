package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Privacy PrivacyConfig
	Oracle  OracleConfig
	Gate    GateConfig
	Logging LoggingConfig
	Metrics MetricsConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host           string
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxRequestSize int64
}

// PrivacyConfig holds engine settings
type PrivacyConfig struct {
	// FilterEnabled is the process-wide default for the gated filter
	// entry point. Callers can still force filtering per request.
	FilterEnabled bool
}

// OracleConfig holds settings for the optional AI assessor
type OracleConfig struct {
	Enabled bool
	Type    string // openai, ollama
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// GateConfig holds publish gate policy settings
type GateConfig struct {
	PolicyPath   string
	WatchChanges bool
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	AuditPath string // empty = stdout
}

// MetricsConfig holds metrics/monitoring settings
type MetricsConfig struct {
	Enabled  bool
	Endpoint string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			Port:           getEnvInt("SERVER_PORT", 8080),
			ReadTimeout:    time.Duration(getEnvInt("SERVER_READ_TIMEOUT_SEC", 30)) * time.Second,
			WriteTimeout:   time.Duration(getEnvInt("SERVER_WRITE_TIMEOUT_SEC", 60)) * time.Second,
			MaxRequestSize: int64(getEnvInt("SERVER_MAX_REQUEST_SIZE", 1*1024*1024)), // 1MB default
		},
		Privacy: PrivacyConfig{
			FilterEnabled: getEnvBool("PRIVACY_FILTER_ENABLED", true),
		},
		Oracle: OracleConfig{
			Enabled: getEnvBool("ORACLE_ENABLED", false),
			Type:    getEnv("ORACLE_TYPE", detectOracleType(os.Getenv("ORACLE_URL"))),
			BaseURL: getEnv("ORACLE_URL", ""),
			APIKey:  getEnv("ORACLE_KEY", ""),
			Model:   getEnv("ORACLE_MODEL", "gpt-4o-mini"),
			Timeout: time.Duration(getEnvInt("ORACLE_TIMEOUT_SEC", 15)) * time.Second,
		},
		Gate: GateConfig{
			PolicyPath:   getEnv("GATE_POLICY_PATH", "configs/policies.cedar"),
			WatchChanges: getEnvBool("GATE_WATCH_CHANGES", true),
		},
		Logging: LoggingConfig{
			AuditPath: getEnv("AUDIT_LOG_PATH", ""),
		},
		Metrics: MetricsConfig{
			Enabled:  getEnvBool("METRICS_ENABLED", true),
			Endpoint: getEnv("METRICS_ENDPOINT", "/metrics"),
		},
	}
}

// detectOracleType attempts to identify the provider from its URL
func detectOracleType(url string) string {
	switch {
	case url == "":
		return "openai"
	case strings.Contains(url, "localhost") || strings.Contains(url, "127.0.0.1") || strings.Contains(url, "ollama"):
		return "ollama"
	default:
		return "openai" // Default to OpenAI-compatible
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
