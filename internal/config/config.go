// Package config loads runtime configuration from the environment
// (with optional .env support) into one explicit struct. Collaborator
// credentials are enumerated here and handed to constructors; nothing
// downstream reads the environment on its own.
package config

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/rezonia/facturx-studio/internal/logger"
)

// Config is the full runtime configuration
type Config struct {
	// Operator identity: seller registrations stamped into every
	// generated document for this tenant
	OperatorName  string
	OperatorSIRET string
	OperatorVAT   string

	// Document analysis (deep scan) endpoint
	AnalysisAPIKey  string
	AnalysisBaseURL string
	AnalysisModel   string

	// External schema validator binary (optional, probed on PATH
	// when empty)
	ValidatorTool string

	// Logging
	LogLevel  string
	LogFormat string
	LogOutput string
}

// Load reads configuration from the environment. A .env file in the
// working directory is honored when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		OperatorName:    getEnv("FACTURX_OPERATOR_NAME", ""),
		OperatorSIRET:   getEnv("FACTURX_OPERATOR_SIRET", ""),
		OperatorVAT:     getEnv("FACTURX_OPERATOR_VAT", ""),
		AnalysisAPIKey:  getEnv("FACTURX_ANALYSIS_API_KEY", ""),
		AnalysisBaseURL: getEnv("FACTURX_ANALYSIS_BASE_URL", ""),
		AnalysisModel:   getEnv("FACTURX_ANALYSIS_MODEL", ""),
		ValidatorTool:   getEnv("FACTURX_VALIDATOR_TOOL", ""),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "console"),
		LogOutput:       getEnv("LOG_OUTPUT", "stderr"),
	}
}

// LoggerConfig returns the logger configuration slice of the config
func (c *Config) LoggerConfig() logger.Config {
	return logger.Config{
		Level:  c.LogLevel,
		Format: c.LogFormat,
		Output: c.LogOutput,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
