package config

import (
	"os"
	"strconv"
	"time"

	"github.com/sridharshinicloud/carey-foster-bridge-new/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	AI         AIConfig
	Experiment ExperimentConfig
	Profiling  ProfilingConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port        string
	SnapshotTTL time.Duration
}

// DatabaseConfig holds the optional report-archive database settings.
// When URL is empty the simulator runs fully in memory.
type DatabaseConfig struct {
	URL string
}

// AIConfig holds the suggestion-service settings. Optional: with no API
// key the suggestion feature is simply disabled.
type AIConfig struct {
	OpenAIKey   string
	OpenAIModel string
	BaseURL     string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// ExperimentConfig holds the bench ground truths and policy constants.
type ExperimentConfig struct {
	RatioArmOhms      float64
	ResistivityPerCM  float64
	TrueUnknownOhms   float64
	InitialKnownOhms  float64
	MinKnownOhms      float64
	MaxKnownOhms      float64
	Tolerance         float64
	Sensitivity       float64
	RevealMinReadings int
	RandomizeTruths   bool
}

// ProfilingConfig holds performance profiling settings
type ProfilingConfig struct {
	Port    string
	Enabled bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:        getEnvOrDefault("PORT", "8080"),
			SnapshotTTL: getEnvDurationOrDefault("SNAPSHOT_TTL", 2*time.Hour),
		},
		Database: DatabaseConfig{
			URL: getEnvOrDefault("DATABASE_URL", ""),
		},
		AI: AIConfig{
			OpenAIKey:   getEnvOrDefault("OPENAI_API_KEY", ""),
			OpenAIModel: getEnvOrDefault("LLM_MODEL", "gpt-4o-mini"),
			BaseURL:     getEnvOrDefault("LLM_BASE_URL", ""),
			MaxTokens:   getEnvIntOrDefault("MAX_TOKENS", 1024),
			Temperature: getEnvFloatOrDefault("TEMPERATURE", 0.7),
			Timeout:     getEnvDurationOrDefault("LLM_TIMEOUT", 60*time.Second),
		},
		Experiment: ExperimentConfig{
			RatioArmOhms:      getEnvFloatOrDefault("RATIO_ARM_OHMS", 10.0),
			ResistivityPerCM:  getEnvFloatOrDefault("WIRE_RHO_PER_CM", 0.02),
			TrueUnknownOhms:   getEnvFloatOrDefault("TRUE_UNKNOWN_OHMS", 5.0),
			InitialKnownOhms:  getEnvFloatOrDefault("INITIAL_KNOWN_OHMS", 5.0),
			MinKnownOhms:      getEnvFloatOrDefault("MIN_KNOWN_OHMS", 0.1),
			MaxKnownOhms:      getEnvFloatOrDefault("MAX_KNOWN_OHMS", 10.0),
			Tolerance:         getEnvFloatOrDefault("BALANCE_TOLERANCE", 0.01),
			Sensitivity:       getEnvFloatOrDefault("GALVO_SENSITIVITY", 3.0),
			RevealMinReadings: getEnvIntOrDefault("REVEAL_MIN_READINGS", 4),
			RandomizeTruths:   getEnvBoolOrDefault("RANDOMIZE_TRUTHS", true),
		},
		Profiling: ProfilingConfig{
			Port:    getEnvOrDefault("PPROF_PORT", "6060"),
			Enabled: getEnvBoolOrDefault("PPROF_ENABLED", false),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Experiment.ResistivityPerCM <= 0 {
		return errors.ConfigInvalid("WIRE_RHO_PER_CM must be positive")
	}
	if config.Experiment.TrueUnknownOhms <= 0 {
		return errors.ConfigInvalid("TRUE_UNKNOWN_OHMS must be positive")
	}
	if config.Experiment.MinKnownOhms <= 0 ||
		config.Experiment.MaxKnownOhms <= config.Experiment.MinKnownOhms {
		return errors.ConfigInvalid("known-resistance bounds must satisfy 0 < min < max")
	}
	if config.Experiment.Tolerance <= 0 {
		return errors.ConfigInvalid("BALANCE_TOLERANCE must be positive")
	}
	if config.Experiment.RevealMinReadings < 0 {
		return errors.ConfigInvalid("REVEAL_MIN_READINGS cannot be negative")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
