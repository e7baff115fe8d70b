package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	ServiceName    string
	LogLevel       string
	Input          InputConfig
	Export         ExportConfig
	Recommendation RecommendationConfig
}

// InputConfig holds the input file locations
type InputConfig struct {
	ReadingsFile string
	MealsFile    string
	GeneticFile  string
	ProfileFile  string
}

// ExportConfig holds results export settings
type ExportConfig struct {
	File   string
	Format string
}

// RecommendationConfig holds recommendation engine settings. The
// genetic risk is only used when no genetic data file is configured.
type RecommendationConfig struct {
	ActivityLevel string
	GeneticRisk   float64
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		ServiceName: getEnv("SERVICE_NAME", "blood-sugar-tracker"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Input: InputConfig{
			ReadingsFile: getEnv("READINGS_FILE", ""),
			MealsFile:    getEnv("MEALS_FILE", ""),
			GeneticFile:  getEnv("GENETIC_DATA_FILE", ""),
			ProfileFile:  getEnv("PROFILE_FILE", "profile.yaml"),
		},
		Export: ExportConfig{
			File:   getEnv("EXPORT_FILE", ""),
			Format: getEnv("EXPORT_FORMAT", "json"),
		},
		Recommendation: RecommendationConfig{
			ActivityLevel: getEnv("ACTIVITY_LEVEL", "moderate"),
			GeneticRisk:   getEnvAsFloat("GENETIC_RISK", 0.3),
		},
	}

	// Validate required fields
	if cfg.Input.ReadingsFile == "" {
		return nil, fmt.Errorf("READINGS_FILE is required but not set in environment variables")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}
