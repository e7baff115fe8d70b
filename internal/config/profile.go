package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile is the optional per-user profile loaded from a YAML file. It
// carries settings that belong to a person rather than a deployment.
type Profile struct {
	ActivityLevel   string   `yaml:"activity_level"`
	GeneticDataFile string   `yaml:"genetic_data_file"`
	GeneticRisk     *float64 `yaml:"genetic_risk"`
}

// LoadProfile reads a user profile. A missing file returns nil without
// an error so the tracker falls back to environment defaults.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read profile %s: %w", path, err)
	}

	var profile Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("parse profile %s: %w", path, err)
	}
	return &profile, nil
}

// ApplyProfile overrides environment-derived settings with the values a
// profile carries. Safe to call with a nil profile.
func (c *Config) ApplyProfile(profile *Profile) {
	if profile == nil {
		return
	}
	if profile.ActivityLevel != "" {
		c.Recommendation.ActivityLevel = profile.ActivityLevel
	}
	if profile.GeneticDataFile != "" {
		c.Input.GeneticFile = profile.GeneticDataFile
	}
	if profile.GeneticRisk != nil {
		c.Recommendation.GeneticRisk = *profile.GeneticRisk
	}
}
