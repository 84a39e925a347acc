package config

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadConfig starts from Default and overlays the YAML file at filePath.
// An empty path yields the defaults.
func LoadConfig(filePath string) (*Config, error) {
	cfg := Default()
	if filePath == "" {
		return cfg, cfg.Validate()
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			// logged only, so the decode error is not overwritten
			log.Printf("Warning: failed to close config file: %v", closeErr)
		}
	}()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}

	return cfg, nil
}
