package analyzer

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Config controls which documents are analyzed and how
type Config struct {
	Extensions []string `yaml:"extensions"`
	CacheSize  int      `yaml:"cacheSize"`
	Checks     []string `yaml:"checks,omitempty"`
	SkipHidden bool     `yaml:"skipHidden"`
}

func DefaultConfig() *Config {
	return &Config{
		Extensions: []string{".dcl"},
		CacheSize:  128,
		SkipHidden: true,
	}
}

// LoadConfig decodes YAML on top of the default config
func LoadConfig(data []byte) (*Config, error) {
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if config.CacheSize <= 0 {
		return nil, fmt.Errorf("invalid cacheSize: %v", config.CacheSize)
	}
	return config, nil
}
