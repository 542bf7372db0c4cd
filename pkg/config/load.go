package config

import (
	"fmt"
	"os"

	"github.com/raywall/bar-order-service/envloader"
	"gopkg.in/yaml.v3"
)

// Load lê o YAML opcional em path, aplica as variáveis de ambiente e valida.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: invalid yaml in %s: %w", path, err)
		}
	}

	if err := envloader.Load(cfg); err != nil {
		return nil, err
	}

	if err := NewValidator().Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
