package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFile = "blockfall.yaml"

// Load reads the configuration.
// Search order: customPath -> ~/.blockfall/configs/blockfall.yaml ->
// ./configs/blockfall.yaml -> embedded default.
// Missing keys keep their default values.
func Load(customPath string) (BlockfallConfig, error) {
	cfg := DefaultBlockfallConfig()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	for _, path := range []string{userConfigPath(configFile), filepath.Join("configs", configFile)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		parsed := DefaultBlockfallConfig()
		if err := yaml.Unmarshal(data, &parsed); err == nil && parsed.Validate() == nil {
			return parsed, nil
		}
	}

	embedded := DefaultBlockfallConfig()
	if err := yaml.Unmarshal(defaultBlockfallYAML, &embedded); err != nil {
		return cfg, nil
	}
	return embedded, nil
}

// userConfigPath returns the per-user config path, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".blockfall", "configs", filename)
}
