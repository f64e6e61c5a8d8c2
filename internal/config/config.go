package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mergepick/internal/resolver"
)

const (
	configDirName  = "mergepick"
	configFileName = "config.json"

	defaultPreviewContext = 3
)

type AppConfig struct {
	// ThresholdOffset is the line offset below which a conflict keeps HEAD.
	ThresholdOffset int  `json:"threshold_offset"`
	Stage           bool `json:"stage"`
	PreviewContext  int  `json:"preview_context"`
}

func Default() AppConfig {
	return AppConfig{
		ThresholdOffset: resolver.DefaultThreshold,
		PreviewContext:  defaultPreviewContext,
	}
}

func Load() (AppConfig, string, error) {
	path, err := DefaultPath()
	if err != nil {
		return AppConfig{}, "", err
	}
	cfg, err := LoadFromPath(path)
	return cfg, path, err
}

func LoadFromPath(path string) (AppConfig, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return AppConfig{}, err
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return cfg, nil
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

func (c AppConfig) Validate() error {
	if c.ThresholdOffset < 0 {
		return fmt.Errorf("threshold_offset must not be negative, got %d", c.ThresholdOffset)
	}
	if c.PreviewContext < 0 {
		return fmt.Errorf("preview_context must not be negative, got %d", c.PreviewContext)
	}
	return nil
}

func DefaultPath() (string, error) {
	home, err := configHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configDirName, configFileName), nil
}

func configHome() (string, error) {
	if xdg := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); xdg != "" {
		return xdg, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config"), nil
}
