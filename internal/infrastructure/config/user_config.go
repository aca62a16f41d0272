package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const userConfigFile = "config.json"

// UserConfig is the per-user CLI state kept in ~/.coriolis/config.json
type UserConfig struct {
	// DefaultShip is used by build commands when --ship is not given
	DefaultShip string `json:"default_ship,omitempty"`
}

// UserConfigHandler reads and writes one UserConfig file
type UserConfigHandler struct {
	configPath string
}

// NewUserConfigHandler returns the handler for ~/.coriolis
func NewUserConfigHandler() (*UserConfigHandler, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	return NewUserConfigHandlerAt(filepath.Join(homeDir, ".coriolis"))
}

// NewUserConfigHandlerAt returns a handler for dir/config.json, creating dir
func NewUserConfigHandlerAt(dir string) (*UserConfigHandler, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}
	return &UserConfigHandler{configPath: filepath.Join(dir, userConfigFile)}, nil
}

// Load returns the stored config, or an empty one when no file exists yet
func (h *UserConfigHandler) Load() (*UserConfig, error) {
	data, err := os.ReadFile(h.configPath)
	if errors.Is(err, fs.ErrNotExist) {
		return &UserConfig{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read user config: %w", err)
	}

	cfg := &UserConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse user config %s: %w", h.configPath, err)
	}
	return cfg, nil
}

// Save replaces the file through a rename so a crash never leaves half a file
func (h *UserConfigHandler) Save(cfg *UserConfig) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal user config: %w", err)
	}

	tmp := h.configPath + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write user config: %w", err)
	}
	if err := os.Rename(tmp, h.configPath); err != nil {
		return fmt.Errorf("failed to replace user config: %w", err)
	}
	return nil
}

func (h *UserConfigHandler) update(apply func(*UserConfig)) error {
	cfg, err := h.Load()
	if err != nil {
		return err
	}
	apply(cfg)
	return h.Save(cfg)
}

// SetDefaultShip records shipID as the default ship
func (h *UserConfigHandler) SetDefaultShip(shipID string) error {
	return h.update(func(cfg *UserConfig) { cfg.DefaultShip = shipID })
}

// ClearDefaultShip forgets the default ship
func (h *UserConfigHandler) ClearDefaultShip() error {
	return h.update(func(cfg *UserConfig) { cfg.DefaultShip = "" })
}

func (h *UserConfigHandler) GetConfigPath() string {
	return h.configPath
}
