package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

// UserConfig represents the user's custom configuration
type UserConfig struct {
	Appearance AppearanceConfig `toml:"appearance"`
	Drag       DragConfig       `toml:"drag"`
}

// AppearanceConfig holds appearance-related settings
type AppearanceConfig struct {
	BorderStyle       string `toml:"border_style"`        // Border style: rounded, normal, thick, double, ascii
	HideWindowButtons bool   `toml:"hide_window_buttons"` // Hide the close button in window title bars
	DockbarPosition   string `toml:"dockbar_position"`    // Dockbar position: bottom, top, hidden
	AnimationsEnabled *bool  `toml:"animations_enabled"`  // Enable UI animations (default: true). Set to false for instant transitions.
	Theme             string `toml:"theme"`               // Color theme name (e.g., dracula, nord)
}

// DragConfig holds drag-and-drop tuning settings
type DragConfig struct {
	CellWidth     int `toml:"cell_width"`      // Pixel width of one terminal cell (default: 10)
	CellHeight    int `toml:"cell_height"`     // Pixel height of one terminal cell (default: 20)
	StripPageSize int `toml:"strip_page_size"` // Tab slots per strip page (default: 4)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *UserConfig {
	return &UserConfig{
		Appearance: AppearanceConfig{
			BorderStyle:       "rounded",
			HideWindowButtons: false,
			DockbarPosition:   "bottom",
		},
		Drag: DragConfig{
			CellWidth:     DefaultCellWidth,
			CellHeight:    DefaultCellHeight,
			StripPageSize: TabsPerPage,
		},
	}
}

// LoadUserConfig loads the user configuration from the XDG config directory
func LoadUserConfig() (*UserConfig, error) {
	configPath, err := xdg.SearchConfigFile("tabshell/config.toml")
	if err != nil {
		// Config doesn't exist, create default
		return createDefaultConfig()
	}

	// #nosec G304 - configPath is from XDG search, reading user config is intentional
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg UserConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	defaultCfg := DefaultConfig()
	fillMissingAppearance(&cfg, defaultCfg)
	fillMissingDrag(&cfg, defaultCfg)

	return &cfg, nil
}

// createDefaultConfig creates a default config file in the user's config directory
func createDefaultConfig() (*UserConfig, error) {
	cfg := DefaultConfig()

	configPath, err := xdg.ConfigFile("tabshell/config.toml")
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0750); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("# tabshell Configuration File\n")
	sb.WriteString("#\n")
	sb.WriteString("# Configuration location: " + configPath + "\n\n")

	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# APPEARANCE SETTINGS\n")
	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# border_style: Window border style\n")
	sb.WriteString("#   Options: rounded, normal, thick, double, ascii\n")
	sb.WriteString("#   Default: rounded\n")
	sb.WriteString("#\n")
	sb.WriteString("# dockbar_position: Position of the dockbar\n")
	sb.WriteString("#   Options: bottom, top, hidden\n")
	sb.WriteString("#   Default: bottom\n")
	sb.WriteString("#\n")
	sb.WriteString("# theme: Color theme name (e.g., dracula, nord)\n")
	sb.WriteString("#   Leave empty to use standard terminal colors.\n")
	sb.WriteString("#   CLI flag --theme overrides this.\n")
	sb.WriteString("#   Default: (empty - no theme)\n")
	sb.WriteString("#\n")
	sb.WriteString("# [drag] cell_width / cell_height: pixel size of one terminal cell, used\n")
	sb.WriteString("#   to convert drag thresholds between cells and pixels.\n")
	sb.WriteString("# ============================================================================\n\n")

	if _, err := sb.Write(data); err != nil {
		return nil, fmt.Errorf("failed to write config data: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(sb.String()), 0600); err != nil {
		return nil, fmt.Errorf("failed to write config file: %w", err)
	}

	return cfg, nil
}

// fillMissingAppearance fills in any missing appearance settings with defaults
func fillMissingAppearance(cfg, defaultCfg *UserConfig) {
	if cfg.Appearance.BorderStyle == "" {
		cfg.Appearance.BorderStyle = defaultCfg.Appearance.BorderStyle
	}

	if cfg.Appearance.DockbarPosition == "" {
		cfg.Appearance.DockbarPosition = defaultCfg.Appearance.DockbarPosition
	}

	// AnimationsEnabled defaults to true (nil means use default)
	if cfg.Appearance.AnimationsEnabled != nil {
		AnimationsEnabled = *cfg.Appearance.AnimationsEnabled
	}
}

// fillMissingDrag fills in any missing drag settings with defaults
func fillMissingDrag(cfg, defaultCfg *UserConfig) {
	if cfg.Drag.CellWidth <= 0 {
		cfg.Drag.CellWidth = defaultCfg.Drag.CellWidth
	}
	if cfg.Drag.CellHeight <= 0 {
		cfg.Drag.CellHeight = defaultCfg.Drag.CellHeight
	}
	if cfg.Drag.StripPageSize <= 0 {
		cfg.Drag.StripPageSize = defaultCfg.Drag.StripPageSize
	}
}

// ResetConfig overwrites the config file with defaults and returns its path.
func ResetConfig() (string, error) {
	if _, err := createDefaultConfig(); err != nil {
		return "", err
	}
	return xdg.ConfigFile("tabshell/config.toml")
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	path, err := xdg.SearchConfigFile("tabshell/config.toml")
	if err != nil {
		// Return where it would be created
		return xdg.ConfigFile("tabshell/config.toml")
	}
	return path, nil
}
