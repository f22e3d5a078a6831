package config

import (
	"log"

	"github.com/tabshell/tabshell/internal/theme"
)

// Overrides contains CLI flag values that can override user config.
// Zero values indicate the flag was not set and should use the user config default.
type Overrides struct {
	// ASCIIOnly uses ASCII characters instead of Unicode chrome glyphs
	ASCIIOnly bool

	// BorderStyle overrides the window border style
	BorderStyle string

	// DockbarPosition overrides the dockbar position
	DockbarPosition string

	// HideWindowButtons overrides hiding window control buttons
	HideWindowButtons bool

	// NoAnimations disables UI animations
	NoAnimations bool

	// CellWidth overrides the pixel width of one terminal cell (0 means use default)
	CellWidth int

	// CellHeight overrides the pixel height of one terminal cell (0 means use default)
	CellHeight int

	// ThemeName is the theme to load
	ThemeName string
}

// ApplyOverrides applies CLI flag overrides to global config, falling back to user config defaults.
// If userConfig is nil, only CLI flag values (when set) are applied.
func ApplyOverrides(overrides Overrides, userConfig *UserConfig) {
	// ASCII Only - simple flag override
	if overrides.ASCIIOnly {
		UseASCIIOnly = true
	}

	// Border Style - CLI flag takes precedence, otherwise use user config
	if overrides.BorderStyle != "" {
		BorderStyle = overrides.BorderStyle
	} else if userConfig != nil && userConfig.Appearance.BorderStyle != "" {
		BorderStyle = userConfig.Appearance.BorderStyle
	}

	// Dockbar Position - CLI flag takes precedence, otherwise use user config
	if overrides.DockbarPosition != "" {
		DockbarPosition = overrides.DockbarPosition
	} else if userConfig != nil && userConfig.Appearance.DockbarPosition != "" {
		DockbarPosition = userConfig.Appearance.DockbarPosition
	}

	// Hide Window Buttons - OR of CLI flag and user config
	if userConfig != nil {
		HideWindowButtons = overrides.HideWindowButtons || userConfig.Appearance.HideWindowButtons
	} else {
		HideWindowButtons = overrides.HideWindowButtons
	}

	// Cell metrics - CLI flag takes precedence, otherwise use user config
	if overrides.CellWidth > 0 {
		CellWidth = overrides.CellWidth
	} else if userConfig != nil && userConfig.Drag.CellWidth > 0 {
		CellWidth = userConfig.Drag.CellWidth
	}
	if overrides.CellHeight > 0 {
		CellHeight = overrides.CellHeight
	} else if userConfig != nil && userConfig.Drag.CellHeight > 0 {
		CellHeight = userConfig.Drag.CellHeight
	}

	// Strip page size - only from user config
	if userConfig != nil && userConfig.Drag.StripPageSize > 0 {
		StripPageSize = userConfig.Drag.StripPageSize
	}

	// Animations - disabled by flag
	if overrides.NoAnimations {
		AnimationsEnabled = false
	}

	// Theme - CLI flag takes precedence, otherwise use user config
	themeName := overrides.ThemeName
	if themeName == "" && userConfig != nil && userConfig.Appearance.Theme != "" {
		themeName = userConfig.Appearance.Theme
	}
	if themeName != "" {
		if err := theme.Initialize(themeName); err != nil {
			log.Printf("Warning: Failed to load theme '%s': %v", themeName, err)
		}
	}
}
