package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"runtime/pprof"
	"strings"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/tabshell/tabshell/internal/app"
	"github.com/tabshell/tabshell/internal/config"
	"github.com/tabshell/tabshell/internal/input"
	"github.com/tabshell/tabshell/internal/theme"
)

// filterMouseMotion drops motion events nothing would consume. Motion only
// matters while a window move, resize, or tab drag is in flight.
func filterMouseMotion(model tea.Model, msg tea.Msg) tea.Msg {
	if _, ok := msg.(tea.MouseMotionMsg); !ok {
		return msg
	}

	s, ok := model.(*app.Shell)
	if !ok {
		return msg
	}

	if s.MovingWindow || s.ResizingWindow || s.InteractionMode {
		return msg
	}

	// A detached window following the cursor still needs motion to detect
	// the strip it is hovering over.
	if s.Store.Active() {
		return msg
	}

	return nil
}

func runLocal() error {
	userConfig, err := config.LoadUserConfig()
	if err != nil {
		log.Printf("Warning: Failed to load config, using defaults: %v", err)
		userConfig = config.DefaultConfig()
	}

	config.ApplyOverrides(config.Overrides{
		ASCIIOnly:         asciiOnly,
		BorderStyle:       borderStyle,
		DockbarPosition:   dockbarPosition,
		HideWindowButtons: hideWindowButtons,
		NoAnimations:      noAnimations,
		CellWidth:         cellWidth,
		CellHeight:        cellHeight,
		ThemeName:         themeName,
	}, userConfig)

	if cpuProfile != "" {
		f, err := os.Create(cpuProfile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil {
				log.Printf("Warning: failed to close CPU profile file: %v", closeErr)
			}
		}()

		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	app.SetInputHandler(input.HandleInput)

	if debugMode {
		configPath, _ := config.GetConfigPath()
		log.Printf("Configuration: %s", configPath)
	}

	shell := app.NewShell()

	p := tea.NewProgram(
		shell,
		tea.WithFPS(config.NormalFPS),
		tea.WithoutSignalHandler(),
		tea.WithFilter(filterMouseMotion),
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		p.Send(tea.QuitMsg{})
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}

func previewThemeColors(name string) error {
	if err := theme.Initialize(name); err != nil {
		return fmt.Errorf("failed to load theme %q: %w", name, err)
	}

	fmt.Printf("Theme: %s\n\n", name)
	palette := theme.ANSIPalette()
	for i, c := range palette {
		block := lipgloss.NewStyle().Background(c).Render("    ")
		fmt.Printf("%2d %s %s\n", i, block, theme.ColorToString(c))
	}
	return nil
}

func printConfigPath() error {
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to determine config path: %w", err)
	}
	fmt.Println(path)
	return nil
}

func editConfigFile() error {
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to determine config path: %w", err)
	}

	// Create the default config first so the editor has a file to open.
	if _, statErr := os.Stat(path); statErr != nil {
		if _, loadErr := config.LoadUserConfig(); loadErr != nil {
			return fmt.Errorf("failed to create default config: %w", loadErr)
		}
	}

	editor := findEditor()
	if editor == "" {
		return fmt.Errorf("no editor found; set $EDITOR or install vim, nano, or emacs")
	}

	cmd := exec.Command(editor, path) // #nosec G204 - editor comes from the user's own environment
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func findEditor() string {
	if e := os.Getenv("EDITOR"); e != "" {
		return e
	}
	if e := os.Getenv("VISUAL"); e != "" {
		return e
	}
	for _, candidate := range []string{"vim", "vi", "nano", "emacs"} {
		if path, err := exec.LookPath(candidate); err == nil {
			return path
		}
	}
	return ""
}

func resetConfigToDefaults() error {
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to determine config path: %w", err)
	}

	fmt.Printf("Reset %s to defaults? [y/N] ", path)
	reader := bufio.NewReader(os.Stdin)
	answer, _ := reader.ReadString('\n')
	if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
		fmt.Println("Aborted")
		return nil
	}

	written, err := config.ResetConfig()
	if err != nil {
		return fmt.Errorf("failed to reset config: %w", err)
	}
	fmt.Printf("Wrote defaults to %s\n", written)
	return nil
}
