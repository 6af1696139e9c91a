// Package ui holds the terminal presentation settings shared by the CLI and
// configuration packages: color themes and terminal detection.
package ui

import (
	"io"
	"os"
	"sync"
)

// Theme is a set of ANSI escape codes, one per role.
type Theme struct {
	Name      string
	Primary   string // operands and flags
	Secondary string // defaults and hints
	Success   string
	Warning   string
	Error     string
	Info      string // menu headers
	Bold      string
	Reset     string
}

var (
	// DarkTheme targets dark terminal backgrounds.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   "\033[38;5;39m",
		Secondary: "\033[38;5;245m",
		Success:   "\033[38;5;82m",
		Warning:   "\033[38;5;220m",
		Error:     "\033[38;5;196m",
		Info:      "\033[38;5;141m",
		Bold:      "\033[1m",
		Reset:     "\033[0m",
	}

	// LightTheme targets light terminal backgrounds.
	LightTheme = Theme{
		Name:      "light",
		Primary:   "\033[38;5;27m",
		Secondary: "\033[38;5;240m",
		Success:   "\033[38;5;28m",
		Warning:   "\033[38;5;130m",
		Error:     "\033[38;5;124m",
		Info:      "\033[38;5;54m",
		Bold:      "\033[1m",
		Reset:     "\033[0m",
	}

	// NoColorTheme emits no escape codes.
	NoColorTheme = Theme{Name: "none"}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme replaces the active theme. Tests use it to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// ThemeByName returns the theme called name ("dark", "light" or "none").
// Unknown names yield DarkTheme.
func ThemeByName(name string) Theme {
	switch name {
	case "light":
		return LightTheme
	case "none":
		return NoColorTheme
	default:
		return DarkTheme
	}
}

// InitTheme selects the active theme. Colors are disabled when noColor is
// set, when the NO_COLOR environment variable exists (https://no-color.org/)
// or when out is not a terminal. Otherwise BIGCALC_THEME picks between the
// dark (default) and light themes.
//
// Parameters:
//   - noColor: Value of the -no-color flag.
//   - out: The writer that will receive colored output.
func InitTheme(noColor bool, out io.Writer) {
	t := ThemeByName(os.Getenv("BIGCALC_THEME"))
	if _, exists := os.LookupEnv("NO_COLOR"); exists || noColor || !IsTerminal(out) {
		t = NoColorTheme
	}
	SetCurrentTheme(t)
}
