package ui

// Shorthands for the roles of the active theme.

func ColorReset() string   { return GetCurrentTheme().Reset }
func ColorRed() string     { return GetCurrentTheme().Error }
func ColorGreen() string   { return GetCurrentTheme().Success }
func ColorYellow() string  { return GetCurrentTheme().Warning }
func ColorBlue() string    { return GetCurrentTheme().Primary }
func ColorMagenta() string { return GetCurrentTheme().Info }
func ColorCyan() string    { return GetCurrentTheme().Secondary }
func ColorBold() string    { return GetCurrentTheme().Bold }

// Palette exposes the active theme through the method set expected by
// apperrors.ColorProvider.
type Palette struct{}

func (Palette) Yellow() string { return ColorYellow() }
func (Palette) Red() string    { return ColorRed() }
func (Palette) Reset() string  { return ColorReset() }
