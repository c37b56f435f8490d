package core

// Color represents a foreground color for a screen cell.
// Frontends map these onto ANSI 256-color codes or RGBA.
type Color uint8

// Palette used by the game. Shades go from darkest to lightest.
const (
	ColorDefault Color = iota
	ColorBrightWhite
	ColorLightGray
	ColorGray
	ColorDarkGray
	ColorCharcoal
	ColorGreen
	ColorOrange
	ColorYellow
)
