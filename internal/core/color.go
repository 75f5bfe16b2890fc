package core

// Color represents a foreground color for a screen cell.
// The platform maps each value to an ANSI color.
type Color uint8

// Palette for game elements. The first four follow the handheld's four
// shades of green, darkest last.
const (
	ColorDefault Color = iota
	ColorLightest
	ColorLight
	ColorDark
	ColorDarkest
	ColorGreen
	ColorBrightGreen
	ColorYellow
	ColorBrightYellow
	ColorRed
	ColorBrightRed
	ColorCyan
	ColorBrightCyan
	ColorMagenta
	ColorOrange
	ColorGray
	ColorWhite
)
