package core

// Color is the foreground color of a screen cell. Values are ANSI 256-color
// slots, except ColorAccent which the renderer resolves to the session's
// current palette entry.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorOrange
	ColorGray
	ColorAccent // Current palette color, changes with the score
)
