package output

import (
	"io"
	"os"
	"slices"
)

// ColorModes are the accepted --color values.
var ColorModes = []string{"auto", "always", "never"}

// ValidColorMode reports whether mode is one of ColorModes.
func ValidColorMode(mode string) bool {
	return slices.Contains(ColorModes, mode)
}

// ResolveColorMode decides whether styling is on:
//   - "never":  off
//   - "always": on, even when piped (useful for `marks weeks | less -R`)
//   - "auto":   follows isTTY; also used for empty or unknown values
func ResolveColorMode(colorMode string, isTTY bool) bool {
	switch colorMode {
	case "never":
		return false
	case "always":
		return true
	default:
		return isTTY
	}
}

// IsTTY reports whether writer is an *os.File attached to a terminal.
func IsTTY(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	stat, err := file.Stat()
	if err != nil {
		return false
	}
	return stat.Mode()&os.ModeCharDevice != 0
}
