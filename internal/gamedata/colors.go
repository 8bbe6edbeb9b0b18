package gamedata

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// ParseHexColor converts a hex color string (e.g., "#FF0000" or "FF0000") to a tcell.Color.
func ParseHexColor(hex string) (tcell.Color, error) {
	digits := strings.TrimPrefix(hex, "#")
	if len(digits) != 6 {
		return tcell.ColorDefault, fmt.Errorf("color %q: want 6 hex digits", hex)
	}

	rgb, err := strconv.ParseUint(digits, 16, 24)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("color %q: %w", hex, err)
	}
	return tcell.NewHexColor(int32(rgb)), nil
}

// ColorOr parses hex and falls back to def when it is malformed.
func ColorOr(hex string, def tcell.Color) tcell.Color {
	color, err := ParseHexColor(hex)
	if err != nil {
		return def
	}
	return color
}
