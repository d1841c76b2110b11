package grove

import (
	"fmt"
	"strings"
)

// Color is the per-iteration color of a crop
type Color uint8

const (
	// ColorNone marks an empty slot in a user arrangement
	ColorNone Color = iota
	Yellow
	Blue
	Purple
)

// Colors lists the assignable colors in weight-triple order (Yellow, Blue, Purple)
var Colors = [3]Color{Yellow, Blue, Purple}

func (c Color) String() string {
	switch c {
	case Yellow:
		return "Yellow"
	case Blue:
		return "Blue"
	case Purple:
		return "Purple"
	default:
		return "None"
	}
}

// ParseColor accepts the color names and their seed-family aliases
// (vivid = yellow, primal = blue, wild = purple), case-insensitively.
// "p" is rejected: it could mean purple or primal.
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return ColorNone, nil
	case "yellow", "y", "vivid", "v":
		return Yellow, nil
	case "blue", "b", "primal":
		return Blue, nil
	case "purple", "wild", "w":
		return Purple, nil
	default:
		return ColorNone, fmt.Errorf("unknown color %q", s)
	}
}
