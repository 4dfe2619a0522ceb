package view

import "fmt"

// Role colors for the exploration UI.
const (
	ColorFocus    = "#ff4d4d"
	ColorBoth     = "#9933ff"
	ColorForward  = "#ffaa00"
	ColorBackward = "#33cc33"
	ColorDefault  = "#66a3ff"
)

// RoleColor maps a role to its fixed color.
func RoleColor(r Role) string {
	switch r {
	case RoleFocus:
		return ColorFocus
	case RoleBoth:
		return ColorBoth
	case RoleForward:
		return ColorForward
	case RoleBackward:
		return ColorBackward
	default:
		return ColorDefault
	}
}

// CommunityPalette generates one color per community id by spacing hues
// evenly around the color wheel at fixed saturation and lightness.
func CommunityPalette(k int) []string {
	if k <= 0 {
		return nil
	}
	palette := make([]string, k)
	for i := range palette {
		hue := int(float64(i) * 360.0 / float64(k))
		palette[i] = fmt.Sprintf("hsl(%d, 80%%, 60%%)", hue)
	}
	return palette
}
