package theme

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// HexToColor converts #RRGGBB or #RGB to a tcell color. Anything else is the
// terminal default.
func HexToColor(hexColor string) tcell.Color {
	if !strings.HasPrefix(hexColor, "#") {
		hexColor = "#" + hexColor
	}
	if len(hexColor) != 4 && len(hexColor) != 7 {
		return tcell.ColorDefault
	}
	c, err := colorful.Hex(hexColor)
	if err != nil {
		return tcell.ColorDefault
	}
	return fromColorful(c)
}

// RGBToColor converts RGB values to tcell.Color
func RGBToColor(r, g, b int) tcell.Color {
	for _, v := range []int{r, g, b} {
		if v < 0 || v > 255 {
			return tcell.ColorDefault
		}
	}
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// ParseColorString reads a theme color: #RRGGBB, #RGB, rgb(r,g,b) or a
// color name tcell knows ("red", "default")
func ParseColorString(colorStr string) tcell.Color {
	colorStr = strings.TrimSpace(colorStr)

	switch {
	case strings.HasPrefix(colorStr, "#"):
		return HexToColor(colorStr)
	case strings.HasPrefix(colorStr, "rgb("):
		var r, g, b int
		compact := strings.ReplaceAll(colorStr, " ", "")
		if n, err := fmt.Sscanf(compact, "rgb(%d,%d,%d)", &r, &g, &b); err != nil || n != 3 || !strings.HasSuffix(compact, ")") {
			return tcell.ColorDefault
		}
		return RGBToColor(r, g, b)
	}
	return tcell.GetColor(strings.ToLower(colorStr))
}

// ColorToStyle creates a style with a specific foreground color
func ColorToStyle(fgColor tcell.Color) tcell.Style {
	return tcell.StyleDefault.Foreground(fgColor)
}

// ColorPairToStyle creates a style with specific foreground and background colors
func ColorPairToStyle(fgColor, bgColor tcell.Color) tcell.Style {
	return ColorToStyle(fgColor).Background(bgColor)
}

// Blend mixes fg towards bg so that fg keeps the given opacity. Colors
// without an RGB value (terminal defaults) are returned unchanged.
func Blend(fg, bg tcell.Color, opacity float64) tcell.Color {
	if !fg.Valid() || !bg.Valid() {
		return fg
	}
	return fromColorful(toColorful(fg).BlendRgb(toColorful(bg), 1-opacity).Clamped())
}

func toColorful(c tcell.Color) colorful.Color {
	r, g, b := c.RGB()
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

func fromColorful(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
