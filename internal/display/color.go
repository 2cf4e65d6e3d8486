package display

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Color is a 16-bit RGB565 color.
type Color uint16

// Palette of the reference panel.
const (
	Black       Color = 0x0000
	Blue        Color = 0x001F
	Red         Color = 0xF800
	Green       Color = 0x07E0
	Cyan        Color = 0x07FF
	Magenta     Color = 0xF81F
	Yellow      Color = 0xFFE0
	White       Color = 0xFFFF
	Navy        Color = 0x000F
	DarkGreen   Color = 0x03E0
	DarkCyan    Color = 0x03EF
	Maroon      Color = 0x7800
	Purple      Color = 0x780F
	Olive       Color = 0x7BE0
	LightGrey   Color = 0xC618
	DarkGrey    Color = 0x7BEF
	Orange      Color = 0xFD20
	GreenYellow Color = 0xAFE5
	Pink        Color = 0xF81F
)

// Palette maps upper-case color names to their RGB565 values.
var Palette = map[string]Color{
	"BLACK":       Black,
	"BLUE":        Blue,
	"RED":         Red,
	"GREEN":       Green,
	"CYAN":        Cyan,
	"MAGENTA":     Magenta,
	"YELLOW":      Yellow,
	"WHITE":       White,
	"NAVY":        Navy,
	"DARKGREEN":   DarkGreen,
	"DARKCYAN":    DarkCyan,
	"MAROON":      Maroon,
	"PURPLE":      Purple,
	"OLIVE":       Olive,
	"LIGHTGREY":   LightGrey,
	"DARKGREY":    DarkGrey,
	"ORANGE":      Orange,
	"GREENYELLOW": GreenYellow,
	"PINK":        Pink,
}

// RGB565 packs 8-bit channels into a Color.
func RGB565(r, g, b uint8) Color {
	return Color(uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3))
}

// ParseColor accepts a palette name ("navy"), a "#RRGGBB" hex string or a
// raw "0xF800" RGB565 literal.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if c, ok := Palette[strings.ToUpper(s)]; ok {
		return c, nil
	}
	if strings.HasPrefix(s, "#") && len(s) == 7 {
		v, err := strconv.ParseUint(s[1:], 16, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid hex color %q: %w", s, err)
		}
		return RGB565(uint8(v>>16), uint8(v>>8), uint8(v)), nil
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err := strconv.ParseUint(s[2:], 16, 16)
		if err != nil {
			return 0, fmt.Errorf("invalid RGB565 color %q: %w", s, err)
		}
		return Color(v), nil
	}
	return 0, fmt.Errorf("unknown color %q", s)
}

// RGBA8 expands the color to 8-bit channels, replicating high bits into the
// low ones so white stays 0xFF.
func (c Color) RGBA8() color.RGBA {
	r := uint8(c>>11) & 0x1F
	g := uint8(c>>5) & 0x3F
	b := uint8(c) & 0x1F
	return color.RGBA{
		R: r<<3 | r>>2,
		G: g<<2 | g>>4,
		B: b<<3 | b>>2,
		A: 0xFF,
	}
}

// String returns the palette name when there is one, else the hex value.
func (c Color) String() string {
	for name, v := range Palette {
		if v == c && name != "PINK" {
			return name
		}
	}
	return fmt.Sprintf("0x%04X", uint16(c))
}
