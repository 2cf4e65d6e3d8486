package display

// Character cell factors of the built-in font. A glyph at size f occupies
// CharWidthFactor*f by CharHeightFactor*f pixels; opaque text adds one f of
// padding to the right and below.
const (
	CharWidthFactor  = 5
	CharHeightFactor = 7
)

// Display is the driver contract consumed by the widget engine.
//
// Coordinates are pixels with the origin in the top-left corner. FillRect
// takes two corners, both inclusive on real panels; drivers clip to the
// screen. The text state (transparency, size, colors) is sticky and applies
// to DrawString.
type Display interface {
	FillRect(c Color, x0, y0, x1, y1 int)
	FillScreen(c Color)
	DrawChar(x, y int, ch byte, fg, bg Color, size int, transparent bool)
	DrawString(s string, x, y int)
	Width() int
	Height() int
	SetTextTransparent(transparent bool)
	SetTextSize(size int)
	SetTextColor(c Color)
	SetTextBackground(c Color)
}

// TextWidth returns the pixel width of n characters at font size f. The gap
// between characters is counted only between them, not after the last one.
func TextWidth(n, f int) int {
	if n <= 0 {
		return 0
	}
	return (n-1)*f + n*f*CharWidthFactor
}

// TextHeight returns the pixel height of a line at font size f.
func TextHeight(f int) int {
	return f * CharHeightFactor
}

// IsPortrait reports whether the display is taller than it is wide.
func IsPortrait(d Display) bool {
	return d.Width() < d.Height()
}
