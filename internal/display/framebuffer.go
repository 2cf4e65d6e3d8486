package display

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Framebuffer is a Display backed by an RGBA image. It stands in for the
// SPI panel in the simulator, the remote panel and headless rendering.
type Framebuffer struct {
	mu  sync.Mutex
	img *image.RGBA
	dc  *gg.Context

	transparent bool
	size        int
	fg, bg      Color

	observer func(Op)
	glyphs   map[byte]*image.Alpha
}

// NewFramebuffer creates a black framebuffer of the given size.
func NewFramebuffer(width, height int) *Framebuffer {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	fb := &Framebuffer{
		img:    img,
		dc:     gg.NewContextForRGBA(img),
		size:   1,
		fg:     White,
		bg:     Black,
		glyphs: make(map[byte]*image.Alpha),
	}
	fb.dc.SetColor(color.Black)
	fb.dc.Clear()
	return fb
}

// Observe registers fn to be called after every fill and character.
// Pass nil to stop observing.
func (fb *Framebuffer) Observe(fn func(Op)) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.observer = fn
}

func (fb *Framebuffer) Width() int  { return fb.img.Rect.Dx() }
func (fb *Framebuffer) Height() int { return fb.img.Rect.Dy() }

func (fb *Framebuffer) SetTextTransparent(transparent bool) { fb.transparent = transparent }
func (fb *Framebuffer) SetTextColor(c Color)                { fb.fg = c }
func (fb *Framebuffer) SetTextBackground(c Color)           { fb.bg = c }

func (fb *Framebuffer) SetTextSize(size int) {
	if size < 1 {
		size = 1
	}
	fb.size = size
}

// FillRect fills the rectangle with both corners inclusive.
func (fb *Framebuffer) FillRect(c Color, x0, y0, x1, y1 int) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	fb.mu.Lock()
	fb.dc.SetColor(c.RGBA8())
	fb.dc.DrawRectangle(float64(x0), float64(y0), float64(x1-x0+1), float64(y1-y0+1))
	fb.dc.Fill()
	obs := fb.observer
	fb.mu.Unlock()

	if obs != nil {
		obs(Op{Kind: OpFill, Color: c, X0: x0, Y0: y0, X1: x1, Y1: y1})
	}
}

func (fb *Framebuffer) FillScreen(c Color) {
	fb.FillRect(c, 0, 0, fb.Width()-1, fb.Height()-1)
}

// DrawChar draws one glyph scaled to a 5*size by 7*size box. Opaque glyphs
// paint the background including the one-size padding right and below.
func (fb *Framebuffer) DrawChar(x, y int, ch byte, fg, bg Color, size int, transparent bool) {
	if size < 1 {
		size = 1
	}
	fb.mu.Lock()
	if !transparent {
		cell := image.Rect(x, y, x+(CharWidthFactor+1)*size, y+(CharHeightFactor+1)*size)
		draw.Draw(fb.img, cell, image.NewUniform(bg.RGBA8()), image.Point{}, draw.Src)
	}
	if ch != ' ' {
		dr := image.Rect(x, y, x+CharWidthFactor*size, y+CharHeightFactor*size)
		mask := image.NewAlpha(image.Rect(0, 0, dr.Dx(), dr.Dy()))
		src := fb.glyph(ch)
		draw.NearestNeighbor.Scale(mask, mask.Bounds(), src, src.Bounds(), draw.Src, nil)
		draw.DrawMask(fb.img, dr, image.NewUniform(fg.RGBA8()), image.Point{}, mask, image.Point{}, draw.Over)
	}
	obs := fb.observer
	fb.mu.Unlock()

	if obs != nil {
		obs(Op{Kind: OpChar, X0: x, Y0: y, Ch: ch, Color: fg, Background: bg, Size: size, Transparent: transparent})
	}
}

// DrawString prints s with the current text state, advancing one character
// cell plus gap per byte.
func (fb *Framebuffer) DrawString(s string, x, y int) {
	step := (CharWidthFactor + 1) * fb.size
	for i := 0; i < len(s); i++ {
		fb.DrawChar(x+i*step, y, s[i], fb.fg, fb.bg, fb.size, fb.transparent)
	}
}

// glyph returns the cropped basicfont mask for ch, caching it. Must be
// called with mu held.
func (fb *Framebuffer) glyph(ch byte) *image.Alpha {
	if g, ok := fb.glyphs[ch]; ok {
		return g
	}
	face := basicfont.Face7x13
	// The 7x13 face keeps its capitals in columns 0-5 and rows 2-10.
	full := image.NewAlpha(image.Rect(0, 0, face.Advance, face.Height))
	d := font.Drawer{
		Dst:  full,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.P(0, face.Ascent),
	}
	d.DrawString(string(rune(ch)))
	g := image.NewAlpha(image.Rect(0, 0, 6, 9))
	draw.Draw(g, g.Bounds(), full, image.Pt(0, 2), draw.Src)
	fb.glyphs[ch] = g
	return g
}

// Image returns a copy of the current frame.
func (fb *Framebuffer) Image() *image.RGBA {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	out := image.NewRGBA(fb.img.Rect)
	copy(out.Pix, fb.img.Pix)
	return out
}

// At returns the RGB565 color of a pixel.
func (fb *Framebuffer) At(x, y int) Color {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	c := fb.img.RGBAAt(x, y)
	return RGB565(c.R, c.G, c.B)
}

// SavePNG writes the current frame to path.
func (fb *Framebuffer) SavePNG(path string) error {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	if err := fb.dc.SavePNG(path); err != nil {
		return fmt.Errorf("failed to save frame: %w", err)
	}
	return nil
}
