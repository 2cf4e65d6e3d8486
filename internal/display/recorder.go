package display

import "sync"

// Recorder is a Display that records every call. It is used by tests and by
// the render command's --trace output.
type Recorder struct {
	mu     sync.Mutex
	width  int
	height int
	ops    []Op

	transparent bool
	size        int
	fg, bg      Color
}

// NewRecorder returns a recorder reporting the given dimensions.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{width: width, height: height, size: 1, fg: White, bg: Black}
}

func (r *Recorder) Width() int  { return r.width }
func (r *Recorder) Height() int { return r.height }

func (r *Recorder) SetTextTransparent(transparent bool) { r.transparent = transparent }
func (r *Recorder) SetTextSize(size int)                { r.size = size }
func (r *Recorder) SetTextColor(c Color)                { r.fg = c }
func (r *Recorder) SetTextBackground(c Color)           { r.bg = c }

func (r *Recorder) FillRect(c Color, x0, y0, x1, y1 int) {
	r.add(Op{Kind: OpFill, Color: c, X0: x0, Y0: y0, X1: x1, Y1: y1})
}

func (r *Recorder) FillScreen(c Color) {
	r.FillRect(c, 0, 0, r.width-1, r.height-1)
}

func (r *Recorder) DrawChar(x, y int, ch byte, fg, bg Color, size int, transparent bool) {
	r.add(Op{Kind: OpChar, X0: x, Y0: y, Ch: ch, Color: fg, Background: bg, Size: size, Transparent: transparent})
}

func (r *Recorder) DrawString(s string, x, y int) {
	r.add(Op{
		Kind:        OpString,
		X0:          x,
		Y0:          y,
		Text:        s,
		Color:       r.fg,
		Background:  r.bg,
		Size:        r.size,
		Transparent: r.transparent,
	})
}

func (r *Recorder) add(op Op) {
	r.mu.Lock()
	r.ops = append(r.ops, op)
	r.mu.Unlock()
}

// Ops returns a copy of the recorded operations.
func (r *Recorder) Ops() []Op {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Op, len(r.ops))
	copy(out, r.ops)
	return out
}

// Strings returns the text of every DrawString call in order.
func (r *Recorder) Strings() []string {
	var out []string
	for _, op := range r.Ops() {
		if op.Kind == OpString {
			out = append(out, op.Text)
		}
	}
	return out
}

// Reset discards the recorded operations.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.ops = nil
	r.mu.Unlock()
}

var (
	_ Display = (*Recorder)(nil)
	_ Display = (*Framebuffer)(nil)
)
