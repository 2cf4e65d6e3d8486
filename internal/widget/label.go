package widget

import (
	"fmt"

	"github.com/muurk/touchgui/internal/display"
)

// Label is a static widget: a background and a centered label.
type Label struct {
	disp   display.Display
	handle Handle
	desc   Descriptor
}

// NewLabel creates a label from the descriptor behind h. Any registered
// kind may be shown as a plain label.
func NewLabel(d display.Display, reg *Registry, h Handle) (*Label, error) {
	desc, ok := reg.Label(h)
	if !ok {
		return nil, fmt.Errorf("no descriptor for handle %d", h)
	}
	return &Label{disp: d, handle: h, desc: desc}, nil
}

func (l *Label) Render(bool, bool) {
	d := l.desc
	if !d.Transparent {
		x1, y1 := d.Bounds.Max()
		l.disp.FillRect(d.BG, d.Bounds.X, d.Bounds.Y, x1, y1)
	}
	if d.Label == "" {
		return
	}
	f := d.fontSize()
	l.disp.SetTextTransparent(d.Transparent)
	l.disp.SetTextSize(f)
	l.disp.SetTextColor(d.FG)
	l.disp.SetTextBackground(d.BG)
	x, y := centerText(d.Bounds, len(d.Label), f)
	l.disp.DrawString(d.Label, x, y)
}

func (l *Label) Click(int, int) bool { return false }
func (l *Label) Release() bool       { return false }
func (l *Label) Bounds() Rect        { return l.desc.Bounds }
func (l *Label) Name() string        { return l.desc.Name }

// Handle returns the descriptor handle.
func (l *Label) Handle() Handle { return l.handle }

// centerText returns the origin of n characters at size f centered in r.
func centerText(r Rect, n, f int) (int, int) {
	x := r.X + (r.W-display.TextWidth(n, f))/2
	y := r.Y + (r.H-display.TextHeight(f))/2
	return x, y
}
