package widget

import "github.com/muurk/touchgui/internal/display"

// colors returns the foreground and background for the current state.
func (c *Clickable) colors() (fg, bg display.Color) {
	fg, bg = c.desc.FG, c.desc.BG
	if c.IsOn() && c.flags.Has(ChangeColorOn) {
		fg, bg = c.desc.FGClicked, c.desc.BGOn
	}
	if c.flags.Has(Pressed) {
		fg = c.desc.FGClicked
	}
	return fg, bg
}

// varText returns the variable text shown in the given on state.
func (c *Clickable) varText(on bool) string {
	if on && c.desc.OnText != "" {
		return c.desc.OnText
	}
	if c.flags.Has(VarTextInMemory) {
		return c.desc.VarBuffer.Text()
	}
	return c.desc.VarText
}

func (c *Clickable) hasVarText() bool {
	if c.flags.Has(VarTextInMemory) {
		return c.desc.VarBuffer != nil
	}
	return c.desc.VarText != "" || c.desc.OnText != ""
}

// Render draws the widget.
//
// The background is filled unless the widget is transparent or only the
// variable text is redrawn. The label is centered in the bounds and the
// variable text starts VarOffset characters past the label's left edge; with
// no label the variable text itself is centered before the offset applies.
// On a release of an on/off widget the previous text is erased by drawing it
// in the background color before the new text is drawn.
func (c *Clickable) Render(fromRelease, varTextOnly bool) {
	d := c.desc
	disp := c.disp
	fg, bg := c.colors()
	b := d.Bounds

	if !d.Transparent && !varTextOnly {
		x1, y1 := b.Max()
		disp.FillRect(bg, b.X, b.Y, x1, y1)
	}

	hasVar := c.hasVarText()
	if d.Label == "" && !hasVar {
		return
	}

	f := d.fontSize()
	disp.SetTextTransparent(true)
	disp.SetTextSize(f)
	disp.SetTextColor(fg)
	disp.SetTextBackground(bg)

	on := c.IsOn()
	text := c.varText(on)
	if d.Label != "" && !varTextOnly {
		x, y := centerText(b, len(d.Label), f)
		disp.DrawString(d.Label, x, y)
	}
	if !hasVar {
		return
	}

	x, y := c.varTextOrigin(text, f)
	if varTextOnly {
		if !d.Transparent {
			x1, _ := b.Max()
			disp.FillRect(bg, x, y, x1, y+display.TextHeight(f)-1)
		}
		disp.SetTextTransparent(false)
	}

	if fromRelease && c.flags.Has(OnOff) {
		prev := c.varText(!on)
		px, py := c.varTextOrigin(prev, f)
		disp.SetTextColor(bg)
		disp.DrawString(prev, px, py)
		disp.SetTextColor(fg)
	}
	disp.DrawString(text, x, y)
}

// varTextOrigin places variable text VarOffset characters past the label's
// left edge, or past its own centered position when there is no label.
func (c *Clickable) varTextOrigin(text string, f int) (int, int) {
	n := len(c.desc.Label)
	if n == 0 {
		n = len(text)
	}
	x, y := centerText(c.desc.Bounds, n, f)
	return x + display.TextWidth(c.desc.VarOffset, f), y
}
