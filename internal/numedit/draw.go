package numedit

import "github.com/muurk/touchgui/internal/display"

// drawScreen paints the whole edit screen.
func (s *Session) drawScreen() {
	d, l := s.disp, s.layout

	d.FillScreen(display.Black)
	d.FillRect(cellBG, l.FieldX, l.FieldY, l.fieldRight(), l.FieldY+l.FieldH)
	for i := range s.buf {
		x, y := l.CellOrigin(i)
		d.DrawChar(x, y, s.buf[i], cellFG, cellBG, l.FontSize, false)
	}

	d.FillRect(cellBG, l.PadX, l.PadY, l.PadX+l.PadW, l.PadY+l.PadH)
	for c := 1; c < l.Cols; c++ {
		x := l.PadX + c*KeyCellW
		d.FillRect(keyBorder, x, l.PadY, x, l.PadY+l.PadH)
	}
	for r := 1; r < l.Rows; r++ {
		y := l.PadY + r*KeyCellH
		d.FillRect(keyBorder, l.PadX, y, l.PadX+l.PadW, y)
	}
	for k := 0; k < len(l.Keys); k++ {
		x, y := l.KeyOrigin(k)
		d.DrawChar(x+KeyPadding, y+KeyPadding, l.Keys[k], cellFG, cellBG, KeyFontSize, false)
	}

	s.ok.Render(false, false)
	s.cancel.Render(false, false)
}

// drawCell paints field cell i with its background.
func (s *Session) drawCell(i int, selected bool) {
	fg, bg := cellFG, cellBG
	if selected {
		fg, bg = cellSelectedFG, cellSelectedBG
	}
	x0, y0, x1, y1 := s.layout.CellRect(i)
	s.disp.FillRect(bg, x0, y0, x1, y1)
	x, y := s.layout.CellOrigin(i)
	s.disp.DrawChar(x, y, s.buf[i], fg, bg, s.layout.FontSize, false)
}

// drawKey paints key k inside its borders.
func (s *Session) drawKey(k int, pressed bool) {
	fg, bg := cellFG, cellBG
	if pressed {
		fg, bg = cellSelectedFG, cellSelectedBG
	}
	x, y := s.layout.KeyOrigin(k)
	s.disp.FillRect(bg, x+1, y+1, x+KeyCellW-1, y+KeyCellH-1)
	s.disp.DrawChar(x+KeyPadding, y+KeyPadding, s.layout.Keys[k], fg, bg, KeyFontSize, false)
}
