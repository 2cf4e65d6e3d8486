package numedit

import (
	"github.com/muurk/touchgui/internal/display"
	"github.com/muurk/touchgui/internal/fixedpoint"
)

// Keypad geometry.
const (
	KeyFontSize = 6
	KeyPadding  = 10
	KeyCellW    = display.CharWidthFactor*KeyFontSize + 2*KeyPadding
	KeyCellH    = display.CharHeightFactor*KeyFontSize + 2*KeyPadding

	// MaxFieldFontSize is where the field font search starts.
	MaxFieldFontSize = 6
	// fieldPadding is the margin around the field text.
	fieldPadding = 5
)

// Key orders for each orientation. Unsigned fields replace '-' with a blank.
const (
	portraitKeys  = "123456789-0 "
	landscapeKeys = "-1230456 789"
)

// Cell colors.
const (
	cellBG         = display.White
	cellFG         = display.Black
	cellSelectedBG = display.Red
	cellSelectedFG = display.White
	keyBorder      = display.LightGrey
)

// Layout is the geometry of the edit screen.
type Layout struct {
	Cells     int // characters in the field
	PointCell int // index of the decimal point cell, or -1
	FontSize  int
	CellW     int

	// field rectangle, text starts fieldPadding inside it
	FieldX, FieldY int
	FieldW, FieldH int

	Portrait   bool
	Rows, Cols int
	PadX, PadY int
	PadW, PadH int
	Keys       string
}

// NewLayout computes the edit screen for a field on a display of the given
// size.
func NewLayout(width, height int, field fixedpoint.Field) Layout {
	n := field.Width()
	l := Layout{
		Cells:     n,
		PointCell: field.PointIndex(),
		Portrait:  width < height,
	}

	f := MaxFieldFontSize
	for f > 1 && display.TextWidth(n, f) > width {
		f--
	}
	l.FontSize = f
	l.CellW = f * (display.CharWidthFactor + 1)
	// n cells less the trailing inter-character gap, plus padding
	l.FieldW = l.CellW*n - f + 2*fieldPadding
	l.FieldH = f*display.CharHeightFactor + 2*fieldPadding
	l.FieldX = (width - l.FieldW) / 2

	keys := []byte(portraitKeys)
	if l.Portrait {
		l.Rows, l.Cols = 4, 3
		l.FieldY = 80
	} else {
		l.Rows, l.Cols = 3, 4
		l.FieldY = 10
		keys = []byte(landscapeKeys)
	}
	if !field.Signed {
		for i, k := range keys {
			if k == '-' {
				keys[i] = ' '
			}
		}
	}
	l.Keys = string(keys)

	l.PadW = l.Cols * KeyCellW
	l.PadH = l.Rows * KeyCellH
	l.PadX = (width - l.PadW) / 2
	if l.Portrait {
		l.PadY = l.FieldY + l.FieldH + 40
	} else {
		l.PadY = l.FieldY + l.FieldH + 10
	}
	return l
}

// fieldRight is the exclusive right edge of the touchable field area.
func (l Layout) fieldRight() int { return l.FieldX + l.FieldW + 2*fieldPadding }

// InField reports whether (x, y) touches the edit field.
func (l Layout) InField(x, y int) bool {
	return x >= l.FieldX && x < l.fieldRight() && y >= l.FieldY && y < l.FieldY+l.FieldH
}

// CellAt returns the field cell under x, clamped to the field.
func (l Layout) CellAt(x int) int {
	i := (x - l.FieldX - fieldPadding) / l.CellW
	if i < 0 {
		i = 0
	} else if i >= l.Cells {
		i = l.Cells - 1
	}
	return i
}

// CellRect returns the inclusive rectangle painted behind cell i. The first
// and last cells extend to the field edges.
func (l Layout) CellRect(i int) (x0, y0, x1, y1 int) {
	x0 = l.FieldX + i*l.CellW
	x1 = l.FieldX + (i+1)*l.CellW
	if i == l.Cells-1 {
		x1 = l.fieldRight()
	}
	return x0, l.FieldY, x1, l.FieldY + l.FieldH
}

// CellOrigin returns where the character of cell i is drawn.
func (l Layout) CellOrigin(i int) (int, int) {
	return l.FieldX + fieldPadding + i*l.CellW, l.FieldY + fieldPadding
}

// InPad reports whether (x, y) touches the keypad.
func (l Layout) InPad(x, y int) bool {
	return x >= l.PadX && x < l.PadX+l.PadW && y >= l.PadY && y < l.PadY+l.PadH
}

// KeyAt returns the index of the key under (x, y), which must be in the pad.
func (l Layout) KeyAt(x, y int) int {
	return l.Cols*((y-l.PadY)/KeyCellH) + (x-l.PadX)/KeyCellW
}

// KeyOrigin returns the top-left corner of key k.
func (l Layout) KeyOrigin(k int) (int, int) {
	return l.PadX + (k%l.Cols)*KeyCellW, l.PadY + (k/l.Cols)*KeyCellH
}
