package fixedpoint

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MaxWidth bounds the number of character cells in a field.
const MaxWidth = 16

// Digit limits for values that must survive a parse: any 9-digit integer
// fits an int32 and float32 keeps 7 significant digits.
const (
	MaxIntDigits   = 9
	MaxFloatDigits = 7
)

// Field is the shape of a fixed-width numeric text field.
type Field struct {
	IntDigits int
	Decimals  int
	Signed    bool
}

// Width returns the number of character cells: integer digits, decimal
// digits, a point when there are decimals and a sign slot when signed.
func (f Field) Width() int {
	w := f.IntDigits + f.Decimals
	if f.Decimals > 0 {
		w++
	}
	if f.Signed {
		w++
	}
	return w
}

// PointIndex returns the cell index of the decimal point, or -1.
func (f Field) PointIndex() int {
	if f.Decimals == 0 {
		return -1
	}
	idx := f.IntDigits
	if f.Signed {
		idx++
	}
	return idx
}

// IsFloat reports whether values of this field are floating.
func (f Field) IsFloat() bool { return f.Decimals > 0 }

// Validate checks the shape.
func (f Field) Validate() error {
	if f.IntDigits < 0 || f.Decimals < 0 {
		return errors.New("digit counts must not be negative")
	}
	if f.IntDigits+f.Decimals == 0 {
		return errors.New("field has no digits")
	}
	if w := f.Width(); w > MaxWidth {
		return fmt.Errorf("field width %d exceeds %d", w, MaxWidth)
	}
	if !f.IsFloat() && f.IntDigits > MaxIntDigits {
		return fmt.Errorf("integer field has %d digits, at most %d fit", f.IntDigits, MaxIntDigits)
	}
	if n := f.IntDigits + f.Decimals; f.IsFloat() && n > MaxFloatDigits {
		return fmt.Errorf("decimal field has %d digits, at most %d are exact", n, MaxFloatDigits)
	}
	return nil
}

func (f Field) String() string {
	sign := "unsigned"
	if f.Signed {
		sign = "signed"
	}
	return fmt.Sprintf("%d.%d %s", f.IntDigits, f.Decimals, sign)
}

// FormatText renders n without padding: an integer for zero decimals,
// otherwise exactly decimals digits after the point.
func FormatText(n Number, decimals int) string {
	if decimals <= 0 {
		if n.IsFloat {
			return strconv.FormatInt(int64(n.F), 10)
		}
		return strconv.FormatInt(int64(n.I), 10)
	}
	v := float64(n.F)
	if !n.IsFloat {
		v = float64(n.I)
	}
	return strconv.FormatFloat(v, 'f', decimals, 32)
}

// Format renders n right-justified into Width() cells padded with spaces.
// Text longer than the field keeps its rightmost Width() characters.
func (f Field) Format(n Number) []byte {
	w := f.Width()
	text := FormatText(n, f.Decimals)
	if len(text) > w {
		text = text[len(text)-w:]
	}
	buf := make([]byte, w)
	pad := w - len(text)
	for i := 0; i < pad; i++ {
		buf[i] = ' '
	}
	copy(buf[pad:], text)
	return buf
}

// Compact returns buf with all spaces removed.
func Compact(buf []byte) string {
	return strings.ReplaceAll(string(buf), " ", "")
}

// Parse converts text to a Number of the field's kind. A leading '-' negates
// the result; other characters that are not digits or the decimal point are
// skipped. Empty text parses as zero.
func (f Field) Parse(text string) Number {
	neg := false
	if strings.HasPrefix(text, "-") {
		neg = true
		text = text[1:]
	}

	if !f.IsFloat() {
		var v int64
		for i := 0; i < len(text); i++ {
			c := text[i]
			if c < '0' || c > '9' {
				continue
			}
			v = v*10 + int64(c-'0')
		}
		if neg {
			v = -v
		}
		return Int(int32(v))
	}

	var whole, frac float64
	scale := 1.0
	inFrac := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == '.':
			inFrac = true
		case c < '0' || c > '9':
		case inFrac:
			scale *= 10
			frac += float64(c-'0') / scale
		default:
			whole = whole*10 + float64(c-'0')
		}
	}
	v := whole + frac
	if neg {
		v = -v
	}
	return Float(float32(v))
}
