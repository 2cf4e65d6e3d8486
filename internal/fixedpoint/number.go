package fixedpoint

import (
	"encoding/binary"
	"math"
	"strconv"
)

// Number is an integer or floating value.
type Number struct {
	IsFloat bool
	I       int32
	F       float32
}

// Int returns an integer Number.
func Int(v int32) Number { return Number{I: v} }

// Float returns a floating Number.
func Float(v float32) Number { return Number{IsFloat: true, F: v} }

// Equal reports whether both numbers have the same kind and value.
func (n Number) Equal(m Number) bool {
	if n.IsFloat != m.IsFloat {
		return false
	}
	if n.IsFloat {
		return n.F == m.F
	}
	return n.I == m.I
}

func (n Number) String() string {
	if n.IsFloat {
		return strconv.FormatFloat(float64(n.F), 'g', -1, 32)
	}
	return strconv.FormatInt(int64(n.I), 10)
}

// Cell encodes the number the way the device stores a long or a float: four
// little-endian bytes.
func (n Number) Cell() [4]byte {
	var c [4]byte
	if n.IsFloat {
		binary.LittleEndian.PutUint32(c[:], math.Float32bits(n.F))
	} else {
		binary.LittleEndian.PutUint32(c[:], uint32(n.I))
	}
	return c
}

// FromCell decodes a stored cell.
func FromCell(c [4]byte, isFloat bool) Number {
	v := binary.LittleEndian.Uint32(c[:])
	if isFloat {
		return Float(math.Float32frombits(v))
	}
	return Int(int32(v))
}

// Link points at the variable an editor reads and writes. Exactly one of Int
// and Float is set; the editor never owns the variable.
type Link struct {
	Int   *int32
	Float *float32
}

// IntLink links an integer variable.
func IntLink(p *int32) Link { return Link{Int: p} }

// FloatLink links a floating variable.
func FloatLink(p *float32) Link { return Link{Float: p} }

// Valid reports whether exactly one target is set.
func (l Link) Valid() bool { return (l.Int == nil) != (l.Float == nil) }

// IsFloat reports whether the link targets a floating variable.
func (l Link) IsFloat() bool { return l.Float != nil }

// Load reads the linked variable. An unset link reads as integer zero.
func (l Link) Load() Number {
	switch {
	case l.Float != nil:
		return Float(*l.Float)
	case l.Int != nil:
		return Int(*l.Int)
	default:
		return Number{}
	}
}

// Store writes n to the linked variable, converting between kinds if needed.
func (l Link) Store(n Number) {
	switch {
	case l.Float != nil:
		if n.IsFloat {
			*l.Float = n.F
		} else {
			*l.Float = float32(n.I)
		}
	case l.Int != nil:
		if n.IsFloat {
			*l.Int = int32(n.F)
		} else {
			*l.Int = n.I
		}
	}
}
