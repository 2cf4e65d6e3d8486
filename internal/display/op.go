package display

import "fmt"

// OpKind identifies a recorded or observed drawing operation.
type OpKind uint8

const (
	OpFill OpKind = iota + 1
	OpChar
	OpString
)

// Op is one drawing operation. Framebuffer reports fills and characters
// (strings are expanded); Recorder keeps strings whole.
type Op struct {
	Kind        OpKind
	Color       Color // fill color or text foreground
	Background  Color
	X0, Y0      int
	X1, Y1      int
	Ch          byte
	Text        string
	Size        int
	Transparent bool
}

func (o Op) String() string {
	switch o.Kind {
	case OpFill:
		return fmt.Sprintf("fill(%s, %d,%d..%d,%d)", o.Color, o.X0, o.Y0, o.X1, o.Y1)
	case OpChar:
		return fmt.Sprintf("char(%q @%d,%d fg=%s bg=%s size=%d transparent=%v)",
			o.Ch, o.X0, o.Y0, o.Color, o.Background, o.Size, o.Transparent)
	case OpString:
		return fmt.Sprintf("string(%q @%d,%d fg=%s bg=%s size=%d transparent=%v)",
			o.Text, o.X0, o.Y0, o.Color, o.Background, o.Size, o.Transparent)
	default:
		return fmt.Sprintf("op(%d)", o.Kind)
	}
}
