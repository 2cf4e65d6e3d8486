package widget

import "strings"

// Flags is the runtime state of a widget instance.
type Flags uint8

const (
	Pressed         Flags = 0x01
	VarTextInMemory Flags = 0x02
	ChangeColorOn   Flags = 0x20
	On              Flags = 0x40
	OnOff           Flags = 0x80
)

// Has reports whether every bit in mask is set.
func (f Flags) Has(mask Flags) bool { return f&mask == mask }

func (f Flags) String() string {
	var parts []string
	for _, b := range []struct {
		flag Flags
		name string
	}{
		{OnOff, "onoff"},
		{On, "on"},
		{ChangeColorOn, "color-on"},
		{VarTextInMemory, "vartext-mem"},
		{Pressed, "pressed"},
	} {
		if f.Has(b.flag) {
			parts = append(parts, b.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}
