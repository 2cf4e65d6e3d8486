package protocol

import (
	"encoding/binary"
	"fmt"

	"github.com/muurk/touchgui/internal/display"
)

// Message represents a decoded frame payload
type Message interface {
	Op() Opcode
	String() string
}

// Hello announces the panel (0x01)
type Hello struct {
	Width, Height int
	Name          string
}

func (m *Hello) Op() Opcode { return OpHello }

func (m *Hello) String() string {
	return fmt.Sprintf("Hello{%dx%d, Name=%q}", m.Width, m.Height, m.Name)
}

// FillRect fills a rectangle, corners inclusive (0x02)
type FillRect struct {
	Color          display.Color
	X0, Y0, X1, Y1 int
}

func (m *FillRect) Op() Opcode { return OpFillRect }

func (m *FillRect) String() string {
	return fmt.Sprintf("FillRect{%s, %d,%d..%d,%d}", m.Color, m.X0, m.Y0, m.X1, m.Y1)
}

// Glyph draws one character (0x03)
type Glyph struct {
	X, Y        int
	Ch          byte
	FG, BG      display.Color
	Size        int
	Transparent bool
}

func (m *Glyph) Op() Opcode { return OpGlyph }

func (m *Glyph) String() string {
	return fmt.Sprintf("Glyph{%q @%d,%d fg=%s bg=%s size=%d transparent=%v}",
		m.Ch, m.X, m.Y, m.FG, m.BG, m.Size, m.Transparent)
}

// Blit replaces whole rows of pixels (0x04)
type Blit struct {
	Y, Width int
	Pixels   []display.Color
}

func (m *Blit) Op() Opcode { return OpBlit }

// Rows returns the number of rows carried.
func (m *Blit) Rows() int {
	if m.Width == 0 {
		return 0
	}
	return len(m.Pixels) / m.Width
}

func (m *Blit) String() string {
	return fmt.Sprintf("Blit{Y=%d, %dx%d}", m.Y, m.Width, m.Rows())
}

// Flush ends a batch (0x05)
type Flush struct{}

func (m *Flush) Op() Opcode     { return OpFlush }
func (m *Flush) String() string { return "Flush{}" }

// ParseMessage decodes the payload into a specific message type
func (f *Frame) ParseMessage() (Message, error) {
	p := f.Payload
	switch f.Op {
	case OpHello:
		if len(p) < helloFixedSize {
			return nil, fmt.Errorf("hello payload too short: %d bytes (minimum %d)", len(p), helloFixedSize)
		}
		return &Hello{
			Width:  int(binary.LittleEndian.Uint16(p[0:2])),
			Height: int(binary.LittleEndian.Uint16(p[2:4])),
			Name:   string(p[helloFixedSize:]),
		}, nil

	case OpFillRect:
		if len(p) != fillRectSize {
			return nil, fmt.Errorf("fill payload is %d bytes (expected %d)", len(p), fillRectSize)
		}
		return &FillRect{
			Color: display.Color(binary.LittleEndian.Uint16(p[0:2])),
			X0:    getInt16(p[2:]),
			Y0:    getInt16(p[4:]),
			X1:    getInt16(p[6:]),
			Y1:    getInt16(p[8:]),
		}, nil

	case OpGlyph:
		if len(p) != glyphSize {
			return nil, fmt.Errorf("glyph payload is %d bytes (expected %d)", len(p), glyphSize)
		}
		return &Glyph{
			X:           getInt16(p[0:]),
			Y:           getInt16(p[2:]),
			Ch:          p[4],
			FG:          display.Color(binary.LittleEndian.Uint16(p[5:7])),
			BG:          display.Color(binary.LittleEndian.Uint16(p[7:9])),
			Size:        int(p[9]),
			Transparent: p[10] != 0,
		}, nil

	case OpBlit:
		if len(p) < blitHeaderSize {
			return nil, fmt.Errorf("blit payload too short: %d bytes", len(p))
		}
		m := &Blit{
			Y:     int(binary.LittleEndian.Uint16(p[0:2])),
			Width: int(binary.LittleEndian.Uint16(p[2:4])),
		}
		data := p[blitHeaderSize:]
		if m.Width == 0 || len(data)%(2*m.Width) != 0 {
			return nil, fmt.Errorf("blit of %d bytes is not whole rows of %d pixels", len(data), m.Width)
		}
		m.Pixels = make([]display.Color, len(data)/2)
		for i := range m.Pixels {
			m.Pixels[i] = display.Color(binary.LittleEndian.Uint16(data[2*i:]))
		}
		return m, nil

	case OpFlush:
		if len(p) != 0 {
			return nil, fmt.Errorf("flush carries %d unexpected bytes", len(p))
		}
		return &Flush{}, nil

	default:
		return nil, fmt.Errorf("unknown opcode: 0x%02x", byte(f.Op))
	}
}

func getInt16(b []byte) int {
	return int(int16(binary.LittleEndian.Uint16(b)))
}

// Apply replays a decoded message onto d. Hello and Flush draw nothing.
func Apply(d display.Display, m Message) {
	switch m := m.(type) {
	case *FillRect:
		d.FillRect(m.Color, m.X0, m.Y0, m.X1, m.Y1)
	case *Glyph:
		d.DrawChar(m.X, m.Y, m.Ch, m.FG, m.BG, m.Size, m.Transparent)
	case *Blit:
		for i, c := range m.Pixels {
			x, y := i%m.Width, m.Y+i/m.Width
			d.FillRect(c, x, y, x, y)
		}
	}
}
