package protocol

import (
	"encoding/binary"
	"fmt"
)

// Frame constants
const (
	Sync       = 0x7e
	Version    = 0x01
	HeaderSize = 5 // Sync + Version + Opcode + 2-byte length

	// MaxPayloadSize is the largest payload the length field can describe.
	MaxPayloadSize = 0xFFFF
)

// Opcode identifies the message carried by a frame.
type Opcode byte

const (
	OpHello    Opcode = 0x01
	OpFillRect Opcode = 0x02
	OpGlyph    Opcode = 0x03
	OpBlit     Opcode = 0x04
	OpFlush    Opcode = 0x05
)

// String returns a human-readable opcode name
func (o Opcode) String() string {
	switch o {
	case OpHello:
		return "hello"
	case OpFillRect:
		return "fill"
	case OpGlyph:
		return "glyph"
	case OpBlit:
		return "blit"
	case OpFlush:
		return "flush"
	default:
		return fmt.Sprintf("unknown(0x%02X)", byte(o))
	}
}

// Frame represents a parsed protocol frame
type Frame struct {
	Version byte
	Op      Opcode
	Length  uint16
	Payload []byte
	Raw     []byte // Original frame bytes for debugging
}

// ParseFrame parses exactly one frame from data.
func ParseFrame(data []byte) (*Frame, error) {
	f, n, err := parseOne(data)
	if err != nil {
		return nil, err
	}
	if n != len(data) {
		return nil, fmt.Errorf("%d trailing bytes after frame", len(data)-n)
	}
	return f, nil
}

// SplitFrames parses a sequence of back-to-back frames.
func SplitFrames(data []byte) ([]*Frame, error) {
	var frames []*Frame
	for off := 0; off < len(data); {
		f, n, err := parseOne(data[off:])
		if err != nil {
			return frames, fmt.Errorf("frame at offset %d: %w", off, err)
		}
		frames = append(frames, f)
		off += n
	}
	return frames, nil
}

func parseOne(data []byte) (*Frame, int, error) {
	if len(data) < HeaderSize {
		return nil, 0, fmt.Errorf("frame too short: %d bytes (minimum %d)", len(data), HeaderSize)
	}
	if data[0] != Sync {
		return nil, 0, fmt.Errorf("invalid sync byte: 0x%02x (expected 0x%02x)", data[0], Sync)
	}
	if data[1] != Version {
		return nil, 0, fmt.Errorf("invalid version: 0x%02x (expected 0x%02x)", data[1], Version)
	}

	length := binary.LittleEndian.Uint16(data[3:5])
	end := HeaderSize + int(length)
	if len(data) < end {
		return nil, 0, fmt.Errorf("frame declares %d payload bytes, only %d present", length, len(data)-HeaderSize)
	}
	return &Frame{
		Version: data[1],
		Op:      Opcode(data[2]),
		Length:  length,
		Payload: data[HeaderSize:end],
		Raw:     data[:end],
	}, end, nil
}

// String returns a debug representation of the frame
func (f *Frame) String() string {
	return fmt.Sprintf("Frame{Op=%s, Length=%d}", f.Op, f.Length)
}
