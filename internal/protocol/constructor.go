package protocol

import (
	"encoding/binary"
	"fmt"
	"image"
	"math"

	"github.com/muurk/touchgui/internal/display"
)

// Payload sizes of the fixed-size messages
const (
	helloFixedSize = 4
	fillRectSize   = 10
	glyphSize      = 11
	blitHeaderSize = 4
)

// BuildFrame wraps payload in a frame header.
//
// Frame Structure:
//
//	[0]     0x7e     Sync byte
//	[1]     0x01     Version byte
//	[2]     opcode
//	[3-4]   length   Payload length (little-endian uint16)
//	[5+]    payload
func BuildFrame(op Opcode, payload []byte) ([]byte, error) {
	if len(payload) > MaxPayloadSize {
		return nil, fmt.Errorf("payload too large: %d bytes (max %d)", len(payload), MaxPayloadSize)
	}
	frame := make([]byte, HeaderSize+len(payload))
	frame[0] = Sync
	frame[1] = Version
	frame[2] = byte(op)
	binary.LittleEndian.PutUint16(frame[3:5], uint16(len(payload)))
	copy(frame[HeaderSize:], payload)
	return frame, nil
}

// BuildHello announces the panel size and screen name.
func BuildHello(width, height int, name string) ([]byte, error) {
	if width <= 0 || width > math.MaxUint16 || height <= 0 || height > math.MaxUint16 {
		return nil, fmt.Errorf("invalid panel size %dx%d", width, height)
	}
	payload := make([]byte, helloFixedSize, helloFixedSize+len(name))
	binary.LittleEndian.PutUint16(payload[0:2], uint16(width))
	binary.LittleEndian.PutUint16(payload[2:4], uint16(height))
	payload = append(payload, name...)
	return BuildFrame(OpHello, payload)
}

// BuildFillRect encodes a rectangle fill with both corners inclusive.
func BuildFillRect(c display.Color, x0, y0, x1, y1 int) ([]byte, error) {
	payload := make([]byte, fillRectSize)
	binary.LittleEndian.PutUint16(payload[0:2], uint16(c))
	for i, v := range []int{x0, y0, x1, y1} {
		if err := putInt16(payload[2+2*i:], v); err != nil {
			return nil, err
		}
	}
	return BuildFrame(OpFillRect, payload)
}

// BuildGlyph encodes one character cell.
func BuildGlyph(x, y int, ch byte, fg, bg display.Color, size int, transparent bool) ([]byte, error) {
	if size < 1 || size > math.MaxUint8 {
		return nil, fmt.Errorf("invalid glyph size %d", size)
	}
	payload := make([]byte, glyphSize)
	if err := putInt16(payload[0:], x); err != nil {
		return nil, err
	}
	if err := putInt16(payload[2:], y); err != nil {
		return nil, err
	}
	payload[4] = ch
	binary.LittleEndian.PutUint16(payload[5:7], uint16(fg))
	binary.LittleEndian.PutUint16(payload[7:9], uint16(bg))
	payload[9] = byte(size)
	if transparent {
		payload[10] = 1
	}
	return BuildFrame(OpGlyph, payload)
}

// BuildBlit encodes whole rows of pixels starting at row y. len(pixels)
// must be a multiple of width.
func BuildBlit(y, width int, pixels []display.Color) ([]byte, error) {
	if width <= 0 || width > math.MaxUint16 || len(pixels)%width != 0 {
		return nil, fmt.Errorf("blit of %d pixels is not whole rows of %d", len(pixels), width)
	}
	if y < 0 || y > math.MaxUint16 {
		return nil, fmt.Errorf("blit row %d out of range", y)
	}
	payload := make([]byte, blitHeaderSize+2*len(pixels))
	binary.LittleEndian.PutUint16(payload[0:2], uint16(y))
	binary.LittleEndian.PutUint16(payload[2:4], uint16(width))
	for i, p := range pixels {
		binary.LittleEndian.PutUint16(payload[blitHeaderSize+2*i:], uint16(p))
	}
	return BuildFrame(OpBlit, payload)
}

// BuildFlush marks the end of a batch of drawing.
func BuildFlush() []byte {
	frame, _ := BuildFrame(OpFlush, nil)
	return frame
}

// FromDisplayOp encodes a framebuffer drawing operation. Whole strings are
// not sent; framebuffers report them character by character.
func FromDisplayOp(op display.Op) ([]byte, error) {
	switch op.Kind {
	case display.OpFill:
		return BuildFillRect(op.Color, op.X0, op.Y0, op.X1, op.Y1)
	case display.OpChar:
		return BuildGlyph(op.X0, op.Y0, op.Ch, op.Color, op.Background, op.Size, op.Transparent)
	default:
		return nil, fmt.Errorf("cannot encode %s", op)
	}
}

// Snapshot encodes a full image as Blit frames, splitting it into as few
// frames as the length field allows.
func Snapshot(img *image.RGBA) ([][]byte, error) {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	if width <= 0 || height <= 0 {
		return nil, nil
	}
	rowsPerFrame := (MaxPayloadSize - blitHeaderSize) / (2 * width)
	if rowsPerFrame < 1 {
		return nil, fmt.Errorf("image too wide to blit: %d pixels", width)
	}

	var frames [][]byte
	for y := 0; y < height; y += rowsPerFrame {
		rows := min(rowsPerFrame, height-y)
		pixels := make([]display.Color, 0, rows*width)
		for yy := y; yy < y+rows; yy++ {
			for x := 0; x < width; x++ {
				c := img.RGBAAt(b.Min.X+x, b.Min.Y+yy)
				pixels = append(pixels, display.RGB565(c.R, c.G, c.B))
			}
		}
		frame, err := BuildBlit(y, width, pixels)
		if err != nil {
			return nil, err
		}
		frames = append(frames, frame)
	}
	return frames, nil
}

func putInt16(dst []byte, v int) error {
	if v < math.MinInt16 || v > math.MaxInt16 {
		return fmt.Errorf("coordinate %d out of range", v)
	}
	binary.LittleEndian.PutUint16(dst, uint16(int16(v)))
	return nil
}
