// Package protocol implements the remote panel wire format.
//
// The server mirrors every drawing operation of the panel framebuffer to
// browser clients over a WebSocket, and clients send touches back.
//
// # Frame Format
//
// Server to client messages are binary frames, possibly several per
// WebSocket message:
//   - Frame sync byte: 0x7e
//   - Protocol version: 0x01
//   - Opcode: 1 byte
//   - Payload length: 2 bytes (little-endian)
//   - Payload: Variable length
//
// All multi-byte payload fields are little-endian. Coordinates are signed
// 16-bit, colors are RGB565.
//
// # Opcodes
//
//   - Hello (0x01): width u16, height u16, screen name (rest of payload)
//   - FillRect (0x02): color, x0, y0, x1, y1 with both corners inclusive
//   - Glyph (0x03): x, y, character, fg, bg, size u8, transparent u8
//   - Blit (0x04): y u16, width u16, then width*rows RGB565 pixels
//   - Flush (0x05): empty; the client may present the frame
//
// # Touch Messages
//
// Clients send JSON text messages:
//
//	{"type": "down", "x": 120, "y": 48}
//	{"type": "up"}
//
// "move" is accepted as a down at the new position.
//
// # Usage Example
//
//	fb.Observe(func(op display.Op) {
//	    frame, err := protocol.FromDisplayOp(op)
//	    if err == nil {
//	        hub.Broadcast(frame)
//	    }
//	})
//
// # Thread Safety
//
// All parsing and construction functions are stateless and safe for concurrent use.
package protocol
