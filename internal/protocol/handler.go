package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/muurk/touchgui/internal/logging"
	"go.uber.org/zap"
)

// Touch message types
const (
	TouchDown = "down"
	TouchMove = "move"
	TouchUp   = "up"
)

// Touch is a client touch message
type Touch struct {
	Type string `json:"type"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// TouchSink receives decoded touches. touch.Queue implements it.
type TouchSink interface {
	Press(x, y int)
	Release()
}

// ParseTouch decodes and checks a touch message
func ParseTouch(data []byte) (Touch, error) {
	var t Touch
	if err := json.Unmarshal(data, &t); err != nil {
		return Touch{}, fmt.Errorf("invalid touch message: %w", err)
	}
	switch t.Type {
	case TouchDown, TouchMove:
		if t.X < 0 || t.Y < 0 {
			return Touch{}, fmt.Errorf("touch at negative position (%d,%d)", t.X, t.Y)
		}
	case TouchUp:
	case "":
		return Touch{}, fmt.Errorf("touch message has no type")
	default:
		return Touch{}, fmt.Errorf("unknown touch type %q", t.Type)
	}
	return t, nil
}

// EncodeTouch encodes a touch message
func EncodeTouch(t Touch) ([]byte, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal touch: %w", err)
	}
	return data, nil
}

// HandleMessage processes a text message from a panel client. Touches
// outside width x height are dropped.
func HandleMessage(sink TouchSink, remoteAddr string, width, height int, data []byte) error {
	t, err := ParseTouch(data)
	if err != nil {
		logging.Warn("Unknown client message",
			zap.String("remote_addr", remoteAddr),
			zap.ByteString("data", data),
			zap.Error(err),
		)
		return err
	}

	switch t.Type {
	case TouchDown, TouchMove:
		if t.X >= width || t.Y >= height {
			logging.Debug("Touch outside the panel",
				zap.String("remote_addr", remoteAddr),
				zap.Int("x", t.X),
				zap.Int("y", t.Y),
			)
			return nil
		}
		sink.Press(t.X, t.Y)
	case TouchUp:
		sink.Release()
	}
	return nil
}
