package protocol

import (
	"image"
	"reflect"
	"testing"

	"github.com/muurk/touchgui/internal/display"
)

func roundTrip(t *testing.T, frame []byte, err error) Message {
	t.Helper()
	if err != nil {
		t.Fatalf("build error = %v", err)
	}
	f, err := ParseFrame(frame)
	if err != nil {
		t.Fatalf("ParseFrame() error = %v", err)
	}
	m, err := f.ParseMessage()
	if err != nil {
		t.Fatalf("ParseMessage() error = %v", err)
	}
	return m
}

func TestMessages(t *testing.T) {
	hello, err := BuildHello(480, 320, "oven")
	if got := roundTrip(t, hello, err); !reflect.DeepEqual(got, &Hello{Width: 480, Height: 320, Name: "oven"}) {
		t.Errorf("hello = %s", got)
	}

	fill, err := BuildFillRect(display.Navy, -3, 4, 300, 470)
	want := &FillRect{Color: display.Navy, X0: -3, Y0: 4, X1: 300, Y1: 470}
	if got := roundTrip(t, fill, err); !reflect.DeepEqual(got, want) {
		t.Errorf("fill = %s, want %s", got, want)
	}

	glyph, err := BuildGlyph(12, 34, 'A', display.White, display.Red, 3, true)
	wantGlyph := &Glyph{X: 12, Y: 34, Ch: 'A', FG: display.White, BG: display.Red, Size: 3, Transparent: true}
	if got := roundTrip(t, glyph, err); !reflect.DeepEqual(got, wantGlyph) {
		t.Errorf("glyph = %s, want %s", got, wantGlyph)
	}

	if got := roundTrip(t, BuildFlush(), nil); got.Op() != OpFlush {
		t.Errorf("flush = %s", got)
	}
}

func TestBuildErrors(t *testing.T) {
	if _, err := BuildFillRect(display.Red, 0, 0, 40000, 1); err == nil {
		t.Error("BuildFillRect() accepted a coordinate beyond int16")
	}
	if _, err := BuildGlyph(0, 0, 'x', 0, 0, 0, false); err == nil {
		t.Error("BuildGlyph() accepted size 0")
	}
	if _, err := BuildHello(0, 10, ""); err == nil {
		t.Error("BuildHello() accepted width 0")
	}
	if _, err := BuildBlit(0, 3, make([]display.Color, 4)); err == nil {
		t.Error("BuildBlit() accepted a partial row")
	}
}

func TestParseMessageErrors(t *testing.T) {
	tests := []struct {
		name  string
		frame *Frame
	}{
		{"short hello", &Frame{Op: OpHello, Payload: []byte{1, 0}}},
		{"short fill", &Frame{Op: OpFillRect, Payload: make([]byte, 9)}},
		{"long glyph", &Frame{Op: OpGlyph, Payload: make([]byte, 12)}},
		{"odd blit", &Frame{Op: OpBlit, Payload: []byte{0, 0, 2, 0, 1, 2, 3}}},
		{"zero width blit", &Frame{Op: OpBlit, Payload: []byte{0, 0, 0, 0}}},
		{"flush with data", &Frame{Op: OpFlush, Payload: []byte{1}}},
		{"unknown", &Frame{Op: 0x42}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.frame.ParseMessage(); err == nil {
				t.Error("ParseMessage() error = nil")
			}
		})
	}
}

func TestFromDisplayOp(t *testing.T) {
	frame, err := FromDisplayOp(display.Op{Kind: display.OpChar, X0: 5, Y0: 6, Ch: '7', Color: display.Black, Background: display.White, Size: 2})
	m := roundTrip(t, frame, err)
	g, ok := m.(*Glyph)
	if !ok || g.Ch != '7' || g.Size != 2 || g.Transparent {
		t.Errorf("glyph = %s", m)
	}

	if _, err := FromDisplayOp(display.Op{Kind: display.OpString, Text: "hi"}); err == nil {
		t.Error("FromDisplayOp() encoded a whole string")
	}
}

func TestSnapshotReplaysImage(t *testing.T) {
	src := display.NewFramebuffer(400, 100)
	src.FillRect(display.Red, 10, 10, 50, 90)
	src.DrawChar(100, 50, 'Q', display.Yellow, display.Blue, 4, false)

	frames, err := Snapshot(src.Image())
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	// 400 px rows are 800 bytes, 81 rows per frame
	if len(frames) != 2 {
		t.Errorf("Snapshot() produced %d frames, want 2", len(frames))
	}

	dst := display.NewFramebuffer(400, 100)
	for _, data := range frames {
		f, err := ParseFrame(data)
		if err != nil {
			t.Fatal(err)
		}
		m, err := f.ParseMessage()
		if err != nil {
			t.Fatal(err)
		}
		Apply(dst, m)
	}

	for _, p := range []image.Point{{0, 0}, {10, 10}, {50, 90}, {51, 90}, {101, 51}, {399, 99}} {
		if a, b := src.At(p.X, p.Y), dst.At(p.X, p.Y); a != b {
			t.Errorf("pixel %v = %s after replay, want %s", p, b, a)
		}
	}
}

func TestSnapshotEmpty(t *testing.T) {
	frames, err := Snapshot(image.NewRGBA(image.Rect(0, 0, 0, 0)))
	if err != nil || frames != nil {
		t.Errorf("Snapshot(empty) = %v, %v", frames, err)
	}
}
