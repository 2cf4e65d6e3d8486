package protocol

import (
	"testing"
)

type recordingSink struct {
	events []string
}

func (s *recordingSink) Press(int, int) { s.events = append(s.events, "down") }

func (s *recordingSink) Release() { s.events = append(s.events, "up") }

func TestParseTouch(t *testing.T) {
	tests := []struct {
		data    string
		want    Touch
		wantErr bool
	}{
		{`{"type":"down","x":10,"y":20}`, Touch{Type: TouchDown, X: 10, Y: 20}, false},
		{`{"type":"move","x":11,"y":21}`, Touch{Type: TouchMove, X: 11, Y: 21}, false},
		{`{"type":"up"}`, Touch{Type: TouchUp}, false},
		{`{"type":"down","x":-1,"y":0}`, Touch{}, true},
		{`{"type":"pinch"}`, Touch{}, true},
		{`{"x":1}`, Touch{}, true},
		{`not json`, Touch{}, true},
	}
	for _, tt := range tests {
		got, err := ParseTouch([]byte(tt.data))
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseTouch(%s) error = %v, wantErr %v", tt.data, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTouch(%s) = %+v, want %+v", tt.data, got, tt.want)
		}
	}
}

func TestEncodeTouch(t *testing.T) {
	data, err := EncodeTouch(Touch{Type: TouchDown, X: 3, Y: 4})
	if err != nil {
		t.Fatal(err)
	}
	got, err := ParseTouch(data)
	if err != nil || got.X != 3 || got.Y != 4 {
		t.Errorf("round trip = %+v, %v", got, err)
	}
}

func TestHandleMessage(t *testing.T) {
	sink := &recordingSink{}
	msgs := []string{
		`{"type":"down","x":10,"y":20}`,
		`{"type":"move","x":500,"y":20}`,
		`{"type":"move","x":12,"y":22}`,
		`{"type":"up"}`,
	}
	for _, m := range msgs {
		if err := HandleMessage(sink, "test", 320, 480, []byte(m)); err != nil {
			t.Fatalf("HandleMessage(%s) error = %v", m, err)
		}
	}
	if len(sink.events) != 3 || sink.events[2] != "up" {
		t.Errorf("events = %v", sink.events)
	}
	if err := HandleMessage(sink, "test", 320, 480, []byte(`{"type":"wave"}`)); err == nil {
		t.Error("HandleMessage() accepted an unknown type")
	}
}
