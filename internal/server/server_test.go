package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/muurk/touchgui/internal/display"
	"github.com/muurk/touchgui/internal/protocol"
)

type sinkEvent struct {
	down bool
	x, y int
}

type fakeSink struct {
	events chan sinkEvent
}

func newFakeSink() *fakeSink { return &fakeSink{events: make(chan sinkEvent, 16)} }

func (f *fakeSink) Press(x, y int) { f.events <- sinkEvent{down: true, x: x, y: y} }
func (f *fakeSink) Release()       { f.events <- sinkEvent{} }

func (f *fakeSink) next(t *testing.T) sinkEvent {
	t.Helper()
	select {
	case ev := <-f.events:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("no touch reached the sink")
		return sinkEvent{}
	}
}

func newTestServer(t *testing.T, fb *display.Framebuffer, sink protocol.TouchSink) (*Server, *httptest.Server) {
	t.Helper()
	srv, err := New(&Config{Name: "bench"}, fb, sink)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		_ = srv.Shutdown(context.Background())
		ts.Close()
	})
	return srv, ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readFrames(t *testing.T, conn *websocket.Conn) []protocol.Message {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	msgType, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage() error = %v", err)
	}
	if msgType != websocket.BinaryMessage {
		t.Fatalf("message type = %d, want binary", msgType)
	}
	frames, err := protocol.SplitFrames(data)
	if err != nil {
		t.Fatalf("SplitFrames() error = %v", err)
	}
	msgs := make([]protocol.Message, 0, len(frames))
	for _, f := range frames {
		m, err := f.ParseMessage()
		if err != nil {
			t.Fatalf("ParseMessage(%s) error = %v", f, err)
		}
		msgs = append(msgs, m)
	}
	return msgs
}

func waitForClients(t *testing.T, srv *Server, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for srv.GetActiveConnections() != want {
		if time.Now().After(deadline) {
			t.Fatalf("GetActiveConnections() = %d, want %d", srv.GetActiveConnections(), want)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestNewRequiresDependencies(t *testing.T) {
	fb := display.NewFramebuffer(10, 10)
	if _, err := New(nil, fb, newFakeSink()); err == nil {
		t.Error("New() accepted a nil config")
	}
	if _, err := New(&Config{}, nil, newFakeSink()); err == nil {
		t.Error("New() accepted a nil framebuffer")
	}
	if _, err := New(&Config{}, fb, nil); err == nil {
		t.Error("New() accepted a nil sink")
	}
	if _, err := New(&Config{CertPath: "missing.pem"}, fb, newFakeSink()); err == nil {
		t.Error("New() accepted a certificate without a key")
	}
}

func TestIndexAndStatus(t *testing.T) {
	_, ts := newTestServer(t, display.NewFramebuffer(40, 30), newFakeSink())

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET / error = %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET / status = %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), "<canvas") {
		t.Error("index page has no canvas")
	}

	resp, err = http.Get(ts.URL + "/favicon.ico")
	if err != nil {
		t.Fatalf("GET /favicon.ico error = %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("GET /favicon.ico status = %d, want 404", resp.StatusCode)
	}

	resp, err = http.Get(ts.URL + "/status")
	if err != nil {
		t.Fatalf("GET /status error = %v", err)
	}
	defer resp.Body.Close()
	var status Status
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if status.Name != "bench" || status.Width != 40 || status.Height != 30 || len(status.Clients) != 0 {
		t.Errorf("status = %+v", status)
	}
}

func TestReplayOnConnect(t *testing.T) {
	fb := display.NewFramebuffer(40, 30)
	fb.FillRect(display.Red, 2, 3, 20, 12)
	fb.DrawChar(22, 14, 'K', display.Yellow, display.Navy, 2, false)

	srv, ts := newTestServer(t, fb, newFakeSink())
	conn := dial(t, ts)

	msgs := readFrames(t, conn)
	if len(msgs) < 3 {
		t.Fatalf("replay has %d frames, want hello, blits and flush", len(msgs))
	}
	hello, ok := msgs[0].(*protocol.Hello)
	if !ok || hello.Width != 40 || hello.Height != 30 || hello.Name != "bench" {
		t.Fatalf("first frame = %s", msgs[0])
	}
	if msgs[len(msgs)-1].Op() != protocol.OpFlush {
		t.Errorf("last frame = %s, want flush", msgs[len(msgs)-1])
	}

	replica := display.NewFramebuffer(40, 30)
	for _, m := range msgs {
		protocol.Apply(replica, m)
	}
	for y := 0; y < 30; y++ {
		for x := 0; x < 40; x++ {
			if got, want := replica.At(x, y), fb.At(x, y); got != want {
				t.Fatalf("replica pixel (%d,%d) = %s, want %s", x, y, got, want)
			}
		}
	}

	waitForClients(t, srv, 1)
}

func TestBroadcastAndTouch(t *testing.T) {
	fb := display.NewFramebuffer(40, 30)
	sink := newFakeSink()
	srv, ts := newTestServer(t, fb, sink)
	conn := dial(t, ts)
	readFrames(t, conn)

	fb.FillRect(display.Blue, 0, 0, 3, 3)
	msgs := readFrames(t, conn)
	fill, ok := msgs[0].(*protocol.FillRect)
	if !ok || fill.Color != display.Blue || fill.X1 != 3 || fill.Y1 != 3 {
		t.Fatalf("broadcast = %v", msgs)
	}
	if msgs[len(msgs)-1].Op() != protocol.OpFlush {
		t.Errorf("broadcast does not end with a flush")
	}

	send := func(s string) {
		t.Helper()
		if err := conn.WriteMessage(websocket.TextMessage, []byte(s)); err != nil {
			t.Fatalf("WriteMessage() error = %v", err)
		}
	}
	send(`{"type":"down","x":100,"y":5}`) // outside the panel
	send(`{"type":"down","x":5,"y":6}`)
	if ev := sink.next(t); ev != (sinkEvent{down: true, x: 5, y: 6}) {
		t.Errorf("first touch = %+v", ev)
	}
	send(`{"type":"move","x":7,"y":8}`)
	if ev := sink.next(t); ev != (sinkEvent{down: true, x: 7, y: 8}) {
		t.Errorf("move = %+v", ev)
	}

	// disconnecting while pressed releases the touch
	_ = conn.Close()
	if ev := sink.next(t); ev.down {
		t.Errorf("after disconnect = %+v, want release", ev)
	}
	waitForClients(t, srv, 0)
}

func TestShutdownClosesClients(t *testing.T) {
	fb := display.NewFramebuffer(16, 16)
	srv, ts := newTestServer(t, fb, newFakeSink())
	conn := dial(t, ts)
	readFrames(t, conn)
	waitForClients(t, srv, 1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn.ReadMessage()
	if !websocket.IsCloseError(err, websocket.CloseGoingAway) {
		t.Errorf("ReadMessage() after shutdown error = %v, want going away", err)
	}
	if n := srv.GetActiveConnections(); n != 0 {
		t.Errorf("GetActiveConnections() = %d after shutdown", n)
	}

	// drawing after shutdown is no longer observed
	fb.FillRect(display.Green, 0, 0, 1, 1)
}

func TestStartStopsOnCancel(t *testing.T) {
	fb := display.NewFramebuffer(16, 16)
	srv, err := New(&Config{Host: "127.0.0.1", Port: 0, Name: "bench"}, fb, newFakeSink())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	addr, err := srv.Listen()
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Start(ctx) }()

	conn, _, err := websocket.DefaultDialer.Dial("ws://"+addr.String()+"/ws", nil)
	if err != nil {
		cancel()
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); err != nil {
		t.Fatalf("ReadMessage() error = %v", err)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Start() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Start() did not return after cancel")
	}
}
