package server

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/muurk/touchgui/internal/display"
	"github.com/muurk/touchgui/internal/logging"
	"github.com/muurk/touchgui/internal/protocol"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512

	// sendBuffer is the number of frames queued per client before it is
	// considered too slow and dropped.
	sendBuffer = 4096
	// maxBatchSize caps the bytes coalesced into one websocket message.
	maxBatchSize = 256 * 1024
)

var errHubClosed = errors.New("server is shutting down")

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 16 * 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // panels are reached by LAN address or mDNS name
	},
}

// client is one connected browser. It forwards touches to the server sink
// and remembers whether it holds a press, so a dropped connection never
// leaves the panel touched.
type client struct {
	id          string
	remoteAddr  string
	connectedAt time.Time
	conn        *websocket.Conn
	sink        protocol.TouchSink

	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once

	pressed bool // read loop only
}

func newClient(conn *websocket.Conn, remoteAddr string, sink protocol.TouchSink) *client {
	return &client{
		id:          uuid.NewString(),
		remoteAddr:  remoteAddr,
		connectedAt: time.Now(),
		conn:        conn,
		sink:        sink,
		send:        make(chan []byte, sendBuffer),
		done:        make(chan struct{}),
	}
}

func (c *client) Press(x, y int) {
	c.pressed = true
	c.sink.Press(x, y)
}

func (c *client) Release() {
	c.pressed = false
	c.sink.Release()
}

func (c *client) close() {
	c.closeOnce.Do(func() { close(c.done) })
}

// enqueue queues a frame without blocking. It reports false when the
// client is not keeping up.
func (c *client) enqueue(frame []byte) bool {
	select {
	case c.send <- frame:
		return true
	default:
		return false
	}
}

// writePump writes queued frames, coalescing whatever is already waiting
// into one binary message terminated by a flush frame.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	flush := protocol.BuildFlush()
	for {
		select {
		case frame := <-c.send:
			batch := append([]byte(nil), frame...)
		drain:
			for len(batch) < maxBatchSize {
				select {
				case more := <-c.send:
					batch = append(batch, more...)
				default:
					break drain
				}
			}
			batch = append(batch, flush...)

			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.BinaryMessage, batch); err != nil {
				logging.Debug("Write to panel client failed",
					zap.String("client_id", c.id),
					zap.Error(err),
				)
				return
			}
			logging.LogWebSocketMessage(c.remoteAddr, "sent", websocket.BinaryMessage, batch)

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "panel closed")
			_ = c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
			return
		}
	}
}

// readPump feeds touch messages to the sink until the connection fails.
func (c *client) readPump(width, height int) {
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	defer func() {
		if c.pressed {
			logging.Debug("Releasing touch held by departing client", zap.String("client_id", c.id))
			c.Release()
		}
	}()

	for {
		msgType, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				logging.Warn("Panel client read error",
					zap.String("client_id", c.id),
					zap.Error(err),
				)
			}
			return
		}
		logging.LogWebSocketMessage(c.remoteAddr, "received", msgType, data)

		if msgType != websocket.TextMessage {
			logging.Warn("Ignoring non-text message from panel client",
				zap.String("client_id", c.id),
				zap.Int("length", len(data)),
			)
			continue
		}
		_ = protocol.HandleMessage(c, c.remoteAddr, width, height, data)
	}
}

// hub tracks clients and fans framebuffer operations out to them.
type hub struct {
	fb   *display.Framebuffer
	name string

	mu      sync.Mutex
	clients map[string]*client
	closed  bool
	wg      sync.WaitGroup
}

func newHub(fb *display.Framebuffer, name string) *hub {
	return &hub{
		fb:      fb,
		name:    name,
		clients: make(map[string]*client),
	}
}

// register queues the hello and a full replay of the current frame, then
// adds c to the broadcast set. Both happen under mu so no operation falls
// between the replay and the first broadcast.
func (h *hub) register(c *client) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return errHubClosed
	}

	hello, err := protocol.BuildHello(h.fb.Width(), h.fb.Height(), h.name)
	if err != nil {
		return err
	}
	frames, err := protocol.Snapshot(h.fb.Image())
	if err != nil {
		return fmt.Errorf("failed to snapshot framebuffer: %w", err)
	}
	for _, frame := range append([][]byte{hello}, frames...) {
		if !c.enqueue(frame) {
			return fmt.Errorf("replay of %d frames exceeds the client queue", len(frames)+1)
		}
	}

	h.clients[c.id] = c
	// one for the write pump, one for the caller's read loop
	h.wg.Add(2)
	go func() {
		defer h.wg.Done()
		c.writePump()
	}()

	logging.LogConnection(c.remoteAddr, "client_registered")
	logging.Info("Panel client connected",
		zap.String("client_id", c.id),
		zap.Int("replay_frames", len(frames)),
		zap.Int("clients", len(h.clients)),
	)
	return nil
}

func (h *hub) unregister(c *client) {
	h.mu.Lock()
	delete(h.clients, c.id)
	remaining := len(h.clients)
	h.mu.Unlock()

	c.close()
	logging.LogConnection(c.remoteAddr, "client_closed")
	logging.Info("Panel client disconnected",
		zap.String("client_id", c.id),
		zap.Int("clients", remaining),
	)
}

// broadcastOp is the framebuffer observer.
func (h *hub) broadcastOp(op display.Op) {
	frame, err := protocol.FromDisplayOp(op)
	if err != nil {
		logging.Debug("Skipping drawing operation", zap.String("op", op.String()), zap.Error(err))
		return
	}
	h.broadcast(frame)
}

// broadcast queues frame for every client, dropping clients whose queue
// is full.
func (h *hub) broadcast(frame []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, c := range h.clients {
		if c.enqueue(frame) {
			continue
		}
		logging.Warn("Dropping slow panel client", zap.String("client_id", id))
		delete(h.clients, id)
		c.close()
	}
}

func (h *hub) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// snapshot lists the connected clients for the status page.
func (h *hub) snapshot() []clientStatus {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]clientStatus, 0, len(h.clients))
	for _, c := range h.clients {
		out = append(out, clientStatus{
			ID:          c.id,
			RemoteAddr:  c.remoteAddr,
			ConnectedAt: c.connectedAt,
		})
	}
	return out
}

// closeAll closes every client and refuses new ones.
func (h *hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for id, c := range h.clients {
		logging.Info("Closing active connection", zap.String("client_id", id), zap.String("remote_addr", c.remoteAddr))
		c.close()
		delete(h.clients, id)
	}
}

func (h *hub) wait() { h.wg.Wait() }

// handleWebSocket upgrades the request and serves one panel client.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn("WebSocket upgrade failed",
			zap.String("remote_addr", r.RemoteAddr),
			zap.Error(err),
		)
		return
	}
	logging.LogConnection(r.RemoteAddr, "connection_accepted")

	c := newClient(conn, r.RemoteAddr, s.sink)
	if err := s.hub.register(c); err != nil {
		logging.Error("Failed to register panel client",
			zap.String("remote_addr", r.RemoteAddr),
			zap.Error(err),
		)
		_ = conn.Close()
		return
	}

	defer s.hub.wg.Done()
	c.readPump(s.fb.Width(), s.fb.Height())
	s.hub.unregister(c)
}
