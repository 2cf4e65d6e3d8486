package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/muurk/touchgui/internal/display"
	"github.com/muurk/touchgui/internal/logging"
	"github.com/muurk/touchgui/internal/protocol"
	"go.uber.org/zap"
)

// shutdownTimeout bounds how long Shutdown waits for connections to drain
// when the caller's context has no deadline.
const shutdownTimeout = 10 * time.Second

// Config holds the server configuration
type Config struct {
	Host     string
	Port     int
	Name     string // panel name sent in the hello frame
	CertPath string // optional; serve TLS when set together with KeyPath
	KeyPath  string
}

// Server mirrors a framebuffer to browser clients and forwards their
// touches to a sink.
type Server struct {
	config     *Config
	fb         *display.Framebuffer
	sink       protocol.TouchSink
	hub        *hub
	httpServer *http.Server
	tlsConfig  *tls.Config

	mu       sync.Mutex
	listener net.Listener
	wg       sync.WaitGroup
}

// New creates a server for fb and starts mirroring its drawing to
// clients. Touches from every client go to sink.
func New(config *Config, fb *display.Framebuffer, sink protocol.TouchSink) (*Server, error) {
	if config == nil {
		return nil, errors.New("server config is required")
	}
	if fb == nil {
		return nil, errors.New("framebuffer is required")
	}
	if sink == nil {
		return nil, errors.New("touch sink is required")
	}

	var tlsConfig *tls.Config
	if config.CertPath != "" || config.KeyPath != "" {
		var err error
		tlsConfig, err = NewTLSConfig(config.CertPath, config.KeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create TLS config: %w", err)
		}
	}

	s := &Server{
		config:    config,
		fb:        fb,
		sink:      sink,
		tlsConfig: tlsConfig,
	}
	s.hub = newHub(fb, config.Name)
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	fb.Observe(s.hub.broadcastOp)
	return s, nil
}

// Handler returns the HTTP routes: the panel page, its websocket and a
// JSON status document.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/status", s.handleStatus)
	return mux
}

// Listen opens the listening socket. Start calls it when needed; calling
// it first lets the caller learn the bound address when Port is 0.
func (s *Server) Listen() (net.Addr, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr(), nil
	}

	addr := net.JoinHostPort(s.config.Host, fmt.Sprintf("%d", s.config.Port))
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	if s.tlsConfig != nil {
		listener = tls.NewListener(listener, s.tlsConfig)
	}
	s.listener = listener

	logging.Info("Server listening for connections",
		zap.String("addr", listener.Addr().String()),
		zap.Bool("tls", s.tlsConfig != nil),
	)
	return listener.Addr(), nil
}

// Start serves until ctx is done, a shutdown signal arrives or the
// listener fails. It then shuts the server down.
func (s *Server) Start(ctx context.Context) error {
	if _, err := s.Listen(); err != nil {
		return err
	}

	logging.Info("Starting touchgui panel server",
		zap.String("name", s.config.Name),
		zap.Int("width", s.fb.Width()),
		zap.Int("height", s.fb.Height()),
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	errChan := make(chan error, 1)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		err := s.httpServer.Serve(s.listener)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		errChan <- err
	}()

	select {
	case <-sigChan:
		logging.Info("Shutdown signal received, stopping server...")
		return s.Shutdown(context.Background())
	case <-ctx.Done():
		logging.Info("Context cancelled, stopping server...")
		return s.Shutdown(context.Background())
	case err := <-errChan:
		s.fb.Observe(nil)
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	}
}

// Shutdown stops observing the framebuffer, closes every client and waits
// for the HTTP server to drain.
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down server...")

	s.fb.Observe(nil)
	s.hub.closeAll()

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, shutdownTimeout)
		defer cancel()
	}

	if err := s.httpServer.Shutdown(ctx); err != nil {
		logging.Warn("Shutdown timeout, some connections may not have closed cleanly", zap.Error(err))
		return fmt.Errorf("shutdown timeout: %w", err)
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		s.hub.wait()
		close(done)
	}()

	select {
	case <-done:
		logging.Info("All connections closed gracefully")
		return nil
	case <-ctx.Done():
		logging.Warn("Shutdown timeout, some connections may not have closed cleanly")
		return fmt.Errorf("shutdown timeout: %w", ctx.Err())
	}
}

// GetActiveConnections returns the number of connected panel clients
func (s *Server) GetActiveConnections() int {
	return s.hub.count()
}
