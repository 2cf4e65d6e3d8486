package server

import (
	_ "embed"
	"encoding/json"
	"net/http"
	"time"

	"github.com/muurk/touchgui/internal/logging"
	"go.uber.org/zap"
)

//go:embed index.html
var indexHTML []byte

type clientStatus struct {
	ID          string    `json:"id"`
	RemoteAddr  string    `json:"remote_addr"`
	ConnectedAt time.Time `json:"connected_at"`
}

// Status is the document served at /status.
type Status struct {
	Name    string         `json:"name"`
	Width   int            `json:"width"`
	Height  int            `json:"height"`
	Clients []clientStatus `json:"clients"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(indexHTML)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	status := Status{
		Name:    s.config.Name,
		Width:   s.fb.Width(),
		Height:  s.fb.Height(),
		Clients: s.hub.snapshot(),
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(status); err != nil {
		logging.Warn("Failed to write status", zap.Error(err))
	}
}
