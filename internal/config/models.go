package config

import (
	"fmt"
	"path/filepath"
	"time"
)

// Registry represents the entire user configuration file.
type Registry struct {
	Version  int               `yaml:"version"`
	Display  *DisplayPrefs     `yaml:"display,omitempty"`
	Touch    *TouchPrefs       `yaml:"touch,omitempty"`
	Store    *StorePrefs       `yaml:"store,omitempty"`
	Panel    *PanelPrefs       `yaml:"panel,omitempty"`
	Screen   string            `yaml:"screen,omitempty"`    // Screen file, empty for the built-in demo
	LogLevel string            `yaml:"log_level,omitempty"` // debug, info, warn, error or silent
	Panels   map[string]*Panel `yaml:"panels,omitempty"`    // Remote panels seen on the network, keyed by name
}

// DisplayPrefs is the simulated panel size in pixels.
type DisplayPrefs struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// TouchPrefs configures touch handling.
type TouchPrefs struct {
	DebounceMS int `yaml:"debounce_ms"` // Minimum time between accepted presses
}

// StorePrefs selects the persistent store for edited values.
type StorePrefs struct {
	Kind string `yaml:"kind"`           // memory, eeprom or sqlite
	Path string `yaml:"path,omitempty"` // Backing file; empty puts it in the config directory
}

// PanelPrefs configures the remote panel server.
type PanelPrefs struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	Name      string `yaml:"name"`      // Instance name advertised over mDNS
	Advertise bool   `yaml:"advertise"` // Announce the panel with mDNS
}

// Panel is a remote panel seen by a scan.
type Panel struct {
	LastIP   string    `yaml:"last_ip,omitempty"`
	Port     int       `yaml:"port,omitempty"`
	LastSeen time.Time `yaml:"last_seen,omitempty"`
	Screen   string    `yaml:"screen,omitempty"` // Screen name the panel reported
}

// Defaults
const (
	DefaultWidth      = 320
	DefaultHeight     = 480
	DefaultDebounceMS = 200
	DefaultStoreKind  = "sqlite"
	DefaultPanelHost  = "0.0.0.0"
	DefaultPanelPort  = 8080
	DefaultPanelName  = "touchgui"
	DefaultLogLevel   = "silent"
)

// StoreFileNames maps store kinds to their default file name in the config
// directory.
var StoreFileNames = map[string]string{
	"memory": "",
	"eeprom": "eeprom.bin",
	"sqlite": "store.db",
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	r := &Registry{Version: 1}
	r.applyDefaults()
	return r
}

// applyDefaults fills sections missing from a loaded file.
func (r *Registry) applyDefaults() {
	if r.Display == nil {
		r.Display = &DisplayPrefs{Width: DefaultWidth, Height: DefaultHeight}
	}
	if r.Touch == nil {
		r.Touch = &TouchPrefs{DebounceMS: DefaultDebounceMS}
	}
	if r.Store == nil {
		r.Store = &StorePrefs{Kind: DefaultStoreKind}
	}
	if r.Panel == nil {
		r.Panel = &PanelPrefs{
			Host:      DefaultPanelHost,
			Port:      DefaultPanelPort,
			Name:      DefaultPanelName,
			Advertise: true,
		}
	}
	if r.LogLevel == "" {
		r.LogLevel = DefaultLogLevel
	}
	if r.Panels == nil {
		r.Panels = make(map[string]*Panel)
	}
}

// Debounce returns the touch debounce interval.
func (r *Registry) Debounce() time.Duration {
	return time.Duration(r.Touch.DebounceMS) * time.Millisecond
}

// StorePath returns the store file, defaulting to a file in the
// configuration directory. The memory store has no path.
func (r *Registry) StorePath() (string, error) {
	if r.Store.Path != "" || r.Store.Kind == "memory" {
		return r.Store.Path, nil
	}
	name, ok := StoreFileNames[r.Store.Kind]
	if !ok {
		return "", fmt.Errorf("unknown store kind %q", r.Store.Kind)
	}
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// Validate checks the configuration values.
// Returns a slice of validation errors (empty if valid).
func (r *Registry) Validate() []error {
	var errors []error
	if r.Display.Width <= 0 || r.Display.Height <= 0 {
		errors = append(errors, fmt.Errorf("display size must be positive, got %dx%d", r.Display.Width, r.Display.Height))
	}
	if r.Touch.DebounceMS < 0 {
		errors = append(errors, fmt.Errorf("debounce must not be negative, got %dms", r.Touch.DebounceMS))
	}
	if _, ok := StoreFileNames[r.Store.Kind]; !ok {
		errors = append(errors, fmt.Errorf("store kind must be memory, eeprom or sqlite, got %q", r.Store.Kind))
	}
	if r.Panel.Port <= 0 || r.Panel.Port > 65535 {
		errors = append(errors, fmt.Errorf("panel port must be 1-65535, got %d", r.Panel.Port))
	}
	return errors
}

// GetPanel retrieves a remote panel by name.
// Returns nil if the panel doesn't exist in the registry.
func (r *Registry) GetPanel(name string) *Panel {
	return r.Panels[name]
}

// EnsurePanel ensures a panel entry exists in the registry.
// Returns the panel entry (existing or newly created).
func (r *Registry) EnsurePanel(name string) *Panel {
	if r.Panels == nil {
		r.Panels = make(map[string]*Panel)
	}
	if panel, exists := r.Panels[name]; exists {
		return panel
	}
	panel := &Panel{}
	r.Panels[name] = panel
	return panel
}

// UpdatePanelLastSeen updates the last seen timestamp and address for a panel.
func (r *Registry) UpdatePanelLastSeen(name, ip string, port int) {
	panel := r.EnsurePanel(name)
	panel.LastSeen = time.Now()
	panel.LastIP = ip
	panel.Port = port
}
