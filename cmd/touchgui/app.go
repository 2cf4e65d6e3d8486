package main

import (
	"fmt"
	"net"
	"strings"

	"github.com/muurk/touchgui/internal/display"
	"github.com/muurk/touchgui/internal/logging"
	"github.com/muurk/touchgui/internal/numedit"
	"github.com/muurk/touchgui/internal/persist"
	"github.com/muurk/touchgui/internal/screen"
	"github.com/muurk/touchgui/internal/store"
	"github.com/muurk/touchgui/internal/touch"
	"go.uber.org/zap"
)

// panel is a built screen with the resources it holds open.
type panel struct {
	file   *screen.File
	fb     *display.Framebuffer
	store  store.Store
	screen *screen.Screen
}

func (p *panel) Close() error {
	if p.store == nil {
		return nil
	}
	return p.store.Close()
}

// loadScreenFile reads the configured screen, or the built-in demo.
func loadScreenFile(path string) (*screen.File, error) {
	if path == "" {
		return screen.Default(), nil
	}
	return screen.Load(path)
}

// openStore opens the configured value store.
func openStore() (store.Store, error) {
	path, err := registry.StorePath()
	if err != nil {
		return nil, err
	}
	st, err := store.Open(registry.Store.Kind, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", registry.Store.Kind, err)
	}
	logging.Debug("Value store opened",
		zap.String("kind", registry.Store.Kind),
		zap.String("path", path),
	)
	return st, nil
}

// panelSize is the screen file's display size, falling back to the
// configured panel size.
func panelSize(f *screen.File) (int, int) {
	w, h := f.Display.Width, f.Display.Height
	if w <= 0 || h <= 0 {
		w, h = registry.Display.Width, registry.Display.Height
	}
	return w, h
}

// openPanel loads the screen, opens the store and builds the widgets on a
// fresh framebuffer. clock may be nil for wall-clock debouncing.
func openPanel(sensor touch.Sensor, clock touch.Clock) (*panel, error) {
	file, err := loadScreenFile(registry.Screen)
	if err != nil {
		return nil, err
	}

	st, err := openStore()
	if err != nil {
		return nil, err
	}

	w, h := panelSize(file)
	fb := display.NewFramebuffer(w, h)
	env := numedit.Env{
		Display:  fb,
		Sensor:   sensor,
		Debounce: touch.NewDebouncer(registry.Debounce(), clock),
		Bridge:   persist.NewBridge(st),
	}

	scr, err := screen.NewBuilder(file, env).Build()
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	return &panel{file: file, fb: fb, store: st, screen: scr}, nil
}

// lanAddress returns the first non-loopback IPv4 address, used to print a
// reachable URL when the server listens on all interfaces.
func lanAddress() string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return ""
	}
	for _, a := range addrs {
		ipnet, ok := a.(*net.IPNet)
		if !ok || ipnet.IP.IsLoopback() {
			continue
		}
		if ip4 := ipnet.IP.To4(); ip4 != nil {
			return ip4.String()
		}
	}
	return ""
}

// panelURL builds the address users should open for a server bound to
// host:port.
func panelURL(host string, port int, tls bool) string {
	if host == "" || host == "0.0.0.0" || host == "::" {
		if lan := lanAddress(); lan != "" {
			host = lan
		} else {
			host = "localhost"
		}
	}
	scheme := "http"
	if tls {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/", scheme, net.JoinHostPort(strings.Trim(host, "[]"), fmt.Sprint(port)))
}
