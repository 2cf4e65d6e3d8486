package discovery

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/grandcat/zeroconf"
	"github.com/muurk/touchgui/internal/logging"
	"go.uber.org/zap"
)

const (
	// ServiceType is the mDNS service type touchgui panels advertise
	ServiceType = "_touchgui._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// DefaultScanTimeout is the default timeout for panel discovery
	DefaultScanTimeout = 5 * time.Second

	// DefaultPort is assumed when an entry carries no port
	DefaultPort = 8080
)

// Advertisement is a running mDNS registration.
type Advertisement struct {
	server *zeroconf.Server
	once   sync.Once
}

// Advertise registers the panel as name on port until ctx is done or
// Shutdown is called. txt holds extra "key=value" records.
func Advertise(ctx context.Context, name string, port int, txt ...string) (*Advertisement, error) {
	if name == "" {
		return nil, fmt.Errorf("panel name is required")
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("invalid port %d", port)
	}

	records := append([]string{KeyPath + "=/"}, txt...)
	server, err := zeroconf.Register(name, ServiceType, ServiceDomain, port, records, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to register mDNS service: %w", err)
	}
	logging.Info("Advertising panel over mDNS",
		zap.String("name", name),
		zap.String("service", ServiceType),
		zap.Int("port", port),
		zap.Strings("txt", records),
	)

	a := &Advertisement{server: server}
	go func() {
		<-ctx.Done()
		a.Shutdown()
	}()
	return a, nil
}

// Shutdown withdraws the registration. It is safe to call more than once.
func (a *Advertisement) Shutdown() {
	a.once.Do(func() {
		a.server.Shutdown()
		logging.Debug("mDNS advertisement withdrawn")
	})
}

// Scanner handles mDNS panel discovery
type Scanner struct {
	// Timeout is the maximum time to wait for panel discovery
	Timeout time.Duration
}

// NewScanner creates a new mDNS scanner with default settings
func NewScanner() *Scanner {
	return &Scanner{
		Timeout: DefaultScanTimeout,
	}
}

// ScanForPanels discovers all panels on the local network
func (s *Scanner) ScanForPanels() ([]*Panel, error) {
	return s.ScanForPanelsWithContext(context.Background())
}

// ScanForPanelsWithContext discovers panels until the scanner timeout or
// ctx ends. Panels seen more than once are reported once.
func (s *Scanner) ScanForPanelsWithContext(ctx context.Context) ([]*Panel, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	var (
		mu     sync.Mutex
		panels []*Panel
		seen   = make(map[string]bool)
	)
	err := s.browse(ctx, func(p *Panel) bool {
		mu.Lock()
		defer mu.Unlock()
		if !seen[p.Name] {
			seen[p.Name] = true
			panels = append(panels, p)
		}
		return true
	})
	if err != nil {
		return nil, err
	}

	mu.Lock()
	defer mu.Unlock()
	return panels, nil
}

// WaitForPanelWithContext waits for the panel advertised as name
func (s *Scanner) WaitForPanelWithContext(ctx context.Context, name string) (*Panel, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	found := make(chan *Panel, 1)
	err := s.browse(ctx, func(p *Panel) bool {
		if p.Name != name {
			return true
		}
		select {
		case found <- p:
		default:
		}
		cancel()
		return false
	})
	if err != nil {
		return nil, err
	}

	select {
	case p := <-found:
		return p, nil
	default:
		return nil, fmt.Errorf("panel %q not found within %s", name, s.Timeout)
	}
}

// browse runs the resolver until ctx ends, passing every parsed entry to
// fn until it returns false.
func (s *Scanner) browse(ctx context.Context, fn func(*Panel) bool) error {
	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	entries := make(chan *zeroconf.ServiceEntry)
	done := make(chan struct{})
	go func() {
		defer close(done)
		wanted := true
		for {
			select {
			case entry := <-entries:
				if !wanted {
					continue
				}
				if p := parseServiceEntry(entry); p != nil {
					logging.Debug("Panel discovered", zap.String("panel", p.String()))
					wanted = fn(p)
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	<-ctx.Done()
	<-done
	return nil
}

// parseServiceEntry converts a zeroconf service entry to a Panel.
// Returns nil for entries without an instance name or address.
func parseServiceEntry(entry *zeroconf.ServiceEntry) *Panel {
	if entry == nil || entry.Instance == "" {
		return nil
	}

	var ip string
	if len(entry.AddrIPv4) > 0 {
		ip = entry.AddrIPv4[0].String()
	} else if len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}
	if ip == "" {
		return nil
	}

	port := entry.Port
	if port == 0 {
		port = DefaultPort
	}

	return &Panel{
		Name:         unescapeInstance(entry.Instance),
		Hostname:     entry.HostName,
		IP:           ip,
		Port:         port,
		Metadata:     parseTXT(entry.Text),
		DiscoveredAt: time.Now(),
	}
}

// parseTXT splits "key=value" records; a bare key maps to "".
func parseTXT(records []string) map[string]string {
	metadata := make(map[string]string, len(records))
	for _, txt := range records {
		key, value, _ := strings.Cut(txt, "=")
		if key == "" {
			continue
		}
		metadata[key] = value
	}
	return metadata
}

// unescapeInstance undoes DNS label escaping of spaces and dots.
func unescapeInstance(s string) string {
	return strings.NewReplacer(`\ `, " ", `\.`, ".", `\\`, `\`).Replace(s)
}

// ScanForPanels is a convenience function to scan with a custom timeout
func ScanForPanels(timeout time.Duration) ([]*Panel, error) {
	scanner := NewScanner()
	scanner.Timeout = timeout
	return scanner.ScanForPanels()
}

// FindPanel searches for a panel by name with the default timeout
func FindPanel(ctx context.Context, name string) (*Panel, error) {
	return NewScanner().WaitForPanelWithContext(ctx, name)
}
