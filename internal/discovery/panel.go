package discovery

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// TXT record keys advertised by touchgui panels
const (
	KeyScreen  = "screen"
	KeySize    = "size"
	KeyVersion = "version"
	KeyPath    = "path"
)

// Panel represents a discovered touchgui panel on the network
type Panel struct {
	// Name is the mDNS instance name (e.g., "kitchen")
	Name string

	// Hostname is the mDNS hostname (e.g., "kitchen-pi.local.")
	Hostname string

	// IP is the address to connect to, IPv4 when available
	IP string

	// Port is the panel HTTP port
	Port int

	// Metadata contains the TXT record data
	// Common fields: "screen=demo", "size=320x480", "version=1.2.0"
	Metadata map[string]string

	// DiscoveredAt is when the panel was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the panel
func (p *Panel) String() string {
	return fmt.Sprintf("touchgui panel %s (%s) at %s", p.Name, p.Hostname, net.JoinHostPort(p.IP, strconv.Itoa(p.Port)))
}

// URL returns the address of the panel page
func (p *Panel) URL() string {
	path := p.GetMetadata(KeyPath)
	if path == "" {
		path = "/"
	}
	return "http://" + net.JoinHostPort(p.IP, strconv.Itoa(p.Port)) + path
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (p *Panel) GetMetadata(key string) string {
	if p.Metadata == nil {
		return ""
	}
	return p.Metadata[key]
}

// Screen returns the advertised screen name.
func (p *Panel) Screen() string { return p.GetMetadata(KeyScreen) }

// Size parses the advertised "WxH" panel size.
func (p *Panel) Size() (width, height int, ok bool) {
	w, h, found := strings.Cut(p.GetMetadata(KeySize), "x")
	if !found {
		return 0, 0, false
	}
	width, errW := strconv.Atoi(w)
	height, errH := strconv.Atoi(h)
	if errW != nil || errH != nil || width <= 0 || height <= 0 {
		return 0, 0, false
	}
	return width, height, true
}
