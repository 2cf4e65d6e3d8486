package discovery

import (
	"testing"
)

func TestPanel_String(t *testing.T) {
	panel := &Panel{
		Name:     "kitchen",
		Hostname: "kitchen-pi.local.",
		IP:       "192.168.4.16",
		Port:     8080,
	}

	expected := "touchgui panel kitchen (kitchen-pi.local.) at 192.168.4.16:8080"
	if panel.String() != expected {
		t.Errorf("Panel.String() = %v, want %v", panel.String(), expected)
	}
}

func TestPanel_URL(t *testing.T) {
	tests := []struct {
		name     string
		panel    *Panel
		expected string
	}{
		{
			name:     "IPv4",
			panel:    &Panel{IP: "192.168.4.16", Port: 8080},
			expected: "http://192.168.4.16:8080/",
		},
		{
			name:     "IPv6 is bracketed",
			panel:    &Panel{IP: "fe80::1", Port: 80},
			expected: "http://[fe80::1]:80/",
		},
		{
			name:     "advertised path",
			panel:    &Panel{IP: "10.0.0.5", Port: 9000, Metadata: map[string]string{"path": "/panel"}},
			expected: "http://10.0.0.5:9000/panel",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.panel.URL(); got != tt.expected {
				t.Errorf("Panel.URL() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestPanel_GetMetadata(t *testing.T) {
	panel := &Panel{Metadata: map[string]string{"screen": "demo"}}
	if got := panel.GetMetadata("screen"); got != "demo" {
		t.Errorf("GetMetadata(screen) = %q", got)
	}
	if got := panel.Screen(); got != "demo" {
		t.Errorf("Screen() = %q", got)
	}
	if got := panel.GetMetadata("missing"); got != "" {
		t.Errorf("GetMetadata(missing) = %q, want empty", got)
	}

	var empty Panel
	if got := empty.GetMetadata("screen"); got != "" {
		t.Errorf("GetMetadata on nil metadata = %q", got)
	}
}

func TestPanel_Size(t *testing.T) {
	tests := []struct {
		size   string
		w, h   int
		wantOK bool
	}{
		{"320x480", 320, 480, true},
		{"480x320", 480, 320, true},
		{"", 0, 0, false},
		{"320", 0, 0, false},
		{"0x480", 0, 0, false},
		{"axb", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.size, func(t *testing.T) {
			panel := &Panel{Metadata: map[string]string{KeySize: tt.size}}
			w, h, ok := panel.Size()
			if ok != tt.wantOK || w != tt.w || h != tt.h {
				t.Errorf("Size() = %d, %d, %v, want %d, %d, %v", w, h, ok, tt.w, tt.h, tt.wantOK)
			}
		})
	}
}
