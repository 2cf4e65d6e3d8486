// Package config provides user configuration management for touchgui.
//
// This package manages a YAML-based configuration file that stores the
// panel geometry, touch debounce interval, persistent store location,
// remote panel settings and the remote panels seen on the network. The
// configuration follows OS-specific conventions for storage location.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/touchgui/config.yaml or $HOME/.config/touchgui/config.yaml
//   - macOS: $HOME/.config/touchgui/config.yaml
//   - Windows: %LOCALAPPDATA%\touchgui\config.yaml
//
// # Usage Example
//
//	registry, err := config.LoadRegistry()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	registry.Store.Kind = "sqlite"
//	registry.UpdatePanelLastSeen("kitchen", "192.168.1.40", 8080)
//
//	// Save changes atomically
//	if err := registry.Save(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Thread Safety
//
// The global registry uses sync.Once for safe initialization across goroutines.
// File operations are protected by a mutex to ensure atomic writes.
package config
