// Package logging provides structured logging for touchgui.
//
// This package wraps a zap logger with convenience functions for common logging
// patterns used throughout the engine, the stores and the remote panel.
//
// # Log Levels
//
//   - Debug: touch edges, widget transitions, store writes, websocket traffic
//   - Info: edit session outcomes, panel connections, startup
//   - Warn: failed store writes, dropped clients
//   - Error: startup failures
//
// # Configuration
//
// Logging is silent unless a level is given:
//
//	if err := logging.Initialize("debug"); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// The TOUCHGUI_LOG_LEVEL environment variable is consulted when the level is
// empty. Output goes to stderr so it never mixes with the terminal simulator.
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. SetLogger is not, and is
// meant for test setup.
package logging
