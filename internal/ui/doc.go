// Package ui provides terminal UI components for the touchgui CLI.
//
// This package uses Bubble Tea and Lipgloss for two kinds of output:
//
//   - Interactive programs: the panel simulator, which draws the
//     framebuffer with half-block characters and turns mouse presses into
//     touches, and the scan picker for mDNS-discovered panels
//   - Run once output: command headers and success, warning and failure
//     boxes written through a Printer
//
// # Simulator
//
// Each terminal cell shows two vertically stacked pixels: the upper one as
// the foreground of "▀" and the lower one as its background. Large panels
// are downsampled by the smallest integer step that fits the terminal; a
// click maps back to the pixel at the center of its cell.
//
//	err := ui.RunSimulator(ctx, ui.SimulatorConfig{
//	    Title:   "demo",
//	    Display: fb,
//	    Touch:   queue,
//	    Run:     eng.Run,
//	})
//
// # Logging Integration
//
// This package expects logging to be controlled via the TOUCHGUI_LOG_LEVEL
// environment variable. When unset or empty, zap logging is silent, so log
// lines never corrupt the simulator's alternate screen.
package ui
