// Touchgui runs touchscreen widget screens described in YAML.
//
// It draws a screen of labels, buttons, toggles and numeric fields, runs the
// touch loop, opens the numeric keypad editor when a field is tapped and
// persists edited values. The panel can be operated in a terminal, from a
// browser over the network, or headless from a touch script.
//
// Usage:
//
//	touchgui [command] [flags]
//
// See 'touchgui --help' for available commands.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/touchgui/internal/config"
	"github.com/muurk/touchgui/internal/logging"
	"github.com/muurk/touchgui/internal/version"
)

func main() {
	err := rootCmd.Execute()
	logging.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Global flags
var (
	configPath string
	logLevel   string
	screenPath string
	storeKind  string
	storePath  string
)

// registry is the loaded configuration with flag overrides applied.
var registry *config.Registry

var rootCmd = &cobra.Command{
	Use:   "touchgui",
	Short: "Touchscreen widget engine",
	Long: `Run touchscreen widget screens described in YAML.

A screen holds labels, push buttons, on/off toggles and numeric fields.
Tapping a numeric field opens a full-screen keypad editor; confirmed values
are written to a persistent store and restored on the next start.

The same screen can be driven from a terminal (simulate), from a browser
over the network (serve) or headless from a touch script (render).`,
	Version:           version.Version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	Example: `  # Try the built-in demo screen in the terminal
  touchgui simulate

  # Serve your own screen to phones on the LAN
  touchgui serve --screen oven.yaml

  # Check a screen file
  touchgui validate oven.yaml`,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default is the user config directory)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error, silent); overrides "+logging.LogLevelEnvVar)
	rootCmd.PersistentFlags().StringVar(&screenPath, "screen", "", "Screen file (default is the built-in demo)")
	rootCmd.PersistentFlags().StringVar(&storeKind, "store", "", "Value store kind (memory, eeprom, sqlite)")
	rootCmd.PersistentFlags().StringVar(&storePath, "store-path", "", "Value store file")

	rootCmd.AddCommand(versionCmd)
}

// setup loads the configuration, applies flag overrides and starts logging.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	if configPath != "" {
		registry, err = config.LoadRegistryFrom(configPath)
	} else {
		registry, err = config.LoadRegistry()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if screenPath != "" {
		registry.Screen = screenPath
	}
	if storeKind != "" {
		registry.Store.Kind = storeKind
	}
	if storePath != "" {
		registry.Store.Path = storePath
	}

	// flag, then environment, then config file
	level := logLevel
	if level == "" && os.Getenv(logging.LogLevelEnvVar) == "" {
		level = registry.LogLevel
	}
	if err := logging.Initialize(level); err != nil {
		return err
	}

	if problems := registry.Validate(); len(problems) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(problems...))
	}
	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "touchgui %s\n", version.Full())
	},
}
