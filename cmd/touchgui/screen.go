package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/muurk/touchgui/internal/screen"
	"github.com/muurk/touchgui/internal/ui"
)

var (
	validateFormat string
	initForce      bool
)

func init() {
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(initCmd)

	validateCmd.Flags().StringVar(&validateFormat, "format", "compact", "Widget listing format (compact, detailed, none)")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing file")
}

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a screen file",
	Long: `Check a screen file for errors without running it.

Geometry, colors, numeric field shapes, store addresses, OK/Cancel
references and actions are all checked. Overlapping widgets are reported
as warnings. Without a file argument the configured screen is checked.`,
	Example: `  touchgui validate oven.yaml
  touchgui validate oven.yaml --format detailed`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := registry.Screen
	if len(args) == 1 {
		path = args[0]
	}

	printer := ui.NewPrinter(cmd.OutOrStdout())
	f, err := loadScreenFile(path)
	if err != nil {
		printer.PrintError("Screen could not be loaded", err, []string{
			"Check the file path",
			"Unknown keys are rejected; check spelling against 'touchgui init'",
		})
		return err
	}

	problems := append(screen.Validate(f), screen.ValidateActions(f, screen.DefaultActions())...)
	warnings, critical := screen.SeparateWarningsAndErrors(problems)

	if path == "" {
		path = "(built-in demo)"
	}
	details := map[string]string{
		"File":    path,
		"Screen":  f.Name,
		"Widgets": f.Summary(),
		"Display": f.FormatDisplay(),
	}

	switch validateFormat {
	case "detailed":
		printer.PrintBlock("Widgets", f.FormatDetailed())
	case "compact":
		printer.PrintBlock("Widgets", f.FormatCompact())
	case "none":
	default:
		return fmt.Errorf("unknown format %q (use compact, detailed or none)", validateFormat)
	}

	if len(critical) > 0 {
		err := errors.New(screen.FormatValidationErrors(critical))
		printer.PrintError("Screen is invalid", err, messages(warnings))
		return fmt.Errorf("%d validation error(s)", len(critical))
	}
	if len(warnings) > 0 {
		details["Warnings"] = strconv.Itoa(len(warnings))
		printer.PrintWarning("Screen is valid with warnings", details, messages(warnings))
		return nil
	}
	printer.PrintSuccess("Screen is valid", details)
	return nil
}

func messages(errs []error) []string {
	out := make([]string, 0, len(errs))
	for _, err := range errs {
		out = append(out, err.Error())
	}
	return out
}

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the built-in demo screen as a starting point",
	Long: `Write the built-in demo screen to a file so it can be edited.

The demo has a label, a push button, an on/off toggle and two numeric
fields with their keypad OK/Cancel buttons.`,
	Example: `  touchgui init oven.yaml
  touchgui validate oven.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	path := "screen.yaml"
	if len(args) == 1 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	data, err := screen.Default().Marshal()
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write screen file: %w", err)
	}

	ui.NewPrinter(cmd.OutOrStdout()).PrintSuccess("Screen file written", map[string]string{
		"File": path,
		"Next": "touchgui simulate --screen " + path,
	})
	return nil
}
