package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/muurk/touchgui/internal/config"
	"github.com/muurk/touchgui/internal/discovery"
	"github.com/muurk/touchgui/internal/logging"
	"github.com/muurk/touchgui/internal/ui"
	"go.uber.org/zap"
)

var (
	scanTimeout     time.Duration
	scanInteractive bool
	scanNoSave      bool
)

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().DurationVarP(&scanTimeout, "timeout", "t", discovery.DefaultScanTimeout, "How long to listen for panels")
	scanCmd.Flags().BoolVarP(&scanInteractive, "interactive", "i", false, "Pick a panel from a list and print its URL")
	scanCmd.Flags().BoolVar(&scanNoSave, "no-save", false, "Do not record found panels in the config file")
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Find panels on the local network",
	Long: `Find touchgui panels announced over mDNS on the local network.

Panels started with 'touchgui serve' advertise themselves as
` + discovery.ServiceType + `. Found panels are recorded in the config file
with their last address.`,
	Example: `  touchgui scan
  touchgui scan --timeout 10s
  touchgui scan -i`,
	RunE: runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	scanner := discovery.NewScanner()
	scanner.Timeout = scanTimeout
	scan := func() ([]*discovery.Panel, error) {
		return scanner.ScanForPanelsWithContext(cmd.Context())
	}

	printer := ui.NewPrinter(cmd.OutOrStdout())

	if scanInteractive {
		var found []*discovery.Panel
		picked, err := ui.RunScanPicker(func() ([]*discovery.Panel, error) {
			panels, err := scan()
			found = append(found, panels...)
			return panels, err
		})
		if err != nil {
			return err
		}
		recordPanels(found)
		if picked == nil {
			return nil
		}
		printer.PrintSuccess("Panel selected", panelDetails(picked))
		return nil
	}

	printer.PrintHeader("Panel scan", "touchgui scan", map[string]string{
		"Service": discovery.ServiceType,
		"Timeout": scanTimeout.String(),
	})
	panels, err := scan()
	if err != nil && !errors.Is(err, context.Canceled) {
		printer.PrintError("Scan failed", err, []string{
			"Check that multicast is allowed on this network",
			"Firewalls must pass UDP port 5353",
		})
		return err
	}
	if len(panels) == 0 {
		printer.PrintWarning("No panels found", nil, []string{
			"Start a panel with 'touchgui serve'",
			"Try a longer --timeout",
		})
		return nil
	}

	for _, p := range panels {
		printer.PrintSuccess(p.Name, panelDetails(p))
	}
	recordPanels(panels)
	return nil
}

func panelDetails(p *discovery.Panel) map[string]string {
	details := map[string]string{
		"URL":  p.URL(),
		"Host": p.Hostname,
	}
	if s := p.Screen(); s != "" {
		details["Screen"] = s
	}
	if w, h, ok := p.Size(); ok {
		details["Size"] = fmt.Sprintf("%dx%d", w, h)
	}
	if v := p.GetMetadata(discovery.KeyVersion); v != "" {
		details["Version"] = v
	}
	return details
}

// recordPanels stores the panels' last addresses in the config file. The
// file is reloaded so that command-line overrides are not written back.
func recordPanels(panels []*discovery.Panel) {
	if scanNoSave || len(panels) == 0 {
		return
	}

	path := configPath
	if path == "" {
		var err error
		if path, err = config.GetConfigPath(); err != nil {
			logging.Warn("Cannot record panels", zap.Error(err))
			return
		}
	}
	reg, err := config.LoadRegistryFrom(path)
	if err != nil {
		logging.Warn("Cannot record panels", zap.Error(err))
		return
	}
	for _, p := range panels {
		reg.UpdatePanelLastSeen(p.Name, p.IP, p.Port)
		reg.GetPanel(p.Name).Screen = p.Screen()
	}
	if err := reg.SaveTo(path); err != nil {
		logging.Warn("Cannot record panels", zap.Error(err))
	}
}
