package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/skip2/go-qrcode"
	"github.com/spf13/cobra"

	"github.com/muurk/touchgui/internal/discovery"
	"github.com/muurk/touchgui/internal/fixedpoint"
	"github.com/muurk/touchgui/internal/logging"
	"github.com/muurk/touchgui/internal/screen"
	"github.com/muurk/touchgui/internal/server"
	"github.com/muurk/touchgui/internal/touch"
	"github.com/muurk/touchgui/internal/ui"
	"github.com/muurk/touchgui/internal/version"
	"github.com/muurk/touchgui/internal/widget"
	"go.uber.org/zap"
)

// Panel command flags
var (
	serveHost   string
	servePort   int
	serveName   string
	noAdvertise bool
	noQR        bool
	certPath    string
	keyPath     string

	renderOut    string
	renderScript string
)

func init() {
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(renderCmd)

	serveCmd.Flags().StringVar(&serveHost, "host", "", "Listen address (default from config, 0.0.0.0)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Listen port (default from config, 8080)")
	serveCmd.Flags().StringVar(&serveName, "name", "", "Panel name advertised over mDNS (default from config)")
	serveCmd.Flags().BoolVar(&noAdvertise, "no-advertise", false, "Do not announce the panel with mDNS")
	serveCmd.Flags().BoolVar(&noQR, "no-qr", false, "Do not print a QR code of the panel URL")
	serveCmd.Flags().StringVar(&certPath, "cert", "", "TLS certificate file (serve HTTPS)")
	serveCmd.Flags().StringVar(&keyPath, "key", "", "TLS private key file")

	renderCmd.Flags().StringVarP(&renderOut, "output", "o", "screen.png", "PNG file to write")
	renderCmd.Flags().StringVar(&renderScript, "script", "", "Touch script to replay before saving")
}

// simulateCmd runs the screen in the terminal
var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the screen in the terminal",
	Long: `Run the screen in a terminal window.

The panel is drawn with half-block characters, two pixels per cell, scaled
down to fit the terminal. Click and drag with the mouse to touch it.
Press q to quit.`,
	Example: `  # Built-in demo screen
  touchgui simulate

  # Your own screen with values kept in memory only
  touchgui simulate --screen oven.yaml --store memory`,
	RunE: runSimulate,
}

func runSimulate(cmd *cobra.Command, args []string) error {
	queue := touch.NewQueue(0)
	p, err := openPanel(queue, nil)
	if err != nil {
		return err
	}
	defer p.Close()

	eng := p.screen.NewEngine()
	return ui.RunSimulator(cmd.Context(), ui.SimulatorConfig{
		Title:   p.file.Name,
		Display: p.fb,
		Touch:   queue,
		Run:     eng.Run,
	})
}

// serveCmd serves the screen to browsers
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the screen to web browsers",
	Long: `Serve the screen as a remote panel.

Open the printed URL (or scan the QR code) on any device with a browser.
Every connected browser shows the same panel and can touch it. The panel is
announced over mDNS as a ` + discovery.ServiceType + ` service so 'touchgui scan'
can find it.

Stop the server with Ctrl+C.`,
	Example: `  # Serve the configured screen on port 8080
  touchgui serve

  # Custom port and name, no mDNS
  touchgui serve --port 9000 --name kitchen --no-advertise

  # Serve over HTTPS
  touchgui serve --cert panel.pem --key panel-key.pem`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	if (certPath == "") != (keyPath == "") {
		return errors.New("both --cert and --key must be provided together")
	}

	host, port, name := registry.Panel.Host, registry.Panel.Port, registry.Panel.Name
	if cmd.Flags().Changed("host") {
		host = serveHost
	}
	if servePort != 0 {
		port = servePort
	}
	if serveName != "" {
		name = serveName
	}

	queue := touch.NewQueue(0)
	p, err := openPanel(queue, nil)
	if err != nil {
		return err
	}
	defer p.Close()

	srv, err := server.New(&server.Config{
		Host:     host,
		Port:     port,
		Name:     name,
		CertPath: certPath,
		KeyPath:  keyPath,
	}, p.fb, queue)
	if err != nil {
		return err
	}
	if _, err := srv.Listen(); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	url := panelURL(host, port, certPath != "")
	printer := ui.NewPrinter(cmd.OutOrStdout())
	printer.PrintHeader("Panel server", "touchgui serve", map[string]string{
		"Screen":  p.file.Name,
		"Panel":   name,
		"Size":    fmt.Sprintf("%dx%d", p.fb.Width(), p.fb.Height()),
		"URL":     url,
		"Store":   registry.Store.Kind,
		"Restore": strconv.Itoa(len(p.screen.Restored)) + " value(s)",
	})
	if !noQR {
		if qr, err := qrcode.New(url, qrcode.Medium); err != nil {
			logging.Warn("Failed to build QR code", zap.Error(err))
		} else {
			printer.PrintBlock("Scan to open the panel", qr.ToSmallString(false))
		}
	}

	if !noAdvertise && registry.Panel.Advertise {
		adv, err := discovery.Advertise(ctx, name, port,
			discovery.KeyScreen+"="+p.file.Name,
			fmt.Sprintf("%s=%dx%d", discovery.KeySize, p.fb.Width(), p.fb.Height()),
			discovery.KeyVersion+"="+version.Version,
		)
		if err != nil {
			// a missing multicast route should not stop the panel
			logging.Warn("mDNS advertisement failed", zap.Error(err))
			printer.Println(ui.StatusBarStyle.Render("mDNS advertisement failed: " + err.Error()))
		} else {
			defer adv.Shutdown()
		}
	}

	eng := p.screen.NewEngine()
	engineErr := make(chan error, 1)
	go func() {
		err := eng.Run(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			cancel()
		}
		engineErr <- err
	}()

	serveErr := srv.Start(ctx)
	cancel()
	queue.Close()

	if err := <-engineErr; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return serveErr
}

// renderCmd draws the screen headlessly
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the screen to a PNG file",
	Long: `Draw the screen without a display and save it as a PNG.

With --script, a touch script is replayed first, so edit sessions and
toggles can be exercised and checked without a panel. Script lines:

  down X Y    press at X,Y
  up          release at the last point
  tap X Y     press then release
  hold N      repeat the previous sample N more times

Each line is one sensor sample, 250ms apart. Text after # is ignored.
Values confirmed in the keypad editor are written to the configured store;
use --store memory to leave it untouched.`,
	Example: `  # Snapshot the demo screen
  touchgui render -o demo.png

  # Edit a value from a script without touching the real store
  touchgui render --script edit.touch --store memory -o edited.png`,
	RunE: runRender,
}

func runRender(cmd *cobra.Command, args []string) error {
	var frames []touch.Frame
	if renderScript != "" {
		f, err := os.Open(renderScript)
		if err != nil {
			return fmt.Errorf("failed to open touch script: %w", err)
		}
		frames, err = touch.ParseScript(f)
		_ = f.Close()
		if err != nil {
			return fmt.Errorf("invalid touch script %s: %w", renderScript, err)
		}
	}

	script := touch.NewScript(frames...)
	p, err := openPanel(script, script)
	if err != nil {
		return err
	}
	defer p.Close()

	if err := p.screen.NewEngine().Run(cmd.Context()); err != nil {
		return err
	}
	if err := p.fb.SavePNG(renderOut); err != nil {
		return err
	}

	details := map[string]string{
		"Output":  renderOut,
		"Size":    fmt.Sprintf("%dx%d", p.fb.Width(), p.fb.Height()),
		"Samples": strconv.Itoa(len(frames)),
	}
	for _, w := range p.file.Widgets {
		if w.Kind != screen.KindNumeric || w.EditOnly {
			continue
		}
		if n, ok := p.screen.Value(w.Name); ok {
			details[w.Name] = fixedpoint.FormatText(n, w.Decimals)
		}
	}
	for name, b := range p.screen.Buttons {
		if b.Flags().Has(widget.OnOff) {
			details[name] = onOff(b.IsOn())
		}
	}
	ui.NewPrinter(cmd.OutOrStdout()).PrintSuccess("Screen rendered", details)
	return nil
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
