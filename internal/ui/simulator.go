package ui

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muurk/touchgui/internal/display"
	"github.com/muurk/touchgui/internal/logging"
	"github.com/muurk/touchgui/internal/touch"
	"go.uber.org/zap"
)

// upperHalfBlock shows two stacked pixels per cell: the foreground is the
// upper pixel, the background the lower.
const upperHalfBlock = "▀"

const (
	frameInterval = 50 * time.Millisecond

	// titleRows is the number of lines above the panel
	titleRows = 1
	// simulatorChrome counts the title, status and help lines
	simulatorChrome = 3
)

// SimulatorConfig wires the simulator to a panel.
type SimulatorConfig struct {
	Title   string
	Display *display.Framebuffer
	Touch   *touch.Queue

	// Run drives the widgets, typically engine.Run. It is started with the
	// program and its error ends the simulator.
	Run func(ctx context.Context) error
}

// simulatorKeyMap defines key bindings for the simulator
type simulatorKeyMap struct {
	Help key.Binding
	Quit key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k simulatorKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k simulatorKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Help, k.Quit}}
}

type frameTickMsg time.Time

type engineDoneMsg struct{ err error }

// SimulatorModel renders a framebuffer in the terminal and turns mouse
// presses into touches.
type SimulatorModel struct {
	fb    *display.Framebuffer
	queue *touch.Queue
	title string

	width, height int
	step          int
	panel         string

	pressed      bool
	lastX, lastY int
	err          error

	keys simulatorKeyMap
	help help.Model
}

// NewSimulatorModel creates a simulator sized for the current terminal.
func NewSimulatorModel(cfg SimulatorConfig) SimulatorModel {
	width, height := GetTerminalSize()
	m := SimulatorModel{
		fb:    cfg.Display,
		queue: cfg.Touch,
		title: cfg.Title,
		keys: simulatorKeyMap{
			Help: key.NewBinding(
				key.WithKeys("?"),
				key.WithHelp("?", "help"),
			),
			Quit: key.NewBinding(
				key.WithKeys("q", "ctrl+c", "esc"),
				key.WithHelp("q", "quit"),
			),
		},
		help: help.New(),
	}
	return m.resize(width, height)
}

func (m SimulatorModel) resize(width, height int) SimulatorModel {
	m.width, m.height = width, height
	m.step = FitStep(m.fb.Width(), m.fb.Height(), width, height-simulatorChrome)
	m.panel = RenderPanel(m.fb.Image(), m.step)
	return m
}

func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameTickMsg(t) })
}

// Init implements tea.Model
func (m SimulatorModel) Init() tea.Cmd {
	return frameTick()
}

// Update implements tea.Model
func (m SimulatorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.resize(msg.Width, msg.Height), nil

	case frameTickMsg:
		m.panel = RenderPanel(m.fb.Image(), m.step)
		return m, frameTick()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}

	case tea.MouseMsg:
		return m.handleMouse(msg), nil

	case engineDoneMsg:
		m.err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m SimulatorModel) handleMouse(msg tea.MouseMsg) SimulatorModel {
	x, y, onPanel := m.cellToPixel(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !onPanel {
			return m
		}
		m.pressed = true
		m.lastX, m.lastY = x, y
		m.queue.Press(x, y)
		logging.Debug("Simulator press", zap.Int("x", x), zap.Int("y", y))

	case tea.MouseActionMotion:
		if !m.pressed || !onPanel || (x == m.lastX && y == m.lastY) {
			return m
		}
		m.lastX, m.lastY = x, y
		m.queue.Press(x, y)

	case tea.MouseActionRelease:
		if !m.pressed {
			return m
		}
		m.pressed = false
		m.queue.Release()
		logging.Debug("Simulator release")
	}
	return m
}

// cellToPixel maps a terminal cell to the panel pixel at its center.
func (m SimulatorModel) cellToPixel(cx, cy int) (int, int, bool) {
	cy -= titleRows
	if cx < 0 || cy < 0 {
		return 0, 0, false
	}
	x := cx*m.step + m.step/2
	y := cy*2*m.step + m.step
	if x >= m.fb.Width() || y >= m.fb.Height() {
		return 0, 0, false
	}
	return x, y, true
}

// View implements tea.Model
func (m SimulatorModel) View() string {
	var b strings.Builder

	title := m.title
	if title == "" {
		title = "touchgui"
	}
	b.WriteString(HeaderTitleStyle.Render(fmt.Sprintf("%s  %dx%d  1:%d",
		strings.ToUpper(title), m.fb.Width(), m.fb.Height(), m.step)))
	b.WriteString("\n")
	b.WriteString(m.panel)
	b.WriteString("\n")

	status := "released"
	if m.pressed {
		status = fmt.Sprintf("touch %d,%d", m.lastX, m.lastY)
	}
	b.WriteString(StatusBarStyle.Render(status))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// Err returns the error that ended the simulator, if any.
func (m SimulatorModel) Err() error { return m.err }

// FitStep returns the smallest pixel step at which a width x height panel
// fits in cols x rows half-block cells.
func FitStep(width, height, cols, rows int) int {
	if cols <= 0 || rows <= 0 {
		return 1
	}
	for step := 1; ; step++ {
		if ceilDiv(width, step) <= cols && ceilDiv(height, 2*step) <= rows {
			return step
		}
		if step >= width && step >= height {
			return step
		}
	}
}

func ceilDiv(a, b int) int { return (a + b - 1) / b }

// RenderPanel renders img with half blocks, sampling one pixel every step
// columns and two every 2*step rows. Runs of identical cells share one
// style.
func RenderPanel(img *image.RGBA, step int) string {
	if step < 1 {
		step = 1
	}
	b := img.Bounds()
	cols := ceilDiv(b.Dx(), step)
	rows := ceilDiv(b.Dy(), 2*step)

	sample := func(x, y int) color.RGBA {
		if y >= b.Dy() {
			return color.RGBA{A: 0xff}
		}
		return img.RGBAAt(b.Min.X+x, b.Min.Y+y)
	}

	var out strings.Builder
	for cy := 0; cy < rows; cy++ {
		if cy > 0 {
			out.WriteByte('\n')
		}
		var runTop, runBottom color.RGBA
		run := 0
		flush := func() {
			if run == 0 {
				return
			}
			out.WriteString(lipgloss.NewStyle().
				Foreground(hexColor(runTop)).
				Background(hexColor(runBottom)).
				Render(strings.Repeat(upperHalfBlock, run)))
			run = 0
		}
		for cx := 0; cx < cols; cx++ {
			top := sample(cx*step, cy*2*step)
			bottom := sample(cx*step, cy*2*step+step)
			if run > 0 && (top != runTop || bottom != runBottom) {
				flush()
			}
			runTop, runBottom = top, bottom
			run++
		}
		flush()
	}
	return out.String()
}

func hexColor(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

// RunSimulator runs the simulator until the user quits, ctx ends or the
// engine stops. The touch queue is closed on the way out.
func RunSimulator(ctx context.Context, cfg SimulatorConfig) error {
	if cfg.Display == nil || cfg.Touch == nil || cfg.Run == nil {
		return errors.New("simulator needs a display, a touch queue and a run function")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewSimulatorModel(cfg), tea.WithAltScreen(), tea.WithMouseCellMotion())

	engineErr := make(chan error, 1)
	go func() {
		err := cfg.Run(ctx)
		engineErr <- err
		p.Send(engineDoneMsg{err: err})
	}()
	go func() {
		<-ctx.Done()
		p.Quit()
	}()

	final, err := p.Run()
	cancel()
	cfg.Touch.Close()
	runErr := <-engineErr

	if err != nil {
		return fmt.Errorf("simulator failed: %w", err)
	}
	if m, ok := final.(SimulatorModel); ok && m.Err() != nil {
		runErr = m.Err()
	}
	if errors.Is(runErr, context.Canceled) {
		return nil
	}
	return runErr
}
