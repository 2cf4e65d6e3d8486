package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muurk/touchgui/internal/discovery"
)

// ScanFunc discovers panels; ScanModel runs it off the UI goroutine.
type ScanFunc func() ([]*discovery.Panel, error)

type scanCompleteMsg struct {
	panels []*discovery.Panel
	err    error
}

// scanKeyMap defines key bindings for the panel picker
type scanKeyMap struct {
	Select key.Binding
	Rescan key.Binding
	Quit   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k scanKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Rescan, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k scanKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Select, k.Rescan, k.Quit}}
}

// panelItem wraps a Panel for use with bubbles/list
type panelItem struct {
	panel *discovery.Panel
}

func (p panelItem) FilterValue() string {
	return p.panel.Name + " " + p.panel.IP + " " + p.panel.Screen()
}

func (p panelItem) Title() string { return p.panel.Name }

func (p panelItem) Description() string {
	desc := p.panel.URL()
	if screen := p.panel.Screen(); screen != "" {
		desc += " • screen " + screen
	}
	if w, h, ok := p.panel.Size(); ok {
		desc += fmt.Sprintf(" • %dx%d", w, h)
	}
	return desc
}

// ScanModel scans for panels and lets the user pick one.
type ScanModel struct {
	scan     ScanFunc
	scanning bool
	err      error
	selected *discovery.Panel

	spinner spinner.Model
	list    list.Model
	keys    scanKeyMap
	help    help.Model
}

// NewScanModel creates a picker that runs scan on start and on rescan.
func NewScanModel(scan ScanFunc) ScanModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SelectedItemStyle

	width, height := GetTerminalSize()
	l := list.New(nil, list.NewDefaultDelegate(), width, max(height-4, 5))
	l.Title = "touchgui panels"
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	return ScanModel{
		scan:     scan,
		scanning: true,
		spinner:  s,
		list:     l,
		keys: scanKeyMap{
			Select: key.NewBinding(
				key.WithKeys("enter"),
				key.WithHelp("enter", "select"),
			),
			Rescan: key.NewBinding(
				key.WithKeys("r"),
				key.WithHelp("r", "rescan"),
			),
			Quit: key.NewBinding(
				key.WithKeys("q", "ctrl+c", "esc"),
				key.WithHelp("q", "quit"),
			),
		},
		help: help.New(),
	}
}

func (m ScanModel) runScan() tea.Msg {
	panels, err := m.scan()
	return scanCompleteMsg{panels: panels, err: err}
}

// Init implements tea.Model
func (m ScanModel) Init() tea.Cmd {
	return tea.Batch(m.runScan, m.spinner.Tick)
}

// Update implements tea.Model
func (m ScanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case m.scanning:
			return m, nil
		case key.Matches(msg, m.keys.Select):
			if item, ok := m.list.SelectedItem().(panelItem); ok {
				m.selected = item.panel
				return m, tea.Quit
			}
			return m, nil
		case key.Matches(msg, m.keys.Rescan):
			m.scanning = true
			m.err = nil
			return m, tea.Batch(m.runScan, m.spinner.Tick)
		}

	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, max(msg.Height-4, 5))
		return m, nil

	case scanCompleteMsg:
		m.scanning = false
		m.err = msg.err
		items := make([]list.Item, len(msg.panels))
		for i, p := range msg.panels {
			items[i] = panelItem{panel: p}
		}
		return m, m.list.SetItems(items)

	case spinner.TickMsg:
		if !m.scanning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.scanning {
		return m, nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View implements tea.Model
func (m ScanModel) View() string {
	var b strings.Builder
	switch {
	case m.scanning:
		b.WriteString(fmt.Sprintf("\n  %s Scanning for %s services...\n\n", m.spinner.View(), discovery.ServiceType))
	case m.err != nil:
		b.WriteString("\n" + ErrorMessageStyle.Render("  Scan failed: "+m.err.Error()) + "\n\n")
	case len(m.list.Items()) == 0:
		b.WriteString("\n" + StatusBarStyle.Render(" No panels found. Is \"touchgui serve\" running on this network?") + "\n\n")
	default:
		b.WriteString(m.list.View() + "\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// Selected returns the chosen panel, or nil if the user quit.
func (m ScanModel) Selected() *discovery.Panel { return m.selected }

// RunScanPicker shows the picker and returns the chosen panel, or nil.
func RunScanPicker(scan ScanFunc) (*discovery.Panel, error) {
	final, err := tea.NewProgram(NewScanModel(scan)).Run()
	if err != nil {
		return nil, fmt.Errorf("panel picker failed: %w", err)
	}
	if m, ok := final.(ScanModel); ok {
		return m.Selected(), nil
	}
	return nil, nil
}
