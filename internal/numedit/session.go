package numedit

import (
	"errors"
	"fmt"

	"github.com/muurk/touchgui/internal/display"
	"github.com/muurk/touchgui/internal/fixedpoint"
	"github.com/muurk/touchgui/internal/logging"
	"github.com/muurk/touchgui/internal/persist"
	"github.com/muurk/touchgui/internal/touch"
)

// Button is an OK or Cancel control on the edit screen.
type Button interface {
	Render(fromRelease, varTextOnly bool)
	Click(x, y int) bool
	Release() bool
}

// Env is what a session borrows from the running device.
type Env struct {
	Display  display.Display
	Sensor   touch.Sensor
	Debounce *touch.Debouncer
	Bridge   *persist.Bridge
}

// Params describe the value being edited.
type Params struct {
	Name    string
	Field   fixedpoint.Field
	Link    fixedpoint.Link
	Address uint16
	Mirror  persist.TextSetter
	OK      Button
	Cancel  Button
}

// Outcome is how a session ended.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeOK
	OutcomeCancel
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeCancel:
		return "cancel"
	default:
		return "none"
	}
}

// Result reports a finished session.
type Result struct {
	Outcome Outcome
	// Changed is set when OK produced a new value.
	Changed bool
	Value   fixedpoint.Number
	// Text is the compacted field text accepted with OK.
	Text string
}

const noSelection = -1

// Session is one modal edit.
type Session struct {
	env    Env
	disp   display.Display
	params Params
	layout Layout
	ok     Button
	cancel Button

	buf      []byte
	selected int
	pending  int
	// dirty is set once a key has been written into the buffer. The
	// initial buffer may hold a truncated value that does not parse back.
	dirty bool
}

// NewSession prepares a session: the linked value is formatted into the
// field and the layout is fitted to the display.
func NewSession(env Env, p Params) (*Session, error) {
	if env.Display == nil || env.Sensor == nil {
		return nil, errors.New("edit session needs a display and a touch sensor")
	}
	if p.OK == nil || p.Cancel == nil {
		return nil, errors.New("edit session needs OK and Cancel buttons")
	}
	if err := p.Field.Validate(); err != nil {
		return nil, fmt.Errorf("invalid field: %w", err)
	}
	return &Session{
		env:      env,
		disp:     env.Display,
		params:   p,
		layout:   NewLayout(env.Display.Width(), env.Display.Height(), p.Field),
		ok:       p.OK,
		cancel:   p.Cancel,
		buf:      p.Field.Format(p.Link.Load()),
		selected: noSelection,
		pending:  noSelection,
	}, nil
}

// Layout returns the session geometry.
func (s *Session) Layout() Layout { return s.layout }

// Buffer returns the current field text.
func (s *Session) Buffer() string { return string(s.buf) }

// Selected returns the selected cell or -1.
func (s *Session) Selected() int { return s.selected }

// Run draws the edit screen and processes touches until OK or Cancel is
// released. It fails only when the sensor goes away, in which case nothing
// is committed.
func (s *Session) Run() (Result, error) {
	s.drawScreen()
	reader := touch.NewReader(s.env.Sensor, s.env.Debounce)
	for {
		edge, x, y, err := reader.Next()
		if err != nil {
			return Result{}, fmt.Errorf("edit session %q: %w", s.params.Name, err)
		}
		switch edge {
		case touch.EdgeDown:
			logging.LogTouch("down", x, y)
			s.press(x, y)
		case touch.EdgeUp:
			logging.LogTouch("up", x, y)
			if outcome := s.lift(); outcome != OutcomeNone {
				return s.finish(outcome), nil
			}
		}
	}
}

// press handles a new touch.
func (s *Session) press(x, y int) {
	l := s.layout
	switch {
	case l.InField(x, y):
		i := l.CellAt(x)
		if s.selected != noSelection && s.selected != i {
			s.drawCell(s.selected, false)
		}
		if i == l.PointCell {
			s.selected = noSelection
			return
		}
		s.selected = i
		s.drawCell(i, true)

	case l.InPad(x, y):
		s.pending = l.KeyAt(x, y)
		s.drawKey(s.pending, true)

	default:
		if s.selected != noSelection {
			s.drawCell(s.selected, false)
			s.selected = noSelection
		}
		s.ok.Click(x, y)
		s.cancel.Click(x, y)
	}
}

// lift handles the end of a touch and reports whether a button ended the
// session.
func (s *Session) lift() Outcome {
	if s.pending != noSelection {
		if s.selected != noSelection {
			s.buf[s.selected] = s.layout.Keys[s.pending]
			s.dirty = true
			s.drawCell(s.selected, true)
		}
		s.drawKey(s.pending, false)
		s.pending = noSelection
	}
	if s.ok.Release() {
		return OutcomeOK
	}
	if s.cancel.Release() {
		return OutcomeCancel
	}
	return OutcomeNone
}

// finish applies the outcome.
func (s *Session) finish(outcome Outcome) Result {
	res := Result{Outcome: outcome}
	if outcome != OutcomeOK {
		logging.LogEditSession(s.params.Name, outcome.String(), string(s.buf), false)
		return res
	}

	text := fixedpoint.Compact(s.buf)
	if !s.dirty {
		res.Value, res.Text = s.params.Link.Load(), text
		logging.LogEditSession(s.params.Name, outcome.String(), text, false)
		return res
	}
	value := s.params.Field.Parse(text)
	res.Value, res.Text = value, text

	if !value.Equal(s.params.Link.Load()) {
		res.Changed = true
		s.params.Link.Store(value)
		s.env.Bridge.Commit(s.params.Address, value)
		if s.params.Mirror != nil {
			s.params.Mirror.SetText(text)
		}
	}
	logging.LogEditSession(s.params.Name, outcome.String(), text, res.Changed)
	return res
}

// Run opens a session and runs it to completion.
func Run(env Env, p Params) (Result, error) {
	s, err := NewSession(env, p)
	if err != nil {
		return Result{}, err
	}
	return s.Run()
}
