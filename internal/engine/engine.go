// Package engine runs the caller side of the widget contract: it polls the
// touch sensor, turns samples into press and release edges and hands them to
// every widget on the screen.
package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/muurk/touchgui/internal/display"
	"github.com/muurk/touchgui/internal/logging"
	"github.com/muurk/touchgui/internal/touch"
	"github.com/muurk/touchgui/internal/widget"
	"go.uber.org/zap"
)

// Engine drives one screen of widgets.
type Engine struct {
	disp       display.Display
	reader     *touch.Reader
	widgets    []widget.Widget
	background display.Color
}

// Option configures an Engine.
type Option func(*Engine)

// WithBackground sets the color the screen is cleared to before a full
// redraw.
func WithBackground(c display.Color) Option {
	return func(e *Engine) { e.background = c }
}

// New creates an engine. debounce may be nil to act on every edge.
func New(d display.Display, s touch.Sensor, debounce *touch.Debouncer, widgets []widget.Widget, opts ...Option) *Engine {
	e := &Engine{
		disp:       d,
		reader:     touch.NewReader(s, debounce),
		widgets:    widgets,
		background: display.Black,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Widgets returns the widgets in drawing order.
func (e *Engine) Widgets() []widget.Widget { return e.widgets }

// RenderAll clears the screen and draws every widget.
func (e *Engine) RenderAll() {
	e.disp.FillScreen(e.background)
	for _, w := range e.widgets {
		w.Render(false, false)
	}
}

// Step performs one poll. It returns touch.ErrClosed, possibly wrapped, once
// the sensor is gone.
func (e *Engine) Step() error {
	edge, x, y, err := e.reader.Next()
	if err != nil {
		return err
	}
	switch edge {
	case touch.EdgeDown:
		logging.LogTouch("down", x, y)
		for _, w := range e.widgets {
			w.Click(x, y)
		}
	case touch.EdgeUp:
		logging.LogTouch("up", x, y)
		return e.release()
	}
	return nil
}

func (e *Engine) release() error {
	edited := false
	var sessionErr error
	for _, w := range e.widgets {
		if !w.Release() {
			continue
		}
		ed, ok := w.(*widget.NumericEditor)
		if !ok {
			continue
		}
		edited = true
		if _, err := ed.LastSession(); err != nil && sessionErr == nil {
			sessionErr = err
		}
	}
	if sessionErr != nil {
		return sessionErr
	}
	if edited {
		e.RenderAll()
	}
	return nil
}

// Run renders the screen and polls until ctx is done or the sensor closes.
// A closed sensor ends Run without error.
func (e *Engine) Run(ctx context.Context) error {
	e.RenderAll()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := e.Step(); err != nil {
			if errors.Is(err, touch.ErrClosed) {
				logging.Info("Touch input closed, stopping")
				return nil
			}
			logging.Error("Engine step failed", zap.Error(err))
			return fmt.Errorf("engine: %w", err)
		}
	}
}
