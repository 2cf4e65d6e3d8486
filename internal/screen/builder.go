package screen

import (
	"errors"
	"fmt"
	"math"

	"github.com/muurk/touchgui/internal/display"
	"github.com/muurk/touchgui/internal/engine"
	"github.com/muurk/touchgui/internal/fixedpoint"
	"github.com/muurk/touchgui/internal/logging"
	"github.com/muurk/touchgui/internal/numedit"
	"github.com/muurk/touchgui/internal/widget"
	"go.uber.org/zap"
)

// Default widget colors
const (
	DefaultFG        = display.White
	DefaultBG        = display.Black
	DefaultFGClicked = display.Yellow
)

// Actions maps the action names used in screen files to widget actions.
type Actions map[string]widget.Action

// DefaultActions returns the built-in actions.
func DefaultActions() Actions {
	return Actions{"log": LogAction}
}

// LogAction logs the widget that fired, its state and the action argument.
func LogAction(w widget.Widget, arg any) {
	fields := []zap.Field{zap.String("widget", w.Name())}
	switch v := w.(type) {
	case *widget.NumericEditor:
		fields = append(fields, zap.String("value", v.Text()))
	case *widget.Clickable:
		fields = append(fields, zap.Bool("on", v.IsOn()))
	}
	if arg != nil {
		fields = append(fields, zap.Any("arg", arg))
	}
	logging.Info("Widget action", fields...)
}

// Screen is a built screen ready to hand to an engine.
type Screen struct {
	Name       string
	Background display.Color
	Registry   *widget.Registry

	// Widgets are the main screen widgets in drawing order.
	Widgets []widget.Widget
	// Buttons holds every button and toggle, edit-only ones included.
	Buttons map[string]*widget.Clickable
	Editors map[string]*widget.NumericEditor
	// Values are the variables linked to numeric widgets.
	Values map[string]fixedpoint.Link
	// Restored lists numeric widgets whose value came from the store.
	Restored []string

	env numedit.Env
}

// Value returns the current value of a numeric widget.
func (s *Screen) Value(name string) (fixedpoint.Number, bool) {
	link, ok := s.Values[name]
	if !ok {
		return fixedpoint.Number{}, false
	}
	return link.Load(), true
}

// NewEngine returns an engine driving the screen with the environment it
// was built with.
func (s *Screen) NewEngine() *engine.Engine {
	return engine.New(s.env.Display, s.env.Sensor, s.env.Debounce, s.Widgets,
		engine.WithBackground(s.Background))
}

// Builder turns a screen file into widgets.
//
// Example usage:
//
//	scr, err := screen.NewBuilder(file, env).
//	    WithAction("beep", beep).
//	    Build()
type Builder struct {
	file    *File
	env     numedit.Env
	actions Actions
	restore bool
}

// NewBuilder creates a builder with the built-in actions. Numeric values are
// restored from env's bridge unless SkipRestore is called.
func NewBuilder(f *File, env numedit.Env) *Builder {
	return &Builder{
		file:    f,
		env:     env,
		actions: DefaultActions(),
		restore: true,
	}
}

// WithAction registers an action under name, replacing any existing one.
func (b *Builder) WithAction(name string, fn widget.Action) *Builder {
	b.actions[name] = fn
	return b
}

// WithActions registers every action in a.
func (b *Builder) WithActions(a Actions) *Builder {
	for name, fn := range a {
		b.actions[name] = fn
	}
	return b
}

// SkipRestore keeps the initial values from the file instead of loading
// stored ones.
func (b *Builder) SkipRestore() *Builder {
	b.restore = false
	return b
}

// Validate checks the file and the actions it names. Warnings are logged and
// do not fail validation.
func (b *Builder) Validate() error {
	if b.file == nil {
		return NewValidationError("", "no screen file")
	}
	problems := Validate(b.file)
	problems = append(problems, ValidateActions(b.file, b.actions)...)

	warnings, critical := SeparateWarningsAndErrors(problems)
	for _, w := range warnings {
		logging.Warn("Screen warning", zap.String("screen", b.file.Name), zap.Error(w))
	}
	if len(critical) == 0 {
		return nil
	}
	return &ScreenError{
		Type:    ErrTypeValidation,
		Message: fmt.Sprintf("screen %q has %d error(s)", b.file.Name, len(critical)),
		Err:     errors.Join(critical...),
	}
}

// Build validates the file and creates its widgets.
func (b *Builder) Build() (*Screen, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if b.env.Display == nil {
		return nil, NewBuildError("", errors.New("no display"))
	}

	f := b.file
	if w, h := b.env.Display.Width(), b.env.Display.Height(); w != f.Display.Width || h != f.Display.Height {
		logging.Warn("Display size differs from screen layout",
			zap.String("screen", f.Name),
			zap.Int("display_width", w),
			zap.Int("display_height", h),
			zap.Int("screen_width", f.Display.Width),
			zap.Int("screen_height", f.Display.Height),
		)
	}

	s := &Screen{
		Name:       f.Name,
		Background: colorOr(f.Display.Background, DefaultBG),
		Registry:   widget.NewRegistry(),
		Buttons:    make(map[string]*widget.Clickable),
		Editors:    make(map[string]*widget.NumericEditor),
		Values:     make(map[string]fixedpoint.Link),
		env:        b.env,
	}

	// Edit-only buttons first: editors need them.
	for _, w := range f.Widgets {
		if w.Kind == KindButton && w.EditOnly {
			c, err := b.buildClickable(s.Registry, w)
			if err != nil {
				return nil, err
			}
			s.Buttons[w.Name] = c
		}
	}

	for _, w := range f.Widgets {
		if w.EditOnly {
			continue
		}
		var built widget.Widget
		switch w.Kind {
		case KindLabel:
			l, err := b.buildLabel(s.Registry, w)
			if err != nil {
				return nil, err
			}
			built = l
		case KindButton, KindToggle:
			c, err := b.buildClickable(s.Registry, w)
			if err != nil {
				return nil, err
			}
			s.Buttons[w.Name] = c
			built = c
		case KindNumeric:
			e, err := b.buildEditor(s, w)
			if err != nil {
				return nil, err
			}
			s.Editors[w.Name] = e
			built = e
		}
		s.Widgets = append(s.Widgets, built)
	}

	logging.Debug("Screen built",
		zap.String("screen", s.Name),
		zap.Int("widgets", len(s.Widgets)),
		zap.Int("editors", len(s.Editors)),
		zap.Strings("restored", s.Restored),
	)
	return s, nil
}

func (b *Builder) descriptor(w WidgetSpec) widget.Descriptor {
	return widget.Descriptor{
		Name:        w.Name,
		Bounds:      w.Bounds(),
		FG:          colorOr(w.FG, DefaultFG),
		BG:          colorOr(w.BG, DefaultBG),
		FontSize:    w.FontSize,
		Transparent: w.Transparent,
		Label:       w.Label,
	}
}

func (b *Builder) clickableDescriptor(w WidgetSpec) widget.ClickableDescriptor {
	d := b.descriptor(w)
	cd := widget.ClickableDescriptor{
		Descriptor: d,
		VarText:    w.Text,
		OnText:     w.OnText,
		VarOffset:  w.Offset,
		FGClicked:  colorOr(w.FGClicked, DefaultFGClicked),
		BGOn:       colorOr(w.BGOn, d.BG),
	}
	if w.Action != "" && !w.EditOnly {
		cd.Action = b.actions[w.Action]
	}
	if w.Arg != "" {
		cd.ActionArg = w.Arg
	}
	return cd
}

func (b *Builder) buildLabel(reg *widget.Registry, w WidgetSpec) (*widget.Label, error) {
	h, err := reg.AddLabel(b.descriptor(w))
	if err != nil {
		return nil, NewBuildError(w.Name, err)
	}
	l, err := widget.NewLabel(b.env.Display, reg, h)
	if err != nil {
		return nil, NewBuildError(w.Name, err)
	}
	return l, nil
}

func (b *Builder) buildClickable(reg *widget.Registry, w WidgetSpec) (*widget.Clickable, error) {
	h, err := reg.AddClickable(b.clickableDescriptor(w))
	if err != nil {
		return nil, NewBuildError(w.Name, err)
	}
	var flags widget.Flags
	if w.Kind == KindToggle {
		flags |= widget.OnOff
		if w.On {
			flags |= widget.On
		}
	}
	if w.ColorOn {
		flags |= widget.ChangeColorOn
	}
	c, err := widget.NewClickable(b.env.Display, reg, h, flags)
	if err != nil {
		return nil, NewBuildError(w.Name, err)
	}
	return c, nil
}

func (b *Builder) buildEditor(s *Screen, w WidgetSpec) (*widget.NumericEditor, error) {
	field := w.Field()
	var link fixedpoint.Link
	if field.IsFloat() {
		v := float32(w.Value)
		link = fixedpoint.FloatLink(&v)
	} else {
		v := int32(math.Round(w.Value))
		link = fixedpoint.IntLink(&v)
	}
	addr := uint16(*w.Address)
	if b.restore && b.env.Bridge.Restore(addr, link) {
		s.Restored = append(s.Restored, w.Name)
	}
	s.Values[w.Name] = link

	cd := b.clickableDescriptor(w)
	cd.VarBuffer = widget.NewTextBuffer("")
	h, err := s.Registry.AddEditor(widget.EditDescriptor{
		ClickableDescriptor: cd,
		Field:               field,
		Link:                link,
		Address:             addr,
	})
	if err != nil {
		return nil, NewBuildError(w.Name, err)
	}
	e, err := widget.NewNumericEditor(b.env, s.Registry, h, s.Buttons[w.OK], s.Buttons[w.Cancel])
	if err != nil {
		return nil, NewBuildError(w.Name, err)
	}
	return e, nil
}

// colorOr parses s, falling back to def when s is empty. Files are
// validated before building, so a parse failure also yields def.
func colorOr(s string, def display.Color) display.Color {
	if s == "" {
		return def
	}
	c, err := display.ParseColor(s)
	if err != nil {
		return def
	}
	return c
}
