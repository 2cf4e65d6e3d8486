package widget

import (
	"errors"
	"fmt"

	"github.com/muurk/touchgui/internal/display"
	"github.com/muurk/touchgui/internal/fixedpoint"
)

// MaxLabelLen bounds label and variable text length in characters.
const MaxLabelLen = 40

// Rect is an axis-aligned rectangle in display pixels.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether (x, y) lies inside the rectangle. The right and
// bottom edges are exclusive.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Max returns the inclusive bottom-right corner.
func (r Rect) Max() (x, y int) { return r.X + r.W - 1, r.Y + r.H - 1 }

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d@%d,%d", r.W, r.H, r.X, r.Y)
}

// Descriptor is the configuration shared by every widget kind.
type Descriptor struct {
	Name        string
	Bounds      Rect
	FG, BG      display.Color
	FontSize    int
	Transparent bool
	Label       string
}

// Action is called after an accepted release. Editors pass a nil arg.
type Action func(w Widget, arg any)

// ClickableDescriptor configures a Clickable.
type ClickableDescriptor struct {
	Descriptor

	// VarText is a constant variable text. VarBuffer is an in-memory one,
	// used instead when the widget carries the VarTextInMemory flag.
	VarText   string
	VarBuffer *TextBuffer
	// OnText replaces the variable text while an on/off widget is on.
	OnText string
	// VarOffset is where the variable text starts, in characters past the
	// left edge of the label.
	VarOffset int

	FGClicked display.Color
	// BGOn is the background of an on widget with ChangeColorOn set.
	BGOn display.Color

	Action    Action
	ActionArg any
}

// EditDescriptor configures a NumericEditor. VarBuffer holds the mirror text
// of the linked value.
type EditDescriptor struct {
	ClickableDescriptor

	Field   fixedpoint.Field
	Link    fixedpoint.Link
	Address uint16
}

func (d Descriptor) validate() error {
	if d.Bounds.Empty() {
		return fmt.Errorf("widget %q: degenerate bounds %s", d.Name, d.Bounds)
	}
	if d.Bounds.X < 0 || d.Bounds.Y < 0 {
		return fmt.Errorf("widget %q: negative position %s", d.Name, d.Bounds)
	}
	if len(d.Label) > MaxLabelLen {
		return fmt.Errorf("widget %q: label longer than %d characters", d.Name, MaxLabelLen)
	}
	if d.FontSize < 0 {
		return fmt.Errorf("widget %q: negative font size", d.Name)
	}
	return nil
}

func (d ClickableDescriptor) validate() error {
	if err := d.Descriptor.validate(); err != nil {
		return err
	}
	if len(d.VarText) > MaxLabelLen || len(d.OnText) > MaxLabelLen {
		return fmt.Errorf("widget %q: variable text longer than %d characters", d.Name, MaxLabelLen)
	}
	if d.VarOffset < 0 {
		return fmt.Errorf("widget %q: negative variable text offset", d.Name)
	}
	return nil
}

func (d EditDescriptor) validate() error {
	if err := d.ClickableDescriptor.validate(); err != nil {
		return err
	}
	if err := d.Field.Validate(); err != nil {
		return fmt.Errorf("widget %q: %w", d.Name, err)
	}
	if !d.Link.Valid() {
		return fmt.Errorf("widget %q: editor needs exactly one linked variable", d.Name)
	}
	if d.Link.IsFloat() != d.Field.IsFloat() {
		return fmt.Errorf("widget %q: field %s does not match linked variable kind", d.Name, d.Field)
	}
	if d.VarBuffer == nil {
		return fmt.Errorf("widget %q: editor needs a mirror buffer", d.Name)
	}
	if d.OnText != "" {
		return errors.New("editors have no on state")
	}
	return nil
}

// fontSize returns the descriptor font size, treating zero as 1.
func (d Descriptor) fontSize() int {
	if d.FontSize < 1 {
		return 1
	}
	return d.FontSize
}
