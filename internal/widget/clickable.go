package widget

import (
	"errors"
	"fmt"

	"github.com/muurk/touchgui/internal/display"
	"github.com/muurk/touchgui/internal/logging"
)

// Clickable is a widget that responds to touches.
type Clickable struct {
	disp   display.Display
	handle Handle
	desc   ClickableDescriptor
	flags  Flags

	// self is the widget handed to the action; editors replace it.
	self Widget
	// releaseAction runs when an accepted press ends.
	releaseAction func()
}

// NewClickable creates a clickable from the descriptor behind h with the
// given initial flags. On-state text requires the OnOff flag.
func NewClickable(d display.Display, reg *Registry, h Handle, flags Flags) (*Clickable, error) {
	desc, ok := reg.Clickable(h)
	if !ok {
		return nil, fmt.Errorf("no clickable descriptor for handle %d", h)
	}
	if desc.OnText != "" && !flags.Has(OnOff) {
		return nil, errors.New("on-state text set on a widget that is not on/off")
	}
	c := &Clickable{
		disp:   d,
		handle: h,
		desc:   desc,
		flags:  flags &^ Pressed,
	}
	c.self = c
	c.releaseAction = c.toggleAndNotify
	return c, nil
}

func (c *Clickable) Bounds() Rect   { return c.desc.Bounds }
func (c *Clickable) Name() string   { return c.desc.Name }
func (c *Clickable) Handle() Handle { return c.handle }

// Flags returns the runtime flags.
func (c *Clickable) Flags() Flags { return c.flags }

// SetFlags replaces the runtime flags.
func (c *Clickable) SetFlags(f Flags) { c.flags = f }

// SetOnOff sets the on state of an on/off widget. Other widgets ignore it.
// The widget is not redrawn.
func (c *Clickable) SetOnOff(on bool) {
	if !c.flags.Has(OnOff) {
		return
	}
	if on {
		c.flags |= On
	} else {
		c.flags &^= On
	}
}

// IsOn reports whether the widget is an on/off widget in the on state.
func (c *Clickable) IsOn() bool { return c.flags.Has(OnOff | On) }

// IsPressed reports whether a press is in progress.
func (c *Clickable) IsPressed() bool { return c.flags.Has(Pressed) }

// ActionArg returns the argument passed to the action on release.
func (c *Clickable) ActionArg() any { return c.desc.ActionArg }

func (c *Clickable) Click(x, y int) bool {
	if c.desc.Bounds.Contains(x, y) {
		if !c.flags.Has(Pressed) {
			c.press()
		}
	} else if c.flags.Has(Pressed) {
		logging.LogWidget("clickable", c.desc.Name, "dragged off")
		c.releaseAction()
		c.flags &^= Pressed
	}
	return c.flags.Has(Pressed)
}

func (c *Clickable) Release() bool {
	if !c.flags.Has(Pressed) {
		return false
	}
	logging.LogWidget("clickable", c.desc.Name, "released")
	c.releaseAction()
	return true
}

func (c *Clickable) press() {
	logging.LogWidget("clickable", c.desc.Name, "pressed")
	c.flags |= Pressed
	c.self.Render(false, false)
}

// toggleAndNotify is the release action of plain and on/off widgets.
func (c *Clickable) toggleAndNotify() {
	c.flags &^= Pressed
	if c.flags.Has(OnOff) {
		c.flags ^= On
		c.self.Render(true, false)
	} else {
		c.self.Render(false, false)
	}
	c.notify(c.desc.ActionArg)
}

func (c *Clickable) notify(arg any) {
	if c.desc.Action != nil {
		c.desc.Action(c.self, arg)
	}
}
