package widget

import (
	"fmt"

	"github.com/muurk/touchgui/internal/numedit"
	"github.com/muurk/touchgui/internal/persist"
)

// NumericEditor shows a linked number and edits it on release.
type NumericEditor struct {
	*Clickable

	edit   EditDescriptor
	env    numedit.Env
	ok     numedit.Button
	cancel numedit.Button

	last    numedit.Result
	lastErr error
}

// NewNumericEditor creates an editor from the descriptor behind h. The
// session borrows env's display, sensor and bridge; ok and cancel are drawn
// only on the edit screen. The mirror is filled from the linked variable.
func NewNumericEditor(env numedit.Env, reg *Registry, h Handle, ok, cancel numedit.Button) (*NumericEditor, error) {
	desc, found := reg.Editor(h)
	if !found {
		return nil, fmt.Errorf("no editor descriptor for handle %d", h)
	}
	if ok == nil || cancel == nil {
		return nil, fmt.Errorf("editor %q needs OK and Cancel buttons", desc.Name)
	}
	c, err := NewClickable(env.Display, reg, h, VarTextInMemory)
	if err != nil {
		return nil, err
	}
	e := &NumericEditor{
		Clickable: c,
		edit:      desc,
		env:       env,
		ok:        ok,
		cancel:    cancel,
	}
	c.self = e
	c.releaseAction = e.runSession
	e.RefreshDisplay()
	return e, nil
}

// RefreshDisplay copies the linked variable into the mirror text. Call it
// after changing the variable outside the editor, then Render to show it.
func (e *NumericEditor) RefreshDisplay() {
	e.env.Bridge.Mirror(e.edit.VarBuffer, e.edit.Link.Load(), e.edit.Field)
}

// Text returns the mirror text.
func (e *NumericEditor) Text() string { return e.edit.VarBuffer.Text() }

// LastSession returns the result of the most recent edit session.
func (e *NumericEditor) LastSession() (numedit.Result, error) {
	return e.last, e.lastErr
}

func (e *NumericEditor) runSession() {
	e.flags &^= Pressed
	e.last, e.lastErr = numedit.Run(e.env, numedit.Params{
		Name:    e.edit.Name,
		Field:   e.edit.Field,
		Link:    e.edit.Link,
		Address: e.edit.Address,
		Mirror:  e.edit.VarBuffer,
		OK:      e.ok,
		Cancel:  e.cancel,
	})
	if e.lastErr == nil && e.last.Changed {
		e.notify(nil)
	}
}

var (
	_ Widget             = (*Label)(nil)
	_ Widget             = (*Clickable)(nil)
	_ Widget             = (*NumericEditor)(nil)
	_ numedit.Button     = (*Clickable)(nil)
	_ persist.TextSetter = (*TextBuffer)(nil)
)
