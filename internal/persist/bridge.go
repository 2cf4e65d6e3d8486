// Package persist connects edited values to the persistent store and keeps
// the text mirrors that widgets display.
package persist

import (
	"github.com/muurk/touchgui/internal/fixedpoint"
	"github.com/muurk/touchgui/internal/logging"
	"github.com/muurk/touchgui/internal/store"
	"go.uber.org/zap"
)

// TextSetter receives mirror text.
type TextSetter interface {
	SetText(s string)
}

// Bridge writes accepted values through to a store. A Bridge with a nil
// store still maintains mirrors but persists nothing.
type Bridge struct {
	store store.Store
}

// NewBridge returns a bridge over s.
func NewBridge(s store.Store) *Bridge {
	return &Bridge{store: s}
}

// Store returns the underlying store, which may be nil.
func (b *Bridge) Store() store.Store { return b.store }

// Commit writes n at addr. Writes are fire-and-forget: a failure is logged
// and otherwise ignored.
func (b *Bridge) Commit(addr uint16, n fixedpoint.Number) {
	if b == nil || b.store == nil {
		return
	}
	cell := n.Cell()
	err := b.store.Put(addr, cell)
	logging.LogStoreWrite(addr, cell[:], err)
}

// Mirror formats n into dst as fixed-point text no longer than the field.
func (b *Bridge) Mirror(dst TextSetter, n fixedpoint.Number, field fixedpoint.Field) {
	if dst == nil {
		return
	}
	text := fixedpoint.FormatText(n, field.Decimals)
	if w := field.Width(); len(text) > w {
		text = text[len(text)-w:]
	}
	dst.SetText(text)
}

// Restore loads the value stored at addr into link. It reports whether a
// value was found; read errors are logged and treated as not found.
func (b *Bridge) Restore(addr uint16, link fixedpoint.Link) bool {
	if b == nil || b.store == nil || !link.Valid() {
		return false
	}
	cell, ok, err := b.store.Get(addr)
	if err != nil {
		logging.Warn("Failed to restore stored value",
			zap.Uint16("address", addr),
			zap.Error(err),
		)
		return false
	}
	if !ok {
		return false
	}
	n := fixedpoint.FromCell(cell, link.IsFloat())
	link.Store(n)
	logging.Debug("Restored stored value",
		zap.Uint16("address", addr),
		zap.Stringer("value", n),
	)
	return true
}
