package widget

import (
	"fmt"
	"sync"
)

// Handle addresses a descriptor in a Registry.
type Handle int

// Kind identifies the descriptor type behind a handle.
type Kind int

const (
	KindInvalid Kind = iota
	KindLabel
	KindClickable
	KindEditor
)

func (k Kind) String() string {
	switch k {
	case KindLabel:
		return "label"
	case KindClickable:
		return "clickable"
	case KindEditor:
		return "editor"
	default:
		return "invalid"
	}
}

type entry struct {
	kind      Kind
	label     Descriptor
	clickable ClickableDescriptor
	edit      EditDescriptor
}

// Registry owns widget descriptors for the life of the process. Descriptors
// are validated when added and never change afterwards.
type Registry struct {
	mu      sync.RWMutex
	entries []entry
	names   map[string]Handle
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{names: make(map[string]Handle)}
}

func (r *Registry) add(name string, e entry) (Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if name != "" {
		if _, dup := r.names[name]; dup {
			return 0, fmt.Errorf("widget %q already registered", name)
		}
	}
	h := Handle(len(r.entries))
	r.entries = append(r.entries, e)
	if name != "" {
		r.names[name] = h
	}
	return h, nil
}

// AddLabel registers a label descriptor.
func (r *Registry) AddLabel(d Descriptor) (Handle, error) {
	if err := d.validate(); err != nil {
		return 0, err
	}
	return r.add(d.Name, entry{kind: KindLabel, label: d})
}

// AddClickable registers a clickable descriptor.
func (r *Registry) AddClickable(d ClickableDescriptor) (Handle, error) {
	if err := d.validate(); err != nil {
		return 0, err
	}
	return r.add(d.Name, entry{kind: KindClickable, clickable: d})
}

// AddEditor registers an editor descriptor.
func (r *Registry) AddEditor(d EditDescriptor) (Handle, error) {
	if err := d.validate(); err != nil {
		return 0, err
	}
	return r.add(d.Name, entry{kind: KindEditor, edit: d})
}

func (r *Registry) get(h Handle) (entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if h < 0 || int(h) >= len(r.entries) {
		return entry{}, false
	}
	return r.entries[h], true
}

// Kind returns the kind of descriptor behind h.
func (r *Registry) Kind(h Handle) Kind {
	e, ok := r.get(h)
	if !ok {
		return KindInvalid
	}
	return e.kind
}

// Lookup returns the handle registered under name.
func (r *Registry) Lookup(name string) (Handle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.names[name]
	return h, ok
}

// Len returns the number of registered descriptors.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Label returns a copy of the base descriptor behind h, whatever its kind.
func (r *Registry) Label(h Handle) (Descriptor, bool) {
	e, ok := r.get(h)
	switch {
	case !ok:
		return Descriptor{}, false
	case e.kind == KindClickable:
		return e.clickable.Descriptor, true
	case e.kind == KindEditor:
		return e.edit.Descriptor, true
	default:
		return e.label, true
	}
}

// Clickable returns a copy of the clickable descriptor behind h. Editor
// handles yield their clickable part.
func (r *Registry) Clickable(h Handle) (ClickableDescriptor, bool) {
	e, ok := r.get(h)
	switch {
	case !ok:
		return ClickableDescriptor{}, false
	case e.kind == KindClickable:
		return e.clickable, true
	case e.kind == KindEditor:
		return e.edit.ClickableDescriptor, true
	default:
		return ClickableDescriptor{}, false
	}
}

// Editor returns a copy of the editor descriptor behind h.
func (r *Registry) Editor(h Handle) (EditDescriptor, bool) {
	e, ok := r.get(h)
	if !ok || e.kind != KindEditor {
		return EditDescriptor{}, false
	}
	return e.edit, true
}
