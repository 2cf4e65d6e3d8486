package widget

import "sync"

// TextBuffer is mutable variable text, such as the mirror of an editor's
// linked value.
type TextBuffer struct {
	mu   sync.RWMutex
	text string
}

// NewTextBuffer returns a buffer holding s.
func NewTextBuffer(s string) *TextBuffer {
	return &TextBuffer{text: s}
}

func (b *TextBuffer) SetText(s string) {
	b.mu.Lock()
	b.text = s
	b.mu.Unlock()
}

func (b *TextBuffer) Text() string {
	if b == nil {
		return ""
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text
}
