package screen

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/muurk/touchgui/internal/fixedpoint"
	"github.com/muurk/touchgui/internal/widget"
	"gopkg.in/yaml.v3"
)

// Widget kinds
const (
	KindLabel   = "label"
	KindButton  = "button"
	KindToggle  = "toggle"
	KindNumeric = "numeric"
)

// File is a screen definition as stored on disk
type File struct {
	Name    string       `yaml:"name"`
	Display DisplaySpec  `yaml:"display"`
	Widgets []WidgetSpec `yaml:"widgets"`
}

// DisplaySpec is the panel the screen was laid out for
type DisplaySpec struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Background string `yaml:"background,omitempty"` // defaults to black
}

// WidgetSpec describes one widget. Which fields apply depends on Kind.
type WidgetSpec struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind"`

	X int `yaml:"x"`
	Y int `yaml:"y"`
	W int `yaml:"w"`
	H int `yaml:"h"`

	FG          string `yaml:"fg,omitempty"`
	BG          string `yaml:"bg,omitempty"`
	FontSize    int    `yaml:"font_size,omitempty"`
	Transparent bool   `yaml:"transparent,omitempty"`
	Label       string `yaml:"label,omitempty"`

	// button, toggle
	Text      string `yaml:"text,omitempty"`
	OnText    string `yaml:"on_text,omitempty"`
	Offset    int    `yaml:"offset,omitempty"`
	FGClicked string `yaml:"fg_clicked,omitempty"`
	BGOn      string `yaml:"bg_on,omitempty"`
	ColorOn   bool   `yaml:"color_on,omitempty"`
	On        bool   `yaml:"on,omitempty"`
	Action    string `yaml:"action,omitempty"`
	Arg       string `yaml:"arg,omitempty"`

	// EditOnly buttons are drawn on the edit screen only, as OK or Cancel.
	EditOnly bool `yaml:"edit_only,omitempty"`

	// numeric
	Digits   int     `yaml:"digits,omitempty"`
	Decimals int     `yaml:"decimals,omitempty"`
	Signed   bool    `yaml:"signed,omitempty"`
	Address  *int    `yaml:"address,omitempty"`
	Value    float64 `yaml:"value,omitempty"`
	OK       string  `yaml:"ok,omitempty"`
	Cancel   string  `yaml:"cancel,omitempty"`
}

// Bounds returns the widget rectangle
func (w WidgetSpec) Bounds() widget.Rect {
	return widget.Rect{X: w.X, Y: w.Y, W: w.W, H: w.H}
}

// Field returns the numeric field shape
func (w WidgetSpec) Field() fixedpoint.Field {
	return fixedpoint.Field{IntDigits: w.Digits, Decimals: w.Decimals, Signed: w.Signed}
}

// Clickable reports whether the widget responds to touches
func (w WidgetSpec) Clickable() bool {
	return w.Kind == KindButton || w.Kind == KindToggle || w.Kind == KindNumeric
}

//go:embed default.yaml
var defaultScreen []byte

// Parse decodes a screen file. Unknown keys are rejected so that typos do
// not silently fall back to defaults.
func Parse(data []byte) (*File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, NewParseError("screen file is empty", err)
		}
		return nil, NewParseError("invalid screen YAML", err)
	}
	return &f, nil
}

// Load reads and parses the screen file at path
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read screen file: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Default returns the built-in demo screen
func Default() *File {
	f, err := Parse(defaultScreen)
	if err != nil {
		panic(fmt.Sprintf("embedded default screen: %v", err))
	}
	return f
}

// Marshal encodes the screen file as YAML
func (f *File) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return nil, fmt.Errorf("failed to marshal screen: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to marshal screen: %w", err)
	}
	return buf.Bytes(), nil
}

// Widget returns the widget spec with the given name
func (f *File) Widget(name string) (WidgetSpec, bool) {
	for _, w := range f.Widgets {
		if w.Name == name {
			return w, true
		}
	}
	return WidgetSpec{}, false
}
