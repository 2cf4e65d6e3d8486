package screen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultScreen(t *testing.T) {
	f := Default()
	if f.Name != "demo" {
		t.Errorf("Name = %q, want demo", f.Name)
	}
	if f.Display.Width != 320 || f.Display.Height != 480 {
		t.Errorf("display = %dx%d, want 320x480", f.Display.Width, f.Display.Height)
	}
	if problems := Validate(f); len(problems) != 0 {
		t.Errorf("default screen has problems:\n%s", FormatValidationErrors(problems))
	}

	w, ok := f.Widget("setpoint")
	if !ok {
		t.Fatal("setpoint widget missing")
	}
	if w.Kind != KindNumeric || w.Address == nil || *w.Address != 0 {
		t.Errorf("setpoint = %+v", w)
	}
	if got := w.Field().Width(); got != 6 {
		t.Errorf("setpoint field width = %d, want 6", got)
	}
}

func TestParse(t *testing.T) {
	data := []byte(`
name: small
display: {width: 160, height: 128}
widgets:
  - {name: hello, kind: label, x: 0, y: 0, w: 160, h: 20, label: Hello}
  - {name: go, kind: button, x: 10, y: 40, w: 60, h: 30, text: GO, fg: "#FF0000"}
`)
	f, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(f.Widgets) != 2 {
		t.Fatalf("got %d widgets, want 2", len(f.Widgets))
	}
	if f.Widgets[1].FG != "#FF0000" || f.Widgets[1].Text != "GO" {
		t.Errorf("button = %+v", f.Widgets[1])
	}
	if b := f.Widgets[1].Bounds(); b.X != 10 || b.Y != 40 || b.W != 60 || b.H != 30 {
		t.Errorf("Bounds() = %v", b)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"unknown key", "name: x\ncolour: red\n"},
		{"wrong type", "display: {width: wide}\n"},
		{"not yaml", "widgets: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if err == nil {
				t.Fatal("Parse() error = nil")
			}
			if !IsParseError(err) {
				t.Errorf("IsParseError(%v) = false", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "screen.yaml")

	data, err := Default().Marshal()
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(f.Widgets) != len(Default().Widgets) {
		t.Errorf("loaded %d widgets, want %d", len(f.Widgets), len(Default().Widgets))
	}
	if w, _ := f.Widget("count"); w.Address == nil || *w.Address != 4 {
		t.Errorf("count address not preserved: %+v", w)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load() of a missing file succeeded")
	} else if !strings.Contains(err.Error(), "failed to read") {
		t.Errorf("Load() error = %v", err)
	}
}
