package screen

import (
	"strings"
	"testing"
)

func TestSummary(t *testing.T) {
	got := Default().Summary()
	want := "Screen demo 320x480: 7 widget(s) (2 numeric, 3 button, 1 toggle, 1 label)"
	if got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
}

func TestFormatCompact(t *testing.T) {
	got := Default().FormatCompact()
	for _, want := range []string{
		"Screen:  demo (320x480)",
		"field=3.1 signed addr=0",
		"field=4.0 unsigned addr=4",
		`"OFF"/"ON" on=false`,
		`"OK" (edit screen)`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("FormatCompact() missing %q:\n%s", want, got)
		}
	}
}

func TestFormatDetailed(t *testing.T) {
	got := Default().FormatDetailed()
	for _, want := range []string{
		"SCREEN DEMO",
		"=== Display ===",
		"Size:        320x480 (portrait)",
		"=== Widgets ===",
		"--- pump (toggle) ---",
		"Initially:   OFF",
		"Address:     4",
		"Buttons:     ok=ok cancel=cancel",
		`Action:      log (arg "reset")`,
		"Edit screen: yes",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("FormatDetailed() missing %q", want)
		}
	}
}

func TestFormatDetailedEmpty(t *testing.T) {
	f := &File{Name: "blank", Display: DisplaySpec{Width: 480, Height: 320}}
	got := f.FormatDetailed()
	if !strings.Contains(got, "(landscape)") || !strings.Contains(got, "(none)") {
		t.Errorf("FormatDetailed() = %s", got)
	}
	if !strings.Contains(got, "black (default)") {
		t.Error("default background not shown")
	}
}
