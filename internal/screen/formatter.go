package screen

import (
	"fmt"
	"strings"
)

// Summary returns a one-line summary of the screen file
func (f *File) Summary() string {
	counts := f.kindCounts()
	return fmt.Sprintf("Screen %s %dx%d: %d widget(s) (%d numeric, %d button, %d toggle, %d label)",
		f.Name, f.Display.Width, f.Display.Height, len(f.Widgets),
		counts[KindNumeric], counts[KindButton], counts[KindToggle], counts[KindLabel])
}

func (f *File) kindCounts() map[string]int {
	counts := make(map[string]int)
	for _, w := range f.Widgets {
		counts[w.Kind]++
	}
	return counts
}

// FormatCompact returns a compact multi-line format suitable for terminal display
func (f *File) FormatCompact() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Screen:  %s (%dx%d)\n", f.Name, f.Display.Width, f.Display.Height))
	for _, w := range f.Widgets {
		b.WriteString(fmt.Sprintf("  %-8s %-12s %s%s\n", w.Kind, w.Name, w.Bounds(), compactDetail(w)))
	}
	return b.String()
}

func compactDetail(w WidgetSpec) string {
	switch w.Kind {
	case KindNumeric:
		addr := "-"
		if w.Address != nil {
			addr = fmt.Sprintf("%d", *w.Address)
		}
		return fmt.Sprintf(" field=%s addr=%s", w.Field(), addr)
	case KindToggle:
		return fmt.Sprintf(" %q/%q on=%v", w.Text, w.OnText, w.On)
	case KindButton:
		if w.EditOnly {
			return fmt.Sprintf(" %q (edit screen)", w.Text)
		}
		return fmt.Sprintf(" %q", w.Text)
	default:
		return fmt.Sprintf(" %q", w.Label)
	}
}

// FormatDisplay returns the display section
func (f *File) FormatDisplay() string {
	var b strings.Builder

	orientation := "landscape"
	if f.Display.Width < f.Display.Height {
		orientation = "portrait"
	}
	background := f.Display.Background
	if background == "" {
		background = "black (default)"
	}

	b.WriteString("=== Display ===\n")
	b.WriteString(fmt.Sprintf("Size:        %dx%d (%s)\n", f.Display.Width, f.Display.Height, orientation))
	b.WriteString(fmt.Sprintf("Background:  %s\n", background))
	return b.String()
}

// FormatWidget returns the detailed description of one widget
func FormatWidget(w WidgetSpec) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("--- %s (%s) ---\n", w.Name, w.Kind))
	b.WriteString(fmt.Sprintf("Bounds:      %s\n", w.Bounds()))
	b.WriteString(fmt.Sprintf("Colors:      fg=%s bg=%s\n", orDefault(w.FG), orDefault(w.BG)))
	b.WriteString(fmt.Sprintf("Font size:   %d\n", max(w.FontSize, 1)))
	if w.Label != "" {
		b.WriteString(fmt.Sprintf("Label:       %q\n", w.Label))
	}

	switch w.Kind {
	case KindButton, KindToggle:
		b.WriteString(fmt.Sprintf("Text:        %q\n", w.Text))
		if w.Kind == KindToggle {
			b.WriteString(fmt.Sprintf("On text:     %q\n", w.OnText))
			b.WriteString(fmt.Sprintf("Initially:   %s\n", onOff(w.On)))
			b.WriteString(fmt.Sprintf("On color:    %v (bg_on=%s)\n", w.ColorOn, orDefault(w.BGOn)))
		}
		if w.EditOnly {
			b.WriteString("Edit screen: yes\n")
		}
	case KindNumeric:
		b.WriteString(fmt.Sprintf("Field:       %s (width %d)\n", w.Field(), w.Field().Width()))
		if w.Address != nil {
			b.WriteString(fmt.Sprintf("Address:     %d\n", *w.Address))
		}
		b.WriteString(fmt.Sprintf("Initial:     %g\n", w.Value))
		b.WriteString(fmt.Sprintf("Buttons:     ok=%s cancel=%s\n", w.OK, w.Cancel))
	}
	if w.Action != "" {
		arg := ""
		if w.Arg != "" {
			arg = fmt.Sprintf(" (arg %q)", w.Arg)
		}
		b.WriteString(fmt.Sprintf("Action:      %s%s\n", w.Action, arg))
	}
	return b.String()
}

// FormatDetailed returns a comprehensive formatted string with all screen details
func (f *File) FormatDetailed() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("╔════════════════════════════════════════════════════════════════╗\n")
	b.WriteString(fmt.Sprintf("║  SCREEN %-55s║\n", strings.ToUpper(f.Name)))
	b.WriteString("╚════════════════════════════════════════════════════════════════╝\n")
	b.WriteString("\n")

	b.WriteString(f.FormatDisplay())
	b.WriteString("\n")
	b.WriteString("=== Widgets ===\n")
	if len(f.Widgets) == 0 {
		b.WriteString("(none)\n")
	}
	for _, w := range f.Widgets {
		b.WriteString(FormatWidget(w))
		b.WriteString("\n")
	}
	return b.String()
}

func orDefault(s string) string {
	if s == "" {
		return "default"
	}
	return s
}

func onOff(on bool) string {
	if on {
		return "ON"
	}
	return "OFF"
}
