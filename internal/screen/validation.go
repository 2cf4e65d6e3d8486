package screen

import (
	"fmt"
	"math"
	"strings"

	"github.com/muurk/touchgui/internal/display"
	"github.com/muurk/touchgui/internal/store"
	"github.com/muurk/touchgui/internal/widget"
)

// MaxDisplaySize bounds the display width and height.
const MaxDisplaySize = 4096

// fieldMargin is the padding the edit screen keeps around the field text.
const fieldMargin = 5

// ValidateDisplay validates the display section of a screen file.
func ValidateDisplay(d DisplaySpec) []error {
	var errors []error
	if d.Width <= 0 || d.Width > MaxDisplaySize {
		errors = append(errors, NewValidationError("", fmt.Sprintf("display width must be 1-%d, got %d", MaxDisplaySize, d.Width)))
	}
	if d.Height <= 0 || d.Height > MaxDisplaySize {
		errors = append(errors, NewValidationError("", fmt.Sprintf("display height must be 1-%d, got %d", MaxDisplaySize, d.Height)))
	}
	if d.Background != "" {
		if _, err := display.ParseColor(d.Background); err != nil {
			errors = append(errors, NewValidationError("", fmt.Sprintf("background: %v", err)))
		}
	}
	return errors
}

// ValidateColors checks every color a widget names.
func ValidateColors(w WidgetSpec) []error {
	var errors []error
	for _, c := range []struct{ key, value string }{
		{"fg", w.FG},
		{"bg", w.BG},
		{"fg_clicked", w.FGClicked},
		{"bg_on", w.BGOn},
	} {
		if c.value == "" {
			continue
		}
		if _, err := display.ParseColor(c.value); err != nil {
			errors = append(errors, NewValidationError(w.Name, fmt.Sprintf("%s: %v", c.key, err)))
		}
	}
	return errors
}

// ValidateGeometry checks that a widget lies inside the display.
func ValidateGeometry(w WidgetSpec, d DisplaySpec) error {
	if w.W <= 0 || w.H <= 0 {
		return NewGeometryError(w.Name, fmt.Sprintf("size must be positive, got %dx%d", w.W, w.H))
	}
	if w.X < 0 || w.Y < 0 {
		return NewGeometryError(w.Name, fmt.Sprintf("position must not be negative, got (%d,%d)", w.X, w.Y))
	}
	if w.X+w.W > d.Width || w.Y+w.H > d.Height {
		return NewGeometryError(w.Name, fmt.Sprintf("%s does not fit a %dx%d display", w.Bounds(), d.Width, d.Height))
	}
	return nil
}

// ValidateText checks label and variable text lengths and whether the text
// fits the widget at its font size.
func ValidateText(w WidgetSpec) []error {
	var errors []error
	if w.FontSize < 0 {
		errors = append(errors, NewValidationError(w.Name, fmt.Sprintf("font size must not be negative, got %d", w.FontSize)))
	}
	if w.Offset < 0 {
		errors = append(errors, NewValidationError(w.Name, fmt.Sprintf("offset must not be negative, got %d", w.Offset)))
	}
	for _, t := range []struct{ key, value string }{
		{"label", w.Label},
		{"text", w.Text},
		{"on_text", w.OnText},
	} {
		if len(t.value) > widget.MaxLabelLen {
			errors = append(errors, NewValidationError(w.Name,
				fmt.Sprintf("%s longer than %d characters (%d)", t.key, widget.MaxLabelLen, len(t.value))))
		}
	}

	f := w.FontSize
	if f < 1 {
		f = 1
	}
	chars := len(w.Label)
	variable := max(len(w.Text), len(w.OnText))
	if w.Kind == KindNumeric && w.Field().Validate() == nil {
		variable = w.Field().Width()
	}
	need := display.TextWidth(chars+variable, f)
	if chars > 0 && variable > 0 {
		need += w.Offset
	}
	if w.W > 0 && need > w.W {
		errors = append(errors, NewValidationError(w.Name,
			fmt.Sprintf("warning: text needs %d pixels but the widget is %d wide", need, w.W)))
	}
	if w.H > 0 && display.TextHeight(f) > w.H {
		errors = append(errors, NewValidationError(w.Name,
			fmt.Sprintf("warning: font size %d is taller than the widget", f)))
	}
	return errors
}

// ValidateKindFields checks that a widget only uses the fields of its kind.
func ValidateKindFields(w WidgetSpec) []error {
	var errors []error
	switch w.Kind {
	case KindLabel:
		if w.Text != "" || w.OnText != "" || w.Action != "" || w.EditOnly {
			errors = append(errors, NewValidationError(w.Name, "warning: labels ignore text, on_text, action and edit_only"))
		}
	case KindButton:
		if w.OnText != "" || w.On {
			errors = append(errors, NewValidationError(w.Name, "on_text and on need kind toggle"))
		}
		if w.EditOnly && w.Action != "" {
			errors = append(errors, NewValidationError(w.Name, "warning: edit-only buttons do not run actions"))
		}
	case KindToggle:
		if w.EditOnly {
			errors = append(errors, NewValidationError(w.Name, "only buttons can be edit_only"))
		}
	case KindNumeric:
		if w.Text != "" || w.OnText != "" || w.On {
			errors = append(errors, NewValidationError(w.Name, "numeric widgets show their value and have no text, on_text or on"))
		}
		if w.EditOnly {
			errors = append(errors, NewValidationError(w.Name, "only buttons can be edit_only"))
		}
		errors = append(errors, ValidateNumeric(w)...)
	case "":
		errors = append(errors, NewValidationError(w.Name, "kind is required"))
	default:
		errors = append(errors, NewValidationError(w.Name,
			fmt.Sprintf("unknown kind %q (want label, button, toggle or numeric)", w.Kind)))
	}
	if w.Kind != KindNumeric && (w.Digits != 0 || w.Decimals != 0 || w.Address != nil || w.OK != "" || w.Cancel != "") {
		errors = append(errors, NewValidationError(w.Name, "warning: numeric fields ignored on a non-numeric widget"))
	}
	return errors
}

// ValidateNumeric checks the field shape, store address and initial value
// of a numeric widget.
func ValidateNumeric(w WidgetSpec) []error {
	var errors []error
	field := w.Field()
	if err := field.Validate(); err != nil {
		errors = append(errors, NewValidationError(w.Name, err.Error()))
		return errors
	}
	if w.Address == nil {
		errors = append(errors, NewValidationError(w.Name, "address is required"))
	} else if err := ValidateAddress(*w.Address); err != nil {
		errors = append(errors, NewValidationError(w.Name, err.Error()))
	}
	if w.Value < 0 && !w.Signed {
		errors = append(errors, NewValidationError(w.Name, fmt.Sprintf("negative value %g in an unsigned field", w.Value)))
	}
	if math.Abs(w.Value) >= math.Pow10(w.Digits) {
		errors = append(errors, NewValidationError(w.Name,
			fmt.Sprintf("value %g does not fit %d integer digits", w.Value, w.Digits)))
	}
	if w.OK == "" || w.Cancel == "" {
		errors = append(errors, NewReferenceError(w.Name, "ok and cancel buttons are required"))
	}
	return errors
}

// ValidateAddress checks a store address.
// Valid addresses are cell aligned and leave room for a whole cell.
func ValidateAddress(addr int) error {
	if addr < 0 || addr > math.MaxUint16-store.CellSize+1 {
		return fmt.Errorf("address must be 0-%d, got %d", math.MaxUint16-store.CellSize+1, addr)
	}
	if addr%store.CellSize != 0 {
		return fmt.Errorf("address %d is not a multiple of %d", addr, store.CellSize)
	}
	return nil
}

// ValidateFieldFits checks that a numeric field can be drawn on the edit
// screen at the smallest font size.
func ValidateFieldFits(w WidgetSpec, d DisplaySpec) error {
	field := w.Field()
	if field.Validate() != nil {
		return nil
	}
	need := display.TextWidth(field.Width(), 1) + 2*fieldMargin
	if need > d.Width {
		return NewGeometryError(w.Name, fmt.Sprintf("field %s needs %d pixels, display is %d wide", field, need, d.Width))
	}
	return nil
}

// ValidateReferences checks names that widgets refer to: unique widget
// names, unique store addresses and OK/Cancel buttons.
func ValidateReferences(f *File) []error {
	var errors []error

	names := make(map[string]int, len(f.Widgets))
	for _, w := range f.Widgets {
		if w.Name == "" {
			errors = append(errors, NewValidationError("", fmt.Sprintf("%s widget at (%d,%d) has no name", w.Kind, w.X, w.Y)))
			continue
		}
		names[w.Name]++
		if names[w.Name] == 2 {
			errors = append(errors, NewReferenceError(w.Name, "duplicate widget name"))
		}
	}

	addresses := make(map[int]string)
	referenced := make(map[string]bool)
	for _, w := range f.Widgets {
		if w.Kind != KindNumeric {
			continue
		}
		if w.Address != nil {
			if other, ok := addresses[*w.Address]; ok {
				errors = append(errors, NewReferenceError(w.Name, fmt.Sprintf("address %d already used by %q", *w.Address, other)))
			} else {
				addresses[*w.Address] = w.Name
			}
		}
		for _, ref := range []struct{ key, name string }{{"ok", w.OK}, {"cancel", w.Cancel}} {
			if ref.name == "" {
				continue
			}
			referenced[ref.name] = true
			target, ok := f.Widget(ref.name)
			switch {
			case !ok:
				errors = append(errors, NewReferenceError(w.Name, fmt.Sprintf("%s button %q does not exist", ref.key, ref.name)))
			case target.Kind != KindButton || !target.EditOnly:
				errors = append(errors, NewReferenceError(w.Name, fmt.Sprintf("%s button %q must be an edit_only button", ref.key, ref.name)))
			}
		}
		if w.OK != "" && w.OK == w.Cancel {
			errors = append(errors, NewReferenceError(w.Name, "ok and cancel must be different buttons"))
		}
	}

	for _, w := range f.Widgets {
		if w.EditOnly && w.Kind == KindButton && !referenced[w.Name] {
			errors = append(errors, NewValidationError(w.Name, "warning: edit-only button is not used by any numeric widget"))
		}
	}
	return errors
}

// CheckOverlaps warns about clickable widgets that share pixels on the main
// screen; a touch there reaches both.
func CheckOverlaps(f *File) []error {
	var warnings []error
	var clickables []WidgetSpec
	for _, w := range f.Widgets {
		if w.Clickable() && !w.EditOnly {
			clickables = append(clickables, w)
		}
	}
	for i := 0; i < len(clickables); i++ {
		for j := i + 1; j < len(clickables); j++ {
			a, b := clickables[i], clickables[j]
			if a.X < b.X+b.W && b.X < a.X+a.W && a.Y < b.Y+b.H && b.Y < a.Y+a.H {
				warnings = append(warnings, NewGeometryError(a.Name, fmt.Sprintf("warning: overlaps %q", b.Name)))
			}
		}
	}
	return warnings
}

// Validate validates a complete screen file.
// This is the main validation entry point; it returns every problem found,
// warnings included (empty if valid).
func Validate(f *File) []error {
	var allErrors []error

	allErrors = append(allErrors, ValidateDisplay(f.Display)...)
	if len(f.Widgets) == 0 {
		allErrors = append(allErrors, NewValidationError("", "warning: screen has no widgets"))
	}

	for _, w := range f.Widgets {
		if err := ValidateGeometry(w, f.Display); err != nil {
			allErrors = append(allErrors, err)
		}
		allErrors = append(allErrors, ValidateColors(w)...)
		allErrors = append(allErrors, ValidateText(w)...)
		allErrors = append(allErrors, ValidateKindFields(w)...)
		if w.Kind == KindNumeric {
			if err := ValidateFieldFits(w, f.Display); err != nil {
				allErrors = append(allErrors, err)
			}
		}
	}

	allErrors = append(allErrors, ValidateReferences(f)...)
	allErrors = append(allErrors, CheckOverlaps(f)...)
	return allErrors
}

// ValidateActions checks that every action a screen names is registered.
func ValidateActions(f *File, actions Actions) []error {
	var errors []error
	for _, w := range f.Widgets {
		if w.Action == "" || !w.Clickable() || w.EditOnly {
			continue
		}
		if _, ok := actions[w.Action]; !ok {
			errors = append(errors, NewReferenceError(w.Name, fmt.Sprintf("unknown action %q", w.Action)))
		}
	}
	return errors
}

// FormatValidationErrors formats a slice of validation errors into a user-friendly message.
func FormatValidationErrors(errors []error) string {
	if len(errors) == 0 {
		return "No validation errors"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Screen validation failed with %d error(s):\n", len(errors)))
	for i, err := range errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// IsWarning checks if a validation error is a warning (non-fatal).
// Warnings have error messages starting with "warning:".
func IsWarning(err error) bool {
	if se, ok := err.(*ScreenError); ok {
		return strings.HasPrefix(se.Message, "warning:")
	}
	return strings.Contains(err.Error(), "warning:")
}

// SeparateWarningsAndErrors separates validation errors into warnings and errors.
func SeparateWarningsAndErrors(errors []error) (warnings []error, criticalErrors []error) {
	for _, err := range errors {
		if IsWarning(err) {
			warnings = append(warnings, err)
		} else {
			criticalErrors = append(criticalErrors, err)
		}
	}
	return warnings, criticalErrors
}
