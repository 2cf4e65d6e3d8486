package widget

// Widget is the capability shared by every widget kind.
type Widget interface {
	// Render draws the widget. fromRelease selects the on/off text swap
	// path; varTextOnly redraws just the variable text.
	Render(fromRelease, varTextOnly bool)
	// Click feeds a new press at (x, y) and reports whether the widget is
	// pressed afterwards.
	Click(x, y int) bool
	// Release feeds the end of a press. It reports whether the widget was
	// pressed and has now run its release action.
	Release() bool
	Bounds() Rect
	Name() string
}
