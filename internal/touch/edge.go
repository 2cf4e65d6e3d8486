package touch

// Edge is a press or release transition.
type Edge int

const (
	EdgeNone Edge = iota
	EdgeDown
	EdgeUp
)

func (e Edge) String() string {
	switch e {
	case EdgeDown:
		return "down"
	case EdgeUp:
		return "up"
	default:
		return "none"
	}
}

// EdgeDetector reports each physical press once and each release once, no
// matter how many samples see the same state.
type EdgeDetector struct {
	acted bool
}

// Update feeds one sample and returns the transition it caused.
func (d *EdgeDetector) Update(pressed bool) Edge {
	switch {
	case pressed && !d.acted:
		d.acted = true
		return EdgeDown
	case !pressed && d.acted:
		d.acted = false
		return EdgeUp
	default:
		return EdgeNone
	}
}

// Held reports whether a press has been acted on and not yet released.
func (d *EdgeDetector) Held() bool { return d.acted }
