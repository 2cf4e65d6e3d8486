package touch

// Reader polls a Sensor and reports edges, applying the debounce policy.
// Each polling loop owns its own Reader.
type Reader struct {
	sensor   Sensor
	debounce *Debouncer
	edges    EdgeDetector
}

// NewReader creates a reader. A nil debouncer disables debouncing.
func NewReader(s Sensor, d *Debouncer) *Reader {
	return &Reader{sensor: s, debounce: d}
}

// Next performs one scan and returns the resulting edge with the touch point.
// Samples taken inside the debounce window are dropped.
func (r *Reader) Next() (Edge, int, int, error) {
	if err := r.sensor.Scan(); err != nil {
		return EdgeNone, 0, 0, err
	}
	if r.debounce != nil && !r.debounce.Ready() {
		return EdgeNone, 0, 0, nil
	}
	e := r.edges.Update(r.sensor.Pressed())
	if e == EdgeDown && r.debounce != nil {
		r.debounce.Mark()
	}
	x, y := r.sensor.Point()
	return e, x, y, nil
}
