package touch

import "errors"

// ErrClosed is returned by Scan once the touch source has gone away.
var ErrClosed = errors.New("touch sensor closed")

// Sensor is the touch driver contract.
type Sensor interface {
	// Scan samples the sensor. It may block briefly waiting for input.
	Scan() error
	// Pressed reports whether the last sample saw a touch.
	Pressed() bool
	// Point returns the coordinates of the last touch.
	Point() (x, y int)
}

// Event is one press or release delivered to a Queue.
type Event struct {
	Down bool
	X, Y int
}
