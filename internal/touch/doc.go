// Package touch defines the touch sensor contract and the input policies
// layered on top of it.
//
// A Sensor is polled: Scan samples the hardware, Pressed and Point report the
// sample. Reader turns raw samples into press and release edges, acting once
// per physical press, and applies a Debouncer so that sensor chatter after a
// processed press is ignored for a fixed interval measured on a Clock.
//
// Queue feeds a sensor from another goroutine (terminal simulator, remote
// panel). Script replays a fixed sequence of frames and doubles as a fake
// clock, which keeps tests free of real time.
package touch
