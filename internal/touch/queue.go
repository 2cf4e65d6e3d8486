package touch

import (
	"sync"
	"time"
)

// DefaultPollInterval bounds how long Queue.Scan waits for an event.
const DefaultPollInterval = 20 * time.Millisecond

// Queue is a Sensor fed from other goroutines. Press and Release may be
// called concurrently with the polling loop; Scan applies at most one event
// per call so that a quick tap still yields a down sample and an up sample.
type Queue struct {
	events chan Event
	poll   time.Duration

	mu     sync.Mutex
	closed bool
	done   chan struct{}

	pressed bool
	x, y    int
}

// NewQueue creates a queue with the given poll interval (zero means
// DefaultPollInterval).
func NewQueue(poll time.Duration) *Queue {
	if poll <= 0 {
		poll = DefaultPollInterval
	}
	return &Queue{
		events: make(chan Event, 64),
		poll:   poll,
		done:   make(chan struct{}),
	}
}

// Press queues a touch at (x, y).
func (q *Queue) Press(x, y int) { q.send(Event{Down: true, X: x, Y: y}) }

// Release queues the end of the current touch.
func (q *Queue) Release() { q.send(Event{}) }

// Send queues an arbitrary event. Events sent after Close are dropped.
func (q *Queue) Send(ev Event) { q.send(ev) }

func (q *Queue) send(ev Event) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	select {
	case q.events <- ev:
	default:
		// full; the polling loop is stuck or gone
	}
}

// Close makes subsequent Scan calls return ErrClosed.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	close(q.done)
}

func (q *Queue) Scan() error {
	timer := time.NewTimer(q.poll)
	defer timer.Stop()

	select {
	case <-q.done:
		return ErrClosed
	case ev := <-q.events:
		q.pressed = ev.Down
		if ev.Down {
			q.x, q.y = ev.X, ev.Y
		}
	case <-timer.C:
	}
	return nil
}

func (q *Queue) Pressed() bool     { return q.pressed }
func (q *Queue) Point() (int, int) { return q.x, q.y }
