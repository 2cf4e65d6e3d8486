package touch

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// DefaultStep is the time a Script advances per scan.
const DefaultStep = 250 * time.Millisecond

// Frame is one scripted sensor sample.
type Frame struct {
	Down bool
	X, Y int
}

// Script replays frames, one per Scan, and acts as the Clock for the
// debounce policy. It returns ErrClosed once the frames run out.
type Script struct {
	Frames []Frame
	Step   time.Duration

	pos int
	cur Frame
	now time.Time
}

// NewScript returns a script starting at a fixed epoch.
func NewScript(frames ...Frame) *Script {
	return &Script{
		Frames: frames,
		Step:   DefaultStep,
		now:    time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// Tap returns a press at (x, y) followed by a release.
func Tap(x, y int) []Frame {
	return []Frame{{Down: true, X: x, Y: y}, {X: x, Y: y}}
}

// Taps concatenates taps at each point.
func Taps(points ...[2]int) []Frame {
	var out []Frame
	for _, p := range points {
		out = append(out, Tap(p[0], p[1])...)
	}
	return out
}

func (s *Script) Scan() error {
	if s.pos >= len(s.Frames) {
		return ErrClosed
	}
	s.cur = s.Frames[s.pos]
	s.pos++
	s.now = s.now.Add(s.Step)
	return nil
}

func (s *Script) Pressed() bool     { return s.cur.Down }
func (s *Script) Point() (int, int) { return s.cur.X, s.cur.Y }

// Now returns the scripted time.
func (s *Script) Now() time.Time { return s.now }

// Remaining returns the number of frames not yet scanned.
func (s *Script) Remaining() int { return len(s.Frames) - s.pos }

// ParseScript reads a touch script. Each non-empty line is one of
//
//	down X Y    press at X,Y
//	up          release at the last point
//	tap X Y     press then release
//	hold N      repeat the previous frame N more times
//
// Text after '#' is ignored.
func ParseScript(r io.Reader) ([]Frame, error) {
	var frames []Frame
	var last Frame
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		switch strings.ToLower(fields[0]) {
		case "down", "tap":
			if len(fields) != 3 {
				return nil, fmt.Errorf("line %d: %s needs X and Y", line, fields[0])
			}
			x, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid X: %w", line, err)
			}
			y, err := strconv.Atoi(fields[2])
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid Y: %w", line, err)
			}
			last = Frame{Down: true, X: x, Y: y}
			frames = append(frames, last)
			if strings.EqualFold(fields[0], "tap") {
				last.Down = false
				frames = append(frames, last)
			}
		case "up":
			last.Down = false
			frames = append(frames, last)
		case "hold":
			if len(fields) != 2 {
				return nil, fmt.Errorf("line %d: hold needs a count", line)
			}
			n, err := strconv.Atoi(fields[1])
			if err != nil || n < 0 {
				return nil, fmt.Errorf("line %d: invalid hold count %q", line, fields[1])
			}
			for i := 0; i < n; i++ {
				frames = append(frames, last)
			}
		default:
			return nil, fmt.Errorf("line %d: unknown command %q", line, fields[0])
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return frames, nil
}
