// Package scroll decides, per feed, whether the viewport should follow newly
// appended entries or hold position because the user scrolled away to read.
package scroll

// DefaultThreshold is how many lines from the tail still count as "at the tail".
const DefaultThreshold = 2

// Mode is the tracker's current intent.
type Mode int

const (
	// Following keeps the newest entry in view.
	Following Mode = iota
	// Reading holds the user's position while entries arrive.
	Reading
)

func (m Mode) String() string {
	if m == Reading {
		return "reading"
	}
	return "following"
}

// Geometry is a snapshot of a viewport's scroll position, in lines.
type Geometry struct {
	Offset         int // first visible line
	ContentHeight  int // total lines of content
	ViewportHeight int // visible lines
}

// MaxOffset is the offset at which the last line is at the bottom edge.
func (g Geometry) MaxOffset() int {
	return max(0, g.ContentHeight-g.ViewportHeight)
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithThreshold sets the near-tail zone in lines. Negative values are treated
// as zero.
func WithThreshold(lines int) Option {
	return func(t *Tracker) {
		t.threshold = max(0, lines)
	}
}

// WithReversed anchors the tail at offset zero, for feeds that render newest
// first. Any offset away from the anchor counts as reading.
func WithReversed() Option {
	return func(t *Tracker) {
		t.reversed = true
		t.threshold = 0
	}
}

// Tracker is the per-feed scroll intent state machine. It starts Following.
// It is driven from the UI update loop and is not safe for concurrent use.
type Tracker struct {
	threshold    int
	reversed     bool
	mode         Mode
	programmatic bool
	last         Geometry
}

// New creates a tracker in Following mode.
func New(opts ...Option) *Tracker {
	t := &Tracker{threshold: DefaultThreshold}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Mode returns the current mode.
func (t *Tracker) Mode() Mode { return t.mode }

// Following reports whether auto-follow is on.
func (t *Tracker) Following() bool { return t.mode == Following }

// Threshold returns the near-tail zone size in lines.
func (t *Tracker) Threshold() int { return t.threshold }

// Last returns the most recently observed geometry.
func (t *Tracker) Last() Geometry { return t.last }

// distance is how many lines the viewport sits away from the tail.
func (t *Tracker) distance(g Geometry) int {
	if t.reversed {
		return max(0, g.Offset)
	}
	return max(0, g.MaxOffset()-g.Offset)
}

// NearTail reports whether g is inside the near-tail zone.
func (t *Tracker) NearTail(g Geometry) bool {
	return t.distance(g) <= t.threshold
}

// Observe records a user-initiated scroll. Leaving the near-tail zone switches
// to Reading; coming back switches to Following. Calls made from inside
// Programmatic are the tracker's own moves and are ignored.
func (t *Tracker) Observe(g Geometry) {
	if t.programmatic {
		return
	}
	t.last = g
	if t.NearTail(g) {
		t.mode = Following
	} else {
		t.mode = Reading
	}
}

// ContentChanged records new content and reports whether the owner should
// reveal the tail. It never changes the mode.
func (t *Tracker) ContentChanged(g Geometry) bool {
	t.last = g
	return t.mode == Following
}

// Programmatic runs fn, a scroll the owner performs on the tracker's behalf,
// with user observation suspended.
func (t *Tracker) Programmatic(fn func()) {
	if t.programmatic {
		fn()
		return
	}
	t.programmatic = true
	defer func() { t.programmatic = false }()
	fn()
}

// Follow forces Following, e.g. when the user jumps to the end explicitly.
func (t *Tracker) Follow() {
	t.mode = Following
}

// Reset returns the tracker to its initial state, keeping its options.
func (t *Tracker) Reset() {
	t.mode = Following
	t.programmatic = false
	t.last = Geometry{}
}
