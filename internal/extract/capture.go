package extract

// CaptureState is the position of a field's state machine.
type CaptureState int

const (
	// StateIdle waits for the outer element.
	StateIdle CaptureState = iota
	// StateOuter is inside the outer element, waiting for the inner one.
	StateOuter
	// StateInner is inside both elements; the next text is captured.
	StateInner
)

func (s CaptureState) String() string {
	switch s {
	case StateOuter:
		return "outer"
	case StateInner:
		return "inner"
	default:
		return "idle"
	}
}

// Capture recognises text inside <outer class="class"><inner>text. With no
// inner tag the outer element alone arms the capture.
type Capture struct {
	outerTag string
	class    string
	innerTag string
	// once returns the machine to idle after the first captured text.
	once  bool
	state CaptureState
}

// NewCapture returns a two-stage capture. When once is set the capture
// disarms after accepting a single text event.
func NewCapture(outerTag, class, innerTag string, once bool) *Capture {
	return &Capture{outerTag: outerTag, class: normalizeClass(class), innerTag: innerTag, once: once}
}

// Open processes an open-tag event.
func (c *Capture) Open(name string, attrs []Attr) {
	switch {
	case name == c.outerTag && c.state == StateIdle && hasClass(attrs, c.class):
		if c.innerTag == "" {
			c.state = StateInner
		} else {
			c.state = StateOuter
		}
	case c.innerTag != "" && name == c.innerTag && c.state == StateOuter:
		c.state = StateInner
	}
}

// Close processes a close-tag event. Closing either element disarms the
// capture.
func (c *Capture) Close(name string) {
	if c.state == StateIdle {
		return
	}
	if name == c.outerTag || (c.innerTag != "" && name == c.innerTag) {
		c.state = StateIdle
	}
}

// Accept reports whether text should be captured now and advances the state
// machine past the capture point.
func (c *Capture) Accept() bool {
	if c.state != StateInner {
		return false
	}
	if c.once {
		c.state = StateIdle
	}
	return true
}

// State returns the current state.
func (c *Capture) State() CaptureState { return c.state }
