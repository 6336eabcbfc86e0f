package host

// FrameClock is the timing source the frame loop advances exactly once per
// frame, before any update work runs.
type FrameClock struct {
	delta   float64
	elapsed float64
	frames  int
}

func NewFrameClock() *FrameClock {
	return &FrameClock{}
}

// Tick records the duration of the previous frame. Negative durations are
// treated as zero so a clock hiccup never runs the simulation backwards.
func (c *FrameClock) Tick(dt float64) {
	if dt < 0 {
		dt = 0
	}
	c.delta = dt
	c.elapsed += dt
	c.frames++
}

func (c *FrameClock) DeltaTime() float64 { return c.delta }
func (c *FrameClock) Elapsed() float64   { return c.elapsed }
func (c *FrameClock) Frames() int        { return c.frames }

// Reset returns the clock to its zero state, used when a new scene loads.
func (c *FrameClock) Reset() {
	*c = FrameClock{}
}
