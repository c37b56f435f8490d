package core

import "time"

// Clock turns frontend time sources into TickInput values.
// Now only advances by the dt it hands out, so pausing (not calling the clock)
// never produces a giant catch-up step.
type Clock struct {
	now   float64
	last  time.Time
	fixed float64 // Fixed step in seconds; 0 means wall-clock mode
}

// NewWallClock creates a clock that measures real elapsed time between ticks.
func NewWallClock() *Clock {
	return &Clock{}
}

// NewFixedClock creates a clock that advances by exactly 1/tickRate per tick.
// Used by replays and window frontends that run at a fixed TPS.
func NewFixedClock(tickRate int) *Clock {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &Clock{fixed: 1.0 / float64(tickRate)}
}

// Now returns the seconds accumulated so far.
func (c *Clock) Now() float64 {
	return c.now
}

// Tick produces the input for a tick observed at wall time t.
// In fixed mode t is ignored.
func (c *Clock) Tick(t time.Time, jump bool) TickInput {
	var dt float64
	switch {
	case c.fixed > 0:
		dt = c.fixed
	case c.last.IsZero():
		dt = 0
	default:
		dt = t.Sub(c.last).Seconds()
		if dt < 0 {
			dt = 0
		}
	}
	c.last = t
	return c.Advance(dt, jump)
}

// Advance produces the input for a tick of exactly dt seconds.
func (c *Clock) Advance(dt float64, jump bool) TickInput {
	if dt < 0 {
		dt = 0
	}
	c.now += dt
	return TickInput{DT: dt, Now: c.now, Jump: jump}
}

// Hold forgets the last wall time so the next Tick after a pause yields dt = 0.
func (c *Clock) Hold() {
	c.last = time.Time{}
}
