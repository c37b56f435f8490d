package core

import (
	"testing"
	"time"
)

func TestWallClockFirstTickIsZero(t *testing.T) {
	c := NewWallClock()
	start := time.Unix(100, 0)

	in := c.Tick(start, false)
	if in.DT != 0 || in.Now != 0 {
		t.Errorf("first tick = %+v, expected zero dt and now", in)
	}

	in = c.Tick(start.Add(250*time.Millisecond), true)
	if in.DT != 0.25 || in.Now != 0.25 || !in.Jump {
		t.Errorf("second tick = %+v, expected dt=0.25 now=0.25 jump", in)
	}
}

func TestWallClockBackwardsTime(t *testing.T) {
	c := NewWallClock()
	start := time.Unix(100, 0)
	c.Tick(start, false)

	in := c.Tick(start.Add(-time.Second), false)
	if in.DT != 0 {
		t.Errorf("dt = %v, expected clamp to 0", in.DT)
	}
}

func TestWallClockHold(t *testing.T) {
	c := NewWallClock()
	start := time.Unix(100, 0)
	c.Tick(start, false)
	c.Tick(start.Add(time.Second), false)

	c.Hold()
	in := c.Tick(start.Add(time.Hour), false)
	if in.DT != 0 {
		t.Errorf("dt after Hold = %v, expected 0", in.DT)
	}
	if in.Now != 1 {
		t.Errorf("now after Hold = %v, expected 1", in.Now)
	}
}

func TestFixedClock(t *testing.T) {
	c := NewFixedClock(4)
	var in TickInput
	for i := 0; i < 8; i++ {
		in = c.Tick(time.Time{}, false)
	}
	if in.DT != 0.25 {
		t.Errorf("dt = %v, expected 0.25", in.DT)
	}
	if in.Now != 2 {
		t.Errorf("now = %v, expected 2", in.Now)
	}
}
