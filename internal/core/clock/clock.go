package clock

import "time"

// Clock is the monotonic time source the frame scheduler waits on.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// Real reads the system monotonic clock.
type Real struct{}

func (Real) Now() time.Time        { return time.Now() }
func (Real) Sleep(d time.Duration) { time.Sleep(d) }

// Manual is a Clock that only moves when told to. Sleep advances it, so a
// scheduler driven by Manual never blocks.
type Manual struct {
	now    time.Time
	slept  time.Duration
	sleeps int
}

func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() time.Time { return m.now }

func (m *Manual) Sleep(d time.Duration) {
	if d <= 0 {
		return
	}
	m.now = m.now.Add(d)
	m.slept += d
	m.sleeps++
}

// Advance moves the clock forward without counting as a sleep.
func (m *Manual) Advance(d time.Duration) { m.now = m.now.Add(d) }

// Slept is the total duration passed to Sleep.
func (m *Manual) Slept() time.Duration { return m.slept }

// Sleeps is the number of non-zero Sleep calls.
func (m *Manual) Sleeps() int { return m.sleeps }
