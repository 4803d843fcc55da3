package clock

import "time"

// Scheduler paces frames. Next blocks until at least minInterval has passed
// since the previous frame, then returns the elapsed time clamped to
// maxDelta so a long stall (debugger, window drag) cannot blow up the
// integration step.
type Scheduler struct {
	clock       Clock
	minInterval time.Duration
	maxDelta    time.Duration
	last        time.Time
	frame       uint64
}

func NewScheduler(c Clock, minInterval, maxDelta time.Duration) *Scheduler {
	return &Scheduler{
		clock:       c,
		minInterval: minInterval,
		maxDelta:    maxDelta,
		last:        c.Now(),
	}
}

// Next waits for the next frame and returns its delta time.
func (s *Scheduler) Next() time.Duration {
	for {
		elapsed := s.clock.Now().Sub(s.last)
		if elapsed >= s.minInterval {
			break
		}
		s.clock.Sleep(s.minInterval - elapsed)
	}
	now := s.clock.Now()
	dt := now.Sub(s.last)
	if s.maxDelta > 0 && dt > s.maxDelta {
		dt = s.maxDelta
	}
	s.last = now
	s.frame++
	return dt
}

// Reset restarts timing from now, e.g. after a blocking load.
func (s *Scheduler) Reset() {
	s.last = s.clock.Now()
}

// Frame is the number of frames handed out by Next.
func (s *Scheduler) Frame() uint64 { return s.frame }

// Seconds converts a frame delta into the float seconds actors integrate with.
func Seconds(dt time.Duration) float32 {
	return float32(dt.Seconds())
}
