package main

import (
	"math"
	"time"
)

// frameStats accumulates frame timings and reports them once per interval.
type frameStats struct {
	interval time.Duration

	windowStart  time.Time
	windowFrames int

	min, max float64
	sum      float64
	samples  int
}

func newFrameStats(interval time.Duration, now time.Time) *frameStats {
	return &frameStats{
		interval:    interval,
		windowStart: now,
		min:         math.Inf(1),
	}
}

// frame records one frame at now. It returns the FPS of the window that just
// closed and true once per interval.
func (s *frameStats) frame(now time.Time) (float64, bool) {
	s.windowFrames++
	elapsed := now.Sub(s.windowStart)
	if elapsed < s.interval {
		return 0, false
	}

	fps := float64(s.windowFrames) / elapsed.Seconds()
	s.min = math.Min(s.min, fps)
	s.max = math.Max(s.max, fps)
	s.sum += fps
	s.samples++

	s.windowStart = now
	s.windowFrames = 0
	return fps, true
}

// summary returns the min, average and max FPS over every closed window.
func (s *frameStats) summary() (lo, avg, hi float64, ok bool) {
	if s.samples == 0 {
		return 0, 0, 0, false
	}
	return s.min, s.sum / float64(s.samples), s.max, true
}
