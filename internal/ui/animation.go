// Package ui provides small animation primitives for window and tab motion.
package ui

import (
	"math"
	"time"
)

// Kind distinguishes what an animation moves.
type Kind int

const (
	// TabSettle eases a dragged tab back to its slot after a drag ends.
	TabSettle Kind = iota
	// WindowSnap eases a window back to a resting position.
	WindowSnap
)

// Animation is a time-based interpolation between two points.
type Animation struct {
	Kind      Kind
	WindowID  string
	TabID     string
	StartTime time.Time
	Duration  time.Duration
	FromX     int
	FromY     int
	ToX       int
	ToY       int
}

// Progress returns the eased progress in [0,1] at now.
func (a *Animation) Progress(now time.Time) float64 {
	if a.Duration <= 0 {
		return 1
	}
	p := float64(now.Sub(a.StartTime)) / float64(a.Duration)
	if p <= 0 {
		return 0
	}
	if p >= 1 {
		return 1
	}
	return easeOutCubic(p)
}

// Complete reports whether the animation has finished at now.
func (a *Animation) Complete(now time.Time) bool {
	return now.Sub(a.StartTime) >= a.Duration
}

// At returns the interpolated position at now.
func (a *Animation) At(now time.Time) (x, y int) {
	p := a.Progress(now)
	return lerp(a.FromX, a.ToX, p), lerp(a.FromY, a.ToY, p)
}

func easeOutCubic(p float64) float64 {
	return 1 - math.Pow(1-p, 3)
}

func lerp(from, to int, p float64) int {
	return from + int(math.Round(float64(to-from)*p))
}
