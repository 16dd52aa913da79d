// Package anim drives length-list override values over time. An Animation
// interpolates magnitudes between two unit-matched lists and pushes a frame
// through the binding on every tick.
package anim

import (
	"time"

	"github.com/pkg/errors"

	"github.com/blitline-dev/batik"
	"github.com/blitline-dev/batik/timer"
)

// Target is the slice of AnimatedLengthList the driver needs.
type Target interface {
	SetAnimatedValue(units []batik.Unit, values []float32)
	ClearAnimatedValue()
}

// Interpolate computes the frame at progress t in [0,1]. Units and axes come
// from the from-list; only magnitudes move.
func Interpolate(from, to []batik.Length, t float64) ([]batik.Unit, []float32) {
	units := make([]batik.Unit, len(from))
	values := make([]float32, len(from))
	for i, f := range from {
		units[i] = f.Unit
		values[i] = f.Value + float32(t)*(to[i].Value-f.Value)
	}
	return units, values
}

// Animation is one running transition.
type Animation struct {
	target   Target
	from, to []batik.Length
	dur      time.Duration
	start    time.Time
	ticker   *timer.Timer
	retain   bool
	onDone   func()
}

// Option configures an Animation.
type Option func(*Animation)

// WithRetain keeps the final override active after the transition instead of
// clearing it.
func WithRetain() Option {
	return func(a *Animation) { a.retain = true }
}

// WithOnDone runs fn once after the final frame.
func WithOnDone(fn func()) Option {
	return func(a *Animation) { a.onDone = fn }
}

// Start begins pushing frames to tgt every tick until dur has elapsed. The
// lists must be the same length with pairwise identical units.
func Start(tgt Target, from, to []batik.Length, dur, tick time.Duration, opts ...Option) (*Animation, error) {
	if len(from) != len(to) {
		return nil, errors.Errorf("animation endpoints differ in length: %d vs %d", len(from), len(to))
	}
	for i := range from {
		if from[i].Unit != to[i].Unit {
			return nil, errors.Errorf("animation endpoints differ in unit at %d: %s vs %s",
				i, from[i].Unit, to[i].Unit)
		}
	}
	if dur <= 0 {
		return nil, errors.New("animation duration must be positive")
	}

	a := &Animation{
		target: tgt,
		from:   append([]batik.Length(nil), from...),
		to:     append([]batik.Length(nil), to...),
		dur:    dur,
		start:  time.Now(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.ticker = timer.AddTicker(tick, a.step)
	return a, nil
}

func (a *Animation) step() {
	t := float64(time.Since(a.start)) / float64(a.dur)
	if t >= 1 {
		t = 1
	}
	units, values := Interpolate(a.from, a.to, t)
	a.target.SetAnimatedValue(units, values)
	if t >= 1 {
		a.finish()
	}
}

func (a *Animation) finish() {
	a.ticker.Cancel()
	if !a.retain {
		a.target.ClearAnimatedValue()
	}
	if a.onDone != nil {
		a.onDone()
	}
}

// Stop cancels the animation and clears the override unless retain is set.
func (a *Animation) Stop() {
	if !a.ticker.IsActive() {
		return
	}
	a.ticker.Cancel()
	if !a.retain {
		a.target.ClearAnimatedValue()
	}
}
