package anim

import (
	"sync"
	"testing"
	"time"

	"github.com/blitline-dev/batik"
	"github.com/blitline-dev/batik/timer"
)

type fakeTarget struct {
	mu      sync.Mutex
	frames  [][]float32
	units   []batik.Unit
	cleared int
}

func (f *fakeTarget) SetAnimatedValue(units []batik.Unit, values []float32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.units = append([]batik.Unit(nil), units...)
	f.frames = append(f.frames, append([]float32(nil), values...))
}

func (f *fakeTarget) ClearAnimatedValue() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cleared++
}

func TestInterpolate(t *testing.T) {
	from := []batik.Length{
		{Unit: batik.UnitNumber, Value: 0},
		{Unit: batik.UnitPx, Value: 10},
	}
	to := []batik.Length{
		{Unit: batik.UnitNumber, Value: 100},
		{Unit: batik.UnitPx, Value: 20},
	}

	units, values := Interpolate(from, to, 0.5)
	if units[0] != batik.UnitNumber || units[1] != batik.UnitPx {
		t.Fatalf("units = %v", units)
	}
	if values[0] != 50 || values[1] != 15 {
		t.Fatalf("values = %v", values)
	}

	_, start := Interpolate(from, to, 0)
	if start[0] != 0 || start[1] != 10 {
		t.Fatalf("t=0 values = %v", start)
	}
	_, end := Interpolate(from, to, 1)
	if end[0] != 100 || end[1] != 20 {
		t.Fatalf("t=1 values = %v", end)
	}
}

func TestStartValidation(t *testing.T) {
	tgt := &fakeTarget{}
	a := []batik.Length{{Unit: batik.UnitNumber, Value: 1}}
	b := []batik.Length{{Unit: batik.UnitPx, Value: 2}}

	if _, err := Start(tgt, a, nil, time.Second, time.Millisecond); err == nil {
		t.Error("length mismatch accepted")
	}
	if _, err := Start(tgt, a, b, time.Second, time.Millisecond); err == nil {
		t.Error("unit mismatch accepted")
	}
	if _, err := Start(tgt, a, a, 0, time.Millisecond); err == nil {
		t.Error("zero duration accepted")
	}
}

func TestAnimationRunsToCompletion(t *testing.T) {
	timer.StartTicks(5 * time.Millisecond)

	tgt := &fakeTarget{}
	from := []batik.Length{{Unit: batik.UnitNumber, Value: 0}}
	to := []batik.Length{{Unit: batik.UnitNumber, Value: 100}}

	done := make(chan struct{})
	_, err := Start(tgt, from, to, 60*time.Millisecond, 10*time.Millisecond,
		WithOnDone(func() { close(done) }))
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("animation never completed")
	}

	tgt.mu.Lock()
	defer tgt.mu.Unlock()
	if len(tgt.frames) == 0 {
		t.Fatal("no frames pushed")
	}
	last := tgt.frames[len(tgt.frames)-1]
	if last[0] != 100 {
		t.Fatalf("final frame = %v, want 100", last)
	}
	if tgt.cleared != 1 {
		t.Fatalf("cleared = %d, want 1", tgt.cleared)
	}
}

func TestAnimationRetainsFinalValue(t *testing.T) {
	timer.StartTicks(5 * time.Millisecond)

	tgt := &fakeTarget{}
	ls := []batik.Length{{Unit: batik.UnitNumber, Value: 1}}

	done := make(chan struct{})
	_, err := Start(tgt, ls, ls, 30*time.Millisecond, 10*time.Millisecond,
		WithRetain(), WithOnDone(func() { close(done) }))
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("animation never completed")
	}

	tgt.mu.Lock()
	defer tgt.mu.Unlock()
	if tgt.cleared != 0 {
		t.Fatalf("cleared = %d, want 0 with retain", tgt.cleared)
	}
}
