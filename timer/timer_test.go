package timer

import (
	"testing"
	"time"
)

// runInline routes due callbacks straight to the caller instead of the evq
// loop, so tests stay deterministic.
func runInline(t *testing.T, fired *[]string, name string) func() {
	t.Helper()
	return func() { *fired = append(*fired, name) }
}

func withInlinePost(t *testing.T) {
	t.Helper()
	old := post
	post = func(f func()) { f() }
	t.Cleanup(func() { post = old })
}

func TestAfterFuncFiresOnce(t *testing.T) {
	withInlinePost(t)

	var fired []string
	tm := AfterFunc(time.Minute, runInline(t, &fired, "a"))

	tick(time.Now())
	if len(fired) != 0 {
		t.Fatalf("fired early: %v", fired)
	}

	tick(time.Now().Add(2 * time.Minute))
	if len(fired) != 1 {
		t.Fatalf("fired = %v, want once", fired)
	}
	if tm.IsActive() {
		t.Fatal("one-shot timer still active after firing")
	}

	tick(time.Now().Add(3 * time.Minute))
	if len(fired) != 1 {
		t.Fatalf("one-shot fired again: %v", fired)
	}
}

func TestTickerRepeats(t *testing.T) {
	withInlinePost(t)

	var fired []string
	tm := AddTicker(time.Hour, runInline(t, &fired, "tick"))
	defer tm.Cancel()

	tick(time.Now().Add(90 * time.Minute))
	if len(fired) != 1 {
		t.Fatalf("fired = %v, want once", fired)
	}

	tick(time.Now().Add(150 * time.Minute))
	if len(fired) != 2 {
		t.Fatalf("fired = %v, want twice", fired)
	}
	if !tm.IsActive() {
		t.Fatal("ticker inactive while not cancelled")
	}
}

func TestCancel(t *testing.T) {
	withInlinePost(t)

	var fired []string
	tm := AfterFunc(time.Minute, runInline(t, &fired, "a"))
	tm.Cancel()

	tick(time.Now().Add(2 * time.Minute))
	if len(fired) != 0 {
		t.Fatalf("cancelled timer fired: %v", fired)
	}
}

func TestFireOrder(t *testing.T) {
	withInlinePost(t)

	var fired []string
	t1 := AfterFunc(2*time.Minute, runInline(t, &fired, "later"))
	t2 := AfterFunc(time.Minute, runInline(t, &fired, "sooner"))
	defer t1.Cancel()
	defer t2.Cancel()

	tick(time.Now().Add(3 * time.Minute))
	if len(fired) != 2 || fired[0] != "sooner" || fired[1] != "later" {
		t.Fatalf("fire order = %v", fired)
	}
}

func TestRemain(t *testing.T) {
	withInlinePost(t)

	tm := AfterFunc(time.Hour, func() {})
	defer tm.Cancel()

	r := tm.Remain()
	if r <= 0 || r > time.Hour {
		t.Fatalf("Remain = %v", r)
	}
}
