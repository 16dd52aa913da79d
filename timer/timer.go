// Package timer schedules one-shot and repeating callbacks on a heap, firing
// them through the evq loop so they run in the same single-threaded context
// as everything else touching the document.
package timer

import (
	"container/heap"
	"sync"
	"time"

	"github.com/blitline-dev/batik/evq"
)

var (
	nextAddSeq uint64 = 1
	tHeap      timerHeap
	startOnce  sync.Once
	tLock      sync.Mutex
)

// post delivers a due callback; indirected so tests can run callbacks inline.
var post = evq.Post

type CallbackFunc func()

type Timer struct {
	fireTime time.Time
	interval time.Duration
	callback CallbackFunc
	repeat   bool
	addseq   uint64
}

// Remain returns the time until the timer next fires.
func (t *Timer) Remain() time.Duration {
	now := time.Now()
	if now.Before(t.fireTime) {
		return t.fireTime.Sub(now)
	}
	return 0
}

func (t *Timer) Cancel() {
	t.callback = nil
}

func (t *Timer) IsActive() bool {
	return t.callback != nil
}

type timerHeap struct {
	timers []*Timer
}

func (h *timerHeap) Len() int {
	return len(h.timers)
}

func (h *timerHeap) Less(i, j int) bool {
	t1, t2 := h.timers[i].fireTime, h.timers[j].fireTime
	if t1.Before(t2) {
		return true
	}
	if t1.After(t2) {
		return false
	}
	return h.timers[i].addseq < h.timers[j].addseq
}

func (h *timerHeap) Swap(i, j int) {
	h.timers[i], h.timers[j] = h.timers[j], h.timers[i]
}

func (h *timerHeap) Push(x interface{}) {
	h.timers = append(h.timers, x.(*Timer))
}

func (h *timerHeap) Pop() (ret interface{}) {
	l := len(h.timers)
	h.timers, ret = h.timers[:l-1], h.timers[l-1]
	return
}

// AfterFunc fires callback once after d.
func AfterFunc(d time.Duration, callback CallbackFunc) *Timer {
	return schedule(d, callback, false)
}

// AddTicker fires callback every d until the timer is cancelled.
func AddTicker(d time.Duration, callback CallbackFunc) *Timer {
	return schedule(d, callback, true)
}

func schedule(d time.Duration, callback CallbackFunc, repeat bool) *Timer {
	t := &Timer{
		fireTime: time.Now().Add(d),
		interval: d,
		callback: callback,
		repeat:   repeat,
	}

	tLock.Lock()
	t.addseq = nextAddSeq
	nextAddSeq++
	heap.Push(&tHeap, t)
	tLock.Unlock()
	return t
}

func tick(now time.Time) {
	tLock.Lock()
	for tHeap.Len() > 0 {
		if tHeap.timers[0].fireTime.After(now) {
			break
		}

		t := heap.Pop(&tHeap).(*Timer)
		callback := t.callback
		if callback == nil {
			continue
		}

		if !t.repeat {
			t.callback = nil
		}

		post(callback)

		if t.repeat {
			t.fireTime = t.fireTime.Add(t.interval)
			t.addseq = nextAddSeq
			nextAddSeq++
			heap.Push(&tHeap, t)
		}
	}
	tLock.Unlock()
}

// StartTicks begins polling the heap at tickInterval. Safe to call more than
// once; only the first call takes effect.
func StartTicks(tickInterval time.Duration) {
	startOnce.Do(func() {
		go func() {
			for {
				time.Sleep(tickInterval)
				tick(time.Now())
			}
		}()
	})
}

func init() {
	heap.Init(&tHeap)
}
