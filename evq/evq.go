// Package evq runs callbacks one at a time on a single dispatcher goroutine.
// Attribute bindings assume a single-threaded caller; posting editor and
// animation work through the same Loop provides exactly that context.
package evq

import (
	"log"
	"sync"
	"time"

	"gopkg.in/eapache/queue.v1"

	"github.com/blitline-dev/batik/internal/pkg/utils"
)

// Loop is a serialized FIFO callback queue.
type Loop struct {
	mu     sync.Mutex
	cond   *sync.Cond
	q      *queue.Queue
	closed bool
	done   chan struct{}
}

func NewLoop() *Loop {
	l := &Loop{
		q:    queue.New(),
		done: make(chan struct{}),
	}
	l.cond = sync.NewCond(&l.mu)
	go l.run()
	return l
}

// Post enqueues f. Callbacks run in post order. Posting after Stop is a no-op.
func (l *Loop) Post(f func()) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.q.Add(f)
	l.cond.Signal()
	l.mu.Unlock()
}

// Sync posts f and waits for it to finish. Must not be called from inside a
// callback already running on the loop.
func (l *Loop) Sync(f func()) {
	fin := make(chan struct{})
	l.Post(func() {
		f()
		close(fin)
	})
	<-fin
}

// Stop drains the pending callbacks and stops the dispatcher.
func (l *Loop) Stop() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		<-l.done
		return
	}
	l.closed = true
	l.cond.Signal()
	l.mu.Unlock()

	select {
	case <-l.done:
	case <-time.After(10 * time.Second):
		log.Printf("evq: stop timed out with callbacks still pending")
	}
}

func (l *Loop) run() {
	for {
		l.mu.Lock()
		for l.q.Length() == 0 && !l.closed {
			l.cond.Wait()
		}
		if l.q.Length() == 0 {
			l.mu.Unlock()
			close(l.done)
			return
		}
		f := l.q.Remove().(func())
		l.mu.Unlock()
		utils.CatchPanic(f)
	}
}

var (
	mainLoop *Loop
	mainOnce sync.Once
)

// Main returns the process-wide loop, starting it on first use.
func Main() *Loop {
	mainOnce.Do(func() {
		mainLoop = NewLoop()
	})
	return mainLoop
}

// Post enqueues f on the main loop.
func Post(f func()) { Main().Post(f) }

// Sync runs f on the main loop and waits for it.
func Sync(f func()) { Main().Sync(f) }
