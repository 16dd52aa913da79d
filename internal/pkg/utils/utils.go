package utils

import (
	"log"
)

// CatchPanic runs f and recovers any panic, so one misbehaving callback
// cannot take down the dispatch loop that invoked it.
func CatchPanic(f func()) (err interface{}) {
	defer func() {
		err = recover()
		if err != nil {
			log.Printf("Catch panic: %s", err)
		}
	}()

	f()
	return
}
