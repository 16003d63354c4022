// Package pool provides pooled time.Timer instances for the hot wait paths
// (backoff sleeps, read deadlines) so repeated exchanges do not allocate a
// fresh timer per wait.
package pool

import (
	"sync"
	"time"
)

var timerPool sync.Pool

// GetTimer returns a timer set to fire after d, taken from the pool when one
// is available.
//
// Return the timer with PutTimer when done.
func GetTimer(d time.Duration) *time.Timer {
	v := timerPool.Get()
	if v == nil {
		return time.NewTimer(d)
	}

	t := v.(*time.Timer) //nolint:forcetypeassert // only *time.Timer enters the pool
	if t.Reset(d) {
		// The timer was still active; drain a pending tick so the caller
		// never observes a stale expiry.
		select {
		case <-t.C:
		default:
		}
	}

	return t
}

// PutTimer stops t and returns it to the pool.
//
// t must not be used after the call.
func PutTimer(t *time.Timer) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}

	timerPool.Put(t)
}
