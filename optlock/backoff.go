package optlock

import (
	"runtime"
	"time"

	"lippgo/shared"
)

// Backoff implements the escalating pause an optimistic-lock Restart calls
// for: a few rounds of runtime.Gosched() (the portable substitute for
// gvisor's go:linkname'd runtime.goyield, which reaches into an unexported
// runtime symbol this module avoids depending on), then short,
// exponentially-growing sleeps capped at shared.KBackoffMaxSleepNanos.
func Backoff(attempt int) {
	if attempt < shared.KBackoffSpinRounds {
		runtime.Gosched()
		return
	}
	shift := attempt - shared.KBackoffSpinRounds
	nanos := int64(1) << shift
	if nanos > shared.KBackoffMaxSleepNanos || nanos <= 0 {
		nanos = shared.KBackoffMaxSleepNanos
	}
	time.Sleep(time.Duration(nanos))
}
