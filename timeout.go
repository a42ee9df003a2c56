package waitable

import (
	"time"

	"fortio.org/safecast"
)

// Wait timeouts travel to the platform as 32-bit millisecond counts, with
// the all-ones value reserved as the "wait forever" sentinel.
const (
	infiniteMillis uint32 = 0xFFFFFFFF
	maxWaitMillis  uint32 = infiniteMillis - 1
)

// MaxWaitDuration is the longest finite timeout a wait can carry, about
// 49.7 days. Longer timeouts passed to Wait, WaitForOne or WaitForAll
// saturate to this value; use WaitIndefinitely for an unbounded wait.
const MaxWaitDuration = time.Duration(maxWaitMillis) * time.Millisecond

// timeoutMillis converts a caller-supplied timeout to the platform's
// millisecond unit. Zero and negative durations mean "poll, do not block";
// durations beyond the representable range saturate to maxWaitMillis.
func timeoutMillis(d time.Duration) uint32 {
	if d <= 0 {
		return 0
	}
	ms, err := safecast.Conv[uint32](d.Milliseconds())
	if err != nil || ms > maxWaitMillis {
		return maxWaitMillis
	}
	return ms
}
