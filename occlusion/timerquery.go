package occlusion

// TimerQuery polls a GPU timer query's resolved result without blocking the
// caller's goroutine on the underlying fence wait, backing off with a short
// OS-level yield between attempts instead of a hot spin loop.
type TimerQuery struct {
	// Poll returns the elapsed GPU nanoseconds and true once the query
	// resolves, or (0, false) if it is still pending.
	Poll func() (uint64, bool)

	attempts int
}

// Await polls q up to maxAttempts times, yielding to the OS scheduler
// between attempts via occlusionYield, and returns the resolved duration or
// false if it never resolved within the budget. Used to bound how long a
// frame waits on the reduction pass's timer query before giving up and
// reporting the prior frame's duration instead.
func (q *TimerQuery) Await(maxAttempts int) (uint64, bool) {
	for q.attempts = 0; q.attempts < maxAttempts; q.attempts++ {
		if ns, ok := q.Poll(); ok {
			return ns, true
		}
		occlusionYield()
	}
	return 0, false
}
