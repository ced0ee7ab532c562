package occlusion

import "testing"

func TestTimerQueryAwaitResolvesImmediately(t *testing.T) {
	q := &TimerQuery{Poll: func() (uint64, bool) { return 42, true }}
	ns, ok := q.Await(5)
	if !ok || ns != 42 {
		t.Fatalf("Await() = (%d, %v), want (42, true)", ns, ok)
	}
}

func TestTimerQueryAwaitGivesUpAfterBudget(t *testing.T) {
	q := &TimerQuery{Poll: func() (uint64, bool) { return 0, false }}
	_, ok := q.Await(3)
	if ok {
		t.Fatal("expected Await to report not-resolved within budget")
	}
	if q.attempts != 3 {
		t.Fatalf("attempts = %d, want 3", q.attempts)
	}
}

func TestTimerQueryAwaitResolvesAfterRetries(t *testing.T) {
	calls := 0
	q := &TimerQuery{Poll: func() (uint64, bool) {
		calls++
		if calls < 3 {
			return 0, false
		}
		return 100, true
	}}
	ns, ok := q.Await(5)
	if !ok || ns != 100 {
		t.Fatalf("Await() = (%d, %v), want (100, true)", ns, ok)
	}
}
