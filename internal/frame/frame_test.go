package frame

import (
	"testing"
	"time"
)

func TestRequestRunsOnNextStep(t *testing.T) {
	c := NewClock()
	var got []time.Duration
	c.Request(func(now time.Duration) { got = append(got, now) })

	if len(got) != 0 {
		t.Fatal("callback ran before Step")
	}
	c.Step(16 * time.Millisecond)
	c.Step(32 * time.Millisecond)

	if len(got) != 1 || got[0] != 16*time.Millisecond {
		t.Errorf("got %v, want one call at 16ms", got)
	}
}

func TestRequestDuringStepWaits(t *testing.T) {
	c := NewClock()
	calls := 0
	var tick Callback
	tick = func(time.Duration) {
		calls++
		c.Request(tick)
	}
	c.Request(tick)

	for i := 1; i <= 5; i++ {
		c.Step(time.Duration(i) * time.Millisecond)
		if calls != i {
			t.Fatalf("after %d steps calls = %d", i, calls)
		}
	}
	if c.Pending() != 1 {
		t.Errorf("Pending = %d, want 1", c.Pending())
	}
}

func TestCancel(t *testing.T) {
	c := NewClock()
	ran := false
	h := c.Request(func(time.Duration) { ran = true })

	if !c.Cancel(h) {
		t.Fatal("Cancel of a pending handle reported false")
	}
	if c.Cancel(h) {
		t.Error("second Cancel reported true")
	}
	c.Step(time.Millisecond)
	if ran {
		t.Error("cancelled callback ran")
	}
	if c.Cancel(0) {
		t.Error("Cancel(0) reported true")
	}
}

func TestCancelWithinBatch(t *testing.T) {
	c := NewClock()
	var second Handle
	ran := false
	c.Request(func(time.Duration) { c.Cancel(second) })
	second = c.Request(func(time.Duration) { ran = true })

	c.Step(time.Millisecond)
	if ran {
		t.Error("callback cancelled earlier in the same step still ran")
	}
}

func TestStepOrderAndMonotonicTime(t *testing.T) {
	c := NewClock()
	var order []int
	for i := 0; i < 3; i++ {
		i := i
		c.Request(func(time.Duration) { order = append(order, i) })
	}
	c.Step(10 * time.Millisecond)
	if len(order) != 3 || order[0] != 0 || order[1] != 1 || order[2] != 2 {
		t.Errorf("order = %v, want [0 1 2]", order)
	}

	var seen time.Duration
	c.Request(func(now time.Duration) { seen = now })
	c.Step(5 * time.Millisecond)
	if seen != 10*time.Millisecond {
		t.Errorf("timestamp went backwards: %v", seen)
	}
	if c.Now() != 10*time.Millisecond {
		t.Errorf("Now = %v", c.Now())
	}
}
