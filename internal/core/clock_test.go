package core

import (
	"testing"
	"time"
)

func TestStepClockFiresPerInterval(t *testing.T) {
	c := NewStepClock()
	n := 0
	c.Every(500*time.Millisecond, func() { n++ })

	c.Advance(499 * time.Millisecond)
	if n != 0 {
		t.Fatalf("Fired early: %d", n)
	}
	c.Advance(time.Millisecond)
	if n != 1 {
		t.Fatalf("Expected 1 call at 500ms, got %d", n)
	}
	c.Advance(2 * time.Second)
	if n != 5 {
		t.Errorf("Expected 5 calls at 2.5s, got %d", n)
	}
	if c.Now() != 2500*time.Millisecond {
		t.Errorf("Now() = %v", c.Now())
	}
}

func TestStepClockCancel(t *testing.T) {
	c := NewStepClock()
	n := 0
	cancel := c.Every(100*time.Millisecond, func() { n++ })
	c.Advance(250 * time.Millisecond)
	cancel()
	c.Advance(time.Second)

	if n != 2 {
		t.Errorf("Expected 2 calls before cancel, got %d", n)
	}
	if c.Pending() != 0 {
		t.Errorf("Pending() = %d after cancel", c.Pending())
	}
}

func TestStepClockCallbackReschedules(t *testing.T) {
	c := NewStepClock()
	var calls []time.Duration
	var cancel func()
	cancel = c.Every(100*time.Millisecond, func() {
		calls = append(calls, c.Now())
		if len(calls) == 1 {
			cancel()
			cancel = c.Every(50*time.Millisecond, func() {
				calls = append(calls, c.Now())
			})
		}
	})

	c.Advance(200 * time.Millisecond)

	want := []time.Duration{100 * time.Millisecond, 150 * time.Millisecond, 200 * time.Millisecond}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, expected %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("call %d at %v, expected %v", i, calls[i], want[i])
		}
	}
}

func TestStepClockRejectsZeroInterval(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic")
		}
	}()
	NewStepClock().Every(0, func() {})
}

func TestInputFrameKeepsOrder(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionLeft)
	f.Set(ActionNone)
	f.Set(ActionLeft)
	f.Set(ActionRotate)

	got := f.Actions()
	if len(got) != 3 || got[0] != ActionLeft || got[2] != ActionRotate {
		t.Errorf("Actions() = %v", got)
	}
	if !f.Has(ActionRotate) || f.Has(ActionDrop) {
		t.Errorf("Has() mismatch")
	}

	clone := f.Clone()
	f.Clear()
	if !f.Empty() || clone.Empty() {
		t.Errorf("Clear affected clone or did not empty the frame")
	}
}
