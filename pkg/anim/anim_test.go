package anim

import (
	"math"
	"testing"
	"time"
)

func TestEaseOutCubic(t *testing.T) {
	tests := []struct {
		p, want float64
	}{
		{0, 0},
		{1, 1},
		{0.5, 0.875},
	}
	for _, tt := range tests {
		if got := EaseOutCubic(tt.p); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("EaseOutCubic(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestStepReachesTargetExactly(t *testing.T) {
	d := NewDriver()
	target := 31.41592653589793 + 0.123456789
	s := d.Begin(At(1.7), target)

	var done bool
	frame := time.Second / 60
	ts := 3 * time.Second
	for i := 0; i < 1000 && !done; i++ {
		s, done = d.Step(s, ts)
		ts += frame
	}

	if !done {
		t.Fatal("animation never completed")
	}
	if s.Offset != target {
		t.Errorf("Offset = %v, want exactly %v", s.Offset, target)
	}
	if s.Running || s.Target != nil || s.StartedAt != nil {
		t.Errorf("state not idle after completion: %+v", s)
	}
}

func TestStepIsMonotonicForIncreasingTarget(t *testing.T) {
	d := NewDriver()
	s := d.Begin(At(0), 20)

	prev := s.Offset
	for ts := time.Duration(0); ts <= d.Duration; ts += 10 * time.Millisecond {
		var done bool
		s, done = d.Step(s, ts)
		if s.Offset < prev {
			t.Fatalf("offset went backwards at %s: %v < %v", ts, s.Offset, prev)
		}
		prev = s.Offset
		if done {
			break
		}
	}
}

func TestStepDoesNotMutateInput(t *testing.T) {
	d := NewDriver()
	s := d.Begin(At(0), 10)
	s, _ = d.Step(s, time.Second)
	before := *s.StartedAt

	next, _ := d.Step(s, 2*time.Second)
	if *s.StartedAt != before {
		t.Error("Step mutated the start timestamp of its input")
	}
	if next.Offset == s.Offset {
		t.Error("offset did not advance")
	}
}

func TestDoneReportedOnce(t *testing.T) {
	d := Driver{Duration: 100 * time.Millisecond, Ease: Linear}
	s := d.Begin(At(0), 1)

	s, _ = d.Step(s, 0)
	s, done := d.Step(s, 200*time.Millisecond)
	if !done {
		t.Fatal("expected completion")
	}
	_, done = d.Step(s, 300*time.Millisecond)
	if done {
		t.Error("idle state reported completion again")
	}
}

func TestLinearMidpoint(t *testing.T) {
	d := Driver{Duration: time.Second, Ease: Linear}
	s := d.Begin(At(10), 20)
	s, _ = d.Step(s, 0)
	s, _ = d.Step(s, 500*time.Millisecond)
	if math.Abs(s.Offset-15) > 1e-9 {
		t.Errorf("Offset = %v, want 15", s.Offset)
	}
}
