package sim

import (
	"errors"
	"testing"
)

func TestClock_AdvanceTo_MovesForward(t *testing.T) {
	var c Clock
	if err := c.AdvanceTo(5); err != nil {
		t.Fatalf("AdvanceTo(5): %v", err)
	}
	if err := c.Advance(0); err != nil {
		t.Fatalf("Advance(0): %v", err)
	}
	if err := c.Advance(3); err != nil {
		t.Fatalf("Advance(3): %v", err)
	}
	if c.Now() != 8 {
		t.Errorf("Now() = %d, want 8", c.Now())
	}
}

func TestClock_Regression_IsInvariantViolation(t *testing.T) {
	// GIVEN a clock at tick 10
	c := Clock{now: 10}

	// WHEN asked to move backwards
	err := c.AdvanceTo(9)

	// THEN it refuses and the time is unchanged
	if !errors.Is(err, ErrInvariantViolation) {
		t.Fatalf("expected ErrInvariantViolation, got %v", err)
	}
	if c.Now() != 10 {
		t.Errorf("Now() = %d after failed advance, want 10", c.Now())
	}
}
