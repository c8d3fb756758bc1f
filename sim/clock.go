package sim

import "fmt"

// Clock is the single logical time source of a run. Time is measured in ticks.
type Clock struct {
	now int64
}

// Now returns the current simulation time.
func (c *Clock) Now() int64 {
	return c.now
}

// Advance moves the clock forward by delta ticks.
func (c *Clock) Advance(delta int64) error {
	if delta < 0 {
		return fmt.Errorf("%w: clock advanced by negative delta %d", ErrInvariantViolation, delta)
	}
	c.now += delta
	return nil
}

// AdvanceTo jumps the clock to t, which must not lie in the past.
func (c *Clock) AdvanceTo(t int64) error {
	return c.Advance(t - c.now)
}
