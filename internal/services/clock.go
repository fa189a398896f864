package services

import "time"

// clock lets tests pin the time the time-window rules compare against.
type clock struct {
	now func() time.Time
}

// SetClock replaces the time source. Passing nil restores the wall clock.
func (c *clock) SetClock(now func() time.Time) {
	c.now = now
}

func (c *clock) Now() time.Time {
	if c.now == nil {
		return time.Now().UTC()
	}
	return c.now().UTC()
}
