package loop

import "time"

// Clock measures seconds elapsed since Start. Readings never go backwards.
type Clock struct {
	now     func() time.Time
	start   time.Time
	running bool
	last    float64
	prev    float64
}

// NewClock creates a clock on the wall-clock monotonic source.
func NewClock() *Clock {
	return NewClockWithSource(time.Now)
}

// NewClockWithSource creates a clock reading time from now.
func NewClockWithSource(now func() time.Time) *Clock {
	return &Clock{now: now}
}

// Start (re)starts the clock at zero.
func (c *Clock) Start() {
	c.start = c.now()
	c.running = true
	c.last = 0
	c.prev = 0
}

// Elapsed returns seconds since Start, starting the clock on first use.
func (c *Clock) Elapsed() float64 {
	if !c.running {
		c.Start()
		return 0
	}
	e := c.now().Sub(c.start).Seconds()
	if e < c.last {
		e = c.last
	}
	c.prev, c.last = c.last, e
	return e
}

// Delta returns the seconds between the last two Elapsed readings.
func (c *Clock) Delta() float64 {
	return c.last - c.prev
}
