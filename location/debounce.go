package location

import (
	"sync"
	"time"
)

// Cell is a single-slot pending task. Scheduling replaces whatever is still
// waiting, so rapid successive updates coalesce into one run after the delay.
type Cell struct {
	mu    sync.Mutex
	timer *time.Timer
}

func (c *Cell) Schedule(delay time.Duration, fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(delay, fn)
}

func (c *Cell) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}
