package presentation

import (
	"sync"
	"time"

	"github.com/davicafu/sharedkernel/shared/domain"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() domain.Clock {
	return domain.ClockFunc(func() time.Time { return fixedNow })
}

// tickingClock avanza step en cada llamada.
type tickingClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

func (c *tickingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(c.step)
	return c.now
}
