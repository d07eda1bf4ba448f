package application

import (
	"sync"

	"github.com/bnema/alexis-agent/internal/domain"
)

// UsageCollector accumulates metrics events for the lifetime of a session.
type UsageCollector struct {
	mu    sync.Mutex
	total domain.Usage
}

func NewUsageCollector() *UsageCollector {
	return &UsageCollector{}
}

func (c *UsageCollector) Collect(usage domain.Usage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.total = c.total.Add(usage)
}

func (c *UsageCollector) Summary() domain.Usage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}
