package order

import (
	"fmt"
	"sync"
	"time"
)

// IDGenerator issues ORD-<millis> identifiers. The millisecond value is
// forced to increase strictly, so two submissions within the same
// millisecond still get distinct ids.
type IDGenerator struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

// NewIDGenerator uses now as its clock; nil means time.Now.
func NewIDGenerator(now func() time.Time) *IDGenerator {
	if now == nil {
		now = time.Now
	}
	return &IDGenerator{now: now}
}

// Next returns a fresh id.
func (g *IDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	millis := g.now().UnixMilli()
	if millis <= g.last {
		millis = g.last + 1
	}
	g.last = millis
	return fmt.Sprintf("ORD-%d", millis)
}
