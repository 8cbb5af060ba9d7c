package crud

import (
	"sync"
	"time"
)

// IDGenerator выдаёт id в виде времени в миллисекундах, но строго
// возрастающие: две записи в одну миллисекунду получают разные id
type IDGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewIDGenerator floor - наибольший уже занятый id
func NewIDGenerator(now func() time.Time, floor int64) *IDGenerator {
	if now == nil {
		now = time.Now
	}
	return &IDGenerator{now: now, last: floor}
}

func (g *IDGenerator) Next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}
