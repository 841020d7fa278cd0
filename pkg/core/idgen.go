package core

import (
	"sync"
	"time"
)

// IDGenerator hands out strictly increasing note ids derived from the clock.
// Two notes created within the same millisecond still get distinct ids.
type IDGenerator struct {
	mu   sync.Mutex
	last int64
}

// Next returns max(now in ms, floor+1, previous+1).
// floor is the largest id already present in the collection.
func (g *IDGenerator) Next(now time.Time, floor int64) int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := now.UnixMilli()
	if id <= floor {
		id = floor + 1
	}
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}

func maxID(notes []Note) int64 {
	var m int64
	for _, n := range notes {
		if n.ID > m {
			m = n.ID
		}
	}
	return m
}
