package service

import (
	"sync"
	"time"
)

// IDAllocator issues millisecond-timestamp ids that strictly increase within
// the process: when the clock has not moved past the last id, the next id is
// last+1.
type IDAllocator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewIDAllocator() *IDAllocator {
	return &IDAllocator{now: time.Now}
}

// Next returns a fresh id.
func (a *IDAllocator) Next() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()

	id := a.now().UnixMilli()
	if id <= a.last {
		id = a.last + 1
	}
	a.last = id
	return id
}
