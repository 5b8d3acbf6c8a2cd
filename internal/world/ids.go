package world

import "sync"

// IDAllocator hands out unique entity ids. It is owned by the shell: the core
// never allocates ids, it only receives them in create calls. Reserve is used
// after scenario loading to skip past ids already in use.
type IDAllocator struct {
	mu   sync.Mutex
	next int
}

// NewIDAllocator returns an allocator whose first id is start.
func NewIDAllocator(start int) *IDAllocator {
	return &IDAllocator{next: start}
}

// Next returns the next unused id.
func (a *IDAllocator) Next() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	id := a.next
	a.next++
	return id
}

// Reserve marks every id up to and including id as used.
func (a *IDAllocator) Reserve(id int) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if id >= a.next {
		a.next = id + 1
	}
}
