package cache

import "sync"

// DefaultMemoCapacity bounds the number of memoized computations held at
// once. Recompute cost is low and keys churn with every layout pass, so
// a small fixed bound is enough.
const DefaultMemoCapacity = 100

// Memo is a bounded memoization arena for layout computations. It maps
// content-fingerprint keys to computed artifacts (round groupings,
// position slices, scaling results) and evicts oldest-first once the
// capacity is exceeded. Eviction is insertion-ordered FIFO, not LRU:
// keys change with every meaningful input change, so recency tracking
// would buy nothing.
//
// A Memo is owned explicitly by its caller rather than shared through
// package state, so independent bracket views never cross-pollute and
// tests control the lifecycle. All methods are safe for concurrent use.
type Memo struct {
	mu      sync.Mutex
	cap     int
	entries map[string]any
	order   []string
}

// NewMemo creates a memoization arena with the default capacity.
func NewMemo() *Memo {
	return NewMemoWithCapacity(DefaultMemoCapacity)
}

// NewMemoWithCapacity creates a memoization arena holding at most n
// entries. A non-positive n falls back to the default capacity.
func NewMemoWithCapacity(n int) *Memo {
	if n <= 0 {
		n = DefaultMemoCapacity
	}
	return &Memo{
		cap:     n,
		entries: make(map[string]any, n),
	}
}

// Get returns the cached artifact for key, if present.
func (m *Memo) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.entries[key]
	return v, ok
}

// Put stores an artifact under key, evicting the oldest entry first if
// the arena is full. Overwriting an existing key keeps its original
// insertion position.
func (m *Memo) Put(key string, v any) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.entries[key]; exists {
		m.entries[key] = v
		return
	}

	if len(m.order) >= m.cap {
		oldest := m.order[0]
		m.order = m.order[1:]
		delete(m.entries, oldest)
	}

	m.entries[key] = v
	m.order = append(m.order, key)
}

// Clear discards every entry. Callers use this for deterministic
// teardown when the input domain changes substantially, e.g. switching
// tournaments.
func (m *Memo) Clear() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]any, m.cap)
	m.order = m.order[:0]
}

// Size reports the number of cached entries.
func (m *Memo) Size() int {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
