package application

import "sync"

// keyedMutex serializes mutations per order id so concurrent status updates
// on the same order cannot lose writes. Locks are never reclaimed; orders are
// retained forever, so the map grows with the order set, not unboundedly.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (k *keyedMutex) lock(key string) *sync.Mutex {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*sync.Mutex)
	}
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()
	m.Lock()
	return m
}
