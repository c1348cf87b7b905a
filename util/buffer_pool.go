package util

import (
	"sync"
	"sync/atomic"
)

// BytePool pools frame-sized byte slices keyed by exact length. Frame buffers are
// allocated at the same handful of sizes over and over (one per resolution), so an
// exact-size key wastes nothing.
type BytePool struct {
	pools map[int]*sync.Pool
	mu    sync.RWMutex

	// Metrics
	hits   atomic.Int64
	misses atomic.Int64
}

var bytePool = &BytePool{pools: make(map[int]*sync.Pool)}

// Get retrieves a zeroed slice of the given length from the pool or creates a new one
func (p *BytePool) Get(size int) []byte {
	if size == 0 {
		return []byte{}
	}

	// Fast path: read lock
	p.mu.RLock()
	pool, exists := p.pools[size]
	p.mu.RUnlock()

	if exists {
		if b := pool.Get(); b != nil {
			p.hits.Add(1)
			return *(b.(*[]byte))
		}
	} else {
		// Slow path: create new pool
		p.mu.Lock()
		// Double-check after acquiring write lock
		if _, exists = p.pools[size]; !exists {
			p.pools[size] = &sync.Pool{}
		}
		p.mu.Unlock()
	}

	p.misses.Add(1)
	return make([]byte, size)
}

// Put returns a slice to the pool after clearing it
func (p *BytePool) Put(b []byte) {
	if len(b) == 0 {
		return
	}

	p.mu.RLock()
	pool, exists := p.pools[len(b)]
	p.mu.RUnlock()

	if exists {
		clear(b)
		pool.Put(&b)
	}
}

// GetMetrics returns pool usage statistics
func (p *BytePool) GetMetrics() (hits, misses int64) {
	return p.hits.Load(), p.misses.Load()
}

// GetPooledBytes creates or retrieves a zeroed byte slice of exactly size bytes.
func GetPooledBytes(size int) []byte {
	return bytePool.Get(size)
}

// ReturnBytesToPool hands a slice obtained from GetPooledBytes back for reuse.
func ReturnBytesToPool(b []byte) {
	bytePool.Put(b)
}

// GetPoolMetrics returns metrics for the byte pool
func GetPoolMetrics() map[string]int64 {
	hits, misses := bytePool.GetMetrics()
	return map[string]int64{
		"hits":   hits,
		"misses": misses,
	}
}
