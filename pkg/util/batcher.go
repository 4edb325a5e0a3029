package util

import (
	"sync"
	"time"
)

// Batcher groups values by key and hands each group to a flush function once
// no new value has arrived for that key within the quiet window. Every Add
// restarts the key's timer.
//
// Example usage:
//
//	albums := NewBatcher(1500*time.Millisecond, func(id string, photos []Photo) {
//	    processAlbum(id, photos)
//	})
//	defer albums.Stop()
//
//	albums.Add(msg.MediaGroupID, photo)
//
// Flush runs on its own goroutine per group. It's safe for concurrent use.
type Batcher[K comparable, V any] struct {
	window  time.Duration
	flush   func(K, []V)
	mu      sync.Mutex
	pending map[K]*batch[V]
	stopped bool
}

type batch[V any] struct {
	values []V
	timer  *time.Timer
}

// NewBatcher creates a batcher with the given quiet window.
func NewBatcher[K comparable, V any](window time.Duration, flush func(K, []V)) *Batcher[K, V] {
	return &Batcher[K, V]{
		window:  window,
		flush:   flush,
		pending: make(map[K]*batch[V]),
	}
}

// Add appends v to the key's group and restarts its timer. It reports false
// if the batcher has been stopped.
func (b *Batcher[K, V]) Add(key K, v V) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.stopped {
		return false
	}

	if p, ok := b.pending[key]; ok {
		p.values = append(p.values, v)
		p.timer.Reset(b.window)
		return true
	}

	p := &batch[V]{values: []V{v}}
	p.timer = time.AfterFunc(b.window, func() { b.fire(key, p) })
	b.pending[key] = p

	return true
}

// Pending returns the number of groups waiting to be flushed.
func (b *Batcher[K, V]) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.pending)
}

func (b *Batcher[K, V]) fire(key K, p *batch[V]) {
	b.mu.Lock()
	// A stale timer may fire after Stop took over the group.
	if b.pending[key] != p {
		b.mu.Unlock()
		return
	}
	delete(b.pending, key)
	values := p.values
	b.mu.Unlock()

	b.flush(key, values)
}

// Stop cancels all timers and flushes pending groups synchronously. Later
// calls to Add are rejected. It's safe to call Stop multiple times.
func (b *Batcher[K, V]) Stop() {
	b.mu.Lock()
	if b.stopped {
		b.mu.Unlock()
		return
	}
	b.stopped = true
	pending := b.pending
	b.pending = make(map[K]*batch[V])
	for _, p := range pending {
		p.timer.Stop()
	}
	b.mu.Unlock()

	for key, p := range pending {
		b.flush(key, p.values)
	}
}
