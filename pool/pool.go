// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pool

import (
	"sync"
	"sync/atomic"
)

// List is a pooled scratch slice. Items is valid until the list is
// returned with [Pool.Put]; after that the handle stays released and
// Items is nil.
type List[T any] struct {
	Items []T

	buf      *[]T
	released bool
}

// Append adds values to the list.
func (l *List[T]) Append(v ...T) {
	l.Items = append(l.Items, v...)
}

// Len returns the number of items in the list.
func (l *List[T]) Len() int {
	return len(l.Items)
}

// Pool manages reusable scratch lists of T.
// Only the backing storage is reused: every Get returns a fresh handle,
// so a handle that was already returned can never be returned again.
// After warmup, Get allocates only the handle.
//
// Usage:
//
//	p := pool.New[int]()
//	l := p.Get()
//	defer p.Put(l)
//	// use l.Items...
//
// A Pool may be used reentrantly: a caller holding one list may Get
// another before returning the first.
type Pool[T any] struct {
	pool        sync.Pool
	outstanding atomic.Int64
}

// New creates a new list pool.
func New[T any]() *Pool[T] {
	p := &Pool[T]{}
	p.pool.New = func() any {
		return new([]T)
	}
	return p
}

// Get retrieves an empty list from the pool.
func (p *Pool[T]) Get() *List[T] {
	buf := p.pool.Get().(*[]T)
	p.outstanding.Add(1)
	return &List[T]{Items: (*buf)[:0], buf: buf}
}

// GetCopy retrieves a list from the pool holding a copy of src.
func (p *Pool[T]) GetCopy(src []T) *List[T] {
	l := p.Get()
	l.Items = append(l.Items, src...)
	return l
}

// Put clears l and returns its storage to the pool.
// Putting nil is a no-op. Putting the same list twice panics.
func (p *Pool[T]) Put(l *List[T]) {
	if l == nil {
		return
	}
	if l.released {
		panic("pool: list released twice")
	}
	clear(l.Items)
	*l.buf = l.Items[:0]
	p.pool.Put(l.buf)

	l.Items = nil
	l.buf = nil
	l.released = true
	p.outstanding.Add(-1)
}

// Outstanding reports how many lists have been taken with Get and not yet
// returned.
func (p *Pool[T]) Outstanding() int {
	return int(p.outstanding.Load())
}

// Warmup pre-allocates lists to avoid allocation during critical paths.
func (p *Pool[T]) Warmup(count int) {
	lists := make([]*List[T], count)
	for i := range lists {
		lists[i] = p.Get()
	}
	for _, l := range lists {
		p.Put(l)
	}
}
