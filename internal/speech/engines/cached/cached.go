// Package cached wraps a synthesis engine with an in-memory LRU so repeated
// lines are served without resynthesizing.
package cached

import (
	"container/list"
	"sync"

	"readaloud/internal/speech"
)

// DefaultCapacity bounds the cache at roughly 64MB of samples.
const DefaultCapacity = 64 << 20

// Stats reports cache activity.
type Stats struct {
	Hits     int64
	Misses   int64
	Size     int64
	Capacity int64
}

// Engine is a speech.Engine with an LRU keyed by line text. Eviction is by
// total sample bytes, oldest access first.
type Engine struct {
	inner speech.Engine

	mu       sync.Mutex
	capacity int64
	size     int64
	items    map[string]*list.Element
	eviction *list.List
	hits     int64
	misses   int64
}

type entry struct {
	key    string
	chunks []speech.Chunk
	size   int64
}

// New wraps inner with a cache of capacity bytes. A capacity below one falls
// back to DefaultCapacity.
func New(inner speech.Engine, capacity int64) *Engine {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Engine{
		inner:    inner,
		capacity: capacity,
		items:    make(map[string]*list.Element),
		eviction: list.New(),
	}
}

// Synthesize serves the line from cache when possible, otherwise synthesizes
// it, forwarding chunks as they arrive and caching the full result.
func (e *Engine) Synthesize(text string) (<-chan speech.Chunk, error) {
	e.mu.Lock()
	if elem, ok := e.items[text]; ok {
		e.eviction.MoveToFront(elem)
		chunks := elem.Value.(*entry).chunks
		e.hits++
		e.mu.Unlock()
		return replay(chunks), nil
	}
	e.misses++
	e.mu.Unlock()

	stream, err := e.inner.Synthesize(text)
	if err != nil {
		return nil, err
	}

	out := make(chan speech.Chunk)
	go func() {
		defer close(out)
		var chunks []speech.Chunk
		truncated := false
		for chunk := range stream {
			if chunk.Err != nil {
				truncated = true
			} else {
				chunks = append(chunks, chunk)
			}
			out <- chunk
		}
		// A truncated stream would replay as if it were the whole line,
		// so only complete results are cached.
		if !truncated && len(chunks) > 0 {
			e.store(text, chunks)
		}
	}()
	return out, nil
}

func replay(chunks []speech.Chunk) <-chan speech.Chunk {
	out := make(chan speech.Chunk, len(chunks))
	for _, c := range chunks {
		out <- c
	}
	close(out)
	return out
}

func (e *Engine) store(key string, chunks []speech.Chunk) {
	var size int64
	for _, c := range chunks {
		size += int64(len(c.Samples)) * 4
	}
	if size > e.capacity {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.items[key]; ok {
		return
	}

	for e.size+size > e.capacity {
		oldest := e.eviction.Back()
		if oldest == nil {
			break
		}
		ent := oldest.Value.(*entry)
		e.eviction.Remove(oldest)
		delete(e.items, ent.key)
		e.size -= ent.size
	}

	ent := &entry{key: key, chunks: chunks, size: size}
	e.items[key] = e.eviction.PushFront(ent)
	e.size += size
}

// Stats returns a snapshot of cache activity.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Stats{
		Hits:     e.hits,
		Misses:   e.misses,
		Size:     e.size,
		Capacity: e.capacity,
	}
}
