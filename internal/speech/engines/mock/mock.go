// Package mock provides a synthesis engine for testing. It produces silence
// sized to the input text without touching any real model.
package mock

import (
	"sync"
	"time"

	"readaloud/internal/speech"
)

// DefaultSampleRate matches the rate most piper voices synthesize at.
const DefaultSampleRate = 22050

// Engine implements speech.Engine for testing. The zero value is not usable;
// call New.
type Engine struct {
	mu sync.Mutex

	delay      time.Duration
	sampleRate int
	chunkSize  int

	shouldFail   bool
	failureError error

	// RateFunc, when set, picks the sample rate per call. Tests use it to
	// force mid-session rate changes.
	rateFunc func(call int) int

	callCount int
	lines     []string
}

// New creates a mock engine that emits one chunk of silence per call.
func New() *Engine {
	return &Engine{
		sampleRate: DefaultSampleRate,
		chunkSize:  4096,
	}
}

// Synthesize returns a channel carrying silent audio for the text. The
// channel closes when the simulated synthesis finishes.
func (e *Engine) Synthesize(text string) (<-chan speech.Chunk, error) {
	e.mu.Lock()
	e.callCount++
	call := e.callCount
	delay := e.delay
	chunkSize := e.chunkSize
	rate := e.sampleRate
	if e.rateFunc != nil {
		rate = e.rateFunc(call)
	}
	fail := e.shouldFail
	failErr := e.failureError
	e.lines = append(e.lines, text)
	e.mu.Unlock()

	if fail {
		return nil, failErr
	}

	ch := make(chan speech.Chunk)
	go func() {
		defer close(ch)
		if delay > 0 {
			time.Sleep(delay)
		}
		ch <- speech.Chunk{
			SampleRate: rate,
			Samples:    make([]float32, chunkSize),
		}
	}()
	return ch, nil
}

// SetDelay sets a simulated synthesis delay before the chunk is emitted.
func (e *Engine) SetDelay(delay time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.delay = delay
}

// SetChunkSize sets how many samples each synthesized chunk carries.
func (e *Engine) SetChunkSize(n int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.chunkSize = n
}

// SetSampleRate sets the rate reported on every chunk.
func (e *Engine) SetSampleRate(rate int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sampleRate = rate
}

// SetRateFunc routes each Synthesize call through fn to pick its sample
// rate. The call number starts at 1.
func (e *Engine) SetRateFunc(fn func(call int) int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rateFunc = fn
}

// SetFailure configures the engine to fail every call with err.
func (e *Engine) SetFailure(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.shouldFail = true
	e.failureError = err
}

// ClearFailure resets the engine to normal operation.
func (e *Engine) ClearFailure() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.shouldFail = false
	e.failureError = nil
}

// CallCount returns the number of Synthesize calls so far.
func (e *Engine) CallCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.callCount
}

// Lines returns every text passed to Synthesize, in call order.
func (e *Engine) Lines() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, len(e.lines))
	copy(out, e.lines)
	return out
}
