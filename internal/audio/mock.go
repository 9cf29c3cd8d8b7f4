package audio

import (
	"sync"
	"sync/atomic"
)

// MockDevice implements Device for testing. It records every open and write
// without touching real hardware, and can inject failures or hold writes to
// simulate a slow device.
type MockDevice struct {
	mu      sync.Mutex
	streams []*MockStream

	openErr   error
	writeErr  error
	writeGate chan struct{}

	openCount atomic.Int64
}

// NewMockDevice creates a mock device that accepts every open and write.
func NewMockDevice() *MockDevice {
	return &MockDevice{}
}

// SetOpenError makes subsequent Open calls fail with err. Pass nil to clear.
func (d *MockDevice) SetOpenError(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.openErr = err
}

// SetWriteError makes subsequent writes on every stream fail with err.
func (d *MockDevice) SetWriteError(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.writeErr = err
}

// HoldWrites makes every write block until ReleaseWrites is called. Use it to
// simulate a slow device and force backpressure onto the frame queue.
func (d *MockDevice) HoldWrites() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.writeGate == nil {
		d.writeGate = make(chan struct{})
	}
}

// ReleaseWrites unblocks writes held by HoldWrites.
func (d *MockDevice) ReleaseWrites() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.writeGate != nil {
		close(d.writeGate)
		d.writeGate = nil
	}
}

// Open records the stream and returns it.
func (d *MockDevice) Open(sampleRate int) (Stream, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.openCount.Add(1)
	if d.openErr != nil {
		return nil, d.openErr
	}

	s := &MockStream{device: d, sampleRate: sampleRate}
	d.streams = append(d.streams, s)
	return s, nil
}

// OpenCount reports how many times Open was called, including failed opens.
func (d *MockDevice) OpenCount() int {
	return int(d.openCount.Load())
}

// Streams returns every stream opened so far, in order.
func (d *MockDevice) Streams() []*MockStream {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]*MockStream, len(d.streams))
	copy(out, d.streams)
	return out
}

// LastStream returns the most recently opened stream, or nil.
func (d *MockDevice) LastStream() *MockStream {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.streams) == 0 {
		return nil
	}
	return d.streams[len(d.streams)-1]
}

// MockStream records the samples written to it.
type MockStream struct {
	device     *MockDevice
	sampleRate int

	mu      sync.Mutex
	samples []float32
	writes  int
	stopped bool
	closed  bool
}

// SampleRate returns the rate the stream was opened with.
func (s *MockStream) SampleRate() int { return s.sampleRate }

func (s *MockStream) Write(samples []float32) error {
	s.device.mu.Lock()
	gate := s.device.writeGate
	err := s.device.writeErr
	s.device.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrDeviceClosed
	}
	s.samples = append(s.samples, samples...)
	s.writes++
	return nil
}

func (s *MockStream) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	return nil
}

func (s *MockStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Samples returns a copy of everything written to the stream.
func (s *MockStream) Samples() []float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]float32, len(s.samples))
	copy(out, s.samples)
	return out
}

// Writes reports the number of successful Write calls.
func (s *MockStream) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

// Stopped reports whether Stop was called.
func (s *MockStream) Stopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}

// Closed reports whether Close was called.
func (s *MockStream) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
