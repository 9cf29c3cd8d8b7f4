package audio

import "errors"

// Errors shared across device backends.
var (
	// ErrDeviceClosed is returned when a stream is used after Close.
	ErrDeviceClosed = errors.New("audio: device closed")

	// ErrRateChangeUnsupported is returned by backends whose underlying
	// audio context is fixed to the sample rate of the first stream.
	ErrRateChangeUnsupported = errors.New("audio: backend cannot change sample rate after first open")
)

// Device opens playback streams. Implementations cover real hardware
// (PortAudio, oto) and an in-memory fake for tests.
type Device interface {
	// Open creates a mono float32 output stream at the given sample rate.
	Open(sampleRate int) (Stream, error)
}

// Stream is a mono float32 playback stream. Write blocks until the device
// has accepted the samples, which is what paces the playback pipeline.
type Stream interface {
	// Write plays one frame of samples, blocking until the device buffer
	// has room for all of them.
	Write(samples []float32) error

	// Stop halts playback without waiting for buffered audio to drain.
	Stop() error

	// Close releases the stream. Closing a stopped or closed stream is
	// a no-op.
	Close() error
}
