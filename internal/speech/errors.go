package speech

import "errors"

// Sentinel errors for the speech pipeline.
var (
	// ErrStopped is returned by Speak when the pipeline has been stopped.
	// A stopped pipeline is terminal; construct a new Streamer to speak again.
	ErrStopped = errors.New("pipeline has been stopped")

	// ErrNilEngine is returned by New when no synthesis engine is provided.
	ErrNilEngine = errors.New("synthesis engine is required")

	// ErrNilDevice is returned by New when no output device is provided.
	ErrNilDevice = errors.New("output device is required")
)
