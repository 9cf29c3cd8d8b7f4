package speech

import "time"

// Chunk is one piece of synthesized audio as produced by an Engine. A single
// line of text may synthesize into several chunks, and chunks from different
// lines may carry different sample rates.
//
// An engine that cannot finish a line sends a final chunk with Err set and
// no samples before closing the channel. A stream that closes without an
// error chunk is complete.
type Chunk struct {
	SampleRate int       // Sample rate in Hz
	Samples    []float32 // Mono interleaved samples
	Err        error     // Set on the terminal chunk of a truncated stream
}

// Engine defines the contract for text-to-speech engines. Synthesize returns
// a lazy, finite stream of audio chunks; the channel is closed when the line
// is fully synthesized. The stream may be empty for blank input.
type Engine interface {
	Synthesize(text string) (<-chan Chunk, error)
}

// Notifier receives diagnostic events from the pipeline. Callbacks run on
// the pipeline goroutines and should return promptly; a slow callback delays
// playback.
type Notifier interface {
	// LineStarted fires when the consumer writes the first frame of a line.
	LineStarted(line string)

	// LineFinished fires after all frames of a line have been played. The gap
	// is the time elapsed since the previous line finished.
	LineFinished(line string, gap time.Duration)

	// PipelineError reports a recovered error (skipped line, truncated
	// stream, dropped frame).
	PipelineError(stage string, err error)
}
