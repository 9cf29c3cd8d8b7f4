package speech

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"readaloud/internal/observability"
)

// Default pipeline tuning values.
const (
	// DefaultFrameSize is the number of samples forwarded to the device in
	// one write. Smaller frames reduce pause/stop latency, larger frames
	// reduce per-write overhead.
	DefaultFrameSize = 2048

	// DefaultQueueCapacity bounds the frame queue. At 2048 samples per frame
	// and 22050Hz this holds roughly nine seconds of audio.
	DefaultQueueCapacity = 100

	// DefaultPushTimeout is how long one enqueue attempt blocks before the
	// producer re-checks the stop flag.
	DefaultPushTimeout = 20 * time.Millisecond

	// DefaultPollInterval is the sleep between pause-flag checks. It bounds
	// how long a pause or stop takes to be observed.
	DefaultPollInterval = 50 * time.Millisecond

	// DefaultLineDrainDelay is the settle time after a line's last frame,
	// letting device buffers drain before the line is reported finished.
	DefaultLineDrainDelay = 250 * time.Millisecond
)

// Options configures a Streamer. The zero value is usable: Validate fills in
// defaults for unset fields.
type Options struct {
	FrameSize      int           // Samples per device write
	QueueCapacity  int           // Frame queue capacity (backpressure bound)
	PushTimeout    time.Duration // Single enqueue attempt duration
	PollInterval   time.Duration // Pause/stop flag polling granularity
	LineDrainDelay time.Duration // Settle time after each line

	Notifier Notifier               // Diagnostics sink; defaults to logging
	Metrics  *observability.Metrics // Optional pipeline metrics
	Logger   *log.Logger            // Defaults to the package-level logger
}

// DefaultOptions returns the default pipeline configuration.
func DefaultOptions() Options {
	return Options{
		FrameSize:      DefaultFrameSize,
		QueueCapacity:  DefaultQueueCapacity,
		PushTimeout:    DefaultPushTimeout,
		PollInterval:   DefaultPollInterval,
		LineDrainDelay: DefaultLineDrainDelay,
	}
}

// Validate fills defaults for zero-valued fields and rejects values that
// would stall or break the pipeline.
func (o *Options) Validate() error {
	if o.FrameSize == 0 {
		o.FrameSize = DefaultFrameSize
	}
	if o.QueueCapacity == 0 {
		o.QueueCapacity = DefaultQueueCapacity
	}
	if o.PushTimeout == 0 {
		o.PushTimeout = DefaultPushTimeout
	}
	if o.PollInterval == 0 {
		o.PollInterval = DefaultPollInterval
	}
	if o.LineDrainDelay == 0 {
		o.LineDrainDelay = DefaultLineDrainDelay
	}

	if o.FrameSize < 0 {
		return fmt.Errorf("frame size must be positive, got %d", o.FrameSize)
	}
	if o.QueueCapacity < 0 {
		return fmt.Errorf("queue capacity must be positive, got %d", o.QueueCapacity)
	}
	if o.PushTimeout < 0 {
		return fmt.Errorf("push timeout must be positive, got %v", o.PushTimeout)
	}
	if o.PollInterval < 0 {
		return fmt.Errorf("poll interval must be positive, got %v", o.PollInterval)
	}
	if o.PollInterval > 100*time.Millisecond {
		return fmt.Errorf("poll interval above 100ms makes stop unresponsive, got %v", o.PollInterval)
	}
	if o.LineDrainDelay < 0 {
		return fmt.Errorf("line drain delay cannot be negative, got %v", o.LineDrainDelay)
	}

	if o.Logger == nil {
		o.Logger = log.Default()
	}
	return nil
}
