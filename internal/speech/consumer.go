package speech

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"readaloud/internal/audio"
	"readaloud/internal/observability"
)

// consumer drains the frame queue and writes frames to the audio device. It
// owns the device stream: the stream opens lazily on the first frame and
// reopens whenever the sample rate changes mid-session.
type consumer struct {
	device  audio.Device
	frames  *FrameQueue
	ctrl    *controls
	opts    Options
	logger  *log.Logger
	notify  Notifier
	metrics *observability.Metrics

	mu     sync.Mutex
	stream audio.Stream
	rate   int
}

func (c *consumer) run() {
	c.logger.Debug("consumer started")
	defer c.logger.Debug("consumer exited")
	defer c.closeStream()

	currentLine := ""
	lineEnd := time.Now()

	for {
		it := c.frames.Pop()

		if c.ctrl.stopping.Load() {
			return
		}

		switch it.Kind {
		case KindTerminate:
			return

		case KindEndOfLine:
			// Let the device finish buffered audio before reporting
			// the line done, so the gap measurement reflects what
			// the listener actually hears.
			time.Sleep(c.opts.LineDrainDelay)
			now := time.Now()
			c.notify.LineFinished(it.Line, now.Sub(lineEnd))
			lineEnd = now
			currentLine = ""
			if c.metrics != nil {
				c.metrics.LinesSpoken.Inc()
			}

		case KindFrame:
			if !c.ctrl.waitWhilePaused(c.opts.PollInterval) {
				return
			}
			if it.Line != currentLine {
				currentLine = it.Line
				c.notify.LineStarted(it.Line)
			}
			c.playFrame(it.Frame)
		}

		if c.metrics != nil {
			c.metrics.QueueDepth.Set(float64(c.frames.Len()))
		}
	}
}

func (c *consumer) playFrame(f Frame) {
	stream, err := c.ensureStream(f.SampleRate)
	if err != nil {
		c.logger.Error("audio device unavailable, dropping frame", "rate", f.SampleRate, "err", err)
		c.notify.PipelineError("playback", err)
		return
	}

	if err := stream.Write(f.Samples); err != nil {
		c.logger.Error("frame write failed", "err", err)
		c.notify.PipelineError("playback", err)
		return
	}
	if c.metrics != nil {
		c.metrics.FramesPlayed.Inc()
	}
}

// ensureStream returns an open stream for the given sample rate, reopening
// the device when the rate changes between lines.
func (c *consumer) ensureStream(rate int) (audio.Stream, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stream != nil && c.rate == rate {
		return c.stream, nil
	}

	if c.stream != nil {
		c.logger.Debug("sample rate changed, reopening stream", "old", c.rate, "new", rate)
		if err := c.stream.Stop(); err != nil {
			c.logger.Warn("stream stop failed", "err", err)
		}
		if err := c.stream.Close(); err != nil {
			c.logger.Warn("stream close failed", "err", err)
		}
		c.stream = nil
		if c.metrics != nil {
			c.metrics.DeviceReopens.Inc()
		}
	}

	stream, err := c.device.Open(rate)
	if err != nil {
		return nil, err
	}
	c.stream = stream
	c.rate = rate
	return stream, nil
}

// closeStream stops and closes the device stream exactly once. Both the
// consumer goroutine and Stop call it; whoever arrives second finds nil.
func (c *consumer) closeStream() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stream == nil {
		return
	}
	if err := c.stream.Stop(); err != nil {
		c.logger.Warn("stream stop failed", "err", err)
	}
	if err := c.stream.Close(); err != nil {
		c.logger.Warn("stream close failed", "err", err)
	}
	c.stream = nil
	c.rate = 0
}
