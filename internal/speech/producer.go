package speech

import (
	"github.com/charmbracelet/log"

	"readaloud/internal/observability"
)

// producer drains the text queue, synthesizes each line, and feeds frames
// into the bounded frame queue. It runs on its own goroutine until it
// observes a stop or receives the termination token.
type producer struct {
	engine  Engine
	text    *TextQueue
	frames  *FrameQueue
	ctrl    *controls
	opts    Options
	logger  *log.Logger
	notify  Notifier
	metrics *observability.Metrics
}

func (p *producer) run() {
	p.logger.Debug("producer started")
	defer p.logger.Debug("producer exited")

	for {
		if p.ctrl.stopping.Load() {
			return
		}

		line, terminate := p.text.Pop()
		if terminate {
			return
		}
		if line == "" {
			continue
		}

		p.produceLine(line)
	}
}

// produceLine synthesizes one line and enqueues its frames followed by one
// end-of-line marker. A synthesis failure skips the line; a stop aborts it
// without the marker so the consumer session ends cleanly.
func (p *producer) produceLine(line string) {
	chunks, err := p.engine.Synthesize(line)
	if err != nil {
		p.logger.Warn("synthesis failed, skipping line", "line", line, "err", err)
		p.notify.PipelineError("synthesis", err)
		if p.metrics != nil {
			p.metrics.LinesSkipped.Inc()
		}
		return
	}

	enqueued := false
	for chunk := range chunks {
		if p.ctrl.stopping.Load() {
			// Drain so the engine goroutine finishes its stream.
			for range chunks {
			}
			return
		}

		if chunk.Err != nil {
			p.logger.Warn("synthesis truncated", "line", line, "err", chunk.Err)
			if !enqueued {
				// Nothing played yet, so the line is skipped whole.
				p.notify.PipelineError("synthesis", chunk.Err)
				if p.metrics != nil {
					p.metrics.LinesSkipped.Inc()
				}
				for range chunks {
				}
				return
			}
			p.notify.PipelineError("truncation", chunk.Err)
			continue
		}

		for _, samples := range SplitFrames(chunk.Samples, p.opts.FrameSize) {
			if !p.enqueueFrame(Frame{Samples: samples, SampleRate: chunk.SampleRate}, line) {
				for range chunks {
				}
				return
			}
			enqueued = true
		}
	}

	if p.ctrl.stopping.Load() {
		return
	}

	// One marker per line, even when playback was paused in between. The
	// enqueue keeps retrying because losing the marker would desync the
	// consumer's line tracking.
	p.enqueueItem(endOfLineItem(line))
}

// enqueueFrame honors pause, then pushes with short-timeout retries so a stop
// is observed within one polling interval even under full-queue backpressure.
// It returns false if the pipeline is stopping.
func (p *producer) enqueueFrame(f Frame, line string) bool {
	if !p.ctrl.waitWhilePaused(p.opts.PollInterval) {
		return false
	}
	if !p.enqueueItem(frameItem(f, line)) {
		return false
	}
	if p.metrics != nil {
		p.metrics.FramesSynthesized.Inc()
		p.metrics.QueueDepth.Set(float64(p.frames.Len()))
	}
	return true
}

func (p *producer) enqueueItem(it Item) bool {
	for {
		if p.ctrl.stopping.Load() {
			return false
		}
		if p.frames.Push(it, p.opts.PushTimeout) {
			return true
		}
	}
}
