package speech

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"readaloud/internal/audio"
)

// Streamer runs the synthesis and playback pipeline. Text queued with Speak
// flows through the engine on the producer goroutine, then through a bounded
// frame queue to the device on the consumer goroutine.
//
// A Streamer speaks one session: once stopped it cannot be restarted, and
// further Speak calls return ErrStopped. Create a new Streamer to speak again.
type Streamer struct {
	engine Engine
	device audio.Device
	opts   Options

	id     string
	state  atomic.Int32
	ctrl   controls
	text   *TextQueue
	frames *FrameQueue

	producer *producer
	consumer *consumer

	producerDone chan struct{}
	consumerDone chan struct{}

	stopOnce sync.Once
}

// New builds a Streamer and starts its producer and consumer goroutines.
// The zero Options value gives the default tuning.
func New(engine Engine, device audio.Device, opts Options) (*Streamer, error) {
	if engine == nil {
		return nil, ErrNilEngine
	}
	if device == nil {
		return nil, ErrNilDevice
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	logger := opts.Logger.With("session", id)
	if opts.Notifier == nil {
		opts.Notifier = &loggingNotifier{logger: logger}
	}

	s := &Streamer{
		engine:       engine,
		device:       device,
		opts:         opts,
		id:           id,
		text:         NewTextQueue(),
		frames:       NewFrameQueue(opts.QueueCapacity),
		producerDone: make(chan struct{}),
		consumerDone: make(chan struct{}),
	}
	s.state.Store(int32(StateRunning))

	s.producer = &producer{
		engine:  engine,
		text:    s.text,
		frames:  s.frames,
		ctrl:    &s.ctrl,
		opts:    opts,
		logger:  logger.With("role", "producer"),
		notify:  opts.Notifier,
		metrics: opts.Metrics,
	}
	s.consumer = &consumer{
		device:  device,
		frames:  s.frames,
		ctrl:    &s.ctrl,
		opts:    opts,
		logger:  logger.With("role", "consumer"),
		notify:  opts.Notifier,
		metrics: opts.Metrics,
	}

	go func() {
		defer close(s.producerDone)
		s.producer.run()
	}()
	go func() {
		defer close(s.consumerDone)
		s.consumer.run()
	}()

	logger.Debug("streamer started",
		"frame_size", opts.FrameSize,
		"queue_capacity", opts.QueueCapacity)
	return s, nil
}

// ID returns the session identifier carried in the streamer's log records.
func (s *Streamer) ID() string { return s.id }

// State reports the streamer's lifecycle state.
func (s *Streamer) State() StateType {
	return StateType(s.state.Load())
}

// Speak queues a line of text for synthesis and returns immediately. It never
// blocks on a full audio queue; backpressure is absorbed between the producer
// and the frame queue. After Stop it returns ErrStopped.
func (s *Streamer) Speak(text string) error {
	if s.State() != StateRunning {
		return ErrStopped
	}
	s.text.Push(text)
	return nil
}

// Pause suspends playback after the frame currently being written finishes.
// Queued audio is retained. Pausing an already paused streamer is a no-op.
func (s *Streamer) Pause() {
	if s.State() != StateRunning {
		return
	}
	s.ctrl.paused.Store(true)
}

// Resume continues playback from where Pause left off. Resuming a streamer
// that is not paused is a no-op.
func (s *Streamer) Resume() {
	s.ctrl.paused.Store(false)
}

// Paused reports whether playback is currently paused.
func (s *Streamer) Paused() bool {
	return s.ctrl.paused.Load()
}

// Stop abandons all queued text and audio and shuts the pipeline down. It is
// idempotent and safe to call from any goroutine, including a Notifier
// callback. Stop returns without waiting for the goroutines; use Join to
// bound the wait for them.
func (s *Streamer) Stop() {
	s.stopOnce.Do(func() {
		s.state.Store(int32(StateStopping))
		s.ctrl.stopping.Store(true)
		// Release anyone parked in a pause loop so they can observe the
		// stop flag.
		s.ctrl.paused.Store(false)

		// Discard pending work, then wake any Pop blocked on an empty
		// queue with termination tokens.
		s.text.Clear()
		s.frames.Clear()
		s.text.PushTerminate()
		s.frames.TryPush(terminateItem())

		s.consumer.closeStream()

		go func() {
			<-s.producerDone
			<-s.consumerDone
			s.state.Store(int32(StateStopped))
		}()
	})
}

// Join waits up to timeout for both pipeline goroutines to exit. It reports
// whether they finished in time. Callers that want an unconditional shutdown
// call Stop first.
func (s *Streamer) Join(timeout time.Duration) bool {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	select {
	case <-s.producerDone:
	case <-deadline.C:
		return false
	}
	select {
	case <-s.consumerDone:
		return true
	case <-deadline.C:
		return false
	}
}

// Wait blocks until both pipeline goroutines exit. The producer and consumer
// only exit after Stop, or after a Terminate token reaches both of them.
func (s *Streamer) Wait() {
	<-s.producerDone
	<-s.consumerDone
}

// QueueDepth reports how many items are waiting in the frame queue.
func (s *Streamer) QueueDepth() int {
	return s.frames.Len()
}
