//go:build cgo

package audio

import (
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"
)

// paInit initializes the PortAudio runtime once per process. There is no
// matching Terminate; the runtime lives for the life of the process.
var paInit sync.Once

// PortAudioDevice plays audio through the default system output via
// PortAudio. It is the default backend: its blocking Write is what lets the
// playback loop pace itself against real time.
type PortAudioDevice struct {
	frameSize int
}

// NewPortAudioDevice returns a device whose streams write in blocks of
// frameSize samples. Frames shorter than frameSize are zero-padded; longer
// writes are split.
func NewPortAudioDevice(frameSize int) (*PortAudioDevice, error) {
	if frameSize <= 0 {
		return nil, fmt.Errorf("audio: frame size must be positive, got %d", frameSize)
	}
	var initErr error
	paInit.Do(func() {
		initErr = portaudio.Initialize()
	})
	if initErr != nil {
		return nil, fmt.Errorf("audio: portaudio init: %w", initErr)
	}
	return &PortAudioDevice{frameSize: frameSize}, nil
}

// Open starts a mono output stream on the default device at the given rate.
func (d *PortAudioDevice) Open(sampleRate int) (Stream, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("audio: sample rate must be positive, got %d", sampleRate)
	}

	buf := make([]float32, d.frameSize)
	stream, err := portaudio.OpenDefaultStream(0, 1, float64(sampleRate), d.frameSize, &buf)
	if err != nil {
		return nil, fmt.Errorf("audio: open stream at %dHz: %w", sampleRate, err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		return nil, fmt.Errorf("audio: start stream: %w", err)
	}
	return &portAudioStream{stream: stream, buf: buf}, nil
}

type portAudioStream struct {
	mu     sync.Mutex
	stream *portaudio.Stream
	buf    []float32
	closed bool
}

func (s *portAudioStream) Write(samples []float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrDeviceClosed
	}

	for len(samples) > 0 {
		n := copy(s.buf, samples)
		samples = samples[n:]
		// Pad the final short frame with silence so the device always
		// receives a full buffer.
		for i := n; i < len(s.buf); i++ {
			s.buf[i] = 0
		}
		if err := s.stream.Write(); err != nil {
			return fmt.Errorf("audio: write: %w", err)
		}
	}
	return nil
}

// Stop aborts playback immediately, discarding buffered audio.
func (s *portAudioStream) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	if err := s.stream.Abort(); err != nil {
		return fmt.Errorf("audio: abort: %w", err)
	}
	return nil
}

func (s *portAudioStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.stream.Close(); err != nil {
		return fmt.Errorf("audio: close: %w", err)
	}
	return nil
}
