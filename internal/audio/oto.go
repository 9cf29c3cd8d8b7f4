//go:build cgo || !linux

package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// otoCtx caches the process-wide oto context. oto permits exactly one
// context per process, so the first Open fixes the sample rate; later opens
// at a different rate fail with ErrRateChangeUnsupported.
var otoCtx struct {
	mu   sync.Mutex
	ctx  *oto.Context
	rate int
}

// OtoDevice plays audio through ebitengine/oto. It is the fallback backend
// for platforms without PortAudio; prefer PortAudioDevice where available
// because oto cannot follow mid-session sample rate changes.
type OtoDevice struct{}

// NewOtoDevice returns the oto-backed device.
func NewOtoDevice() *OtoDevice {
	return &OtoDevice{}
}

// Open returns a stream at the given rate. The first call creates the
// process-wide context; subsequent calls must use the same rate.
func (d *OtoDevice) Open(sampleRate int) (Stream, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("audio: sample rate must be positive, got %d", sampleRate)
	}

	ctx, err := contextFor(sampleRate)
	if err != nil {
		return nil, err
	}

	// oto pulls samples from a reader; the pipe converts our blocking
	// push writes into that pull model.
	pr, pw := io.Pipe()
	player := ctx.NewPlayer(pr)
	player.Play()

	return &otoStream{player: player, pr: pr, pw: pw}, nil
}

func contextFor(sampleRate int) (*oto.Context, error) {
	otoCtx.mu.Lock()
	defer otoCtx.mu.Unlock()

	if otoCtx.ctx != nil {
		if otoCtx.rate != sampleRate {
			return nil, fmt.Errorf("audio: context fixed at %dHz, cannot open %dHz: %w",
				otoCtx.rate, sampleRate, ErrRateChangeUnsupported)
		}
		return otoCtx.ctx, nil
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   100 * time.Millisecond,
	})
	if err != nil {
		return nil, fmt.Errorf("audio: create oto context: %w", err)
	}
	<-ready

	otoCtx.ctx = ctx
	otoCtx.rate = sampleRate
	return ctx, nil
}

type otoStream struct {
	mu      sync.Mutex
	player  *oto.Player
	pr      *io.PipeReader
	pw      *io.PipeWriter
	closed  bool
	scratch []byte
}

func (s *otoStream) Write(samples []float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrDeviceClosed
	}

	if cap(s.scratch) < len(samples)*4 {
		s.scratch = make([]byte, len(samples)*4)
	}
	buf := s.scratch[:len(samples)*4]
	for i, v := range samples {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}

	if _, err := s.pw.Write(buf); err != nil {
		return fmt.Errorf("audio: write: %w", err)
	}
	return nil
}

func (s *otoStream) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.player.Pause()
	return nil
}

func (s *otoStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	// Closing the pipe ends the player's reader with EOF; closing the
	// player releases its device resources. The shared context stays
	// alive for later streams.
	s.pw.Close()
	s.pr.Close()
	if err := s.player.Close(); err != nil {
		return fmt.Errorf("audio: close player: %w", err)
	}
	return nil
}
