// Package piper runs the piper text to speech binary and streams its raw
// PCM output as float32 chunks.
package piper

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"readaloud/internal/speech"
)

// DefaultSampleRate is the output rate of the common piper voices.
const DefaultSampleRate = 22050

// readChunk is the stdout read size in bytes. At two bytes per sample this
// yields 4096 samples per chunk.
const readChunk = 8192

// Config describes how to invoke piper.
type Config struct {
	BinaryPath  string
	ModelPath   string
	ConfigPath  string
	SampleRate  int
	LengthScale float64
	SpeakerID   int
	Timeout     time.Duration
}

// DefaultConfig returns a piper configuration with the binary resolved from
// PATH and the common voice sample rate.
func DefaultConfig() Config {
	binary, _ := exec.LookPath("piper")
	return Config{
		BinaryPath: binary,
		SampleRate: DefaultSampleRate,
		Timeout:    30 * time.Second,
	}
}

// Validate checks that the configuration can produce audio.
func (c Config) Validate() error {
	if c.BinaryPath == "" {
		return errors.New("piper: binary path not set and piper not found in PATH")
	}
	if c.ModelPath == "" {
		return errors.New("piper: model path not set")
	}
	if c.SampleRate <= 0 {
		return fmt.Errorf("piper: sample rate must be positive, got %d", c.SampleRate)
	}
	return nil
}

// Engine implements speech.Engine by running one piper process per line.
// A fresh process per request costs startup time but cannot wedge the
// pipeline with a stuck long-lived child.
type Engine struct {
	config Config
	logger *log.Logger
}

// New creates a piper engine.
func New(config Config, logger *log.Logger) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	return &Engine{config: config, logger: logger}, nil
}

// Available reports whether the piper binary runs at all.
func (e *Engine) Available() bool {
	return exec.Command(e.config.BinaryPath, "--help").Run() == nil
}

// Synthesize starts piper for the given text and returns a channel of audio
// chunks. The channel closes when piper's output is exhausted; a process
// failure after startup is reported through the engine's logger and ends
// the stream early.
func (e *Engine) Synthesize(text string) (<-chan speech.Chunk, error) {
	args := []string{
		"--model", e.config.ModelPath,
		"--output-raw",
	}
	if e.config.ConfigPath != "" {
		args = append(args, "--config", e.config.ConfigPath)
	}
	if e.config.LengthScale > 0 {
		args = append(args, "--length-scale",
			strconv.FormatFloat(e.config.LengthScale, 'f', -1, 64))
	}
	if e.config.SpeakerID > 0 {
		args = append(args, "--speaker", strconv.Itoa(e.config.SpeakerID))
	}

	cmd := exec.Command(e.config.BinaryPath, args...)
	cmd.Stdin = strings.NewReader(text + "\n")
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("piper: stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("piper: start: %w", err)
	}

	timer := time.AfterFunc(e.config.Timeout, func() {
		e.logger.Warn("piper timed out, killing process", "timeout", e.config.Timeout)
		cmd.Process.Kill()
	})

	ch := make(chan speech.Chunk)
	go func() {
		defer close(ch)
		defer timer.Stop()

		buf := make([]byte, readChunk)
		var readErr error
		for {
			n, err := io.ReadFull(stdout, buf)
			if n > 0 {
				ch <- speech.Chunk{
					SampleRate: e.config.SampleRate,
					Samples:    pcm16ToFloat32(buf[:n&^1]),
				}
			}
			if err != nil {
				if err != io.EOF && err != io.ErrUnexpectedEOF {
					e.logger.Error("piper read failed", "err", err)
					readErr = err
				}
				break
			}
		}

		if err := cmd.Wait(); err != nil {
			e.logger.Error("piper exited with error", "err", err)
			if readErr == nil {
				readErr = err
			}
		}
		if readErr != nil {
			ch <- speech.Chunk{Err: fmt.Errorf("piper: truncated output: %w", readErr)}
		}
	}()
	return ch, nil
}

// pcm16ToFloat32 converts little endian signed 16 bit PCM to float32 samples
// in [-1, 1).
func pcm16ToFloat32(data []byte) []float32 {
	samples := make([]float32, len(data)/2)
	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(data[i*2:]))
		samples[i] = float32(v) / 32768
	}
	return samples
}
