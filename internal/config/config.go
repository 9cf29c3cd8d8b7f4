// Package config holds the runtime configuration for readaloud.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the full runtime configuration. It is assembled from defaults,
// the config file, and READALOUD_* environment variables, in that order.
type Config struct {
	// Engine selects the synthesis backend.
	Engine string `yaml:"engine" env:"READALOUD_ENGINE"`

	// Device selects the playback backend.
	Device string `yaml:"device" env:"READALOUD_DEVICE"`

	// StartLine skips this many non-blank lines at the top of the file.
	StartLine int `yaml:"start_line" env:"READALOUD_START_LINE"`

	Pipeline PipelineConfig `yaml:"pipeline"`
	Piper    PiperConfig    `yaml:"piper"`
	Cache    CacheConfig    `yaml:"cache"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Log      LogConfig      `yaml:"log"`
}

// PipelineConfig tunes the synthesis and playback pipeline.
type PipelineConfig struct {
	FrameSize      int           `yaml:"frame_size" env:"READALOUD_FRAME_SIZE"`
	QueueCapacity  int           `yaml:"queue_capacity" env:"READALOUD_QUEUE_CAPACITY"`
	PushTimeout    time.Duration `yaml:"push_timeout" env:"READALOUD_PUSH_TIMEOUT"`
	PollInterval   time.Duration `yaml:"poll_interval" env:"READALOUD_POLL_INTERVAL"`
	LineDrainDelay time.Duration `yaml:"line_drain_delay" env:"READALOUD_LINE_DRAIN_DELAY"`
}

// PiperConfig configures the piper engine.
type PiperConfig struct {
	Binary      string        `yaml:"binary" env:"READALOUD_PIPER_BINARY"`
	ModelPath   string        `yaml:"model_path" env:"READALOUD_PIPER_MODEL_PATH"`
	ConfigPath  string        `yaml:"config_path" env:"READALOUD_PIPER_CONFIG_PATH"`
	SampleRate  int           `yaml:"sample_rate" env:"READALOUD_PIPER_SAMPLE_RATE"`
	LengthScale float64       `yaml:"length_scale" env:"READALOUD_PIPER_LENGTH_SCALE"`
	SpeakerID   int           `yaml:"speaker_id" env:"READALOUD_PIPER_SPEAKER_ID"`
	Timeout     time.Duration `yaml:"timeout" env:"READALOUD_PIPER_TIMEOUT"`
}

// CacheConfig configures the in-memory synthesis cache.
type CacheConfig struct {
	Enabled  bool  `yaml:"enabled" env:"READALOUD_CACHE_ENABLED"`
	MaxBytes int64 `yaml:"max_bytes" env:"READALOUD_CACHE_MAX_BYTES"`
}

// MetricsConfig configures the optional Prometheus endpoint.
type MetricsConfig struct {
	Enabled    bool   `yaml:"enabled" env:"READALOUD_METRICS_ENABLED"`
	ListenAddr string `yaml:"listen_addr" env:"READALOUD_METRICS_LISTEN_ADDR"`
}

// LogConfig configures logging output.
type LogConfig struct {
	Level string `yaml:"level" env:"READALOUD_LOG_LEVEL"`
	File  string `yaml:"file" env:"READALOUD_LOG_FILE"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Engine: "piper",
		Device: "portaudio",
		Pipeline: PipelineConfig{
			FrameSize:      2048,
			QueueCapacity:  100,
			PushTimeout:    20 * time.Millisecond,
			PollInterval:   50 * time.Millisecond,
			LineDrainDelay: 250 * time.Millisecond,
		},
		Piper: PiperConfig{
			Binary:      "piper",
			SampleRate:  22050,
			LengthScale: 1.0,
			Timeout:     30 * time.Second,
		},
		Cache: CacheConfig{
			Enabled:  true,
			MaxBytes: 64 << 20,
		},
		Metrics: MetricsConfig{
			ListenAddr: "localhost:9190",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks the configuration and normalizes enum fields.
func (c *Config) Validate() error {
	engines := []string{"piper", "mock"}
	if !normalize(&c.Engine, engines) {
		return fmt.Errorf("invalid engine %q: must be one of %v", c.Engine, engines)
	}

	devices := []string{"portaudio", "oto", "mock"}
	if !normalize(&c.Device, devices) {
		return fmt.Errorf("invalid device %q: must be one of %v", c.Device, devices)
	}

	if c.StartLine < 0 {
		return fmt.Errorf("start_line cannot be negative, got %d", c.StartLine)
	}

	levels := []string{"debug", "info", "warn", "error"}
	if !normalize(&c.Log.Level, levels) {
		return fmt.Errorf("invalid log level %q: must be one of %v", c.Log.Level, levels)
	}

	if err := c.Pipeline.Validate(); err != nil {
		return fmt.Errorf("pipeline config: %w", err)
	}
	if c.Engine == "piper" {
		if err := c.Piper.Validate(); err != nil {
			return fmt.Errorf("piper config: %w", err)
		}
	}
	if c.Cache.Enabled && c.Cache.MaxBytes <= 0 {
		return fmt.Errorf("cache config: max_bytes must be positive, got %d", c.Cache.MaxBytes)
	}
	return nil
}

// Validate checks the pipeline tuning values.
func (c *PipelineConfig) Validate() error {
	if c.FrameSize <= 0 {
		return fmt.Errorf("frame_size must be positive, got %d", c.FrameSize)
	}
	if c.QueueCapacity <= 0 {
		return fmt.Errorf("queue_capacity must be positive, got %d", c.QueueCapacity)
	}
	if c.PushTimeout <= 0 {
		return fmt.Errorf("push_timeout must be positive, got %v", c.PushTimeout)
	}
	if c.PollInterval <= 0 || c.PollInterval > 100*time.Millisecond {
		return fmt.Errorf("poll_interval must be in (0, 100ms], got %v", c.PollInterval)
	}
	if c.LineDrainDelay < 0 {
		return fmt.Errorf("line_drain_delay cannot be negative, got %v", c.LineDrainDelay)
	}
	return nil
}

// Validate checks the piper engine settings.
func (c *PiperConfig) Validate() error {
	if c.Binary == "" {
		return fmt.Errorf("binary cannot be empty")
	}
	if c.SampleRate <= 0 {
		return fmt.Errorf("sample_rate must be positive, got %d", c.SampleRate)
	}
	if c.LengthScale <= 0 || c.LengthScale > 3.0 {
		return fmt.Errorf("length_scale must be in (0, 3.0], got %f", c.LengthScale)
	}
	if c.Timeout < time.Second {
		return fmt.Errorf("timeout must be at least 1s, got %v", c.Timeout)
	}
	return nil
}

// normalize lowercases *value and reports whether it is one of valid.
func normalize(value *string, valid []string) bool {
	for _, v := range valid {
		if strings.EqualFold(*value, v) {
			*value = v
			return true
		}
	}
	return false
}
