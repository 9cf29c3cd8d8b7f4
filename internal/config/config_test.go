package config

import (
	"testing"
	"time"
)

// TestDefaultIsValid verifies the built-in configuration validates.
func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

// TestValidateNormalizesCase verifies enum fields are lowercased.
func TestValidateNormalizesCase(t *testing.T) {
	cfg := Default()
	cfg.Engine = "PIPER"
	cfg.Device = "Mock"
	cfg.Log.Level = "DEBUG"

	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if cfg.Engine != "piper" {
		t.Errorf("Engine = %q, want piper", cfg.Engine)
	}
	if cfg.Device != "mock" {
		t.Errorf("Device = %q, want mock", cfg.Device)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
}

// TestValidateRejects tests rejection of invalid values.
func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown engine", func(c *Config) { c.Engine = "espeak" }},
		{"unknown device", func(c *Config) { c.Device = "alsa" }},
		{"negative start line", func(c *Config) { c.StartLine = -1 }},
		{"unknown log level", func(c *Config) { c.Log.Level = "trace" }},
		{"zero frame size", func(c *Config) { c.Pipeline.FrameSize = 0 }},
		{"zero queue capacity", func(c *Config) { c.Pipeline.QueueCapacity = 0 }},
		{"zero push timeout", func(c *Config) { c.Pipeline.PushTimeout = 0 }},
		{"poll interval too long", func(c *Config) { c.Pipeline.PollInterval = time.Second }},
		{"negative drain delay", func(c *Config) { c.Pipeline.LineDrainDelay = -time.Millisecond }},
		{"empty piper binary", func(c *Config) { c.Piper.Binary = "" }},
		{"zero piper sample rate", func(c *Config) { c.Piper.SampleRate = 0 }},
		{"piper length scale too large", func(c *Config) { c.Piper.LengthScale = 5.0 }},
		{"piper timeout too short", func(c *Config) { c.Piper.Timeout = 100 * time.Millisecond }},
		{"cache enabled with zero max bytes", func(c *Config) { c.Cache.MaxBytes = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() accepted an invalid configuration")
			}
		})
	}
}

// TestValidateSkipsPiperForMockEngine verifies piper settings are not
// enforced when the mock engine is selected.
func TestValidateSkipsPiperForMockEngine(t *testing.T) {
	cfg := Default()
	cfg.Engine = "mock"
	cfg.Piper.Binary = ""

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil for mock engine", err)
	}
}
