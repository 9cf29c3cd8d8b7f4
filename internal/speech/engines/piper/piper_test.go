package piper

import (
	"testing"
	"time"
)

// TestConfigValidate tests configuration validation.
func TestConfigValidate(t *testing.T) {
	valid := Config{
		BinaryPath: "/usr/bin/piper",
		ModelPath:  "/models/en.onnx",
		SampleRate: 22050,
		Timeout:    30 * time.Second,
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"missing binary", func(c *Config) { c.BinaryPath = "" }, true},
		{"missing model", func(c *Config) { c.ModelPath = "" }, true},
		{"zero sample rate", func(c *Config) { c.SampleRate = 0 }, true},
		{"negative sample rate", func(c *Config) { c.SampleRate = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestNewRejectsInvalidConfig verifies the constructor validates.
func TestNewRejectsInvalidConfig(t *testing.T) {
	if _, err := New(Config{}, nil); err == nil {
		t.Error("New() accepted an empty config")
	}
}

// TestPCM16ToFloat32 tests the sample conversion.
func TestPCM16ToFloat32(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want []float32
	}{
		{
			name: "zero",
			data: []byte{0x00, 0x00},
			want: []float32{0},
		},
		{
			name: "max positive",
			data: []byte{0xff, 0x7f},
			want: []float32{32767.0 / 32768},
		},
		{
			name: "min negative",
			data: []byte{0x00, 0x80},
			want: []float32{-1},
		},
		{
			name: "little endian order",
			data: []byte{0x01, 0x00, 0x00, 0x01},
			want: []float32{1.0 / 32768, 256.0 / 32768},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pcm16ToFloat32(tt.data)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d samples, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("sample %d: got %f, want %f", i, got[i], tt.want[i])
				}
			}
		})
	}
}

// TestPCM16ToFloat32OddBytes verifies a trailing odd byte is ignored.
func TestPCM16ToFloat32OddBytes(t *testing.T) {
	got := pcm16ToFloat32([]byte{0x00, 0x00, 0xff})
	if len(got) != 1 {
		t.Errorf("got %d samples, want 1", len(got))
	}
}
