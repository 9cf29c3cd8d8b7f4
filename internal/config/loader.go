package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/viper"
)

// Load assembles the configuration: defaults, then whatever the config file
// set in viper, then READALOUD_* environment variables on top. The result is
// validated before it is returned.
func Load() (Config, error) {
	cfg := Default()

	if viper.IsSet("engine") {
		cfg.Engine = viper.GetString("engine")
	}
	if viper.IsSet("device") {
		cfg.Device = viper.GetString("device")
	}
	if viper.IsSet("start_line") {
		cfg.StartLine = viper.GetInt("start_line")
	}

	loadPipeline(&cfg.Pipeline)
	loadPiper(&cfg.Piper)
	loadCache(&cfg.Cache)
	loadMetrics(&cfg.Metrics)
	loadLog(&cfg.Log)

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("config: environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func loadPipeline(cfg *PipelineConfig) {
	if viper.IsSet("pipeline.frame_size") {
		cfg.FrameSize = viper.GetInt("pipeline.frame_size")
	}
	if viper.IsSet("pipeline.queue_capacity") {
		cfg.QueueCapacity = viper.GetInt("pipeline.queue_capacity")
	}
	if viper.IsSet("pipeline.push_timeout") {
		setDuration(&cfg.PushTimeout, "pipeline.push_timeout")
	}
	if viper.IsSet("pipeline.poll_interval") {
		setDuration(&cfg.PollInterval, "pipeline.poll_interval")
	}
	if viper.IsSet("pipeline.line_drain_delay") {
		setDuration(&cfg.LineDrainDelay, "pipeline.line_drain_delay")
	}
}

func loadPiper(cfg *PiperConfig) {
	if viper.IsSet("piper.binary") {
		cfg.Binary = viper.GetString("piper.binary")
	}
	if viper.IsSet("piper.model_path") {
		cfg.ModelPath = viper.GetString("piper.model_path")
	}
	if viper.IsSet("piper.config_path") {
		cfg.ConfigPath = viper.GetString("piper.config_path")
	}
	if viper.IsSet("piper.sample_rate") {
		cfg.SampleRate = viper.GetInt("piper.sample_rate")
	}
	if viper.IsSet("piper.length_scale") {
		cfg.LengthScale = viper.GetFloat64("piper.length_scale")
	}
	if viper.IsSet("piper.speaker_id") {
		cfg.SpeakerID = viper.GetInt("piper.speaker_id")
	}
	if viper.IsSet("piper.timeout") {
		setDuration(&cfg.Timeout, "piper.timeout")
	}
}

func loadCache(cfg *CacheConfig) {
	if viper.IsSet("cache.enabled") {
		cfg.Enabled = viper.GetBool("cache.enabled")
	}
	if viper.IsSet("cache.max_bytes") {
		cfg.MaxBytes = viper.GetInt64("cache.max_bytes")
	}
}

func loadMetrics(cfg *MetricsConfig) {
	if viper.IsSet("metrics.enabled") {
		cfg.Enabled = viper.GetBool("metrics.enabled")
	}
	if viper.IsSet("metrics.listen_addr") {
		cfg.ListenAddr = viper.GetString("metrics.listen_addr")
	}
}

func loadLog(cfg *LogConfig) {
	if viper.IsSet("log.level") {
		cfg.Level = viper.GetString("log.level")
	}
	if viper.IsSet("log.file") {
		cfg.File = viper.GetString("log.file")
	}
}

func setDuration(dst *time.Duration, key string) {
	if d, err := time.ParseDuration(viper.GetString(key)); err == nil {
		*dst = d
	}
}

// SetDefaults seeds viper with the built-in defaults so `config show` prints
// a complete picture.
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("engine", defaults.Engine)
	viper.SetDefault("device", defaults.Device)
	viper.SetDefault("start_line", defaults.StartLine)

	viper.SetDefault("pipeline.frame_size", defaults.Pipeline.FrameSize)
	viper.SetDefault("pipeline.queue_capacity", defaults.Pipeline.QueueCapacity)
	viper.SetDefault("pipeline.push_timeout", defaults.Pipeline.PushTimeout.String())
	viper.SetDefault("pipeline.poll_interval", defaults.Pipeline.PollInterval.String())
	viper.SetDefault("pipeline.line_drain_delay", defaults.Pipeline.LineDrainDelay.String())

	viper.SetDefault("piper.binary", defaults.Piper.Binary)
	viper.SetDefault("piper.sample_rate", defaults.Piper.SampleRate)
	viper.SetDefault("piper.length_scale", defaults.Piper.LengthScale)
	viper.SetDefault("piper.speaker_id", defaults.Piper.SpeakerID)
	viper.SetDefault("piper.timeout", defaults.Piper.Timeout.String())

	viper.SetDefault("cache.enabled", defaults.Cache.Enabled)
	viper.SetDefault("cache.max_bytes", defaults.Cache.MaxBytes)

	viper.SetDefault("metrics.enabled", defaults.Metrics.Enabled)
	viper.SetDefault("metrics.listen_addr", defaults.Metrics.ListenAddr)

	viper.SetDefault("log.level", defaults.Log.Level)
	viper.SetDefault("log.file", defaults.Log.File)
}
