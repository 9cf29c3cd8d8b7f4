// Package main provides the entry point for the readaloud CLI.
package main

import (
	"bufio"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	gap "github.com/muesli/go-app-paths"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"readaloud/internal/audio"
	"readaloud/internal/config"
	"readaloud/internal/document"
	"readaloud/internal/observability"
	"readaloud/internal/speech"
	"readaloud/internal/speech/engines/cached"
	mockengine "readaloud/internal/speech/engines/mock"
	"readaloud/internal/speech/engines/piper"
)

// joinTimeout bounds how long shutdown waits for the pipeline goroutines.
const joinTimeout = 100 * time.Millisecond

var (
	// Version as provided by goreleaser.
	Version = ""
	// CommitSHA as provided by goreleaser.
	CommitSHA = ""

	configFile string

	rootCmd = &cobra.Command{
		Use:   "readaloud [FILE]",
		Short: "Read a text file aloud, sentence by sentence",
		Long: "\nReadaloud synthesizes a text file with a local TTS engine and plays it\n" +
			"through the default audio device. Playback can be paused, resumed, and\n" +
			"stopped from the keyboard while synthesis keeps running ahead.",
		SilenceErrors: false,
		SilenceUsage:  true,
		Args:          cobra.ExactArgs(1),
		RunE:          execute,
	}
)

func execute(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, closer, err := setupLog(cfg.Log)
	if err != nil {
		return err
	}
	defer closer()

	doc, err := document.Load(args[0], cfg.StartLine)
	if err != nil {
		return err
	}
	if len(doc.Sentences) == 0 {
		return fmt.Errorf("nothing to read in %s", args[0])
	}
	logger.Info("loaded document",
		"path", doc.Path,
		"sentences", len(doc.Sentences),
		"start_line", cfg.StartLine)

	engine, err := buildEngine(cfg, logger)
	if err != nil {
		return err
	}
	device, err := buildDevice(cfg)
	if err != nil {
		return err
	}

	var metrics *observability.Metrics
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		metrics = observability.NewMetrics(reg)
		go serveMetrics(cfg.Metrics.ListenAddr, reg, logger)
	}

	notifier := newConsoleNotifier(len(doc.Sentences), logger)
	streamer, err := speech.New(engine, device, speech.Options{
		FrameSize:      cfg.Pipeline.FrameSize,
		QueueCapacity:  cfg.Pipeline.QueueCapacity,
		PushTimeout:    cfg.Pipeline.PushTimeout,
		PollInterval:   cfg.Pipeline.PollInterval,
		LineDrainDelay: cfg.Pipeline.LineDrainDelay,
		Notifier:       notifier,
		Metrics:        metrics,
		Logger:         logger,
	})
	if err != nil {
		return err
	}

	// Queue everything up front; the bounded frame queue paces synthesis
	// against playback.
	for _, s := range doc.Sentences {
		if err := streamer.Speak(s); err != nil {
			return err
		}
	}

	runControlLoop(streamer, notifier.done)

	streamer.Stop()
	if !streamer.Join(joinTimeout) {
		logger.Warn("pipeline did not shut down in time", "timeout", joinTimeout)
	}
	return nil
}

// runControlLoop reads single-letter commands from stdin until the document
// finishes, the user quits, or an interrupt arrives.
func runControlLoop(streamer *speech.Streamer, done <-chan struct{}) {
	fmt.Println("Commands: [p]ause  [r]esume  [s]top  [q]uit")

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	commands := make(chan string)
	go func() {
		defer close(commands)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			commands <- strings.TrimSpace(strings.ToLower(scanner.Text()))
		}
	}()

	for {
		select {
		case <-done:
			fmt.Println("Done.")
			return
		case <-interrupt:
			fmt.Println("\nInterrupted.")
			return
		case cmd, ok := <-commands:
			if !ok {
				// stdin closed; keep playing until the document ends.
				select {
				case <-done:
					fmt.Println("Done.")
				case <-interrupt:
					fmt.Println("\nInterrupted.")
				}
				return
			}
			switch cmd {
			case "p":
				streamer.Pause()
				fmt.Println("Paused.")
			case "r":
				streamer.Resume()
				fmt.Println("Resumed.")
			case "s", "q":
				return
			case "":
			default:
				fmt.Printf("Unknown command %q\n", cmd)
			}
		}
	}
}

func buildEngine(cfg config.Config, logger *log.Logger) (speech.Engine, error) {
	engine, err := buildBaseEngine(cfg, logger)
	if err != nil {
		return nil, err
	}
	if cfg.Cache.Enabled {
		return cached.New(engine, cfg.Cache.MaxBytes), nil
	}
	return engine, nil
}

func buildBaseEngine(cfg config.Config, logger *log.Logger) (speech.Engine, error) {
	switch cfg.Engine {
	case "piper":
		return piper.New(piper.Config{
			BinaryPath:  resolveBinary(cfg.Piper.Binary),
			ModelPath:   cfg.Piper.ModelPath,
			ConfigPath:  cfg.Piper.ConfigPath,
			SampleRate:  cfg.Piper.SampleRate,
			LengthScale: cfg.Piper.LengthScale,
			SpeakerID:   cfg.Piper.SpeakerID,
			Timeout:     cfg.Piper.Timeout,
		}, logger)
	case "mock":
		return mockengine.New(), nil
	default:
		return nil, fmt.Errorf("unknown engine %q", cfg.Engine)
	}
}

func buildDevice(cfg config.Config) (audio.Device, error) {
	switch cfg.Device {
	case "portaudio":
		return audio.NewPortAudioDevice(cfg.Pipeline.FrameSize)
	case "oto":
		return audio.NewOtoDevice(), nil
	case "mock":
		return audio.NewMockDevice(), nil
	default:
		return nil, fmt.Errorf("unknown device %q", cfg.Device)
	}
}

// resolveBinary expands a bare binary name against PATH so config may say
// just "piper".
func resolveBinary(name string) string {
	if strings.ContainsRune(name, os.PathSeparator) {
		return name
	}
	if p, err := exec.LookPath(name); err == nil {
		return p
	}
	return name
}

func serveMetrics(addr string, reg *prometheus.Registry, logger *log.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	logger.Info("metrics listening", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("metrics server failed", "err", err)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	tryLoadConfigFromDefaultPlaces()
	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version
	rootCmd.InitDefaultCompletionCmd()

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", fmt.Sprintf("config file (default %s)", viper.GetViper().ConfigFileUsed()))
	rootCmd.Flags().StringP("engine", "e", "", "synthesis engine (piper, mock)")
	rootCmd.Flags().StringP("device", "d", "", "playback device (portaudio, oto, mock)")
	rootCmd.Flags().IntP("start-line", "n", 0, "skip this many non-blank lines before reading")
	rootCmd.Flags().String("log-level", "", "log level (debug, info, warn, error)")
	rootCmd.Flags().String("log-file", "", "write logs to this file instead of stderr")
	rootCmd.Flags().Bool("metrics", false, "serve Prometheus metrics while reading")

	_ = viper.BindPFlag("engine", rootCmd.Flags().Lookup("engine"))
	_ = viper.BindPFlag("device", rootCmd.Flags().Lookup("device"))
	_ = viper.BindPFlag("start_line", rootCmd.Flags().Lookup("start-line"))
	_ = viper.BindPFlag("log.level", rootCmd.Flags().Lookup("log-level"))
	_ = viper.BindPFlag("log.file", rootCmd.Flags().Lookup("log-file"))
	_ = viper.BindPFlag("metrics.enabled", rootCmd.Flags().Lookup("metrics"))

	config.SetDefaults()

	rootCmd.AddCommand(configCmd, manCmd)
}

func tryLoadConfigFromDefaultPlaces() {
	scope := gap.NewScope(gap.User, "readaloud")
	dirs, err := scope.ConfigDirs()
	if err != nil {
		fmt.Println("Could not find configuration directory.")
		os.Exit(1)
	}

	if c := os.Getenv("XDG_CONFIG_HOME"); c != "" {
		dirs = append([]string{filepath.Join(c, "readaloud")}, dirs...)
	}

	if c := os.Getenv("READALOUD_CONFIG_HOME"); c != "" {
		dirs = append([]string{c}, dirs...)
	}

	for _, v := range dirs {
		viper.AddConfigPath(v)
	}

	viper.SetConfigName("readaloud")
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warn("Could not parse configuration file", "err", err)
		}
	}

	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug("Using configuration file", "path", used)
		return
	}

	configFile = filepath.Join(dirs[0], "readaloud.yml")
}
