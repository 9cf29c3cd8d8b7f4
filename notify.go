package main

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// consoleNotifier prints line transitions to the terminal and closes done
// once every sentence has been spoken.
type consoleNotifier struct {
	logger *log.Logger
	done   chan struct{}

	mu        sync.Mutex
	remaining int
	closed    bool
}

func newConsoleNotifier(total int, logger *log.Logger) *consoleNotifier {
	return &consoleNotifier{
		logger:    logger,
		done:      make(chan struct{}),
		remaining: total,
	}
}

func (n *consoleNotifier) LineStarted(line string) {
	fmt.Printf("Now speaking: %s\n", line)
}

func (n *consoleNotifier) LineFinished(line string, gap time.Duration) {
	n.logger.Debug("line finished", "gap", gap, "line", line)

	n.mu.Lock()
	defer n.mu.Unlock()
	n.remaining--
	if n.remaining <= 0 && !n.closed {
		n.closed = true
		close(n.done)
	}
}

func (n *consoleNotifier) PipelineError(stage string, err error) {
	n.logger.Error("pipeline error", "stage", stage, "err", err)

	// A synthesis failure skips the whole sentence, so it still counts
	// toward completion.
	if stage == "synthesis" {
		n.mu.Lock()
		defer n.mu.Unlock()
		n.remaining--
		if n.remaining <= 0 && !n.closed {
			n.closed = true
			close(n.done)
		}
	}
}
