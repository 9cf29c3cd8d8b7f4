package speech

import (
	"time"

	"github.com/charmbracelet/log"
)

// loggingNotifier is the fallback Notifier when none is configured. It
// reports line transitions and pipeline errors through the streamer's logger.
type loggingNotifier struct {
	logger *log.Logger
}

func (n *loggingNotifier) LineStarted(line string) {
	n.logger.Info("now speaking", "line", line)
}

func (n *loggingNotifier) LineFinished(line string, gap time.Duration) {
	n.logger.Debug("line finished", "line", line, "gap", gap)
}

func (n *loggingNotifier) PipelineError(stage string, err error) {
	n.logger.Error("pipeline error", "stage", stage, "err", err)
}
