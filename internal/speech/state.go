package speech

// StateType represents the lifecycle state of a pipeline.
type StateType int32

const (
	// StateRunning indicates the pipeline accepts speak, pause, and resume.
	StateRunning StateType = iota
	// StateStopping indicates Stop was called and the worker goroutines are
	// draining and exiting.
	StateStopping
	// StateStopped indicates both workers have returned and the device has
	// been released. There is no transition out of this state.
	StateStopped
)

// String returns the string representation of the state.
func (s StateType) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}
