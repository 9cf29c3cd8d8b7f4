package speech

import "testing"

// TestItemKindString tests the String() method for ItemKind.
func TestItemKindString(t *testing.T) {
	tests := []struct {
		kind     ItemKind
		expected string
	}{
		{KindFrame, "frame"},
		{KindEndOfLine, "end-of-line"},
		{KindTerminate, "terminate"},
		{ItemKind(999), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.expected {
				t.Errorf("ItemKind.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

// TestStateTypeString tests the String() method for StateType.
func TestStateTypeString(t *testing.T) {
	tests := []struct {
		state    StateType
		expected string
	}{
		{StateRunning, "running"},
		{StateStopping, "stopping"},
		{StateStopped, "stopped"},
		{StateType(999), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.state.String(); got != tt.expected {
				t.Errorf("StateType.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}
