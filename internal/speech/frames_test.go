package speech

import "testing"

// TestSplitFrames tests frame slicing at various sizes.
func TestSplitFrames(t *testing.T) {
	tests := []struct {
		name      string
		samples   int
		frameSize int
		wantLens  []int
	}{
		{
			name:      "exact multiple",
			samples:   4096,
			frameSize: 2048,
			wantLens:  []int{2048, 2048},
		},
		{
			name:      "short final frame",
			samples:   5000,
			frameSize: 2048,
			wantLens:  []int{2048, 2048, 904},
		},
		{
			name:      "chunk smaller than frame",
			samples:   100,
			frameSize: 2048,
			wantLens:  []int{100},
		},
		{
			name:      "single sample",
			samples:   1,
			frameSize: 2048,
			wantLens:  []int{1},
		},
		{
			name:      "empty chunk",
			samples:   0,
			frameSize: 2048,
			wantLens:  nil,
		},
		{
			name:      "invalid frame size",
			samples:   100,
			frameSize: 0,
			wantLens:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			samples := make([]float32, tt.samples)
			frames := SplitFrames(samples, tt.frameSize)
			if len(frames) != len(tt.wantLens) {
				t.Fatalf("got %d frames, want %d", len(frames), len(tt.wantLens))
			}
			for i, f := range frames {
				if len(f) != tt.wantLens[i] {
					t.Errorf("frame %d: got %d samples, want %d", i, len(f), tt.wantLens[i])
				}
			}
		})
	}
}

// TestSplitFramesPreservesOrder verifies that concatenating the frames
// reproduces the original chunk.
func TestSplitFramesPreservesOrder(t *testing.T) {
	samples := make([]float32, 5000)
	for i := range samples {
		samples[i] = float32(i)
	}

	var got []float32
	for _, f := range SplitFrames(samples, 2048) {
		got = append(got, f...)
	}

	if len(got) != len(samples) {
		t.Fatalf("got %d samples, want %d", len(got), len(samples))
	}
	for i := range got {
		if got[i] != samples[i] {
			t.Fatalf("sample %d: got %f, want %f", i, got[i], samples[i])
		}
	}
}
