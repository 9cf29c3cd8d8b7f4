package speech

// SplitFrames slices a chunk of samples into frames of at most frameSize
// samples. The final frame may be shorter. Frames reference the underlying
// chunk storage; the producer hands each chunk to exactly one line, so no
// copy is needed.
func SplitFrames(samples []float32, frameSize int) [][]float32 {
	if frameSize <= 0 || len(samples) == 0 {
		return nil
	}

	frames := make([][]float32, 0, (len(samples)+frameSize-1)/frameSize)
	for start := 0; start < len(samples); start += frameSize {
		end := start + frameSize
		if end > len(samples) {
			end = len(samples)
		}
		frames = append(frames, samples[start:end])
	}
	return frames
}
