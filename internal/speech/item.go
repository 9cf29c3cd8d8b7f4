package speech

// ItemKind discriminates the variants carried by the frame queue. Using a
// tagged variant instead of sentinel values avoids any ambiguity between
// markers and real audio data.
type ItemKind int

const (
	// KindFrame is a playable audio frame.
	KindFrame ItemKind = iota
	// KindEndOfLine marks that every frame of one line has been enqueued.
	KindEndOfLine
	// KindTerminate tells the consumer to exit its loop.
	KindTerminate
)

// String returns the string representation of the item kind.
func (k ItemKind) String() string {
	switch k {
	case KindFrame:
		return "frame"
	case KindEndOfLine:
		return "end-of-line"
	case KindTerminate:
		return "terminate"
	default:
		return "unknown"
	}
}

// Frame is a fixed-maximum-length slice of samples forwarded to the output
// device in one write, tagged with the rate it was synthesized at.
type Frame struct {
	Samples    []float32
	SampleRate int
}

// Item is one entry in the frame queue: a frame, an end-of-line marker, or a
// termination token. Line carries the text being voiced for frames and
// end-of-line markers so the consumer can detect line transitions.
type Item struct {
	Kind  ItemKind
	Frame Frame
	Line  string
}

func frameItem(f Frame, line string) Item {
	return Item{Kind: KindFrame, Frame: f, Line: line}
}

func endOfLineItem(line string) Item {
	return Item{Kind: KindEndOfLine, Line: line}
}

func terminateItem() Item {
	return Item{Kind: KindTerminate}
}
