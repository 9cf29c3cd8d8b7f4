package sentence

import "testing"

// TestSplit tests sentence boundary detection.
func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "two simple sentences",
			text: "Hello there. General greeting.",
			want: []string{"Hello there.", "General greeting."},
		},
		{
			name: "no terminal punctuation",
			text: "a line without punctuation",
			want: []string{"a line without punctuation"},
		},
		{
			name: "question and exclamation",
			text: "Really? Yes! Good.",
			want: []string{"Really?", "Yes!", "Good."},
		},
		{
			name: "abbreviation does not split",
			text: "Dr. Smith arrived. He sat down.",
			want: []string{"Dr. Smith arrived.", "He sat down."},
		},
		{
			name: "decimal number does not split",
			text: "Pi is roughly 3.14 in value. Next sentence.",
			want: []string{"Pi is roughly 3.14 in value.", "Next sentence."},
		},
		{
			name: "multi dot abbreviation",
			text: "She moved to the U.S. last year and settled down.",
			want: []string{"She moved to the U.S. last year and settled down."},
		},
		{
			name: "ellipsis stays in sentence",
			text: "Well... that happened. Moving on.",
			want: []string{"Well... that happened.", "Moving on."},
		},
		{
			name: "closing quote after period",
			text: `He said "stop." Then he left.`,
			want: []string{`He said "stop."`, "Then he left."},
		},
		{
			name: "combined punctuation",
			text: "What?! No way. Sure.",
			want: []string{"What?!", "No way.", "Sure."},
		},
		{
			name: "lowercase after period is not a boundary",
			text: "see fig. 2 for details",
			want: []string{"see fig. 2 for details"},
		},
		{
			name: "short fragments dropped",
			text: "A. Longer sentence here.",
			want: []string{"Longer sentence here."},
		},
		{
			name: "empty input",
			text: "",
			want: nil,
		},
		{
			name: "whitespace only",
			text: "   ",
			want: nil,
		},
	}

	s := NewSplitter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Split(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("Split() = %q, want %q", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("sentence %d: got %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
