// Package sentence splits plain text into speakable sentences.
package sentence

import (
	"strings"
	"unicode"
)

// Splitter breaks text into sentences. It understands common abbreviations,
// decimal numbers, and ellipses so a period inside "Dr. Smith paid 3.14"
// does not end a sentence.
type Splitter struct {
	minLength     int
	abbreviations map[string]struct{}
}

// NewSplitter creates a splitter with the default abbreviation set. Fragments
// shorter than three characters are dropped.
func NewSplitter() *Splitter {
	return &Splitter{
		minLength:     3,
		abbreviations: defaultAbbreviations(),
	}
}

// Split returns the sentences in text, trimmed, in order. Text with no
// terminal punctuation comes back as a single sentence.
func (s *Splitter) Split(text string) []string {
	runes := []rune(text)
	var out []string
	lastStart := 0

	for i := 0; i < len(runes); i++ {
		if runes[i] != '.' && runes[i] != '!' && runes[i] != '?' {
			continue
		}
		if !s.endsSentence(runes, i) {
			continue
		}

		// Absorb the full punctuation run and a trailing close quote
		// or bracket.
		end := i + 1
		for end < len(runes) && (runes[end] == '.' || runes[end] == '!' || runes[end] == '?') {
			end++
		}
		if end < len(runes) && isClosing(runes[end]) {
			end++
		}

		s.append(&out, runes[lastStart:end])

		for end < len(runes) && unicode.IsSpace(runes[end]) {
			end++
		}
		lastStart = end
		i = end - 1
	}

	if lastStart < len(runes) {
		s.append(&out, runes[lastStart:])
	}
	return out
}

func (s *Splitter) append(out *[]string, runes []rune) {
	text := strings.TrimSpace(string(runes))
	if len(text) >= s.minLength {
		*out = append(*out, text)
	}
}

// endsSentence reports whether the punctuation at pos terminates a sentence.
func (s *Splitter) endsSentence(runes []rune, pos int) bool {
	punct := runes[pos]

	if punct == '.' {
		if s.isAbbreviation(runes, pos) {
			return false
		}
		// Decimal number: digit on both sides of the period.
		if pos > 0 && pos+1 < len(runes) &&
			unicode.IsDigit(runes[pos-1]) && unicode.IsDigit(runes[pos+1]) {
			return false
		}
		// Ellipsis continues the sentence.
		if pos+2 < len(runes) && runes[pos+1] == '.' && runes[pos+2] == '.' {
			return false
		}
	}

	next := pos + 1
	for next < len(runes) && isClosing(runes[next]) {
		next++
	}
	if next >= len(runes) {
		return true
	}
	if !unicode.IsSpace(runes[next]) {
		return false
	}

	if punct == '!' || punct == '?' {
		return true
	}

	// A period only ends a sentence when the next word starts a new one.
	for next < len(runes) && unicode.IsSpace(runes[next]) {
		next++
	}
	return next >= len(runes) || unicode.IsUpper(runes[next]) || unicode.IsDigit(runes[next])
}

// isAbbreviation checks whether the word ending at the period at pos is a
// known abbreviation or a multi-dot form like U.S.
func (s *Splitter) isAbbreviation(runes []rune, pos int) bool {
	start := pos - 1
	for start >= 0 && !unicode.IsSpace(runes[start]) {
		start--
	}
	word := strings.ToLower(string(runes[start+1 : pos]))
	if word == "" {
		return false
	}
	if _, ok := s.abbreviations[word]; ok {
		return true
	}
	// Multi-dot letter forms like U.S. or Ph.D, but not decimals like 3.14.
	if strings.Contains(word, ".") && !strings.ContainsFunc(word, unicode.IsDigit) {
		return true
	}
	return false
}

func isClosing(r rune) bool {
	return r == '"' || r == '\'' || r == ')' || r == ']'
}

func defaultAbbreviations() map[string]struct{} {
	words := []string{
		"mr", "mrs", "ms", "dr", "prof", "sr", "jr",
		"inc", "ltd", "co", "corp", "llc",
		"i.e", "e.g", "etc", "vs", "cf", "al",
		"fig", "figs", "vol", "vols", "pp", "approx",
		"jan", "feb", "mar", "apr", "jun", "jul", "aug",
		"sep", "sept", "oct", "nov", "dec",
		"mon", "tue", "wed", "thu", "fri", "sat", "sun",
		"st", "rd", "ave", "blvd", "ln", "ct",
		"ft", "lbs", "oz", "kg", "km", "cm", "mm", "mi", "yd",
		"hr", "hrs", "min", "mins", "sec", "secs",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
