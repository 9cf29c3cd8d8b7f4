// Package document loads text files and turns them into the sentence list
// fed to the speech pipeline.
package document

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"readaloud/internal/sentence"
)

// Document is a text file reduced to its speakable sentences.
type Document struct {
	// Path is the file the document was loaded from, empty for readers.
	Path string

	// Sentences holds the speakable text in reading order.
	Sentences []string

	// TotalLines is the number of non-blank lines in the source, before
	// any start offset was applied.
	TotalLines int
}

// Load reads the file at path and splits it into sentences, skipping the
// first startLine non-blank lines. A startLine beyond the end of the file
// yields an empty document, not an error.
func Load(path string, startLine int) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("document: open %s: %w", path, err)
	}
	defer f.Close()

	doc, err := Read(f, startLine)
	if err != nil {
		return nil, fmt.Errorf("document: read %s: %w", path, err)
	}
	doc.Path = path
	return doc, nil
}

// Read splits r into sentences, skipping the first startLine non-blank lines.
func Read(r io.Reader, startLine int) (*Document, error) {
	if startLine < 0 {
		return nil, fmt.Errorf("document: start line cannot be negative, got %d", startLine)
	}

	splitter := sentence.NewSplitter()
	doc := &Document{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		doc.TotalLines++
		if doc.TotalLines <= startLine {
			continue
		}
		doc.Sentences = append(doc.Sentences, splitter.Split(line)...)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("document: scan: %w", err)
	}
	return doc, nil
}
