package kb

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Corpus is an immutable snapshot of the loaded knowledge base.
type Corpus struct {
	// Text is the full concatenated corpus (blank-line joined).
	Text string

	// Files lists the source files in load order, for diagnostics.
	Files []string

	// paragraphs are the non-empty, whitespace-trimmed paragraphs of
	// Text, pre-split so every retrieval does not re-split the corpus.
	paragraphs []string
}

// Load reads every file matching glob as UTF-8 text, concatenates the
// contents in path-sorted order with a blank-line separator, and builds
// a Corpus from the result.
//
// A glob that matches nothing yields an empty corpus and no error:
// retrieval simply finds no context. A matched file that cannot be read
// propagates its error.
func Load(glob string) (*Corpus, error) {
	files, err := filepath.Glob(glob)
	if err != nil {
		return nil, fmt.Errorf("bad kb glob %q: %w", glob, err)
	}
	sort.Strings(files)

	parts := make([]string, 0, len(files))
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return nil, fmt.Errorf("reading kb file %s: %w", f, err)
		}
		parts = append(parts, string(data))
	}

	text := strings.TrimSpace(strings.Join(parts, "\n\n"))
	return newCorpus(text, files), nil
}

// newCorpus builds a Corpus from already-concatenated text.
func newCorpus(text string, files []string) *Corpus {
	var paras []string
	for _, p := range strings.Split(text, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			paras = append(paras, p)
		}
	}
	return &Corpus{Text: text, Files: files, paragraphs: paras}
}

// Empty reports whether the corpus holds no text.
func (c *Corpus) Empty() bool {
	return c == nil || len(c.paragraphs) == 0
}

// Paragraphs returns the number of paragraphs in the corpus.
func (c *Corpus) Paragraphs() int {
	if c == nil {
		return 0
	}
	return len(c.paragraphs)
}
