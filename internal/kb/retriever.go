package kb

import (
	"sort"
	"strings"
)

const (
	// topParagraphs is the number of highest-scoring paragraphs kept.
	topParagraphs = 6

	// paragraphSeparator joins the selected paragraphs in the context.
	paragraphSeparator = "\n\n---\n\n"

	// minTokenLen is the shortest query token that still scores;
	// anything this short or shorter is stop-noise ("is", "a", "of").
	minTokenLen = 3
)

// Retrieve scores the corpus paragraphs against query and returns the
// top-scoring ones joined with a separator, hard-truncated to maxChars
// runes. It returns "" when the corpus is empty, the query yields no
// usable tokens, or nothing scores above zero; callers must treat ""
// as "no relevant knowledge".
func (c *Corpus) Retrieve(query string, maxChars int) string {
	if c.Empty() {
		return ""
	}

	tokens := queryTokens(query)
	if len(tokens) == 0 {
		return ""
	}

	type scored struct {
		score int
		para  string
	}
	var hits []scored
	for _, p := range c.paragraphs {
		pl := strings.ToLower(p)
		score := 0
		for _, t := range tokens {
			score += strings.Count(pl, t)
		}
		if score > 0 {
			hits = append(hits, scored{score, p})
		}
	}
	if len(hits) == 0 {
		return ""
	}

	// Stable sort: equal scores keep original paragraph order.
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })

	n := min(len(hits), topParagraphs)
	top := make([]string, n)
	for i := range n {
		top[i] = hits[i].para
	}

	return truncate(strings.Join(top, paragraphSeparator), maxChars)
}

// queryTokens lowercases the query and splits it on whitespace,
// discarding stop-noise tokens. Question marks and commas are treated
// as whitespace so "when is iftar?" tokenizes cleanly.
func queryTokens(query string) []string {
	q := strings.ToLower(query)
	q = strings.NewReplacer("?", " ", ",", " ").Replace(q)

	var tokens []string
	for _, t := range strings.Fields(q) {
		if len(t) >= minTokenLen {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// truncate hard-cuts s at maxChars runes. No attempt at a clean cut
// point; a partial trailing word is simply dropped mid-rune-boundary.
func truncate(s string, maxChars int) string {
	if maxChars <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxChars {
		return s
	}
	return string(runes[:maxChars])
}
