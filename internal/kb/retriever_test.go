package kb

import (
	"strings"
	"testing"
)

func corpusFrom(paras ...string) *Corpus {
	return newCorpus(strings.Join(paras, "\n\n"), nil)
}

func TestRetrieveRanksByScore(t *testing.T) {
	c := corpusFrom(
		"The community kitchen serves soup on weekends.",
		"Iftar is served daily during Ramadan. Iftar starts at sunset. Iftar volunteers welcome.",
		"Iftar donations can be made online.",
	)

	got := c.Retrieve("when is iftar served", 5000)
	parts := strings.Split(got, paragraphSeparator)
	if len(parts) != 2 {
		t.Fatalf("got %d paragraphs, want 2 (zero-score dropped): %q", len(parts), got)
	}
	// Three "iftar" hits plus "served" outranks one "iftar" hit.
	if !strings.Contains(parts[0], "volunteers welcome") {
		t.Errorf("highest scoring paragraph should come first, got %q", parts[0])
	}
}

func TestRetrieveStableTieBreak(t *testing.T) {
	c := corpusFrom(
		"zakat information first paragraph",
		"zakat information second paragraph",
	)

	got := c.Retrieve("zakat", 5000)
	parts := strings.Split(got, paragraphSeparator)
	if len(parts) != 2 {
		t.Fatalf("got %d paragraphs, want 2", len(parts))
	}
	if !strings.Contains(parts[0], "first") || !strings.Contains(parts[1], "second") {
		t.Errorf("equal scores must keep original order, got %q", got)
	}
}

func TestRetrieveTopK(t *testing.T) {
	paras := make([]string, 10)
	for i := range paras {
		paras[i] = "charity drive announcement number " + string(rune('a'+i))
	}
	c := corpusFrom(paras...)

	got := c.Retrieve("charity", 100000)
	if n := len(strings.Split(got, paragraphSeparator)); n != topParagraphs {
		t.Errorf("got %d paragraphs, want %d", n, topParagraphs)
	}
}

func TestRetrieveHardTruncation(t *testing.T) {
	c := corpusFrom(strings.Repeat("volunteer ", 100))

	const maxChars = 50
	got := c.Retrieve("volunteer", maxChars)
	if n := len([]rune(got)); n != maxChars {
		t.Errorf("truncated length = %d, want exactly %d", n, maxChars)
	}
}

func TestRetrieveEmptyCases(t *testing.T) {
	c := corpusFrom("the office is open every weekday morning")

	tests := []struct {
		name  string
		query string
	}{
		{"no usable tokens", "is a of"},
		{"nothing scores", "spaceship telescope"},
		{"empty query", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Retrieve(tt.query, 1000); got != "" {
				t.Errorf("Retrieve(%q) = %q, want empty", tt.query, got)
			}
		})
	}
}

func TestRetrievePunctuationInQuery(t *testing.T) {
	c := corpusFrom("taraweeh prayers begin after isha")

	if got := c.Retrieve("taraweeh?", 1000); got == "" {
		t.Error("trailing question mark should not prevent a match")
	}
}

func TestQueryTokens(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"What time is Iftar?", []string{"what", "time", "iftar"}},
		{"a an of", nil},
		{"one,two, three", []string{"one", "two", "three"}},
	}
	for _, tt := range tests {
		got := queryTokens(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("queryTokens(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("queryTokens(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}
