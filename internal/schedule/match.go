package schedule

import (
	"fmt"
	"strings"
	"time"
)

// isoFormat is the table's date key layout.
const isoFormat = "2006-01-02"

// synonym maps a user-facing term (including common misspellings) to
// its canonical column key. Kept as an ordered slice: the first term
// found in the message wins, and map iteration order would make that
// nondeterministic.
type synonym struct {
	term string
	key  string
}

var termSynonyms = []synonym{
	{"fajr", "fajr"},
	{"fajar", "fajr"},
	{"fajir", "fajr"},
	{"dhuhr", "dhuhr"},
	{"dhuhar", "dhuhr"},
	{"zuhar", "dhuhr"},
	{"zuhr", "dhuhr"},
	{"zohar", "dhuhr"},
	{"asr", "asr"},
	{"asar", "asr"},
	{"maghrib", "maghrib"},
	{"magrib", "maghrib"},
	{"iftar", "maghrib"},
	{"aftar", "maghrib"},
	{"iftari", "maghrib"},
	{"aftari", "maghrib"},
	{"isha", "isha"},
	{"isha'a", "isha"},
	{"ishaa", "isha"},
	{"ishah", "isha"},
	{"esha", "isha"},
	{"taraweeh", "taraweeh"},
	{"tarawih", "taraweeh"},
}

// iftarTerms are displayed as "Iftar (Maghrib)" rather than the bare
// column name.
var iftarTerms = map[string]bool{
	"iftar": true, "aftar": true, "iftari": true, "aftari": true,
}

// Match is a resolved deterministic lookup: a date with a row in the
// table and a recognized term whose column holds a non-empty value.
type Match struct {
	Date  string // ISO date key
	Term  string // matched synonym as the user wrote it
	Key   string // canonical column key
	Value string // verbatim time string from the table
}

// Match resolves msg against the table. It returns false when no date
// row exists, no known term appears in the message, or the matched
// column is empty for that date; callers fall through to retrieval.
func (t *Table) Match(msg string, now time.Time, defaultYear int) (Match, bool) {
	lower := strings.ToLower(msg)

	date := extractDate(lower, now, defaultYear).Format(isoFormat)
	row := t.row(date)
	if row == nil {
		return Match{}, false
	}

	for _, s := range termSynonyms {
		if !strings.Contains(lower, s.term) {
			continue
		}
		// An empty column for this date keeps scanning: a later
		// synonym in the message may still have a value.
		if v := row[s.key]; v != "" {
			return Match{Date: date, Term: s.term, Key: s.key, Value: v}, true
		}
	}
	return Match{}, false
}

// Reply formats the deterministic answer sentence, e.g.
// "Iftar (Maghrib) time on 2026-03-27 is 7:28 PM."
// The day phrase is relative to now: "today", "tomorrow", or the
// literal date prefixed with "on".
func (m Match) Reply(now time.Time) string {
	return fmt.Sprintf("%s time %s is %s.", m.label(), m.dayPhrase(now), m.Value)
}

func (m Match) label() string {
	switch {
	case iftarTerms[m.Term]:
		return "Iftar (Maghrib)"
	case m.Key == "taraweeh":
		return "Taraweeh"
	default:
		return capitalize(m.Term)
	}
}

func (m Match) dayPhrase(now time.Time) string {
	switch m.Date {
	case now.Format(isoFormat):
		return "today"
	case now.AddDate(0, 0, 1).Format(isoFormat):
		return "tomorrow"
	default:
		return "on " + m.Date
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
