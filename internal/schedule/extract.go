package schedule

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// A dateStrategy tries to read a calendar date out of a lower-cased
// message. Strategies are independent and tried in fixed priority
// order; the first success wins.
type dateStrategy func(msg string, now time.Time, defaultYear int) (time.Time, bool)

// dateStrategies in priority order. The final fallback (today) lives
// in extractDate itself.
var dateStrategies = []dateStrategy{
	isoDate,
	dayMonthNumeric,
	monthNameDate,
	bareDayNumber,
	tomorrowKeyword,
}

// extractDate resolves msg to a calendar date, defaulting to today.
// msg must already be lower-cased.
func extractDate(msg string, now time.Time, defaultYear int) time.Time {
	for _, strat := range dateStrategies {
		if d, ok := strat(msg, now, defaultYear); ok {
			return d
		}
	}
	return now
}

var isoDateRe = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)

// isoDate matches an explicit YYYY-MM-DD token.
func isoDate(msg string, _ time.Time, _ int) (time.Time, bool) {
	m := isoDateRe.FindStringSubmatch(msg)
	if m == nil {
		return time.Time{}, false
	}
	d, err := time.Parse("2006-01-02", m[0])
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

var dayMonthRe = regexp.MustCompile(`\b(\d{1,2})-(\d{1,2})(?:-(\d{4}))?\b`)

// dayMonthNumeric matches D-M or D-M-YYYY (and the month-day reading
// when day-month does not form a valid date). When one component
// exceeds 12 and the other does not, the larger is the day. When the
// year is omitted the configured default year applies.
func dayMonthNumeric(msg string, _ time.Time, defaultYear int) (time.Time, bool) {
	m := dayMonthRe.FindStringSubmatch(msg)
	if m == nil {
		return time.Time{}, false
	}

	a, _ := strconv.Atoi(m[1])
	b, _ := strconv.Atoi(m[2])
	year := defaultYear
	if m[3] != "" {
		year, _ = strconv.Atoi(m[3])
	}

	if a > 12 && b <= 12 {
		return makeDate(year, b, a)
	}
	if b > 12 && a <= 12 {
		return makeDate(year, a, b)
	}
	// Ambiguous: day-month first, then month-day.
	if d, ok := makeDate(year, b, a); ok {
		return d, true
	}
	return makeDate(year, a, b)
}

var monthsByName = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may": time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sept": time.September, "sep": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

var ordinalSuffixRe = regexp.MustCompile(`^(\d{1,2})(?:st|nd|rd|th)?$`)

// monthNameDate matches "<day> <month-name>" or "<month-name> <day>"
// word pairs, with ordinal suffixes stripped ("27th march") and an
// optional trailing year token.
func monthNameDate(msg string, _ time.Time, defaultYear int) (time.Time, bool) {
	words := strings.Fields(strings.NewReplacer(",", " ", "?", " ").Replace(msg))

	for i := 0; i < len(words)-1; i++ {
		var month time.Month
		var day int

		if m, ok := monthsByName[words[i]]; ok {
			// "<month-name> <day>"
			d, dok := ordinalDay(words[i+1])
			if !dok {
				continue
			}
			month, day = m, d
		} else if m, ok := monthsByName[words[i+1]]; ok {
			// "<day> <month-name>"
			d, dok := ordinalDay(words[i])
			if !dok {
				continue
			}
			month, day = m, d
		} else {
			continue
		}

		year := defaultYear
		if i+2 < len(words) {
			if y, err := strconv.Atoi(words[i+2]); err == nil && y >= 1000 && y <= 9999 {
				year = y
			}
		}
		if d, ok := makeDate(year, int(month), day); ok {
			return d, true
		}
	}
	return time.Time{}, false
}

// ordinalDay parses a day token, tolerating an ordinal suffix.
func ordinalDay(word string) (int, bool) {
	m := ordinalSuffixRe.FindStringSubmatch(word)
	if m == nil {
		return 0, false
	}
	d, _ := strconv.Atoi(m[1])
	return d, true
}

var bareNumberRe = regexp.MustCompile(`^\d{1,2}$`)

// bareDayNumber interprets a standalone one- or two-digit token as a
// day of the current month. An invalid day (e.g. 31 in April) falls
// through to the next strategy.
func bareDayNumber(msg string, now time.Time, _ int) (time.Time, bool) {
	for _, w := range strings.Fields(strings.NewReplacer(",", " ", "?", " ").Replace(msg)) {
		if !bareNumberRe.MatchString(w) {
			continue
		}
		day, _ := strconv.Atoi(w)
		if d, ok := makeDate(now.Year(), int(now.Month()), day); ok {
			return d, true
		}
	}
	return time.Time{}, false
}

// tomorrowKeyword matches the literal word "tomorrow", resolved
// relative to now at call time.
func tomorrowKeyword(msg string, now time.Time, _ int) (time.Time, bool) {
	if strings.Contains(msg, "tomorrow") {
		return now.AddDate(0, 0, 1), true
	}
	return time.Time{}, false
}

// makeDate builds a date and rejects constructions that time.Date
// would silently normalize (day 30 in February rolls into March).
func makeDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Day() != day || d.Month() != time.Month(month) || d.Year() != year {
		return time.Time{}, false
	}
	return d, true
}
