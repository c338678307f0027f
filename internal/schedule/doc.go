// Package schedule implements deterministic prayer-time lookups.
//
// A Table maps ISO dates to rows of named prayer times, loaded from a
// CSV file with a header row. Match resolves a free-text message into a
// calendar date (ordered strategy chain) and a prayer term (ordered
// synonym list) and, when the table has a value for that pair, produces
// an exact reply sentence with no generator involved.
package schedule
