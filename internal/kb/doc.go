// Package kb implements the knowledge base: loading a directory of
// markdown documents into an immutable corpus snapshot and retrieving
// query-relevant paragraphs from it by keyword score.
//
// # Snapshot model
//
// A Corpus is immutable once built. The Store holds the current snapshot
// behind an atomic pointer; a reload builds a complete new Corpus and
// swaps it in, so concurrent readers never observe a half-loaded state.
//
// # Retrieval
//
// Retrieval is deliberately simple term-frequency scoring over
// blank-line-separated paragraphs. A token that is a substring of a
// longer word counts toward that word; this inflation is accepted.
package kb
