// Package answer composes replies to inbound messages.
//
// The Composer runs a strict fallback chain: deterministic schedule
// lookup first, then keyword retrieval from the knowledge base, then an
// optional Gemini generator grounded in the retrieved context. Every
// external failure degrades to a deterministic local composition; the
// caller always gets reply text, never an error.
package answer
