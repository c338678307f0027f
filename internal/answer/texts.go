package answer

// User-facing strings. These are literal contracts: tests compare
// replies byte-for-byte, so edits here are product decisions.
const (
	// Fallback is returned when no knowledge covers the question.
	// Never fabricate times, prices, or rulings.
	Fallback = "I don’t have that info in my notes yet. " +
		"Please check the masjid’s official schedule/website or contact the office. " +
		"For religious rulings, please ask the imam."

	// Apology replaces the reply when the composition chain itself
	// fails unexpectedly.
	Apology = "Sorry — the bot hit an error. Please try again."

	// demoPreamble opens replies composed without a generator.
	demoPreamble = "(Demo mode)\nBased on my notes:\n"

	// unavailablePreamble opens replies composed after a generator
	// failure.
	unavailablePreamble = "(AI temporarily unavailable)\nBased on my notes:\n"

	// systemPrompt grounds the generator strictly in retrieved context.
	systemPrompt = "You are a masjid community assistant on WhatsApp.\n" +
		"Rules:\n" +
		"- Answer ONLY using the provided CONTEXT.\n" +
		"- If the answer is not in the context, say you don't have that information.\n" +
		"- Do NOT give fatwas or religious rulings. Advise asking the imam.\n" +
		"- Be concise and practical for WhatsApp.\n"
)

const (
	// maxReplyChars bounds the final reply; WhatsApp transports choke
	// on long bodies.
	maxReplyChars = 1200

	// ellipsis marks a clamped reply.
	ellipsis = "..."

	// maxContextChars bounds the retrieved context blob.
	maxContextChars = 2200

	// snippetChars is how much context a local deterministic
	// composition quotes.
	snippetChars = 600
)
