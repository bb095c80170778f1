package domain

// IntroductionSection is the sentinel section name for article text that
// precedes the first heading.
const IntroductionSection = "Introduction"

// Chunk is an immutable, section-tagged slice of article text.
// It is the unit of retrieval: splitting produces a left-to-right cover
// of the article's non-blank content, and no chunk is empty.
type Chunk struct {
	// Section is the name of the enclosing heading, or IntroductionSection
	// for text preceding the first heading.
	Section string

	// Text is the chunk body: non-empty, with blank lines collapsed.
	Text string

	// StartLine is the 0-based line offset of the enclosing section in the
	// source text. Kept for traceability.
	StartLine int

	// EndLine is the 0-based line offset of the last line of the enclosing
	// section in the source text.
	EndLine int
}
