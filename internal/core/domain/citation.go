package domain

// ArticleRef names the article an answer was grounded on.
type ArticleRef struct {
	// Title is the article title.
	Title string `json:"title"`

	// URL is the canonical article URL, empty when unknown.
	URL string `json:"url,omitempty"`
}

// Citations is the provenance record returned alongside every answer.
// It names the article, the section names of the chunks actually passed
// to the prompt builder, and whether an external web search produced the
// returned answer.
type Citations struct {
	// Article identifies the grounding article.
	Article ArticleRef `json:"article"`

	// Sections lists the section names of the retrieved chunks, in
	// retrieval order. May repeat when several chunks share a section.
	Sections []string `json:"sections"`

	// External is true only when the external-search fallback produced
	// the returned answer.
	External bool `json:"external,omitempty"`
}

// Answer pairs the produced answer text with its citation record.
// The two are always returned together.
type Answer struct {
	// Text is the final answer shown to the user.
	Text string

	// Citations is the provenance record for Text.
	Citations Citations
}
