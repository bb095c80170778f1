// Package chunker splits Wikipedia plain-text extracts into section-tagged,
// length-bounded chunks for retrieval.
package chunker

import (
	"regexp"
	"strings"

	"github.com/IrfanSethi/WikiTalk/internal/core/domain"
)

// DefaultMaxChunkSize is the soft cap on chunk length in characters.
// A single paragraph longer than the cap is kept whole rather than cut.
const DefaultMaxChunkSize = 1200

// headingRe matches MediaWiki-style plain-text headings: text wrapped in
// runs of "=" characters, e.g. "== Early life ==".
var headingRe = regexp.MustCompile(`^\s*=+\s*(.*?)\s*=+\s*$`)

// Splitter turns article plain text into an ordered chunk sequence.
// Splitting is a two-pass process: section detection first, then greedy
// paragraph packing under the size cap.
type Splitter struct {
	maxChunkSize int
}

// Option configures the splitter.
type Option func(*Splitter)

// WithMaxChunkSize sets the soft chunk size cap in characters.
func WithMaxChunkSize(size int) Option {
	return func(s *Splitter) {
		if size > 0 {
			s.maxChunkSize = size
		}
	}
}

// New creates a splitter with the given options.
func New(opts ...Option) *Splitter {
	s := &Splitter{maxChunkSize: DefaultMaxChunkSize}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Split produces the chunk sequence for an article's plain text.
// Chunks form a left-to-right cover of the article's non-blank content;
// no produced chunk is empty. Empty input produces no chunks, and a
// heading with no body text produces no chunk for that heading.
func (s *Splitter) Split(plainText string) []domain.Chunk {
	sections := s.splitSections(plainText)

	var final []domain.Chunk
	for _, sec := range sections {
		final = append(final, s.packParagraphs(sec)...)
	}
	// Degenerate input (e.g. a single unbreakable blob) falls back to the
	// per-section chunks.
	if len(final) == 0 {
		return sections
	}
	return final
}

// splitSections scans lines and flushes one provisional chunk per section.
// Text before the first heading belongs to the "Introduction" section.
func (s *Splitter) splitSections(plainText string) []domain.Chunk {
	if plainText == "" {
		return nil
	}
	lines := strings.Split(plainText, "\n")

	var (
		chunks   []domain.Chunk
		buf      []string
		section  = domain.IntroductionSection
		secStart = 0
	)

	flush := func(endIdx int) {
		if len(buf) == 0 {
			return
		}
		text := strings.TrimSpace(strings.Join(buf, "\n"))
		if text != "" {
			chunks = append(chunks, domain.Chunk{
				Section:   section,
				Text:      text,
				StartLine: secStart,
				EndLine:   endIdx,
			})
		}
		buf = buf[:0]
	}

	for i, line := range lines {
		if m := headingRe.FindStringSubmatch(line); m != nil {
			flush(i - 1)
			section = m[1]
			if section == "" {
				section = "Section"
			}
			secStart = i + 1
			continue
		}
		buf = append(buf, line)
	}
	flush(len(lines) - 1)

	return chunks
}

// packParagraphs re-splits a provisional section chunk on blank-line
// paragraph boundaries and greedily packs paragraphs under the cap.
// A paragraph is appended unless that would exceed the cap and the pack
// already holds something; the cap is a soft bound, not a truncation.
func (s *Splitter) packParagraphs(sec domain.Chunk) []domain.Chunk {
	var paras []string
	for _, p := range strings.Split(sec.Text, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			paras = append(paras, p)
		}
	}

	var (
		chunks  []domain.Chunk
		current []string
		length  int
	)
	emit := func() {
		if len(current) == 0 {
			return
		}
		chunks = append(chunks, domain.Chunk{
			Section:   sec.Section,
			Text:      strings.Join(current, "\n\n"),
			StartLine: sec.StartLine,
			EndLine:   sec.EndLine,
		})
		current = nil
		length = 0
	}

	for _, p := range paras {
		added := len(p)
		if len(current) > 0 {
			added += 2 // joining "\n\n"
		}
		if length+added > s.maxChunkSize && len(current) > 0 {
			emit()
			added = len(p)
		}
		current = append(current, p)
		length += added
	}
	emit()

	return chunks
}
