package chunker

import (
	"strings"
	"testing"

	"github.com/IrfanSethi/WikiTalk/internal/core/domain"
)

func TestNew(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		s := New()
		if s.maxChunkSize != DefaultMaxChunkSize {
			t.Errorf("expected maxChunkSize %d, got %d", DefaultMaxChunkSize, s.maxChunkSize)
		}
	})

	t.Run("custom size", func(t *testing.T) {
		s := New(WithMaxChunkSize(500))
		if s.maxChunkSize != 500 {
			t.Errorf("expected maxChunkSize 500, got %d", s.maxChunkSize)
		}
	})

	t.Run("zero value ignored", func(t *testing.T) {
		s := New(WithMaxChunkSize(0))
		if s.maxChunkSize != DefaultMaxChunkSize {
			t.Errorf("expected default maxChunkSize, got %d", s.maxChunkSize)
		}
	})
}

func TestSplitter_Split_Empty(t *testing.T) {
	chunks := New().Split("")
	if len(chunks) != 0 {
		t.Errorf("expected 0 chunks for empty input, got %d", len(chunks))
	}
}

func TestSplitter_Split_NoHeadings(t *testing.T) {
	chunks := New().Split("First paragraph.\n\nSecond paragraph.")
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Section != domain.IntroductionSection {
		t.Errorf("expected section %q, got %q", domain.IntroductionSection, chunks[0].Section)
	}
	if chunks[0].Text != "First paragraph.\n\nSecond paragraph." {
		t.Errorf("unexpected chunk text: %q", chunks[0].Text)
	}
}

func TestSplitter_Split_Sections(t *testing.T) {
	text := "Intro text.\n== History ==\nHistory body.\n== Legacy ==\nLegacy body."
	chunks := New().Split(text)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	wantSections := []string{domain.IntroductionSection, "History", "Legacy"}
	for i, want := range wantSections {
		if chunks[i].Section != want {
			t.Errorf("chunk %d: expected section %q, got %q", i, want, chunks[i].Section)
		}
	}
	if chunks[1].Text != "History body." {
		t.Errorf("unexpected History text: %q", chunks[1].Text)
	}
}

func TestSplitter_Split_EmptyHeadingName(t *testing.T) {
	chunks := New().Split("== ==\nBody under nameless heading.")
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Section != "Section" {
		t.Errorf("expected fallback section name, got %q", chunks[0].Section)
	}
}

func TestSplitter_Split_TrailingEmptySection(t *testing.T) {
	chunks := New().Split("Intro.\n== See also ==\n")
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Section != domain.IntroductionSection {
		t.Errorf("got unexpected section %q", chunks[0].Section)
	}
}

func TestSplitter_Split_GreedyPacking(t *testing.T) {
	// Three paragraphs of 50 chars each, cap 120: first two pack together,
	// the third starts a new chunk.
	para := strings.Repeat("x", 50)
	text := para + "\n\n" + para + "\n\n" + para
	chunks := New(WithMaxChunkSize(120)).Split(text)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if got := len(chunks[0].Text); got != 102 { // 50 + "\n\n" + 50
		t.Errorf("expected first chunk of 102 chars, got %d", got)
	}
	if chunks[1].Text != para {
		t.Errorf("expected third paragraph alone in second chunk")
	}
}

func TestSplitter_Split_OversizedParagraphKeptWhole(t *testing.T) {
	big := strings.Repeat("y", 3000)
	chunks := New().Split(big)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if len(chunks[0].Text) != 3000 {
		t.Errorf("oversized paragraph must not be truncated, got %d chars", len(chunks[0].Text))
	}
}

// TestSplitter_Split_Coverage checks that within each section, in order,
// the concatenated chunk texts reproduce the section's non-blank content.
func TestSplitter_Split_Coverage(t *testing.T) {
	text := "Lead one.\n\nLead two.\n== A ==\npara1\n\npara2\n\npara3\n== B ==\nlast"
	chunks := New(WithMaxChunkSize(10)).Split(text)

	joined := map[string][]string{}
	for _, ch := range chunks {
		if ch.Text == "" {
			t.Fatal("produced an empty chunk")
		}
		joined[ch.Section] = append(joined[ch.Section], ch.Text)
	}
	want := map[string]string{
		domain.IntroductionSection: "Lead one.\n\nLead two.",
		"A":                        "para1\n\npara2\n\npara3",
		"B":                        "last",
	}
	for section, body := range want {
		if got := strings.Join(joined[section], "\n\n"); got != body {
			t.Errorf("section %q: expected %q, got %q", section, body, got)
		}
	}
}

// TestSplitter_Split_CapGreediness checks no chunk exceeds the cap unless
// it is a single oversized paragraph.
func TestSplitter_Split_CapGreediness(t *testing.T) {
	text := strings.Repeat(strings.Repeat("w", 400)+"\n\n", 10)
	for _, ch := range New().Split(text) {
		if len(ch.Text) > DefaultMaxChunkSize && strings.Contains(ch.Text, "\n\n") {
			t.Errorf("multi-paragraph chunk exceeds cap: %d chars", len(ch.Text))
		}
	}
}

// TestSplitter_Split_Idempotent checks re-splitting a produced chunk's
// text reproduces the chunk when under the cap.
func TestSplitter_Split_Idempotent(t *testing.T) {
	s := New()
	text := "Intro.\n== History ==\nShort body.\n\nAnother paragraph."
	for _, ch := range s.Split(text) {
		if len(ch.Text) > DefaultMaxChunkSize {
			continue
		}
		again := s.Split(ch.Text)
		if len(again) != 1 {
			t.Fatalf("re-split produced %d chunks", len(again))
		}
		if again[0].Text != ch.Text {
			t.Errorf("re-split changed text: %q vs %q", again[0].Text, ch.Text)
		}
	}
}

func TestSplitter_Split_LineOffsets(t *testing.T) {
	text := "Lead.\n== A ==\nbody a\n== B ==\nbody b"
	chunks := New().Split(text)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	if chunks[0].StartLine != 0 {
		t.Errorf("intro should start at line 0, got %d", chunks[0].StartLine)
	}
	if chunks[1].StartLine != 2 {
		t.Errorf("section A should start at line 2, got %d", chunks[1].StartLine)
	}
	if chunks[2].StartLine != 4 {
		t.Errorf("section B should start at line 4, got %d", chunks[2].StartLine)
	}
}
