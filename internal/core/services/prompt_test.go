package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IrfanSethi/WikiTalk/internal/core/domain"
	"github.com/IrfanSethi/WikiTalk/internal/core/ports/driven"
)

func TestBuildMessages_Structure(t *testing.T) {
	chunks := []domain.Chunk{
		{Section: "History", Text: "History body."},
		{Section: "Legacy", Text: "Legacy body."},
	}
	pairs := []QAPair{{Question: "Q1", Answer: "A1"}}

	msgs := buildMessages("current question", pairs, chunks,
		"Alan Turing", "https://en.wikipedia.org/wiki/Alan_Turing")

	require.Len(t, msgs, 5)
	assert.Equal(t, driven.ChatRoleSystem, msgs[0].Role)
	assert.Contains(t, msgs[0].Content, "strictly from the provided Wikipedia context")

	assert.Equal(t, driven.ChatRoleSystem, msgs[1].Role)
	assert.Contains(t, msgs[1].Content, "Article: Alan Turing - https://en.wikipedia.org/wiki/Alan_Turing")
	assert.Contains(t, msgs[1].Content, "[Chunk 1] Section: History\nHistory body.")
	assert.Contains(t, msgs[1].Content, "[Chunk 2] Section: Legacy\nLegacy body.")

	assert.Equal(t, driven.ChatMessage{Role: driven.ChatRoleUser, Content: "Q1"}, msgs[2])
	assert.Equal(t, driven.ChatMessage{Role: driven.ChatRoleAssistant, Content: "A1"}, msgs[3])
	assert.Equal(t, driven.ChatMessage{Role: driven.ChatRoleUser, Content: "current question"}, msgs[4])
}

func TestBuildMessages_EmptyURL(t *testing.T) {
	msgs := buildMessages("q", nil, nil, "Title", "")
	require.GreaterOrEqual(t, len(msgs), 2)
	assert.Contains(t, msgs[1].Content, "Article: Title\n")
	assert.NotContains(t, msgs[1].Content, "Title - ")
}

func TestBuildMessages_HistoryWindow(t *testing.T) {
	var pairs []QAPair
	for _, q := range []string{"Q1", "Q2", "Q3", "Q4", "Q5", "Q6"} {
		pairs = append(pairs, QAPair{Question: q, Answer: "A-" + q})
	}
	msgs := buildMessages("now", pairs, nil, "T", "")

	var questions []string
	for _, m := range msgs {
		if m.Role == driven.ChatRoleUser {
			questions = append(questions, m.Content)
		}
	}
	// Only the last 4 pairs survive, then the current question.
	assert.Equal(t, []string{"Q3", "Q4", "Q5", "Q6", "now"}, questions)
}

func TestBuildMessages_EmptyAnswerOmitted(t *testing.T) {
	pairs := []QAPair{{Question: "pending question", Answer: ""}}
	msgs := buildMessages("q", pairs, nil, "T", "")
	for _, m := range msgs {
		assert.NotEqual(t, driven.ChatRoleAssistant, m.Role)
	}
}

func TestBuildMessages_QuestionLast(t *testing.T) {
	msgs := buildMessages("the question", []QAPair{{Question: "old", Answer: "a"}}, nil, "T", "")
	last := msgs[len(msgs)-1]
	assert.Equal(t, driven.ChatRoleUser, last.Role)
	assert.Equal(t, "the question", last.Content)
}

func TestFirstSentences(t *testing.T) {
	text := "One. Two! Three? Four."
	assert.Equal(t, []string{"One.", "Two!", "Three?"}, firstSentences(text, 3))
	assert.Equal(t, []string{"One.", "Two!", "Three?", "Four."}, firstSentences(text, 4))
}

func TestFirstSentences_NoTerminator(t *testing.T) {
	assert.Equal(t, []string{"no punctuation at all"}, firstSentences("no punctuation at all", 3))
}

func TestFirstSentences_AbbreviationNotSplit(t *testing.T) {
	// A period not followed by whitespace is not a boundary.
	got := firstSentences("See e.g.the text. Second sentence.", 1)
	require.Len(t, got, 1)
	assert.True(t, strings.HasPrefix(got[0], "See e.g.the text."))
}
