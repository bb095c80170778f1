package services

import (
	"fmt"
	"strings"

	"github.com/IrfanSethi/WikiTalk/internal/core/domain"
	"github.com/IrfanSethi/WikiTalk/internal/core/ports/driven"
)

// promptHistoryWindow is how many recent (question, answer) pairs are
// replayed into the prompt.
const promptHistoryWindow = 4

// groundingInstructions is the fixed system message constraining the
// model to the supplied context.
const groundingInstructions = "You are a helpful assistant answering strictly from the provided Wikipedia context. " +
	"Be clear, well-structured, and as informative as possible without fabricating. " +
	"Organize responses with a brief summary first, then key points or steps as bullet points, and a short details section when helpful. " +
	"Define important terms and include dates, names, and figures when relevant. " +
	"Cite sections using [Section: <name>] and include very short quotes where helpful. " +
	"If the answer is not in the context, say so plainly and point to likely relevant sections."

// buildMessages assembles the ordered message list for the language model:
// grounding instructions, the article context, up to the last few history
// pairs, and the current question last. Message order is significant and
// preserved exactly.
func buildMessages(question string, pairs []QAPair, chunks []domain.Chunk, articleTitle, articleURL string) []driven.ChatMessage {
	ctxParts := make([]string, 0, len(chunks))
	for i, ch := range chunks {
		ctxParts = append(ctxParts, fmt.Sprintf("[Chunk %d] Section: %s\n%s", i+1, ch.Section, ch.Text))
	}
	srcLine := "Article: " + articleTitle
	if articleURL != "" {
		srcLine += " - " + articleURL
	}
	contextInstruction := "Use only these sources to answer thoroughly. Prefer concise structure over long prose.\n" +
		srcLine + "\n\n" + strings.Join(ctxParts, "\n\n")

	msgs := []driven.ChatMessage{
		{Role: driven.ChatRoleSystem, Content: groundingInstructions},
		{Role: driven.ChatRoleSystem, Content: contextInstruction},
	}

	recent := pairs
	if len(recent) > promptHistoryWindow {
		recent = recent[len(recent)-promptHistoryWindow:]
	}
	for _, p := range recent {
		msgs = append(msgs, driven.ChatMessage{Role: driven.ChatRoleUser, Content: p.Question})
		if p.Answer != "" {
			msgs = append(msgs, driven.ChatMessage{Role: driven.ChatRoleAssistant, Content: p.Answer})
		}
	}

	return append(msgs, driven.ChatMessage{Role: driven.ChatRoleUser, Content: question})
}
