package services

import "github.com/IrfanSethi/WikiTalk/internal/core/domain"

// QAPair is one reconstructed (question, answer) turn.
// Answer is empty for a question that has not been answered yet.
type QAPair struct {
	Question string
	Answer   string
}

// historyPairs replays a session's ordered message log into (question,
// answer) pairs. A user message becomes the pending question,
// overwriting any unconsumed one, and the next
// assistant message consumes it. A trailing unanswered user message is
// appended with an empty answer (it is the in-flight or orphaned turn).
func historyPairs(msgs []domain.Message) []QAPair {
	var (
		pairs   []QAPair
		pending *string
	)
	for _, m := range msgs {
		switch m.Role {
		case domain.RoleUser:
			text := m.Text
			pending = &text
		case domain.RoleAssistant:
			if pending == nil {
				continue
			}
			pairs = append(pairs, QAPair{Question: *pending, Answer: m.Text})
			pending = nil
		}
	}
	if pending != nil {
		pairs = append(pairs, QAPair{Question: *pending})
	}
	return pairs
}

// questionTexts extracts the question strings from pairs, in order.
func questionTexts(pairs []QAPair) []string {
	questions := make([]string, 0, len(pairs))
	for _, p := range pairs {
		questions = append(questions, p.Question)
	}
	return questions
}
