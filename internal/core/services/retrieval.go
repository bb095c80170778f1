package services

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/IrfanSethi/WikiTalk/internal/core/domain"
)

// DefaultTopK is the number of chunks retrieved per question.
const DefaultTopK = 5

// historyWindow is how many recent history questions contribute tokens.
const historyWindow = 4

// nonTokenRe matches every character outside the token alphabet.
var nonTokenRe = regexp.MustCompile(`[^a-z0-9\s]`)

// tokenize lowercases, strips punctuation, and splits on whitespace.
func tokenize(s string) []string {
	s = nonTokenRe.ReplaceAllString(strings.ToLower(s), " ")
	return strings.Fields(s)
}

// Retriever scores chunks against a question plus recent history and
// selects the best ones. It is a lexical/heuristic scorer: no embeddings
// are involved.
type Retriever struct{}

// NewRetriever creates a retriever.
func NewRetriever() Retriever {
	return Retriever{}
}

// Score rates one chunk against a query and the most recent history
// questions. The raw keyword-overlap score is length-normalised by
// 1 + sqrt(chunk token count) so long chunks are not systematically
// favoured, and each distinct query token appearing in the section name
// adds a 0.5 bonus.
func (Retriever) Score(query string, history []string, chunk domain.Chunk) float64 {
	tokens := queryTokens(query, history)
	if len(tokens) == 0 {
		return 0
	}
	chunkTokens := tokenize(chunk.Text)
	if len(chunkTokens) == 0 {
		return 0
	}

	freq := make(map[string]int, len(chunkTokens))
	for _, t := range chunkTokens {
		freq[t]++
	}

	var score float64
	for t := range tokens {
		score += float64(freq[t])
	}
	score /= 1 + math.Sqrt(float64(len(chunkTokens)))

	sectionTokens := make(map[string]struct{})
	for _, t := range tokenize(chunk.Section) {
		sectionTokens[t] = struct{}{}
	}
	for t := range tokens {
		if _, ok := sectionTokens[t]; ok {
			score += 0.5
		}
	}
	return score
}

// TopK returns the k highest-scoring chunks in descending score order,
// ties broken by original chunk order. Chunks scoring zero or below are
// dropped; an empty result means "no relevant context", not an error.
func (r Retriever) TopK(chunks []domain.Chunk, query string, history []string, k int) []domain.Chunk {
	if k <= 0 {
		k = DefaultTopK
	}

	type scored struct {
		chunk domain.Chunk
		score float64
	}
	ranked := make([]scored, 0, len(chunks))
	for _, ch := range chunks {
		ranked = append(ranked, scored{chunk: ch, score: r.Score(query, history, ch)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	top := make([]domain.Chunk, 0, k)
	for _, s := range ranked {
		if len(top) >= k {
			break
		}
		if s.score <= 0 {
			break // sorted descending, nothing positive remains
		}
		top = append(top, s.chunk)
	}
	return top
}

// queryTokens is the distinct union of the query's tokens and the tokens
// of the last few history questions.
func queryTokens(query string, history []string) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, t := range tokenize(query) {
		tokens[t] = struct{}{}
	}
	if len(history) > 0 {
		recent := history
		if len(recent) > historyWindow {
			recent = recent[len(recent)-historyWindow:]
		}
		for _, t := range tokenize(strings.Join(recent, " ")) {
			tokens[t] = struct{}{}
		}
	}
	return tokens
}
