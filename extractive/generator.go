// Package extractive implements an offline Generator that answers by
// picking context sentences that share words with the question.
package extractive

import (
	"context"
	"strings"

	"github.com/harshydav08/sitechat"
)

// ModelName identifies the extractive backend in status output.
const ModelName = "extractive"

const (
	maxRelevant = 3
	maxFallback = 2
)

// Ensure Generator implements sitechat.Generator at compile time.
var _ sitechat.Generator = (*Generator)(nil)

var stopWords = map[string]bool{
	"what": true, "is": true, "are": true, "how": true, "why": true,
	"when": true, "where": true, "who": true, "the": true, "a": true,
	"an": true, "and": true, "or": true, "but": true, "in": true,
	"on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "this": true, "that": true, "these": true,
	"those": true,
}

// Generator reads the Context and Question sections of a grounding
// prompt and returns up to three context sentences that contain a
// question keyword. With no match it returns the first two sentences.
// It never calls out of process and never fails.
type Generator struct{}

// NewGenerator returns a Generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Model returns ModelName.
func (g *Generator) Model() string {
	return ModelName
}

// Generate answers prompt. Options are ignored.
func (g *Generator) Generate(_ context.Context, prompt string, _ sitechat.GenerateOptions) (string, error) {
	contextText, question := parsePrompt(prompt)
	if strings.TrimSpace(contextText) == "" {
		return sitechat.NotFoundAnswer, nil
	}

	var sentences []string
	for _, s := range strings.Split(contextText, ".") {
		if s = strings.TrimSpace(s); s != "" {
			sentences = append(sentences, s)
		}
	}
	if len(sentences) == 0 {
		return sitechat.NotFoundAnswer, nil
	}

	keywords := keywords(question)
	var relevant []string
	for _, s := range sentences {
		lower := strings.ToLower(s)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				relevant = append(relevant, s)
				break
			}
		}
	}

	if len(relevant) > 0 {
		return joinSentences(relevant, maxRelevant), nil
	}
	return joinSentences(sentences, maxFallback), nil
}

// parsePrompt collects the lines between "Context:" and "Question:" and
// the text of the Question line. Parsing stops at "Answer:".
func parsePrompt(prompt string) (contextText, question string) {
	var lines []string
	inContext := false
	for _, line := range strings.Split(prompt, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "Context:"):
			inContext = true
		case strings.HasPrefix(line, "Question:"):
			inContext = false
			question = strings.TrimSpace(strings.TrimPrefix(line, "Question:"))
		case strings.HasPrefix(line, "Answer:"):
			return strings.Join(lines, " "), question
		case inContext && line != "":
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, " "), question
}

// keywords lowercases the question, strips surrounding punctuation and
// drops stop words. Order follows first occurrence.
func keywords(question string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, w := range strings.Fields(strings.ToLower(question)) {
		w = strings.Trim(w, `?!.,;:"'()`)
		if w == "" || stopWords[w] || seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	return out
}

func joinSentences(sentences []string, limit int) string {
	if len(sentences) > limit {
		sentences = sentences[:limit]
	}
	out := strings.Join(sentences, ". ")
	if !strings.HasSuffix(out, ".") {
		out += "."
	}
	return out
}
