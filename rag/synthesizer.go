package rag

import (
	"context"
	"strings"

	"github.com/harshydav08/sitechat"
)

// PromptTemplate is the grounding prompt. The {context} and {question}
// placeholders are replaced verbatim.
const PromptTemplate = `You are a helpful assistant that answers questions based ONLY on the provided website content.

IMPORTANT INSTRUCTIONS:
- Answer ONLY using information from the provided context below
- If the answer is not in the context, respond with EXACTLY: "The answer is not available on the provided website."
- Do not use any external knowledge or information not in the context
- Keep your answer concise and directly relevant to the question
- Do not make up or infer information not explicitly stated in the context

Context:
{context}

Question: {question}

Answer:`

// minAnswerLength is the shortest cleaned output accepted as an answer.
const minAnswerLength = 10

// Ensure Synthesizer implements sitechat.Synthesizer at compile time.
var _ sitechat.Synthesizer = (*Synthesizer)(nil)

// Synthesizer turns evidence into an answer through a Generator.
type Synthesizer struct {
	generator sitechat.Generator
	opts      sitechat.GenerateOptions
}

// NewSynthesizer creates a Synthesizer that calls generator with opts.
func NewSynthesizer(generator sitechat.Generator, opts sitechat.GenerateOptions) *Synthesizer {
	return &Synthesizer{generator: generator, opts: opts}
}

// Synthesize answers question from evidence. Without evidence it returns
// NotFoundAnswer and does not call the generator. History does not enter
// the prompt.
func (s *Synthesizer) Synthesize(ctx context.Context, question string, evidence []*sitechat.Evidence, _ []*sitechat.Message) *sitechat.Answer {
	if len(evidence) == 0 {
		return &sitechat.Answer{Text: sitechat.NotFoundAnswer, Sources: []string{}}
	}

	contents := make([]string, len(evidence))
	var total float64
	for i, e := range evidence {
		contents[i] = e.Content
		total += e.Similarity
	}

	prompt := BuildPrompt(strings.Join(contents, "\n\n"), question)
	raw, err := s.generator.Generate(ctx, prompt, s.opts)
	if err != nil {
		return failed(sitechat.GenerationErrorAnswer, err)
	}

	return &sitechat.Answer{
		Text:       CleanResponse(raw),
		Sources:    Sources(evidence),
		Confidence: clamp(total / float64(len(evidence))),
		ChunksUsed: len(evidence),
	}
}

// BuildPrompt fills PromptTemplate.
func BuildPrompt(context, question string) string {
	return strings.NewReplacer("{context}", context, "{question}", question).Replace(PromptTemplate)
}

// CleanResponse trims generator output, drops an echoed "Answer:" label and
// ensures terminal punctuation. Output shorter than ten characters becomes
// NotFoundAnswer.
func CleanResponse(raw string) string {
	out := strings.TrimSpace(raw)
	if len(out) >= len("answer:") && strings.EqualFold(out[:len("answer:")], "answer:") {
		out = strings.TrimSpace(out[len("answer:"):])
	}
	if len(out) < minAnswerLength {
		return sitechat.NotFoundAnswer
	}
	if !strings.ContainsAny(out[len(out)-1:], ".!?") {
		out += "."
	}
	return out
}

// Sources lists the distinct source URLs of evidence in first-seen order.
// Missing and "Unknown" sources are left out.
func Sources(evidence []*sitechat.Evidence) []string {
	sources := []string{}
	seen := make(map[string]bool)
	for _, e := range evidence {
		src := e.Metadata.String(sitechat.MetaSourceURL)
		if src == "" || src == "Unknown" || seen[src] {
			continue
		}
		seen[src] = true
		sources = append(sources, src)
	}
	return sources
}

func failed(text string, err error) *sitechat.Answer {
	return &sitechat.Answer{
		Text:    text,
		Sources: []string{},
		Code:    sitechat.ErrorCode(err),
		Error:   sitechat.ErrorMessage(err),
	}
}
