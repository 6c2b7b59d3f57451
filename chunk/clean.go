package chunk

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	whitespace     = regexp.MustCompile(`\s+`)
	paragraphBreak = regexp.MustCompile(`\n[ \t\r\f\v]*\n\s*`)
	unsafeChars    = regexp.MustCompile(`[^\p{L}\p{N}\p{M}_\s.,!?;:\-()"']+`)
	manyPeriods    = regexp.MustCompile(`\.{3,}`)
	manyDashes     = regexp.MustCompile(`-{3,}`)
	sentenceEnd    = regexp.MustCompile(`[.!?]+`)
	digit          = regexp.MustCompile(`\p{Nd}`)

	// Escaped control sequences and bracketed or parenthetical runs.
	webArtifacts = []*regexp.Regexp{
		regexp.MustCompile(`\\[ntr]`),
		regexp.MustCompile(`\[.*?\]`),
		regexp.MustCompile(`\(.*?\)`),
	}
)

const minSentenceLength = 10

// Clean normalizes raw page text and drops noise sentences. Paragraph
// breaks (blank lines) survive so that Chunk can split on them; each
// paragraph is cleaned on its own.
func (c *Chunker) Clean(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	var paragraphs []string
	for _, p := range paragraphBreak.Split(text, -1) {
		if p = cleanParagraph(p); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return strings.Join(paragraphs, "\n\n")
}

func cleanParagraph(text string) string {
	text = whitespace.ReplaceAllString(text, " ")
	for _, re := range webArtifacts {
		text = re.ReplaceAllString(text, " ")
	}
	text = unsafeChars.ReplaceAllString(text, " ")
	text = manyPeriods.ReplaceAllString(text, "...")
	text = manyDashes.ReplaceAllString(text, "---")
	text = filterSentences(text)
	return strings.TrimSpace(whitespace.ReplaceAllString(text, " "))
}

// filterSentences drops short sentences, sentences dense with digits
// (dates, counters, version strings) and sentences that are mostly
// uppercase (headers, banners).
func filterSentences(text string) string {
	var kept []string
	for _, s := range sentenceEnd.Split(text, -1) {
		s = strings.TrimSpace(s)
		n := utf8.RuneCountInString(s)
		if n < minSentenceLength {
			continue
		}
		words := len(strings.Fields(s))
		if float64(len(digit.FindAllStringIndex(s, -1))) > float64(words)*0.3 {
			continue
		}
		if float64(countUpper(s)) > float64(n)*0.7 {
			continue
		}
		kept = append(kept, s)
	}
	if len(kept) == 0 {
		return ""
	}
	return strings.Join(kept, ". ") + "."
}

func countUpper(s string) int {
	var n int
	for _, r := range s {
		if unicode.IsUpper(r) {
			n++
		}
	}
	return n
}
