// Package chunk cleans page text and splits it into overlapping chunks
// for embedding.
package chunk

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
	"github.com/harshydav08/sitechat"
)

// Ensure Chunker implements sitechat.Chunker at compile time.
var _ sitechat.Chunker = (*Chunker)(nil)

// Default chunk parameters, in characters.
const (
	DefaultSize    = 1000
	DefaultOverlap = 200
)

var sentenceBoundary = regexp.MustCompile(`[.!?]\s+`)

// Chunker splits cleaned text into chunks of roughly size characters.
// Each chunk after the first starts with up to overlap characters from
// the end of the previous one, trimmed to a sentence or word boundary.
//
// Chunker holds no mutable state and is safe for concurrent use.
type Chunker struct {
	size    int
	overlap int
}

// NewChunker returns a Chunker. Non-positive size and negative overlap
// fall back to the defaults; overlap is capped below size.
func NewChunker(size, overlap int) *Chunker {
	if size <= 0 {
		size = DefaultSize
	}
	if overlap < 0 {
		overlap = DefaultOverlap
	}
	if overlap >= size {
		overlap = size / 5
	}
	return &Chunker{size: size, overlap: overlap}
}

// Size returns the target chunk size in characters.
func (c *Chunker) Size() int { return c.size }

// Overlap returns the overlap in characters.
func (c *Chunker) Overlap() int { return c.overlap }

// Chunk splits text into chunks. Paragraphs (blank-line separated) are
// accumulated greedily; a paragraph longer than the chunk size is first
// split at sentence, then word boundaries. Non-empty input always yields
// at least one chunk.
func (c *Chunker) Chunk(text string, meta sitechat.PageMetadata) []*sitechat.TextChunk {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var paragraphs []string
	for _, p := range strings.Split(text, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			paragraphs = append(paragraphs, c.splitOversized(p)...)
		}
	}
	if len(paragraphs) == 0 {
		paragraphs = []string{text}
	}

	var chunks []*sitechat.TextChunk
	var current string
	for _, p := range paragraphs {
		if current != "" && runeLen(current)+runeLen(p) > c.size {
			chunks = append(chunks, newChunk(current, meta, len(chunks)))
			if tail := c.overlapTail(current); tail != "" {
				current = tail + "\n\n" + p
			} else {
				current = p
			}
			continue
		}
		if current == "" {
			current = p
		} else {
			current += "\n\n" + p
		}
	}
	if strings.TrimSpace(current) != "" {
		chunks = append(chunks, newChunk(current, meta, len(chunks)))
	}

	if len(chunks) == 0 {
		chunks = append(chunks, newChunk(text, meta, 0))
	}
	return chunks
}

// overlapTail returns the last overlap characters of text, advanced past
// the first sentence boundary in that window, or else past the first space.
func (c *Chunker) overlapTail(text string) string {
	if c.overlap == 0 {
		return ""
	}
	if runeLen(text) <= c.overlap {
		return text
	}

	runes := []rune(text)
	tail := string(runes[len(runes)-c.overlap:])

	if loc := sentenceBoundary.FindStringIndex(tail); loc != nil {
		return strings.TrimSpace(tail[loc[1]:])
	}
	if i := strings.Index(tail, " "); i > 0 {
		return strings.TrimSpace(tail[i+1:])
	}
	return strings.TrimSpace(tail)
}

// splitOversized breaks a paragraph longer than the chunk size into
// pieces that fit, packing whole sentences first and whole words when a
// single sentence is too long.
func (c *Chunker) splitOversized(p string) []string {
	if runeLen(p) <= c.size {
		return []string{p}
	}

	var pieces []string
	var buf string
	flush := func() {
		if buf != "" {
			pieces = append(pieces, buf)
			buf = ""
		}
	}
	add := func(unit string) {
		switch {
		case buf == "":
			buf = unit
		case runeLen(buf)+1+runeLen(unit) <= c.size:
			buf += " " + unit
		default:
			flush()
			buf = unit
		}
	}

	for _, sentence := range splitSentences(p) {
		if runeLen(sentence) <= c.size {
			add(sentence)
			continue
		}
		for _, word := range strings.Fields(sentence) {
			for runeLen(word) > c.size {
				r := []rune(word)
				flush()
				pieces = append(pieces, string(r[:c.size]))
				word = string(r[c.size:])
			}
			add(word)
		}
	}
	flush()
	return pieces
}

// splitSentences splits text after each run of terminators followed by
// whitespace, keeping the terminators.
func splitSentences(text string) []string {
	var out []string
	start := 0
	for _, loc := range sentenceBoundary.FindAllStringIndex(text, -1) {
		if s := strings.TrimSpace(text[start:loc[1]]); s != "" {
			out = append(out, s)
		}
		start = loc[1]
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		out = append(out, s)
	}
	return out
}

func newChunk(content string, meta sitechat.PageMetadata, index int) *sitechat.TextChunk {
	content = strings.TrimSpace(content)
	words := sitechat.CountWords(content)
	return &sitechat.TextChunk{
		ID:      ID(meta.SourceURL, index),
		Content: content,
		Metadata: sitechat.ChunkMetadata{
			SourceURL:         meta.SourceURL,
			PageTitle:         meta.PageTitle,
			OriginalWordCount: meta.OriginalWordCount,
			ChunkIndex:        index,
			ChunkLength:       runeLen(content),
			ChunkWordCount:    words,
		},
		WordCount: words,
	}
}

// ID returns the deterministic identifier of the index-th chunk of the
// page at sourceURL.
func ID(sourceURL string, index int) string {
	return fmt.Sprintf("%016x_chunk_%d", xxhash.Sum64String(sourceURL), index)
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
