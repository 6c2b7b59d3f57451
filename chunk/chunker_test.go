package chunk_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/harshydav08/sitechat"
	"github.com/harshydav08/sitechat/chunk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Chunker implements sitechat.Chunker at compile time.
var _ sitechat.Chunker = (*chunk.Chunker)(nil)

const sentence = "Our team builds reliable software for small businesses across the region."

func longText(n int) string {
	s := make([]string, n)
	for i := range s {
		s[i] = sentence
	}
	return strings.Join(s, " ")
}

func pageMeta() sitechat.PageMetadata {
	return sitechat.PageMetadata{
		SourceURL:         "https://example.com/about",
		PageTitle:         "About",
		OriginalWordCount: 300,
	}
}

func TestNewChunker(t *testing.T) {
	t.Parallel()

	t.Run("applies defaults for invalid values", func(t *testing.T) {
		t.Parallel()

		c := chunk.NewChunker(0, -1)

		assert.Equal(t, chunk.DefaultSize, c.Size())
		assert.Equal(t, chunk.DefaultOverlap, c.Overlap())
	})

	t.Run("caps overlap below size", func(t *testing.T) {
		t.Parallel()

		c := chunk.NewChunker(100, 100)

		assert.Equal(t, 100, c.Size())
		assert.Equal(t, 20, c.Overlap())
	})
}

func TestChunker_Chunk(t *testing.T) {
	t.Parallel()

	t.Run("returns no chunks for empty text", func(t *testing.T) {
		t.Parallel()

		chunks := chunk.NewChunker(500, 100).Chunk("  \n\n ", pageMeta())

		assert.Empty(t, chunks)
	})

	t.Run("returns single chunk for short text", func(t *testing.T) {
		t.Parallel()

		chunks := chunk.NewChunker(500, 100).Chunk(sentence, pageMeta())

		require.Len(t, chunks, 1)
		c := chunks[0]
		assert.Equal(t, sentence, c.Content)
		assert.Equal(t, 11, c.WordCount)
		assert.Equal(t, sitechat.ChunkMetadata{
			SourceURL:         "https://example.com/about",
			PageTitle:         "About",
			OriginalWordCount: 300,
			ChunkIndex:        0,
			ChunkLength:       len(sentence),
			ChunkWordCount:    11,
		}, c.Metadata)
		assert.Equal(t, chunk.ID("https://example.com/about", 0), c.ID)
	})

	t.Run("splits a 2000 character page into overlapping chunks", func(t *testing.T) {
		t.Parallel()

		text := longText(28)
		require.GreaterOrEqual(t, len(text), 2000)

		chunks := chunk.NewChunker(500, 100).Chunk(text, pageMeta())

		require.GreaterOrEqual(t, len(chunks), 4)
		for i, c := range chunks {
			assert.Equal(t, i, c.Metadata.ChunkIndex)
			assert.Equal(t, utf8.RuneCountInString(c.Content), c.Metadata.ChunkLength)
			assert.LessOrEqual(t, c.Metadata.ChunkLength, 500+100+2)
		}
		for i := 1; i < len(chunks); i++ {
			prefix, _, found := strings.Cut(chunks[i].Content, "\n\n")
			require.True(t, found, "chunk %d has no overlap prefix", i)
			assert.NotEmpty(t, prefix)
			assert.LessOrEqual(t, len(prefix), 100)
			assert.True(t, strings.HasSuffix(chunks[i-1].Content, prefix),
				"chunk %d does not start with the tail of chunk %d", i, i-1)
		}
	})

	t.Run("overlap starts at a sentence boundary", func(t *testing.T) {
		t.Parallel()

		chunks := chunk.NewChunker(500, 100).Chunk(longText(28), pageMeta())

		require.Greater(t, len(chunks), 1)
		prefix, _, _ := strings.Cut(chunks[1].Content, "\n\n")
		assert.True(t, strings.HasPrefix(prefix, "Our"), "overlap %q does not begin a sentence", prefix)
	})

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()

		c := chunk.NewChunker(500, 100)
		text := longText(30)

		first := c.Chunk(text, pageMeta())
		second := c.Chunk(text, pageMeta())

		assert.Equal(t, first, second)
	})

	t.Run("keeps paragraphs together when they fit", func(t *testing.T) {
		t.Parallel()

		text := "First paragraph about the company history.\n\nSecond paragraph about the products we sell."

		chunks := chunk.NewChunker(500, 100).Chunk(text, pageMeta())

		require.Len(t, chunks, 1)
		assert.Equal(t, text, chunks[0].Content)
	})

	t.Run("starts a new chunk when a paragraph overflows", func(t *testing.T) {
		t.Parallel()

		p1 := strings.Repeat("a", 30) + ". First block ends here."
		p2 := strings.Repeat("b", 30) + ". Second block ends here."

		chunks := chunk.NewChunker(60, 24).Chunk(p1+"\n\n"+p2, pageMeta())

		require.Len(t, chunks, 2)
		assert.Equal(t, p1, chunks[0].Content)
		assert.Equal(t, "First block ends here.\n\n"+p2, chunks[1].Content)
	})

	t.Run("splits a long sentence at word boundaries", func(t *testing.T) {
		t.Parallel()

		text := strings.TrimSpace(strings.Repeat("word ", 60))

		chunks := chunk.NewChunker(50, 10).Chunk(text, pageMeta())

		require.Greater(t, len(chunks), 1)
		for _, c := range chunks {
			for _, w := range strings.Fields(c.Content) {
				assert.Equal(t, "word", w)
			}
		}
	})

	t.Run("cuts words longer than the chunk size", func(t *testing.T) {
		t.Parallel()

		text := strings.Repeat("x", 120)

		chunks := chunk.NewChunker(50, 0).Chunk(text, pageMeta())

		require.Len(t, chunks, 3)
		assert.Equal(t, text, chunks[0].Content+chunks[1].Content+chunks[2].Content)
	})

	t.Run("assigns distinct IDs per source", func(t *testing.T) {
		t.Parallel()

		c := chunk.NewChunker(500, 100)
		a := c.Chunk(longText(20), sitechat.PageMetadata{SourceURL: "https://example.com/a"})
		b := c.Chunk(longText(20), sitechat.PageMetadata{SourceURL: "https://example.com/b"})

		seen := make(map[string]bool)
		for _, ch := range append(a, b...) {
			assert.False(t, seen[ch.ID], "duplicate id %s", ch.ID)
			seen[ch.ID] = true
		}
	})
}

func TestID(t *testing.T) {
	t.Parallel()

	id := chunk.ID("https://example.com/", 3)

	assert.Equal(t, id, chunk.ID("https://example.com/", 3))
	assert.True(t, strings.HasSuffix(id, "_chunk_3"))
	assert.NotEqual(t, id, chunk.ID("https://example.org/", 3))
}
