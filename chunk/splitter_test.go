package chunk

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSplitter_Defaults(t *testing.T) {
	s := NewSplitter(0, -1)
	assert.Equal(t, DefaultChunkSize, s.ChunkSize)
	assert.Equal(t, DefaultChunkSize/10, s.Overlap)

	s = NewSplitter(100, 200)
	assert.Equal(t, 100, s.ChunkSize)
	assert.Equal(t, 10, s.Overlap, "overlap wider than the chunk is replaced")
}

func TestSplit_ShortTextIsOneChunk(t *testing.T) {
	s := NewSplitter(100, 10)
	assert.Equal(t, []string{"short text"}, s.Split("short text"))
	assert.Nil(t, s.Split(""))
}

func TestSplit_SeparatorPreference(t *testing.T) {
	// The window "aaaa.bbbb\ncc" holds both a period and a newline; the
	// newline wins even though the period comes first.
	s := NewSplitter(12, 0)
	chunks := s.Split("aaaa.bbbb\ncccc dddd eeee")
	assert.Equal(t, []string{"aaaa.bbbb\n", "cccc dddd ", "eeee"}, chunks)
}

func TestSplit_Invariants(t *testing.T) {
	s := NewSplitter(40, 8)
	text := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 20)

	chunks := s.Split(text)
	require.Greater(t, len(chunks), 1)

	for i, c := range chunks {
		assert.LessOrEqual(t, len(c), s.ChunkSize, "chunk %d exceeds the bound", i)
		assert.NotEmpty(t, c)
	}

	// Each chunk begins with the trailing Overlap bytes of its predecessor,
	// and stripping that overlap reconstructs the input exactly.
	rebuilt := chunks[0]
	for i, c := range chunks[1:] {
		require.GreaterOrEqual(t, len(c), s.Overlap)
		assert.True(t, strings.HasSuffix(rebuilt, c[:s.Overlap]), "chunk %d does not overlap its predecessor", i+1)
		rebuilt += c[s.Overlap:]
	}
	assert.Equal(t, text, rebuilt)
}

func TestSplit_Deterministic(t *testing.T) {
	s := NewSplitter(64, 16)
	text := strings.Repeat("Deterministic output, run after run after run. ", 12)
	assert.Equal(t, s.Split(text), s.Split(text))
}

func TestSplit_OverlapStartsOnRuneBoundary(t *testing.T) {
	// An odd overlap rewinds into the middle of a 2-byte rune; the next chunk
	// must still start on a rune boundary or the embedding request carries
	// invalid UTF-8.
	s := NewSplitter(9, 3)
	text := strings.Repeat("é", 20)

	chunks := s.Split(text)
	require.Greater(t, len(chunks), 1)
	for i, c := range chunks {
		assert.True(t, utf8.ValidString(c), "chunk %d is not valid UTF-8: %q", i, c)
	}
}

func TestSplit_HardCutKeepsRunesWhole(t *testing.T) {
	// No separators at all: the splitter must fall back to byte cuts without
	// slicing a multi-byte rune in half.
	s := NewSplitter(9, 2)
	text := strings.Repeat("é", 20) // 2 bytes per rune, so 9 bytes lands mid-rune

	for _, c := range s.Split(text) {
		assert.True(t, strings.HasPrefix(c, "é") || c == "", "chunk starts mid-rune: %q", c)
		assert.Equal(t, 0, len(c)%2, "chunk holds a partial rune: %q", c)
	}
}
