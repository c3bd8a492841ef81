package services

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkText_ShortTextIsOneChunk(t *testing.T) {
	chunks := NewTextChunker().ChunkText("Senior Go developer.\n\nLoves Postgres.", 100, 10)
	assert.Equal(t, []string{"Senior Go developer. Loves Postgres."}, chunks)
}

func TestChunkText_Empty(t *testing.T) {
	assert.Empty(t, NewTextChunker().ChunkText("  \n\n  ", 100, 10))
}

func TestChunkText_RespectsMaxSize(t *testing.T) {
	var paras []string
	for i := 0; i < 40; i++ {
		paras = append(paras, "Built data pipelines in Python and shipped them to production")
	}
	text := strings.Join(paras, "\n\n")

	chunks := NewTextChunker().ChunkText(text, 200, 30)

	require.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(c), 200)
	}
}

func TestChunkText_OverlapCarriesTail(t *testing.T) {
	text := strings.Repeat("a", 60) + "\n\n" + strings.Repeat("b", 60)

	chunks := NewTextChunker().ChunkText(text, 100, 10)

	require.Len(t, chunks, 2)
	assert.True(t, strings.HasPrefix(chunks[1], strings.Repeat("a", 10)+" "))
}

func TestChunkText_LongSentenceIsHardSplit(t *testing.T) {
	chunks := NewTextChunker().ChunkText(strings.Repeat("x", 250), 100, 0)

	require.Len(t, chunks, 3)
	assert.Equal(t, 50, utf8.RuneCountInString(chunks[2]))
}

func TestMeanVector(t *testing.T) {
	mean, err := meanVector([][]float32{{1, 2}, {3, 4}})
	require.NoError(t, err)
	assert.Equal(t, []float32{2, 3}, mean)

	_, err = meanVector([][]float32{{1, 2}, {3}})
	assert.Error(t, err)

	_, err = meanVector(nil)
	assert.Error(t, err)
}
