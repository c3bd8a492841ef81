package services

import (
	"strings"
	"unicode/utf8"
)

// TextChunker splits long resume text into windows the embedding model accepts.
type TextChunker interface {
	ChunkText(text string, maxChunkSize int, overlap int) []string
}

type textChunker struct{}

func NewTextChunker() TextChunker {
	return &textChunker{}
}

// ChunkText packs paragraphs into chunks of at most maxChunkSize runes.
// Paragraphs longer than maxChunkSize are split by sentence, and sentences
// longer than that are hard-cut. A chunk starts with the last overlap runes
// of the previous one when they still fit.
func (tc *textChunker) ChunkText(text string, maxChunkSize int, overlap int) []string {
	if maxChunkSize <= 0 {
		maxChunkSize = 1000
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= maxChunkSize {
		overlap = maxChunkSize / 4
	}

	var pieces []string
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if utf8.RuneCountInString(para) <= maxChunkSize {
			pieces = append(pieces, para)
			continue
		}
		for _, sentence := range splitIntoSentences(para) {
			pieces = append(pieces, hardSplit(sentence, maxChunkSize)...)
		}
	}

	var chunks []string
	var current strings.Builder
	currentLen := 0
	hasContent := false

	for _, piece := range pieces {
		n := utf8.RuneCountInString(piece)
		if hasContent && currentLen+1+n > maxChunkSize {
			chunk := current.String()
			chunks = append(chunks, chunk)
			current.Reset()
			currentLen = 0
			hasContent = false

			tail := lastNRunes(chunk, overlap)
			if tailLen := utf8.RuneCountInString(tail); tailLen > 0 && tailLen+1+n <= maxChunkSize {
				current.WriteString(tail)
				currentLen = tailLen
			}
		}
		if currentLen > 0 {
			current.WriteString(" ")
			currentLen++
		}
		current.WriteString(piece)
		currentLen += n
		hasContent = true
	}

	if hasContent {
		chunks = append(chunks, current.String())
	}

	return chunks
}

func splitIntoSentences(text string) []string {
	sentences := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})

	var result []string
	for _, s := range sentences {
		s = strings.TrimSpace(s)
		if s != "" {
			result = append(result, s)
		}
	}
	return result
}

func hardSplit(text string, size int) []string {
	if size <= 0 {
		size = 1
	}
	runes := []rune(text)
	if len(runes) <= size {
		return []string{text}
	}
	var out []string
	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		out = append(out, string(runes[start:end]))
	}
	return out
}

func lastNRunes(text string, n int) string {
	if n <= 0 {
		return ""
	}

	runes := []rune(text)
	if len(runes) <= n {
		return text
	}

	return string(runes[len(runes)-n:])
}
