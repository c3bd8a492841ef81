package textvec

import (
	"fmt"
	"math"
)

// Vectorizer is a TF-IDF vectorizer fitted offline. It maps a document onto
// a fixed dense feature space of len(Vocabulary) columns.
type Vectorizer struct {
	Vocabulary map[string]int `json:"vocabulary"`
	IDF        []float64      `json:"idf"`
	NGramRange [2]int         `json:"ngram_range"`
	StopWords  bool           `json:"stop_words"`
}

// Validate checks that the vocabulary indexes line up with the idf weights.
func (v *Vectorizer) Validate() error {
	if len(v.Vocabulary) != len(v.IDF) {
		return fmt.Errorf("vocabulary has %d terms but idf has %d weights", len(v.Vocabulary), len(v.IDF))
	}
	for term, idx := range v.Vocabulary {
		if idx < 0 || idx >= len(v.IDF) {
			return fmt.Errorf("term %q has out of range index %d", term, idx)
		}
	}
	return nil
}

// Dim is the width of the vectors produced by Transform.
func (v *Vectorizer) Dim() int {
	return len(v.IDF)
}

// Transform returns the l2-normalized TF-IDF vector of text. Terms outside
// the fitted vocabulary are ignored.
func (v *Vectorizer) Transform(text string) []float64 {
	out := make([]float64, len(v.IDF))

	minN, maxN := v.NGramRange[0], v.NGramRange[1]
	if minN == 0 {
		minN, maxN = 1, 1
	}

	for _, term := range Terms(text, minN, maxN, v.StopWords) {
		if idx, ok := v.Vocabulary[term]; ok {
			out[idx]++
		}
	}

	var sum float64
	for i, c := range out {
		if c == 0 {
			continue
		}
		out[i] = c * v.IDF[i]
		sum += out[i] * out[i]
	}
	if sum > 0 {
		n := math.Sqrt(sum)
		for i := range out {
			out[i] /= n
		}
	}

	return out
}
