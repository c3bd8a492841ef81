// Package textvec turns free text into sparse term vectors and compares them.
package textvec

import (
	"strings"
	"unicode"
)

// Tokenize lowercases text and splits it into word tokens of two or more
// letters/digits/underscores. Single characters are dropped.
func Tokenize(text string) []string {
	var tokens []string
	var word strings.Builder

	flush := func() {
		if word.Len() == 0 {
			return
		}
		w := word.String()
		word.Reset()
		if len([]rune(w)) >= 2 {
			tokens = append(tokens, w)
		}
	}

	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			word.WriteRune(r)
			continue
		}
		flush()
	}
	flush()

	return tokens
}

// Terms tokenizes text, optionally drops stopwords, and emits n-grams for
// every n in [minN, maxN] joined by a single space.
func Terms(text string, minN, maxN int, dropStopWords bool) []string {
	tokens := Tokenize(text)
	if dropStopWords {
		kept := tokens[:0]
		for _, t := range tokens {
			if !IsStopWord(t) {
				kept = append(kept, t)
			}
		}
		tokens = kept
	}

	if minN <= 0 {
		minN = 1
	}
	if maxN < minN {
		maxN = minN
	}
	if minN == 1 && maxN == 1 {
		return tokens
	}

	var terms []string
	for n := minN; n <= maxN; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			terms = append(terms, strings.Join(tokens[i:i+n], " "))
		}
	}
	return terms
}
