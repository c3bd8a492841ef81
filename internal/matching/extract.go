package matching

import (
	"strings"
	"unicode"
)

// ExtractSkills finds every ontology skill mentioned in text as a whole word
// or phrase. Matching is case-insensitive; "ci/cd" and "scikit-learn" match
// with their punctuation intact.
func (o *Ontology) ExtractSkills(text string) SkillSet {
	found := make(SkillSet)
	words := strings.FieldsFunc(strings.ToLower(text), isSkillSeparator)
	for i, w := range words {
		words[i] = strings.TrimRight(w, ".")
	}
	haystack := " " + strings.Join(words, " ") + " "

	for skill := range o.Vocabulary() {
		if strings.Contains(haystack, " "+skill+" ") {
			found[skill] = struct{}{}
		}
	}

	return found
}

// isSkillSeparator splits on whitespace and on punctuation that never
// appears inside a skill name.
func isSkillSeparator(r rune) bool {
	if unicode.IsSpace(r) {
		return true
	}
	switch r {
	case ',', ';', ':', '(', ')', '[', ']', '{', '}', '"', '\'', '!', '?', '|':
		return true
	}
	return false
}
