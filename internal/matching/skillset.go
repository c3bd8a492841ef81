package matching

import (
	"sort"
	"strings"
	"unicode"
)

// SkillSet is a set of normalized skill names.
type SkillSet map[string]struct{}

// NormalizeSkill lowercases a skill, trims surrounding whitespace and strips
// trailing punctuation, so "Python," and " python" are the same skill.
// Inner punctuation is kept ("ci/cd", "node.js", "c++").
func NormalizeSkill(skill string) string {
	s := strings.ToLower(strings.TrimSpace(skill))
	s = strings.TrimRightFunc(s, func(r rune) bool {
		return unicode.IsPunct(r) && r != '+' && r != '#'
	})
	return strings.Join(strings.Fields(s), " ")
}

// NewSkillSet builds a SkillSet from raw skill names. Blank entries are
// skipped and duplicates collapse.
func NewSkillSet(skills ...string) SkillSet {
	set := make(SkillSet, len(skills))
	for _, skill := range skills {
		if n := NormalizeSkill(skill); n != "" {
			set[n] = struct{}{}
		}
	}
	return set
}

func (s SkillSet) Contains(skill string) bool {
	_, ok := s[NormalizeSkill(skill)]
	return ok
}

func (s SkillSet) Add(skill string) {
	if n := NormalizeSkill(skill); n != "" {
		s[n] = struct{}{}
	}
}

// Union returns a new set holding the members of s and other.
func (s SkillSet) Union(other SkillSet) SkillSet {
	out := make(SkillSet, len(s)+len(other))
	for k := range s {
		out[k] = struct{}{}
	}
	for k := range other {
		out[k] = struct{}{}
	}
	return out
}

// CountIn returns how many members of s are also in other.
func (s SkillSet) CountIn(other SkillSet) int {
	n := 0
	for k := range s {
		if _, ok := other[k]; ok {
			n++
		}
	}
	return n
}

// Sorted returns the members in lexical order.
func (s SkillSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
