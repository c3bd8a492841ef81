package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSkill(t *testing.T) {
	assert.Equal(t, "python", NormalizeSkill("  Python, "))
	assert.Equal(t, "node.js", NormalizeSkill("Node.js."))
	assert.Equal(t, "c++", NormalizeSkill("C++"))
	assert.Equal(t, "sql server", NormalizeSkill("SQL   Server"))
	assert.Equal(t, "", NormalizeSkill(" ;; "))
}

func TestSkillSet_CaseInsensitiveMembership(t *testing.T) {
	set := NewSkillSet("Python", "SQL", "python", "")

	assert.Len(t, set, 2)
	assert.True(t, set.Contains("PYTHON"))
	assert.True(t, set.Contains("sql"))
	assert.False(t, set.Contains("docker"))
	assert.Equal(t, []string{"python", "sql"}, set.Sorted())
}

func TestExpand_KeepsInputSkills(t *testing.T) {
	o := DefaultOntology()

	inputs := [][]string{
		{},
		{"python"},
		{"Rust", "COBOL"},
		{"devops", "sql", "leadership", "unknown skill"},
	}
	for _, in := range inputs {
		set := NewSkillSet(in...)
		expanded := o.Expand(set)
		for skill := range set {
			assert.Contains(t, expanded, skill)
		}
	}
}

func TestExpand_OneHopOnly(t *testing.T) {
	o := DefaultOntology()

	expanded := o.Expand(NewSkillSet("Python"))

	assert.ElementsMatch(t, []string{
		"python", "django", "flask", "pandas", "numpy", "tensorflow",
		"pytorch", "scikit-learn", "data science", "machine learning",
	}, expanded.Sorted())
	// "deep learning" is only reachable through "machine learning".
	assert.NotContains(t, expanded, "deep learning")
}

func TestExpand_UnknownSkillYieldsItself(t *testing.T) {
	o := DefaultOntology()

	expanded := o.Expand(NewSkillSet("Haskell"))

	assert.Equal(t, []string{"haskell"}, expanded.Sorted())
}

func TestSkillsMatchScore_EmptyJobSkillsIsFullCredit(t *testing.T) {
	assert.Equal(t, 100.0, SkillsMatchScore([]string{"go"}, nil, nil))
	assert.Equal(t, 100.0, SkillsMatchScore(nil, []string{}, []string{}))
}

func TestSkillsMatchScore_RequiredAndPreferredWeights(t *testing.T) {
	score := SkillsMatchScore(
		[]string{"Python", "Django", "SQL"},
		[]string{"python", "sql"},
		[]string{"docker"},
	)

	assert.InDelta(t, 80.0, score, 1e-9)
}

func TestSkillsMatchScore_PartialRequired(t *testing.T) {
	score := SkillsMatchScore(
		[]string{"python", "docker"},
		[]string{"python", "sql", "aws", "go"},
		nil,
	)

	// 0.8 * 1/4 + 0.2 * 1.0
	assert.InDelta(t, 40.0, score, 1e-9)
}

func TestSkillGraphScore_NoJobSkills(t *testing.T) {
	o := DefaultOntology()

	assert.Equal(t, 100.0, o.SkillGraphScore([]string{"python"}, nil))
	assert.Equal(t, 100.0, o.SkillGraphScore(nil, []string{}))
}

func TestSkillGraphScore_RelatedSkillCountsAsDirectMatch(t *testing.T) {
	o := DefaultOntology()

	// expand(["django"]) is just {"django"}, which the expanded candidate
	// set also contains, so both terms earn full credit.
	score := o.SkillGraphScore([]string{"python"}, []string{"django"})

	assert.InDelta(t, 100.0, score, 1e-9)
}

func TestSkillGraphScore_ExpandedJobSkillsPartialCredit(t *testing.T) {
	o := DefaultOntology()

	// Job "devops" expands to 9 skills; the candidate has docker and aws.
	score := o.SkillGraphScore([]string{"Docker", "AWS"}, []string{"devops"})

	assert.InDelta(t, 100*(0.3*2.0/9.0), score, 1e-9)
}

func TestSkillGraphScore_Bounded(t *testing.T) {
	o := DefaultOntology()

	cases := []struct {
		candidate []string
		job       []string
	}{
		{[]string{"python", "sql", "devops"}, []string{"python", "sql"}},
		{[]string{"data science"}, []string{"machine learning", "r", "statistics"}},
		{nil, []string{"java"}},
	}
	for _, tc := range cases {
		score := o.SkillGraphScore(tc.candidate, tc.job)
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 100.0+1e-9)
	}
}

func TestExtractSkills(t *testing.T) {
	o := DefaultOntology()

	skills := o.ExtractSkills("Built ML pipelines in Python, PyTorch and scikit-learn. Ran CI/CD on AWS (Kubernetes).")

	assert.Subset(t, skills.Sorted(), []string{"python", "pytorch", "scikit-learn", "ci/cd", "aws", "kubernetes"})
	assert.NotContains(t, skills, "java")
}

func TestExtractSkills_MatchesPhrases(t *testing.T) {
	o := DefaultOntology()

	skills := o.ExtractSkills("Experienced in machine learning and SQL Server administration")

	assert.Contains(t, skills, "machine learning")
	assert.Contains(t, skills, "sql server")
	assert.Contains(t, skills, "sql")
}
