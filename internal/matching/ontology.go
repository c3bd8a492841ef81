package matching

// Ontology maps a canonical skill to the skills directly related to it.
// It is built once and never mutated, so it is safe for concurrent readers.
type Ontology struct {
	related map[string]SkillSet
}

// NewOntology copies and normalizes graph into an Ontology.
func NewOntology(graph map[string][]string) *Ontology {
	related := make(map[string]SkillSet, len(graph))
	for skill, rel := range graph {
		key := NormalizeSkill(skill)
		if key == "" {
			continue
		}
		related[key] = related[key].Union(NewSkillSet(rel...))
	}
	return &Ontology{related: related}
}

// DefaultOntology returns the hand-curated skill graph.
func DefaultOntology() *Ontology {
	return NewOntology(map[string][]string{
		"python":     {"django", "flask", "pandas", "numpy", "tensorflow", "pytorch", "scikit-learn", "data science", "machine learning"},
		"javascript": {"typescript", "nodejs", "reactjs", "angularjs", "vuejs", "frontend"},
		"java":       {"spring", "hibernate", "maven", "j2ee", "backend"},

		"machine learning": {"deep learning", "neural networks", "ai", "tensorflow", "pytorch", "scikit-learn", "data science"},
		"deep learning":    {"neural networks", "tensorflow", "pytorch", "computer vision", "nlp"},
		"data science":     {"statistics", "machine learning", "python", "r", "sql", "data analysis", "data visualization"},

		"devops": {"aws", "azure", "gcp", "docker", "kubernetes", "ci/cd", "jenkins", "terraform"},
		"cloud":  {"aws", "azure", "gcp", "docker", "kubernetes", "serverless"},

		"sql":   {"mysql", "postgresql", "oracle", "sql server", "database"},
		"nosql": {"mongodb", "cassandra", "redis", "dynamodb", "database"},

		"communication": {"teamwork", "presentation", "leadership", "interpersonal"},
		"leadership":    {"management", "team lead", "project management", "communication"},
	})
}

// Related returns the skills directly related to skill, or nil for skills
// that are not ontology keys.
func (o *Ontology) Related(skill string) SkillSet {
	return o.related[NormalizeSkill(skill)]
}

// Expand returns skills plus every skill one lookup away. It is not a
// transitive closure: related skills are not expanded again.
func (o *Ontology) Expand(skills SkillSet) SkillSet {
	out := make(SkillSet, len(skills))
	for skill := range skills {
		out[skill] = struct{}{}
		for rel := range o.related[skill] {
			out[rel] = struct{}{}
		}
	}
	return out
}

// Vocabulary returns every skill the ontology knows about, keys and related
// skills alike.
func (o *Ontology) Vocabulary() SkillSet {
	out := make(SkillSet)
	for key, rel := range o.related {
		out[key] = struct{}{}
		for r := range rel {
			out[r] = struct{}{}
		}
	}
	return out
}
