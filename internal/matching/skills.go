package matching

const (
	requiredSkillsWeight  = 0.8
	preferredSkillsWeight = 0.2

	directGraphWeight   = 0.7
	expandedGraphWeight = 0.3
)

// SkillsMatchScore is the direct weighted overlap between candidate skills and
// the job's required and preferred skills, as a percentage in [0,100].
// An empty required or preferred list earns full credit for its share.
func SkillsMatchScore(candidate, required, preferred []string) float64 {
	candidateSet := NewSkillSet(candidate...)
	requiredSet := NewSkillSet(required...)
	preferredSet := NewSkillSet(preferred...)

	requiredScore := 1.0
	if len(requiredSet) > 0 {
		requiredScore = float64(requiredSet.CountIn(candidateSet)) / float64(len(requiredSet))
	}

	preferredScore := 1.0
	if len(preferredSet) > 0 {
		preferredScore = float64(preferredSet.CountIn(candidateSet)) / float64(len(preferredSet))
	}

	return (requiredSkillsWeight*requiredScore + preferredSkillsWeight*preferredScore) * 100
}

// SkillGraphScore credits near-matches through the ontology. Job skills found
// in the expanded candidate skills count for 70%, expanded job skills found
// there count for 30%. No job skills means full credit (100).
func (o *Ontology) SkillGraphScore(candidate, job []string) float64 {
	jobSet := NewSkillSet(job...)
	if len(jobSet) == 0 {
		return 100.0
	}

	expandedCandidate := o.Expand(NewSkillSet(candidate...))
	expandedJob := o.Expand(jobSet)

	direct := float64(jobSet.CountIn(expandedCandidate)) / float64(len(jobSet))
	expanded := float64(expandedJob.CountIn(expandedCandidate)) / float64(len(expandedJob))

	return (directGraphWeight*direct + expandedGraphWeight*expanded) * 100
}
