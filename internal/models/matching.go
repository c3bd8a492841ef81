package models

type JobDescription struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	RequiredSkills  []string `json:"required_skills"`
	PreferredSkills []string `json:"preferred_skills"`
}

type Candidate struct {
	Name            string   `json:"name"`
	ResumeText      string   `json:"resume_text"`
	ExtractedSkills []string `json:"extracted_skills"`
}

// JobRequest is the wire form of a JobDescription. Pointer and slice fields
// must be present in the body; empty values are allowed.
type JobRequest struct {
	Title           *string  `json:"title" validate:"required"`
	Description     *string  `json:"description" validate:"required"`
	RequiredSkills  []string `json:"required_skills" validate:"required,min=1"`
	PreferredSkills []string `json:"preferred_skills"`
}

func (r JobRequest) ToJob() JobDescription {
	return JobDescription{
		Title:           Value(r.Title),
		Description:     Value(r.Description),
		RequiredSkills:  r.RequiredSkills,
		PreferredSkills: r.PreferredSkills,
	}
}

type CandidateRequest struct {
	Name            *string  `json:"name" validate:"required"`
	ResumeText      *string  `json:"resume_text" validate:"required"`
	ExtractedSkills []string `json:"extracted_skills" validate:"required"`
}

func (r CandidateRequest) ToCandidate() Candidate {
	return Candidate{
		Name:            Value(r.Name),
		ResumeText:      Value(r.ResumeText),
		ExtractedSkills: r.ExtractedSkills,
	}
}

// Value dereferences s, treating nil as "".
func Value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

type MatchedCandidate struct {
	Name  string `json:"name"`
	Match int    `json:"match"`
}

type MatchRequest struct {
	Job        JobRequest         `json:"job" validate:"required"`
	Candidates []CandidateRequest `json:"candidates" validate:"required,min=1,dive"`
}

func (r MatchRequest) ToCandidates() []Candidate {
	out := make([]Candidate, len(r.Candidates))
	for i, c := range r.Candidates {
		out[i] = c.ToCandidate()
	}
	return out
}

type MatchResponse struct {
	Candidates []MatchedCandidate `json:"candidates"`
}

type RankStoredRequest struct {
	Job       JobRequest `json:"job" validate:"required"`
	ResumeIDs []string   `json:"resume_ids" validate:"required,min=1,dive,uuid"`
}

type ScoreBreakdown struct {
	Semantic float64 `json:"semantic"`
	TFIDF    float64 `json:"tfidf"`
	Skills   float64 `json:"skills"`
	Graph    float64 `json:"graph"`
}

type RankedResume struct {
	ResumeID  string         `json:"resume_id"`
	Name      string         `json:"name"`
	Match     int            `json:"match"`
	Breakdown ScoreBreakdown `json:"breakdown"`
}

type RankStoredResponse struct {
	MatchRunID string         `json:"match_run_id,omitempty"`
	Candidates []RankedResume `json:"candidates"`
}

type SearchRequest struct {
	Query string `json:"query" validate:"required"`
	Limit int    `json:"limit" validate:"omitempty,min=1,max=100"`
}

type SearchHit struct {
	ResumeID string  `json:"resume_id"`
	Name     string  `json:"name"`
	Score    float32 `json:"score"`
}
