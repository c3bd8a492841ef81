// Package hiring predicts hire/no-hire outcomes from a flattened candidate
// and job feature record with a gradient-boosted tree model trained offline.
package hiring

import (
	"regexp"
	"strings"

	"alfredoptarigan/resume-matcher/internal/matching"
	"alfredoptarigan/resume-matcher/internal/models"
)

// Column names, in the order the trained pipeline expects them.
const (
	ColResumeText        = "Resume_Text_Clean"
	ColJobDescription    = "Job_Description_Clean"
	ColEducation         = "Education"
	ColIndustry          = "Industry"
	ColWorkType          = "Work_Type"
	ColLocation          = "Location"
	ColAppliedJobTitle   = "Applied_Job_Title"
	ColExperienceYears   = "Experience (Years)"
	ColSalaryExpectation = "Salary_Expectation"
	ColOfferedSalary     = "Offered_Salary"
	ColSalaryDifference  = "Salary_Difference"
	ColSkillMatchRatio   = "Skill_Match_Ratio"
)

// Columns is the feature record contract shared with the training pipeline.
var Columns = []string{
	ColResumeText,
	ColJobDescription,
	ColEducation,
	ColIndustry,
	ColWorkType,
	ColLocation,
	ColAppliedJobTitle,
	ColExperienceYears,
	ColSalaryExpectation,
	ColOfferedSalary,
	ColSalaryDifference,
	ColSkillMatchRatio,
}

// FeatureRecord is one row of model input.
type FeatureRecord struct {
	ResumeText        string
	JobDescription    string
	Education         string
	Industry          string
	WorkType          string
	Location          string
	AppliedJobTitle   string
	ExperienceYears   float64
	SalaryExpectation float64
	OfferedSalary     float64
	SalaryDifference  float64
	SkillMatchRatio   float64
}

// Text returns the value of a text or categorical column.
func (r FeatureRecord) Text(column string) (string, bool) {
	switch column {
	case ColResumeText:
		return r.ResumeText, true
	case ColJobDescription:
		return r.JobDescription, true
	case ColEducation:
		return r.Education, true
	case ColIndustry:
		return r.Industry, true
	case ColWorkType:
		return r.WorkType, true
	case ColLocation:
		return r.Location, true
	case ColAppliedJobTitle:
		return r.AppliedJobTitle, true
	}
	return "", false
}

// Number returns the value of a numeric column.
func (r FeatureRecord) Number(column string) (float64, bool) {
	switch column {
	case ColExperienceYears:
		return r.ExperienceYears, true
	case ColSalaryExpectation:
		return r.SalaryExpectation, true
	case ColOfferedSalary:
		return r.OfferedSalary, true
	case ColSalaryDifference:
		return r.SalaryDifference, true
	case ColSkillMatchRatio:
		return r.SkillMatchRatio, true
	}
	return 0, false
}

var (
	nonLetters = regexp.MustCompile(`[^a-zA-Z\s]`)
	spaces     = regexp.MustCompile(`\s+`)

	shortStopWords = map[string]struct{}{
		"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "in": {},
		"on": {}, "at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {},
	}
)

// CleanText normalizes free text the way the training data was cleaned:
// lowercase, non-letters become spaces, whitespace collapses, and a short
// list of stopwords is dropped.
func CleanText(text string) string {
	text = strings.ToLower(text)
	text = nonLetters.ReplaceAllString(text, " ")
	text = strings.TrimSpace(spaces.ReplaceAllString(text, " "))

	words := strings.Fields(text)
	kept := words[:0]
	for _, w := range words {
		if _, ok := shortStopWords[w]; !ok {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}

// BuildFeatures flattens a prediction request into a FeatureRecord. The skill
// match ratio reuses the ontology graph score, not the direct weighted
// skills score used for ranking.
func BuildFeatures(req models.HiringPredictionRequest, ontology *matching.Ontology) FeatureRecord {
	var experience, expectation, offered float64
	if req.ExperienceYears != nil {
		experience = *req.ExperienceYears
	}
	if req.SalaryExpectation != nil {
		expectation = *req.SalaryExpectation
	}
	if req.OfferedSalary != nil {
		offered = *req.OfferedSalary
	}

	ratio := ontology.SkillGraphScore(req.Skills, req.RequiredSkills) / 100.0
	if ratio > 1 {
		ratio = 1
	}
	if ratio < 0 {
		ratio = 0
	}

	return FeatureRecord{
		ResumeText:        CleanText(models.Value(req.ResumeText)),
		JobDescription:    CleanText(models.Value(req.JobDescription)),
		Education:         models.Value(req.Education),
		Industry:          models.Value(req.Industry),
		WorkType:          models.Value(req.WorkType),
		Location:          models.Value(req.Location),
		AppliedJobTitle:   models.Value(req.AppliedJobTitle),
		ExperienceYears:   experience,
		SalaryExpectation: expectation,
		OfferedSalary:     offered,
		SalaryDifference:  offered - expectation,
		SkillMatchRatio:   ratio,
	}
}
