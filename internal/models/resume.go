package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Resume struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CandidateName    string    `gorm:"type:text" json:"candidate_name"`
	Filename         string    `gorm:"type:text" json:"filename"`
	OriginalFileName string    `gorm:"type:text" json:"original_filename"`
	ContentType      string    `gorm:"type:text" json:"content_type"`
	StorageKey       string    `gorm:"type:text" json:"storage_key"`
	Text             string    `gorm:"type:text" json:"-"`
	Skills           string    `gorm:"type:text" json:"-"`
	Indexed          bool      `gorm:"not null;default:false" json:"indexed"`
	CreatedAt        time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt        time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (r *Resume) TableName() string {
	return "resumes"
}

// SkillList splits the stored comma separated skills.
func (r *Resume) SkillList() []string {
	if r.Skills == "" {
		return nil
	}
	return strings.Split(r.Skills, ",")
}

func (r *Resume) ToCandidate() Candidate {
	return Candidate{
		Name:            r.CandidateName,
		ResumeText:      r.Text,
		ExtractedSkills: r.SkillList(),
	}
}

type ResumeResponse struct {
	ID               string    `json:"id"`
	CandidateName    string    `json:"candidate_name"`
	OriginalFileName string    `json:"original_filename"`
	ContentType      string    `json:"content_type"`
	ExtractedSkills  []string  `json:"extracted_skills"`
	TextLength       int       `json:"text_length"`
	Indexed          bool      `json:"indexed"`
	CreatedAt        time.Time `json:"created_at"`
}

func (r *Resume) ToResponse() ResumeResponse {
	skills := r.SkillList()
	if skills == nil {
		skills = []string{}
	}
	return ResumeResponse{
		ID:               r.ID.String(),
		CandidateName:    r.CandidateName,
		OriginalFileName: r.OriginalFileName,
		ContentType:      r.ContentType,
		ExtractedSkills:  skills,
		TextLength:       len(r.Text),
		Indexed:          r.Indexed,
		CreatedAt:        r.CreatedAt,
	}
}
