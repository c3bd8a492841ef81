package models

import (
	"time"

	"github.com/google/uuid"
)

type AnalysisStatus string

const (
	StatusQueued     AnalysisStatus = "queued"
	StatusProcessing AnalysisStatus = "processing"
	StatusCompleted  AnalysisStatus = "completed"
	StatusFailed     AnalysisStatus = "failed"
)

type Analysis struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ResumeID       uuid.UUID      `gorm:"type:uuid;not null" json:"resume_id"`
	JobTitle       string         `gorm:"type:text" json:"job_title"`
	JobDescription string         `gorm:"type:text" json:"job_description"`
	Status         AnalysisStatus `gorm:"not null;default:'queued'" json:"status"`
	Strengths      *string        `gorm:"type:text" json:"strengths,omitempty"`
	Gaps           *string        `gorm:"type:text" json:"gaps,omitempty"`
	Suggestions    *string        `gorm:"type:text" json:"suggestions,omitempty"`
	Summary        *string        `gorm:"type:text" json:"summary,omitempty"`
	Degraded       bool           `gorm:"not null;default:false" json:"degraded"`
	ErrorMessage   *string        `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt      time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	Resume Resume `gorm:"foreignKey:ResumeID" json:"-"`
}

func (Analysis) TableName() string {
	return "analyses"
}

type AnalyzeRequest struct {
	ResumeID       string `json:"resume_id" validate:"required,uuid"`
	JobTitle       string `json:"job_title" validate:"required"`
	JobDescription string `json:"job_description" validate:"required"`
}

type AnalyzeResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type AnalysisResult struct {
	Strengths   string `json:"strengths"`
	Gaps        string `json:"gaps"`
	Suggestions string `json:"suggestions"`
	Summary     string `json:"summary"`
	Degraded    bool   `json:"degraded"`
}

type AnalysisResponse struct {
	ID           string          `json:"id"`
	Status       string          `json:"status"`
	Result       *AnalysisResult `json:"result,omitempty"`
	ErrorMessage *string         `json:"error_message,omitempty"`
}
