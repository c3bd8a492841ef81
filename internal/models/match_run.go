package models

import (
	"time"

	"github.com/google/uuid"
)

// MatchRun records one completed ranking. Results holds the ranked list as
// JSON.
type MatchRun struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	JobTitle       string    `gorm:"type:text" json:"job_title"`
	CandidateCount int       `gorm:"not null" json:"candidate_count"`
	TopMatch       int       `gorm:"not null" json:"top_match"`
	Results        string    `gorm:"type:jsonb" json:"results"`
	CreatedAt      time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (MatchRun) TableName() string {
	return "match_runs"
}
