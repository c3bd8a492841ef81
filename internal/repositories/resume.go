package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/resume-matcher/internal/models"
)

type ResumeRepository interface {
	Create(resume *models.Resume) error
	FindByID(id uuid.UUID) (*models.Resume, error)
	FindByIDs(ids []uuid.UUID) ([]models.Resume, error)
	MarkIndexed(id uuid.UUID) error
}

type resumeRepository struct {
	db *gorm.DB
}

func NewResumeRepository(db *gorm.DB) ResumeRepository {
	return &resumeRepository{db: db}
}

func (r *resumeRepository) Create(resume *models.Resume) error {
	if err := r.db.Create(resume).Error; err != nil {
		return fmt.Errorf("failed to create resume: %w", err)
	}
	return nil
}

func (r *resumeRepository) FindByID(id uuid.UUID) (*models.Resume, error) {
	var resume models.Resume
	if err := r.db.Where("id = ?", id).First(&resume).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("resume %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find resume: %w", err)
	}
	return &resume, nil
}

// FindByIDs returns the resumes in the order of ids. A missing id is an
// ErrNotFound error naming it.
func (r *resumeRepository) FindByIDs(ids []uuid.UUID) ([]models.Resume, error) {
	var found []models.Resume
	if err := r.db.Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, fmt.Errorf("failed to find resumes: %w", err)
	}

	byID := make(map[uuid.UUID]models.Resume, len(found))
	for _, resume := range found {
		byID[resume.ID] = resume
	}

	ordered := make([]models.Resume, 0, len(ids))
	for _, id := range ids {
		resume, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("resume %s: %w", id, ErrNotFound)
		}
		ordered = append(ordered, resume)
	}
	return ordered, nil
}

func (r *resumeRepository) MarkIndexed(id uuid.UUID) error {
	result := r.db.Model(&models.Resume{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"indexed":    true,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to mark resume indexed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("resume %s: %w", id, ErrNotFound)
	}
	return nil
}
