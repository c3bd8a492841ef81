package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/resume-matcher/internal/models"
)

type MatchRunRepository interface {
	Create(run *models.MatchRun) error
	FindByID(id uuid.UUID) (*models.MatchRun, error)
	ListRecent(limit int) ([]models.MatchRun, error)
}

type matchRunRepository struct {
	db *gorm.DB
}

func NewMatchRunRepository(db *gorm.DB) MatchRunRepository {
	return &matchRunRepository{db: db}
}

func (r *matchRunRepository) Create(run *models.MatchRun) error {
	if err := r.db.Create(run).Error; err != nil {
		return fmt.Errorf("failed to create match run: %w", err)
	}
	return nil
}

func (r *matchRunRepository) FindByID(id uuid.UUID) (*models.MatchRun, error) {
	var run models.MatchRun
	if err := r.db.Where("id = ?", id).First(&run).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("match run %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find match run: %w", err)
	}
	return &run, nil
}

func (r *matchRunRepository) ListRecent(limit int) ([]models.MatchRun, error) {
	var runs []models.MatchRun
	if err := r.db.Order("created_at DESC").Limit(limit).Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("failed to list match runs: %w", err)
	}
	return runs, nil
}
