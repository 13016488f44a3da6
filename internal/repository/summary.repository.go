package repository

import (
	"blogiq/internal/models"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SummaryRepository interface {
	Find(ctx context.Context, blogID string, summaryType models.SummaryType) (*models.Summary, error)
	// Save stores the summary, replacing any existing one for the same
	// (blogID, type).
	Save(ctx context.Context, summary *models.Summary) error
}

type summaryRepository struct {
	db *gorm.DB
}

func NewSummaryRepository(db *gorm.DB) SummaryRepository {
	return &summaryRepository{db: db}
}

func (r *summaryRepository) Find(ctx context.Context, blogID string, summaryType models.SummaryType) (*models.Summary, error) {
	var summary models.Summary
	err := r.db.WithContext(ctx).
		Where("blog_id = ? AND type = ?", blogID, summaryType).
		First(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *summaryRepository) Save(ctx context.Context, summary *models.Summary) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "blog_id"}, {Name: "type"}},
		DoUpdates: clause.AssignmentColumns([]string{"summary", "updated_at"}),
	}).Create(summary).Error
}
