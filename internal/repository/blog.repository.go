package repository

import (
	"blogiq/internal/models"
	"context"
	"log"

	"gorm.io/gorm"
)

// BlogFilter narrows FindAll. Zero values match everything.
type BlogFilter struct {
	Status   models.PostStatus
	AuthorID string
	// Category is compared case-insensitively.
	Category string
}

type BlogRepository interface {
	Create(ctx context.Context, blog *models.Blog) error
	FindByID(ctx context.Context, id string) (*models.Blog, error)
	FindAll(ctx context.Context, filter BlogFilter) ([]models.Blog, error)
	SlugTaken(ctx context.Context, slug, excludeID string) (bool, error)
	Update(ctx context.Context, blog *models.Blog) error
	Delete(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) error
	CountByStatus(ctx context.Context) (models.BlogCounts, error)
}

type blogRepository struct {
	db *gorm.DB
}

func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db: db}
}

func (r *blogRepository) Create(ctx context.Context, blog *models.Blog) error {
	if err := r.db.WithContext(ctx).Create(blog).Error; err != nil {
		log.Printf("Error creating blog %q: %v", blog.Slug, err)
		return err
	}
	return nil
}

func (r *blogRepository) FindByID(ctx context.Context, id string) (*models.Blog, error) {
	var blog models.Blog
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&blog).Error; err != nil {
		return nil, err
	}
	return &blog, nil
}

func (r *blogRepository) FindAll(ctx context.Context, filter BlogFilter) ([]models.Blog, error) {
	query := r.db.WithContext(ctx).Model(&models.Blog{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.AuthorID != "" {
		query = query.Where("author_id = ?", filter.AuthorID)
	}
	if filter.Category != "" {
		query = query.Where("LOWER(category) = LOWER(?)", filter.Category)
	}

	var blogs []models.Blog
	if err := query.Order("created_at DESC").Find(&blogs).Error; err != nil {
		return nil, err
	}
	return blogs, nil
}

func (r *blogRepository) SlugTaken(ctx context.Context, slug, excludeID string) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.Blog{}).Where("slug = ?", slug)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// editableColumns are the columns Update writes. Views is left out so a
// concurrent IncrementViews is never overwritten.
var editableColumns = []string{
	"title", "slug", "category", "content", "excerpt", "cover_image",
	"status", "rejection_reason", "updated_at",
}

func (r *blogRepository) Update(ctx context.Context, blog *models.Blog) error {
	// Selected columns are written even when zero, so a cleared rejection
	// reason becomes NULL.
	return r.db.WithContext(ctx).Model(blog).Select(editableColumns).Updates(blog).Error
}

func (r *blogRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Blog{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *blogRepository) IncrementViews(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&models.Blog{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
}

func (r *blogRepository) CountByStatus(ctx context.Context) (models.BlogCounts, error) {
	var rows []struct {
		Status models.PostStatus
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&models.Blog{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return models.BlogCounts{}, err
	}

	var counts models.BlogCounts
	for _, row := range rows {
		counts.Total += row.Count
		switch row.Status {
		case models.PostStatusPending:
			counts.Pending = row.Count
		case models.PostStatusApproved:
			counts.Approved = row.Count
		case models.PostStatusRejected:
			counts.Rejected = row.Count
		}
	}
	return counts, nil
}
