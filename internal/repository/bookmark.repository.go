package repository

import (
	"blogiq/internal/models"
	"context"

	"gorm.io/gorm"
)

type BookmarkRepository interface {
	FindByUser(ctx context.Context, userID string) ([]models.Bookmark, error)
	Create(ctx context.Context, bookmark *models.Bookmark) error
	// Delete removes the (userID, blogID) bookmark and reports whether one
	// existed.
	Delete(ctx context.Context, userID, blogID string) (bool, error)
}

type bookmarkRepository struct {
	db *gorm.DB
}

func NewBookmarkRepository(db *gorm.DB) BookmarkRepository {
	return &bookmarkRepository{db: db}
}

func (r *bookmarkRepository) FindByUser(ctx context.Context, userID string) ([]models.Bookmark, error) {
	var bookmarks []models.Bookmark
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookmarks).Error
	return bookmarks, err
}

func (r *bookmarkRepository) Create(ctx context.Context, bookmark *models.Bookmark) error {
	return r.db.WithContext(ctx).Create(bookmark).Error
}

func (r *bookmarkRepository) Delete(ctx context.Context, userID, blogID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND blog_id = ?", userID, blogID).
		Delete(&models.Bookmark{})
	return result.RowsAffected > 0, result.Error
}
