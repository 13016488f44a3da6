package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"blogiq/internal/models"
	"blogiq/internal/repository"

	"gorm.io/gorm"
)

type BookmarkService struct {
	bookmarks repository.BookmarkRepository
}

func NewBookmarkService(bookmarks repository.BookmarkRepository) *BookmarkService {
	return &BookmarkService{bookmarks: bookmarks}
}

// Toggle removes the bookmark if present and creates it otherwise. It
// returns whether the article is bookmarked afterwards.
func (s *BookmarkService) Toggle(ctx context.Context, userID string, article models.Article) (bool, error) {
	if userID == "" {
		return false, ErrUnauthenticated
	}
	if strings.TrimSpace(article.ID) == "" {
		return false, fmt.Errorf("%w: invalid blog data", ErrValidation)
	}

	removed, err := s.bookmarks.Delete(ctx, userID, article.ID)
	if err != nil {
		return false, err
	}
	if removed {
		return false, nil
	}

	if err := s.bookmarks.Create(ctx, article.ToBookmark(userID)); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return true, nil
		}
		return false, err
	}
	return true, nil
}

func (s *BookmarkService) List(ctx context.Context, userID string) ([]models.Bookmark, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	return s.bookmarks.FindByUser(ctx, userID)
}

func (s *BookmarkService) Remove(ctx context.Context, userID, blogID string) error {
	if userID == "" {
		return ErrUnauthenticated
	}
	removed, err := s.bookmarks.Delete(ctx, userID, blogID)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("%w: bookmark not found", ErrNotFound)
	}
	return nil
}
