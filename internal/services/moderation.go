package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"blogiq/internal/models"
	"blogiq/internal/repository"

	"gorm.io/gorm"
)

type ListScope string

const (
	ScopePublic ListScope = ""
	ScopeAll    ListScope = "all"
	ScopeMine   ListScope = "mine"
)

type BlogInput struct {
	Title      string  `json:"title" example:"Why Rust and Go get along"`
	Slug       string  `json:"slug" example:"why-rust-and-go-get-along"`
	Category   string  `json:"category" example:"technology"`
	Content    string  `json:"content"`
	Excerpt    *string `json:"excerpt"`
	CoverImage *string `json:"coverImage"`
}

type ModerationInput struct {
	Status          models.PostStatus `json:"status" example:"rejected"`
	RejectionReason string            `json:"rejectionReason" example:"spam"`
	RevokeCreator   bool              `json:"revokeCreator"`
}

type ModerationResult struct {
	Blog           *models.Blog `json:"blog"`
	CreatorRevoked bool         `json:"creatorRevoked"`
}

// ModerationService owns the post lifecycle: pending on every create and
// author edit, approved or rejected only by an admin.
type ModerationService struct {
	blogs    repository.BlogRepository
	roles    *RoleResolver
	identity IdentityProvider
	creators *CreatorService
	notifier Notifier
}

func NewModerationService(
	blogs repository.BlogRepository,
	roles *RoleResolver,
	identity IdentityProvider,
	creators *CreatorService,
	notifier Notifier,
) *ModerationService {
	return &ModerationService{
		blogs:    blogs,
		roles:    roles,
		identity: identity,
		creators: creators,
		notifier: notifier,
	}
}

func (s *ModerationService) Create(ctx context.Context, principalID string, input BlogInput) (*models.Blog, error) {
	access, err := s.roles.Resolve(ctx, principalID)
	if err != nil {
		return nil, err
	}
	if !access.CanPublish() {
		return nil, fmt.Errorf("%w: you must be an active creator to post", ErrForbidden)
	}

	blog := &models.Blog{
		Title:      strings.TrimSpace(input.Title),
		Slug:       strings.TrimSpace(input.Slug),
		Category:   strings.TrimSpace(input.Category),
		Content:    input.Content,
		Excerpt:    input.Excerpt,
		CoverImage: input.CoverImage,
		AuthorID:   principalID,
		Status:     models.PostStatusPending,
	}
	if blog.Title == "" || blog.Slug == "" || strings.TrimSpace(blog.Content) == "" || blog.Category == "" {
		return nil, fmt.Errorf("%w: title, slug, content and category are required", ErrValidation)
	}

	taken, err := s.blogs.SlugTaken(ctx, blog.Slug, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrSlugTaken
	}

	blog.AuthorName = "Unknown"
	if author, err := s.identity.GetUser(ctx, principalID); err != nil {
		log.Printf("Author lookup failed for %s: %v", principalID, err)
	} else {
		blog.AuthorName = author.DisplayName("Unknown")
	}

	if err := s.blogs.Create(ctx, blog); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}
	return blog, nil
}

// Get returns approved posts to anyone. Other posts are visible to their
// author and admins only.
func (s *ModerationService) Get(ctx context.Context, principalID, id string) (*models.Blog, error) {
	blog, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	isAuthor := principalID != "" && blog.AuthorID == principalID
	if blog.Status != models.PostStatusApproved && !isAuthor {
		if principalID == "" {
			return nil, fmt.Errorf("%w: unauthorized access to this blog", ErrForbidden)
		}
		access, err := s.roles.Resolve(ctx, principalID)
		if err != nil {
			return nil, err
		}
		if !access.IsAdmin() {
			return nil, fmt.Errorf("%w: unauthorized access to this blog", ErrForbidden)
		}
	}

	if blog.Status == models.PostStatusApproved && !isAuthor {
		if err := s.blogs.IncrementViews(ctx, blog.ID); err != nil {
			log.Printf("Failed to count view for blog %s: %v", blog.ID, err)
		} else {
			blog.Views++
		}
	}
	return blog, nil
}

// List falls back to approved posts when the principal lacks the role the
// scope asks for.
func (s *ModerationService) List(ctx context.Context, principalID string, scope ListScope, category string) ([]models.Blog, error) {
	filter := repository.BlogFilter{Status: models.PostStatusApproved, Category: category}

	if scope != ScopePublic && principalID != "" {
		access, err := s.roles.Resolve(ctx, principalID)
		if err != nil {
			log.Printf("Role lookup failed for %s, listing approved posts: %v", principalID, err)
		}
		switch {
		case err != nil:
		case scope == ScopeAll && access.IsAdmin():
			filter.Status = ""
		case scope == ScopeMine && (access.Role == models.RoleCreator || access.IsAdmin()):
			filter.Status = ""
			filter.AuthorID = principalID
		}
	}

	return s.blogs.FindAll(ctx, filter)
}

// Update applies an edit. Author edits send the post back to review; admin
// edits keep the current status.
func (s *ModerationService) Update(ctx context.Context, principalID, id string, input BlogInput) (*models.Blog, error) {
	if principalID == "" {
		return nil, ErrUnauthenticated
	}
	blog, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	access, err := s.roles.Resolve(ctx, principalID)
	if err != nil {
		return nil, err
	}
	if !access.IsAdmin() && !(access.CanPublish() && blog.AuthorID == principalID) {
		return nil, ErrForbidden
	}

	if title := strings.TrimSpace(input.Title); title != "" {
		blog.Title = title
	}
	if slug := strings.TrimSpace(input.Slug); slug != "" && slug != blog.Slug {
		taken, err := s.blogs.SlugTaken(ctx, slug, blog.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrSlugTaken
		}
		blog.Slug = slug
	}
	if category := strings.TrimSpace(input.Category); category != "" {
		blog.Category = category
	}
	if strings.TrimSpace(input.Content) != "" {
		blog.Content = input.Content
	}
	if input.Excerpt != nil {
		blog.Excerpt = input.Excerpt
	}
	if input.CoverImage != nil {
		blog.CoverImage = input.CoverImage
	}

	if !access.IsAdmin() {
		blog.Status = models.PostStatusPending
		blog.RejectionReason = nil
	}

	if err := s.blogs.Update(ctx, blog); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}
	return blog, nil
}

// Moderate moves a post to approved or rejected. Notifications and creator
// revocation run after the post is saved and never fail the call.
func (s *ModerationService) Moderate(ctx context.Context, principalID, id string, input ModerationInput) (*ModerationResult, error) {
	access, err := s.roles.Resolve(ctx, principalID)
	if err != nil {
		return nil, err
	}
	if !access.IsAdmin() {
		return nil, fmt.Errorf("%w: admin access required", ErrForbidden)
	}
	if input.Status != models.PostStatusApproved && input.Status != models.PostStatusRejected {
		return nil, fmt.Errorf("%w: invalid status", ErrValidation)
	}

	blog, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	blog.Status = input.Status
	if input.Status == models.PostStatusRejected {
		reason := strings.TrimSpace(input.RejectionReason)
		if reason == "" {
			reason = models.DefaultRejectionReason
		}
		blog.RejectionReason = &reason
	} else {
		blog.RejectionReason = nil
	}

	if err := s.blogs.Update(ctx, blog); err != nil {
		return nil, err
	}

	result := &ModerationResult{Blog: blog}
	if blog.Status == models.PostStatusApproved {
		s.notifier.Notify(Notification{
			Kind:        NotifyPostApproved,
			RecipientID: blog.AuthorID,
			PostTitle:   blog.Title,
			PostPath:    blog.DetailPath(),
		})
		return result, nil
	}

	s.notifier.Notify(Notification{
		Kind:        NotifyPostRejected,
		RecipientID: blog.AuthorID,
		PostTitle:   blog.Title,
		Reason:      *blog.RejectionReason,
	})

	if input.RevokeCreator {
		if _, err := s.creators.Transition(ctx, principalID, blog.AuthorID, ActionRevoke); err != nil {
			log.Printf("Failed to revoke creator %s after rejecting blog %s: %v", blog.AuthorID, blog.ID, err)
		} else {
			result.CreatorRevoked = true
		}
	}
	return result, nil
}

func (s *ModerationService) Delete(ctx context.Context, principalID, id string) error {
	if principalID == "" {
		return ErrUnauthenticated
	}
	blog, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if blog.AuthorID != principalID {
		access, err := s.roles.Resolve(ctx, principalID)
		if err != nil {
			return err
		}
		if !access.IsAdmin() {
			return ErrForbidden
		}
	}

	if err := s.blogs.Delete(ctx, blog.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: blog not found", ErrNotFound)
		}
		return err
	}
	return nil
}

func (s *ModerationService) find(ctx context.Context, id string) (*models.Blog, error) {
	blog, err := s.blogs.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: blog not found", ErrNotFound)
	}
	return blog, err
}
