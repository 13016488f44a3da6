package services

import (
	"context"
	"log"

	"blogiq/internal/models"
	"blogiq/internal/repository"

	"golang.org/x/sync/errgroup"
)

type AdminStats struct {
	Blogs           models.BlogCounts `json:"blogs"`
	TotalUsers      int64             `json:"totalUsers"`
	PendingCreators int               `json:"pendingCreators"`
}

type AdminService struct {
	blogs    repository.BlogRepository
	identity IdentityProvider
	creators *CreatorService
}

func NewAdminService(blogs repository.BlogRepository, identity IdentityProvider, creators *CreatorService) *AdminService {
	return &AdminService{blogs: blogs, identity: identity, creators: creators}
}

// Stats gathers the dashboard figures. Provider-side figures degrade to zero
// when the identity provider is unavailable.
func (s *AdminService) Stats(ctx context.Context, principalID string) (*AdminStats, error) {
	if err := s.creators.requireAdmin(ctx, principalID); err != nil {
		return nil, err
	}

	var stats AdminStats
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		counts, err := s.blogs.CountByStatus(gctx)
		if err != nil {
			return err
		}
		stats.Blogs = counts
		return nil
	})
	g.Go(func() error {
		total, err := s.identity.CountUsers(gctx)
		if err != nil {
			log.Printf("Failed to count users: %v", err)
			return nil
		}
		stats.TotalUsers = total
		return nil
	})
	g.Go(func() error {
		applicants, err := s.creators.pendingApplicants(gctx)
		if err != nil {
			log.Printf("Failed to count pending creators: %v", err)
			return nil
		}
		stats.PendingCreators = len(applicants)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &stats, nil
}
