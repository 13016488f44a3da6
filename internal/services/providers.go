package services

import (
	"context"
	"time"

	"blogiq/internal/identity"
	"blogiq/internal/news"
)

// IdentityProvider is the subset of the identity API the services use.
type IdentityProvider interface {
	GetUser(ctx context.Context, userID string) (*identity.User, error)
	UpdateMetadata(ctx context.Context, userID string, metadata identity.Metadata) error
	ListUsers(ctx context.Context, params identity.ListUsersParams) ([]identity.User, error)
	CountUsers(ctx context.Context) (int64, error)
}

type NewsProvider interface {
	TopHeadlines(ctx context.Context, pageSize int) (*news.Response, error)
	Everything(ctx context.Context, params news.SearchParams) (*news.Response, error)
}

// ChatCompleter runs a single-turn completion and returns the model's text.
type ChatCompleter interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type JSONCache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// TextExtractor pulls the readable body text out of a web page.
type TextExtractor interface {
	Extract(ctx context.Context, pageURL string) (string, error)
}
