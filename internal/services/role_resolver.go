package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"blogiq/internal/models"
	"blogiq/internal/repository"

	"gorm.io/gorm"
)

// RoleResolver reads a principal's role from the local mirror, falling back
// to the identity provider.
type RoleResolver struct {
	users    repository.UserRepository
	identity IdentityProvider
}

func NewRoleResolver(users repository.UserRepository, identity IdentityProvider) *RoleResolver {
	return &RoleResolver{users: users, identity: identity}
}

func (r *RoleResolver) Resolve(ctx context.Context, principalID string) (models.Access, error) {
	if principalID == "" {
		return models.Access{}, ErrUnauthenticated
	}

	user, err := r.users.FindByClerkID(ctx, principalID)
	switch {
	case err == nil && user.Role != "":
		return user.Access(), nil
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		log.Printf("Role mirror lookup failed for %s: %v", principalID, err)
	}

	profile, err := r.identity.GetUser(ctx, principalID)
	if err != nil {
		return models.Access{}, fmt.Errorf("failed to resolve role: %w", err)
	}
	return profile.Access(), nil
}

// HasRole is false whenever the role cannot be resolved.
func (r *RoleResolver) HasRole(ctx context.Context, principalID string, role models.Role) bool {
	access, err := r.Resolve(ctx, principalID)
	if err != nil {
		return false
	}
	return access.Role == role
}
