package services_test

import (
	"blogiq/internal/identity"
	"blogiq/internal/mocks"
	"blogiq/internal/models"
	"blogiq/internal/services"
)

type fixture struct {
	blogs      *mocks.MockBlogRepository
	users      *mocks.MockUserRepository
	identity   *mocks.MockIdentityProvider
	notifier   *mocks.RecordingNotifier
	roles      *services.RoleResolver
	creators   *services.CreatorService
	moderation *services.ModerationService
	admin      *services.AdminService
}

func newFixture() *fixture {
	f := &fixture{
		blogs:    new(mocks.MockBlogRepository),
		users:    new(mocks.MockUserRepository),
		identity: new(mocks.MockIdentityProvider),
		notifier: new(mocks.RecordingNotifier),
	}
	f.roles = services.NewRoleResolver(f.users, f.identity)
	f.creators = services.NewCreatorService(f.users, f.identity, f.roles, f.notifier)
	f.moderation = services.NewModerationService(f.blogs, f.roles, f.identity, f.creators, f.notifier)
	f.admin = services.NewAdminService(f.blogs, f.identity, f.creators)
	return f
}

func mirrorUser(clerkID string, role models.Role, status models.CreatorStatus) *models.User {
	return &models.User{ClerkID: clerkID, Email: clerkID + "@example.com", Role: role, CreatorStatus: status}
}

func providerUser(id, firstName, lastName, role, status string) *identity.User {
	return &identity.User{
		ID:                    id,
		FirstName:             firstName,
		LastName:              lastName,
		PrimaryEmailAddressID: "email_1",
		EmailAddresses:        []identity.EmailAddress{{ID: "email_1", EmailAddress: id + "@example.com"}},
		PublicMetadata:        identity.Metadata{Role: role, CreatorStatus: status},
	}
}

func strPtr(s string) *string {
	return &s
}
