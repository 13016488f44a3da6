package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"blogiq/internal/identity"
	"blogiq/internal/mocks"
	"blogiq/internal/models"
	"blogiq/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func addAuthMiddleware(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID != "" {
			c.Set("user_id", userID)
		}
		c.Next()
	}
}

type fixture struct {
	blogs      *mocks.MockBlogRepository
	users      *mocks.MockUserRepository
	identity   *mocks.MockIdentityProvider
	notifier   *mocks.RecordingNotifier
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
	roles := services.NewRoleResolver(f.users, f.identity)
	f.creators = services.NewCreatorService(f.users, f.identity, roles, f.notifier)
	f.moderation = services.NewModerationService(f.blogs, roles, f.identity, f.creators, f.notifier)
	f.admin = services.NewAdminService(f.blogs, f.identity, f.creators)
	return f
}

func mirrorUser(clerkID string, role models.Role, status models.CreatorStatus) *models.User {
	return &models.User{ClerkID: clerkID, Email: clerkID + "@example.com", Role: role, CreatorStatus: status}
}

func providerUser(id, firstName, role, status string) *identity.User {
	return &identity.User{
		ID:                    id,
		FirstName:             firstName,
		PrimaryEmailAddressID: "email_1",
		EmailAddresses:        []identity.EmailAddress{{ID: "email_1", EmailAddress: id + "@example.com"}},
		PublicMetadata:        identity.Metadata{Role: role, CreatorStatus: status},
	}
}

// performRequest sends body as JSON; a string body is sent verbatim.
func performRequest(router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var payload []byte
	switch b := body.(type) {
	case nil:
	case string:
		payload = []byte(b)
	default:
		payload, _ = json.Marshal(b)
	}

	req := httptest.NewRequest(method, path, bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}
