package controllers_test

import (
	"errors"
	"net/http"
	"testing"

	"blogiq/internal/controllers"
	"blogiq/internal/identity"
	"blogiq/internal/models"
	"blogiq/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateUserRole(t *testing.T) {
	asAdmin := func(f *fixture) {
		f.users.On("FindByClerkID", mock.Anything, "admin-1").Return(mirrorUser("admin-1", models.RoleAdmin, models.CreatorStatusNone), nil)
	}

	tests := []struct {
		name           string
		userID         string
		requestBody    interface{}
		setupMocks     func(f *fixture)
		expectedStatus int
		expectedRole   string
		expectedKind   services.NotificationKind
	}{
		{
			name:        "approve pending application",
			userID:      "admin-1",
			requestBody: map[string]interface{}{"action": "upgrade"},
			setupMocks: func(f *fixture) {
				asAdmin(f)
				f.identity.On("GetUser", mock.Anything, "user-1").Return(providerUser("user-1", "Lin", "user", "pending"), nil)
				f.identity.On("UpdateMetadata", mock.Anything, "user-1", identity.Metadata{Role: "creator", CreatorStatus: "active"}).Return(nil)
				f.users.On("Upsert", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedRole:   "creator",
			expectedKind:   services.NotifyCreatorApproved,
		},
		{
			name:        "reject pending application",
			userID:      "admin-1",
			requestBody: map[string]interface{}{"action": "reject_application"},
			setupMocks: func(f *fixture) {
				asAdmin(f)
				f.identity.On("GetUser", mock.Anything, "user-1").Return(providerUser("user-1", "Lin", "user", "pending"), nil)
				f.identity.On("UpdateMetadata", mock.Anything, "user-1", identity.Metadata{Role: "user", CreatorStatus: "rejected"}).Return(nil)
				f.users.On("Upsert", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedRole:   "user",
			expectedKind:   services.NotifyCreatorRejected,
		},
		{
			name:        "non-admin caller",
			userID:      "creator-1",
			requestBody: map[string]interface{}{"action": "upgrade"},
			setupMocks: func(f *fixture) {
				f.users.On("FindByClerkID", mock.Anything, "creator-1").Return(mirrorUser("creator-1", models.RoleCreator, models.CreatorStatusActive), nil)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "unknown action",
			userID:         "admin-1",
			requestBody:    map[string]interface{}{"action": "promote"},
			setupMocks:     func(f *fixture) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing action",
			userID:         "admin-1",
			requestBody:    map[string]interface{}{},
			setupMocks:     func(f *fixture) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "unknown user",
			userID:      "admin-1",
			requestBody: map[string]interface{}{"action": "upgrade"},
			setupMocks: func(f *fixture) {
				asAdmin(f)
				f.identity.On("GetUser", mock.Anything, "user-1").Return(nil, identity.ErrUserNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:        "provider write fails",
			userID:      "admin-1",
			requestBody: map[string]interface{}{"action": "upgrade"},
			setupMocks: func(f *fixture) {
				asAdmin(f)
				f.identity.On("GetUser", mock.Anything, "user-1").Return(providerUser("user-1", "Lin", "user", "pending"), nil)
				f.identity.On("UpdateMetadata", mock.Anything, "user-1", mock.Anything).Return(errors.New("503"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			tt.setupMocks(f)

			router := setupTestRouter()
			router.Use(addAuthMiddleware(tt.userID))
			router.PUT("/admin/users/:id/role", controllers.NewAdminController(f.creators, f.admin).UpdateUserRole)

			w := performRequest(router, http.MethodPut, "/admin/users/user-1/role", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedRole != "" {
				data := decodeBody(t, w)["data"].(map[string]interface{})
				assert.Equal(t, tt.expectedRole, data["role"])
			}
			if tt.expectedKind != "" {
				sent := f.notifier.Sent()
				require.Len(t, sent, 1)
				assert.Equal(t, tt.expectedKind, sent[0].Kind)
				assert.Equal(t, "user-1", sent[0].RecipientID)
			} else {
				assert.Empty(t, f.notifier.Sent())
			}
			f.identity.AssertExpectations(t)
			f.users.AssertExpectations(t)
		})
	}
}

func TestGetStats(t *testing.T) {
	f := newFixture()
	f.users.On("FindByClerkID", mock.Anything, "admin-1").Return(mirrorUser("admin-1", models.RoleAdmin, models.CreatorStatusNone), nil)
	f.blogs.On("CountByStatus", mock.Anything).Return(models.BlogCounts{Total: 5, Pending: 2, Approved: 2, Rejected: 1}, nil)
	f.identity.On("CountUsers", mock.Anything).Return(int64(0), errors.New("provider down"))
	f.identity.On("ListUsers", mock.Anything, mock.Anything).Return([]identity.User{
		*providerUser("user-1", "Lin", "user", "pending"),
		*providerUser("user-2", "Kai", "creator", "active"),
	}, nil)

	router := setupTestRouter()
	router.Use(addAuthMiddleware("admin-1"))
	router.GET("/admin/stats", controllers.NewAdminController(f.creators, f.admin).GetStats)

	w := performRequest(router, http.MethodGet, "/admin/stats", nil)

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(0), data["totalUsers"])
	assert.Equal(t, float64(1), data["pendingCreators"])
	blogs := data["blogs"].(map[string]interface{})
	assert.Equal(t, float64(5), blogs["totalBlogs"])
	assert.Equal(t, float64(2), blogs["pending"])
}

func TestGetStatsRequiresAdmin(t *testing.T) {
	f := newFixture()
	f.users.On("FindByClerkID", mock.Anything, "user-1").Return(mirrorUser("user-1", models.RoleUser, models.CreatorStatusNone), nil)

	router := setupTestRouter()
	router.Use(addAuthMiddleware("user-1"))
	router.GET("/admin/stats", controllers.NewAdminController(f.creators, f.admin).GetStats)

	w := performRequest(router, http.MethodGet, "/admin/stats", nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
	f.blogs.AssertNotCalled(t, "CountByStatus", mock.Anything)
}

func TestGetPendingCreators(t *testing.T) {
	f := newFixture()
	f.users.On("FindByClerkID", mock.Anything, "admin-1").Return(mirrorUser("admin-1", models.RoleAdmin, models.CreatorStatusNone), nil)
	f.identity.On("ListUsers", mock.Anything, identity.ListUsersParams{Limit: 100, Offset: 0}).Return([]identity.User{
		*providerUser("user-1", "Lin", "user", "pending"),
		*providerUser("user-2", "Kai", "user", ""),
	}, nil)

	router := setupTestRouter()
	router.Use(addAuthMiddleware("admin-1"))
	router.GET("/admin/creators/pending", controllers.NewAdminController(f.creators, f.admin).GetPendingCreators)

	w := performRequest(router, http.MethodGet, "/admin/creators/pending", nil)

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].([]interface{})
	require.Len(t, data, 1)
	applicant := data[0].(map[string]interface{})
	assert.Equal(t, "user-1", applicant["id"])
	assert.Equal(t, "user-1@example.com", applicant["email"])
}

func TestApplyForCreator(t *testing.T) {
	tests := []struct {
		name           string
		userID         string
		setupMocks     func(f *fixture)
		expectedStatus int
		expectedState  string
	}{
		{
			name:   "first application",
			userID: "user-1",
			setupMocks: func(f *fixture) {
				f.identity.On("GetUser", mock.Anything, "user-1").Return(providerUser("user-1", "Lin", "", ""), nil)
				f.identity.On("UpdateMetadata", mock.Anything, "user-1", identity.Metadata{Role: "user", CreatorStatus: "pending"}).Return(nil)
				f.users.On("Upsert", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedState:  "pending",
		},
		{
			name:   "repeat application is a no-op",
			userID: "user-1",
			setupMocks: func(f *fixture) {
				f.identity.On("GetUser", mock.Anything, "user-1").Return(providerUser("user-1", "Lin", "user", "pending"), nil)
			},
			expectedStatus: http.StatusOK,
			expectedState:  "pending",
		},
		{
			name:   "active creator cannot reapply",
			userID: "creator-1",
			setupMocks: func(f *fixture) {
				f.identity.On("GetUser", mock.Anything, "creator-1").Return(providerUser("creator-1", "Kai", "creator", "active"), nil)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "anonymous caller",
			setupMocks:     func(f *fixture) {},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			tt.setupMocks(f)

			router := setupTestRouter()
			router.Use(addAuthMiddleware(tt.userID))
			router.POST("/creator/apply", controllers.NewCreatorController(f.creators).Apply)

			w := performRequest(router, http.MethodPost, "/creator/apply", nil)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedState != "" {
				data := decodeBody(t, w)["data"].(map[string]interface{})
				assert.Equal(t, tt.expectedState, data["creatorStatus"])
			}
			assert.Empty(t, f.notifier.Sent())
			f.identity.AssertExpectations(t)
		})
	}
}
