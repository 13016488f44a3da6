package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"blogiq/internal/models"

	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/clerk/clerk-sdk-go/v2/user"
)

// ErrUserNotFound is returned when the provider has no user with the id.
var ErrUserNotFound = errors.New("identity: user not found")

type EmailAddress struct {
	ID           string `json:"id"`
	EmailAddress string `json:"email_address"`
}

// Metadata is the typed form of the provider's public metadata. Unknown
// values are normalized by Access.
type Metadata struct {
	Role          string `json:"role"`
	CreatorStatus string `json:"creatorStatus"`
}

type User struct {
	ID                    string         `json:"id"`
	FirstName             string         `json:"first_name"`
	LastName              string         `json:"last_name"`
	ImageURL              string         `json:"image_url"`
	PrimaryEmailAddressID string         `json:"primary_email_address_id"`
	EmailAddresses        []EmailAddress `json:"email_addresses"`
	PublicMetadata        Metadata       `json:"public_metadata"`
	CreatedAt             int64          `json:"created_at"`
}

// PrimaryEmail returns the primary address, or the first one listed.
func (u *User) PrimaryEmail() string {
	for _, e := range u.EmailAddresses {
		if e.ID == u.PrimaryEmailAddressID {
			return e.EmailAddress
		}
	}
	if len(u.EmailAddresses) > 0 {
		return u.EmailAddresses[0].EmailAddress
	}
	return ""
}

// DisplayName is "First Last", "First" or the fallback.
func (u *User) DisplayName(fallback string) string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return fallback
	}
}

func (u *User) Access() models.Access {
	return models.Access{
		Role:          models.ParseRole(u.PublicMetadata.Role),
		CreatorStatus: models.ParseCreatorStatus(u.PublicMetadata.CreatorStatus),
	}
}

// Mirror converts the profile into a local mirror record carrying access.
func (u *User) Mirror(access models.Access) *models.User {
	return &models.User{
		ClerkID:       u.ID,
		Email:         u.PrimaryEmail(),
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Role:          access.Role,
		CreatorStatus: access.CreatorStatus,
	}
}

type ListUsersParams struct {
	Limit  int
	Offset int
}

// Client adapts the Clerk Backend API SDK to the profile and metadata types
// used by the services.
type Client struct {
	users *user.Client
}

// NewClient builds a client for the Backend API at baseURL. An empty baseURL
// uses the SDK default.
func NewClient(baseURL, secretKey string) (*Client, error) {
	if secretKey == "" {
		return nil, fmt.Errorf("CLERK_SECRET_KEY is not set")
	}

	config := &clerk.ClientConfig{}
	config.Key = clerk.String(secretKey)
	config.HTTPClient = &http.Client{Timeout: 10 * time.Second}
	if baseURL != "" {
		config.URL = clerk.String(baseURL)
	}
	return &Client{users: user.NewClient(config)}, nil
}

func (c *Client) GetUser(ctx context.Context, userID string) (*User, error) {
	u, err := c.users.Get(ctx, userID)
	if err != nil {
		return nil, translateError(err)
	}
	return fromClerk(u), nil
}

// UpdateMetadata writes both metadata keys. The provider merges public
// metadata, so other keys on the user are kept.
func (c *Client) UpdateMetadata(ctx context.Context, userID string, metadata Metadata) error {
	data, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}
	raw := json.RawMessage(data)

	_, err = c.users.UpdateMetadata(ctx, userID, &user.UpdateMetadataParams{PublicMetadata: &raw})
	return translateError(err)
}

func (c *Client) ListUsers(ctx context.Context, params ListUsersParams) ([]User, error) {
	if params.Limit <= 0 {
		params.Limit = 100
	}
	listParams := &user.ListParams{OrderBy: clerk.String("-created_at")}
	listParams.Limit = clerk.Int64(int64(params.Limit))
	listParams.Offset = clerk.Int64(int64(params.Offset))

	list, err := c.users.List(ctx, listParams)
	if err != nil {
		return nil, translateError(err)
	}

	users := make([]User, 0, len(list.Users))
	for _, u := range list.Users {
		users = append(users, *fromClerk(u))
	}
	return users, nil
}

func (c *Client) CountUsers(ctx context.Context) (int64, error) {
	count, err := c.users.Count(ctx, &user.ListParams{})
	if err != nil {
		return 0, translateError(err)
	}
	return count.TotalCount, nil
}

func translateError(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *clerk.APIErrorResponse
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("failed to call identity provider: %w", err)
	}
	if apiErr.HTTPStatusCode == http.StatusNotFound {
		return ErrUserNotFound
	}
	if len(apiErr.Errors) > 0 {
		return fmt.Errorf("identity provider error (%d): %s", apiErr.HTTPStatusCode, apiErr.Errors[0].Message)
	}
	return fmt.Errorf("identity provider returned status %d", apiErr.HTTPStatusCode)
}

func fromClerk(u *clerk.User) *User {
	out := &User{
		ID:                    u.ID,
		FirstName:             deref(u.FirstName),
		LastName:              deref(u.LastName),
		ImageURL:              deref(u.ImageURL),
		PrimaryEmailAddressID: deref(u.PrimaryEmailAddressID),
		CreatedAt:             u.CreatedAt,
	}
	for _, e := range u.EmailAddresses {
		if e == nil {
			continue
		}
		out.EmailAddresses = append(out.EmailAddresses, EmailAddress{ID: e.ID, EmailAddress: e.EmailAddress})
	}
	if len(u.PublicMetadata) > 0 {
		// Malformed metadata parses as no role and no creator status.
		_ = json.Unmarshal(u.PublicMetadata, &out.PublicMetadata)
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
