package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"blogiq/internal/identity"
	"blogiq/internal/models"
	"blogiq/internal/repository"
)

type CreatorAction string

const (
	ActionApply             CreatorAction = "apply"
	ActionUpgrade           CreatorAction = "upgrade"
	ActionRejectApplication CreatorAction = "reject_application"
	ActionRevoke            CreatorAction = "revoke"
)

type creatorTransition struct {
	from []models.CreatorStatus
	to   models.Access
	// noop is the status at which the action has already taken effect.
	noop models.CreatorStatus
}

var creatorTransitions = map[CreatorAction]creatorTransition{
	ActionApply: {
		from: []models.CreatorStatus{models.CreatorStatusNone, models.CreatorStatusRejected, models.CreatorStatusRevoked},
		to:   models.Access{Role: models.RoleUser, CreatorStatus: models.CreatorStatusPending},
		noop: models.CreatorStatusPending,
	},
	ActionUpgrade: {
		from: []models.CreatorStatus{models.CreatorStatusPending, models.CreatorStatusNone, models.CreatorStatusRejected, models.CreatorStatusRevoked},
		to:   models.Access{Role: models.RoleCreator, CreatorStatus: models.CreatorStatusActive},
		noop: models.CreatorStatusActive,
	},
	ActionRejectApplication: {
		from: []models.CreatorStatus{models.CreatorStatusPending},
		to:   models.Access{Role: models.RoleUser, CreatorStatus: models.CreatorStatusRejected},
	},
	ActionRevoke: {
		from: []models.CreatorStatus{models.CreatorStatusActive},
		to:   models.Access{Role: models.RoleUser, CreatorStatus: models.CreatorStatusRevoked},
		noop: models.CreatorStatusRevoked,
	},
}

// Applicant is a user waiting on a creator application decision.
type Applicant struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	ImageURL  string `json:"imageUrl,omitempty"`
	CreatedAt int64  `json:"createdAt"`
}

type CreatorService struct {
	users    repository.UserRepository
	identity IdentityProvider
	roles    *RoleResolver
	notifier Notifier

	maxScanPages int
}

func NewCreatorService(users repository.UserRepository, identity IdentityProvider, roles *RoleResolver, notifier Notifier) *CreatorService {
	return &CreatorService{
		users:        users,
		identity:     identity,
		roles:        roles,
		notifier:     notifier,
		maxScanPages: 5,
	}
}

// Transition applies a creator action to targetID on behalf of actorID and
// returns the target's resulting access. The provider is written first; the
// local mirror follows on a best-effort basis.
func (s *CreatorService) Transition(ctx context.Context, actorID, targetID string, action CreatorAction) (models.Access, error) {
	if actorID == "" {
		return models.Access{}, ErrUnauthenticated
	}

	transition, ok := creatorTransitions[action]
	if !ok {
		return models.Access{}, fmt.Errorf("%w: invalid action", ErrValidation)
	}

	if action == ActionApply {
		if targetID != actorID {
			return models.Access{}, fmt.Errorf("%w: users can only apply for themselves", ErrForbidden)
		}
	} else if err := s.requireAdmin(ctx, actorID); err != nil {
		return models.Access{}, err
	}

	target, err := s.identity.GetUser(ctx, targetID)
	if errors.Is(err, identity.ErrUserNotFound) {
		return models.Access{}, fmt.Errorf("%w: user %s", ErrNotFound, targetID)
	}
	if err != nil {
		return models.Access{}, fmt.Errorf("failed to load user: %w", err)
	}

	current := target.Access()
	if current.IsAdmin() {
		return models.Access{}, fmt.Errorf("%w: admin roles cannot be changed", ErrValidation)
	}
	if transition.noop != "" && current.CreatorStatus == transition.noop {
		return current, nil
	}
	if !containsStatus(transition.from, current.CreatorStatus) {
		return models.Access{}, fmt.Errorf("%w: cannot %s a user whose creator status is %s", ErrValidation, action, current.CreatorStatus)
	}

	next := transition.to
	metadata := identity.Metadata{Role: string(next.Role), CreatorStatus: string(next.CreatorStatus)}
	if err := s.identity.UpdateMetadata(ctx, targetID, metadata); err != nil {
		return models.Access{}, fmt.Errorf("failed to update user privileges: %w", err)
	}

	if err := s.users.Upsert(ctx, target.Mirror(next)); err != nil {
		log.Printf("User mirror write failed for %s after %s: %v", targetID, action, err)
	}

	switch action {
	case ActionUpgrade:
		s.notifier.Notify(Notification{Kind: NotifyCreatorApproved, RecipientID: targetID})
	case ActionRejectApplication:
		s.notifier.Notify(Notification{Kind: NotifyCreatorRejected, RecipientID: targetID})
	}

	return next, nil
}

// PendingCreators lists provider users whose application is pending.
func (s *CreatorService) PendingCreators(ctx context.Context, actorID string) ([]Applicant, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	return s.pendingApplicants(ctx)
}

func (s *CreatorService) pendingApplicants(ctx context.Context) ([]Applicant, error) {
	const pageSize = 100

	applicants := []Applicant{}
	for page := 0; page < s.maxScanPages; page++ {
		users, err := s.identity.ListUsers(ctx, identity.ListUsersParams{Limit: pageSize, Offset: page * pageSize})
		if err != nil {
			return nil, fmt.Errorf("failed to list users: %w", err)
		}

		for i := range users {
			u := &users[i]
			if u.Access().CreatorStatus != models.CreatorStatusPending {
				continue
			}
			applicants = append(applicants, Applicant{
				ID:        u.ID,
				Name:      u.DisplayName("Unknown"),
				Email:     u.PrimaryEmail(),
				ImageURL:  u.ImageURL,
				CreatedAt: u.CreatedAt,
			})
		}

		if len(users) < pageSize {
			break
		}
	}
	return applicants, nil
}

func (s *CreatorService) requireAdmin(ctx context.Context, actorID string) error {
	access, err := s.roles.Resolve(ctx, actorID)
	if err != nil {
		return err
	}
	if !access.IsAdmin() {
		return fmt.Errorf("%w: admin access required", ErrForbidden)
	}
	return nil
}

func containsStatus(statuses []models.CreatorStatus, status models.CreatorStatus) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}
