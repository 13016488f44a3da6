package models

import "strings"

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleCreator Role = "creator"
	RoleUser    Role = "user"
)

type CreatorStatus string

const (
	CreatorStatusNone     CreatorStatus = "none"
	CreatorStatusPending  CreatorStatus = "pending"
	CreatorStatusActive   CreatorStatus = "active"
	CreatorStatusRejected CreatorStatus = "rejected"
	CreatorStatusRevoked  CreatorStatus = "revoked"
)

// ParseRole maps an untrusted role value onto a known Role. Anything
// unrecognized becomes RoleUser.
func ParseRole(s string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin
	case RoleCreator:
		return RoleCreator
	default:
		return RoleUser
	}
}

// ParseCreatorStatus maps an untrusted status onto a known CreatorStatus,
// defaulting to CreatorStatusNone.
func ParseCreatorStatus(s string) CreatorStatus {
	switch CreatorStatus(strings.ToLower(strings.TrimSpace(s))) {
	case CreatorStatusPending:
		return CreatorStatusPending
	case CreatorStatusActive:
		return CreatorStatusActive
	case CreatorStatusRejected:
		return CreatorStatusRejected
	case CreatorStatusRevoked:
		return CreatorStatusRevoked
	default:
		return CreatorStatusNone
	}
}

// Access is the resolved role of a principal.
type Access struct {
	Role          Role          `json:"role"`
	CreatorStatus CreatorStatus `json:"creatorStatus"`
}

func (a Access) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CanPublish reports whether the principal may author posts.
func (a Access) CanPublish() bool {
	return a.Role == RoleAdmin || (a.Role == RoleCreator && a.CreatorStatus == CreatorStatusActive)
}
