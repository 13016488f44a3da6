package models

import "time"

// User mirrors the identity provider's profile and role metadata.
type User struct {
	ID            uint          `gorm:"primaryKey" json:"-"`
	ClerkID       string        `gorm:"uniqueIndex;not null" json:"clerkId"`
	Email         string        `gorm:"not null" json:"email"`
	FirstName     string        `json:"firstName"`
	LastName      string        `json:"lastName"`
	Role          Role          `gorm:"type:varchar(16);default:user" json:"role"`
	CreatorStatus CreatorStatus `gorm:"type:varchar(16);default:none" json:"creatorStatus"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

func (u *User) Access() Access {
	status := u.CreatorStatus
	if status == "" {
		status = CreatorStatusNone
	}
	return Access{Role: ParseRole(string(u.Role)), CreatorStatus: ParseCreatorStatus(string(status))}
}
