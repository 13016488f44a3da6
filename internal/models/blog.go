package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostStatus string

const (
	PostStatusPending  PostStatus = "pending"
	PostStatusApproved PostStatus = "approved"
	PostStatusRejected PostStatus = "rejected"
)

const DefaultRejectionReason = "Violation of platform guidelines."

type Blog struct {
	ID              string     `gorm:"type:varchar(36);primaryKey" json:"id" example:"3f1c2a9e-8d4b-4c1e-9a57-2b6f0e7d9c11"`
	Title           string     `gorm:"not null" json:"title" example:"Why Rust and Go get along"`
	Slug            string     `gorm:"uniqueIndex;not null" json:"slug" example:"why-rust-and-go-get-along"`
	Category        string     `gorm:"index;not null" json:"category" example:"technology"`
	Content         string     `gorm:"type:text;not null" json:"content"`
	Excerpt         *string    `json:"excerpt,omitempty"`
	CoverImage      *string    `json:"coverImage,omitempty"`
	AuthorID        string     `gorm:"index;not null" json:"authorId"`
	AuthorName      string     `gorm:"not null" json:"authorName"`
	Status          PostStatus `gorm:"type:varchar(16);index;default:pending" json:"status" example:"pending"`
	RejectionReason *string    `json:"rejectionReason"`
	Views           int64      `gorm:"default:0" json:"views"`
	CreatedAt       time.Time  `gorm:"index" json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func (b *Blog) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// DetailPath is the site-relative path of the post's detail page.
func (b *Blog) DetailPath() string {
	slug := b.Slug
	if slug == "" {
		slug = "local"
	}
	return "/blog/" + slug + "/details/" + b.ID
}

// BlogCounts holds per-status post totals.
type BlogCounts struct {
	Total    int64 `json:"totalBlogs"`
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}
