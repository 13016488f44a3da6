package models

import "time"

type SummaryType string

const (
	SummaryShort     SummaryType = "short"
	SummaryBullets   SummaryType = "bullets"
	SummaryTechnical SummaryType = "technical"
)

func (t SummaryType) Valid() bool {
	switch t {
	case SummaryShort, SummaryBullets, SummaryTechnical:
		return true
	}
	return false
}

type Summary struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	BlogID    string      `gorm:"not null;uniqueIndex:idx_blog_type" json:"blogId"`
	Type      SummaryType `gorm:"type:varchar(16);not null;uniqueIndex:idx_blog_type" json:"type"`
	Summary   string      `gorm:"type:text;not null" json:"summary"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}
