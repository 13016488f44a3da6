package models

import "time"

type Bookmark struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	UserID      string        `gorm:"not null;index;uniqueIndex:idx_user_blog" json:"userId"`
	BlogID      string        `gorm:"not null;uniqueIndex:idx_user_blog" json:"blogId"`
	Title       string        `gorm:"not null" json:"title"`
	Description string        `json:"description"`
	Content     string        `gorm:"type:text" json:"content"`
	URL         string        `gorm:"not null" json:"url"`
	URLToImage  string        `json:"urlToImage"`
	Category    string        `json:"category"`
	PublishedAt string        `json:"publishedAt"`
	Author      string        `json:"author"`
	Source      ArticleSource `gorm:"embedded;embeddedPrefix:source_" json:"source"`
	IsInternal  bool          `json:"isInternal"`
	CreatedAt   time.Time     `json:"createdAt"`
}
