package models

type ArticleSource struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// Article is the merged shape returned by the news feed. It is never stored
// directly; bookmarks copy its fields.
type Article struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Content     string        `json:"content,omitempty"`
	URL         string        `json:"url"`
	URLToImage  string        `json:"urlToImage,omitempty"`
	PublishedAt string        `json:"publishedAt"`
	Author      string        `json:"author"`
	Source      ArticleSource `json:"source"`
	Category    string        `json:"category,omitempty"`
	IsInternal  bool          `json:"isInternal"`
	BlogID      string        `json:"blogId,omitempty"`
}

// ToBookmark copies the article into a bookmark owned by userID.
func (a Article) ToBookmark(userID string) *Bookmark {
	return &Bookmark{
		UserID:      userID,
		BlogID:      a.ID,
		Title:       a.Title,
		Description: a.Description,
		Content:     a.Content,
		URL:         a.URL,
		URLToImage:  a.URLToImage,
		Category:    a.Category,
		PublishedAt: a.PublishedAt,
		Author:      a.Author,
		Source:      a.Source,
		IsInternal:  a.IsInternal,
	}
}
