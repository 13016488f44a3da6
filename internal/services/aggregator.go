package services

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"log"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"blogiq/internal/models"
	"blogiq/internal/news"
	"blogiq/internal/repository"

	"golang.org/x/sync/errgroup"
)

const (
	newsPageSize      = 100
	descriptionLength = 150
	countsCacheKey    = "news:counts"
	countsCacheTTL    = time.Hour
)

// Category is a browsable news category and the provider query behind it.
type Category struct {
	Slug  string
	Query string
}

var Categories = []Category{
	{Slug: "business", Query: "business OR stock market OR startups"},
	{Slug: "technology", Query: "technology OR gadgets OR software"},
	{Slug: "sports", Query: "sports OR football OR basketball"},
	{Slug: "entertainment", Query: "entertainment OR movies OR music"},
	{Slug: "health", Query: "health OR medicine OR wellness"},
	{Slug: "science", Query: "science OR space OR research"},
}

var tagPattern = regexp.MustCompile(`<[^>]+>`)

// Aggregator merges approved internal posts with external news results.
type Aggregator struct {
	news     NewsProvider
	blogs    repository.BlogRepository
	cache    JSONCache
	siteName string
}

// NewAggregator accepts a nil cache; category counts are then fetched on
// every call.
func NewAggregator(news NewsProvider, blogs repository.BlogRepository, cache JSONCache, siteName string) *Aggregator {
	return &Aggregator{news: news, blogs: blogs, cache: cache, siteName: siteName}
}

// FetchArticles never fails: either source degrades to no articles.
func (a *Aggregator) FetchArticles(ctx context.Context, category string) []models.Article {
	category = strings.TrimSpace(category)
	if isAnyCategory(category) {
		category = ""
	}

	internal := a.internalArticles(ctx, category)
	external := a.externalArticles(ctx, category)

	articles := make([]models.Article, 0, len(internal)+len(external))
	articles = append(articles, internal...)
	articles = append(articles, external...)

	sort.SliceStable(articles, func(i, j int) bool {
		return publishedTime(articles[i].PublishedAt).After(publishedTime(articles[j].PublishedAt))
	})
	return articles
}

func (a *Aggregator) externalArticles(ctx context.Context, category string) []models.Article {
	var (
		response *news.Response
		err      error
	)
	if category == "" {
		response, err = a.news.TopHeadlines(ctx, newsPageSize)
	} else {
		response, err = a.news.Everything(ctx, news.SearchParams{
			Query:    categoryQuery(category),
			SortBy:   "publishedAt",
			Language: "en",
			PageSize: newsPageSize,
		})
	}
	if err != nil {
		log.Printf("News provider fetch failed: %v", err)
		return nil
	}

	seen := make(map[string]struct{}, len(response.Articles))
	articles := make([]models.Article, 0, len(response.Articles))
	for _, item := range response.Articles {
		key := normalizeURL(item.URL)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		articles = append(articles, models.Article{
			ID:          articleID(item.URL),
			Title:       item.Title,
			Description: item.Description,
			Content:     item.Content,
			URL:         item.URL,
			URLToImage:  item.URLToImage,
			PublishedAt: item.PublishedAt,
			Author:      item.Author,
			Source:      models.ArticleSource{ID: item.Source.ID, Name: item.Source.Name},
			Category:    category,
		})
	}
	return articles
}

func (a *Aggregator) internalArticles(ctx context.Context, category string) []models.Article {
	blogs, err := a.blogs.FindAll(ctx, repository.BlogFilter{Status: models.PostStatusApproved, Category: category})
	if err != nil {
		log.Printf("Internal blog fetch failed: %v", err)
		return nil
	}

	articles := make([]models.Article, 0, len(blogs))
	for i := range blogs {
		articles = append(articles, a.blogArticle(&blogs[i]))
	}
	return articles
}

func (a *Aggregator) blogArticle(blog *models.Blog) models.Article {
	article := models.Article{
		ID:          blog.ID,
		Title:       blog.Title,
		Description: describe(blog),
		Content:     blog.Content,
		URL:         blog.DetailPath(),
		PublishedAt: blog.CreatedAt.UTC().Format(time.RFC3339),
		Author:      blog.AuthorName,
		Source:      models.ArticleSource{Name: a.siteName},
		Category:    blog.Category,
		IsInternal:  true,
		BlogID:      blog.ID,
	}
	if blog.CoverImage != nil {
		article.URLToImage = *blog.CoverImage
	}
	if article.Author == "" {
		article.Author = "Editorial Staff"
	}
	if article.Category == "" {
		article.Category = "Editorial"
	}
	return article
}

// CategoryCounts reports the provider's result total per category.
func (a *Aggregator) CategoryCounts(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int, len(Categories))
	if a.cache != nil {
		if found, err := a.cache.GetJSON(ctx, countsCacheKey, &counts); err != nil {
			log.Printf("Category counts cache read failed: %v", err)
		} else if found {
			return counts, nil
		}
	}

	totals := make([]int, len(Categories))
	g, gctx := errgroup.WithContext(ctx)
	for i, category := range Categories {
		g.Go(func() error {
			response, err := a.news.Everything(gctx, news.SearchParams{Query: category.Query, PageSize: 1})
			if err != nil {
				return err
			}
			totals[i] = response.TotalResults
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, category := range Categories {
		counts[category.Slug] = totals[i]
	}
	if a.cache != nil {
		if err := a.cache.SetJSON(ctx, countsCacheKey, counts, countsCacheTTL); err != nil {
			log.Printf("Category counts cache write failed: %v", err)
		}
	}
	return counts, nil
}

func isAnyCategory(category string) bool {
	switch strings.ToLower(category) {
	case "", "undefined", "null", "all":
		return true
	}
	return false
}

func categoryQuery(category string) string {
	for _, c := range Categories {
		if strings.EqualFold(c.Slug, category) {
			return c.Query
		}
	}
	return category
}

func articleID(rawURL string) string {
	sum := md5.Sum([]byte(rawURL))
	return hex.EncodeToString(sum[:])
}

func describe(blog *models.Blog) string {
	if blog.Excerpt != nil && strings.TrimSpace(*blog.Excerpt) != "" {
		return *blog.Excerpt
	}
	text := strings.TrimSpace(stripTags(blog.Content))
	if text == "" {
		return "No description available."
	}
	return truncateRunes(text, descriptionLength) + "..."
}

func stripTags(html string) string {
	return tagPattern.ReplaceAllString(html, "")
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

var publishedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// publishedTime parses a publishedAt value. Anything unparsable is the Unix
// epoch so it sorts last.
func publishedTime(value string) time.Time {
	for _, layout := range publishedLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Unix(0, 0).UTC()
}

// normalizeURL canonicalizes a URL for duplicate detection.
func normalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return strings.ToLower(raw)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""

	q := u.Query()
	for k := range q {
		lk := strings.ToLower(k)
		if strings.HasPrefix(lk, "utm_") || lk == "fbclid" || lk == "gclid" {
			q.Del(k)
		}
	}
	u.RawQuery = q.Encode()

	return strings.TrimRight(u.String(), "/")
}
