package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"blogiq/internal/mocks"
	"blogiq/internal/models"
	"blogiq/internal/news"
	"blogiq/internal/repository"
	"blogiq/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupAggregator() (*services.Aggregator, *mocks.MockNewsProvider, *mocks.MockBlogRepository) {
	newsProvider := new(mocks.MockNewsProvider)
	blogs := new(mocks.MockBlogRepository)
	return services.NewAggregator(newsProvider, blogs, nil, "BlogIQ Editorial"), newsProvider, blogs
}

func approvedFilter(category string) repository.BlogFilter {
	return repository.BlogFilter{Status: models.PostStatusApproved, Category: category}
}

func TestFetchArticlesDeduplicatesByURL(t *testing.T) {
	aggregator, newsProvider, blogs := setupAggregator()
	newsProvider.On("TopHeadlines", mock.Anything, 100).Return(&news.Response{
		Status: "ok",
		Articles: []news.Article{
			{Title: "A", URL: "a"},
			{Title: "A again", URL: "a"},
			{Title: "B", URL: "b"},
		},
	}, nil)
	blogs.On("FindAll", mock.Anything, approvedFilter("")).Return([]models.Blog{}, nil)

	first := aggregator.FetchArticles(context.Background(), "")
	second := aggregator.FetchArticles(context.Background(), "")

	require.Len(t, first, 2)
	assert.Equal(t, "A", first[0].Title)
	assert.Equal(t, "B", first[1].Title)
	assert.Len(t, first[0].ID, 32)
	assert.NotEqual(t, first[0].ID, first[1].ID)
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.Equal(t, first[1].ID, second[1].ID)
	assert.False(t, first[0].IsInternal)
}

func TestFetchArticlesCanonicalURLDedup(t *testing.T) {
	aggregator, newsProvider, blogs := setupAggregator()
	newsProvider.On("TopHeadlines", mock.Anything, 100).Return(&news.Response{
		Articles: []news.Article{
			{Title: "first", URL: "https://Example.com/story/?utm_source=x"},
			{Title: "tracking copy", URL: "https://example.com/story#comments"},
			{Title: "no url", URL: ""},
		},
	}, nil)
	blogs.On("FindAll", mock.Anything, approvedFilter("")).Return([]models.Blog{}, nil)

	articles := aggregator.FetchArticles(context.Background(), "null")
	require.Len(t, articles, 1)
	assert.Equal(t, "first", articles[0].Title)
}

func TestFetchArticlesInternalFirstOnNewerDate(t *testing.T) {
	aggregator, newsProvider, blogs := setupAggregator()
	newsProvider.On("Everything", mock.Anything, news.SearchParams{
		Query:    "business OR stock market OR startups",
		SortBy:   "publishedAt",
		Language: "en",
		PageSize: 100,
	}).Return(&news.Response{Articles: []news.Article{
		{Title: "external", URL: "https://news.example/1", PublishedAt: "2024-01-01T00:00:00Z"},
		{Title: "undated", URL: "https://news.example/2", PublishedAt: "soon"},
	}}, nil)
	blogs.On("FindAll", mock.Anything, approvedFilter("Business")).Return([]models.Blog{{
		ID:        "blog-1",
		Title:     "internal",
		Slug:      "internal",
		Category:  "business",
		Content:   "<p>Quarterly <b>results</b></p>",
		CreatedAt: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	}}, nil)

	articles := aggregator.FetchArticles(context.Background(), "Business")

	require.Len(t, articles, 3)
	assert.Equal(t, "internal", articles[0].Title)
	assert.Equal(t, "external", articles[1].Title)
	assert.Equal(t, "undated", articles[2].Title)

	internal := articles[0]
	assert.True(t, internal.IsInternal)
	assert.Equal(t, "blog-1", internal.BlogID)
	assert.Equal(t, "/blog/internal/details/blog-1", internal.URL)
	assert.Equal(t, "Quarterly results...", internal.Description)
	assert.Equal(t, "Editorial Staff", internal.Author)
	assert.Equal(t, "BlogIQ Editorial", internal.Source.Name)
}

func TestFetchArticlesUnmappedCategoryIsVerbatim(t *testing.T) {
	aggregator, newsProvider, blogs := setupAggregator()
	newsProvider.On("Everything", mock.Anything, mock.MatchedBy(func(p news.SearchParams) bool {
		return p.Query == "golang"
	})).Return(&news.Response{}, nil)
	blogs.On("FindAll", mock.Anything, approvedFilter("golang")).Return([]models.Blog{}, nil)

	assert.Empty(t, aggregator.FetchArticles(context.Background(), "golang"))
	newsProvider.AssertExpectations(t)
}

func TestFetchArticlesDegrades(t *testing.T) {
	t.Run("news provider down", func(t *testing.T) {
		aggregator, newsProvider, blogs := setupAggregator()
		newsProvider.On("TopHeadlines", mock.Anything, 100).Return(nil, errors.New("rate limited"))
		blogs.On("FindAll", mock.Anything, approvedFilter("")).Return([]models.Blog{{ID: "b1", Title: "ours", Excerpt: strPtr("Short")}}, nil)

		articles := aggregator.FetchArticles(context.Background(), "all")
		require.Len(t, articles, 1)
		assert.Equal(t, "Short", articles[0].Description)
		assert.Equal(t, "Editorial", articles[0].Category)
	})

	t.Run("store down", func(t *testing.T) {
		aggregator, newsProvider, blogs := setupAggregator()
		newsProvider.On("TopHeadlines", mock.Anything, 100).Return(&news.Response{Articles: []news.Article{{URL: "https://x.example"}}}, nil)
		blogs.On("FindAll", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

		assert.Len(t, aggregator.FetchArticles(context.Background(), "undefined"), 1)
	})
}

func TestInternalDescriptionTruncation(t *testing.T) {
	aggregator, newsProvider, blogs := setupAggregator()
	newsProvider.On("TopHeadlines", mock.Anything, 100).Return(&news.Response{}, nil)
	long := "<p>" + strings.Repeat("é", 200) + "</p>"
	blogs.On("FindAll", mock.Anything, approvedFilter("")).Return([]models.Blog{
		{ID: "b1", Content: long},
		{ID: "b2", Content: "<img src=x>"},
	}, nil)

	articles := aggregator.FetchArticles(context.Background(), "")
	require.Len(t, articles, 2)
	assert.Equal(t, strings.Repeat("é", 150)+"...", articles[0].Description)
	assert.Equal(t, "No description available.", articles[1].Description)
}

func TestCategoryCounts(t *testing.T) {
	newsProvider := new(mocks.MockNewsProvider)
	cache := new(mocks.MockJSONCache)
	aggregator := services.NewAggregator(newsProvider, new(mocks.MockBlogRepository), cache, "BlogIQ")

	for i, category := range services.Categories {
		newsProvider.On("Everything", mock.Anything, news.SearchParams{Query: category.Query, PageSize: 1}).
			Return(&news.Response{TotalResults: (i + 1) * 10}, nil)
	}
	cache.On("GetJSON", mock.Anything, "news:counts", mock.Anything).Return(false, nil)
	cache.On("SetJSON", mock.Anything, "news:counts", mock.Anything, time.Hour).Return(nil)

	counts, err := aggregator.CategoryCounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, counts["business"])
	assert.Equal(t, 60, counts["science"])
	assert.Len(t, counts, 6)
	cache.AssertExpectations(t)
}

func TestCategoryCountsServedFromCache(t *testing.T) {
	newsProvider := new(mocks.MockNewsProvider)
	cache := new(mocks.MockJSONCache)
	aggregator := services.NewAggregator(newsProvider, new(mocks.MockBlogRepository), cache, "BlogIQ")

	cache.On("GetJSON", mock.Anything, "news:counts", mock.Anything).Run(func(args mock.Arguments) {
		dest := args.Get(2).(*map[string]int)
		*dest = map[string]int{"business": 7}
	}).Return(true, nil)

	counts, err := aggregator.CategoryCounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"business": 7}, counts)
	newsProvider.AssertNotCalled(t, "Everything", mock.Anything, mock.Anything)
}

func TestCategoryCountsProviderError(t *testing.T) {
	newsProvider := new(mocks.MockNewsProvider)
	aggregator := services.NewAggregator(newsProvider, new(mocks.MockBlogRepository), nil, "BlogIQ")
	newsProvider.On("Everything", mock.Anything, mock.Anything).Return(nil, errors.New("apiKeyInvalid"))

	_, err := aggregator.CategoryCounts(context.Background())
	assert.Error(t, err)
}
