package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

type Source struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Article is a NewsAPI article as returned on the wire.
type Article struct {
	Source      Source `json:"source"`
	Author      string `json:"author"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
	Content     string `json:"content"`
}

type Response struct {
	Status       string    `json:"status"`
	TotalResults int       `json:"totalResults"`
	Articles     []Article `json:"articles"`
	Code         string    `json:"code,omitempty"`
	Message      string    `json:"message,omitempty"`
}

type SearchParams struct {
	Query    string
	SortBy   string
	Language string
	PageSize int
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// TopHeadlines calls /top-headlines for English breaking news.
func (c *Client) TopHeadlines(ctx context.Context, pageSize int) (*Response, error) {
	q := url.Values{}
	q.Set("language", "en")
	q.Set("pageSize", strconv.Itoa(pageSize))
	return c.get(ctx, "/top-headlines", q)
}

// Everything calls the full-text /everything endpoint.
func (c *Client) Everything(ctx context.Context, params SearchParams) (*Response, error) {
	q := url.Values{}
	q.Set("q", params.Query)
	if params.SortBy != "" {
		q.Set("sortBy", params.SortBy)
	}
	if params.Language != "" {
		q.Set("language", params.Language)
	}
	if params.PageSize > 0 {
		q.Set("pageSize", strconv.Itoa(params.PageSize))
	}
	return c.get(ctx, "/everything", q)
}

func (c *Client) get(ctx context.Context, path string, q url.Values) (*Response, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("NEWS_API_KEY is not set")
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	request.Header.Set("X-Api-Key", c.apiKey)

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer response.Body.Close()

	var result Response
	if err := json.NewDecoder(response.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response (status %d): %w", response.StatusCode, err)
	}
	if response.StatusCode != http.StatusOK || result.Status == "error" {
		return nil, fmt.Errorf("news API error (%d): %s %s", response.StatusCode, result.Code, result.Message)
	}
	return &result, nil
}
