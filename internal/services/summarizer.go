package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"blogiq/internal/models"
	"blogiq/internal/repository"

	readability "github.com/go-shiori/go-readability"
	"gorm.io/gorm"
)

const (
	wordsPerWindow      = 2000
	summaryErrorMessage = "Error processing summary."
	extractTimeout      = 20 * time.Second
)

type SummaryRequest struct {
	BlogID  string             `json:"blogId" example:"3f1c2a9e-8d4b-4c1e-9a57-2b6f0e7d9c11"`
	URL     string             `json:"url,omitempty"`
	Content string             `json:"content,omitempty"`
	Type    models.SummaryType `json:"type" example:"short"`
}

// ReadabilityExtractor fetches a page and returns its main article text.
type ReadabilityExtractor struct {
	Timeout time.Duration
}

func (e ReadabilityExtractor) Extract(ctx context.Context, pageURL string) (string, error) {
	timeout := e.Timeout
	if timeout <= 0 {
		timeout = extractTimeout
	}
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	article, err := readability.FromURL(pageURL, timeout)
	if err != nil {
		return "", fmt.Errorf("readability extraction failed: %w", err)
	}
	return article.TextContent, nil
}

// Summarizer streams LLM summaries of long text and caches the result per
// (blog, style).
type Summarizer struct {
	summaries repository.SummaryRepository
	llm       ChatCompleter
	extractor TextExtractor
}

func NewSummarizer(summaries repository.SummaryRepository, llm ChatCompleter, extractor TextExtractor) *Summarizer {
	return &Summarizer{summaries: summaries, llm: llm, extractor: extractor}
}

// Summarize validates the request and returns a channel of text chunks in
// output order. The channel is closed when the summary is complete or ctx is
// cancelled; a completion already in flight is allowed to finish.
func (s *Summarizer) Summarize(ctx context.Context, req SummaryRequest) (<-chan string, error) {
	req.BlogID = strings.TrimSpace(req.BlogID)
	req.URL = strings.TrimSpace(req.URL)
	if req.BlogID == "" || (req.URL == "" && strings.TrimSpace(req.Content) == "") {
		return nil, fmt.Errorf("%w: blog ID and content/url required", ErrValidation)
	}
	if req.Type == "" {
		req.Type = models.SummaryShort
	}
	if !req.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown summary type %q", ErrValidation, req.Type)
	}

	cached, err := s.summaries.Find(ctx, req.BlogID, req.Type)
	if err == nil {
		out := make(chan string, 1)
		out <- cached.Summary
		close(out)
		return out, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Summary cache lookup failed for %s/%s: %v", req.BlogID, req.Type, err)
	}

	text := s.sourceText(ctx, req)
	out := make(chan string)
	go s.stream(ctx, req, splitWords(text, wordsPerWindow), out)
	return out, nil
}

func (s *Summarizer) sourceText(ctx context.Context, req SummaryRequest) string {
	var text string
	if req.URL != "" && s.extractor != nil {
		extracted, err := s.extractor.Extract(ctx, req.URL)
		if err != nil {
			log.Printf("Falling back to supplied content for %s: %v", req.URL, err)
		} else {
			text = collapseWhitespace(extracted)
		}
	}
	if text == "" {
		text = collapseWhitespace(req.Content)
	}
	return text
}

func (s *Summarizer) stream(ctx context.Context, req SummaryRequest, windows []string, out chan<- string) {
	defer close(out)

	// The in-flight completion survives a disconnect; the loop checks ctx
	// between windows.
	llmCtx := context.WithoutCancel(ctx)

	if len(windows) == 0 {
		send(ctx, out, summaryErrorMessage)
		return
	}

	var full strings.Builder
	for i, window := range windows {
		if ctx.Err() != nil {
			return
		}

		raw, err := s.llm.Complete(llmCtx, windowPrompt(window, req.Type, i+1))
		if err != nil {
			log.Printf("Summary window %d for %s failed: %v", i+1, req.BlogID, err)
			if i == 0 {
				send(ctx, out, summaryErrorMessage)
				return
			}
			continue
		}

		chunk := cleanSummary(raw)
		if i > 0 && chunk != "" {
			chunk = "\n\n" + chunk
		}
		if chunk == "" {
			continue
		}
		if !send(ctx, out, chunk) {
			return
		}
		full.WriteString(chunk)
	}

	if strings.TrimSpace(full.String()) == "" {
		return
	}
	err := s.summaries.Save(llmCtx, &models.Summary{BlogID: req.BlogID, Type: req.Type, Summary: full.String()})
	if err != nil {
		log.Printf("Failed to cache summary for %s/%s: %v", req.BlogID, req.Type, err)
	}
}

func send(ctx context.Context, out chan<- string, chunk string) bool {
	select {
	case out <- chunk:
		return true
	case <-ctx.Done():
		return false
	}
}

func windowPrompt(window string, summaryType models.SummaryType, part int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert AI summarizer.\nThis is part %d of a long article.\nSummarize this section clearly and concisely.\n\n", part)
	b.WriteString("Rules:\n")
	b.WriteString("- Write naturally flowing sentences.\n")
	b.WriteString("- Avoid repeating previous ideas.\n")
	b.WriteString("- Keep it readable for typing animation display.\n")
	b.WriteString("- Do not mention \"chunk\" or \"section\" in output.\n")
	b.WriteString("- Do not add external knowledge.\n")
	b.WriteString("- CRITICAL RULE: Return ONLY the raw plain text summary. DO NOT wrap the text in quotes, JSON, code blocks, or markdown formatting blocks. DO NOT provide conversational filler.\n")
	switch summaryType {
	case models.SummaryTechnical:
		b.WriteString("- Focus heavily on facts, data, methodology, and technical specifics. If this part is not highly technical, provide an analytical summary of the factual information instead without apologizing.\n")
	case models.SummaryBullets:
		b.WriteString("- CRITICAL RULE: Format the entire response as a list of bullet points. Start EVERY line with a dash (-). No introductory or concluding paragraphs.\n")
	}
	fmt.Fprintf(&b, "\nStyle: %s\n\nContent:\n%s", summaryType, window)
	return b.String()
}

var leadIns = []string{"here is", "here's", "sure,", "sure!", "certainly"}

// cleanSummary strips wrappers models add despite being told not to.
func cleanSummary(raw string) string {
	lines := strings.Split(strings.TrimSpace(raw), "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}

	if len(kept) > 0 {
		first := strings.ToLower(strings.TrimSpace(kept[0]))
		for _, lead := range leadIns {
			if strings.HasPrefix(first, lead) && strings.HasSuffix(first, ":") {
				kept = kept[1:]
				break
			}
		}
	}

	text := strings.TrimSpace(strings.Join(kept, "\n"))
	if len(text) >= 2 && strings.HasPrefix(text, `"`) && strings.HasSuffix(text, `"`) {
		text = strings.TrimSpace(text[1 : len(text)-1])
	}
	return text
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func splitWords(text string, size int) []string {
	words := strings.Fields(text)
	var windows []string
	for start := 0; start < len(words); start += size {
		end := start + size
		if end > len(words) {
			end = len(words)
		}
		windows = append(windows, strings.Join(words[start:end], " "))
	}
	return windows
}
