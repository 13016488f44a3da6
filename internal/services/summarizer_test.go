package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"blogiq/internal/mocks"
	"blogiq/internal/models"
	"blogiq/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupSummarizer() (*services.Summarizer, *mocks.MockSummaryRepository, *mocks.MockChatCompleter, *mocks.MockTextExtractor) {
	summaries := new(mocks.MockSummaryRepository)
	llm := new(mocks.MockChatCompleter)
	extractor := new(mocks.MockTextExtractor)
	return services.NewSummarizer(summaries, llm, extractor), summaries, llm, extractor
}

func collect(ch <-chan string) []string {
	var chunks []string
	for chunk := range ch {
		chunks = append(chunks, chunk)
	}
	return chunks
}

func part(n string) interface{} {
	return mock.MatchedBy(func(prompt string) bool {
		return strings.Contains(prompt, "This is part "+n+" of a long article.")
	})
}

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func TestSummarizeServesCache(t *testing.T) {
	summarizer, summaries, llm, _ := setupSummarizer()
	summaries.On("Find", mock.Anything, "blog-1", models.SummaryBullets).Return(&models.Summary{Summary: "- cached"}, nil)

	ch, err := summarizer.Summarize(context.Background(), services.SummaryRequest{BlogID: "blog-1", Content: "text", Type: models.SummaryBullets})
	require.NoError(t, err)
	assert.Equal(t, []string{"- cached"}, collect(ch))
	llm.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
	summaries.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestSummarizeStreamsWindowsAndCachesOnce(t *testing.T) {
	summarizer, summaries, llm, _ := setupSummarizer()
	summaries.On("Find", mock.Anything, "blog-1", models.SummaryShort).Return(nil, gorm.ErrRecordNotFound)
	llm.On("Complete", mock.Anything, part("1")).Return("```\n\"First part.\"\n```", nil).Once()
	llm.On("Complete", mock.Anything, part("2")).Return("Second part.", nil).Once()
	summaries.On("Save", mock.Anything, mock.MatchedBy(func(s *models.Summary) bool {
		return s.BlogID == "blog-1" && s.Type == models.SummaryShort && s.Summary == "First part.\n\nSecond part."
	})).Return(nil).Once()

	ch, err := summarizer.Summarize(context.Background(), services.SummaryRequest{BlogID: "blog-1", Content: words(2500)})
	require.NoError(t, err)

	assert.Equal(t, []string{"First part.", "\n\nSecond part."}, collect(ch))
	llm.AssertExpectations(t)
	summaries.AssertExpectations(t)
}

func TestSummarizeSecondRequestHitsCache(t *testing.T) {
	summarizer, summaries, llm, _ := setupSummarizer()

	var saved *models.Summary
	summaries.On("Find", mock.Anything, "blog-1", models.SummaryTechnical).Return(nil, gorm.ErrRecordNotFound).Once()
	llm.On("Complete", mock.Anything, mock.Anything).Return("Latency fell 40%.", nil).Once()
	summaries.On("Save", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*models.Summary)
	}).Return(nil).Once()

	req := services.SummaryRequest{BlogID: "blog-1", Content: "The new cache cut latency by forty percent.", Type: models.SummaryTechnical}
	ch, err := summarizer.Summarize(context.Background(), req)
	require.NoError(t, err)
	first := strings.Join(collect(ch), "")

	require.NotNil(t, saved)
	summaries.On("Find", mock.Anything, "blog-1", models.SummaryTechnical).Return(saved, nil)

	ch, err = summarizer.Summarize(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, first, strings.Join(collect(ch), ""))
	llm.AssertNumberOfCalls(t, "Complete", 1)
}

func TestSummarizeFirstWindowFailure(t *testing.T) {
	summarizer, summaries, llm, _ := setupSummarizer()
	summaries.On("Find", mock.Anything, "blog-1", models.SummaryShort).Return(nil, gorm.ErrRecordNotFound)
	llm.On("Complete", mock.Anything, part("1")).Return("", errors.New("rate limited"))

	ch, err := summarizer.Summarize(context.Background(), services.SummaryRequest{BlogID: "blog-1", Content: words(2500)})
	require.NoError(t, err)

	assert.Equal(t, []string{"Error processing summary."}, collect(ch))
	llm.AssertNotCalled(t, "Complete", mock.Anything, part("2"))
	summaries.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestSummarizeLaterWindowFailureIsSkipped(t *testing.T) {
	summarizer, summaries, llm, _ := setupSummarizer()
	summaries.On("Find", mock.Anything, "blog-1", models.SummaryShort).Return(nil, gorm.ErrRecordNotFound)
	llm.On("Complete", mock.Anything, part("1")).Return("One.", nil)
	llm.On("Complete", mock.Anything, part("2")).Return("", errors.New("timeout"))
	llm.On("Complete", mock.Anything, part("3")).Return("Three.", nil)
	summaries.On("Save", mock.Anything, mock.MatchedBy(func(s *models.Summary) bool {
		return s.Summary == "One.\n\nThree."
	})).Return(nil)

	ch, err := summarizer.Summarize(context.Background(), services.SummaryRequest{BlogID: "blog-1", Content: words(4500)})
	require.NoError(t, err)

	assert.Equal(t, []string{"One.", "\n\nThree."}, collect(ch))
	summaries.AssertExpectations(t)
}

func TestSummarizeAbandonedStreamIsNotCached(t *testing.T) {
	summarizer, summaries, llm, _ := setupSummarizer()
	summaries.On("Find", mock.Anything, "blog-1", models.SummaryShort).Return(nil, gorm.ErrRecordNotFound)
	llm.On("Complete", mock.Anything, part("1")).Return("One.", nil)
	llm.On("Complete", mock.Anything, part("2")).Return("Two.", nil).Maybe()

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := summarizer.Summarize(ctx, services.SummaryRequest{BlogID: "blog-1", Content: words(4500)})
	require.NoError(t, err)

	assert.Equal(t, "One.", <-ch)
	cancel()
	for range ch {
	}

	llm.AssertNotCalled(t, "Complete", mock.Anything, part("3"))
	summaries.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestSummarizePrefersExtractedText(t *testing.T) {
	summarizer, summaries, llm, extractor := setupSummarizer()
	summaries.On("Find", mock.Anything, "blog-1", models.SummaryShort).Return(nil, gorm.ErrRecordNotFound)
	extractor.On("Extract", mock.Anything, "https://news.example/story").Return("  Full   article\n body ", nil)
	llm.On("Complete", mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return strings.HasSuffix(prompt, "Content:\nFull article body")
	})).Return("Summary.", nil)
	summaries.On("Save", mock.Anything, mock.Anything).Return(nil)

	ch, err := summarizer.Summarize(context.Background(), services.SummaryRequest{
		BlogID:  "blog-1",
		URL:     "https://news.example/story",
		Content: "teaser",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Summary."}, collect(ch))
}

func TestSummarizeFallsBackToContent(t *testing.T) {
	summarizer, summaries, llm, extractor := setupSummarizer()
	summaries.On("Find", mock.Anything, "blog-1", models.SummaryShort).Return(nil, gorm.ErrRecordNotFound)
	extractor.On("Extract", mock.Anything, "https://paywalled.example").Return("", errors.New("403"))
	llm.On("Complete", mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return strings.HasSuffix(prompt, "Content:\nteaser text")
	})).Return("Summary.", nil)
	summaries.On("Save", mock.Anything, mock.Anything).Return(nil)

	ch, err := summarizer.Summarize(context.Background(), services.SummaryRequest{
		BlogID:  "blog-1",
		URL:     "https://paywalled.example",
		Content: "teaser  text",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Summary."}, collect(ch))
}

func TestSummarizeValidation(t *testing.T) {
	summarizer, _, _, _ := setupSummarizer()

	tests := []services.SummaryRequest{
		{Content: "text"},
		{BlogID: "blog-1"},
		{BlogID: "blog-1", Content: "text", Type: "haiku"},
	}
	for _, req := range tests {
		_, err := summarizer.Summarize(context.Background(), req)
		assert.ErrorIs(t, err, services.ErrValidation)
	}
}

func TestSummaryStylesShapePrompt(t *testing.T) {
	summarizer, summaries, llm, _ := setupSummarizer()
	summaries.On("Find", mock.Anything, "blog-1", models.SummaryBullets).Return(nil, gorm.ErrRecordNotFound)
	llm.On("Complete", mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return strings.Contains(prompt, "Start EVERY line with a dash (-)") && strings.Contains(prompt, "Style: bullets")
	})).Return("- one", nil)
	summaries.On("Save", mock.Anything, mock.Anything).Return(nil)

	ch, err := summarizer.Summarize(context.Background(), services.SummaryRequest{BlogID: "blog-1", Content: "text", Type: models.SummaryBullets})
	require.NoError(t, err)
	assert.Equal(t, []string{"- one"}, collect(ch))
}
