package controllers

import (
	"io"
	"net/http"

	"blogiq/internal/services"

	"github.com/gin-gonic/gin"
)

type SummarizeController struct {
	summarizer *services.Summarizer
}

func NewSummarizeController(summarizer *services.Summarizer) *SummarizeController {
	return &SummarizeController{summarizer: summarizer}
}

// Summarize godoc
// @Summary Stream an AI summary
// @Description Streams plain text as each part of the article is summarized. Cached summaries are returned in one piece
// @Tags summarize
// @Accept json
// @Produce plain
// @Param request body services.SummaryRequest true "Article to summarize"
// @Success 200 {string} string "Summary text"
// @Failure 400 {object} map[string]interface{} "Blog ID and content/url required"
// @Failure 429 {object} map[string]interface{} "Too many requests"
// @Router /summarize [post]
func (sc *SummarizeController) Summarize(c *gin.Context) {
	var req services.SummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	chunks, err := sc.summarizer.Summarize(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "AI summarization failed")
		return
	}

	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	// The producer stops when the request context is cancelled, which also
	// ends this loop.
	for chunk := range chunks {
		if _, err := io.WriteString(c.Writer, chunk); err != nil {
			return
		}
		c.Writer.Flush()
	}
}
