package controllers

import (
	"net/http"
	"time"

	"blogiq/internal/services"

	"github.com/gin-gonic/gin"
)

type NewsController struct {
	aggregator *services.Aggregator
}

func NewNewsController(aggregator *services.Aggregator) *NewsController {
	return &NewsController{aggregator: aggregator}
}

// GetNews godoc
// @Summary Aggregated news feed
// @Description Approved internal posts merged with external news, newest first
// @Tags news
// @Produce json
// @Param category query string false "Category"
// @Success 200 {object} map[string]interface{} "News retrieved successfully"
// @Router /news [get]
func (nc *NewsController) GetNews(c *gin.Context) {
	articles := nc.aggregator.FetchArticles(c.Request.Context(), c.Query("category"))

	c.JSON(http.StatusOK, gin.H{
		"status":       "success",
		"message":      "News retrieved successfully",
		"totalResults": len(articles),
		"data":         articles,
	})
}

// GetCounts godoc
// @Summary Article totals per category
// @Tags news
// @Produce json
// @Success 200 {object} map[string]interface{} "Counts retrieved successfully"
// @Failure 500 {object} map[string]interface{} "Failed to fetch counts"
// @Router /news/counts [get]
func (nc *NewsController) GetCounts(c *gin.Context) {
	counts, err := nc.aggregator.CategoryCounts(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to fetch counts")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "success",
		"message":   "Counts retrieved successfully",
		"data":      counts,
		"timestamp": time.Now().UnixMilli(),
	})
}
