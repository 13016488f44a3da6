package routes

import (
	"blogiq/internal/controllers"
	"blogiq/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterSummarizeRoutes(router *gin.Engine, limiter *middleware.RateLimiter, summarizeController *controllers.SummarizeController) {
	router.POST("/summarize", limiter.Limit(), summarizeController.Summarize)
}
