package routes

import (
	"blogiq/internal/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterNewsRoutes(router *gin.Engine, newsController *controllers.NewsController) {
	newsRoutes := router.Group("/news")
	{
		newsRoutes.GET("", newsController.GetNews)
		newsRoutes.GET("/counts", newsController.GetCounts)
	}
}
