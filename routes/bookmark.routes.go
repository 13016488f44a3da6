package routes

import (
	"blogiq/internal/controllers"
	"blogiq/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterBookmarkRoutes(router *gin.Engine, auth *middleware.Authenticator, bookmarkController *controllers.BookmarkController) {
	bookmarkRoutes := router.Group("/bookmarks")
	bookmarkRoutes.Use(auth.AuthMiddleware())
	{
		bookmarkRoutes.GET("", bookmarkController.GetBookmarks)
		bookmarkRoutes.POST("", bookmarkController.ToggleBookmark)
		bookmarkRoutes.DELETE("/:blogId", bookmarkController.DeleteBookmark)
	}
}
