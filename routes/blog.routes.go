package routes

import (
	"blogiq/internal/controllers"
	"blogiq/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterBlogRoutes(router *gin.Engine, auth *middleware.Authenticator, blogController *controllers.BlogController) {
	blogRoutesPublic := router.Group("/blogs")
	blogRoutesPublic.Use(auth.OptionalAuth())
	{
		blogRoutesPublic.GET("", blogController.GetBlogs)
		blogRoutesPublic.GET("/:id", blogController.GetBlog)
	}
	blogRoutesPrivate := router.Group("/blogs")
	blogRoutesPrivate.Use(auth.AuthMiddleware())
	{
		blogRoutesPrivate.POST("", blogController.CreateBlog)
		blogRoutesPrivate.PUT("/:id", blogController.UpdateBlog)
		blogRoutesPrivate.DELETE("/:id", blogController.DeleteBlog)
	}
}
