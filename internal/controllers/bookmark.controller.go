package controllers

import (
	"net/http"

	"blogiq/internal/middleware"
	"blogiq/internal/models"
	"blogiq/internal/services"

	"github.com/gin-gonic/gin"
)

type BookmarkController struct {
	bookmarks *services.BookmarkService
}

func NewBookmarkController(bookmarks *services.BookmarkService) *BookmarkController {
	return &BookmarkController{bookmarks: bookmarks}
}

// GetBookmarks godoc
// @Summary List the caller's bookmarks
// @Tags bookmarks
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Bookmarks retrieved successfully"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Router /bookmarks [get]
func (bc *BookmarkController) GetBookmarks(c *gin.Context) {
	bookmarks, err := bc.bookmarks.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err, "Failed to fetch bookmarks")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Bookmarks retrieved successfully",
		"data":    bookmarks,
	})
}

// ToggleBookmark godoc
// @Summary Add or remove a bookmark
// @Description Removes the bookmark when the article is already saved, otherwise saves it
// @Tags bookmarks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param article body models.Article true "Article"
// @Success 200 {object} map[string]interface{} "Bookmark added / Bookmark removed"
// @Failure 400 {object} map[string]interface{} "Invalid blog data"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Router /bookmarks [post]
func (bc *BookmarkController) ToggleBookmark(c *gin.Context) {
	var article models.Article
	if err := c.ShouldBindJSON(&article); err != nil {
		badRequest(c, err)
		return
	}

	bookmarked, err := bc.bookmarks.Toggle(c.Request.Context(), middleware.UserID(c), article)
	if err != nil {
		respondError(c, err, "Failed to toggle bookmark")
		return
	}

	message := "Bookmark removed"
	if bookmarked {
		message = "Bookmark added"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":       "success",
		"message":      message,
		"isBookmarked": bookmarked,
	})
}

// DeleteBookmark godoc
// @Summary Remove a bookmark
// @Tags bookmarks
// @Produce json
// @Security BearerAuth
// @Param blogId path string true "Bookmarked article ID"
// @Success 200 {object} map[string]interface{} "Bookmark removed"
// @Failure 404 {object} map[string]interface{} "Bookmark not found"
// @Router /bookmarks/{blogId} [delete]
func (bc *BookmarkController) DeleteBookmark(c *gin.Context) {
	if err := bc.bookmarks.Remove(c.Request.Context(), middleware.UserID(c), c.Param("blogId")); err != nil {
		respondError(c, err, "Failed to remove bookmark")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Bookmark removed",
	})
}
