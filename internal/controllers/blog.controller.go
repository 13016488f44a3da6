package controllers

import (
	"net/http"

	"blogiq/internal/middleware"
	"blogiq/internal/services"

	"github.com/gin-gonic/gin"
)

type BlogController struct {
	moderation *services.ModerationService
}

func NewBlogController(moderation *services.ModerationService) *BlogController {
	return &BlogController{moderation: moderation}
}

// UpdateBlogRequest is either an edit or, with action "moderate", a
// moderation decision.
type UpdateBlogRequest struct {
	Action string `json:"action,omitempty" example:"moderate"`
	services.BlogInput
	services.ModerationInput
}

// GetBlogs godoc
// @Summary List blog posts
// @Description Approved posts by default. filter=all lists every post for admins, filter=mine lists the caller's own posts
// @Tags blogs
// @Produce json
// @Param filter query string false "all | mine"
// @Param category query string false "Category (case-insensitive)"
// @Success 200 {object} map[string]interface{} "Blogs retrieved successfully"
// @Failure 500 {object} map[string]interface{} "Failed to fetch blogs"
// @Router /blogs [get]
func (bc *BlogController) GetBlogs(c *gin.Context) {
	scope := services.ListScope(c.Query("filter"))
	blogs, err := bc.moderation.List(c.Request.Context(), middleware.UserID(c), scope, c.Query("category"))
	if err != nil {
		respondError(c, err, "Failed to fetch blogs")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Blogs retrieved successfully",
		"data":    blogs,
	})
}

// CreateBlog godoc
// @Summary Create a blog post
// @Description Active creators and admins only. Every new post starts pending review
// @Tags blogs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param blog body services.BlogInput true "Blog data"
// @Success 201 {object} map[string]interface{} "Blog created successfully"
// @Failure 400 {object} map[string]interface{} "Missing fields or duplicate slug"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 403 {object} map[string]interface{} "Not an active creator"
// @Failure 500 {object} map[string]interface{} "Failed to create blog"
// @Router /blogs [post]
func (bc *BlogController) CreateBlog(c *gin.Context) {
	var input services.BlogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	blog, err := bc.moderation.Create(c.Request.Context(), middleware.UserID(c), input)
	if err != nil {
		respondError(c, err, "Failed to create blog")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Blog created successfully",
		"data":    blog,
	})
}

// GetBlog godoc
// @Summary Get a blog post
// @Description Approved posts are public; pending and rejected posts are visible to their author and admins
// @Tags blogs
// @Produce json
// @Param id path string true "Blog ID"
// @Success 200 {object} map[string]interface{} "Blog retrieved successfully"
// @Failure 403 {object} map[string]interface{} "Unauthorized access to this blog"
// @Failure 404 {object} map[string]interface{} "Blog not found"
// @Router /blogs/{id} [get]
func (bc *BlogController) GetBlog(c *gin.Context) {
	blog, err := bc.moderation.Get(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to fetch blog")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Blog retrieved successfully",
		"data":    blog,
	})
}

// UpdateBlog godoc
// @Summary Edit or moderate a blog post
// @Description With action "moderate" an admin approves or rejects the post (optionally revoking the author's creator access). Otherwise the body is an edit; author edits send the post back to review
// @Tags blogs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Blog ID"
// @Param blog body UpdateBlogRequest true "Edit or moderation decision"
// @Success 200 {object} map[string]interface{} "Blog updated successfully"
// @Failure 400 {object} map[string]interface{} "Invalid status or duplicate slug"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 403 {object} map[string]interface{} "Forbidden"
// @Failure 404 {object} map[string]interface{} "Blog not found"
// @Router /blogs/{id} [put]
func (bc *BlogController) UpdateBlog(c *gin.Context) {
	var req UpdateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	userID := middleware.UserID(c)

	if req.Action == "moderate" {
		result, err := bc.moderation.Moderate(ctx, userID, c.Param("id"), req.ModerationInput)
		if err != nil {
			respondError(c, err, "Failed to moderate blog")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":         "success",
			"message":        "Blog " + string(result.Blog.Status) + " successfully",
			"data":           result.Blog,
			"creatorRevoked": result.CreatorRevoked,
		})
		return
	}

	blog, err := bc.moderation.Update(ctx, userID, c.Param("id"), req.BlogInput)
	if err != nil {
		respondError(c, err, "Failed to update blog")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Blog updated successfully",
		"data":    blog,
	})
}

// DeleteBlog godoc
// @Summary Delete a blog post
// @Description Author or admin only
// @Tags blogs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Blog ID"
// @Success 200 {object} map[string]interface{} "Blog deleted successfully"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 403 {object} map[string]interface{} "Forbidden"
// @Failure 404 {object} map[string]interface{} "Blog not found"
// @Router /blogs/{id} [delete]
func (bc *BlogController) DeleteBlog(c *gin.Context) {
	if err := bc.moderation.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete blog")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Blog deleted successfully",
	})
}
