package handlers

import (
	"github.com/eminenthub/eminenthub-api/internal/services"
	"github.com/eminenthub/eminenthub-api/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// BlogHandler handles blog post endpoints
type BlogHandler struct {
	DB *gorm.DB
}

// NewBlogHandler creates a new BlogHandler
func NewBlogHandler(db *gorm.DB) *BlogHandler {
	return &BlogHandler{DB: db}
}

// ListPosts handles GET /api/blog
// @Summary List blog posts
// @Description List posts, newest first, optionally filtered by tags and author
// @Tags Blog
// @Produce json
// @Param tags query string false "Comma-separated list of tags to filter"
// @Param author query string false "Author email to filter"
// @Success 200 {array} models.BlogPost
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /blog [get]
func (h *BlogHandler) ListPosts(c *fiber.Ctx) error {
	posts, err := services.ListBlogPosts(h.DB, parseTags(c), c.Query("author", ""))
	if err != nil {
		return serviceErrorResponse(c, err, "listPosts")
	}
	return utils.SuccessResponse(c, posts, fiber.StatusOK)
}

// GetPost handles GET /api/blog/:slug
// @Summary Get a blog post
// @Description Get one post by its slug
// @Tags Blog
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} models.BlogPost
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /blog/{slug} [get]
func (h *BlogHandler) GetPost(c *fiber.Ctx) error {
	post, err := services.GetBlogPostBySlug(h.DB, c.Params("slug"))
	if err != nil {
		return serviceErrorResponse(c, err, "getPost")
	}
	return utils.SuccessResponse(c, post, fiber.StatusOK)
}

// CreatePost handles POST /api/blog
// @Summary Create a blog post
// @Description Create a post authored by the caller; the slug falls back to the slugified title
// @Tags Blog
// @Accept json
// @Produce json
// @Param body body services.BlogPostInput true "Post fields"
// @Success 201 {object} utils.CreatedResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /blog [post]
func (h *BlogHandler) CreatePost(c *fiber.Ctx) error {
	email, err := callerEmail(c)
	if err != nil {
		return utils.ErrorResponse(c, "Caller identity missing", fiber.StatusForbidden, "blog.authorization")
	}

	var body services.BlogPostInput
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "blog.validation.input")
	}

	post, err := services.CreateBlogPost(h.DB, email, body)
	if err != nil {
		return serviceErrorResponse(c, err, "createPost")
	}
	return utils.CreatedResponse(c, post.PostID)
}

// UpdatePost handles PUT /api/blog/:id
// @Summary Update a blog post
// @Description Update a post the caller authored
// @Tags Blog
// @Accept json
// @Produce json
// @Param id path string true "Post id"
// @Param body body services.BlogPostInput true "Fields to update"
// @Success 200 {object} models.BlogPost
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /blog/{id} [put]
func (h *BlogHandler) UpdatePost(c *fiber.Ctx) error {
	email, err := callerEmail(c)
	if err != nil {
		return utils.ErrorResponse(c, "Caller identity missing", fiber.StatusForbidden, "blog.authorization")
	}

	var body services.BlogPostInput
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "blog.validation.input")
	}

	post, err := services.UpdateBlogPost(h.DB, c.Params("id"), email, body)
	if err != nil {
		return serviceErrorResponse(c, err, "updatePost")
	}
	return utils.SuccessResponse(c, post, fiber.StatusOK)
}

// DeletePost handles DELETE /api/blog/:id
// @Summary Delete a blog post
// @Description Delete a post; authors may delete their own, admins any
// @Tags Blog
// @Produce json
// @Param id path string true "Post id"
// @Success 200 {object} utils.MutationResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /blog/{id} [delete]
func (h *BlogHandler) DeletePost(c *fiber.Ctx) error {
	email, err := callerEmail(c)
	if err != nil {
		return utils.ErrorResponse(c, "Caller identity missing", fiber.StatusForbidden, "blog.authorization")
	}

	if err := services.DeleteBlogPost(h.DB, c.Params("id"), email, callerIsAdmin(c)); err != nil {
		return serviceErrorResponse(c, err, "deletePost")
	}
	return utils.MutationSuccessResponse(c, true, true)
}
