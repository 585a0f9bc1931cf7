package handlers

import (
	"postboard/cache"
	"postboard/models"
	"postboard/validation"

	"github.com/gofiber/fiber/v2"
)

var createPostBodyRules = []validation.FieldRule{
	{Field: "userId", Required: true, Type: validation.TypeString},
	{Field: "title", Required: true, Type: validation.TypeString},
	{Field: "content", Required: true, Type: validation.TypeString},
}

var updatePostBodyRules = []validation.FieldRule{
	{Field: "id", Required: true, Type: validation.TypeString},
	{Field: "title", Required: false, Type: validation.TypeString},
	{Field: "content", Required: false, Type: validation.TypeString},
	{Field: "userId", Required: false, Type: validation.TypeString},
}

var userFilterQueryRules = []validation.FieldRule{
	{Field: "userId", Required: false, Type: validation.TypeString},
}

// ListPosts handles GET /api/v1/posts?userId=...
func (s *Server) ListPosts(c *fiber.Ctx) error {
	ctx := c.Context()

	if err := validation.Validate(querySource(c, "userId"), userFilterQueryRules); err != nil {
		return models.RespondWithError(c, err)
	}

	// A userId filter naming no existing user is rejected, never treated as
	// zero results.
	userID := c.Query("userId")
	if userID != "" {
		if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
			return models.RespondWithError(c, err)
		}
	}

	posts, err := s.postRepo.List(ctx, userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(posts)
}

// CreatePost handles POST /api/v1/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.Context()

	body, err := decodeBody(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	if err := validation.Validate(body, createPostBodyRules); err != nil {
		return models.RespondWithError(c, err)
	}

	userID := strField(body, "userId")
	if err := s.enforcer.ValidatePost(ctx, userID); err != nil {
		return models.RespondWithError(c, err)
	}

	post := &models.Post{
		UserID:  userID,
		Title:   strField(body, "title"),
		Content: strField(body, "content"),
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPost handles GET /api/v1/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	ctx := c.Context()

	if err := validation.Validate(paramSource(c, "id"), idParamRules); err != nil {
		return models.RespondWithError(c, err)
	}
	id := c.Params("id")

	var post models.Post
	err := cache.CacheAside(ctx, postCacheKey(id), &post, cacheTTL, func() error {
		found, err := s.postRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		post = *found
		return nil
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(post)
}

// GetPostComments handles GET /api/v1/posts/:id/comments?userId=...
func (s *Server) GetPostComments(c *fiber.Ctx) error {
	ctx := c.Context()

	if err := validation.Validate(paramSource(c, "id"), idParamRules); err != nil {
		return models.RespondWithError(c, err)
	}
	if err := validation.Validate(querySource(c, "userId"), userFilterQueryRules); err != nil {
		return models.RespondWithError(c, err)
	}
	id := c.Params("id")

	if _, err := s.postRepo.GetByID(ctx, id); err != nil {
		return models.RespondWithError(c, err)
	}

	userID := c.Query("userId")
	if userID != "" {
		if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
			return models.RespondWithError(c, err)
		}
	}

	comments, err := s.commentRepo.List(ctx, userID, id)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(comments)
}

// UpdatePost handles PATCH /api/v1/posts/:id
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	ctx := c.Context()

	if err := validation.Validate(paramSource(c, "id"), idParamRules); err != nil {
		return models.RespondWithError(c, err)
	}
	body, err := decodeBody(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	if err := validation.Validate(body, updatePostBodyRules); err != nil {
		return models.RespondWithError(c, err)
	}

	id := c.Params("id")
	if id != strField(body, "id") {
		return models.RespondWithError(c, models.NewPathBodyMismatchError())
	}

	// The foreign key is immutable through this path, but a payload carrying
	// one must still name an existing user.
	if userID := strField(body, "userId"); userID != "" {
		if err := s.enforcer.ValidatePost(ctx, userID); err != nil {
			return models.RespondWithError(c, err)
		}
	}

	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	if title := strField(body, "title"); title != "" {
		post.Title = title
	}
	if content := strField(body, "content"); content != "" {
		post.Content = content
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return models.RespondWithError(c, err)
	}
	cache.Invalidate(ctx, postCacheKey(id))

	return c.JSON(post)
}

// DeletePost handles DELETE /api/v1/posts/:id. Comments on the post are not
// cascaded; orphaned references may remain.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	ctx := c.Context()

	if err := validation.Validate(paramSource(c, "id"), idParamRules); err != nil {
		return models.RespondWithError(c, err)
	}
	id := c.Params("id")

	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	if err := s.postRepo.Delete(ctx, id); err != nil {
		return models.RespondWithError(c, err)
	}
	cache.Invalidate(ctx, postCacheKey(id))

	return c.JSON(post)
}
