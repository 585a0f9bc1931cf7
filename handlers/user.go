package handlers

import (
	"strings"

	"postboard/cache"
	"postboard/models"
	"postboard/validation"

	"github.com/gofiber/fiber/v2"
)

var idParamRules = []validation.FieldRule{
	{Field: "id", Required: true, Type: validation.TypeString},
}

var createUserBodyRules = []validation.FieldRule{
	{Field: "name", Required: true, Type: validation.TypeString, MinLength: 3, MaxLength: 50},
	{Field: "username", Required: true, Type: validation.TypeString, MinLength: 3, MaxLength: 50},
	{Field: "email", Required: true, Type: validation.TypeString, Pattern: validation.EmailPattern},
}

var updateUserBodyRules = []validation.FieldRule{
	{Field: "id", Required: true, Type: validation.TypeString},
	{Field: "name", Required: false, Type: validation.TypeString, MinLength: 3, MaxLength: 50},
	{Field: "email", Required: false, Type: validation.TypeString, Pattern: validation.EmailPattern},
	{Field: "username", Required: false, Type: validation.TypeString, MinLength: 3, MaxLength: 50},
}

var userCommentsQueryRules = []validation.FieldRule{
	{Field: "postId", Required: false, Type: validation.TypeString},
}

// ListUsers handles GET /api/v1/users
func (s *Server) ListUsers(c *fiber.Ctx) error {
	users, err := s.userRepo.List(c.Context())
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(users)
}

// CreateUser handles POST /api/v1/users
func (s *Server) CreateUser(c *fiber.Ctx) error {
	ctx := c.Context()

	body, err := decodeBody(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	if err := validation.Validate(body, createUserBodyRules); err != nil {
		return models.RespondWithError(c, err)
	}

	// Usernames and emails are stored lowercased and must stay unique.
	username := strings.ToLower(strings.TrimSpace(strField(body, "username")))
	email := strings.ToLower(strings.TrimSpace(strField(body, "email")))
	if err := s.ensureUniqueUser(c, username, email, ""); err != nil {
		return models.RespondWithError(c, err)
	}

	user := &models.User{
		Name:     strField(body, "name"),
		Username: username,
		Email:    email,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// GetUser handles GET /api/v1/users/:id
func (s *Server) GetUser(c *fiber.Ctx) error {
	ctx := c.Context()

	if err := validation.Validate(paramSource(c, "id"), idParamRules); err != nil {
		return models.RespondWithError(c, err)
	}
	id := c.Params("id")

	var user models.User
	err := cache.CacheAside(ctx, userCacheKey(id), &user, cacheTTL, func() error {
		found, err := s.userRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		user = *found
		return nil
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(user)
}

// GetUserPosts handles GET /api/v1/users/:id/posts
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	ctx := c.Context()

	if err := validation.Validate(paramSource(c, "id"), idParamRules); err != nil {
		return models.RespondWithError(c, err)
	}
	id := c.Params("id")

	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		return models.RespondWithError(c, err)
	}

	posts, err := s.postRepo.List(ctx, id)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(posts)
}

// GetUserComments handles GET /api/v1/users/:id/comments?postId=...
func (s *Server) GetUserComments(c *fiber.Ctx) error {
	ctx := c.Context()

	if err := validation.Validate(paramSource(c, "id"), idParamRules); err != nil {
		return models.RespondWithError(c, err)
	}
	if err := validation.Validate(querySource(c, "postId"), userCommentsQueryRules); err != nil {
		return models.RespondWithError(c, err)
	}
	id := c.Params("id")

	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		return models.RespondWithError(c, err)
	}

	// Filtering by a nonexistent post is a request error, not an empty list.
	postID := c.Query("postId")
	if postID != "" {
		if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
			return models.RespondWithError(c, err)
		}
	}

	comments, err := s.commentRepo.List(ctx, id, postID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(comments)
}

// UpdateUser handles PATCH /api/v1/users/:id
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	ctx := c.Context()

	if err := validation.Validate(paramSource(c, "id"), idParamRules); err != nil {
		return models.RespondWithError(c, err)
	}
	body, err := decodeBody(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	if err := validation.Validate(body, updateUserBodyRules); err != nil {
		return models.RespondWithError(c, err)
	}

	id := c.Params("id")
	if id != strField(body, "id") {
		return models.RespondWithError(c, models.NewPathBodyMismatchError())
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	username := strings.ToLower(strings.TrimSpace(strField(body, "username")))
	email := strings.ToLower(strings.TrimSpace(strField(body, "email")))
	if err := s.ensureUniqueUser(c, username, email, user.ID); err != nil {
		return models.RespondWithError(c, err)
	}

	if name := strField(body, "name"); name != "" {
		user.Name = name
	}
	if username != "" {
		user.Username = username
	}
	if email != "" {
		user.Email = email
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return models.RespondWithError(c, err)
	}
	cache.Invalidate(ctx, userCacheKey(id))

	return c.JSON(user)
}

// DeleteUser handles DELETE /api/v1/users/:id. Deletion does not cascade:
// posts and comments referencing the user are left in place.
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	ctx := c.Context()

	if err := validation.Validate(paramSource(c, "id"), idParamRules); err != nil {
		return models.RespondWithError(c, err)
	}
	id := c.Params("id")

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return models.RespondWithError(c, err)
	}
	cache.Invalidate(ctx, userCacheKey(id))

	return c.JSON(user)
}

// ensureUniqueUser rejects a username or email already held by another user.
// Empty values are skipped; excludeID ignores the user being updated.
func (s *Server) ensureUniqueUser(c *fiber.Ctx, username, email, excludeID string) error {
	ctx := c.Context()

	if username != "" {
		existing, err := s.userRepo.GetByUsername(ctx, username)
		if err != nil {
			return err
		}
		if existing != nil && existing.ID != excludeID {
			return models.NewDuplicateValueError("username", username)
		}
	}
	if email != "" {
		existing, err := s.userRepo.GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		if existing != nil && existing.ID != excludeID {
			return models.NewDuplicateValueError("email", email)
		}
	}
	return nil
}
