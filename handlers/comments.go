package handlers

import (
	"postboard/models"
	"postboard/validation"

	"github.com/gofiber/fiber/v2"
)

var createCommentBodyRules = []validation.FieldRule{
	{Field: "userId", Required: true, Type: validation.TypeString},
	{Field: "postId", Required: true, Type: validation.TypeString},
	{Field: "body", Required: true, Type: validation.TypeString},
}

var updateCommentBodyRules = []validation.FieldRule{
	{Field: "id", Required: true, Type: validation.TypeString},
	{Field: "body", Required: true, Type: validation.TypeString},
	{Field: "userId", Required: false, Type: validation.TypeString},
	{Field: "postId", Required: false, Type: validation.TypeString},
}

var commentsQueryRules = []validation.FieldRule{
	{Field: "userId", Required: false, Type: validation.TypeString},
	{Field: "postId", Required: false, Type: validation.TypeString},
}

// ListComments handles GET /api/v1/comments?userId=...&postId=...
func (s *Server) ListComments(c *fiber.Ctx) error {
	ctx := c.Context()

	if err := validation.Validate(querySource(c, "userId", "postId"), commentsQueryRules); err != nil {
		return models.RespondWithError(c, err)
	}

	// Filter ids must name existing documents; the user filter is checked
	// before the post filter.
	userID := c.Query("userId")
	if userID != "" {
		if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
			return models.RespondWithError(c, err)
		}
	}
	postID := c.Query("postId")
	if postID != "" {
		if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
			return models.RespondWithError(c, err)
		}
	}

	comments, err := s.commentRepo.List(ctx, userID, postID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(comments)
}

// CreateComment handles POST /api/v1/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	ctx := c.Context()

	body, err := decodeBody(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	if err := validation.Validate(body, createCommentBodyRules); err != nil {
		return models.RespondWithError(c, err)
	}

	userID := strField(body, "userId")
	postID := strField(body, "postId")
	if err := s.enforcer.ValidateComment(ctx, userID, postID); err != nil {
		return models.RespondWithError(c, err)
	}

	comment := &models.Comment{
		UserID: userID,
		PostID: postID,
		Body:   strField(body, "body"),
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// GetComment handles GET /api/v1/comments/:id
func (s *Server) GetComment(c *fiber.Ctx) error {
	ctx := c.Context()

	if err := validation.Validate(paramSource(c, "id"), idParamRules); err != nil {
		return models.RespondWithError(c, err)
	}

	comment, err := s.commentRepo.GetByID(ctx, c.Params("id"))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(comment)
}

// UpdateComment handles PATCH /api/v1/comments/:id
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	ctx := c.Context()

	if err := validation.Validate(paramSource(c, "id"), idParamRules); err != nil {
		return models.RespondWithError(c, err)
	}
	body, err := decodeBody(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	if err := validation.Validate(body, updateCommentBodyRules); err != nil {
		return models.RespondWithError(c, err)
	}

	id := c.Params("id")
	if id != strField(body, "id") {
		return models.RespondWithError(c, models.NewPathBodyMismatchError())
	}

	// Foreign keys stay immutable here, but any carried in the payload must
	// still name existing documents.
	if err := s.enforcer.ValidateCommentPatch(ctx, strField(body, "userId"), strField(body, "postId")); err != nil {
		return models.RespondWithError(c, err)
	}

	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	comment.Body = strField(body, "body")
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(comment)
}

// DeleteComment handles DELETE /api/v1/comments/:id
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	ctx := c.Context()

	if err := validation.Validate(paramSource(c, "id"), idParamRules); err != nil {
		return models.RespondWithError(c, err)
	}
	id := c.Params("id")

	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	if err := s.commentRepo.Delete(ctx, id); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(comment)
}
