package repository

import (
	"context"
	"errors"

	"postboard/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id string) error
	// List returns comments, optionally filtered by commenting user and/or
	// parent post. Empty ids mean no filter.
	List(ctx context.Context, userID, postID string) ([]models.Comment, error)
}

// commentRepository implements CommentRepository
type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return models.NewStoreError(err)
	}
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, models.NewMalformedIDError("Comment")
	}
	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment")
		}
		return nil, models.NewStoreError(err)
	}
	return &comment, nil
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Save(comment).Error; err != nil {
		return models.NewStoreError(err)
	}
	return nil
}

func (r *commentRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&models.Comment{}, "id = ?", id).Error; err != nil {
		return models.NewStoreError(err)
	}
	return nil
}

func (r *commentRepository) List(ctx context.Context, userID, postID string) ([]models.Comment, error) {
	q := r.db.WithContext(ctx).Order("created_at")
	if userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	if postID != "" {
		q = q.Where("post_id = ?", postID)
	}
	var comments []models.Comment
	if err := q.Find(&comments).Error; err != nil {
		return nil, models.NewStoreError(err)
	}
	return comments, nil
}
