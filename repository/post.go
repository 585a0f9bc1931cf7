package repository

import (
	"context"
	"errors"

	"postboard/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id string) (*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id string) error
	// List returns posts, optionally filtered by author. An empty userID
	// means no filter.
	List(ctx context.Context, userID string) ([]models.Post, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewStoreError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, models.NewMalformedIDError("Post")
	}
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post")
		}
		return nil, models.NewStoreError(err)
	}
	return &post, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return models.NewStoreError(err)
	}
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&models.Post{}, "id = ?", id).Error; err != nil {
		return models.NewStoreError(err)
	}
	return nil
}

func (r *postRepository) List(ctx context.Context, userID string) ([]models.Post, error) {
	q := r.db.WithContext(ctx).Order("created_at")
	if userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	var posts []models.Post
	if err := q.Find(&posts).Error; err != nil {
		return nil, models.NewStoreError(err)
	}
	return posts, nil
}
