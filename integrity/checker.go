// Package integrity enforces referential integrity across collections that
// have no native foreign-key support. The existence checker answers whether
// a referenced document exists; the enforcer composes those checks into
// per-resource rules applied before any write.
package integrity

import (
	"context"
	"errors"

	"postboard/models"
	"postboard/repository"
)

// Kind identifies a resource collection.
type Kind string

const (
	KindUser    Kind = "User"
	KindPost    Kind = "Post"
	KindComment Kind = "Comment"
)

// Checker answers existence queries against the store. Repositories are
// injected at construction time; there is no global model registry.
type Checker struct {
	users    repository.UserRepository
	posts    repository.PostRepository
	comments repository.CommentRepository
}

// NewChecker creates a checker over the given repositories.
func NewChecker(users repository.UserRepository, posts repository.PostRepository, comments repository.CommentRepository) *Checker {
	return &Checker{users: users, posts: posts, comments: comments}
}

// Exists reports whether a document of the given kind exists under id.
// A malformed id and a missing document both report false; only genuine
// store failures are returned as errors.
func (c *Checker) Exists(ctx context.Context, kind Kind, id string) (bool, error) {
	var err error
	switch kind {
	case KindUser:
		_, err = c.users.GetByID(ctx, id)
	case KindPost:
		_, err = c.posts.GetByID(ctx, id)
	case KindComment:
		_, err = c.comments.GetByID(ctx, id)
	default:
		return false, nil
	}
	if err == nil {
		return true, nil
	}
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case models.CodeResourceNotFound, models.CodeMalformedID:
			return false, nil
		}
	}
	return false, err
}
