package integrity

import (
	"context"

	"postboard/models"
)

// Enforcer applies per-resource referential-integrity rules. Users have no
// foreign keys; posts reference a user; comments reference a user and a
// post. Checks run in dependency order and the first failure wins.
type Enforcer struct {
	checker *Checker
}

// NewEnforcer creates an enforcer backed by the given checker.
func NewEnforcer(checker *Checker) *Enforcer {
	return &Enforcer{checker: checker}
}

// ValidatePost verifies that userID names an existing user.
func (e *Enforcer) ValidatePost(ctx context.Context, userID string) error {
	ok, err := e.checker.Exists(ctx, KindUser, userID)
	if err != nil {
		return err
	}
	if !ok {
		return models.NewForeignKeyError(string(KindUser), userID)
	}
	return nil
}

// ValidateComment verifies both foreign keys of a comment. The user is
// checked before the post so that a request with two dangling references
// always reports the user failure.
func (e *Enforcer) ValidateComment(ctx context.Context, userID, postID string) error {
	ok, err := e.checker.Exists(ctx, KindUser, userID)
	if err != nil {
		return err
	}
	if !ok {
		return models.NewForeignKeyError(string(KindUser), userID)
	}

	ok, err = e.checker.Exists(ctx, KindPost, postID)
	if err != nil {
		return err
	}
	if !ok {
		return models.NewForeignKeyError(string(KindPost), postID)
	}
	return nil
}

// ValidateCommentPatch checks only the foreign keys carried by an update
// payload. Empty ids are skipped; the user is still checked before the post.
func (e *Enforcer) ValidateCommentPatch(ctx context.Context, userID, postID string) error {
	if userID != "" {
		ok, err := e.checker.Exists(ctx, KindUser, userID)
		if err != nil {
			return err
		}
		if !ok {
			return models.NewForeignKeyError(string(KindUser), userID)
		}
	}
	if postID != "" {
		ok, err := e.checker.Exists(ctx, KindPost, postID)
		if err != nil {
			return err
		}
		if !ok {
			return models.NewForeignKeyError(string(KindPost), postID)
		}
	}
	return nil
}
