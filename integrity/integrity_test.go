package integrity

import (
	"context"
	"testing"

	"postboard/database"
	"postboard/models"
	"postboard/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTest(t *testing.T) (*Checker, *Enforcer, repository.UserRepository, repository.PostRepository) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	checker := NewChecker(userRepo, postRepo, commentRepo)
	return checker, NewEnforcer(checker), userRepo, postRepo
}

func TestCheckerExists(t *testing.T) {
	checker, _, userRepo, _ := setupTest(t)
	ctx := context.Background()

	user := &models.User{Name: "Ada Lovelace", Username: "ada", Email: "ada@example.com"}
	require.NoError(t, userRepo.Create(ctx, user))

	ok, err := checker.Exists(ctx, KindUser, user.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = checker.Exists(ctx, KindUser, uuid.NewString())
	require.NoError(t, err)
	assert.False(t, ok, "unknown id must report not existing")

	ok, err = checker.Exists(ctx, KindUser, "not-a-uuid")
	require.NoError(t, err, "malformed ids must not surface as errors")
	assert.False(t, ok)

	ok, err = checker.Exists(ctx, KindPost, user.ID)
	require.NoError(t, err)
	assert.False(t, ok, "existence is per collection")
}

func TestEnforcerValidatePost(t *testing.T) {
	_, enforcer, userRepo, _ := setupTest(t)
	ctx := context.Background()

	user := &models.User{Name: "Ada Lovelace", Username: "ada", Email: "ada@example.com"}
	require.NoError(t, userRepo.Create(ctx, user))

	assert.NoError(t, enforcer.ValidatePost(ctx, user.ID))

	err := enforcer.ValidatePost(ctx, uuid.NewString())
	require.Error(t, err)
	appErr := err.(*models.AppError)
	assert.Equal(t, models.CodeForeignKeyNotFound, appErr.Code)
	assert.Contains(t, appErr.Message, "User")
}

func TestEnforcerValidateComment(t *testing.T) {
	_, enforcer, userRepo, postRepo := setupTest(t)
	ctx := context.Background()

	user := &models.User{Name: "Ada Lovelace", Username: "ada", Email: "ada@example.com"}
	require.NoError(t, userRepo.Create(ctx, user))
	post := &models.Post{UserID: user.ID, Title: "T", Content: "C"}
	require.NoError(t, postRepo.Create(ctx, post))

	assert.NoError(t, enforcer.ValidateComment(ctx, user.ID, post.ID))

	t.Run("missing post reports post failure", func(t *testing.T) {
		err := enforcer.ValidateComment(ctx, user.ID, uuid.NewString())
		require.Error(t, err)
		assert.Contains(t, err.(*models.AppError).Message, "Post")
	})

	t.Run("missing user reports user failure", func(t *testing.T) {
		err := enforcer.ValidateComment(ctx, uuid.NewString(), post.ID)
		require.Error(t, err)
		assert.Contains(t, err.(*models.AppError).Message, "User")
	})

	t.Run("both missing reports user failure first", func(t *testing.T) {
		err := enforcer.ValidateComment(ctx, uuid.NewString(), uuid.NewString())
		require.Error(t, err)
		appErr := err.(*models.AppError)
		assert.Equal(t, models.CodeForeignKeyNotFound, appErr.Code)
		assert.Contains(t, appErr.Message, "User")
		assert.NotContains(t, appErr.Message, "Post")
	})
}

func TestEnforcerValidateCommentPatch(t *testing.T) {
	_, enforcer, userRepo, postRepo := setupTest(t)
	ctx := context.Background()

	user := &models.User{Name: "Ada Lovelace", Username: "ada", Email: "ada@example.com"}
	require.NoError(t, userRepo.Create(ctx, user))
	post := &models.Post{UserID: user.ID, Title: "T", Content: "C"}
	require.NoError(t, postRepo.Create(ctx, post))

	assert.NoError(t, enforcer.ValidateCommentPatch(ctx, "", ""), "payload without foreign keys passes")
	assert.NoError(t, enforcer.ValidateCommentPatch(ctx, user.ID, ""))
	assert.NoError(t, enforcer.ValidateCommentPatch(ctx, "", post.ID))

	err := enforcer.ValidateCommentPatch(ctx, "", uuid.NewString())
	require.Error(t, err)
	assert.Contains(t, err.(*models.AppError).Message, "Post")

	err = enforcer.ValidateCommentPatch(ctx, uuid.NewString(), uuid.NewString())
	require.Error(t, err)
	assert.Contains(t, err.(*models.AppError).Message, "User")
}
