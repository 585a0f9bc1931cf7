// Package handlers contains the HTTP handlers for the API's resources.
// Every mutating handler runs the same pipeline: shape validation of params,
// query and body, then path/body id agreement for updates, then referential
// integrity, then existence of the primary resource, and only then the store
// mutation. The first failing check ends the request.
package handlers

import (
	"time"

	"postboard/config"
	"postboard/integrity"
	"postboard/models"
	"postboard/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const cacheTTL = 5 * time.Minute

// Server holds all dependencies and provides handlers
type Server struct {
	config      *config.Config
	userRepo    repository.UserRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	enforcer    *integrity.Enforcer
	redis       *redis.Client
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	checker := integrity.NewChecker(userRepo, postRepo, commentRepo)

	return &Server{
		config:      cfg,
		userRepo:    userRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		enforcer:    integrity.NewEnforcer(checker),
		redis:       redisClient,
	}
}

// Health handles GET /api/v1
func (s *Server) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Postboard API",
		"version": "1.0.0",
	})
}

// decodeBody parses the JSON request body into a field map for the
// rule-based validator.
func decodeBody(c *fiber.Ctx) (map[string]any, error) {
	body := make(map[string]any)
	if err := c.BodyParser(&body); err != nil {
		return nil, models.NewTypeMismatchError("body", "object")
	}
	return body, nil
}

// paramSource collects path parameters into a validator source map.
func paramSource(c *fiber.Ctx, names ...string) map[string]any {
	m := make(map[string]any, len(names))
	for _, n := range names {
		m[n] = c.Params(n)
	}
	return m
}

// querySource collects query parameters into a validator source map.
func querySource(c *fiber.Ctx, names ...string) map[string]any {
	m := make(map[string]any, len(names))
	for _, n := range names {
		m[n] = c.Query(n)
	}
	return m
}

// strField returns the string value of a field, or "" when absent or not a
// string.
func strField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func userCacheKey(id string) string {
	return "user:" + id
}

func postCacheKey(id string) string {
	return "post:" + id
}
