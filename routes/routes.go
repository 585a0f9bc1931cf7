// Package routes registers the API's HTTP routes.
package routes

import (
	"postboard/handlers"

	"github.com/gofiber/fiber/v2"
)

func Setup(app *fiber.App, s *handlers.Server) {
	api := app.Group("/api/v1")

	// Health check
	api.Get("/", s.Health)

	// User routes
	users := api.Group("/users")
	users.Get("/", s.ListUsers)
	users.Post("/", s.CreateUser)
	users.Get("/:id", s.GetUser)
	users.Get("/:id/posts", s.GetUserPosts)
	users.Get("/:id/comments", s.GetUserComments)
	users.Patch("/:id", s.UpdateUser)
	users.Delete("/:id", s.DeleteUser)

	// Post routes
	posts := api.Group("/posts")
	posts.Get("/", s.ListPosts)
	posts.Post("/", s.CreatePost)
	posts.Get("/:id", s.GetPost)
	posts.Get("/:id/comments", s.GetPostComments)
	posts.Patch("/:id", s.UpdatePost)
	posts.Delete("/:id", s.DeletePost)

	// Comment routes
	comments := api.Group("/comments")
	comments.Get("/", s.ListComments)
	comments.Post("/", s.CreateComment)
	comments.Get("/:id", s.GetComment)
	comments.Patch("/:id", s.UpdateComment)
	comments.Delete("/:id", s.DeleteComment)
}
