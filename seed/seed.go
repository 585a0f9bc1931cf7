// Package seed populates an empty database with sample users, posts and
// comments. Seeding goes through the repositories and the integrity
// enforcer so the seeded data obeys the same rules as API writes.
package seed

import (
	"context"
	"fmt"
	"log"

	"postboard/integrity"
	"postboard/models"
	"postboard/repository"

	"gorm.io/gorm"
)

var users = []models.User{
	{Name: "Ada Lovelace", Username: "ada", Email: "ada@example.com"},
	{Name: "Grace Hopper", Username: "grace", Email: "grace@example.com"},
	{Name: "Alan Turing", Username: "alan", Email: "alan@example.com"},
}

var postTitles = []string{
	"Notes on the Analytical Engine",
	"Why compilers matter",
	"On computable numbers",
	"Debugging by candlelight",
	"The first program",
	"Machines that learn",
	"A letter on symbolic logic",
	"Subroutines and structure",
	"Thinking about thinking machines",
}

var commentBodies = []string{
	"Great write-up, thanks for sharing.",
	"I had the exact opposite experience.",
	"Could you expand on the second point?",
	"Bookmarking this for later.",
	"This aged remarkably well.",
	"Strongly agree with the conclusion.",
}

// Run seeds the database. It is idempotent: if any collection already holds
// documents, nothing is written.
func Run(ctx context.Context, db *gorm.DB) error {
	var userCount, postCount, commentCount int64
	db.Model(&models.User{}).Count(&userCount)
	db.Model(&models.Post{}).Count(&postCount)
	db.Model(&models.Comment{}).Count(&commentCount)

	if userCount > 0 || postCount > 0 || commentCount > 0 {
		log.Println("Database already seeded")
		return nil
	}

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	enforcer := integrity.NewEnforcer(integrity.NewChecker(userRepo, postRepo, commentRepo))

	seededUsers := make([]models.User, 0, len(users))
	for _, u := range users {
		user := u
		if err := userRepo.Create(ctx, &user); err != nil {
			return fmt.Errorf("seeding user %s: %w", user.Username, err)
		}
		seededUsers = append(seededUsers, user)
	}
	log.Println("Users seeded")

	// Three posts per user, in order.
	seededPosts := make([]models.Post, 0, len(postTitles))
	for i, title := range postTitles {
		author := seededUsers[i/3]
		if err := enforcer.ValidatePost(ctx, author.ID); err != nil {
			return fmt.Errorf("seeding post %q: %w", title, err)
		}
		post := models.Post{
			UserID:  author.ID,
			Title:   title,
			Content: fmt.Sprintf("Full text of %q.", title),
		}
		if err := postRepo.Create(ctx, &post); err != nil {
			return fmt.Errorf("seeding post %q: %w", title, err)
		}
		seededPosts = append(seededPosts, post)
	}
	log.Println("Posts seeded")

	// Comments round-robin across users and posts.
	for i, body := range commentBodies {
		user := seededUsers[i%len(seededUsers)]
		post := seededPosts[i%len(seededPosts)]
		if err := enforcer.ValidateComment(ctx, user.ID, post.ID); err != nil {
			return fmt.Errorf("seeding comment %d: %w", i, err)
		}
		comment := models.Comment{
			UserID: user.ID,
			PostID: post.ID,
			Body:   body,
		}
		if err := commentRepo.Create(ctx, &comment); err != nil {
			return fmt.Errorf("seeding comment %d: %w", i, err)
		}
	}
	log.Println("Comments seeded")

	log.Println("Database seeded successfully")
	return nil
}
