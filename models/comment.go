package models

import "time"

// Comment references both the commenting User and the Post being commented
// on. The two foreign keys are independent; the commenting user need not be
// the post's author.
type Comment struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;index" json:"userId"`
	PostID    string    `gorm:"type:uuid;not null;index" json:"postId"`
	Body      string    `gorm:"not null" json:"body"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
