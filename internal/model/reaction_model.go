package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReactionModel rows are post-level when CommentID is nil. Only one
// post-level row may exist per (user, post).
type ReactionModel struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	PostID       string    `gorm:"type:uuid;not null;index;uniqueIndex:idx_reactions_user_post,where:comment_id IS NULL" json:"post_id"`
	CommentID    *string   `gorm:"type:uuid;index" json:"comment_id"`
	UserID       string    `gorm:"type:uuid;not null;index;uniqueIndex:idx_reactions_user_post,where:comment_id IS NULL" json:"user_id"`
	ReactionType string    `gorm:"type:varchar(32);not null" json:"reaction_type"`
	CreatedAt    time.Time `json:"created_at"`
}

func (ReactionModel) TableName() string {
	return "reactions"
}

func (r *ReactionModel) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

// All returns every model in dependency order, for AutoMigrate in tests and seeding.
func All() []interface{} {
	return []interface{}{&UserModel{}, &PostModel{}, &CommentModel{}, &ReactionModel{}}
}
