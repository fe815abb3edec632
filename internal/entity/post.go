package entity

import "time"

type Post struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	Content       string    `json:"content"`
	ImageURL      *string   `json:"imageUrl"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	ReactionCount int64     `json:"reaction_count"`
	Author        *Author   `json:"author,omitempty"`
}

type PostPage struct {
	Posts []*Post
	Total int64
}
