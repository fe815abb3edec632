package entity

import "time"

type Reaction struct {
	ID           string    `json:"id"`
	PostID       string    `json:"post_id"`
	CommentID    *string   `json:"comment_id,omitempty"`
	UserID       string    `json:"user_id"`
	ReactionType string    `json:"reaction_type"`
	CreatedAt    time.Time `json:"created_at"`
}

type ReactionAction string

const (
	ReactionAdded   ReactionAction = "added"
	ReactionUpdated ReactionAction = "updated"
	ReactionRemoved ReactionAction = "removed"
)

// ReactionResult is the outcome of a toggle. Reaction is nil when removed.
type ReactionResult struct {
	Action   ReactionAction
	Reaction *Reaction
}

// DecideReaction picks the toggle transition for a user's existing
// post-level reaction (nil when absent) and the requested type.
func DecideReaction(existing *Reaction, requested string) ReactionAction {
	switch {
	case existing == nil:
		return ReactionAdded
	case existing.ReactionType == requested:
		return ReactionRemoved
	default:
		return ReactionUpdated
	}
}

// ReactionSummary counts the reactions on a post by type.
type ReactionSummary struct {
	PostID string           `json:"post_id"`
	Total  int64            `json:"total"`
	Counts map[string]int64 `json:"counts"`
}
