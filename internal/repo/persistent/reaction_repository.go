package persistent

import (
	"context"
	"errors"
	"time"

	"buddyboost/internal/entity"
	"buddyboost/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReactionRepository interface {
	Toggle(ctx context.Context, userID, postID, reactionType string) (*entity.ReactionResult, error)
	Summary(ctx context.Context, postID string) (*entity.ReactionSummary, error)
}

type reactionRepository struct {
	db *gorm.DB
}

func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

// Toggle applies the add/remove/update transition for the user's post-level
// reaction. Two first reactions racing on the unique index leave one loser
// with gorm.ErrDuplicatedKey; it is retried once and then sees the winner's row.
func (r *reactionRepository) Toggle(ctx context.Context, userID, postID, reactionType string) (*entity.ReactionResult, error) {
	result, err := r.toggle(ctx, userID, postID, reactionType)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		result, err = r.toggle(ctx, userID, postID, reactionType)
	}
	return result, err
}

func (r *reactionRepository) toggle(ctx context.Context, userID, postID, reactionType string) (*entity.ReactionResult, error) {
	var result entity.ReactionResult

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := postExists(tx, postID); err != nil {
			return err
		}

		var existing model.ReactionModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND post_id = ? AND comment_id IS NULL", userID, postID).
			Take(&existing).Error

		var current *entity.Reaction
		switch {
		case err == nil:
			current = ToReactionEntity(&existing)
		case errors.Is(err, gorm.ErrRecordNotFound):
		default:
			return err
		}

		result.Action = entity.DecideReaction(current, reactionType)
		switch result.Action {
		case entity.ReactionAdded:
			created := &model.ReactionModel{
				PostID:       postID,
				UserID:       userID,
				ReactionType: reactionType,
			}
			if err := tx.Create(created).Error; err != nil {
				return err
			}
			result.Reaction = ToReactionEntity(created)

		case entity.ReactionRemoved:
			return tx.Where("id = ?", existing.ID).Delete(&model.ReactionModel{}).Error

		case entity.ReactionUpdated:
			now := time.Now()
			err := tx.Model(&model.ReactionModel{}).
				Where("id = ?", existing.ID).
				Updates(map[string]interface{}{
					"reaction_type": reactionType,
					"created_at":    now,
				}).Error
			if err != nil {
				return err
			}
			existing.ReactionType = reactionType
			existing.CreatedAt = now
			result.Reaction = ToReactionEntity(&existing)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Summary counts post-level reactions on the post by type.
func (r *reactionRepository) Summary(ctx context.Context, postID string) (*entity.ReactionSummary, error) {
	db := r.db.WithContext(ctx)
	if err := postExists(db, postID); err != nil {
		return nil, err
	}

	var rows []struct {
		ReactionType string
		Count        int64
	}
	err := db.Model(&model.ReactionModel{}).
		Select("reaction_type, COUNT(*) AS count").
		Where("post_id = ? AND comment_id IS NULL", postID).
		Group("reaction_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	summary := &entity.ReactionSummary{PostID: postID, Counts: make(map[string]int64, len(rows))}
	for _, row := range rows {
		summary.Counts[row.ReactionType] = row.Count
		summary.Total += row.Count
	}
	return summary, nil
}
