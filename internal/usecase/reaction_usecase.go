package usecase

import (
	"context"
	"strings"

	"buddyboost/internal/entity"
	"buddyboost/internal/repo/persistent"
	"buddyboost/pkg/apperr"
	"buddyboost/pkg/logger"
	"buddyboost/pkg/queue"

	"github.com/redis/go-redis/v9"
)

const maxReactionTypeLength = 32

type ReactionUseCase interface {
	React(ctx context.Context, userID, postID, reactionType string) (*entity.ReactionResult, error)
	GetSummary(ctx context.Context, postID string) (*entity.ReactionSummary, error)
}

type reactionUseCase struct {
	reactionRepo persistent.ReactionRepository
	cache        reactionSummaryCache
	notifier     *Notifier
	logger       *logger.Logger
}

func NewReactionUseCase(
	reactionRepo persistent.ReactionRepository,
	redisClient *redis.Client,
	notifier *Notifier,
	logger *logger.Logger,
) ReactionUseCase {
	return &reactionUseCase{
		reactionRepo: reactionRepo,
		cache:        reactionSummaryCache{client: redisClient, logger: logger},
		notifier:     notifier,
		logger:       logger,
	}
}

// React toggles the caller's reaction on a post: add when absent, remove
// when the same type is sent again, otherwise switch to the new type.
func (uc *reactionUseCase) React(ctx context.Context, userID, postID, reactionType string) (*entity.ReactionResult, error) {
	postID = strings.TrimSpace(postID)
	reactionType = strings.TrimSpace(reactionType)
	if postID == "" || reactionType == "" {
		return nil, apperr.Validation("Missing fields")
	}
	if len(reactionType) > maxReactionTypeLength {
		return nil, apperr.Validation("Reaction type is too long")
	}

	result, err := uc.reactionRepo.Toggle(ctx, userID, postID, reactionType)
	if err != nil {
		err = storeError(err, "Post not found", "Server error")
		if apperr.KindOf(err) == apperr.KindInternal {
			uc.logger.Error("Failed to toggle reaction on post %s: %v", postID, err)
		}
		return nil, err
	}

	uc.cache.invalidate(ctx, postID)

	if result.Action != entity.ReactionRemoved {
		uc.notifier.notify(queue.Event{
			Type:         queue.EventReaction,
			ActorID:      userID,
			PostID:       postID,
			ReactionType: reactionType,
			Priority:     2,
		})
	}
	return result, nil
}

func (uc *reactionUseCase) GetSummary(ctx context.Context, postID string) (*entity.ReactionSummary, error) {
	if summary, ok := uc.cache.get(ctx, postID); ok {
		return summary, nil
	}

	summary, err := uc.reactionRepo.Summary(ctx, postID)
	if err != nil {
		return nil, storeError(err, "Post not found", "Server error fetching reactions")
	}

	uc.cache.set(ctx, summary)
	return summary, nil
}
