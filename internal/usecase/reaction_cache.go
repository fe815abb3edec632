package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"buddyboost/internal/entity"
	"buddyboost/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const reactionSummaryTTL = 5 * time.Minute

func reactionSummaryKey(postID string) string {
	return fmt.Sprintf("post:reactions:%s", postID)
}

// reactionSummaryCache keeps per-post reaction counts in redis. Every method
// is a no-op without a client, and redis failures only cost a cache miss.
type reactionSummaryCache struct {
	client *redis.Client
	logger *logger.Logger
}

func (c reactionSummaryCache) get(ctx context.Context, postID string) (*entity.ReactionSummary, bool) {
	if c.client == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, reactionSummaryKey(postID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("Failed to read reaction summary for post %s: %v", postID, err)
		}
		return nil, false
	}

	var summary entity.ReactionSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		c.logger.Warn("Discarding corrupt reaction summary for post %s: %v", postID, err)
		return nil, false
	}
	return &summary, true
}

func (c reactionSummaryCache) set(ctx context.Context, summary *entity.ReactionSummary) {
	if c.client == nil {
		return
	}
	data, err := json.Marshal(summary)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, reactionSummaryKey(summary.PostID), data, reactionSummaryTTL).Err(); err != nil {
		c.logger.Warn("Failed to cache reaction summary for post %s: %v", summary.PostID, err)
	}
}

func (c reactionSummaryCache) invalidate(ctx context.Context, postID string) {
	if c.client == nil {
		return
	}
	if err := c.client.Del(ctx, reactionSummaryKey(postID)).Err(); err != nil {
		c.logger.Warn("Failed to invalidate reaction summary for post %s: %v", postID, err)
	}
}
