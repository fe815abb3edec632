package usecase

import (
	"context"
	"sync"
	"time"

	"buddyboost/internal/repo/persistent"
	"buddyboost/pkg/logger"
	"buddyboost/pkg/queue"
)

const notifyTimeout = 5 * time.Second

// Notifier tells a post's owner that someone else interacted with it.
// Publishing is fire-and-forget and never affects the request outcome.
// A nil *Notifier sends nothing.
type Notifier struct {
	publisher queue.Publisher
	postRepo  persistent.PostRepository
	logger    *logger.Logger
	inflight  sync.WaitGroup
}

// NewNotifier returns nil when publisher is nil.
func NewNotifier(publisher queue.Publisher, postRepo persistent.PostRepository, logger *logger.Logger) *Notifier {
	if publisher == nil {
		return nil
	}
	return &Notifier{publisher: publisher, postRepo: postRepo, logger: logger}
}

func (n *Notifier) notify(event queue.Event) {
	if n == nil {
		return
	}

	n.inflight.Add(1)
	go func() {
		defer n.inflight.Done()

		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		ownerID, err := n.postRepo.OwnerOf(ctx, event.PostID)
		if err != nil {
			n.logger.Warn("[NOTIFICATION QUEUE] Cannot resolve owner of post %s: %v", event.PostID, err)
			return
		}
		if ownerID == event.ActorID {
			return
		}

		event.RecipientID = ownerID
		if err := n.publisher.PublishNotification(ctx, event); err != nil {
			n.logger.Error("[NOTIFICATION QUEUE] Failed to publish %s notification: %v", event.Type, err)
		}
	}()
}

// Wait blocks until every notification started so far has been handed to
// the publisher, or until ctx is done.
func (n *Notifier) Wait(ctx context.Context) error {
	if n == nil {
		return nil
	}

	done := make(chan struct{})
	go func() {
		n.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
