package usecase

import (
	"context"
	"strings"

	"buddyboost/internal/entity"
	"buddyboost/internal/repo/persistent"
	"buddyboost/pkg/apperr"
	"buddyboost/pkg/logger"
	"buddyboost/pkg/pagination"
	"buddyboost/pkg/queue"
)

type CommentUseCase interface {
	CreateComment(ctx context.Context, userID, postID, content string) (*entity.Comment, error)
	GetPostComments(ctx context.Context, postID string, page pagination.Params) (*entity.CommentPage, error)
	GetComment(ctx context.Context, commentID string) (*entity.Comment, error)
	UpdateComment(ctx context.Context, actorID, commentID, content string) (*entity.Comment, error)
	DeleteComment(ctx context.Context, actorID, commentID string) error
	GetUserComments(ctx context.Context, userID string, page pagination.Params) (*entity.CommentPage, error)
}

type commentUseCase struct {
	commentRepo persistent.CommentRepository
	notifier    *Notifier
	logger      *logger.Logger
}

// NewCommentUseCase accepts a nil notifier; no notifications are sent then.
func NewCommentUseCase(
	commentRepo persistent.CommentRepository,
	notifier *Notifier,
	logger *logger.Logger,
) CommentUseCase {
	return &commentUseCase{
		commentRepo: commentRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

func (uc *commentUseCase) CreateComment(ctx context.Context, userID, postID, content string) (*entity.Comment, error) {
	if strings.TrimSpace(postID) == "" || strings.TrimSpace(content) == "" {
		return nil, apperr.Validation("Post ID and content are required")
	}

	comment := &entity.Comment{
		PostID:  postID,
		UserID:  userID,
		Content: content,
	}
	if err := uc.commentRepo.Create(ctx, comment); err != nil {
		err = storeError(err, "Post not found", "Server error creating comment")
		if apperr.KindOf(err) == apperr.KindInternal {
			uc.logger.Error("Failed to create comment: %v", err)
		}
		return nil, err
	}

	uc.notifier.notify(queue.Event{
		Type:      queue.EventComment,
		ActorID:   userID,
		PostID:    postID,
		CommentID: comment.ID,
		Priority:  3,
	})
	return comment, nil
}

func (uc *commentUseCase) GetPostComments(ctx context.Context, postID string, page pagination.Params) (*entity.CommentPage, error) {
	comments, total, err := uc.commentRepo.ListByPost(ctx, postID, page.Limit, page.Offset())
	if err != nil {
		return nil, storeError(err, "Post not found", "Server error fetching comments")
	}
	return &entity.CommentPage{Comments: comments, Total: total}, nil
}

func (uc *commentUseCase) GetComment(ctx context.Context, commentID string) (*entity.Comment, error) {
	comment, err := uc.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, storeError(err, "Comment not found", "Server error fetching comment")
	}
	return comment, nil
}

func (uc *commentUseCase) UpdateComment(ctx context.Context, actorID, commentID, content string) (*entity.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperr.Validation("Comment content is required")
	}

	comment, err := uc.commentRepo.Update(ctx, commentID, content, requireOwner(actorID, "update", "comment"))
	if err != nil {
		err = storeError(err, "Comment not found", "Server error updating comment")
		if apperr.KindOf(err) == apperr.KindInternal {
			uc.logger.Error("Failed to update comment %s: %v", commentID, err)
		}
		return nil, err
	}
	return comment, nil
}

func (uc *commentUseCase) DeleteComment(ctx context.Context, actorID, commentID string) error {
	err := uc.commentRepo.Delete(ctx, commentID, requireOwner(actorID, "delete", "comment"))
	if err != nil {
		err = storeError(err, "Comment not found", "Server error deleting comment")
		if apperr.KindOf(err) == apperr.KindInternal {
			uc.logger.Error("Failed to delete comment %s: %v", commentID, err)
		}
		return err
	}
	return nil
}

func (uc *commentUseCase) GetUserComments(ctx context.Context, userID string, page pagination.Params) (*entity.CommentPage, error) {
	comments, total, err := uc.commentRepo.ListByUser(ctx, userID, page.Limit, page.Offset())
	if err != nil {
		uc.logger.Error("Failed to list comments of user %s: %v", userID, err)
		return nil, storeError(err, "", "Server error fetching user comments")
	}
	return &entity.CommentPage{Comments: comments, Total: total}, nil
}
