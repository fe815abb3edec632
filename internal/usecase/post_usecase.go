package usecase

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"buddyboost/internal/entity"
	"buddyboost/internal/repo/persistent"
	"buddyboost/pkg/apperr"
	"buddyboost/pkg/logger"
	"buddyboost/pkg/pagination"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Uploader stores an object and returns its public URL.
type Uploader interface {
	UploadFile(ctx context.Context, key string, file io.Reader, contentType string) (string, error)
}

// Deleter removes stored objects. ObjectKey reports the key behind a public
// URL, or false when the URL does not point into the store.
type Deleter interface {
	DeleteFile(ctx context.Context, key string) error
	ObjectKey(url string) (string, bool)
}

// ImageStore is implemented by *s3.Client.
type ImageStore interface {
	Uploader
	Deleter
}

type PostUseCase interface {
	CreatePost(ctx context.Context, userID, content string, imageURL *string) (*entity.Post, error)
	ListPosts(ctx context.Context, page pagination.Params) (*entity.PostPage, error)
	GetPost(ctx context.Context, postID string) (*entity.Post, error)
	UpdatePost(ctx context.Context, actorID, postID, content string, imageURL *string) (*entity.Post, error)
	DeletePost(ctx context.Context, actorID, postID string) error
	GetUserPosts(ctx context.Context, userID string, page pagination.Params) (*entity.PostPage, error)
	UploadImage(ctx context.Context, userID, filename, contentType string, file io.Reader) (string, error)
}

type postUseCase struct {
	postRepo persistent.PostRepository
	images   ImageStore
	cache    reactionSummaryCache
	logger   *logger.Logger
}

// NewPostUseCase accepts a nil image store and a nil redis client; image
// upload is then unavailable and reaction summaries are not cached.
func NewPostUseCase(
	postRepo persistent.PostRepository,
	images ImageStore,
	redisClient *redis.Client,
	logger *logger.Logger,
) PostUseCase {
	return &postUseCase{
		postRepo: postRepo,
		images:   images,
		cache:    reactionSummaryCache{client: redisClient, logger: logger},
		logger:   logger,
	}
}

// normalizeImageURL treats a blank URL as no image.
func normalizeImageURL(imageURL *string) *string {
	if imageURL == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*imageURL)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func (uc *postUseCase) CreatePost(ctx context.Context, userID, content string, imageURL *string) (*entity.Post, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperr.Validation("Post content is required")
	}

	post := &entity.Post{
		UserID:   userID,
		Content:  content,
		ImageURL: normalizeImageURL(imageURL),
	}
	if err := uc.postRepo.Create(ctx, post); err != nil {
		uc.logger.Error("Failed to create post: %v", err)
		return nil, storeError(err, "", "Server error creating post")
	}
	return post, nil
}

func (uc *postUseCase) ListPosts(ctx context.Context, page pagination.Params) (*entity.PostPage, error) {
	posts, total, err := uc.postRepo.List(ctx, page.Limit, page.Offset())
	if err != nil {
		uc.logger.Error("Failed to list posts: %v", err)
		return nil, storeError(err, "", "Server error fetching posts")
	}
	return &entity.PostPage{Posts: posts, Total: total}, nil
}

func (uc *postUseCase) GetPost(ctx context.Context, postID string) (*entity.Post, error) {
	post, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, storeError(err, "Post not found", "Server error fetching post")
	}
	return post, nil
}

func (uc *postUseCase) UpdatePost(ctx context.Context, actorID, postID, content string, imageURL *string) (*entity.Post, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperr.Validation("Post content is required")
	}

	previous := uc.storedImageKey(ctx, postID)
	post, err := uc.postRepo.Update(ctx, postID, content, normalizeImageURL(imageURL), requireOwner(actorID, "update", "post"))
	if err != nil {
		err = storeError(err, "Post not found", "Server error updating post")
		if apperr.KindOf(err) == apperr.KindInternal {
			uc.logger.Error("Failed to update post %s: %v", postID, err)
		}
		return nil, err
	}

	if previous != "" && uc.objectKey(post.ImageURL) != previous {
		uc.removeImage(ctx, previous)
	}
	return post, nil
}

func (uc *postUseCase) DeletePost(ctx context.Context, actorID, postID string) error {
	image := uc.storedImageKey(ctx, postID)
	err := uc.postRepo.Delete(ctx, postID, requireOwner(actorID, "delete", "post"))
	if err != nil {
		err = storeError(err, "Post not found", "Server error deleting post")
		if apperr.KindOf(err) == apperr.KindInternal {
			uc.logger.Error("Failed to delete post %s: %v", postID, err)
		}
		return err
	}

	uc.cache.invalidate(ctx, postID)
	if image != "" {
		uc.removeImage(ctx, image)
	}
	return nil
}

// objectKey returns the store key behind an image URL, or "" when the image
// is absent or hosted elsewhere.
func (uc *postUseCase) objectKey(imageURL *string) string {
	if uc.images == nil || imageURL == nil {
		return ""
	}
	key, ok := uc.images.ObjectKey(*imageURL)
	if !ok {
		return ""
	}
	return key
}

// storedImageKey looks up the current image of a post. Lookup failures are
// left for the following write to report.
func (uc *postUseCase) storedImageKey(ctx context.Context, postID string) string {
	if uc.images == nil {
		return ""
	}
	post, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return ""
	}
	return uc.objectKey(post.ImageURL)
}

// removeImage is best effort; the post change is already committed.
func (uc *postUseCase) removeImage(ctx context.Context, key string) {
	if err := uc.images.DeleteFile(ctx, key); err != nil {
		uc.logger.Warn("Failed to delete image %s: %v", key, err)
	}
}

func (uc *postUseCase) GetUserPosts(ctx context.Context, userID string, page pagination.Params) (*entity.PostPage, error) {
	posts, total, err := uc.postRepo.ListByUser(ctx, userID, page.Limit, page.Offset())
	if err != nil {
		uc.logger.Error("Failed to list posts of user %s: %v", userID, err)
		return nil, storeError(err, "", "Server error fetching user posts")
	}
	return &entity.PostPage{Posts: posts, Total: total}, nil
}

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

func (uc *postUseCase) UploadImage(ctx context.Context, userID, filename, contentType string, file io.Reader) (string, error) {
	if uc.images == nil {
		return "", apperr.Unavailable("Image upload is not configured", nil)
	}

	defaultExt, ok := allowedImageTypes[contentType]
	if !ok {
		return "", apperr.Validation("Only JPEG, PNG, GIF and WebP images are allowed")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = defaultExt
	}

	fileKey := fmt.Sprintf("posts/%s/%s%s", userID, uuid.New().String(), ext)
	url, err := uc.images.UploadFile(ctx, fileKey, file, contentType)
	if err != nil {
		uc.logger.Error("Failed to upload image for user %s: %v", userID, err)
		return "", storeError(err, "", "Failed to upload image")
	}
	return url, nil
}
