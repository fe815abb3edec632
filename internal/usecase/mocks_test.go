package usecase

import (
	"context"
	"io"
	"strings"
	"time"

	"buddyboost/internal/entity"
	"buddyboost/internal/repo/persistent"
	"buddyboost/pkg/queue"

	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil && user.ID == "" {
		user.ID = "user-new"
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteAccount(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *entity.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostRepository) List(ctx context.Context, limit, offset int) ([]*entity.Post, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.Post), args.Get(1).(int64), args.Error(2)
}

func (m *MockPostRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Post, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.Post), args.Get(1).(int64), args.Error(2)
}

func (m *MockPostRepository) OwnerOf(ctx context.Context, id string) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockPostRepository) Update(ctx context.Context, id, content string, imageURL *string, authorize persistent.Authorize) (*entity.Post, error) {
	args := m.Called(ctx, id, content, imageURL, authorize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostRepository) Delete(ctx context.Context, id string, authorize persistent.Authorize) error {
	args := m.Called(ctx, id, authorize)
	return args.Error(0)
}

type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	args := m.Called(ctx, comment)
	if args.Error(0) == nil && comment.ID == "" {
		comment.ID = "comment-new"
	}
	return args.Error(0)
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id string) (*entity.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListByPost(ctx context.Context, postID string, limit, offset int) ([]*entity.Comment, int64, error) {
	args := m.Called(ctx, postID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Comment, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentRepository) Update(ctx context.Context, id, content string, authorize persistent.Authorize) (*entity.Comment, error) {
	args := m.Called(ctx, id, content, authorize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Comment), args.Error(1)
}

func (m *MockCommentRepository) Delete(ctx context.Context, id string, authorize persistent.Authorize) error {
	args := m.Called(ctx, id, authorize)
	return args.Error(0)
}

type MockReactionRepository struct {
	mock.Mock
}

func (m *MockReactionRepository) Toggle(ctx context.Context, userID, postID, reactionType string) (*entity.ReactionResult, error) {
	args := m.Called(ctx, userID, postID, reactionType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ReactionResult), args.Error(1)
}

func (m *MockReactionRepository) Summary(ctx context.Context, postID string) (*entity.ReactionSummary, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ReactionSummary), args.Error(1)
}

// recordingPublisher collects published events on a channel.
type recordingPublisher struct {
	events chan queue.Event
}

func newRecordingPublisher() *recordingPublisher {
	return &recordingPublisher{events: make(chan queue.Event, 8)}
}

func (p *recordingPublisher) PublishNotification(ctx context.Context, event queue.Event) error {
	p.events <- event
	return nil
}

type MockImageStore struct {
	mock.Mock
}

func (m *MockImageStore) UploadFile(ctx context.Context, key string, file io.Reader, contentType string) (string, error) {
	args := m.Called(ctx, key, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockImageStore) DeleteFile(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// ObjectKey treats URLs under https://bucket.test/ as stored objects.
func (m *MockImageStore) ObjectKey(url string) (string, bool) {
	const base = "https://bucket.test/"
	if !strings.HasPrefix(url, base) || len(url) == len(base) {
		return "", false
	}
	return strings.TrimPrefix(url, base), true
}

var (
	_ persistent.UserRepository     = (*MockUserRepository)(nil)
	_ persistent.PostRepository     = (*MockPostRepository)(nil)
	_ persistent.CommentRepository  = (*MockCommentRepository)(nil)
	_ persistent.ReactionRepository = (*MockReactionRepository)(nil)
	_ queue.Publisher               = (*recordingPublisher)(nil)
	_ ImageStore                    = (*MockImageStore)(nil)
)
