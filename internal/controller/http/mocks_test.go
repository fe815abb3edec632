package http

import (
	"context"
	"io"

	"buddyboost/internal/entity"
	"buddyboost/internal/usecase"
	"buddyboost/pkg/pagination"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

// MockUserUseCase is a mock implementation of UserUseCase
type MockUserUseCase struct {
	mock.Mock
}

func (m *MockUserUseCase) Register(ctx context.Context, input usecase.RegisterInput) (*entity.User, string, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*entity.User), args.String(1), args.Error(2)
}

func (m *MockUserUseCase) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*entity.User), args.String(1), args.Error(2)
}

func (m *MockUserUseCase) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserUseCase) DeleteAccount(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockPostUseCase is a mock implementation of PostUseCase
type MockPostUseCase struct {
	mock.Mock
}

func (m *MockPostUseCase) CreatePost(ctx context.Context, userID, content string, imageURL *string) (*entity.Post, error) {
	args := m.Called(ctx, userID, content, imageURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) ListPosts(ctx context.Context, page pagination.Params) (*entity.PostPage, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PostPage), args.Error(1)
}

func (m *MockPostUseCase) GetPost(ctx context.Context, postID string) (*entity.Post, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) UpdatePost(ctx context.Context, actorID, postID, content string, imageURL *string) (*entity.Post, error) {
	args := m.Called(ctx, actorID, postID, content, imageURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) DeletePost(ctx context.Context, actorID, postID string) error {
	args := m.Called(ctx, actorID, postID)
	return args.Error(0)
}

func (m *MockPostUseCase) GetUserPosts(ctx context.Context, userID string, page pagination.Params) (*entity.PostPage, error) {
	args := m.Called(ctx, userID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PostPage), args.Error(1)
}

func (m *MockPostUseCase) UploadImage(ctx context.Context, userID, filename, contentType string, file io.Reader) (string, error) {
	args := m.Called(ctx, userID, filename, contentType, file)
	return args.String(0), args.Error(1)
}

// MockCommentUseCase is a mock implementation of CommentUseCase
type MockCommentUseCase struct {
	mock.Mock
}

func (m *MockCommentUseCase) CreateComment(ctx context.Context, userID, postID, content string) (*entity.Comment, error) {
	args := m.Called(ctx, userID, postID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Comment), args.Error(1)
}

func (m *MockCommentUseCase) GetPostComments(ctx context.Context, postID string, page pagination.Params) (*entity.CommentPage, error) {
	args := m.Called(ctx, postID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CommentPage), args.Error(1)
}

func (m *MockCommentUseCase) GetComment(ctx context.Context, commentID string) (*entity.Comment, error) {
	args := m.Called(ctx, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Comment), args.Error(1)
}

func (m *MockCommentUseCase) UpdateComment(ctx context.Context, actorID, commentID, content string) (*entity.Comment, error) {
	args := m.Called(ctx, actorID, commentID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Comment), args.Error(1)
}

func (m *MockCommentUseCase) DeleteComment(ctx context.Context, actorID, commentID string) error {
	args := m.Called(ctx, actorID, commentID)
	return args.Error(0)
}

func (m *MockCommentUseCase) GetUserComments(ctx context.Context, userID string, page pagination.Params) (*entity.CommentPage, error) {
	args := m.Called(ctx, userID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CommentPage), args.Error(1)
}

// MockReactionUseCase is a mock implementation of ReactionUseCase
type MockReactionUseCase struct {
	mock.Mock
}

func (m *MockReactionUseCase) React(ctx context.Context, userID, postID, reactionType string) (*entity.ReactionResult, error) {
	args := m.Called(ctx, userID, postID, reactionType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ReactionResult), args.Error(1)
}

func (m *MockReactionUseCase) GetSummary(ctx context.Context, postID string) (*entity.ReactionSummary, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ReactionSummary), args.Error(1)
}

var (
	_ usecase.UserUseCase     = (*MockUserUseCase)(nil)
	_ usecase.PostUseCase     = (*MockPostUseCase)(nil)
	_ usecase.CommentUseCase  = (*MockCommentUseCase)(nil)
	_ usecase.ReactionUseCase = (*MockReactionUseCase)(nil)
)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	RegisterValidation()
	return gin.New()
}
