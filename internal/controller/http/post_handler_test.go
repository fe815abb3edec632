package http

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"buddyboost/internal/entity"
	"buddyboost/pkg/apperr"
	"buddyboost/pkg/middleware"
	"buddyboost/pkg/pagination"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newPostRouter(mockUseCase *MockPostUseCase) *gin.Engine {
	handler := NewPostHandler(mockUseCase)
	identity := middleware.Identity{UserID: "user-123"}

	router := setupTestRouter()
	router.POST("/posts", func(c *gin.Context) { handler.CreatePost(c, identity) })
	router.POST("/posts/images", func(c *gin.Context) { handler.UploadImage(c, identity) })
	router.GET("/posts", handler.ListPosts)
	router.GET("/posts/user/:userId", handler.GetUserPosts)
	router.GET("/posts/:id", handler.GetPost)
	router.PUT("/posts/:id", func(c *gin.Context) { handler.UpdatePost(c, identity) })
	router.DELETE("/posts/:id", func(c *gin.Context) { handler.DeletePost(c, identity) })
	return router
}

func testPost() *entity.Post {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return &entity.Post{
		ID:            "post-123",
		UserID:        "user-123",
		Content:       "Hello",
		CreatedAt:     now,
		UpdatedAt:     now,
		ReactionCount: 2,
		Author:        &entity.Author{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"},
	}
}

func TestCreatePost_Success(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	router := newPostRouter(mockUseCase)

	post := testPost()
	post.ReactionCount = 0
	post.Author = nil
	mockUseCase.On("CreatePost", mock.Anything, "user-123", "Hello", (*string)(nil)).Return(post, nil)

	w, body := performRequest(t, router, http.MethodPost, "/posts", gin.H{"content": "Hello"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Post created successfully", body["message"])
	created := body["post"].(map[string]interface{})
	assert.Equal(t, "post-123", created["id"])
	assert.Equal(t, "user-123", created["userId"])
	assert.Nil(t, created["imageUrl"])
	mockUseCase.AssertExpectations(t)
}

func TestCreatePost_MissingContent(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	router := newPostRouter(mockUseCase)

	w, body := performRequest(t, router, http.MethodPost, "/posts", gin.H{"image_url": "http://img.test/a.png"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Post content is required", body["message"])
	mockUseCase.AssertNotCalled(t, "CreatePost", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreatePost_BlankContentRejectedByUseCase(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	router := newPostRouter(mockUseCase)

	mockUseCase.On("CreatePost", mock.Anything, "user-123", "   ", (*string)(nil)).
		Return(nil, apperr.Validation("Post content is required"))

	w, body := performRequest(t, router, http.MethodPost, "/posts", gin.H{"content": "   "})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Post content is required", body["message"])
}

func TestListPosts_Pagination(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	router := newPostRouter(mockUseCase)

	mockUseCase.On("ListPosts", mock.Anything, pagination.Params{Page: 2, Limit: 5}).
		Return(&entity.PostPage{Posts: []*entity.Post{testPost()}, Total: 12}, nil)

	w, body := performRequest(t, router, http.MethodGet, "/posts?page=2&limit=5", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	posts := body["posts"].([]interface{})
	require.Len(t, posts, 1)
	first := posts[0].(map[string]interface{})
	assert.Equal(t, float64(2), first["reaction_count"])
	assert.Equal(t, "Ada", first["author"].(map[string]interface{})["firstName"])

	meta := body["pagination"].(map[string]interface{})
	assert.Equal(t, float64(2), meta["currentPage"])
	assert.Equal(t, float64(3), meta["totalPages"])
	assert.Equal(t, float64(12), meta["totalPosts"])
	assert.Equal(t, float64(12), meta["totalCount"])
	assert.Equal(t, float64(5), meta["limit"])
}

func TestListPosts_InvalidQueryUsesDefaults(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	router := newPostRouter(mockUseCase)

	mockUseCase.On("ListPosts", mock.Anything, pagination.Params{Page: 1, Limit: 10}).
		Return(&entity.PostPage{Posts: []*entity.Post{}, Total: 0}, nil)

	w, body := performRequest(t, router, http.MethodGet, "/posts?page=abc&limit=-3", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, body["posts"])
	assert.Equal(t, float64(0), body["pagination"].(map[string]interface{})["totalPages"])
	mockUseCase.AssertExpectations(t)
}

func TestListPosts_StoreFailure(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	router := newPostRouter(mockUseCase)

	mockUseCase.On("ListPosts", mock.Anything, mock.Anything).Return(nil, apperr.Internal("", assert.AnError))

	w, body := performRequest(t, router, http.MethodGet, "/posts", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Server error fetching posts", body["message"])
}

func TestGetPost_NotFound(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	router := newPostRouter(mockUseCase)

	mockUseCase.On("GetPost", mock.Anything, "missing").Return(nil, apperr.NotFound("Post not found"))

	w, body := performRequest(t, router, http.MethodGet, "/posts/missing", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Post not found", body["message"])
}

func TestGetUserPosts(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	router := newPostRouter(mockUseCase)

	mockUseCase.On("GetUserPosts", mock.Anything, "user-9", pagination.Params{Page: 1, Limit: 10}).
		Return(&entity.PostPage{Posts: []*entity.Post{testPost()}, Total: 1}, nil)

	w, body := performRequest(t, router, http.MethodGet, "/posts/user/user-9", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["posts"], 1)
	assert.Equal(t, float64(1), body["pagination"].(map[string]interface{})["totalPosts"])
}

func TestUpdatePost_Success(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	router := newPostRouter(mockUseCase)

	updated := testPost()
	updated.Content = "Edited"
	mockUseCase.On("UpdatePost", mock.Anything, "user-123", "post-123", "Edited", (*string)(nil)).Return(updated, nil)

	w, body := performRequest(t, router, http.MethodPut, "/posts/post-123", gin.H{"content": "Edited"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Post updated successfully", body["message"])
	assert.Equal(t, "Edited", body["post"].(map[string]interface{})["content"])
}

func TestUpdatePost_NotOwner(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	router := newPostRouter(mockUseCase)

	mockUseCase.On("UpdatePost", mock.Anything, "user-123", "post-9", "Edited", (*string)(nil)).
		Return(nil, apperr.Forbidden("Unauthorized to update this post"))

	w, body := performRequest(t, router, http.MethodPut, "/posts/post-9", gin.H{"content": "Edited"})

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Unauthorized to update this post", body["message"])
}

func TestDeletePost(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	router := newPostRouter(mockUseCase)

	mockUseCase.On("DeletePost", mock.Anything, "user-123", "post-123").Return(nil)

	w, body := performRequest(t, router, http.MethodDelete, "/posts/post-123", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Post deleted successfully", body["message"])
	mockUseCase.AssertExpectations(t)
}

func TestUploadImage_Success(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	router := newPostRouter(mockUseCase)

	mockUseCase.On("UploadImage", mock.Anything, "user-123", "cat.png", "image/png", mock.Anything).
		Return("https://bucket.test/posts/user-123/cat.png", nil)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("image", "cat.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("\x89PNG\r\n\x1a\n"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/posts/images", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "https://bucket.test/posts/user-123/cat.png", body["image_url"])
	mockUseCase.AssertExpectations(t)
}

func TestUploadImage_MissingFile(t *testing.T) {
	router := newPostRouter(new(MockPostUseCase))

	w, body := performRequest(t, router, http.MethodPost, "/posts/images", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Image file is required", body["message"])
}
