package http

import (
	"mime"
	"net/http"
	"path/filepath"

	"buddyboost/internal/usecase"
	"buddyboost/pkg/middleware"
	"buddyboost/pkg/pagination"
	"buddyboost/pkg/response"

	"github.com/gin-gonic/gin"
)

const maxImageSize = 5 << 20

type PostHandler struct {
	postUseCase usecase.PostUseCase
}

func NewPostHandler(postUseCase usecase.PostUseCase) *PostHandler {
	return &PostHandler{
		postUseCase: postUseCase,
	}
}

type PostRequest struct {
	Content  string  `json:"content" binding:"required"`
	ImageURL *string `json:"image_url" binding:"omitempty,max=2048"`
}

func pageFromQuery(c *gin.Context) pagination.Params {
	return pagination.FromQuery(c.Query("page"), c.Query("limit"))
}

// CreatePost godoc
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body PostRequest true "Post content and optional image URL"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}
// @Router       /posts [post]
func (h *PostHandler) CreatePost(c *gin.Context, identity middleware.Identity) {
	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, bindMessage(err, "Post content is required"))
		return
	}

	post, err := h.postUseCase.CreatePost(c.Request.Context(), identity.UserID, req.Content, req.ImageURL)
	if err != nil {
		response.Error(c, err, "Server error creating post")
		return
	}

	response.JSON(c, http.StatusCreated, "Post created successfully", gin.H{"post": post})
}

// ListPosts godoc
// @Summary      List posts
// @Description  Newest first, with author and reaction count
// @Tags         posts
// @Produce      json
// @Param        page  query int false "Page number" default(1)
// @Param        limit query int false "Page size" default(10)
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]interface{}
// @Router       /posts [get]
func (h *PostHandler) ListPosts(c *gin.Context) {
	page := pageFromQuery(c)

	result, err := h.postUseCase.ListPosts(c.Request.Context(), page)
	if err != nil {
		response.Error(c, err, "Server error fetching posts")
		return
	}

	response.JSON(c, http.StatusOK, "", gin.H{
		"posts":      result.Posts,
		"pagination": page.Meta(result.Total).Block("totalPosts"),
	})
}

// GetPost godoc
// @Summary      Get a post
// @Tags         posts
// @Produce      json
// @Param        id path string true "Post ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /posts/{id} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	post, err := h.postUseCase.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err, "Server error fetching post")
		return
	}

	response.JSON(c, http.StatusOK, "", gin.H{"post": post})
}

// UpdatePost godoc
// @Summary      Update a post
// @Description  Only the author may update; an omitted image_url clears the image
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path string      true "Post ID"
// @Param        request body PostRequest true "New content"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /posts/{id} [put]
func (h *PostHandler) UpdatePost(c *gin.Context, identity middleware.Identity) {
	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, bindMessage(err, "Post content is required"))
		return
	}

	post, err := h.postUseCase.UpdatePost(c.Request.Context(), identity.UserID, c.Param("id"), req.Content, req.ImageURL)
	if err != nil {
		response.Error(c, err, "Server error updating post")
		return
	}

	response.JSON(c, http.StatusOK, "Post updated successfully", gin.H{"post": post})
}

// DeletePost godoc
// @Summary      Delete a post
// @Description  Only the author may delete; comments and reactions go with it
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /posts/{id} [delete]
func (h *PostHandler) DeletePost(c *gin.Context, identity middleware.Identity) {
	if err := h.postUseCase.DeletePost(c.Request.Context(), identity.UserID, c.Param("id")); err != nil {
		response.Error(c, err, "Server error deleting post")
		return
	}

	response.JSON(c, http.StatusOK, "Post deleted successfully", nil)
}

// GetUserPosts godoc
// @Summary      List posts by user
// @Tags         posts
// @Produce      json
// @Param        userId path  string true  "Author ID"
// @Param        page   query int    false "Page number" default(1)
// @Param        limit  query int    false "Page size" default(10)
// @Success      200  {object}  map[string]interface{}
// @Router       /posts/user/{userId} [get]
func (h *PostHandler) GetUserPosts(c *gin.Context) {
	page := pageFromQuery(c)

	result, err := h.postUseCase.GetUserPosts(c.Request.Context(), c.Param("userId"), page)
	if err != nil {
		response.Error(c, err, "Server error fetching user posts")
		return
	}

	response.JSON(c, http.StatusOK, "", gin.H{
		"posts":      result.Posts,
		"pagination": page.Meta(result.Total).Block("totalPosts"),
	})
}

// UploadImage godoc
// @Summary      Upload a post image
// @Description  Stores the image in object storage and returns the URL to pass as image_url
// @Tags         posts
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        image formData file true "JPEG, PNG, GIF or WebP image up to 5MB"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]interface{}
// @Router       /posts/images [post]
func (h *PostHandler) UploadImage(c *gin.Context, identity middleware.Identity) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImageSize+(1<<20))

	fileHeader, err := c.FormFile("image")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "Image file is required")
		return
	}
	if fileHeader.Size > maxImageSize {
		response.Fail(c, http.StatusBadRequest, "Image must be at most 5MB")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = mime.TypeByExtension(filepath.Ext(fileHeader.Filename))
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "Failed to read image")
		return
	}
	defer file.Close()

	url, err := h.postUseCase.UploadImage(c.Request.Context(), identity.UserID, fileHeader.Filename, contentType, file)
	if err != nil {
		response.Error(c, err, "Failed to upload image")
		return
	}

	response.JSON(c, http.StatusCreated, "Image uploaded successfully", gin.H{"image_url": url})
}
