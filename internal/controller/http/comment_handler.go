package http

import (
	"net/http"

	"buddyboost/internal/usecase"
	"buddyboost/pkg/middleware"
	"buddyboost/pkg/response"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentUseCase usecase.CommentUseCase
}

func NewCommentHandler(commentUseCase usecase.CommentUseCase) *CommentHandler {
	return &CommentHandler{
		commentUseCase: commentUseCase,
	}
}

type CreateCommentRequest struct {
	PostID  string `json:"post_id" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// CreateComment godoc
// @Summary      Comment on a post
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateCommentRequest true "Target post and text"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /comments [post]
func (h *CommentHandler) CreateComment(c *gin.Context, identity middleware.Identity) {
	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, bindMessage(err, "Post ID and content are required"))
		return
	}

	comment, err := h.commentUseCase.CreateComment(c.Request.Context(), identity.UserID, req.PostID, req.Content)
	if err != nil {
		response.Error(c, err, "Server error creating comment")
		return
	}

	response.JSON(c, http.StatusCreated, "Comment created successfully", gin.H{"comment": comment})
}

// GetPostComments godoc
// @Summary      List comments on a post
// @Tags         comments
// @Produce      json
// @Param        postId path  string true  "Post ID"
// @Param        page   query int    false "Page number" default(1)
// @Param        limit  query int    false "Page size" default(10)
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /comments/post/{postId} [get]
func (h *CommentHandler) GetPostComments(c *gin.Context) {
	page := pageFromQuery(c)

	result, err := h.commentUseCase.GetPostComments(c.Request.Context(), c.Param("postId"), page)
	if err != nil {
		response.Error(c, err, "Server error fetching comments")
		return
	}

	response.JSON(c, http.StatusOK, "", gin.H{
		"comments":   result.Comments,
		"pagination": page.Meta(result.Total).Block("totalComments"),
	})
}

// GetComment godoc
// @Summary      Get a comment
// @Tags         comments
// @Produce      json
// @Param        id path string true "Comment ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /comments/{id} [get]
func (h *CommentHandler) GetComment(c *gin.Context) {
	comment, err := h.commentUseCase.GetComment(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err, "Server error fetching comment")
		return
	}

	response.JSON(c, http.StatusOK, "", gin.H{"comment": comment})
}

// UpdateComment godoc
// @Summary      Update a comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path string               true "Comment ID"
// @Param        request body UpdateCommentRequest true "New text"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /comments/{id} [put]
func (h *CommentHandler) UpdateComment(c *gin.Context, identity middleware.Identity) {
	var req UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, bindMessage(err, "Comment content is required"))
		return
	}

	comment, err := h.commentUseCase.UpdateComment(c.Request.Context(), identity.UserID, c.Param("id"), req.Content)
	if err != nil {
		response.Error(c, err, "Server error updating comment")
		return
	}

	response.JSON(c, http.StatusOK, "Comment updated successfully", gin.H{"comment": comment})
}

// DeleteComment godoc
// @Summary      Delete a comment
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Comment ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /comments/{id} [delete]
func (h *CommentHandler) DeleteComment(c *gin.Context, identity middleware.Identity) {
	if err := h.commentUseCase.DeleteComment(c.Request.Context(), identity.UserID, c.Param("id")); err != nil {
		response.Error(c, err, "Server error deleting comment")
		return
	}

	response.JSON(c, http.StatusOK, "Comment deleted successfully", nil)
}

// GetUserComments godoc
// @Summary      List comments by user
// @Tags         comments
// @Produce      json
// @Param        userId path  string true  "Author ID"
// @Param        page   query int    false "Page number" default(1)
// @Param        limit  query int    false "Page size" default(10)
// @Success      200  {object}  map[string]interface{}
// @Router       /comments/user/{userId} [get]
func (h *CommentHandler) GetUserComments(c *gin.Context) {
	page := pageFromQuery(c)

	result, err := h.commentUseCase.GetUserComments(c.Request.Context(), c.Param("userId"), page)
	if err != nil {
		response.Error(c, err, "Server error fetching user comments")
		return
	}

	response.JSON(c, http.StatusOK, "", gin.H{
		"comments":   result.Comments,
		"pagination": page.Meta(result.Total).Block("totalComments"),
	})
}
