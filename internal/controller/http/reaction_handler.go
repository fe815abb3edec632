package http

import (
	"net/http"

	"buddyboost/internal/entity"
	"buddyboost/internal/usecase"
	"buddyboost/pkg/middleware"
	"buddyboost/pkg/response"

	"github.com/gin-gonic/gin"
)

type ReactionHandler struct {
	reactionUseCase usecase.ReactionUseCase
}

func NewReactionHandler(reactionUseCase usecase.ReactionUseCase) *ReactionHandler {
	return &ReactionHandler{
		reactionUseCase: reactionUseCase,
	}
}

type ReactRequest struct {
	PostID       string `json:"post_id" binding:"required"`
	ReactionType string `json:"reaction_type" binding:"required,max=32"`
}

// React godoc
// @Summary      Toggle a reaction
// @Description  Adds the reaction, removes it when the same type is sent again, or switches it to the new type
// @Tags         reactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body ReactRequest true "Post and reaction type"
// @Success      200  {object}  map[string]interface{}
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /reactions [post]
func (h *ReactionHandler) React(c *gin.Context, identity middleware.Identity) {
	var req ReactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, bindMessage(err, "Missing fields"))
		return
	}

	result, err := h.reactionUseCase.React(c.Request.Context(), identity.UserID, req.PostID, req.ReactionType)
	if err != nil {
		response.Error(c, err, "Server error")
		return
	}

	switch result.Action {
	case entity.ReactionAdded:
		response.JSON(c, http.StatusCreated, "Reaction added", gin.H{"reaction": result.Reaction})
	case entity.ReactionUpdated:
		response.JSON(c, http.StatusOK, "Reaction updated", gin.H{"reaction": result.Reaction})
	default:
		response.JSON(c, http.StatusOK, "Reaction removed", gin.H{"removed": true})
	}
}

// GetPostReactions godoc
// @Summary      Reaction counts for a post
// @Tags         reactions
// @Produce      json
// @Param        postId path string true "Post ID"
// @Success      200  {object}  entity.ReactionSummary
// @Failure      404  {object}  map[string]interface{}
// @Router       /reactions/post/{postId} [get]
func (h *ReactionHandler) GetPostReactions(c *gin.Context) {
	summary, err := h.reactionUseCase.GetSummary(c.Request.Context(), c.Param("postId"))
	if err != nil {
		response.Error(c, err, "Server error fetching reactions")
		return
	}

	response.JSON(c, http.StatusOK, "", gin.H{"reactions": summary})
}
