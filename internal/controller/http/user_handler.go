package http

import (
	"net/http"

	"buddyboost/internal/entity"
	"buddyboost/internal/usecase"
	"buddyboost/pkg/middleware"
	"buddyboost/pkg/response"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userUseCase usecase.UserUseCase
}

func NewUserHandler(userUseCase usecase.UserUseCase) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
	}
}

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"firstName" binding:"required,max=100"`
	LastName  string `json:"lastName" binding:"required,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func userSummary(user *entity.User) gin.H {
	return gin.H{
		"userId":    user.ID,
		"email":     user.Email,
		"firstName": user.FirstName,
		"lastName":  user.LastName,
	}
}

// Register godoc
// @Summary      Register a new user
// @Description  Create an account and return a bearer token valid for 24 hours
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration data"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]interface{}
// @Router       /users/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, bindMessage(err, "All fields are required"))
		return
	}

	user, token, err := h.userUseCase.Register(c.Request.Context(), usecase.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		response.Error(c, err, "Server error during registration")
		return
	}

	response.JSON(c, http.StatusCreated, "User registered successfully", gin.H{
		"user":  userSummary(user),
		"token": token,
	})
}

// Login godoc
// @Summary      Login
// @Description  Authenticate with email and password
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]interface{}
// @Router       /users/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, bindMessage(err, "Email and password are required"))
		return
	}

	user, token, err := h.userUseCase.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(c, err, "Server error during login")
		return
	}

	response.JSON(c, http.StatusOK, "Login successful", gin.H{
		"user":  userSummary(user),
		"token": token,
	})
}

// Logout godoc
// @Summary      Logout
// @Description  Tokens are stateless; the client discards its token
// @Tags         users
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /users/logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	response.JSON(c, http.StatusOK, "Logout successful", nil)
}

// Profile godoc
// @Summary      Current user profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /users/profile [get]
func (h *UserHandler) Profile(c *gin.Context, identity middleware.Identity) {
	user, err := h.userUseCase.GetProfile(c.Request.Context(), identity.UserID)
	if err != nil {
		response.Error(c, err, "Server error fetching profile")
		return
	}

	response.JSON(c, http.StatusOK, "", gin.H{
		"user": gin.H{
			"user_id":   user.ID,
			"email":     user.Email,
			"firstName": user.FirstName,
			"lastName":  user.LastName,
			"createdAt": user.CreatedAt,
			"lastLogin": user.LastLogin,
		},
	})
}

// DeleteAccount godoc
// @Summary      Delete account
// @Description  Delete the caller with all their posts, comments and reactions in one transaction
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]interface{}
// @Router       /users/delete [delete]
func (h *UserHandler) DeleteAccount(c *gin.Context, identity middleware.Identity) {
	if err := h.userUseCase.DeleteAccount(c.Request.Context(), identity.UserID); err != nil {
		response.Error(c, err, "Server error deleting account")
		return
	}

	response.JSON(c, http.StatusOK, "Account deleted successfully", nil)
}
