package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"buddyboost/internal/entity"
	"buddyboost/internal/repo/persistent"
	"buddyboost/pkg/apperr"
	"buddyboost/pkg/jwt"
	"buddyboost/pkg/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const invalidCredentials = "Invalid email or password"

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

type UserUseCase interface {
	Register(ctx context.Context, input RegisterInput) (*entity.User, string, error)
	Login(ctx context.Context, email, password string) (*entity.User, string, error)
	GetProfile(ctx context.Context, userID string) (*entity.User, error)
	DeleteAccount(ctx context.Context, userID string) error
}

type userUseCase struct {
	userRepo   persistent.UserRepository
	jwtService *jwt.Service
	logger     *logger.Logger
}

func NewUserUseCase(userRepo persistent.UserRepository, jwtService *jwt.Service, logger *logger.Logger) UserUseCase {
	return &userUseCase{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// NormalizeEmail is applied on every write and lookup so addresses compare case-insensitively.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (uc *userUseCase) Register(ctx context.Context, input RegisterInput) (*entity.User, string, error) {
	email := NormalizeEmail(input.Email)
	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)
	if email == "" || input.Password == "" || firstName == "" || lastName == "" {
		return nil, "", apperr.Validation("All fields are required")
	}

	_, err := uc.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, "", apperr.Conflict("User with this email already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		uc.logger.Error("Failed to look up user: %v", err)
		return nil, "", storeError(err, "", "Server error during registration")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		uc.logger.Error("Failed to hash password: %v", err)
		return nil, "", apperr.Internal("Server error during registration", err)
	}

	user := &entity.User{
		Email:        email,
		PasswordHash: string(hashedPassword),
		FirstName:    firstName,
		LastName:     lastName,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", apperr.Conflict("User with this email already exists")
		}
		uc.logger.Error("Failed to create user: %v", err)
		return nil, "", storeError(err, "", "Server error during registration")
	}

	token, err := uc.jwtService.GenerateToken(user.ID, user.Email)
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return nil, "", apperr.Internal("Server error during registration", err)
	}

	user.PasswordHash = ""
	return user, token, nil
}

func (uc *userUseCase) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", apperr.Validation("Email and password are required")
	}

	user, err := uc.userRepo.GetByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", apperr.Unauthenticated(invalidCredentials)
	}
	if err != nil {
		uc.logger.Error("Failed to look up user: %v", err)
		return nil, "", storeError(err, "", "Server error during login")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperr.Unauthenticated(invalidCredentials)
	}

	token, err := uc.jwtService.GenerateToken(user.ID, user.Email)
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return nil, "", apperr.Internal("Server error during login", err)
	}

	now := time.Now()
	if err := uc.userRepo.TouchLastLogin(ctx, user.ID, now); err != nil {
		uc.logger.Warn("Failed to update last login for user %s: %v", user.ID, err)
	} else {
		user.LastLogin = &now
	}

	user.PasswordHash = ""
	return user, token, nil
}

func (uc *userUseCase) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, storeError(err, "User not found", "Server error fetching profile")
	}
	user.PasswordHash = ""
	return user, nil
}

func (uc *userUseCase) DeleteAccount(ctx context.Context, userID string) error {
	if err := uc.userRepo.DeleteAccount(ctx, userID); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			uc.logger.Error("Failed to delete account %s: %v", userID, err)
		}
		return storeError(err, "User not found", "Server error deleting account")
	}
	uc.logger.Info("Deleted account %s", userID)
	return nil
}
