package persistent

import (
	"time"

	"buddyboost/internal/entity"
	"buddyboost/internal/model"
)

func ToUserEntity(m *model.UserModel) *entity.User {
	if m == nil {
		return nil
	}

	return &entity.User{
		ID:           m.ID,
		Email:        m.Email,
		PasswordHash: m.Password,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		CreatedAt:    m.CreatedAt,
		LastLogin:    m.LastLogin,
	}
}

func ToUserModel(e *entity.User) *model.UserModel {
	if e == nil {
		return nil
	}

	return &model.UserModel{
		ID:        e.ID,
		Email:     e.Email,
		Password:  e.PasswordHash,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		CreatedAt: e.CreatedAt,
		LastLogin: e.LastLogin,
	}
}

func ToPostEntity(m *model.PostModel) *entity.Post {
	if m == nil {
		return nil
	}

	return &entity.Post{
		ID:        m.ID,
		UserID:    m.UserID,
		Content:   m.Content,
		ImageURL:  m.ImageURL,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToPostModel(e *entity.Post) *model.PostModel {
	if e == nil {
		return nil
	}

	return &model.PostModel{
		ID:        e.ID,
		UserID:    e.UserID,
		Content:   e.Content,
		ImageURL:  e.ImageURL,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func ToCommentEntity(m *model.CommentModel) *entity.Comment {
	if m == nil {
		return nil
	}

	return &entity.Comment{
		ID:        m.ID,
		PostID:    m.PostID,
		UserID:    m.UserID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToCommentModel(e *entity.Comment) *model.CommentModel {
	if e == nil {
		return nil
	}

	return &model.CommentModel{
		ID:        e.ID,
		PostID:    e.PostID,
		UserID:    e.UserID,
		Content:   e.Content,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func ToReactionEntity(m *model.ReactionModel) *entity.Reaction {
	if m == nil {
		return nil
	}

	return &entity.Reaction{
		ID:           m.ID,
		PostID:       m.PostID,
		CommentID:    m.CommentID,
		UserID:       m.UserID,
		ReactionType: m.ReactionType,
		CreatedAt:    m.CreatedAt,
	}
}

// postRow is one line of the post listing query: the post, its author and
// the number of post-level reactions.
type postRow struct {
	ID            string
	UserID        string
	Content       string
	ImageURL      *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	FirstName     string
	LastName      string
	Email         string
	ReactionCount int64
}

func (r *postRow) toEntity() *entity.Post {
	return &entity.Post{
		ID:            r.ID,
		UserID:        r.UserID,
		Content:       r.Content,
		ImageURL:      r.ImageURL,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
		ReactionCount: r.ReactionCount,
		Author: &entity.Author{
			FirstName: r.FirstName,
			LastName:  r.LastName,
			Email:     r.Email,
		},
	}
}

type commentRow struct {
	ID        string
	PostID    string
	UserID    string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
	FirstName string
	LastName  string
	Email     string
}

func (r *commentRow) toEntity() *entity.Comment {
	return &entity.Comment{
		ID:        r.ID,
		PostID:    r.PostID,
		UserID:    r.UserID,
		Content:   r.Content,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
		Author: &entity.Author{
			FirstName: r.FirstName,
			LastName:  r.LastName,
			Email:     r.Email,
		},
	}
}
