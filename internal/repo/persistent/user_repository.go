package persistent

import (
	"context"
	"time"

	"buddyboost/internal/entity"
	"buddyboost/internal/model"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
	DeleteAccount(ctx context.Context, id string) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	userModel := ToUserModel(user)
	if err := r.db.WithContext(ctx).Create(userModel).Error; err != nil {
		return err
	}
	*user = *ToUserEntity(userModel)
	return nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userModel model.UserModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).Take(&userModel).Error; err != nil {
		return nil, err
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if !isUUID(id) {
		return nil, gorm.ErrRecordNotFound
	}
	var userModel model.UserModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&userModel).Error; err != nil {
		return nil, err
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&model.UserModel{}).Where("id = ?", id).Update("last_login", at).Error
}

// DeleteAccount removes the user and everything that hangs off them in one
// transaction: reactions on their posts, their own reactions, comments on
// their posts, their own comments, their posts and finally the user row.
func (r *userRepository) DeleteAccount(ctx context.Context, id string) error {
	if !isUUID(id) {
		return gorm.ErrRecordNotFound
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		postsOfUser := tx.Model(&model.PostModel{}).Select("id").Where("user_id = ?", id)
		commentsOnPosts := tx.Model(&model.CommentModel{}).Select("id").Where("post_id IN (?)", postsOfUser)
		commentsOfUser := tx.Model(&model.CommentModel{}).Select("id").Where("user_id = ?", id)

		return runSteps(tx, []cascadeStep{
			{"delete reactions on user posts", func(tx *gorm.DB) error {
				return tx.Where("post_id IN (?) OR comment_id IN (?)", postsOfUser, commentsOnPosts).
					Delete(&model.ReactionModel{}).Error
			}},
			{"delete user reactions", func(tx *gorm.DB) error {
				return tx.Where("user_id = ? OR comment_id IN (?)", id, commentsOfUser).
					Delete(&model.ReactionModel{}).Error
			}},
			{"delete comments on user posts", func(tx *gorm.DB) error {
				return tx.Where("post_id IN (?)", postsOfUser).Delete(&model.CommentModel{}).Error
			}},
			{"delete user comments", func(tx *gorm.DB) error {
				return tx.Where("user_id = ?", id).Delete(&model.CommentModel{}).Error
			}},
			{"delete user posts", func(tx *gorm.DB) error {
				return tx.Where("user_id = ?", id).Delete(&model.PostModel{}).Error
			}},
			{"delete user", func(tx *gorm.DB) error {
				result := tx.Where("id = ?", id).Delete(&model.UserModel{})
				if result.Error != nil {
					return result.Error
				}
				if result.RowsAffected == 0 {
					return gorm.ErrRecordNotFound
				}
				return nil
			}},
		})
	})
}
