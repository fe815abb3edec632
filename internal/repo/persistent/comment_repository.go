package persistent

import (
	"context"
	"time"

	"buddyboost/internal/entity"
	"buddyboost/internal/model"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	GetByID(ctx context.Context, id string) (*entity.Comment, error)
	ListByPost(ctx context.Context, postID string, limit, offset int) ([]*entity.Comment, int64, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Comment, int64, error)
	Update(ctx context.Context, id, content string, authorize Authorize) (*entity.Comment, error)
	Delete(ctx context.Context, id string, authorize Authorize) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create inserts the comment if its post exists, else gorm.ErrRecordNotFound.
func (r *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	commentModel := ToCommentModel(comment)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := postExists(tx, comment.PostID); err != nil {
			return err
		}
		return tx.Create(commentModel).Error
	})
	if err != nil {
		return err
	}
	*comment = *ToCommentEntity(commentModel)
	return nil
}

func postExists(tx *gorm.DB, postID string) error {
	if !isUUID(postID) {
		return gorm.ErrRecordNotFound
	}
	var post model.PostModel
	return tx.Select("id").Where("id = ?", postID).Take(&post).Error
}

func commentQuery(db *gorm.DB) *gorm.DB {
	return db.Table("comments").
		Select(`comments.id, comments.post_id, comments.user_id, comments.content, comments.created_at, comments.updated_at,
			users.first_name, users.last_name, users.email`).
		Joins("JOIN users ON users.id = comments.user_id")
}

func (r *commentRepository) GetByID(ctx context.Context, id string) (*entity.Comment, error) {
	if !isUUID(id) {
		return nil, gorm.ErrRecordNotFound
	}
	var row commentRow
	if err := commentQuery(r.db.WithContext(ctx)).Where("comments.id = ?", id).Take(&row).Error; err != nil {
		return nil, err
	}
	return row.toEntity(), nil
}

// ListByPost returns gorm.ErrRecordNotFound when the post does not exist.
func (r *commentRepository) ListByPost(ctx context.Context, postID string, limit, offset int) ([]*entity.Comment, int64, error) {
	if err := postExists(r.db.WithContext(ctx), postID); err != nil {
		return nil, 0, err
	}
	return r.list(ctx, "post_id", postID, limit, offset)
}

func (r *commentRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Comment, int64, error) {
	return r.list(ctx, "user_id", userID, limit, offset)
}

func (r *commentRepository) list(ctx context.Context, column, value string, limit, offset int) ([]*entity.Comment, int64, error) {
	if !isUUID(value) {
		return []*entity.Comment{}, 0, nil
	}
	db := r.db.WithContext(ctx)

	var total int64
	if err := db.Model(&model.CommentModel{}).Where(column+" = ?", value).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []commentRow
	err := commentQuery(db).
		Where("comments."+column+" = ?", value).
		Order("comments.created_at DESC, comments.id DESC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	comments := make([]*entity.Comment, len(rows))
	for i := range rows {
		comments[i] = rows[i].toEntity()
	}
	return comments, total, nil
}

func (r *commentRepository) Update(ctx context.Context, id, content string, authorize Authorize) (*entity.Comment, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ownerID, err := lockOwner(tx, &model.CommentModel{}, id)
		if err != nil {
			return err
		}
		if err := authorize(ownerID); err != nil {
			return err
		}

		result := tx.Model(&model.CommentModel{}).
			Where("id = ? AND user_id = ?", id, ownerID).
			Updates(map[string]interface{}{
				"content":    content,
				"updated_at": time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

func (r *commentRepository) Delete(ctx context.Context, id string, authorize Authorize) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ownerID, err := lockOwner(tx, &model.CommentModel{}, id)
		if err != nil {
			return err
		}
		if err := authorize(ownerID); err != nil {
			return err
		}

		return runSteps(tx, []cascadeStep{
			{"delete comment reactions", func(tx *gorm.DB) error {
				return tx.Where("comment_id = ?", id).Delete(&model.ReactionModel{}).Error
			}},
			{"delete comment", func(tx *gorm.DB) error {
				result := tx.Where("id = ? AND user_id = ?", id, ownerID).Delete(&model.CommentModel{})
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
