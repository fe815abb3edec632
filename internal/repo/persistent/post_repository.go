package persistent

import (
	"context"
	"time"

	"buddyboost/internal/entity"
	"buddyboost/internal/model"

	"gorm.io/gorm"
)

type PostRepository interface {
	Create(ctx context.Context, post *entity.Post) error
	GetByID(ctx context.Context, id string) (*entity.Post, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Post, int64, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Post, int64, error)
	OwnerOf(ctx context.Context, id string) (string, error)
	Update(ctx context.Context, id, content string, imageURL *string, authorize Authorize) (*entity.Post, error)
	Delete(ctx context.Context, id string, authorize Authorize) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *entity.Post) error {
	postModel := ToPostModel(post)
	if err := r.db.WithContext(ctx).Create(postModel).Error; err != nil {
		return err
	}
	*post = *ToPostEntity(postModel)
	return nil
}

// listQuery selects posts joined with their author and the count of
// post-level reactions.
func listQuery(db *gorm.DB) *gorm.DB {
	return db.Table("posts").
		Select(`posts.id, posts.user_id, posts.content, posts.image_url, posts.created_at, posts.updated_at,
			users.first_name, users.last_name, users.email,
			COUNT(reactions.id) AS reaction_count`).
		Joins("JOIN users ON users.id = posts.user_id").
		Joins("LEFT JOIN reactions ON reactions.post_id = posts.id AND reactions.comment_id IS NULL").
		Group("posts.id, users.id")
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	if !isUUID(id) {
		return nil, gorm.ErrRecordNotFound
	}
	var row postRow
	if err := listQuery(r.db.WithContext(ctx)).Where("posts.id = ?", id).Take(&row).Error; err != nil {
		return nil, err
	}
	return row.toEntity(), nil
}

func (r *postRepository) List(ctx context.Context, limit, offset int) ([]*entity.Post, int64, error) {
	return r.list(ctx, "", limit, offset)
}

func (r *postRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Post, int64, error) {
	return r.list(ctx, userID, limit, offset)
}

func (r *postRepository) list(ctx context.Context, userID string, limit, offset int) ([]*entity.Post, int64, error) {
	if userID != "" && !isUUID(userID) {
		return []*entity.Post{}, 0, nil
	}
	db := r.db.WithContext(ctx)

	countQuery := db.Model(&model.PostModel{})
	query := listQuery(db)
	if userID != "" {
		countQuery = countQuery.Where("user_id = ?", userID)
		query = query.Where("posts.user_id = ?", userID)
	}

	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []postRow
	err := query.
		Order("posts.created_at DESC, posts.id DESC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	posts := make([]*entity.Post, len(rows))
	for i := range rows {
		posts[i] = rows[i].toEntity()
	}
	return posts, total, nil
}

func (r *postRepository) OwnerOf(ctx context.Context, id string) (string, error) {
	if !isUUID(id) {
		return "", gorm.ErrRecordNotFound
	}
	var row struct {
		UserID string
	}
	err := r.db.WithContext(ctx).Model(&model.PostModel{}).Select("user_id").Where("id = ?", id).Take(&row).Error
	return row.UserID, err
}

func (r *postRepository) Update(ctx context.Context, id, content string, imageURL *string, authorize Authorize) (*entity.Post, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ownerID, err := lockOwner(tx, &model.PostModel{}, id)
		if err != nil {
			return err
		}
		if err := authorize(ownerID); err != nil {
			return err
		}

		var image interface{}
		if imageURL != nil {
			image = *imageURL
		}

		result := tx.Model(&model.PostModel{}).
			Where("id = ? AND user_id = ?", id, ownerID).
			Updates(map[string]interface{}{
				"content":    content,
				"image_url":  image,
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

// Delete removes the post together with every comment on it and every
// reaction on the post or on those comments.
func (r *postRepository) Delete(ctx context.Context, id string, authorize Authorize) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ownerID, err := lockOwner(tx, &model.PostModel{}, id)
		if err != nil {
			return err
		}
		if err := authorize(ownerID); err != nil {
			return err
		}

		commentsOfPost := tx.Model(&model.CommentModel{}).Select("id").Where("post_id = ?", id)

		return runSteps(tx, []cascadeStep{
			{"delete comment reactions", func(tx *gorm.DB) error {
				return tx.Where("comment_id IN (?)", commentsOfPost).Delete(&model.ReactionModel{}).Error
			}},
			{"delete post reactions", func(tx *gorm.DB) error {
				return tx.Where("post_id = ?", id).Delete(&model.ReactionModel{}).Error
			}},
			{"delete comments", func(tx *gorm.DB) error {
				return tx.Where("post_id = ?", id).Delete(&model.CommentModel{}).Error
			}},
			{"delete post", func(tx *gorm.DB) error {
				result := tx.Where("id = ? AND user_id = ?", id, ownerID).Delete(&model.PostModel{})
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
