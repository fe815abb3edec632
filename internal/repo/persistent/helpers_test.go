package persistent

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"buddyboost/internal/model"
	"buddyboost/pkg/database"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var errNotOwner = errors.New("not owner")

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), database.Options())
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// :memory: databases live per connection.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(model.All()...))
	return db
}

func allowOwner(actorID string) Authorize {
	return func(ownerID string) error {
		if ownerID != actorID {
			return errNotOwner
		}
		return nil
	}
}

func seedUser(t *testing.T, db *gorm.DB, email string) *model.UserModel {
	t.Helper()
	user := &model.UserModel{Email: email, Password: "hash", FirstName: "First", LastName: "Last"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedPost(t *testing.T, db *gorm.DB, userID, content string) *model.PostModel {
	t.Helper()
	post := &model.PostModel{UserID: userID, Content: content}
	require.NoError(t, db.Create(post).Error)
	return post
}

func seedComment(t *testing.T, db *gorm.DB, postID, userID string) *model.CommentModel {
	t.Helper()
	comment := &model.CommentModel{PostID: postID, UserID: userID, Content: "nice"}
	require.NoError(t, db.Create(comment).Error)
	return comment
}

func seedReaction(t *testing.T, db *gorm.DB, postID, userID string, commentID *string) *model.ReactionModel {
	t.Helper()
	reaction := &model.ReactionModel{PostID: postID, UserID: userID, CommentID: commentID, ReactionType: "like"}
	require.NoError(t, db.Create(reaction).Error)
	return reaction
}

func countRows(t *testing.T, db *gorm.DB, m interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	q := db.Model(m)
	if query != "" {
		q = q.Where(query, args...)
	}
	require.NoError(t, q.Count(&n).Error)
	return n
}

// seedPosts creates n posts by userID with strictly increasing creation times.
func seedPosts(t *testing.T, db *gorm.DB, userID string, n int) {
	t.Helper()
	base := time.Now().Add(-time.Duration(n) * time.Minute)
	for i := 0; i < n; i++ {
		post := &model.PostModel{
			UserID:    userID,
			Content:   fmt.Sprintf("post %d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(post).Error)
	}
}

var ctx = context.Background()
