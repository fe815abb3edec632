package main

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"buddyboost/internal/model"
	"buddyboost/pkg/config"
	"buddyboost/pkg/database"
	"buddyboost/pkg/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var reactionTypes = []string{"like", "love", "haha", "wow"}

func main() {
	var postsPerUser int
	flag.IntVar(&postsPerUser, "posts", 3, "posts to create per seeded user")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	if err := seedDatabase(db, postsPerUser, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(db *gorm.DB, postsPerUser int, log *logger.Logger) error {
	testUsers := []struct {
		email     string
		firstName string
		lastName  string
		password  string
	}{
		{"alice@test.com", "Alice", "Anderson", "password123"},
		{"bob@test.com", "Bob", "Brown", "password123"},
		{"charlie@test.com", "Charlie", "Clark", "password123"},
		{"diana@test.com", "Diana", "Davis", "password123"},
		{"eve@test.com", "Eve", "Evans", "password123"},
	}

	userIDs := make([]string, 0, len(testUsers))

	for _, userData := range testUsers {
		var existingUser model.UserModel
		err := db.Where("email = ?", userData.email).First(&existingUser).Error
		if err == nil {
			log.Info("User %s already exists, skipping", userData.email)
			userIDs = append(userIDs, existingUser.ID)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to look up user %s: %w", userData.email, err)
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(userData.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		user := &model.UserModel{
			Email:     userData.email,
			Password:  string(hashedPassword),
			FirstName: userData.firstName,
			LastName:  userData.lastName,
		}
		if err := db.Create(user).Error; err != nil {
			log.Error("Failed to create user %s: %v", userData.email, err)
			continue
		}

		log.Info("Created user: %s %s (%s)", user.FirstName, user.LastName, user.Email)
		userIDs = append(userIDs, user.ID)

		if err := createPosts(db, user, postsPerUser, log); err != nil {
			log.Error("Failed to create posts for %s: %v", user.Email, err)
		}
	}

	return createInteractions(db, userIDs, log)
}

func createPosts(db *gorm.DB, user *model.UserModel, count int, log *logger.Logger) error {
	base := time.Now().Add(-time.Duration(count) * time.Hour)
	for i := 0; i < count; i++ {
		createdAt := base.Add(time.Duration(i) * time.Hour)
		post := &model.PostModel{
			UserID:    user.ID,
			Content:   fmt.Sprintf("Post #%d from %s. Keep going, buddies!", i+1, user.FirstName),
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
		}
		if err := db.Create(post).Error; err != nil {
			return fmt.Errorf("failed to create post: %w", err)
		}
	}
	log.Info("Created %d posts for %s", count, user.Email)
	return nil
}

// createInteractions has every user comment on and react to the newest post
// of the next user, in one transaction.
func createInteractions(db *gorm.DB, userIDs []string, log *logger.Logger) error {
	if len(userIDs) < 2 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for i, actorID := range userIDs {
			ownerID := userIDs[(i+1)%len(userIDs)]

			var post model.PostModel
			err := tx.Where("user_id = ?", ownerID).Order("created_at DESC").First(&post).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			if err != nil {
				return fmt.Errorf("failed to load post of %s: %w", ownerID, err)
			}

			var existing int64
			if err := tx.Model(&model.ReactionModel{}).
				Where("post_id = ? AND user_id = ? AND comment_id IS NULL", post.ID, actorID).
				Count(&existing).Error; err != nil {
				return fmt.Errorf("failed to check reactions: %w", err)
			}
			if existing > 0 {
				continue
			}

			comment := &model.CommentModel{PostID: post.ID, UserID: actorID, Content: "Great work, keep it up!"}
			if err := tx.Create(comment).Error; err != nil {
				return fmt.Errorf("failed to create comment: %w", err)
			}

			reaction := &model.ReactionModel{
				PostID:       post.ID,
				UserID:       actorID,
				ReactionType: reactionTypes[i%len(reactionTypes)],
			}
			if err := tx.Create(reaction).Error; err != nil {
				return fmt.Errorf("failed to create reaction: %w", err)
			}
		}
		log.Info("Created test comments and reactions")
		return nil
	})
}
