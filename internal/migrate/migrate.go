package migrate

import (
	"gorm.io/gorm"

	"social-service/internal/feedback"
	"social-service/internal/post"
	"social-service/internal/user"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&user.User{},
		&post.Post{},
		&feedback.Like{},
		&feedback.Repost{},
		&feedback.Comment{},
	)
}
