package postgres

import (
	"github.com/dom/devdreams-backend/internal/domain"
	"github.com/dom/devdreams-backend/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewConnection(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Post{},
		&domain.PostLike{},
		&domain.Comment{},
		&domain.CommentLike{},
		&domain.Bookmark{},
	)
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		User:     NewUserRepository(db),
		Post:     NewPostRepository(db),
		Comment:  NewCommentRepository(db),
		Bookmark: NewBookmarkRepository(db),
	}
}
