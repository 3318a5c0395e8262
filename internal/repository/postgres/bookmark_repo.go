package postgres

import (
	"context"
	"errors"

	"github.com/dom/devdreams-backend/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type bookmarkRepository struct {
	db *gorm.DB
}

func NewBookmarkRepository(db *gorm.DB) *bookmarkRepository {
	return &bookmarkRepository{db: db}
}

func (r *bookmarkRepository) Create(ctx context.Context, bookmark *domain.Bookmark) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&domain.Bookmark{}).
			Where("user_id = ? AND post_id = ?", bookmark.UserID, bookmark.PostID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return domain.ErrAlreadyBookmarked
		}
		if err := tx.Create(bookmark).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Post{}).
			Where("id = ?", bookmark.PostID).
			UpdateColumn("bookmark_count", gorm.Expr("bookmark_count + 1")).Error
	})
}

func (r *bookmarkRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Bookmark, error) {
	var bookmarks []*domain.Bookmark
	err := r.db.WithContext(ctx).
		Preload("Post").
		Preload("Post.Author").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookmarks).Error
	if err != nil {
		return nil, err
	}
	return bookmarks, nil
}

func (r *bookmarkRepository) Delete(ctx context.Context, userID, bookmarkID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var bookmark domain.Bookmark
		err := tx.First(&bookmark, "id = ? AND user_id = ?", bookmarkID, userID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrBookmarkNotFound
			}
			return err
		}
		if err := tx.Delete(&bookmark).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Post{}).
			Where("id = ?", bookmark.PostID).
			UpdateColumn("bookmark_count", gorm.Expr("bookmark_count - 1")).Error
	})
}
