package postgres

import (
	"context"

	"github.com/dom/devdreams-backend/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *postRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *domain.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	var post domain.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		First(&post, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context) ([]*domain.Post, error) {
	var posts []*domain.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Post{}, "id = ?", id).Error
}

func (r *postRepository) HasLike(ctx context.Context, userID, postID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.PostLike{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *postRepository) AddLike(ctx context.Context, userID, postID uuid.UUID) (int, error) {
	var likesCount int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		like := &domain.PostLike{UserID: userID, PostID: postID}
		if err := tx.Create(like).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.Post{}).
			Where("id = ?", postID).
			UpdateColumn("likes_count", gorm.Expr("likes_count + 1")).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Post{}).
			Select("likes_count").
			Where("id = ?", postID).
			Scan(&likesCount).Error
	})
	return likesCount, err
}

func (r *postRepository) RemoveLike(ctx context.Context, userID, postID uuid.UUID) (int, error) {
	var likesCount int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&domain.PostLike{}, "user_id = ? AND post_id = ?", userID, postID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			if err := tx.Model(&domain.Post{}).
				Where("id = ?", postID).
				UpdateColumn("likes_count", gorm.Expr("likes_count - 1")).Error; err != nil {
				return err
			}
		}
		return tx.Model(&domain.Post{}).
			Select("likes_count").
			Where("id = ?", postID).
			Scan(&likesCount).Error
	})
	return likesCount, err
}
