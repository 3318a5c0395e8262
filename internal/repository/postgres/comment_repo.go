package postgres

import (
	"context"
	"errors"

	"github.com/dom/devdreams-backend/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *commentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	var comment domain.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		First(&comment, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) CreateReply(ctx context.Context, reply *domain.Comment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Re-check the parent inside the transaction so a concurrent
		// delete cannot leave an orphan reply behind.
		var parent domain.Comment
		err := tx.First(&parent, "id = ?", reply.ParentCommentID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrParentNotFound
			}
			return err
		}
		reply.PostID = parent.PostID
		return tx.Create(reply).Error
	})
}

func (r *commentRepository) ListTopLevel(ctx context.Context, postID uuid.UUID) ([]*domain.Comment, error) {
	var comments []*domain.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ? AND parent_comment_id IS NULL", postID).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) ListByParentIDs(ctx context.Context, parentIDs []uuid.UUID) ([]*domain.Comment, error) {
	if len(parentIDs) == 0 {
		return nil, nil
	}
	var comments []*domain.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("parent_comment_id IN ?", parentIDs).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) HasLike(ctx context.Context, userID, commentID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.CommentLike{}).
		Where("user_id = ? AND comment_id = ?", userID, commentID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *commentRepository) AddLike(ctx context.Context, userID, commentID uuid.UUID) error {
	return r.db.WithContext(ctx).Create(&domain.CommentLike{UserID: userID, CommentID: commentID}).Error
}

func (r *commentRepository) RemoveLike(ctx context.Context, userID, commentID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&domain.CommentLike{}, "user_id = ? AND comment_id = ?", userID, commentID).Error
}

func (r *commentRepository) CountLikes(ctx context.Context, commentID uuid.UUID) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.CommentLike{}).
		Where("comment_id = ?", commentID).
		Count(&count).Error
	return int(count), err
}

// DeleteWithChildren removes the comment and its direct children in one
// transaction. Grandchildren are left in place; their parent reference
// dangles. Extending this to a full subtree delete is pending product
// confirmation, see DESIGN.md.
func (r *commentRepository) DeleteWithChildren(ctx context.Context, commentID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&domain.Comment{}, "parent_comment_id = ?", commentID).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Comment{}, "id = ?", commentID).Error
	})
}
