package repository

import (
	"context"
	"time"

	"github.com/dom/devdreams-backend/internal/domain"
	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByGoogleID(ctx context.Context, googleID string) (*domain.User, error)
	// GetByResetTokenHash finds a user whose password-reset token hash matches
	// and whose reset window has not expired at the given instant.
	GetByResetTokenHash(ctx context.Context, tokenHash string, now time.Time) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error)
	List(ctx context.Context) ([]*domain.Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
	HasLike(ctx context.Context, userID, postID uuid.UUID) (bool, error)
	// AddLike / RemoveLike insert or delete the like row and adjust the
	// post's likes counter inside one transaction. Both return the
	// resulting counter value.
	AddLike(ctx context.Context, userID, postID uuid.UUID) (int, error)
	RemoveLike(ctx context.Context, userID, postID uuid.UUID) (int, error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	// CreateReply re-checks the parent inside the transaction and inserts
	// the reply; on any failure nothing persists.
	CreateReply(ctx context.Context, reply *domain.Comment) error
	ListTopLevel(ctx context.Context, postID uuid.UUID) ([]*domain.Comment, error)
	ListByParentIDs(ctx context.Context, parentIDs []uuid.UUID) ([]*domain.Comment, error)
	HasLike(ctx context.Context, userID, commentID uuid.UUID) (bool, error)
	AddLike(ctx context.Context, userID, commentID uuid.UUID) error
	RemoveLike(ctx context.Context, userID, commentID uuid.UUID) error
	CountLikes(ctx context.Context, commentID uuid.UUID) (int, error)
	// DeleteWithChildren removes the comment and its direct children only.
	DeleteWithChildren(ctx context.Context, commentID uuid.UUID) error
}

type BookmarkRepository interface {
	// Create inserts the bookmark and increments the post's bookmark
	// counter in one transaction. Returns domain.ErrAlreadyBookmarked on a
	// duplicate (user, post) pair.
	Create(ctx context.Context, bookmark *domain.Bookmark) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Bookmark, error)
	// Delete removes the user's bookmark and decrements the counter in one
	// transaction. Returns domain.ErrBookmarkNotFound if absent or not owned.
	Delete(ctx context.Context, userID, bookmarkID uuid.UUID) error
}

type Repositories struct {
	User     UserRepository
	Post     PostRepository
	Comment  CommentRepository
	Bookmark BookmarkRepository
}
