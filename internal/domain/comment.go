package domain

import (
	"time"

	"github.com/google/uuid"
)

type Comment struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Content  string    `json:"content" gorm:"not null"`
	AuthorID uuid.UUID `json:"authorId" gorm:"type:uuid;not null"`
	Author   *User     `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	PostID   uuid.UUID `json:"postId" gorm:"type:uuid;not null;index"`

	// Nil for top-level comments. Replies are only created through
	// CommentService.Reply, which keeps the parent/child links a tree.
	ParentCommentID *uuid.UUID `json:"parentCommentId" gorm:"type:uuid;index"`

	Likes []CommentLike `json:"-" gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"createdAt"`

	// Resolved reply subtree, populated on reads only.
	ChildComments []*Comment `json:"childComments,omitempty" gorm:"-"`
}

// CommentLike is set membership: one row per (user, comment).
type CommentLike struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_comment_likes_user_comment"`
	CommentID uuid.UUID `json:"commentId" gorm:"type:uuid;not null;uniqueIndex:idx_comment_likes_user_comment"`
	CreatedAt time.Time `json:"createdAt"`
}
