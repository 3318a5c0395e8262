package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Post struct {
	ID       uuid.UUID                   `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Title    string                      `json:"title" gorm:"not null"`
	Content  string                      `json:"content" gorm:"not null"`
	AuthorID uuid.UUID                   `json:"authorId" gorm:"type:uuid;not null"`
	Author   *User                       `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Tags     datatypes.JSONSlice[string] `json:"tags"`

	// Minutes to read, derived from the content at creation time.
	EstimatedReadingTime int `json:"estimatedReadingTime"`

	// Counters adjusted in the same transaction as the like/bookmark write.
	LikesCount    int `json:"likesCount" gorm:"not null;default:0"`
	BookmarkCount int `json:"bookmarkCount" gorm:"not null;default:0"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PostLike records a single user's like on a post. Existence is toggled,
// never duplicated per (user, post).
type PostLike struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_post_likes_user_post"`
	PostID    uuid.UUID `json:"postId" gorm:"type:uuid;not null;uniqueIndex:idx_post_likes_user_post"`
	CreatedAt time.Time `json:"createdAt"`
}
