package domain

import (
	"time"

	"github.com/google/uuid"
)

type Bookmark struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_bookmarks_user_post"`
	PostID    uuid.UUID `json:"postId" gorm:"type:uuid;not null;uniqueIndex:idx_bookmarks_user_post"`
	Post      *Post     `json:"post,omitempty" gorm:"foreignKey:PostID"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
