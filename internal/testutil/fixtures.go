package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/dom/devdreams-backend/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	username    string
	email       string
	password    string
	googleID    *string
	authMethods []string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	suffix := uuid.New().String()[:8]
	return &UserBuilder{
		username:    fmt.Sprintf("testuser_%s", suffix),
		email:       fmt.Sprintf("test_%s@example.com", suffix),
		password:    "Testpassw0rd!",
		authMethods: []string{domain.AuthMethodLocal},
	}
}

func (b *UserBuilder) WithUsername(username string) *UserBuilder {
	b.username = username
	return b
}

func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

func (b *UserBuilder) WithGoogleID(googleID string) *UserBuilder {
	b.googleID = &googleID
	return b
}

func (b *UserBuilder) WithAuthMethods(methods ...string) *UserBuilder {
	b.authMethods = methods
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	user := &domain.User{
		ID:          uuid.New(),
		Username:    b.username,
		Email:       b.email,
		GoogleID:    b.googleID,
		AuthMethods: b.authMethods,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if b.password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
		if err != nil {
			t.Fatalf("failed to hash password: %v", err)
		}
		user.PasswordHash = string(hashedPassword)
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	return user, b.password
}

// PostBuilder creates test posts
type PostBuilder struct {
	title    string
	content  string
	tags     []string
	authorID uuid.UUID
}

func NewPostBuilder(authorID uuid.UUID) *PostBuilder {
	return &PostBuilder{
		title:    fmt.Sprintf("Test Post %s", uuid.New().String()[:8]),
		content:  "Some test content.",
		authorID: authorID,
	}
}

func (b *PostBuilder) WithTitle(title string) *PostBuilder {
	b.title = title
	return b
}

func (b *PostBuilder) WithTags(tags ...string) *PostBuilder {
	b.tags = tags
	return b
}

func (b *PostBuilder) Build(t *testing.T, db *gorm.DB) *domain.Post {
	t.Helper()

	post := &domain.Post{
		ID:        uuid.New(),
		Title:     b.title,
		Content:   b.content,
		AuthorID:  b.authorID,
		Tags:      b.tags,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("failed to create test post: %v", err)
	}
	return post
}

// CommentBuilder creates test comments, optionally as replies
type CommentBuilder struct {
	content  string
	authorID uuid.UUID
	postID   uuid.UUID
	parentID *uuid.UUID
}

func NewCommentBuilder(authorID, postID uuid.UUID) *CommentBuilder {
	return &CommentBuilder{
		content:  "A test comment.",
		authorID: authorID,
		postID:   postID,
	}
}

func (b *CommentBuilder) WithContent(content string) *CommentBuilder {
	b.content = content
	return b
}

func (b *CommentBuilder) WithParent(parentID uuid.UUID) *CommentBuilder {
	b.parentID = &parentID
	return b
}

func (b *CommentBuilder) Build(t *testing.T, db *gorm.DB) *domain.Comment {
	t.Helper()

	comment := &domain.Comment{
		ID:              uuid.New(),
		Content:         b.content,
		AuthorID:        b.authorID,
		PostID:          b.postID,
		ParentCommentID: b.parentID,
		CreatedAt:       time.Now(),
	}
	if err := db.Create(comment).Error; err != nil {
		t.Fatalf("failed to create test comment: %v", err)
	}
	return comment
}
