package service

import (
	"context"
	"errors"
	"time"

	"github.com/dom/devdreams-backend/internal/domain"
	"github.com/dom/devdreams-backend/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookmarkService struct {
	bookmarkRepo repository.BookmarkRepository
	postRepo     repository.PostRepository
}

func NewBookmarkService(bookmarkRepo repository.BookmarkRepository, postRepo repository.PostRepository) *BookmarkService {
	return &BookmarkService{
		bookmarkRepo: bookmarkRepo,
		postRepo:     postRepo,
	}
}

// Create bookmarks a post for the user. The bookmark row and the post's
// bookmark counter are written in one transaction.
func (s *BookmarkService) Create(ctx context.Context, userID, postID uuid.UUID) (*domain.Bookmark, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPostNotFound
		}
		return nil, err
	}

	bookmark := &domain.Bookmark{
		ID:        uuid.New(),
		UserID:    userID,
		PostID:    postID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.bookmarkRepo.Create(ctx, bookmark); err != nil {
		return nil, err
	}
	return bookmark, nil
}

func (s *BookmarkService) ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Bookmark, error) {
	return s.bookmarkRepo.ListByUser(ctx, userID)
}

func (s *BookmarkService) Delete(ctx context.Context, userID, bookmarkID uuid.UUID) error {
	return s.bookmarkRepo.Delete(ctx, userID, bookmarkID)
}
