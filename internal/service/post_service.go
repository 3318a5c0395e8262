package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dom/devdreams-backend/internal/domain"
	"github.com/dom/devdreams-backend/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostService struct {
	postRepo repository.PostRepository
}

func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

type CreatePostInput struct {
	AuthorID uuid.UUID
	Title    string
	Content  string
	Tags     []string
}

const wordsPerMinute = 200

// estimatedReadingTime is the reading time in minutes, rounded up.
func estimatedReadingTime(content string) int {
	words := len(strings.Fields(content))
	return (words + wordsPerMinute - 1) / wordsPerMinute
}

func (s *PostService) Create(ctx context.Context, input CreatePostInput) (*domain.Post, error) {
	post := &domain.Post{
		ID:                   uuid.New(),
		Title:                input.Title,
		Content:              input.Content,
		AuthorID:             input.AuthorID,
		Tags:                 input.Tags,
		EstimatedReadingTime: estimatedReadingTime(input.Content),
		CreatedAt:            time.Now(),
		UpdatedAt:            time.Now(),
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) List(ctx context.Context) ([]*domain.Post, error) {
	return s.postRepo.List(ctx)
}

func (s *PostService) Get(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

func (s *PostService) Delete(ctx context.Context, requesterID, postID uuid.UUID) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrPostNotFound
		}
		return err
	}
	if post.AuthorID != requesterID {
		return domain.ErrNotAuthor
	}
	return s.postRepo.Delete(ctx, postID)
}

type LikeResult struct {
	Liked      bool `json:"liked"`
	LikesCount int  `json:"likesCount"`
}

// ToggleLike flips the requester's like on a post. The like row and the
// post's counter move together in one transaction.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID uuid.UUID) (*LikeResult, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPostNotFound
		}
		return nil, err
	}

	liked, err := s.postRepo.HasLike(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	if liked {
		count, err := s.postRepo.RemoveLike(ctx, userID, postID)
		if err != nil {
			return nil, err
		}
		return &LikeResult{Liked: false, LikesCount: count}, nil
	}

	count, err := s.postRepo.AddLike(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	return &LikeResult{Liked: true, LikesCount: count}, nil
}
