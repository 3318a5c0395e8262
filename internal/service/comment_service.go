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

// maxThreadDepth bounds reply-tree resolution. Threads deeper than this are
// truncated rather than recursed into indefinitely.
const maxThreadDepth = 50

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

func (s *CommentService) Create(ctx context.Context, authorID, postID uuid.UUID, content string) (*domain.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPostNotFound
		}
		return nil, err
	}

	comment := &domain.Comment{
		ID:        uuid.New(),
		Content:   content,
		AuthorID:  authorID,
		PostID:    postID,
		CreatedAt: time.Now(),
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Reply creates a child comment under parentID. The reply inherits the
// parent's post and is inserted atomically with the parent check, so a
// failed write never leaves a dangling reply.
func (s *CommentService) Reply(ctx context.Context, authorID, parentID uuid.UUID, content string) (*domain.Comment, error) {
	parentCopy := parentID
	reply := &domain.Comment{
		ID:              uuid.New(),
		Content:         content,
		AuthorID:        authorID,
		ParentCommentID: &parentCopy,
		CreatedAt:       time.Now(),
	}

	if err := s.commentRepo.CreateReply(ctx, reply); err != nil {
		if errors.Is(err, domain.ErrParentNotFound) {
			return nil, domain.ErrParentNotFound
		}
		return nil, domain.ErrCommentFailed
	}

	return s.commentRepo.GetByID(ctx, reply.ID)
}

// ListForPost returns top-level comments newest first, each with its reply
// subtree attached. Resolution is iterative, level by level, with a visited
// set guarding against cycles from bad data.
func (s *CommentService) ListForPost(ctx context.Context, postID uuid.UUID) ([]*domain.Comment, error) {
	roots, err := s.commentRepo.ListTopLevel(ctx, postID)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*domain.Comment, len(roots))
	visited := make(map[uuid.UUID]bool, len(roots))
	frontier := make([]uuid.UUID, 0, len(roots))
	for _, c := range roots {
		byID[c.ID] = c
		visited[c.ID] = true
		frontier = append(frontier, c.ID)
	}

	for depth := 0; depth < maxThreadDepth && len(frontier) > 0; depth++ {
		children, err := s.commentRepo.ListByParentIDs(ctx, frontier)
		if err != nil {
			return nil, err
		}

		frontier = frontier[:0]
		for _, child := range children {
			if visited[child.ID] {
				continue
			}
			visited[child.ID] = true

			parent := byID[*child.ParentCommentID]
			parent.ChildComments = append(parent.ChildComments, child)

			byID[child.ID] = child
			frontier = append(frontier, child.ID)
		}
	}

	return roots, nil
}

// ToggleLike adds or removes the user from the comment's like set and
// reports the resulting membership and count. Concurrent toggles by the
// same user can race; acceptable at this scale.
func (s *CommentService) ToggleLike(ctx context.Context, userID, commentID uuid.UUID) (*LikeResult, error) {
	if _, err := s.commentRepo.GetByID(ctx, commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCommentNotFound
		}
		return nil, err
	}

	liked, err := s.commentRepo.HasLike(ctx, userID, commentID)
	if err != nil {
		return nil, err
	}

	if liked {
		if err := s.commentRepo.RemoveLike(ctx, userID, commentID); err != nil {
			return nil, err
		}
	} else {
		if err := s.commentRepo.AddLike(ctx, userID, commentID); err != nil {
			return nil, err
		}
	}

	count, err := s.commentRepo.CountLikes(ctx, commentID)
	if err != nil {
		return nil, err
	}
	return &LikeResult{Liked: !liked, LikesCount: count}, nil
}

// Delete removes the author's comment together with its direct children.
// Grandchildren survive with a dangling parent reference, matching the
// current product behavior; see DESIGN.md before extending the cascade.
func (s *CommentService) Delete(ctx context.Context, requesterID, commentID uuid.UUID) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrCommentNotFound
		}
		return err
	}

	if comment.AuthorID != requesterID {
		return domain.ErrNotAuthor
	}

	return s.commentRepo.DeleteWithChildren(ctx, commentID)
}
