package service

import (
	"github.com/dom/devdreams-backend/internal/config"
	"github.com/dom/devdreams-backend/internal/mailer"
	"github.com/dom/devdreams-backend/internal/repository"
)

type Services struct {
	Auth     *AuthService
	Google   *GoogleService
	Post     *PostService
	Comment  *CommentService
	Bookmark *BookmarkService
}

func NewServices(repos *repository.Repositories, m mailer.Mailer, cfg *config.Config) *Services {
	return &Services{
		Auth:     NewAuthService(repos.User, m, cfg),
		Google:   NewGoogleService(repos.User, cfg),
		Post:     NewPostService(repos.Post),
		Comment:  NewCommentService(repos.Comment, repos.Post),
		Bookmark: NewBookmarkService(repos.Bookmark, repos.Post),
	}
}
