package domain

import "errors"

// Auth errors
var (
	ErrEmailExists          = errors.New("user already exists")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidAuthMethod    = errors.New("invalid credentials or authentication method")
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidRefreshToken  = errors.New("invalid refresh token")
	ErrInvalidAccessToken   = errors.New("invalid access token")
	ErrPasswordChanged      = errors.New("user recently changed password, please log in again")
	ErrInvalidResetToken    = errors.New("invalid or expired token")
	ErrWrongCurrentPassword = errors.New("current password is incorrect")
	ErrEmailSendFailed      = errors.New("error sending email, please try again later")
)

// Content errors
var (
	ErrPostNotFound      = errors.New("post not found")
	ErrCommentNotFound   = errors.New("comment not found")
	ErrParentNotFound    = errors.New("parent comment not found")
	ErrNotAuthor         = errors.New("not authorized to perform this action")
	ErrCommentFailed     = errors.New("creating comment failed")
	ErrBookmarkNotFound  = errors.New("bookmark not found")
	ErrAlreadyBookmarked = errors.New("post already bookmarked")
)
