package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/dom/devdreams-backend/internal/config"
	"github.com/dom/devdreams-backend/internal/domain"
	"github.com/dom/devdreams-backend/internal/mailer"
	"github.com/dom/devdreams-backend/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// bcrypt cost for password hashes. Reset-token hashing uses sha256 instead
// because the token already carries 256 bits of entropy.
const passwordHashCost = 12

const passwordResetWindow = 10 * time.Minute

type AuthService struct {
	userRepo repository.UserRepository
	mailer   mailer.Mailer
	cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, m mailer.Mailer, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		mailer:   m,
		cfg:      cfg,
	}
}

type SignupInput struct {
	Username string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type AuthResult struct {
	User *domain.User
	TokenPair
}

func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*AuthResult, error) {
	_, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err == nil {
		return nil, domain.ErrEmailExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), passwordHashCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		AuthMethods:  []string{domain.AuthMethodLocal},
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.issueFor(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidAuthMethod
		}
		return nil, err
	}

	// OAuth-only accounts have no password; refuse the local path outright.
	if !user.HasAuthMethod(domain.AuthMethodLocal) {
		return nil, domain.ErrInvalidAuthMethod
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return s.issueFor(ctx, user)
}

// IssueTokenPair mints a short-lived access token and a long-lived refresh
// token for the user, persisting the refresh token in the user's single
// slot. The previous refresh token stops working immediately.
func (s *AuthService) IssueTokenPair(ctx context.Context, userID uuid.UUID) (*AuthResult, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return s.issueFor(ctx, user)
}

func (s *AuthService) issueFor(ctx context.Context, user *domain.User) (*AuthResult, error) {
	accessToken, err := s.signToken(user.ID, []byte(s.cfg.AccessTokenSecret), s.cfg.AccessTokenTTL)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.signToken(user.ID, []byte(s.cfg.RefreshTokenSecret), s.cfg.RefreshTokenTTL)
	if err != nil {
		return nil, err
	}

	user.RefreshToken = refreshToken
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return &AuthResult{
		User: user,
		TokenPair: TokenPair{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
		},
	}, nil
}

func (s *AuthService) signToken(userID uuid.UUID, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		// jti keeps tokens minted within the same second distinct, so
		// rotation always invalidates the previous refresh token.
		ID: uuid.NewString(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func (s *AuthService) parseToken(tokenString string, secret []byte) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// RotateRefreshToken exchanges a valid refresh token for a brand-new pair.
// A token that was already rotated no longer matches the stored slot and is
// rejected, which surfaces replay of stale tokens.
func (s *AuthService) RotateRefreshToken(ctx context.Context, presented string) (*AuthResult, error) {
	claims, err := s.parseToken(presented, []byte(s.cfg.RefreshTokenSecret))
	if err != nil {
		return nil, domain.ErrInvalidRefreshToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, domain.ErrInvalidRefreshToken
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, domain.ErrInvalidRefreshToken
	}

	if user.RefreshToken != presented {
		return nil, domain.ErrInvalidRefreshToken
	}

	return s.issueFor(ctx, user)
}

// VerifyAccessToken validates signature and expiry, resolves the user and
// rejects tokens issued before the user's last password change.
func (s *AuthService) VerifyAccessToken(ctx context.Context, tokenString string) (*domain.User, error) {
	claims, err := s.parseToken(tokenString, []byte(s.cfg.AccessTokenSecret))
	if err != nil {
		return nil, domain.ErrInvalidAccessToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, domain.ErrInvalidAccessToken
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, domain.ErrInvalidAccessToken
	}

	if claims.IssuedAt != nil && user.ChangedPasswordAt > 0 &&
		claims.IssuedAt.Unix() < user.ChangedPasswordAt {
		return nil, domain.ErrPasswordChanged
	}

	return user, nil
}

func (s *AuthService) SignOut(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}
	user.RefreshToken = ""
	return s.userRepo.Update(ctx, user)
}

// RequestPasswordReset stores a hashed, short-lived reset token on the user
// and mails the raw token. The stored fields are rolled back if the mail
// cannot be delivered, so a usable token always reaches the user or no
// token exists at all.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return err
	}
	rawToken := hex.EncodeToString(buf)

	expires := time.Now().Add(passwordResetWindow)
	user.PasswordResetToken = hashResetToken(rawToken)
	user.PasswordResetExpires = &expires
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	link := fmt.Sprintf("%s/resetpassword/%s", s.cfg.FrontendURL, rawToken)
	if err := s.mailer.Send(user.Email, "Reset your password", link); err != nil {
		user.PasswordResetToken = ""
		user.PasswordResetExpires = nil
		if rollbackErr := s.userRepo.Update(ctx, user); rollbackErr != nil {
			return rollbackErr
		}
		return domain.ErrEmailSendFailed
	}

	return nil
}

// ConsumePasswordReset redeems a raw reset token for a new password and a
// fresh token pair. All access tokens issued before this moment become
// invalid via the issued-at check.
func (s *AuthService) ConsumePasswordReset(ctx context.Context, rawToken, newPassword string) (*AuthResult, error) {
	user, err := s.userRepo.GetByResetTokenHash(ctx, hashResetToken(rawToken), time.Now())
	if err != nil {
		return nil, domain.ErrInvalidResetToken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), passwordHashCost)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = string(hashedPassword)
	user.PasswordResetToken = ""
	user.PasswordResetExpires = nil
	user.ChangedPasswordAt = time.Now().Unix() - 1
	user.AddAuthMethod(domain.AuthMethodLocal)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return s.issueFor(ctx, user)
}

// ChangePassword verifies the current password before replacing it. The
// fresh pair it returns is the only valid credential afterwards, including
// for the session that made this call.
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) (*AuthResult, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return nil, domain.ErrWrongCurrentPassword
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), passwordHashCost)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = string(hashedPassword)
	user.ChangedPasswordAt = time.Now().Unix() - 1
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return s.issueFor(ctx, user)
}

func (s *AuthService) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func hashResetToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
