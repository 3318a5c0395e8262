package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dom/devdreams-backend/internal/config"
	"github.com/dom/devdreams-backend/internal/domain"
	"github.com/dom/devdreams-backend/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"
)

var ErrOAuthNotConfigured = errors.New("google oauth not configured")

// GoogleService runs the OAuth code flow and reconciles the federated
// identity into the local user store: provider-id match wins, then an
// email match links the Google identity onto the existing account, and
// only then is a fresh account created.
type GoogleService struct {
	userRepo    repository.UserRepository
	oauthConfig *oauth2.Config
	userInfoURL string
}

type GoogleProfile struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

func NewGoogleService(userRepo repository.UserRepository, cfg *config.Config) *GoogleService {
	svc := &GoogleService{
		userRepo:    userRepo,
		userInfoURL: "https://www.googleapis.com/oauth2/v2/userinfo",
	}

	if cfg.GoogleClientID != "" && cfg.GoogleClientSecret != "" {
		svc.oauthConfig = &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{"email", "profile"},
			RedirectURL:  cfg.GoogleCallbackURL,
		}
	}

	return svc
}

func (s *GoogleService) Configured() bool {
	return s.oauthConfig != nil
}

// AuthURL returns the provider authorization URL for the given state nonce.
func (s *GoogleService) AuthURL(state string) (string, error) {
	if s.oauthConfig == nil {
		return "", ErrOAuthNotConfigured
	}
	return s.oauthConfig.AuthCodeURL(state), nil
}

// NewState produces a random nonce for the OAuth state parameter.
func NewState() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// HandleCallback exchanges the authorization code, fetches the Google
// profile and returns the reconciled local user.
func (s *GoogleService) HandleCallback(ctx context.Context, code string) (*domain.User, error) {
	if s.oauthConfig == nil {
		return nil, ErrOAuthNotConfigured
	}

	token, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchanging authorization code: %w", err)
	}

	profile, err := s.fetchProfile(ctx, token)
	if err != nil {
		return nil, err
	}

	return s.Reconcile(ctx, profile)
}

func (s *GoogleService) fetchProfile(ctx context.Context, token *oauth2.Token) (*GoogleProfile, error) {
	client := s.oauthConfig.Client(ctx, token)
	resp, err := client.Get(s.userInfoURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google userinfo returned status %d", resp.StatusCode)
	}

	var profile GoogleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Reconcile maps a federated identity onto the user store. Linking by email
// trusts Google's email verification; see DESIGN.md for the open question
// around providers that do not guarantee it.
func (s *GoogleService) Reconcile(ctx context.Context, profile *GoogleProfile) (*domain.User, error) {
	user, err := s.userRepo.GetByGoogleID(ctx, profile.ID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user, err = s.userRepo.GetByEmail(ctx, profile.Email)
	if err == nil {
		// Existing account with the same email: link the Google identity.
		googleID := profile.ID
		user.GoogleID = &googleID
		user.AddAuthMethod(domain.AuthMethodGoogle)
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	googleID := profile.ID
	user = &domain.User{
		ID:          uuid.New(),
		Email:       profile.Email,
		Name:        profile.Name,
		Avatar:      profile.Picture,
		GoogleID:    &googleID,
		AuthMethods: []string{domain.AuthMethodGoogle},
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
