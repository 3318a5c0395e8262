package service_test

import (
	"context"
	"testing"

	"github.com/dom/devdreams-backend/internal/domain"
	"github.com/dom/devdreams-backend/internal/repository/postgres"
	"github.com/dom/devdreams-backend/internal/service"
	"github.com/dom/devdreams-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoogleService_Reconcile(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	googleService := service.NewGoogleService(repos.User, cfg)
	ctx := context.Background()

	t.Run("existing google id wins", func(t *testing.T) {
		testDB.Truncate(t)
		existing, _ := testutil.NewUserBuilder().
			WithEmail("linked@x.com").
			WithGoogleID("google-123").
			WithAuthMethods(domain.AuthMethodGoogle).
			Build(t, testDB.DB)

		user, err := googleService.Reconcile(ctx, &service.GoogleProfile{
			ID:    "google-123",
			Email: "changed-their-email@x.com",
		})
		require.NoError(t, err)
		assert.Equal(t, existing.ID, user.ID)
		// The provider id match wins even when the email moved on.
		assert.Equal(t, "linked@x.com", user.Email)
	})

	t.Run("email match links onto the local account", func(t *testing.T) {
		testDB.Truncate(t)
		local, _ := testutil.NewUserBuilder().
			WithEmail("local@x.com").
			Build(t, testDB.DB)

		user, err := googleService.Reconcile(ctx, &service.GoogleProfile{
			ID:    "google-456",
			Email: "local@x.com",
		})
		require.NoError(t, err)
		assert.Equal(t, local.ID, user.ID)
		require.NotNil(t, user.GoogleID)
		assert.Equal(t, "google-456", *user.GoogleID)
		// One row, both methods.
		assert.True(t, user.HasAuthMethod(domain.AuthMethodLocal))
		assert.True(t, user.HasAuthMethod(domain.AuthMethodGoogle))

		stored, err := repos.User.GetByGoogleID(ctx, "google-456")
		require.NoError(t, err)
		assert.Equal(t, local.ID, stored.ID)
	})

	t.Run("unknown identity creates an account", func(t *testing.T) {
		testDB.Truncate(t)

		user, err := googleService.Reconcile(ctx, &service.GoogleProfile{
			ID:      "google-789",
			Email:   "fresh@x.com",
			Name:    "Fresh User",
			Picture: "https://example.com/avatar.png",
		})
		require.NoError(t, err)
		assert.Equal(t, "fresh@x.com", user.Email)
		assert.Equal(t, "Fresh User", user.Name)
		assert.Equal(t, "https://example.com/avatar.png", user.Avatar)
		assert.Equal(t, []string{domain.AuthMethodGoogle}, []string(user.AuthMethods))
		assert.False(t, user.HasAuthMethod(domain.AuthMethodLocal))
	})

	t.Run("idempotent across callbacks", func(t *testing.T) {
		testDB.Truncate(t)

		profile := &service.GoogleProfile{ID: "google-999", Email: "repeat@x.com"}
		first, err := googleService.Reconcile(ctx, profile)
		require.NoError(t, err)
		second, err := googleService.Reconcile(ctx, profile)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
	})
}

func TestGoogleService_Configured(t *testing.T) {
	unconfigured := service.NewGoogleService(nil, testutil.TestConfig())
	assert.False(t, unconfigured.Configured())
	_, err := unconfigured.AuthURL("state")
	assert.ErrorIs(t, err, service.ErrOAuthNotConfigured)

	cfg := testutil.TestConfig()
	cfg.GoogleClientID = "client-id"
	cfg.GoogleClientSecret = "client-secret"
	cfg.GoogleCallbackURL = "http://localhost:8080/api/v1/auth/google/callback"

	configured := service.NewGoogleService(nil, cfg)
	assert.True(t, configured.Configured())

	url, err := configured.AuthURL("state-nonce")
	require.NoError(t, err)
	assert.Contains(t, url, "state=state-nonce")
	assert.Contains(t, url, "client_id=client-id")
}

func TestNewState(t *testing.T) {
	first, err := service.NewState()
	require.NoError(t, err)
	second, err := service.NewState()
	require.NoError(t, err)
	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
}
