package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/dom/devdreams-backend/internal/domain"
	"github.com/dom/devdreams-backend/internal/repository/postgres"
	"github.com/dom/devdreams-backend/internal/service"
	"github.com/dom/devdreams-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostService_CreateAndGet(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	postService := service.NewPostService(repos.Post)
	ctx := context.Background()

	author, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	created, err := postService.Create(ctx, service.CreatePostInput{
		AuthorID: author.ID,
		Title:    "Hello DevDreams",
		Content:  "First post.",
		Tags:     []string{"go", "intro"},
	})
	require.NoError(t, err)

	fetched, err := postService.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello DevDreams", fetched.Title)
	assert.ElementsMatch(t, []string{"go", "intro"}, []string(fetched.Tags))
	assert.Equal(t, author.ID, fetched.Author.ID)

	_, err = postService.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrPostNotFound)
}

func TestPostService_EstimatedReadingTime(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	postService := service.NewPostService(repos.Post)
	ctx := context.Background()

	author, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	tests := []struct {
		name  string
		words int
		want  int
	}{
		{"empty content", 0, 0},
		{"short post reads in a minute", 50, 1},
		{"exact multiple of the rate", 400, 2},
		{"partial minute rounds up", 401, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created, err := postService.Create(ctx, service.CreatePostInput{
				AuthorID: author.ID,
				Title:    "Reading time",
				Content:  strings.TrimSpace(strings.Repeat("word ", tt.words)),
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, created.EstimatedReadingTime)

			stored, err := postService.Get(ctx, created.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stored.EstimatedReadingTime)
		})
	}
}

func TestPostService_Delete(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	postService := service.NewPostService(repos.Post)
	ctx := context.Background()

	author, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	stranger, _ := testutil.NewUserBuilder().WithEmail("stranger@x.com").Build(t, testDB.DB)
	post := testutil.NewPostBuilder(author.ID).Build(t, testDB.DB)

	tests := []struct {
		name      string
		requester uuid.UUID
		postID    uuid.UUID
		wantErr   error
	}{
		{"non-author is rejected", stranger.ID, post.ID, domain.ErrNotAuthor},
		{"missing post", author.ID, uuid.New(), domain.ErrPostNotFound},
		{"author deletes", author.ID, post.ID, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := postService.Delete(ctx, tt.requester, tt.postID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			_, err = postService.Get(ctx, tt.postID)
			assert.ErrorIs(t, err, domain.ErrPostNotFound)
		})
	}
}

func TestPostService_ToggleLike(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	postService := service.NewPostService(repos.Post)
	ctx := context.Background()

	author, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	liker, _ := testutil.NewUserBuilder().WithEmail("liker@x.com").Build(t, testDB.DB)
	post := testutil.NewPostBuilder(author.ID).Build(t, testDB.DB)

	first, err := postService.ToggleLike(ctx, liker.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, first.Liked)
	assert.Equal(t, 1, first.LikesCount)

	// Second like from another user stacks.
	second, err := postService.ToggleLike(ctx, author.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, second.LikesCount)

	// Toggling again removes only the caller's like.
	third, err := postService.ToggleLike(ctx, liker.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, third.Liked)
	assert.Equal(t, 1, third.LikesCount)

	// Counter on the post row tracks the like set.
	stored, err := postService.Get(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.LikesCount)

	_, err = postService.ToggleLike(ctx, liker.ID, uuid.New())
	assert.ErrorIs(t, err, domain.ErrPostNotFound)
}
