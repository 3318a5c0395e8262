package service_test

import (
	"context"
	"testing"

	"github.com/dom/devdreams-backend/internal/domain"
	"github.com/dom/devdreams-backend/internal/repository/postgres"
	"github.com/dom/devdreams-backend/internal/service"
	"github.com/dom/devdreams-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentService_Create(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	commentService := service.NewCommentService(repos.Comment, repos.Post)
	ctx := context.Background()

	author, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	post := testutil.NewPostBuilder(author.ID).Build(t, testDB.DB)

	comment, err := commentService.Create(ctx, author.ID, post.ID, "first!")
	require.NoError(t, err)
	assert.Equal(t, post.ID, comment.PostID)
	assert.Nil(t, comment.ParentCommentID)

	_, err = commentService.Create(ctx, author.ID, uuid.New(), "orphan")
	assert.ErrorIs(t, err, domain.ErrPostNotFound)
}

func TestCommentService_Reply(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	commentService := service.NewCommentService(repos.Comment, repos.Post)
	ctx := context.Background()

	author, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	post := testutil.NewPostBuilder(author.ID).Build(t, testDB.DB)
	parent := testutil.NewCommentBuilder(author.ID, post.ID).Build(t, testDB.DB)

	reply, err := commentService.Reply(ctx, author.ID, parent.ID, "agreed")
	require.NoError(t, err)
	require.NotNil(t, reply.ParentCommentID)
	assert.Equal(t, parent.ID, *reply.ParentCommentID)
	// The reply inherits the parent's post.
	assert.Equal(t, post.ID, reply.PostID)

	_, err = commentService.Reply(ctx, author.ID, uuid.New(), "into the void")
	assert.ErrorIs(t, err, domain.ErrParentNotFound)
}

func TestCommentService_ListForPost(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	commentService := service.NewCommentService(repos.Comment, repos.Post)
	ctx := context.Background()

	author, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	post := testutil.NewPostBuilder(author.ID).Build(t, testDB.DB)
	other := testutil.NewPostBuilder(author.ID).WithTitle("other").Build(t, testDB.DB)

	root := testutil.NewCommentBuilder(author.ID, post.ID).WithContent("root").Build(t, testDB.DB)
	testutil.NewCommentBuilder(author.ID, post.ID).WithContent("sibling").Build(t, testDB.DB)
	testutil.NewCommentBuilder(author.ID, other.ID).WithContent("elsewhere").Build(t, testDB.DB)

	child, err := commentService.Reply(ctx, author.ID, root.ID, "child")
	require.NoError(t, err)
	grandchild, err := commentService.Reply(ctx, author.ID, child.ID, "grandchild")
	require.NoError(t, err)

	roots, err := commentService.ListForPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, roots, 2)

	byContent := make(map[string]*domain.Comment, len(roots))
	for _, c := range roots {
		byContent[c.Content] = c
	}
	require.Contains(t, byContent, "root")
	require.Contains(t, byContent, "sibling")

	gotRoot := byContent["root"]
	require.Len(t, gotRoot.ChildComments, 1)
	assert.Equal(t, child.ID, gotRoot.ChildComments[0].ID)
	require.Len(t, gotRoot.ChildComments[0].ChildComments, 1)
	assert.Equal(t, grandchild.ID, gotRoot.ChildComments[0].ChildComments[0].ID)

	assert.Empty(t, byContent["sibling"].ChildComments)
}

func TestCommentService_ToggleLike(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	commentService := service.NewCommentService(repos.Comment, repos.Post)
	ctx := context.Background()

	author, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	post := testutil.NewPostBuilder(author.ID).Build(t, testDB.DB)
	comment := testutil.NewCommentBuilder(author.ID, post.ID).Build(t, testDB.DB)

	first, err := commentService.ToggleLike(ctx, author.ID, comment.ID)
	require.NoError(t, err)
	assert.True(t, first.Liked)
	assert.Equal(t, 1, first.LikesCount)

	second, err := commentService.ToggleLike(ctx, author.ID, comment.ID)
	require.NoError(t, err)
	assert.False(t, second.Liked)
	assert.Equal(t, 0, second.LikesCount)

	_, err = commentService.ToggleLike(ctx, author.ID, uuid.New())
	assert.ErrorIs(t, err, domain.ErrCommentNotFound)
}

func TestCommentService_Delete(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	commentService := service.NewCommentService(repos.Comment, repos.Post)
	ctx := context.Background()

	author, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	stranger, _ := testutil.NewUserBuilder().WithEmail("stranger@x.com").Build(t, testDB.DB)
	post := testutil.NewPostBuilder(author.ID).Build(t, testDB.DB)

	root := testutil.NewCommentBuilder(author.ID, post.ID).Build(t, testDB.DB)
	child, err := commentService.Reply(ctx, author.ID, root.ID, "child")
	require.NoError(t, err)
	grandchild, err := commentService.Reply(ctx, author.ID, child.ID, "grandchild")
	require.NoError(t, err)

	err = commentService.Delete(ctx, stranger.ID, root.ID)
	assert.ErrorIs(t, err, domain.ErrNotAuthor)

	err = commentService.Delete(ctx, author.ID, uuid.New())
	assert.ErrorIs(t, err, domain.ErrCommentNotFound)

	require.NoError(t, commentService.Delete(ctx, author.ID, root.ID))

	// The root and its direct child are gone; the grandchild survives with a
	// dangling parent reference.
	var count int64
	require.NoError(t, testDB.DB.Model(&domain.Comment{}).
		Where("id IN ?", []uuid.UUID{root.ID, child.ID}).
		Count(&count).Error)
	assert.Zero(t, count)

	require.NoError(t, testDB.DB.Model(&domain.Comment{}).
		Where("id = ?", grandchild.ID).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
