package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/dom/devdreams-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// signup runs the signup endpoint and returns the access token cookie for
// authenticated follow-up requests.
func signup(t *testing.T, ts *testutil.TestServer, username, email string) *http.Cookie {
	t.Helper()

	resp := testutil.PostJSON(t, ts.Server.Client(), ts.APIURL("/auth/signup"), map[string]string{
		"username":        username,
		"email":           email,
		"password":        "Str0ng!Pass",
		"confirmPassword": "Str0ng!Pass",
	})
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	access := testutil.CookieByName(resp, "accessToken")
	require.NotNil(t, access)
	return access
}

func TestPostEndpoints(t *testing.T) {
	ts := testutil.NewTestServer(t)
	client := ts.Server.Client()

	alice := signup(t, ts, "alice", "alice@x.com")
	bob := signup(t, ts, "bob", "bob@x.com")

	var postID string

	t.Run("create", func(t *testing.T) {
		resp := testutil.PostJSON(t, client, ts.APIURL("/posts/"), map[string]any{
			"title":   "Shipping a side project",
			"content": "Write things down.",
			"tags":    []string{"go", "notes"},
		}, alice)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusCreated)
		env := testutil.DecodeEnvelope(t, resp)

		var post struct {
			ID    string   `json:"id"`
			Title string   `json:"title"`
			Tags  []string `json:"tags"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &post))
		assert.Equal(t, "Shipping a side project", post.Title)
		assert.ElementsMatch(t, []string{"go", "notes"}, post.Tags)
		postID = post.ID
	})

	t.Run("create with missing fields", func(t *testing.T) {
		resp := testutil.PostJSON(t, client, ts.APIURL("/posts/"), map[string]any{}, alice)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusBadRequest)
		env := testutil.DecodeEnvelope(t, resp)
		assert.Len(t, env.Errors, 2)
	})

	t.Run("public read", func(t *testing.T) {
		resp, err := client.Get(ts.APIURL("/posts/" + postID))
		require.NoError(t, err)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusOK)
	})

	t.Run("toggle like", func(t *testing.T) {
		resp := testutil.PostJSON(t, client, ts.APIURL("/posts/"+postID+"/like"), nil, bob)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)
		env := testutil.DecodeEnvelope(t, resp)

		var result struct {
			Liked      bool `json:"liked"`
			LikesCount int  `json:"likesCount"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &result))
		assert.True(t, result.Liked)
		assert.Equal(t, 1, result.LikesCount)
	})

	t.Run("delete by non-author", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodDelete, ts.APIURL("/posts/"+postID), nil)
		require.NoError(t, err)
		req.AddCookie(bob)

		resp, err := client.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		testutil.AssertErrorResponse(t, resp, http.StatusForbidden, "not authorized")
	})
}

func TestBookmarkEndpoints(t *testing.T) {
	ts := testutil.NewTestServer(t)
	client := ts.Server.Client()

	alice := signup(t, ts, "alice", "alice@x.com")

	createPost := testutil.PostJSON(t, client, ts.APIURL("/posts/"), map[string]any{
		"title":   "Bookmark me",
		"content": "Content.",
	}, alice)
	env := testutil.DecodeEnvelope(t, createPost)
	createPost.Body.Close()

	var post struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &post))

	resp := testutil.PostJSON(t, client, ts.APIURL("/bookmarks/"), map[string]string{
		"postId": post.ID,
	}, alice)
	resp.Body.Close()
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	// Duplicate bookmarks surface as 404; clients key off that today.
	dup := testutil.PostJSON(t, client, ts.APIURL("/bookmarks/"), map[string]string{
		"postId": post.ID,
	}, alice)
	defer dup.Body.Close()
	testutil.AssertErrorResponse(t, dup, http.StatusNotFound, "post already bookmarked")

	list, err := http.NewRequest(http.MethodGet, ts.APIURL("/bookmarks/"), nil)
	require.NoError(t, err)
	list.AddCookie(alice)
	listResp, err := client.Do(list)
	require.NoError(t, err)
	defer listResp.Body.Close()

	testutil.AssertStatusCode(t, listResp, http.StatusOK)
	listEnv := testutil.DecodeEnvelope(t, listResp)

	var bookmarks []struct {
		ID   string `json:"id"`
		Post struct {
			ID string `json:"id"`
		} `json:"post"`
	}
	require.NoError(t, json.Unmarshal(listEnv.Data, &bookmarks))
	require.Len(t, bookmarks, 1)
	assert.Equal(t, post.ID, bookmarks[0].Post.ID)
}
