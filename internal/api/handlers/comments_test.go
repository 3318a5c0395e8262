package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/dom/devdreams-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentEndpoints(t *testing.T) {
	ts := testutil.NewTestServer(t)
	client := ts.Server.Client()

	alice := signup(t, ts, "alice", "alice@x.com")

	createPost := testutil.PostJSON(t, client, ts.APIURL("/posts/"), map[string]any{
		"title":   "Discussion",
		"content": "Thoughts?",
	}, alice)
	postEnv := testutil.DecodeEnvelope(t, createPost)
	createPost.Body.Close()

	var post struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(postEnv.Data, &post))

	createComment := testutil.PostJSON(t, client, ts.APIURL("/comments/posts/"+post.ID), map[string]string{
		"content": "Top level.",
	}, alice)
	commentEnv := testutil.DecodeEnvelope(t, createComment)
	createComment.Body.Close()
	require.Equal(t, http.StatusCreated, createComment.StatusCode)

	var comment struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(commentEnv.Data, &comment))

	reply := testutil.PostJSON(t, client, ts.APIURL("/comments/comment/"+comment.ID+"/reply"), map[string]string{
		"content": "A reply.",
	}, alice)
	reply.Body.Close()
	testutil.AssertStatusCode(t, reply, http.StatusCreated)

	t.Run("listing nests replies", func(t *testing.T) {
		resp, err := client.Get(ts.APIURL("/comments/posts/" + post.ID))
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)
		env := testutil.DecodeEnvelope(t, resp)

		var comments []struct {
			ID            string `json:"id"`
			Content       string `json:"content"`
			ChildComments []struct {
				Content string `json:"content"`
			} `json:"childComments"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &comments))
		require.Len(t, comments, 1)
		assert.Equal(t, "Top level.", comments[0].Content)
		require.Len(t, comments[0].ChildComments, 1)
		assert.Equal(t, "A reply.", comments[0].ChildComments[0].Content)
	})

	t.Run("reply to missing comment", func(t *testing.T) {
		resp := testutil.PostJSON(t, client, ts.APIURL("/comments/comment/00000000-0000-0000-0000-000000000000/reply"), map[string]string{
			"content": "Nobody home.",
		}, alice)
		defer resp.Body.Close()
		testutil.AssertErrorResponse(t, resp, http.StatusNotFound, "parent comment not found")
	})

	t.Run("empty content", func(t *testing.T) {
		resp := testutil.PostJSON(t, client, ts.APIURL("/comments/posts/"+post.ID), map[string]string{}, alice)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusBadRequest)
	})
}
