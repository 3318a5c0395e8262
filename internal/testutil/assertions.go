package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Envelope mirrors the API's response wrapper for decoding in tests.
type Envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

// PostJSON sends a JSON body with any cookies attached.
func PostJSON(t *testing.T, client *http.Client, url string, body any, cookies ...*http.Cookie) *http.Response {
	t.Helper()
	return doJSON(t, client, http.MethodPost, url, body, cookies...)
}

// PatchJSON sends a JSON PATCH request.
func PatchJSON(t *testing.T, client *http.Client, url string, body any, cookies ...*http.Cookie) *http.Response {
	t.Helper()
	return doJSON(t, client, http.MethodPatch, url, body, cookies...)
}

func doJSON(t *testing.T, client *http.Client, method, url string, body any, cookies ...*http.Cookie) *http.Response {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err, "failed to marshal request body")

	req, err := http.NewRequest(method, url, bytes.NewReader(payload))
	require.NoError(t, err, "failed to build request")
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	resp, err := client.Do(req)
	require.NoError(t, err, "request failed")
	return resp
}

// AssertStatusCode verifies the HTTP response status code
func AssertStatusCode(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	assert.Equal(t, expected, resp.StatusCode, "unexpected status code")
}

// DecodeEnvelope reads and decodes the response wrapper.
func DecodeEnvelope(t *testing.T, resp *http.Response) Envelope {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	var env Envelope
	require.NoError(t, json.Unmarshal(body, &env), "failed to unmarshal response: %s", string(body))
	return env
}

// AssertErrorResponse verifies status code plus the envelope's message.
func AssertErrorResponse(t *testing.T, resp *http.Response, expectedStatus int, expectedMessage string) {
	t.Helper()

	assert.Equal(t, expectedStatus, resp.StatusCode, "unexpected status code")
	env := DecodeEnvelope(t, resp)
	assert.Contains(t, env.Message, expectedMessage, "error message mismatch")
}

// CookieByName returns the named Set-Cookie value, or nil.
func CookieByName(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
