package testutil

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Browser is an http.Client with a cookie jar, driving the server the way
// a real browser would: cookies persist, redirects are followed.
type Browser struct {
	t      *testing.T
	ts     *TestServer
	client *http.Client
}

// NewBrowser returns a fresh browser with its own cookie jar.
func NewBrowser(t *testing.T, ts *TestServer) *Browser {
	t.Helper()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err, "failed to create cookie jar")

	return &Browser{
		t:  t,
		ts: ts,
		client: &http.Client{
			Jar: jar,
		},
	}
}

// Get fetches a path and returns the final response after redirects.
func (b *Browser) Get(path string) *http.Response {
	b.t.Helper()

	resp, err := b.client.Get(b.ts.URL(path))
	require.NoError(b.t, err, "GET %s failed", path)
	return resp
}

// PostForm submits a form and returns the final response after redirects.
func (b *Browser) PostForm(path string, values url.Values) *http.Response {
	b.t.Helper()

	resp, err := b.client.PostForm(b.ts.URL(path), values)
	require.NoError(b.t, err, "POST %s failed", path)
	return resp
}

// Register submits the registration form for the given credentials.
func (b *Browser) Register(username, name, email, password string) *http.Response {
	b.t.Helper()

	return b.PostForm("/register", url.Values{
		"username":         {username},
		"name":             {name},
		"email":            {email},
		"favorite_color":   {"blue"},
		"password":         {password},
		"password_confirm": {password},
	})
}

// Login submits the login form.
func (b *Browser) Login(username, password string) *http.Response {
	b.t.Helper()

	return b.PostForm("/login", url.Values{
		"username": {username},
		"password": {password},
	})
}

// ReadBody drains and returns the response body.
func ReadBody(t *testing.T, resp *http.Response) string {
	t.Helper()

	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")
	return string(body)
}

// AssertBodyContains verifies the rendered page contains the fragment.
func AssertBodyContains(t *testing.T, body, fragment string) {
	t.Helper()
	assert.Contains(t, body, fragment, "page body mismatch")
}

// AssertStatusCode verifies the HTTP response status code.
func AssertStatusCode(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	assert.Equal(t, expected, resp.StatusCode, "unexpected status code")
}
