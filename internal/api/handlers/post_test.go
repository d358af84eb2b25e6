package handlers_test

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/sem/quill/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func signUp(t *testing.T, ts *testutil.TestServer, username string) *testutil.Browser {
	t.Helper()
	browser := testutil.NewBrowser(t, ts)
	browser.Register(username, username, username+"@example.com", "secretpass").Body.Close()
	browser.Login(username, "secretpass").Body.Close()
	return browser
}

func createPost(t *testing.T, browser *testutil.Browser, title, content string) *http.Response {
	t.Helper()
	return browser.PostForm("/posts/new", url.Values{
		"title":   {title},
		"content": {content},
		"slug":    {"some-slug"},
	})
}

func TestPostCreateRequiresLogin(t *testing.T) {
	ts := testutil.NewTestServer(t)
	anonymous := testutil.NewBrowser(t, ts)

	// Both the form page and the submission bounce to login.
	resp := anonymous.Get("/posts/new")
	body := testutil.ReadBody(t, resp)
	testutil.AssertBodyContains(t, body, "Please log in to view that page.")

	resp = createPost(t, anonymous, "Sneaky", "content")
	body = testutil.ReadBody(t, resp)
	testutil.AssertBodyContains(t, body, "Please log in to view that page.")
}

func TestPostLifecycle(t *testing.T) {
	ts := testutil.NewTestServer(t)
	author := signUp(t, ts, "author")

	resp := createPost(t, author, "My First Post", "Some thoughtful words.")
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	body := testutil.ReadBody(t, resp)
	testutil.AssertBodyContains(t, body, "Blog post submitted successfully!")
	testutil.AssertBodyContains(t, body, "My First Post")

	// The post shows up on the listing page.
	resp = author.Get("/posts")
	body = testutil.ReadBody(t, resp)
	testutil.AssertBodyContains(t, body, "My First Post")

	// The owner edits it.
	resp = author.PostForm("/posts/1/edit", url.Values{
		"title":   {"My First Post, Revised"},
		"content": {"Better words."},
		"slug":    {"some-slug"},
	})
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	body = testutil.ReadBody(t, resp)
	testutil.AssertBodyContains(t, body, "Post updated successfully!")
	testutil.AssertBodyContains(t, body, "My First Post, Revised")

	// The owner deletes it.
	resp = author.PostForm("/posts/1/delete", url.Values{})
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	body = testutil.ReadBody(t, resp)
	testutil.AssertBodyContains(t, body, "Post deleted successfully!")

	resp = author.Get("/posts/1")
	testutil.AssertStatusCode(t, resp, http.StatusNotFound)
	resp.Body.Close()
}

func TestPostOwnershipEnforced(t *testing.T) {
	ts := testutil.NewTestServer(t)
	author := signUp(t, ts, "owner")
	intruder := signUp(t, ts, "intruder")

	createPost(t, author, "Owned", "keep out").Body.Close()

	// The edit form is refused.
	resp := intruder.Get("/posts/1/edit")
	body := testutil.ReadBody(t, resp)
	testutil.AssertBodyContains(t, body, "You are not authorized to edit that post.")

	// So is the submission itself.
	resp = intruder.PostForm("/posts/1/edit", url.Values{
		"title":   {"Hijacked"},
		"content": {"mine now"},
		"slug":    {"some-slug"},
	})
	body = testutil.ReadBody(t, resp)
	testutil.AssertBodyContains(t, body, "You are not authorized to edit that post.")

	resp = intruder.PostForm("/posts/1/delete", url.Values{})
	body = testutil.ReadBody(t, resp)
	testutil.AssertBodyContains(t, body, "You are not authorized to delete that post.")

	// The post survives untouched.
	resp = author.Get("/posts/1")
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	body = testutil.ReadBody(t, resp)
	testutil.AssertBodyContains(t, body, "Owned")
	assert.NotContains(t, body, "Hijacked")
}

func TestPostShowMissing(t *testing.T) {
	ts := testutil.NewTestServer(t)
	browser := testutil.NewBrowser(t, ts)

	for _, path := range []string{"/posts/999", "/posts/notanumber"} {
		resp := browser.Get(path)
		testutil.AssertStatusCode(t, resp, http.StatusNotFound)
		resp.Body.Close()
	}
}

func TestPostSearch(t *testing.T) {
	ts := testutil.NewTestServer(t)
	author := signUp(t, ts, "writer")

	createPost(t, author, "Gardening Tips", "How to grow tomatoes in pots.").Body.Close()
	createPost(t, author, "Cooking Notes", "What to do with too many tomatoes.").Body.Close()
	createPost(t, author, "Travel Log", "A week in the mountains.").Body.Close()

	resp := author.PostForm("/search", url.Values{"searched": {"tomatoes"}})
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	body := testutil.ReadBody(t, resp)
	testutil.AssertBodyContains(t, body, "Gardening Tips")
	testutil.AssertBodyContains(t, body, "Cooking Notes")
	assert.NotContains(t, body, "Travel Log")

	// Blank searches re-render the form instead of dumping everything.
	resp = author.PostForm("/search", url.Values{"searched": {"   "}})
	testutil.AssertStatusCode(t, resp, http.StatusUnprocessableEntity)
	body = testutil.ReadBody(t, resp)
	assert.NotContains(t, body, "Gardening Tips")
}

func TestAdminDeleteUser(t *testing.T) {
	ts := testutil.NewTestServer(t)
	admin := signUp(t, ts, "boss")
	signUp(t, ts, "idle")
	prolific := signUp(t, ts, "prolific")
	createPost(t, prolific, "Keeper", "this post pins its author").Body.Close()

	users, err := ts.Services.User.List(context.Background())
	assert.NoError(t, err)
	byName := map[string]int64{}
	for _, u := range users {
		byName[u.Username] = u.ID
	}

	// Deleting yourself is refused.
	resp := admin.PostForm(fmt.Sprintf("/admin/users/%d/delete", byName["boss"]), url.Values{})
	body := testutil.ReadBody(t, resp)
	testutil.AssertBodyContains(t, body, "You can&#39;t delete your own account while logged in.")

	// Users who still own posts are refused.
	resp = admin.PostForm(fmt.Sprintf("/admin/users/%d/delete", byName["prolific"]), url.Values{})
	body = testutil.ReadBody(t, resp)
	testutil.AssertBodyContains(t, body, "That user still owns posts; delete those first.")

	// A user without posts goes away.
	resp = admin.PostForm(fmt.Sprintf("/admin/users/%d/delete", byName["idle"]), url.Values{})
	body = testutil.ReadBody(t, resp)
	testutil.AssertBodyContains(t, body, "User deleted successfully!")
	assert.NotContains(t, body, ">idle<")
}
