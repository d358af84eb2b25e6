package handlers_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/sem/quill/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRegisterLoginFlow(t *testing.T) {
	ts := testutil.NewTestServer(t)
	browser := testutil.NewBrowser(t, ts)

	// Register lands on the login page with a success flash.
	resp := browser.Register("alice", "Alice", "alice@example.com", "hunter2hunter2")
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	body := testutil.ReadBody(t, resp)
	testutil.AssertBodyContains(t, body, "User registered successfully! Please log in.")

	// Flashes drain on display: a reload no longer shows the message.
	resp = browser.Get("/login")
	body = testutil.ReadBody(t, resp)
	assert.NotContains(t, body, "User registered successfully!")

	// Login lands on the dashboard.
	resp = browser.Login("alice", "hunter2hunter2")
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	body = testutil.ReadBody(t, resp)
	testutil.AssertBodyContains(t, body, "Logged in successfully!")
	testutil.AssertBodyContains(t, body, "alice")

	// Logout lands back on the login page with its own flash.
	resp = browser.Get("/logout")
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	body = testutil.ReadBody(t, resp)
	testutil.AssertBodyContains(t, body, "You have been logged out!")

	// The dashboard is locked again.
	resp = browser.Get("/dashboard")
	body = testutil.ReadBody(t, resp)
	testutil.AssertBodyContains(t, body, "Please log in to view that page.")
}

func TestRegisterValidation(t *testing.T) {
	ts := testutil.NewTestServer(t)
	browser := testutil.NewBrowser(t, ts)

	tests := []struct {
		name     string
		username string
		email    string
		password string
		confirm  string
		wantErr  string
	}{
		{
			name:     "missing username",
			username: "",
			email:    "bob@example.com",
			password: "secretpass",
			confirm:  "secretpass",
			wantErr:  "The username field is required.",
		},
		{
			name:     "password mismatch",
			username: "bob",
			email:    "bob@example.com",
			password: "secretpass",
			confirm:  "different",
			wantErr:  "Passwords must match.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := browser.PostForm("/register", url.Values{
				"username":         {tt.username},
				"name":             {"Bob"},
				"email":            {tt.email},
				"favorite_color":   {"red"},
				"password":         {tt.password},
				"password_confirm": {tt.confirm},
			})
			testutil.AssertStatusCode(t, resp, http.StatusUnprocessableEntity)
			body := testutil.ReadBody(t, resp)
			testutil.AssertBodyContains(t, body, tt.wantErr)
		})
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	ts := testutil.NewTestServer(t)
	browser := testutil.NewBrowser(t, ts)

	resp := browser.Register("carol", "Carol", "carol@example.com", "secretpass")
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	resp.Body.Close()

	resp = browser.Register("carol", "Other Carol", "other@example.com", "secretpass")
	testutil.AssertStatusCode(t, resp, http.StatusUnprocessableEntity)
	body := testutil.ReadBody(t, resp)
	testutil.AssertBodyContains(t, body, "That username or email is already taken.")
}

func TestLoginBadCredentials(t *testing.T) {
	ts := testutil.NewTestServer(t)
	browser := testutil.NewBrowser(t, ts)

	resp := browser.Register("dave", "Dave", "dave@example.com", "secretpass")
	resp.Body.Close()

	// Wrong password and unknown user produce the same message.
	for _, creds := range [][2]string{
		{"dave", "wrongpass"},
		{"nobody", "secretpass"},
	} {
		resp := browser.Login(creds[0], creds[1])
		testutil.AssertStatusCode(t, resp, http.StatusUnprocessableEntity)
		body := testutil.ReadBody(t, resp)
		testutil.AssertBodyContains(t, body, "Invalid username or password. Try again.")
	}
}

func TestAdminPageAccess(t *testing.T) {
	ts := testutil.NewTestServer(t)

	// First registered user becomes the administrator.
	admin := testutil.NewBrowser(t, ts)
	admin.Register("root", "Root", "root@example.com", "secretpass").Body.Close()
	admin.Login("root", "secretpass").Body.Close()

	regular := testutil.NewBrowser(t, ts)
	regular.Register("pleb", "Pleb", "pleb@example.com", "secretpass").Body.Close()
	regular.Login("pleb", "secretpass").Body.Close()

	anonymous := testutil.NewBrowser(t, ts)

	resp := admin.Get("/admin")
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	body := testutil.ReadBody(t, resp)
	testutil.AssertBodyContains(t, body, "Admin")

	resp = regular.Get("/admin")
	testutil.AssertStatusCode(t, resp, http.StatusForbidden)
	resp.Body.Close()

	resp = anonymous.Get("/admin")
	testutil.AssertStatusCode(t, resp, http.StatusForbidden)
	resp.Body.Close()
}

func TestProfileUpdate(t *testing.T) {
	ts := testutil.NewTestServer(t)
	browser := testutil.NewBrowser(t, ts)

	browser.Register("erin", "Erin", "erin@example.com", "secretpass").Body.Close()
	browser.Login("erin", "secretpass").Body.Close()

	resp := browser.PostForm("/dashboard", url.Values{
		"name":           {"Erin Updated"},
		"username":       {"erin"},
		"email":          {"erin@example.com"},
		"favorite_color": {"teal"},
	})
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	body := testutil.ReadBody(t, resp)
	testutil.AssertBodyContains(t, body, "User updated successfully!")
	testutil.AssertBodyContains(t, body, "Erin Updated")
}
