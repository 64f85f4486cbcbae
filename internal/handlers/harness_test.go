package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vaughan-dsouza/postboard/internal/auth"
	"github.com/vaughan-dsouza/postboard/internal/models"
	"github.com/vaughan-dsouza/postboard/internal/session"
)

var testSecret = []byte("test-secret")

type testApp struct {
	users  *fakeUsers
	posts  *fakePosts
	router http.Handler
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	users := newFakeUsers()
	posts := newFakePosts()
	h := &Handler{
		Auth:  NewAuthHandler(users, testSecret),
		Posts: NewPostHandler(posts),
		Views: NewViewHandler(users, posts, testSecret),
	}
	rv := auth.NewResolver(users, testSecret)
	return &testApp{users: users, posts: posts, router: Routes(h, rv)}
}

// doJSON performs an API request, optionally with a session cookie.
func (a *testApp) doJSON(t *testing.T, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

// doForm performs a browser-style form POST.
func (a *testApp) doForm(t *testing.T, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) doGet(t *testing.T, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName && c.Value != "" {
			return c
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

// signup registers a user through the API and returns their session.
func (a *testApp) signup(t *testing.T, name, email, pw string) *http.Cookie {
	t.Helper()

	rec := a.doJSON(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"name": name, "email": email, "password": pw,
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return sessionCookie(t, rec)
}

func (a *testApp) login(t *testing.T, email, pw string) *http.Cookie {
	t.Helper()

	rec := a.doJSON(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email": email, "password": pw,
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return sessionCookie(t, rec)
}

// promote flips a user's stored role to admin. The change only reaches a
// session minted after the next login.
func (a *testApp) promote(t *testing.T, email string) {
	t.Helper()

	a.users.mu.Lock()
	defer a.users.mu.Unlock()
	u, ok := a.users.users[email]
	require.True(t, ok, "unknown user %s", email)
	u.Role = models.RoleAdmin
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}
