package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

// seedUsers registers alice, bob, and an admin, and returns their
// sessions. The admin is promoted after signup and logs in again so the
// new role lands in the token.
func seedUsers(t *testing.T, app *testApp) (alice, bob, admin *http.Cookie) {
	t.Helper()

	alice = app.signup(t, "Alice", "alice@x.com", "hunter22")
	bob = app.signup(t, "Bob", "bob@x.com", "hunter22")
	app.signup(t, "Root", "root@x.com", "hunter22")
	app.promote(t, "root@x.com")
	admin = app.login(t, "root@x.com", "hunter22")
	return alice, bob, admin
}

func createPost(t *testing.T, app *testApp, cookie *http.Cookie, title string) int64 {
	t.Helper()

	rec := app.doJSON(t, http.MethodPost, "/api/posts", map[string]string{
		"title": title, "content": "some content",
	}, cookie)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	post := decodeBody(t, rec)["post"].(map[string]any)
	return int64(post["id"].(float64))
}

func TestListPosts_AnyAuthenticatedUser(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	alice, bob, _ := seedUsers(t, app)

	createPost(t, app, alice, "Alice's post")

	require.Equal(t, http.StatusUnauthorized, app.doGet(t, "/api/posts", nil).Code)

	rec := app.doGet(t, "/api/posts", bob)
	require.Equal(t, http.StatusOK, rec.Code)
	posts := decodeBody(t, rec)["posts"].([]any)
	require.Len(t, posts, 1)
}

func TestCreatePost_SnapshotsAuthor(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	alice, _, _ := seedUsers(t, app)

	rec := app.doJSON(t, http.MethodPost, "/api/posts", map[string]string{
		"title": "T", "content": "C",
	}, alice)
	require.Equal(t, http.StatusCreated, rec.Code)

	post := decodeBody(t, rec)["post"].(map[string]any)
	require.Equal(t, float64(1), post["author_id"])
	require.Equal(t, "Alice", post["author_name"])
}

func TestCreatePost_Validation(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	alice, _, _ := seedUsers(t, app)

	rec := app.doJSON(t, http.MethodPost, "/api/posts", map[string]string{
		"title": "only a title",
	}, alice)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Title and content are required", decodeBody(t, rec)["error"])
}

// Read-one: author or admin; other users are forbidden.
func TestGetPost_OwnerOrAdmin(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	alice, bob, admin := seedUsers(t, app)

	id := createPost(t, app, alice, "private-ish")
	path := fmt.Sprintf("/api/posts/%d", id)

	require.Equal(t, http.StatusOK, app.doGet(t, path, alice).Code)
	require.Equal(t, http.StatusOK, app.doGet(t, path, admin).Code)
	require.Equal(t, http.StatusForbidden, app.doGet(t, path, bob).Code)
	require.Equal(t, http.StatusUnauthorized, app.doGet(t, path, nil).Code)
}

func TestGetPost_NotFound(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	alice, _, _ := seedUsers(t, app)

	rec := app.doGet(t, "/api/posts/999", alice)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Post not found", decodeBody(t, rec)["error"])
}

// Edits are author-only: even admins are turned away.
func TestUpdatePost_StrictOwner(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	alice, bob, admin := seedUsers(t, app)

	id := createPost(t, app, alice, "original")
	path := fmt.Sprintf("/api/posts/%d", id)
	edit := map[string]string{"title": "edited", "content": "new content"}

	for name, cookie := range map[string]*http.Cookie{"other user": bob, "admin": admin} {
		rec := app.doJSON(t, http.MethodPut, path, edit, cookie)
		require.Equal(t, http.StatusForbidden, rec.Code, name)
		require.Equal(t, "You can only edit your own posts", decodeBody(t, rec)["error"], name)
	}

	rec := app.doJSON(t, http.MethodPut, path, edit, alice)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "edited", decodeBody(t, rec)["post"].(map[string]any)["title"])
}

func TestUpdatePost_Validation(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	alice, _, _ := seedUsers(t, app)

	id := createPost(t, app, alice, "original")

	rec := app.doJSON(t, http.MethodPut, fmt.Sprintf("/api/posts/%d", id), map[string]string{
		"title": "", "content": "",
	}, alice)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

// Deletes are admin-only: being the author is not enough.
func TestDeletePost_AdminOnly(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	alice, _, admin := seedUsers(t, app)

	id := createPost(t, app, alice, "doomed")
	path := fmt.Sprintf("/api/posts/%d", id)

	rec := app.doJSON(t, http.MethodDelete, path, nil, alice)
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, "Forbidden", decodeBody(t, rec)["error"])

	require.Equal(t, http.StatusNoContent, app.doJSON(t, http.MethodDelete, path, nil, admin).Code)
	require.Equal(t, http.StatusNotFound, app.doGet(t, path, admin).Code)
}

func TestAdminList_ForbiddenForUsers(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	alice, _, admin := seedUsers(t, app)

	require.Equal(t, http.StatusForbidden, app.doGet(t, "/api/admin/posts", alice).Code)
	require.Equal(t, http.StatusOK, app.doGet(t, "/api/admin/posts", admin).Code)
	require.Equal(t, http.StatusUnauthorized, app.doGet(t, "/api/admin/posts", nil).Code)
}

func TestDeleteAllPosts_AdminOnly(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	alice, bob, admin := seedUsers(t, app)

	createPost(t, app, alice, "one")
	createPost(t, app, bob, "two")

	require.Equal(t, http.StatusForbidden, app.doJSON(t, http.MethodDelete, "/api/admin/posts", nil, alice).Code)

	require.Equal(t, http.StatusNoContent, app.doJSON(t, http.MethodDelete, "/api/admin/posts", nil, admin).Code)

	rec := app.doGet(t, "/api/posts", alice)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, decodeBody(t, rec)["posts"])
}

// A user promoted to admin keeps their old powers until they log in
// again: the token's role is frozen at issuance.
func TestPromotion_TakesEffectAtNextLogin(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	oldSession := app.signup(t, "Carol", "carol@x.com", "hunter22")
	app.promote(t, "carol@x.com")

	require.Equal(t, http.StatusForbidden, app.doGet(t, "/api/admin/posts", oldSession).Code)

	newSession := app.login(t, "carol@x.com", "hunter22")
	require.Equal(t, http.StatusOK, app.doGet(t, "/api/admin/posts", newSession).Code)
}
