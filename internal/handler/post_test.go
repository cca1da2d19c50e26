package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/postline-dev/postline/internal/domain"
	internal_errors "github.com/postline-dev/postline/internal/errors"
	"github.com/postline-dev/postline/internal/pagination"
)

func postForm(t *testing.T, target string, values url.Values) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestIndexServedFromCacheOnSecondRequest(t *testing.T) {
	h, deps := newTestHandler()
	router := testRouter(h)

	listCalls := 0
	deps.posts.MockList = func(page int) ([]domain.Post, pagination.Page, error) {
		listCalls++
		posts := []domain.Post{{Id: 1, Text: "hello", Author: domain.User{Username: "leo"}}}
		return posts, pagination.New(page, domain.PostsPerPage, len(posts)), nil
	}

	first := serveAs(router, httptest.NewRequest(http.MethodGet, "/", nil), nil)
	require.Equal(t, http.StatusOK, first.Code)

	second := serveAs(router, httptest.NewRequest(http.MethodGet, "/", nil), nil)
	require.Equal(t, http.StatusOK, second.Code)

	assert.Equal(t, 1, listCalls, "second request should hit the page cache")
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Contains(t, second.Header().Get("Content-Type"), "text/html")
}

func TestIndexCacheKeyedByRequestedPage(t *testing.T) {
	h, deps := newTestHandler()
	router := testRouter(h)

	var pagesAsked []int
	deps.posts.MockList = func(page int) ([]domain.Post, pagination.Page, error) {
		pagesAsked = append(pagesAsked, page)
		return nil, pagination.New(page, domain.PostsPerPage, 25), nil
	}

	serveAs(router, httptest.NewRequest(http.MethodGet, "/?page=1", nil), nil)
	serveAs(router, httptest.NewRequest(http.MethodGet, "/?page=2", nil), nil)
	serveAs(router, httptest.NewRequest(http.MethodGet, "/?page=2", nil), nil)

	assert.Equal(t, []int{1, 2}, pagesAsked)
}

func TestIndexBadPageFallsBackToFirst(t *testing.T) {
	h, deps := newTestHandler()
	router := testRouter(h)

	deps.posts.MockList = func(page int) ([]domain.Post, pagination.Page, error) {
		assert.Equal(t, 1, page)
		return nil, pagination.New(page, domain.PostsPerPage, 0), nil
	}

	rr := serveAs(router, httptest.NewRequest(http.MethodGet, "/?page=banana", nil), nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestGroupPostsUnknownSlugIs404(t *testing.T) {
	h, deps := newTestHandler()
	router := testRouter(h)

	deps.posts.MockListGroup = func(slug string, page int) (*domain.Group, []domain.Post, pagination.Page, error) {
		return nil, nil, pagination.Page{}, notFoundErr("Group")
	}

	rr := serveAs(router, httptest.NewRequest(http.MethodGet, "/group/nope/", nil), nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestProfileShowsTotalPosts(t *testing.T) {
	h, deps := newTestHandler()
	router := testRouter(h)

	deps.posts.MockListAuthor = func(username string, page int) (*domain.User, []domain.Post, pagination.Page, error) {
		return &domain.User{Id: 7, Username: username}, nil, pagination.New(page, domain.PostsPerPage, 23), nil
	}

	rr := serveAs(router, httptest.NewRequest(http.MethodGet, "/profile/leo/", nil), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "profile leo total=23")
}

func TestProfileUnknownUsernameIs404(t *testing.T) {
	h, deps := newTestHandler()
	router := testRouter(h)

	deps.posts.MockListAuthor = func(username string, page int) (*domain.User, []domain.Post, pagination.Page, error) {
		return nil, nil, pagination.Page{}, notFoundErr("User")
	}

	rr := serveAs(router, httptest.NewRequest(http.MethodGet, "/profile/ghost/", nil), nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestPostDetailTitleIsTruncated(t *testing.T) {
	h, deps := newTestHandler()
	router := testRouter(h)

	longText := strings.Repeat("a", 45)
	deps.posts.MockGet = func(id int64) (*domain.Post, error) {
		return &domain.Post{Id: id, Text: longText, Author: domain.User{Id: 1, Username: "leo"}}, nil
	}

	rr := serveAs(router, httptest.NewRequest(http.MethodGet, "/posts/5/", nil), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), strings.Repeat("a", 30))
	assert.NotContains(t, rr.Body.String(), strings.Repeat("a", 31))
}

func TestPostDetailUnknownIdIs404(t *testing.T) {
	h, deps := newTestHandler()
	router := testRouter(h)

	deps.posts.MockGet = func(id int64) (*domain.Post, error) {
		return nil, notFoundErr("Post")
	}

	rr := serveAs(router, httptest.NewRequest(http.MethodGet, "/posts/99/", nil), nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCreatePostRedirectsToProfile(t *testing.T) {
	h, deps := newTestHandler()
	router := testRouter(h)
	user := &domain.User{Id: 3, Username: "leo"}

	var created domain.PostDraft
	deps.posts.MockCreate = func(author domain.User, draft domain.PostDraft) (int64, error) {
		assert.Equal(t, user.Id, author.Id)
		created = draft
		return 10, nil
	}

	req := postForm(t, "/create/", url.Values{"text": {"new post"}, "group": {"2"}})
	rr := serveAs(router, req, user)

	require.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/profile/leo/", rr.Header().Get("Location"))
	assert.Equal(t, "new post", created.Text)
	require.NotNil(t, created.GroupId)
	assert.Equal(t, int64(2), *created.GroupId)
}

func TestCreatePostInvalidTextRerendersForm(t *testing.T) {
	h, deps := newTestHandler()
	router := testRouter(h)

	deps.posts.MockCreate = func(author domain.User, draft domain.PostDraft) (int64, error) {
		t.Fatal("create should not be called for an invalid form")
		return 0, nil
	}

	for _, text := range []string{"", strings.Repeat("x", domain.PostTextLimit+1)} {
		req := postForm(t, "/create/", url.Values{"text": {text}})
		rr := serveAs(router, req, &domain.User{Id: 3, Username: "leo"})

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "errors=1")
	}
}

func TestCreatePostExactLimitAccepted(t *testing.T) {
	h, deps := newTestHandler()
	router := testRouter(h)

	called := false
	deps.posts.MockCreate = func(author domain.User, draft domain.PostDraft) (int64, error) {
		called = true
		return 1, nil
	}

	req := postForm(t, "/create/", url.Values{"text": {strings.Repeat("x", domain.PostTextLimit)}})
	rr := serveAs(router, req, &domain.User{Id: 3, Username: "leo"})

	assert.Equal(t, http.StatusFound, rr.Code)
	assert.True(t, called)
}

func TestEditPostNonAuthorRedirectsToDetail(t *testing.T) {
	h, deps := newTestHandler()
	router := testRouter(h)

	deps.posts.MockGet = func(id int64) (*domain.Post, error) {
		return &domain.Post{Id: id, Text: "original", Author: domain.User{Id: 1, Username: "owner"}}, nil
	}
	deps.posts.MockUpdate = func(id int64, editor domain.User, draft domain.PostDraft) error {
		t.Fatal("update should not be reached for a non-author")
		return nil
	}

	other := &domain.User{Id: 2, Username: "someone"}

	rr := serveAs(router, httptest.NewRequest(http.MethodGet, "/posts/5/edit/", nil), other)
	require.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/posts/5/", rr.Header().Get("Location"))

	// the redirect wins even when the submitted form is invalid
	rr = serveAs(router, postForm(t, "/posts/5/edit/", url.Values{"text": {""}}), other)
	require.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/posts/5/", rr.Header().Get("Location"))
}

func TestEditPostOwnerUpdatesAndRedirects(t *testing.T) {
	h, deps := newTestHandler()
	router := testRouter(h)
	owner := &domain.User{Id: 1, Username: "owner"}

	deps.posts.MockGet = func(id int64) (*domain.Post, error) {
		return &domain.Post{Id: id, Text: "original", Author: *owner}, nil
	}

	var updatedText string
	deps.posts.MockUpdate = func(id int64, editor domain.User, draft domain.PostDraft) error {
		assert.Equal(t, int64(5), id)
		assert.Equal(t, owner.Id, editor.Id)
		updatedText = draft.Text
		return nil
	}

	rr := serveAs(router, postForm(t, "/posts/5/edit/", url.Values{"text": {"edited"}}), owner)
	require.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/posts/5/", rr.Header().Get("Location"))
	assert.Equal(t, "edited", updatedText)
}

func TestEditFormPrefilledWithPost(t *testing.T) {
	h, deps := newTestHandler()
	router := testRouter(h)
	owner := &domain.User{Id: 1, Username: "owner"}

	deps.posts.MockGet = func(id int64) (*domain.Post, error) {
		return &domain.Post{Id: id, Text: "original", Author: *owner, Group: &domain.Group{Id: 4}}, nil
	}

	rr := serveAs(router, httptest.NewRequest(http.MethodGet, "/posts/5/edit/", nil), owner)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "edit=true")
}

func TestCreatePostWithoutUserIsUnauthorized(t *testing.T) {
	h, _ := newTestHandler()
	router := testRouter(h)

	rr := serveAs(router, postForm(t, "/create/", url.Values{"text": {"hi"}}), nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestPostDetailBadIdIsBadRequest(t *testing.T) {
	h, _ := newTestHandler()
	router := testRouter(h)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/posts/abc/", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func notFoundErr(what string) error {
	return internal_errors.NotFound(what)
}
