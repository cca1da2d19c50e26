package handler

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/postline-dev/postline/internal/cache"
	"github.com/postline-dev/postline/internal/domain"
	"github.com/postline-dev/postline/internal/markdown"
	mw "github.com/postline-dev/postline/internal/middleware"
	"github.com/postline-dev/postline/internal/pagination"
)

type MockPostService struct {
	MockList          func(page int) ([]domain.Post, pagination.Page, error)
	MockListGroup     func(slug string, page int) (*domain.Group, []domain.Post, pagination.Page, error)
	MockListAuthor    func(username string, page int) (*domain.User, []domain.Post, pagination.Page, error)
	MockGet           func(id int64) (*domain.Post, error)
	MockCountByAuthor func(authorId int64) (int, error)
	MockCreate        func(author domain.User, draft domain.PostDraft) (int64, error)
	MockUpdate        func(id int64, editor domain.User, draft domain.PostDraft) error
}

func (m *MockPostService) List(page int) ([]domain.Post, pagination.Page, error) {
	if m.MockList != nil {
		return m.MockList(page)
	}
	return nil, pagination.New(page, domain.PostsPerPage, 0), nil
}

func (m *MockPostService) ListGroup(slug string, page int) (*domain.Group, []domain.Post, pagination.Page, error) {
	if m.MockListGroup != nil {
		return m.MockListGroup(slug, page)
	}
	return &domain.Group{Slug: slug}, nil, pagination.New(page, domain.PostsPerPage, 0), nil
}

func (m *MockPostService) ListAuthor(username string, page int) (*domain.User, []domain.Post, pagination.Page, error) {
	if m.MockListAuthor != nil {
		return m.MockListAuthor(username, page)
	}
	return &domain.User{Username: username}, nil, pagination.New(page, domain.PostsPerPage, 0), nil
}

func (m *MockPostService) Get(id int64) (*domain.Post, error) {
	if m.MockGet != nil {
		return m.MockGet(id)
	}
	return &domain.Post{Id: id, Author: domain.User{Id: 1, Username: "author"}}, nil
}

func (m *MockPostService) CountByAuthor(authorId int64) (int, error) {
	if m.MockCountByAuthor != nil {
		return m.MockCountByAuthor(authorId)
	}
	return 0, nil
}

func (m *MockPostService) Create(author domain.User, draft domain.PostDraft) (int64, error) {
	if m.MockCreate != nil {
		return m.MockCreate(author, draft)
	}
	return 1, nil
}

func (m *MockPostService) Update(id int64, editor domain.User, draft domain.PostDraft) error {
	if m.MockUpdate != nil {
		return m.MockUpdate(id, editor, draft)
	}
	return nil
}

type MockGroupService struct {
	MockCreate    func(title, slug, description string) (int64, error)
	MockGetBySlug func(slug string) (*domain.Group, error)
	MockList      func() ([]domain.Group, error)
}

func (m *MockGroupService) Create(title, slug, description string) (int64, error) {
	if m.MockCreate != nil {
		return m.MockCreate(title, slug, description)
	}
	return 1, nil
}

func (m *MockGroupService) GetBySlug(slug string) (*domain.Group, error) {
	if m.MockGetBySlug != nil {
		return m.MockGetBySlug(slug)
	}
	return &domain.Group{Slug: slug}, nil
}

func (m *MockGroupService) List() ([]domain.Group, error) {
	if m.MockList != nil {
		return m.MockList()
	}
	return nil, nil
}

type MockCommentService struct {
	MockCreate func(postId int64, author domain.User, text string) (int64, error)
	MockList   func(postId int64) ([]domain.Comment, error)
}

func (m *MockCommentService) Create(postId int64, author domain.User, text string) (int64, error) {
	if m.MockCreate != nil {
		return m.MockCreate(postId, author, text)
	}
	return 1, nil
}

func (m *MockCommentService) List(postId int64) ([]domain.Comment, error) {
	if m.MockList != nil {
		return m.MockList(postId)
	}
	return nil, nil
}

type MockAuthService struct {
	MockSignUp func(username, email, password string) (string, error)
	MockLogin  func(username, password string) (string, error)
}

func (m *MockAuthService) SignUp(username, email, password string) (string, error) {
	if m.MockSignUp != nil {
		return m.MockSignUp(username, email, password)
	}
	return "token", nil
}

func (m *MockAuthService) Login(username, password string) (string, error) {
	if m.MockLogin != nil {
		return m.MockLogin(username, password)
	}
	return "token", nil
}

// testTemplates are tiny stand-ins for the real pages: just enough
// output to assert on without coupling tests to markup.
func testTemplates() map[string]*template.Template {
	sources := map[string]string{
		"index.html":        `index page={{.Data.Page.Number}} posts={{len .Data.Posts}}`,
		"group_list.html":   `group {{.Data.Group.Slug}} page={{.Data.Page.Number}}`,
		"profile.html":      `profile {{.Data.Author.Username}} total={{.Data.TotalPosts}}`,
		"post_detail.html":  `detail {{.Data.Title}} comments={{len .Data.Comments}}`,
		"create_post.html":  `form edit={{.Data.IsEdit}} errors={{len .Data.Errors}}`,
		"login.html":        `login {{.Common.Error}}`,
		"signup.html":       `signup {{.Common.Error}}`,
		"about_author.html": `about author`,
		"about_tech.html":   `about tech`,
	}
	templates := make(map[string]*template.Template, len(sources))
	for name, src := range sources {
		templates[name] = template.Must(template.New(name).Parse(src))
	}
	return templates
}

type testDeps struct {
	posts    *MockPostService
	groups   *MockGroupService
	comments *MockCommentService
	auth     *MockAuthService
	cache    *cache.Memory
}

func newTestHandler() (*Handler, *testDeps) {
	deps := &testDeps{
		posts:    &MockPostService{},
		groups:   &MockGroupService{},
		comments: &MockCommentService{},
		auth:     &MockAuthService{},
		cache:    cache.NewMemory(20 * time.Second),
	}
	h := New(
		deps.posts,
		deps.groups,
		deps.comments,
		deps.auth,
		testTemplates(),
		deps.cache,
		markdown.New(),
		24*time.Hour,
		false,
	)
	return h, deps
}

func testRouter(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Index)
	r.Get("/group/{slug}/", h.GroupPosts)
	r.Get("/profile/{username}/", h.Profile)
	r.Get("/posts/{id}/", h.PostDetail)
	r.Get("/create/", h.CreatePostForm)
	r.Post("/create/", h.CreatePost)
	r.Get("/posts/{id}/edit/", h.EditPostForm)
	r.Post("/posts/{id}/edit/", h.EditPost)
	r.Post("/posts/{id}/comment/", h.AddComment)
	r.Get("/auth/login/", h.LoginForm)
	r.Post("/auth/login/", h.Login)
	r.Get("/auth/signup/", h.SignupForm)
	r.Post("/auth/signup/", h.Signup)
	r.Post("/auth/logout/", h.Logout)
	r.Post("/admin/groups/", h.CreateGroup)
	return r
}

func serveAs(router chi.Router, req *http.Request, user *domain.User) *httptest.ResponseRecorder {
	if user != nil {
		req = mw.WithUser(req, user)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}
