package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/postline-dev/postline/internal/cache"
	"github.com/postline-dev/postline/internal/domain"
	internal_errors "github.com/postline-dev/postline/internal/errors"
	"github.com/postline-dev/postline/internal/logger"
	"github.com/postline-dev/postline/internal/pagination"
	"github.com/postline-dev/postline/internal/service"
	"github.com/postline-dev/postline/internal/validation"
)

type listingData struct {
	Posts []postView
	Page  pagination.Page
}

type groupListingData struct {
	listingData
	Group *domain.Group
}

type profileData struct {
	listingData
	Author     *domain.User
	TotalPosts int
}

type detailData struct {
	Post       postView
	Title      string
	PostsCount int
	Comments   []commentView
}

type postFormData struct {
	Form   validation.PostForm
	Errors map[string]string
	Groups []domain.Group
	IsEdit bool
	PostId int64
}

// Index lists all posts, newest first. The rendered page is cached for
// a short fixed window keyed by (route, page number); entries expire
// passively, so a fresh post may take up to the TTL to appear.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	page := parsePage(r)
	key := cache.Key{Route: "index", Page: page}

	if payload, ok := h.pageCache.Get(r.Context(), key); ok {
		writeHTML(w, payload)
		return
	}

	posts, p, err := h.posts.List(page)
	if err != nil {
		internal_errors.WriteStatusCode(w, err)
		return
	}

	data := listingData{Posts: h.postViews(posts), Page: p}
	payload, err := h.renderToBuffer("index.html", data, CommonData{User: h.currentUser(r)})
	if err != nil {
		logger.Log.Error("rendering index", "error", err)
		http.Error(w, "Internal Server Error rendering template", http.StatusInternalServerError)
		return
	}

	h.pageCache.Set(r.Context(), key, payload)
	writeHTML(w, payload)
}

func (h *Handler) GroupPosts(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	group, posts, p, err := h.posts.ListGroup(slug, parsePage(r))
	if err != nil {
		internal_errors.WriteStatusCode(w, err)
		return
	}

	data := groupListingData{
		listingData: listingData{Posts: h.postViews(posts), Page: p},
		Group:       group,
	}
	h.renderTemplate(w, r, "group_list.html", data)
}

func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	author, posts, p, err := h.posts.ListAuthor(username, parsePage(r))
	if err != nil {
		internal_errors.WriteStatusCode(w, err)
		return
	}

	data := profileData{
		listingData: listingData{Posts: h.postViews(posts), Page: p},
		Author:      author,
		TotalPosts:  p.Count,
	}
	h.renderTemplate(w, r, "profile.html", data)
}

func (h *Handler) PostDetail(w http.ResponseWriter, r *http.Request) {
	id, err := postIdParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	post, err := h.posts.Get(id)
	if err != nil {
		internal_errors.WriteStatusCode(w, err)
		return
	}

	postsCount, err := h.posts.CountByAuthor(post.Author.Id)
	if err != nil {
		internal_errors.WriteStatusCode(w, err)
		return
	}

	comments, err := h.comments.List(post.Id)
	if err != nil {
		internal_errors.WriteStatusCode(w, err)
		return
	}

	data := detailData{
		Post:       postView{Post: *post, Rendered: h.text.Render(post.Text)},
		Title:      post.Title(),
		PostsCount: postsCount,
		Comments:   h.commentViews(comments),
	}
	h.renderTemplate(w, r, "post_detail.html", data)
}

func (h *Handler) CreatePostForm(w http.ResponseWriter, r *http.Request) {
	h.renderPostForm(w, r, postFormData{})
}

func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	user := h.currentUser(r)
	if user == nil {
		http.Error(w, "Please sign-in", http.StatusUnauthorized)
		return
	}

	form, draft, ok := h.bindPostForm(w, r, postFormData{})
	if !ok {
		return
	}

	if _, err := h.posts.Create(*user, draft); err != nil {
		if ve := internal_errors.AsValidation(err); ve != nil {
			h.renderPostForm(w, r, postFormData{Form: form, Errors: ve.Fields})
			return
		}
		internal_errors.WriteStatusCode(w, err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/profile/%s/", user.Username), http.StatusFound)
}

func (h *Handler) EditPostForm(w http.ResponseWriter, r *http.Request) {
	user := h.currentUser(r)
	id, post, ok := h.resolveOwnedPost(w, r)
	if !ok || user == nil {
		return
	}

	form := validation.PostForm{Text: post.Text}
	if post.Group != nil {
		form.Group = fmt.Sprint(post.Group.Id)
	}
	h.renderPostForm(w, r, postFormData{Form: form, IsEdit: true, PostId: id})
}

func (h *Handler) EditPost(w http.ResponseWriter, r *http.Request) {
	user := h.currentUser(r)
	if user == nil {
		http.Error(w, "Please sign-in", http.StatusUnauthorized)
		return
	}

	// ownership is settled before any form validation: non-authors are
	// silently sent to the detail page, whatever they submitted
	id, _, ok := h.resolveOwnedPost(w, r)
	if !ok {
		return
	}

	base := postFormData{IsEdit: true, PostId: id}
	form, draft, ok := h.bindPostForm(w, r, base)
	if !ok {
		return
	}

	if err := h.posts.Update(id, *user, draft); err != nil {
		switch {
		case err == service.ErrNotOwner:
			redirectToDetail(w, r, id)
		default:
			if ve := internal_errors.AsValidation(err); ve != nil {
				base.Form, base.Errors = form, ve.Fields
				h.renderPostForm(w, r, base)
				return
			}
			internal_errors.WriteStatusCode(w, err)
		}
		return
	}

	redirectToDetail(w, r, id)
}

// resolveOwnedPost loads the post from the id route param and applies
// the author-only rule: a non-author is redirected to the detail page
// without error messaging. Returns ok=false when a response was written.
func (h *Handler) resolveOwnedPost(w http.ResponseWriter, r *http.Request) (int64, *domain.Post, bool) {
	id, err := postIdParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return 0, nil, false
	}

	post, err := h.posts.Get(id)
	if err != nil {
		internal_errors.WriteStatusCode(w, err)
		return 0, nil, false
	}

	user := h.currentUser(r)
	if user == nil || post.Author.Id != user.Id {
		redirectToDetail(w, r, id)
		return 0, nil, false
	}
	return id, post, true
}

// bindPostForm parses the submission, runs the field validators and
// builds the draft. On a validation failure it re-renders the form with
// field errors and returns ok=false; no partial save happens.
func (h *Handler) bindPostForm(w http.ResponseWriter, r *http.Request, base postFormData) (validation.PostForm, domain.PostDraft, bool) {
	fileHeader, err := parseSubmission(r)
	if err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return validation.PostForm{}, domain.PostDraft{}, false
	}

	form := validation.ParsePostForm(r.Form)
	groupId, err := form.Check()
	if err != nil {
		if ve := internal_errors.AsValidation(err); ve != nil {
			base.Form, base.Errors = form, ve.Fields
			h.renderPostForm(w, r, base)
			return form, domain.PostDraft{}, false
		}
		internal_errors.WriteStatusCode(w, err)
		return form, domain.PostDraft{}, false
	}

	draft := domain.PostDraft{Text: form.Text, GroupId: groupId}
	if fileHeader != nil {
		pending, err := validation.CheckImage(fileHeader)
		if err != nil {
			if ve := internal_errors.AsValidation(err); ve != nil {
				base.Form, base.Errors = form, ve.Fields
				h.renderPostForm(w, r, base)
				return form, domain.PostDraft{}, false
			}
			internal_errors.WriteStatusCode(w, err)
			return form, domain.PostDraft{}, false
		}
		draft.Image = pending
	}
	return form, draft, true
}

func (h *Handler) renderPostForm(w http.ResponseWriter, r *http.Request, data postFormData) {
	groups, err := h.groups.List()
	if err != nil {
		internal_errors.WriteStatusCode(w, err)
		return
	}
	data.Groups = groups
	h.renderTemplate(w, r, "create_post.html", data)
}

func redirectToDetail(w http.ResponseWriter, r *http.Request, id int64) {
	http.Redirect(w, r, fmt.Sprintf("/posts/%d/", id), http.StatusFound)
}
