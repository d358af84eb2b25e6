package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sem/quill/internal/api/middleware"
	"github.com/sem/quill/internal/domain"
	"github.com/sem/quill/internal/service"
	"github.com/sem/quill/internal/web"
	"go.uber.org/zap"
)

type PostHandler struct {
	base
	posts *service.PostService
}

func NewPostHandler(posts *service.PostService, sessions *service.SessionService, renderer *web.Renderer, logger *zap.Logger) *PostHandler {
	return &PostHandler{
		base:  base{sessions: sessions, renderer: renderer, logger: logger},
		posts: posts,
	}
}

type postListData struct {
	Posts []*domain.Post
}

type postViewData struct {
	Post    *domain.Post
	CanEdit bool
}

type postFormData struct {
	Heading string
	Action  string
	Title   string
	Content string
	Slug    string
	Errors  []string
}

type searchData struct {
	Query    string
	Searched bool
	Posts    []*domain.Post
}

func (h *PostHandler) postID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.List(r.Context())
	if err != nil {
		h.logger.Error("list posts", zap.Error(err))
		h.render(w, r, http.StatusInternalServerError, "error500", "Server Error", nil)
		return
	}
	h.render(w, r, http.StatusOK, "posts", "Posts", postListData{Posts: posts})
}

func (h *PostHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := h.postID(r)
	if err != nil {
		h.render(w, r, http.StatusNotFound, "error404", "Not Found", nil)
		return
	}

	post, err := h.posts.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			h.render(w, r, http.StatusNotFound, "error404", "Not Found", nil)
			return
		}
		h.logger.Error("get post", zap.Error(err))
		h.render(w, r, http.StatusInternalServerError, "error500", "Server Error", nil)
		return
	}

	identity := middleware.GetIdentity(r.Context())
	h.render(w, r, http.StatusOK, "post", post.Title, postViewData{
		Post:    post,
		CanEdit: identity.CanEdit(post),
	})
}

func (h *PostHandler) NewPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "post_form", "Add Post", postFormData{
		Heading: "Add Post",
		Action:  "/posts/new",
	})
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(r)
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	data := postFormData{
		Heading: "Add Post",
		Action:  "/posts/new",
		Title:   f.Get("title"),
		Content: f.Get("content"),
		Slug:    f.Get("slug"),
	}

	f.Require("title", "content", "slug")
	if !f.Valid() {
		data.Errors = f.Errors
		h.render(w, r, http.StatusUnprocessableEntity, "post_form", "Add Post", data)
		return
	}

	identity := middleware.GetIdentity(r.Context())
	post, err := h.posts.Create(r.Context(), identity, service.PostInput{
		Title:   data.Title,
		Content: data.Content,
		Slug:    data.Slug,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotAuthorized) {
			h.flashAndRedirect(w, r, "You are not authorized to do that.", "/posts")
			return
		}
		h.logger.Error("create post", zap.Error(err))
		h.flash(r, "Whoops! Encountered a problem, try again...")
		h.render(w, r, http.StatusInternalServerError, "post_form", "Add Post", data)
		return
	}

	h.flashAndRedirect(w, r, "Blog post submitted successfully!", fmt.Sprintf("/posts/%d", post.ID))
}

func (h *PostHandler) EditPage(w http.ResponseWriter, r *http.Request) {
	id, err := h.postID(r)
	if err != nil {
		h.render(w, r, http.StatusNotFound, "error404", "Not Found", nil)
		return
	}

	post, err := h.posts.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			h.render(w, r, http.StatusNotFound, "error404", "Not Found", nil)
			return
		}
		h.logger.Error("get post", zap.Error(err))
		h.render(w, r, http.StatusInternalServerError, "error500", "Server Error", nil)
		return
	}

	identity := middleware.GetIdentity(r.Context())
	if !identity.CanEdit(post) {
		h.flashAndRedirect(w, r, "You are not authorized to edit that post.", "/posts")
		return
	}

	h.render(w, r, http.StatusOK, "post_form", "Edit Post", postFormData{
		Heading: "Edit Post",
		Action:  fmt.Sprintf("/posts/%d/edit", post.ID),
		Title:   post.Title,
		Content: post.Content,
		Slug:    post.Slug,
	})
}

func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := h.postID(r)
	if err != nil {
		h.render(w, r, http.StatusNotFound, "error404", "Not Found", nil)
		return
	}

	f, err := parseForm(r)
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	data := postFormData{
		Heading: "Edit Post",
		Action:  fmt.Sprintf("/posts/%d/edit", id),
		Title:   f.Get("title"),
		Content: f.Get("content"),
		Slug:    f.Get("slug"),
	}

	f.Require("title", "content", "slug")
	if !f.Valid() {
		data.Errors = f.Errors
		h.render(w, r, http.StatusUnprocessableEntity, "post_form", "Edit Post", data)
		return
	}

	identity := middleware.GetIdentity(r.Context())
	post, err := h.posts.Update(r.Context(), identity, id, service.PostInput{
		Title:   data.Title,
		Content: data.Content,
		Slug:    data.Slug,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPostNotFound):
			h.render(w, r, http.StatusNotFound, "error404", "Not Found", nil)
		case errors.Is(err, domain.ErrNotAuthorized):
			h.flashAndRedirect(w, r, "You are not authorized to edit that post.", "/posts")
		default:
			h.logger.Error("update post", zap.Error(err))
			h.flash(r, "Whoops! Encountered a problem, try again...")
			h.render(w, r, http.StatusInternalServerError, "post_form", "Edit Post", data)
		}
		return
	}

	h.flashAndRedirect(w, r, "Post updated successfully!", fmt.Sprintf("/posts/%d", post.ID))
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := h.postID(r)
	if err != nil {
		h.render(w, r, http.StatusNotFound, "error404", "Not Found", nil)
		return
	}

	identity := middleware.GetIdentity(r.Context())
	if err := h.posts.Delete(r.Context(), identity, id); err != nil {
		switch {
		case errors.Is(err, domain.ErrPostNotFound):
			h.render(w, r, http.StatusNotFound, "error404", "Not Found", nil)
		case errors.Is(err, domain.ErrNotAuthorized):
			h.flashAndRedirect(w, r, "You are not authorized to delete that post.", "/posts")
		default:
			h.logger.Error("delete post", zap.Error(err))
			h.flashAndRedirect(w, r, "Whoops! Encountered a problem deleting the post, try again...", "/posts")
		}
		return
	}

	h.flashAndRedirect(w, r, "Post deleted successfully!", "/posts")
}

func (h *PostHandler) SearchPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "search", "Search", searchData{})
}

// Search matches the query against post bodies, results in the same date
// order as the listing page.
func (h *PostHandler) Search(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(r)
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	query := f.Get("searched")
	if query == "" {
		h.render(w, r, http.StatusUnprocessableEntity, "search", "Search", searchData{})
		return
	}

	posts, err := h.posts.Search(r.Context(), query)
	if err != nil {
		h.logger.Error("search posts", zap.Error(err))
		h.render(w, r, http.StatusInternalServerError, "error500", "Server Error", nil)
		return
	}

	h.render(w, r, http.StatusOK, "search", "Search", searchData{
		Query:    query,
		Searched: true,
		Posts:    posts,
	})
}
