package httpserver

import (
	"net/http"

	"github.com/dmitrijs2005/postboard/internal/api"
	"github.com/dmitrijs2005/postboard/internal/common"
	"github.com/dmitrijs2005/postboard/internal/server/models"
	"github.com/gorilla/mux"
)

func toAPIPost(p *models.Post) api.Post {
	likes := p.Likes
	if likes == nil {
		likes = []common.UserID{}
	}
	return api.Post{
		ID:        p.ID,
		Text:      p.Text,
		User:      api.Author{ID: p.UserID, Name: p.UserName},
		Likes:     likes,
		ImageKey:  p.ImageKey,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (h *Handlers) listPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.List(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	out := make([]api.Post, 0, len(posts))
	for _, p := range posts {
		out = append(out, toAPIPost(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) createPost(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())

	var req api.PostRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if err := validatePost(req); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	post, err := h.posts.Create(r.Context(), user, req.Text)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toAPIPost(post))
}

// updatePost resolves the post before reading the body so that a missing
// or foreign post is reported before a malformed one. Text rules are left
// to the service.
func (h *Handlers) updatePost(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())
	id := mux.Vars(r)["id"]

	if _, err := h.posts.GetOwned(r.Context(), user.ID, id); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	var req api.PostRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	post, err := h.posts.Update(r.Context(), user.ID, id, req.Text)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAPIPost(post))
}

func (h *Handlers) deletePost(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())

	if err := h.posts.Delete(r.Context(), user.ID, mux.Vars(r)["id"]); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.Message{Message: "Post removed"})
}

func (h *Handlers) toggleLike(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())

	post, err := h.posts.ToggleLike(r.Context(), user.ID, mux.Vars(r)["id"])
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAPIPost(post))
}

func (h *Handlers) requestImageUpload(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())

	key, url, err := h.media.RequestUpload(r.Context(), user.ID, mux.Vars(r)["id"])
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.ImageUpload{Key: key, UploadURL: url})
}

func (h *Handlers) imageURL(w http.ResponseWriter, r *http.Request) {
	url, err := h.media.DownloadURL(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.ImageLink{URL: url})
}
