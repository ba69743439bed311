package handler

import (
	"context"
	"net/http"

	"github.com/hitoshi/memoboard/internal/model"
	"github.com/hitoshi/memoboard/internal/post"
)

// PostServiceInterface は投稿ハンドラーが必要とするサービスインターフェース。
type PostServiceInterface interface {
	List(ctx context.Context) ([]*model.Post, error)
	Get(ctx context.Context, id int64) (*model.Post, error)
	Create(ctx context.Context, in post.CreateInput) (*model.Post, error)
	Update(ctx context.Context, id int64, patch model.PostPatch) (*model.Post, error)
	Delete(ctx context.Context, id int64) error
}

// PostHandler は公開投稿のHTTPハンドラー。
// 投稿の変更系操作に所有者検証は行わない。
type PostHandler struct {
	service PostServiceInterface
}

// NewPostHandler はPostHandlerを生成する。
func NewPostHandler(service PostServiceInterface) *PostHandler {
	return &PostHandler{service: service}
}

type createPostRequest struct {
	Title   string     `json:"title"`
	Content string     `json:"content"`
	UserID  flexibleID `json:"userId"`
}

type updatePostRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// List は投稿一覧を新しい順に返す。
// GET /api/posts
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPostResponses(posts))
}

// Create は投稿を作成する。
// POST /api/posts
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createPostRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleServiceError(w, r, err)
		return
	}

	var userID int64
	if req.UserID.Set {
		id, err := req.UserID.Int64()
		if err != nil {
			handleServiceError(w, r, err)
			return
		}
		userID = id
	}

	created, err := h.service.Create(r.Context(), post.CreateInput{
		Title:   req.Title,
		Content: req.Content,
		UserID:  userID,
	})
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toPostResponse(created))
}

// Get は投稿を1件返す。
// GET /api/posts/{id}
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathOrQueryID(r)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	p, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPostResponse(p))
}

// Update は投稿を部分更新する。
// PUT /api/posts/{id}
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathOrQueryID(r)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	var req updatePostRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleServiceError(w, r, err)
		return
	}

	updated, err := h.service.Update(r.Context(), id, model.PostPatch{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPostResponse(updated))
}

// Delete は投稿を削除する。
// DELETE /api/posts/{id}
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathOrQueryID(r)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "post deleted"})
}
