package handler

import (
	"context"
	"net/http"

	"github.com/hitoshi/memoboard/internal/memo"
	"github.com/hitoshi/memoboard/internal/model"
)

// MemoServiceInterface はメモハンドラーが必要とするサービスインターフェース。
type MemoServiceInterface interface {
	List(ctx context.Context, userID int64) ([]*model.Memo, error)
	Get(ctx context.Context, id, userID int64) (*model.Memo, error)
	Create(ctx context.Context, userID int64, in memo.CreateInput) (*model.Memo, error)
	Update(ctx context.Context, id, userID int64, patch model.MemoPatch) (*model.Memo, error)
	Delete(ctx context.Context, id, userID int64) error
}

// MemoHandler はメモ管理のHTTPハンドラー。
type MemoHandler struct {
	service MemoServiceInterface
}

// NewMemoHandler はMemoHandlerを生成する。
func NewMemoHandler(service MemoServiceInterface) *MemoHandler {
	return &MemoHandler{service: service}
}

// createMemoRequest はメモ作成のリクエストボディ。
type createMemoRequest struct {
	Title       string `json:"title"`
	Type        string `json:"type"`
	Items       string `json:"items"`
	TextContent string `json:"textContent"`
	Images      string `json:"images"`
	URLs        string `json:"urls"`
}

// updateMemoRequest はメモ部分更新のリクエストボディ。
// 本文系フィールドのnullは空文字への更新として扱う。
type updateMemoRequest struct {
	Title       model.Nullable[string] `json:"title"`
	Type        model.Nullable[string] `json:"type"`
	Items       model.Nullable[string] `json:"items"`
	TextContent model.Nullable[string] `json:"textContent"`
	Images      model.Nullable[string] `json:"images"`
	URLs        model.Nullable[string] `json:"urls"`
}

// toPatch はリクエストをMemoPatchに変換する。
func (req updateMemoRequest) toPatch() (model.MemoPatch, error) {
	var patch model.MemoPatch
	if req.Title.Set {
		if !req.Title.Valid {
			return patch, model.NewValidationError("title must not be null")
		}
		patch.Title = &req.Title.Value
	}
	if req.Type.Set {
		if !req.Type.Valid {
			return patch, model.NewValidationError("type must not be null")
		}
		t := model.MemoType(req.Type.Value)
		patch.Type = &t
	}
	patch.Items = emptyIfNull(req.Items)
	patch.TextContent = emptyIfNull(req.TextContent)
	patch.Images = emptyIfNull(req.Images)
	patch.URLs = emptyIfNull(req.URLs)
	return patch, nil
}

// emptyIfNull は未指定ならnil、nullなら空文字、値ありならその値へのポインタを返す。
func emptyIfNull(n model.Nullable[string]) *string {
	if !n.Set {
		return nil
	}
	v := n.Value
	return &v
}

// List はログインユーザーのメモ一覧を返す。
// GET /api/memos
func (h *MemoHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	memos, err := h.service.List(r.Context(), userID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toMemoResponses(memos))
}

// Create はメモを作成する。
// POST /api/memos
func (h *MemoHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req createMemoRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleServiceError(w, r, err)
		return
	}

	created, err := h.service.Create(r.Context(), userID, memo.CreateInput{
		Title:       req.Title,
		Type:        req.Type,
		Items:       req.Items,
		TextContent: req.TextContent,
		Images:      req.Images,
		URLs:        req.URLs,
	})
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toMemoResponse(created))
}

// Get はメモを1件返す。
// GET /api/memos/{id}
func (h *MemoHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	id, err := pathOrQueryID(r)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	m, err := h.service.Get(r.Context(), id, userID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toMemoResponse(m))
}

// Update はメモを部分更新する。
// PUT /api/memos/{id}
func (h *MemoHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	id, err := pathOrQueryID(r)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	var req updateMemoRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleServiceError(w, r, err)
		return
	}

	patch, err := req.toPatch()
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	updated, err := h.service.Update(r.Context(), id, userID, patch)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toMemoResponse(updated))
}

// Delete はメモを削除する。
// DELETE /api/memos/{id}、DELETE /api/memos?id=
func (h *MemoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	id, err := pathOrQueryID(r)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	if err := h.service.Delete(r.Context(), id, userID); err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "memo deleted"})
}
