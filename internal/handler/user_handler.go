package handler

import (
	"context"
	"net/http"

	"github.com/hitoshi/memoboard/internal/model"
	"github.com/hitoshi/memoboard/internal/user"
)

// UserServiceInterface はユーザーハンドラーが必要とするサービスインターフェース。
type UserServiceInterface interface {
	List(ctx context.Context) ([]*model.User, error)
	Get(ctx context.Context, id int64) (*model.User, error)
	Create(ctx context.Context, in user.CreateInput) (*model.User, error)
	// Withdraw はユーザーの退会処理を実行する。
	// セッションを削除した後にユーザーを削除し、memos、todos、postsはCASCADE削除される。
	Withdraw(ctx context.Context, userID int64) error
}

// UserHandler はユーザー管理のHTTPハンドラー。
type UserHandler struct {
	service UserServiceInterface
}

// NewUserHandler はUserHandlerを生成する。
func NewUserHandler(service UserServiceInterface) *UserHandler {
	return &UserHandler{
		service: service,
	}
}

type createUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// List はユーザー一覧を返す。
// GET /api/users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponses(users))
}

// Create はユーザーを作成する。
// POST /api/users
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleServiceError(w, r, err)
		return
	}

	created, err := h.service.Create(r.Context(), user.CreateInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toUserResponse(created))
}

// Get はユーザーを1件返す。
// GET /api/users/{id}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathOrQueryID(r)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	u, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(u))
}

// Withdraw はユーザーの退会処理を実行する。
// DELETE /api/users/me
func (h *UserHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if err := h.service.Withdraw(r.Context(), userID); err != nil {
		handleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
