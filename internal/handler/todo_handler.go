package handler

import (
	"context"
	"net/http"

	"github.com/hitoshi/memoboard/internal/model"
	"github.com/hitoshi/memoboard/internal/todo"
)

// TodoServiceInterface はTodoハンドラーが必要とするサービスインターフェース。
type TodoServiceInterface interface {
	List(ctx context.Context, userID int64) ([]*model.Todo, error)
	Create(ctx context.Context, userID int64, in todo.CreateInput) (*model.Todo, error)
	Update(ctx context.Context, id, userID int64, in todo.UpdateInput) (*model.Todo, error)
	Delete(ctx context.Context, id, userID int64) error
}

// TodoHandler はTodo管理のHTTPハンドラー。
type TodoHandler struct {
	service TodoServiceInterface
}

// NewTodoHandler はTodoHandlerを生成する。
func NewTodoHandler(service TodoServiceInterface) *TodoHandler {
	return &TodoHandler{service: service}
}

// createTodoRequest はTodo作成のリクエストボディ。
type createTodoRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	Time        *string `json:"time"`
	Datetime    *string `json:"datetime"`
	IsDone      bool    `json:"isDone"`
	IsRemind    bool    `json:"isRemind"`
	RemindTime  *string `json:"remindTime"`
}

// updateTodoRequest はTodo部分更新のリクエストボディ。idは必須。
// time、datetime、remindTimeはnullでNULLに更新する。
type updateTodoRequest struct {
	ID          flexibleID             `json:"id"`
	Title       *string                `json:"title"`
	Description *string                `json:"description"`
	Date        *string                `json:"date"`
	Time        model.Nullable[string] `json:"time"`
	Datetime    model.Nullable[string] `json:"datetime"`
	IsDone      *bool                  `json:"isDone"`
	IsRemind    *bool                  `json:"isRemind"`
	RemindTime  model.Nullable[string] `json:"remindTime"`
}

// List はログインユーザーのTodo一覧を返す。
// GET /api/todo
func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	todos, err := h.service.List(r.Context(), userID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toTodoResponses(todos))
}

// Create はTodoを作成する。
// POST /api/todo
func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req createTodoRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleServiceError(w, r, err)
		return
	}

	created, err := h.service.Create(r.Context(), userID, todo.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
		Datetime:    req.Datetime,
		IsDone:      req.IsDone,
		IsRemind:    req.IsRemind,
		RemindTime:  req.RemindTime,
	})
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTodoResponse(created))
}

// Update はボディのidで指定したTodoを部分更新する。
// PUT /api/todo
func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req updateTodoRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleServiceError(w, r, err)
		return
	}

	id, err := req.ID.Int64()
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	updated, err := h.service.Update(r.Context(), id, userID, todo.UpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
		Datetime:    req.Datetime,
		IsDone:      req.IsDone,
		IsRemind:    req.IsRemind,
		RemindTime:  req.RemindTime,
	})
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toTodoResponse(updated))
}

// Delete はクエリのidで指定したTodoを削除する。
// DELETE /api/todo?id=
func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	id, err := parseID(r.URL.Query().Get("id"))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	if err := h.service.Delete(r.Context(), id, userID); err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "todo deleted"})
}
