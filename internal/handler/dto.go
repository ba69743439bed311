package handler

import (
	"time"

	"github.com/hitoshi/memoboard/internal/model"
)

// memoResponse はメモのJSONレスポンス形式。
type memoResponse struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	Title       string    `json:"title"`
	Type        string    `json:"type"`
	Items       string    `json:"items"`
	TextContent string    `json:"textContent"`
	Images      string    `json:"images"`
	URLs        string    `json:"urls"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toMemoResponse(m *model.Memo) memoResponse {
	return memoResponse{
		ID:          m.ID,
		UserID:      m.UserID,
		Title:       m.Title,
		Type:        string(m.Type),
		Items:       m.Items,
		TextContent: m.TextContent,
		Images:      m.Images,
		URLs:        m.URLs,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toMemoResponses(memos []*model.Memo) []memoResponse {
	res := make([]memoResponse, 0, len(memos))
	for _, m := range memos {
		res = append(res, toMemoResponse(m))
	}
	return res
}

// todoResponse はTodoのJSONレスポンス形式。dateは "YYYY-MM-DD" で返す。
type todoResponse struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"userId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Date        string     `json:"date"`
	Time        *string    `json:"time"`
	Datetime    *time.Time `json:"datetime"`
	IsDone      bool       `json:"isDone"`
	IsRemind    bool       `json:"isRemind"`
	RemindTime  *time.Time `json:"remindTime"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func toTodoResponse(t *model.Todo) todoResponse {
	return todoResponse{
		ID:          t.ID,
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		Date:        t.Date.Format(model.DateLayout),
		Time:        t.Time,
		Datetime:    t.Datetime,
		IsDone:      t.IsDone,
		IsRemind:    t.IsRemind,
		RemindTime:  t.RemindTime,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toTodoResponses(todos []*model.Todo) []todoResponse {
	res := make([]todoResponse, 0, len(todos))
	for _, t := range todos {
		res = append(res, toTodoResponse(t))
	}
	return res
}

// postAuthor は投稿に埋め込む投稿者情報。
type postAuthor struct {
	Name *string `json:"name"`
}

// postResponse は投稿のJSONレスポンス形式。
type postResponse struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"userId"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	User      postAuthor `json:"user"`
}

func toPostResponse(p *model.Post) postResponse {
	return postResponse{
		ID:        p.ID,
		UserID:    p.UserID,
		Title:     p.Title,
		Content:   p.Content,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
		User:      postAuthor{Name: p.AuthorName},
	}
}

func toPostResponses(posts []*model.Post) []postResponse {
	res := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		res = append(res, toPostResponse(p))
	}
	return res
}

// userResponse はユーザーのJSONレスポンス形式。
type userResponse struct {
	ID        int64     `json:"id"`
	AuthID    *string   `json:"authId"`
	Name      *string   `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserResponse(u *model.User) userResponse {
	return userResponse{
		ID:        u.ID,
		AuthID:    u.AuthID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

func toUserResponses(users []*model.User) []userResponse {
	res := make([]userResponse, 0, len(users))
	for _, u := range users {
		res = append(res, toUserResponse(u))
	}
	return res
}
