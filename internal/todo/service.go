// Package todo はユーザーのTodo管理のドメインロジックを提供する。
package todo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hitoshi/memoboard/internal/model"
	"github.com/hitoshi/memoboard/internal/ownership"
	"github.com/hitoshi/memoboard/internal/repository"
)

const resource = "todo"

// CreateInput はTodo作成の入力値。日付・時刻は文字列のまま受け取り、サービス層で解析する。
// Time、Datetime、RemindTimeはnilまたは空文字でNULLになる。
type CreateInput struct {
	Title       string
	Description string
	Date        string
	Time        *string
	Datetime    *string
	IsDone      bool
	IsRemind    bool
	RemindTime  *string
}

// UpdateInput はTodo部分更新の入力値。
// Nullableフィールドはnullまたは空文字でNULLに更新する。
type UpdateInput struct {
	Title       *string
	Description *string
	Date        *string
	Time        model.Nullable[string]
	Datetime    model.Nullable[string]
	IsDone      *bool
	IsRemind    *bool
	RemindTime  model.Nullable[string]
}

// Service はTodo管理のサービス層。
type Service struct {
	repo repository.TodoRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(repo repository.TodoRepository) *Service {
	return &Service{repo: repo}
}

// List はユーザーのTodo一覧を日付順に返す。
func (s *Service) List(ctx context.Context, userID int64) ([]*model.Todo, error) {
	todos, err := s.repo.FindManyByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	return todos, nil
}

// Create はTodoを作成する。titleとdateは必須。
func (s *Service) Create(ctx context.Context, userID int64, in CreateInput) (*model.Todo, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" || in.Date == "" {
		return nil, model.NewValidationError("title and date are required")
	}

	date, err := ParseDate(in.Date)
	if err != nil {
		return nil, model.NewValidationError(err.Error())
	}

	todo := &model.Todo{
		UserID:      userID,
		Title:       title,
		Description: in.Description,
		Date:        date,
		IsDone:      in.IsDone,
		IsRemind:    in.IsRemind,
	}
	if in.Time != nil && *in.Time != "" {
		clock, err := ParseClock(*in.Time)
		if err != nil {
			return nil, model.NewValidationError(err.Error())
		}
		todo.Time = &clock
	}
	if todo.Datetime, err = optionalTimestamp(in.Datetime); err != nil {
		return nil, model.NewValidationError(err.Error())
	}
	if todo.RemindTime, err = optionalTimestamp(in.RemindTime); err != nil {
		return nil, model.NewValidationError(err.Error())
	}

	if err := s.repo.Create(ctx, todo); err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}
	return todo, nil
}

// Update は所有者検証のうえ、指定されたフィールドのみを更新する。
// 更新フィールドがない場合は現在のTodoをそのまま返す。
func (s *Service) Update(ctx context.Context, id, userID int64, in UpdateInput) (*model.Todo, error) {
	current, err := ownership.Load(ctx, id, userID, s.repo.FindByID, resource)
	if err != nil {
		return nil, err
	}

	patch, err := buildPatch(in)
	if err != nil {
		return nil, model.NewValidationError(err.Error())
	}
	if patch.IsEmpty() {
		return current, nil
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, model.NewNotFoundError(resource, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}
	return updated, nil
}

// Delete は所有者検証のうえTodoを削除する。
func (s *Service) Delete(ctx context.Context, id, userID int64) error {
	if _, err := ownership.Load(ctx, id, userID, s.repo.FindByID, resource); err != nil {
		return err
	}

	err := s.repo.DeleteByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return model.NewNotFoundError(resource, id)
	}
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	return nil
}

// buildPatch は入力値を解析してリポジトリ用のTodoPatchに変換する。
func buildPatch(in UpdateInput) (model.TodoPatch, error) {
	patch := model.TodoPatch{
		Description: in.Description,
		IsDone:      in.IsDone,
		IsRemind:    in.IsRemind,
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return patch, errors.New("title must not be empty")
		}
		patch.Title = &title
	}
	if in.Date != nil {
		date, err := ParseDate(*in.Date)
		if err != nil {
			return patch, err
		}
		patch.Date = &date
	}

	if in.Time.Set {
		if v, ok := present(in.Time); ok {
			clock, err := ParseClock(v)
			if err != nil {
				return patch, err
			}
			patch.Time = model.NullableOf(clock)
		} else {
			patch.Time = model.NullOf[string]()
		}
	}

	var err error
	if patch.Datetime, err = nullableTimestamp(in.Datetime); err != nil {
		return patch, err
	}
	if patch.RemindTime, err = nullableTimestamp(in.RemindTime); err != nil {
		return patch, err
	}
	return patch, nil
}

// present はNullableが空文字以外の値を持つ場合にその値を返す。
func present(n model.Nullable[string]) (string, bool) {
	if !n.Valid || n.Value == "" {
		return "", false
	}
	return n.Value, true
}

func nullableTimestamp(n model.Nullable[string]) (model.Nullable[time.Time], error) {
	if !n.Set {
		return model.Nullable[time.Time]{}, nil
	}
	v, ok := present(n)
	if !ok {
		return model.NullOf[time.Time](), nil
	}
	ts, err := ParseTimestamp(v)
	if err != nil {
		return model.Nullable[time.Time]{}, err
	}
	return model.NullableOf(ts), nil
}

func optionalTimestamp(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	ts, err := ParseTimestamp(*s)
	if err != nil {
		return nil, err
	}
	return &ts, nil
}
