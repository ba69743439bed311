package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hitoshi/memoboard/internal/model"
)

// time列はTEXTへキャストして "15:04:05" 形式で受け取る。
const todoColumns = `id, user_id, title, description, "date", "time"::text, "datetime",
	is_done, is_remind, remind_time, created_at, updated_at`

// PostgresTodoRepo はPostgreSQLを使用したTodoリポジトリ。
type PostgresTodoRepo struct {
	db *sql.DB
}

// NewPostgresTodoRepo はPostgresTodoRepoを生成する。
func NewPostgresTodoRepo(db *sql.DB) *PostgresTodoRepo {
	return &PostgresTodoRepo{db: db}
}

func scanTodo(row interface{ Scan(...any) error }) (*model.Todo, error) {
	t := &model.Todo{}
	var tm sql.NullString
	var datetime, remindTime sql.NullTime
	err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Date, &tm, &datetime,
		&t.IsDone, &t.IsRemind, &remindTime, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if tm.Valid {
		t.Time = &tm.String
	}
	if datetime.Valid {
		t.Datetime = &datetime.Time
	}
	if remindTime.Valid {
		t.RemindTime = &remindTime.Time
	}
	return t, nil
}

// nullableArg はNullableをドライバ引数に変換する。NULLの場合はnilを返す。
func nullableArg[T any](n model.Nullable[T]) any {
	if !n.Valid {
		return nil
	}
	return n.Value
}

// FindByID は指定IDのTodoを取得する。見つからない場合はnilを返す。
func (r *PostgresTodoRepo) FindByID(ctx context.Context, id int64) (*model.Todo, error) {
	t, err := scanTodo(r.db.QueryRowContext(ctx,
		`SELECT `+todoColumns+` FROM todos WHERE id = $1`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find todo by ID: %w", err)
	}
	return t, nil
}

// FindManyByOwner は指定ユーザーのTodoを日付昇順、同日内はid昇順で返す。
func (r *PostgresTodoRepo) FindManyByOwner(ctx context.Context, ownerID int64) ([]*model.Todo, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+todoColumns+` FROM todos WHERE user_id = $1 ORDER BY "date" ASC, id ASC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	defer rows.Close()

	todos := []*model.Todo{}
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan todo: %w", err)
		}
		todos = append(todos, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate todos: %w", err)
	}
	return todos, nil
}

// Create はTodoを作成し、採番されたIDとタイムスタンプをtodoに設定する。
func (r *PostgresTodoRepo) Create(ctx context.Context, todo *model.Todo) error {
	var tm, datetime, remindTime any
	if todo.Time != nil {
		tm = *todo.Time
	}
	if todo.Datetime != nil {
		datetime = *todo.Datetime
	}
	if todo.RemindTime != nil {
		remindTime = *todo.RemindTime
	}

	err := r.db.QueryRowContext(ctx,
		`INSERT INTO todos (user_id, title, description, "date", "time", "datetime", is_done, is_remind, remind_time)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at, updated_at`,
		todo.UserID, todo.Title, todo.Description, todo.Date.Format(model.DateLayout),
		tm, datetime, todo.IsDone, todo.IsRemind, remindTime,
	).Scan(&todo.ID, &todo.CreatedAt, &todo.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert todo: %w", err)
	}
	return nil
}

// Update はpatchで指定されたフィールドのみを更新し、更新後のTodoを返す。
// Nullableフィールドに明示的なnullが指定された場合はNULLに更新する。
func (r *PostgresTodoRepo) Update(ctx context.Context, id int64, patch model.TodoPatch) (*model.Todo, error) {
	var b updateBuilder
	if patch.Title != nil {
		b.set("title", *patch.Title)
	}
	if patch.Description != nil {
		b.set("description", *patch.Description)
	}
	if patch.Date != nil {
		b.set(`"date"`, patch.Date.Format(model.DateLayout))
	}
	if patch.Time.Set {
		b.set(`"time"`, nullableArg(patch.Time))
	}
	if patch.Datetime.Set {
		b.set(`"datetime"`, nullableArg(patch.Datetime))
	}
	if patch.IsDone != nil {
		b.set("is_done", *patch.IsDone)
	}
	if patch.IsRemind != nil {
		b.set("is_remind", *patch.IsRemind)
	}
	if patch.RemindTime.Set {
		b.set("remind_time", nullableArg(patch.RemindTime))
	}

	query, args, err := b.build("todos", id, todoColumns)
	if err != nil {
		return nil, fmt.Errorf("failed to build todo update: %w", err)
	}
	t, err := scanTodo(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("todo %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}
	return t, nil
}

// DeleteByID は指定IDのTodoを削除する。
func (r *PostgresTodoRepo) DeleteByID(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	return checkAffected(result, "todo", id)
}

// compile-time interface check
var _ TodoRepository = (*PostgresTodoRepo)(nil)
