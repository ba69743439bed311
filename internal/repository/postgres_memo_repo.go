package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hitoshi/memoboard/internal/model"
)

const memoColumns = `id, user_id, title, type, items, text_content, images, urls, created_at, updated_at`

// PostgresMemoRepo はPostgreSQLを使用したメモリポジトリ。
type PostgresMemoRepo struct {
	db *sql.DB
}

// NewPostgresMemoRepo はPostgresMemoRepoを生成する。
func NewPostgresMemoRepo(db *sql.DB) *PostgresMemoRepo {
	return &PostgresMemoRepo{db: db}
}

func scanMemo(row interface{ Scan(...any) error }) (*model.Memo, error) {
	m := &model.Memo{}
	err := row.Scan(&m.ID, &m.UserID, &m.Title, &m.Type, &m.Items, &m.TextContent,
		&m.Images, &m.URLs, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// FindByID は指定IDのメモを取得する。見つからない場合はnilを返す。
func (r *PostgresMemoRepo) FindByID(ctx context.Context, id int64) (*model.Memo, error) {
	m, err := scanMemo(r.db.QueryRowContext(ctx,
		`SELECT `+memoColumns+` FROM memos WHERE id = $1`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find memo by ID: %w", err)
	}
	return m, nil
}

// FindManyByOwner は指定ユーザーのメモをid降順で返す。
func (r *PostgresMemoRepo) FindManyByOwner(ctx context.Context, ownerID int64) ([]*model.Memo, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+memoColumns+` FROM memos WHERE user_id = $1 ORDER BY id DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list memos: %w", err)
	}
	defer rows.Close()

	memos := []*model.Memo{}
	for rows.Next() {
		m, err := scanMemo(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan memo: %w", err)
		}
		memos = append(memos, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate memos: %w", err)
	}
	return memos, nil
}

// Create はメモを作成し、採番されたIDとタイムスタンプをmemoに設定する。
func (r *PostgresMemoRepo) Create(ctx context.Context, memo *model.Memo) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO memos (user_id, title, type, items, text_content, images, urls)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at`,
		memo.UserID, memo.Title, memo.Type, memo.Items, memo.TextContent, memo.Images, memo.URLs,
	).Scan(&memo.ID, &memo.CreatedAt, &memo.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert memo: %w", err)
	}
	return nil
}

// Update はpatchで指定されたフィールドのみを更新し、更新後のメモを返す。
// user_idは更新対象に含めない。
func (r *PostgresMemoRepo) Update(ctx context.Context, id int64, patch model.MemoPatch) (*model.Memo, error) {
	var b updateBuilder
	if patch.Title != nil {
		b.set("title", *patch.Title)
	}
	if patch.Type != nil {
		b.set("type", string(*patch.Type))
	}
	if patch.Items != nil {
		b.set("items", *patch.Items)
	}
	if patch.TextContent != nil {
		b.set("text_content", *patch.TextContent)
	}
	if patch.Images != nil {
		b.set("images", *patch.Images)
	}
	if patch.URLs != nil {
		b.set("urls", *patch.URLs)
	}

	query, args, err := b.build("memos", id, memoColumns)
	if err != nil {
		return nil, fmt.Errorf("failed to build memo update: %w", err)
	}
	m, err := scanMemo(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("memo %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update memo: %w", err)
	}
	return m, nil
}

// DeleteByID は指定IDのメモを削除する。
func (r *PostgresMemoRepo) DeleteByID(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM memos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete memo: %w", err)
	}
	return checkAffected(result, "memo", id)
}

// compile-time interface check
var _ MemoRepository = (*PostgresMemoRepo)(nil)
