package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hitoshi/memoboard/internal/model"
)

const userColumns = `id, auth_id, name, email, created_at, updated_at`

// PostgresUserRepo はPostgreSQLを使用したユーザーリポジトリ。
type PostgresUserRepo struct {
	db *sql.DB
}

// NewPostgresUserRepo はPostgresUserRepoを生成する。
func NewPostgresUserRepo(db *sql.DB) *PostgresUserRepo {
	return &PostgresUserRepo{db: db}
}

func scanUser(row interface{ Scan(...any) error }) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(&user.ID, &user.AuthID, &user.Name, &user.Email, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
func (r *PostgresUserRepo) FindByID(ctx context.Context, id int64) (*model.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	return user, nil
}

// FindByAuthID は外部IdPのユーザー識別子でユーザーを検索する。見つからない場合はnilを返す。
func (r *PostgresUserRepo) FindByAuthID(ctx context.Context, authID string) (*model.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE auth_id = $1`, authID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by auth ID: %w", err)
	}
	return user, nil
}

// FindMany は全ユーザーをid降順で返す。
func (r *PostgresUserRepo) FindMany(ctx context.Context) ([]*model.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []*model.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}
	return users, nil
}

// Create はユーザーを作成し、採番されたIDとタイムスタンプをuserに設定する。
func (r *PostgresUserRepo) Create(ctx context.Context, user *model.User) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (auth_id, name, email)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		user.AuthID, user.Name, user.Email,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// UpsertByEmail はemailをキーにユーザーを1文で作成または取得する。
// ON CONFLICTで同時ログインによる重複作成を防ぎ、既存行のauth_idが空の場合のみ補完する。
func (r *PostgresUserRepo) UpsertByEmail(ctx context.Context, authID, email string, name *string) (*model.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx,
		`INSERT INTO users (auth_id, name, email)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (email) DO UPDATE
		   SET auth_id = COALESCE(users.auth_id, EXCLUDED.auth_id)
		 RETURNING `+userColumns,
		authID, name, email,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}
	return user, nil
}

// DeleteByID は指定IDのユーザーを削除する。
// 関連するsessions、memos、todos、postsはCASCADE削除される。
func (r *PostgresUserRepo) DeleteByID(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM users WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return checkAffected(result, "user", id)
}

// compile-time interface check
var _ UserRepository = (*PostgresUserRepo)(nil)
