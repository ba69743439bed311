package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hitoshi/memoboard/internal/model"
)

// 投稿者名はusersから相関サブクエリで取得する。RETURNING句でも同じ列構成を使う。
const postColumns = `posts.id, posts.user_id, posts.title, posts.content, posts.created_at, posts.updated_at,
	(SELECT u.name FROM users u WHERE u.id = posts.user_id)`

// PostgresPostRepo はPostgreSQLを使用した投稿リポジトリ。
type PostgresPostRepo struct {
	db *sql.DB
}

// NewPostgresPostRepo はPostgresPostRepoを生成する。
func NewPostgresPostRepo(db *sql.DB) *PostgresPostRepo {
	return &PostgresPostRepo{db: db}
}

func scanPost(row interface{ Scan(...any) error }) (*model.Post, error) {
	p := &model.Post{}
	err := row.Scan(&p.ID, &p.UserID, &p.Title, &p.Content, &p.CreatedAt, &p.UpdatedAt, &p.AuthorName)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// FindByID は指定IDの投稿を投稿者名付きで取得する。見つからない場合はnilを返す。
func (r *PostgresPostRepo) FindByID(ctx context.Context, id int64) (*model.Post, error) {
	p, err := scanPost(r.db.QueryRowContext(ctx,
		`SELECT `+postColumns+` FROM posts WHERE posts.id = $1`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find post by ID: %w", err)
	}
	return p, nil
}

// FindMany は全投稿を作成日時降順で返す。同時刻の投稿はid降順で並べる。
func (r *PostgresPostRepo) FindMany(ctx context.Context) ([]*model.Post, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+postColumns+` FROM posts ORDER BY posts.created_at DESC, posts.id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	posts := []*model.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posts: %w", err)
	}
	return posts, nil
}

// Create は投稿を作成し、採番されたIDとタイムスタンプ、投稿者名をpostに設定する。
func (r *PostgresPostRepo) Create(ctx context.Context, post *model.Post) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO posts (user_id, title, content)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at, (SELECT u.name FROM users u WHERE u.id = posts.user_id)`,
		post.UserID, post.Title, post.Content,
	).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt, &post.AuthorName)
	if err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}
	return nil
}

// Update はpatchで指定されたフィールドのみを更新し、更新後の投稿を返す。
func (r *PostgresPostRepo) Update(ctx context.Context, id int64, patch model.PostPatch) (*model.Post, error) {
	var b updateBuilder
	if patch.Title != nil {
		b.set("title", *patch.Title)
	}
	if patch.Content != nil {
		b.set("content", *patch.Content)
	}

	query, args, err := b.build("posts", id, postColumns)
	if err != nil {
		return nil, fmt.Errorf("failed to build post update: %w", err)
	}
	p, err := scanPost(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("post %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	return p, nil
}

// DeleteByID は指定IDの投稿を削除する。
func (r *PostgresPostRepo) DeleteByID(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return checkAffected(result, "post", id)
}

// compile-time interface check
var _ PostRepository = (*PostgresPostRepo)(nil)
