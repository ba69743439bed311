// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"
	"time"

	"github.com/hitoshi/memoboard/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id int64) (*model.User, error)

	// FindByAuthID は外部IdPのユーザー識別子でユーザーを検索する。見つからない場合はnilを返す。
	FindByAuthID(ctx context.Context, authID string) (*model.User, error)

	// FindMany は全ユーザーをid降順で返す。
	FindMany(ctx context.Context) ([]*model.User, error)

	// Create はユーザーを作成し、採番されたIDとタイムスタンプをuserに設定する。
	// emailが重複する場合はIsUniqueViolationで判定可能なエラーを返す。
	Create(ctx context.Context, user *model.User) error

	// UpsertByEmail はemailをキーにユーザーを1文で作成または取得する。
	// 既存ユーザーのname・emailは変更せず、auth_idが未設定の場合のみ補完する。
	UpsertByEmail(ctx context.Context, authID, email string, name *string) (*model.User, error)

	// DeleteByID は指定IDのユーザーを削除する。
	// 関連するsessions、memos、todos、postsはCASCADE削除される。
	// 存在しない場合はErrNotFoundを返す。
	DeleteByID(ctx context.Context, id int64) error
}

// SessionRepository はセッションデータの永続化インターフェース。
type SessionRepository interface {
	// Create はセッションを作成する。
	Create(ctx context.Context, session *model.Session) error
	// FindByID は指定IDのセッションを取得する。期限切れの場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Session, error)
	// DeleteByID は指定IDのセッションを削除する。
	DeleteByID(ctx context.Context, id string) error
	// DeleteByUserID は指定ユーザーの全セッションを削除する。
	DeleteByUserID(ctx context.Context, userID int64) error
	// DeleteExpired はbefore時点で期限切れのセッションを削除し、削除件数を返す。
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// MemoRepository はメモデータの永続化インターフェース。
type MemoRepository interface {
	// FindByID は指定IDのメモを取得する。見つからない場合はnilを返す。
	// 所有者の検証は行わない。
	FindByID(ctx context.Context, id int64) (*model.Memo, error)

	// FindManyByOwner は指定ユーザーのメモをid降順で返す。
	FindManyByOwner(ctx context.Context, ownerID int64) ([]*model.Memo, error)

	// Create はメモを作成し、採番されたIDとタイムスタンプをmemoに設定する。
	Create(ctx context.Context, memo *model.Memo) error

	// Update はpatchで指定されたフィールドのみを更新し、更新後のメモを返す。
	// 存在しない場合はErrNotFoundを返す。
	Update(ctx context.Context, id int64, patch model.MemoPatch) (*model.Memo, error)

	// DeleteByID は指定IDのメモを削除する。存在しない場合はErrNotFoundを返す。
	DeleteByID(ctx context.Context, id int64) error
}

// TodoRepository はTodoデータの永続化インターフェース。
type TodoRepository interface {
	// FindByID は指定IDのTodoを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id int64) (*model.Todo, error)

	// FindManyByOwner は指定ユーザーのTodoを日付昇順、同日内はid昇順で返す。
	FindManyByOwner(ctx context.Context, ownerID int64) ([]*model.Todo, error)

	// Create はTodoを作成し、採番されたIDとタイムスタンプをtodoに設定する。
	Create(ctx context.Context, todo *model.Todo) error

	// Update はpatchで指定されたフィールドのみを更新し、更新後のTodoを返す。
	// 存在しない場合はErrNotFoundを返す。
	Update(ctx context.Context, id int64, patch model.TodoPatch) (*model.Todo, error)

	// DeleteByID は指定IDのTodoを削除する。存在しない場合はErrNotFoundを返す。
	DeleteByID(ctx context.Context, id int64) error
}

// PostRepository は投稿データの永続化インターフェース。
type PostRepository interface {
	// FindByID は指定IDの投稿を投稿者名付きで取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id int64) (*model.Post, error)

	// FindMany は全投稿を作成日時降順で投稿者名付きで返す。
	FindMany(ctx context.Context) ([]*model.Post, error)

	// Create は投稿を作成し、採番されたIDとタイムスタンプをpostに設定する。
	// user_idが存在しない場合はIsForeignKeyViolationで判定可能なエラーを返す。
	Create(ctx context.Context, post *model.Post) error

	// Update はpatchで指定されたフィールドのみを更新し、更新後の投稿を返す。
	// 存在しない場合はErrNotFoundを返す。
	Update(ctx context.Context, id int64, patch model.PostPatch) (*model.Post, error)

	// DeleteByID は指定IDの投稿を削除する。存在しない場合はErrNotFoundを返す。
	DeleteByID(ctx context.Context, id int64) error
}
