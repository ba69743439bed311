package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hitoshi/memoboard/internal/model"
)

// ErrInvalidIdentity は外部IDに必須項目（Provider・外部ID・email）が欠けていることを表す。
// 呼び出し側では未認証として扱う。
var ErrInvalidIdentity = errors.New("external identity is missing provider, id or email")

// ExternalIdentity は外部IdPが認証したユーザーの識別情報。
type ExternalIdentity struct {
	Provider   string // "google", "jwt" 等
	ExternalID string
	Email      string
	Name       string
}

// AuthID はusers.auth_idに保存する値を返す。
// IdPごとに名前空間を分け、別IdPの同じsubが同一ユーザーに解決されないようにする。
func (i ExternalIdentity) AuthID() string {
	return i.Provider + ":" + i.ExternalID
}

// ResolverUserStore はResolverが使用するユーザー永続化操作。
type ResolverUserStore interface {
	FindByAuthID(ctx context.Context, authID string) (*model.User, error)
	UpsertByEmail(ctx context.Context, authID, email string, name *string) (*model.User, error)
}

// Resolver は外部IDをローカルのユーザーレコードに対応付ける。
type Resolver struct {
	users ResolverUserStore
}

// NewResolver はResolverを生成する。
func NewResolver(users ResolverUserStore) *Resolver {
	return &Resolver{users: users}
}

// Resolve は外部IDに対応するユーザーを返す。初見のユーザーはその場で作成する。
// auth_idで見つかればそれを返し、見つからなければemailをキーにした1文のUPSERTで
// 作成または既存ユーザーを取得するため、同一emailの同時ログインでもユーザーは1件になる。
func (r *Resolver) Resolve(ctx context.Context, ident ExternalIdentity) (*model.User, error) {
	email := strings.TrimSpace(ident.Email)
	if ident.Provider == "" || ident.ExternalID == "" || email == "" {
		return nil, ErrInvalidIdentity
	}
	authID := ident.AuthID()

	user, err := r.users.FindByAuthID(ctx, authID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user by auth ID: %w", err)
	}
	if user != nil {
		return user, nil
	}

	var name *string
	if ident.Name != "" {
		name = &ident.Name
	}
	user, err = r.users.UpsertByEmail(ctx, authID, email, name)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	slog.Info("external identity resolved",
		slog.Int64("user_id", user.ID),
		slog.String("provider", ident.Provider),
	)
	return user, nil
}
