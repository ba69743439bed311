package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/hitoshi/memoboard/internal/model"
)

// TokenVerifier はBearerトークンを検証して外部IDを取り出す。
type TokenVerifier interface {
	Verify(tokenString string) (*ExternalIdentity, error)
}

// BearerAuthenticator はBearerトークンをローカルユーザーIDに解決する。
// 初回のトークン利用時にユーザーが作成される。
type BearerAuthenticator struct {
	verifier TokenVerifier
	resolver IdentityResolver
}

// NewBearerAuthenticator はBearerAuthenticatorを生成する。
func NewBearerAuthenticator(verifier TokenVerifier, resolver IdentityResolver) *BearerAuthenticator {
	return &BearerAuthenticator{verifier: verifier, resolver: resolver}
}

// AuthenticateBearer はトークンを検証し、対応するユーザーIDを返す。
// トークンの不正と必須クレームの欠落はmodel.NewUnauthorizedErrorでラップする。
// ユーザー解決時のストア障害はそのまま返す。
func (a *BearerAuthenticator) AuthenticateBearer(ctx context.Context, token string) (int64, error) {
	ident, err := a.verifier.Verify(token)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", model.NewUnauthorizedError(), err)
	}

	user, err := a.resolver.Resolve(ctx, *ident)
	if errors.Is(err, ErrInvalidIdentity) {
		return 0, fmt.Errorf("%w: %w", model.NewUnauthorizedError(), err)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to resolve bearer identity: %w", err)
	}
	return user.ID, nil
}
