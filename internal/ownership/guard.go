// Package ownership はリソースの所有者検証を提供する。
// 読み込み→存在確認→所有者比較の順序を全リソースで共通化する。
package ownership

import (
	"context"
	"fmt"

	"github.com/hitoshi/memoboard/internal/model"
)

// Owned は所有ユーザーを持つエンティティへのポインタ型。
type Owned[E any] interface {
	*E
	OwnerID() int64
}

// Load はfindでエンティティを取得し、userIDが所有者であることを検証する。
// findは見つからない場合にnil, nilを返すこと（リポジトリのFindByIDと同じ規約）。
// 存在しない場合はNotFound、所有者が異なる場合はForbiddenのAPIErrorを返す。
// 所有者比較は取得できた場合にのみ行うため、存在しないIDに403を返すことはない。
func Load[E any, P Owned[E]](
	ctx context.Context,
	id, userID int64,
	find func(ctx context.Context, id int64) (P, error),
	resource string,
) (P, error) {
	entity, err := find(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", resource, err)
	}
	if entity == nil {
		return nil, model.NewNotFoundError(resource, id)
	}
	if err := Check(entity.OwnerID(), userID, resource); err != nil {
		return nil, err
	}
	return entity, nil
}

// Check はownerとuserIDを比較し、一致しない場合はForbiddenのAPIErrorを返す。
func Check(owner, userID int64, resource string) error {
	if owner != userID {
		return model.NewForbiddenError(resource)
	}
	return nil
}
