package model

import (
	"bytes"
	"encoding/json"
)

// Nullable はJSONの「未指定」「null」「値あり」を区別して保持する。
// 部分更新リクエストで、NULLへの明示的な更新と変更なしを区別するために使う。
type Nullable[T any] struct {
	Set   bool
	Valid bool
	Value T
}

// NullableOf は値ありのNullableを生成する。
func NullableOf[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Valid: true, Value: v}
}

// NullOf は明示的なnullを表すNullableを生成する。
func NullOf[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

// UnmarshalJSON はjson.Unmarshalerを実装する。
// フィールドがJSONに存在する場合のみ呼ばれるため、Setは常にtrueになる。
func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Valid = false
		var zero T
		n.Value = zero
		return nil
	}
	if err := json.Unmarshal(data, &n.Value); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

// Ptr は値ありの場合は値へのポインタ、それ以外はnilを返す。
func (n Nullable[T]) Ptr() *T {
	if !n.Set || !n.Valid {
		return nil
	}
	v := n.Value
	return &v
}
