package model

import "time"

// MemoType はメモの種類を表す。
type MemoType string

const (
	// MemoTypeChecklist はItemsを本文として扱うチェックリスト形式。
	MemoTypeChecklist MemoType = "checklist"
	// MemoTypeText はTextContentを本文として扱うテキスト形式。
	MemoTypeText MemoType = "text"
)

// Valid はメモ種別が定義済みの値かどうかを返す。
func (t MemoType) Valid() bool {
	return t == MemoTypeChecklist || t == MemoTypeText
}

// Memo はユーザー個人のメモを表す。
// Items、Images、URLsはクライアントがシリアライズしたリスト（JSON文字列）をそのまま保持する。
type Memo struct {
	ID          int64
	UserID      int64
	Title       string
	Type        MemoType
	Items       string
	TextContent string
	Images      string
	URLs        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OwnerID はメモの所有ユーザーIDを返す。
func (m *Memo) OwnerID() int64 { return m.UserID }

// MemoPatch はメモの部分更新内容。nilのフィールドは変更しない。
type MemoPatch struct {
	Title       *string
	Type        *MemoType
	Items       *string
	TextContent *string
	Images      *string
	URLs        *string
}

// IsEmpty は更新対象のフィールドが1つもないかどうかを返す。
func (p MemoPatch) IsEmpty() bool {
	return p.Title == nil && p.Type == nil && p.Items == nil &&
		p.TextContent == nil && p.Images == nil && p.URLs == nil
}
