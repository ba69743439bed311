package model

import "time"

// Post は全ユーザーに公開される投稿を表す。
type Post struct {
	ID        int64
	UserID    int64
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time

	// AuthorName は一覧取得時にusersテーブルからJOINした投稿者名。
	AuthorName *string
}

// OwnerID は投稿者のユーザーIDを返す。
func (p *Post) OwnerID() int64 { return p.UserID }

// PostPatch は投稿の部分更新内容。nilのフィールドは変更しない。
type PostPatch struct {
	Title   *string
	Content *string
}

// IsEmpty は更新対象のフィールドが1つもないかどうかを返す。
func (p PostPatch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil
}
