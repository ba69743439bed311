package model

import "time"

// Todo はユーザーの予定・タスクを表す。
// Dateは必須の暦日、Time・Datetime・RemindTimeはそれぞれ独立にNULL許容。
type Todo struct {
	ID          int64
	UserID      int64
	Title       string
	Description string
	Date        time.Time
	Time        *string // "15:04:05" 形式の時刻
	Datetime    *time.Time
	IsDone      bool
	IsRemind    bool
	RemindTime  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OwnerID はTodoの所有ユーザーIDを返す。
func (t *Todo) OwnerID() int64 { return t.UserID }

// TodoPatch はTodoの部分更新内容。
// nilのポインタは変更なし。Nullable型は Set=false で変更なし、Set=true かつ Valid=false でNULLに更新する。
type TodoPatch struct {
	Title       *string
	Description *string
	Date        *time.Time
	Time        Nullable[string]
	Datetime    Nullable[time.Time]
	IsDone      *bool
	IsRemind    *bool
	RemindTime  Nullable[time.Time]
}

// IsEmpty は更新対象のフィールドが1つもないかどうかを返す。
func (p TodoPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Date == nil &&
		!p.Time.Set && !p.Datetime.Set && p.IsDone == nil && p.IsRemind == nil &&
		!p.RemindTime.Set
}

// DateLayout はTodoの日付（暦日）の入出力フォーマット。
const DateLayout = "2006-01-02"

// ClockLayout はTodoの時刻の正規化フォーマット。
const ClockLayout = "15:04:05"
