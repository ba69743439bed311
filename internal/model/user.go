// Package model はドメインモデルを定義する。
package model

import "time"

// User はサービス利用ユーザーを表す。
// AuthIDは外部IdPが発行するユーザー識別子で、POST /api/users で作成されたユーザーでは未設定になる。
type User struct {
	ID        int64
	AuthID    *string
	Name      *string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Session はユーザーのログインセッションを表す。
type Session struct {
	ID        string
	UserID    int64
	ExpiresAt time.Time
	CreatedAt time.Time
}
