// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// クライアントに返すメッセージと原因カテゴリを含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, resource, system
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeUnauthorized     = "UNAUTHORIZED"
	ErrCodeForbidden        = "FORBIDDEN"
	ErrCodeCSRFInvalid      = "CSRF_TOKEN_INVALID"
	ErrCodeInvalidRequest   = "INVALID_REQUEST"
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	ErrCodeEmptyBody        = "EMPTY_BODY"
	ErrCodeInvalidID        = "INVALID_ID"
	ErrCodeDuplicateEmail   = "DUPLICATE_EMAIL"
	ErrCodeMemoNotFound     = "MEMO_NOT_FOUND"
	ErrCodeTodoNotFound     = "TODO_NOT_FOUND"
	ErrCodePostNotFound     = "POST_NOT_FOUND"
	ErrCodeUserNotFound     = "USER_NOT_FOUND"
	ErrCodeRateLimited      = "RATE_LIMIT_EXCEEDED"
	ErrCodeInternal         = "INTERNAL_ERROR"
)

// NewUnauthorizedError は未認証エラーを生成する。
func NewUnauthorizedError() *APIError {
	return &APIError{
		Code:     ErrCodeUnauthorized,
		Message:  "authentication required",
		Category: "auth",
	}
}

// NewForbiddenError は所有者以外による操作のエラーを生成する。
// resourceには "memo"、"todo" などのリソース名を渡す。
func NewForbiddenError(resource string) *APIError {
	return &APIError{
		Code:     ErrCodeForbidden,
		Message:  fmt.Sprintf("you do not have permission to access this %s", resource),
		Category: "auth",
	}
}

// NewCSRFError はCSRFトークン検証失敗のエラーを生成する。
func NewCSRFError() *APIError {
	return &APIError{
		Code:     ErrCodeCSRFInvalid,
		Message:  "CSRF token validation failed",
		Category: "auth",
	}
}

// NewNotFoundError はリソース未検出エラーを生成する。
func NewNotFoundError(resource string, id int64) *APIError {
	code := ErrCodeInternal
	switch resource {
	case "memo":
		code = ErrCodeMemoNotFound
	case "todo":
		code = ErrCodeTodoNotFound
	case "post":
		code = ErrCodePostNotFound
	case "user":
		code = ErrCodeUserNotFound
	}
	return &APIError{
		Code:     code,
		Message:  fmt.Sprintf("%s not found: %d", resource, id),
		Category: "resource",
	}
}

// NewInvalidRequestError はリクエストボディの解析失敗エラーを生成する。
func NewInvalidRequestError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidRequest,
		Message:  "failed to parse request body",
		Category: "validation",
	}
}

// NewValidationError は入力値の検証エラーを生成する。
func NewValidationError(message string) *APIError {
	return &APIError{
		Code:     ErrCodeValidationFailed,
		Message:  message,
		Category: "validation",
	}
}

// NewEmptyBodyError は空のリクエストボディに対するエラーを生成する。
func NewEmptyBodyError() *APIError {
	return &APIError{
		Code:     ErrCodeEmptyBody,
		Message:  "request body is empty",
		Category: "validation",
	}
}

// NewInvalidIDError はIDの指定漏れ・形式不正のエラーを生成する。
func NewInvalidIDError(raw string) *APIError {
	msg := "id is required"
	if raw != "" {
		msg = fmt.Sprintf("invalid id: %s", raw)
	}
	return &APIError{
		Code:     ErrCodeInvalidID,
		Message:  msg,
		Category: "validation",
	}
}

// NewDuplicateEmailError はメールアドレス重複エラーを生成する。
func NewDuplicateEmailError() *APIError {
	return &APIError{
		Code:     ErrCodeDuplicateEmail,
		Message:  "email is already registered",
		Category: "validation",
	}
}

// NewRateLimitedError はレート制限超過のエラーを生成する。
func NewRateLimitedError() *APIError {
	return &APIError{
		Code:     ErrCodeRateLimited,
		Message:  "too many requests, please retry later",
		Category: "system",
	}
}

// NewInternalError はクライアントに返す汎用の内部エラーを生成する。
// 詳細はサーバーログにのみ記録する。
func NewInternalError() *APIError {
	return &APIError{
		Code:     ErrCodeInternal,
		Message:  "internal server error",
		Category: "system",
	}
}
