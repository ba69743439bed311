// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/hitoshi/memoboard/internal/model"
)

const sessionCookieName = "session_id"

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

var (
	// userIDContextKey はリクエストコンテキストにユーザーIDを格納するためのキー。
	userIDContextKey = contextKey("user_id")
	// requestInfoContextKey はロギングミドルウェアが用意するリクエスト情報のキー。
	requestInfoContextKey = contextKey("request_info")
)

// SessionFinder はセッションの検索に必要なインターフェース。
// repository.SessionRepositoryの部分集合として定義する。
type SessionFinder interface {
	FindByID(ctx context.Context, id string) (*model.Session, error)
}

// BearerAuthenticator はBearerトークンをユーザーIDに解決する。
// トークン自体が無効な場合はCodeがUNAUTHORIZEDの*model.APIErrorをラップしたエラーを返す。
// それ以外のエラーはストア障害として500になる。
type BearerAuthenticator interface {
	AuthenticateBearer(ctx context.Context, token string) (int64, error)
}

// NewSessionMiddleware はセッションCookieのみで認証するミドルウェアを返す。
func NewSessionMiddleware(sessionFinder SessionFinder) func(next http.Handler) http.Handler {
	return NewIdentityMiddleware(sessionFinder, nil)
}

// NewIdentityMiddleware はリクエストの呼び出し元ユーザーを解決するミドルウェアを返す。
// Authorization: Bearer ヘッダーがあればトークンで、なければセッションCookieで認証する。
// bearerがnilの場合、Bearerトークン付きのリクエストは401になる。
// 認証済みユーザーIDをリクエストコンテキストに注入する。
// セッション検索やユーザー解決でストアが失敗した場合は401ではなく500を返す。
func NewIdentityMiddleware(sessionFinder SessionFinder, bearer BearerAuthenticator) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var (
				userID int64
				ok     bool
				err    error
			)
			if token, isBearer := BearerToken(r); isBearer {
				userID, ok, err = authenticateBearer(r, bearer, token)
			} else {
				userID, ok, err = authenticateSession(r, sessionFinder)
			}
			if err != nil {
				slog.Error("identity lookup failed",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("error", err.Error()),
				)
				WriteInternalServerError(w)
				return
			}
			if !ok {
				WriteUnauthorized(w)
				return
			}

			ctx := ContextWithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken はAuthorizationヘッダーからBearerトークンを取り出す。
func BearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func authenticateBearer(r *http.Request, bearer BearerAuthenticator, token string) (int64, bool, error) {
	if bearer == nil {
		return 0, false, nil
	}
	userID, err := bearer.AuthenticateBearer(r.Context(), token)
	if err != nil {
		if !isUnauthorized(err) {
			return 0, false, fmt.Errorf("failed to authenticate bearer token: %w", err)
		}
		slog.Warn("bearer authentication failed",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		return 0, false, nil
	}
	return userID, true, nil
}

func authenticateSession(r *http.Request, sessionFinder SessionFinder) (int64, bool, error) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return 0, false, nil
	}

	session, err := sessionFinder.FindByID(r.Context(), cookie.Value)
	if err != nil {
		return 0, false, fmt.Errorf("failed to find session: %w", err)
	}
	if session == nil {
		return 0, false, nil
	}
	return session.UserID, true, nil
}

// isUnauthorized はerrが認証情報の不備を表すAPIErrorかを判定する。
func isUnauthorized(err error) bool {
	var apiErr *model.APIError
	return errors.As(err, &apiErr) && apiErr.Code == model.ErrCodeUnauthorized
}

// UserIDFromContext はリクエストコンテキストからユーザーIDを取得する。
// 認証ミドルウェアを通過したリクエストでのみ有効。
func UserIDFromContext(ctx context.Context) (int64, error) {
	userID, ok := ctx.Value(userIDContextKey).(int64)
	if !ok || userID <= 0 {
		return 0, fmt.Errorf("user ID not found in context")
	}
	return userID, nil
}

// ContextWithUserID はコンテキストにユーザーIDを注入する。
// ロギングミドルウェアのリクエスト情報があれば、そちらにも記録する。
func ContextWithUserID(ctx context.Context, userID int64) context.Context {
	if info, ok := ctx.Value(requestInfoContextKey).(*requestInfo); ok {
		info.userID = userID
	}
	return context.WithValue(ctx, userIDContextKey, userID)
}
