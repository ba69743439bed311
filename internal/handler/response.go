// Package handler はHTTPハンドラーを提供する。
package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/memoboard/internal/middleware"
	"github.com/hitoshi/memoboard/internal/model"
)

// maxRequestBodyBytes はリクエストボディの上限サイズ。
const maxRequestBodyBytes = 1 << 20

// messageResponse は削除系エンドポイントの成功レスポンス。
type messageResponse struct {
	Message string `json:"message"`
}

// writeJSON はステータスコードとJSONボディを書き込む。
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

// handleServiceError はサービス層のエラーをHTTPレスポンスに変換する。
// APIError以外は内部エラーとしてログとSentryに記録し、汎用メッセージを返す。
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		middleware.WriteErrorResponse(w, mapAPIErrorToHTTPStatus(apiErr), apiErr)
		return
	}

	requestID := middleware.RequestIDFromContext(r.Context())
	slog.Error("internal server error",
		slog.String("error", err.Error()),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("request_id", requestID),
	)

	hub := sentry.CurrentHub().Clone()
	hub.Scope().SetRequest(r)
	hub.Scope().SetTag("request_id", requestID)
	hub.CaptureException(err)

	middleware.WriteInternalServerError(w)
}

// mapAPIErrorToHTTPStatus はAPIErrorコードからHTTPステータスコードにマッピングする。
func mapAPIErrorToHTTPStatus(apiErr *model.APIError) int {
	switch apiErr.Code {
	case model.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case model.ErrCodeForbidden, model.ErrCodeCSRFInvalid:
		return http.StatusForbidden
	case model.ErrCodeMemoNotFound, model.ErrCodeTodoNotFound,
		model.ErrCodePostNotFound, model.ErrCodeUserNotFound:
		return http.StatusNotFound
	case model.ErrCodeInvalidRequest, model.ErrCodeValidationFailed,
		model.ErrCodeEmptyBody, model.ErrCodeInvalidID, model.ErrCodeDuplicateEmail:
		return http.StatusBadRequest
	case model.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON はリクエストボディをdstにデコードする。
// ボディが空（空白のみを含む）の場合はEmptyBodyエラー、JSONとして不正な場合はInvalidRequestエラーを返す。
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	if r.Body == nil {
		return model.NewEmptyBodyError()
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	if err != nil {
		return model.NewInvalidRequestError()
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return model.NewEmptyBodyError()
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return model.NewInvalidRequestError()
	}
	return nil
}

// requireUserID はコンテキストから認証済みユーザーIDを取り出す。
// 取得できない場合は401を書き込み、falseを返す。
func requireUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		middleware.WriteUnauthorized(w)
		return 0, false
	}
	return userID, true
}

// parseID はパス・クエリ・ボディで受け取ったIDを正の整数として解析する。
func parseID(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, model.NewInvalidIDError("")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, model.NewInvalidIDError(raw)
	}
	return id, nil
}

// pathOrQueryID はURLパラメータ {id}、なければクエリ ?id= からIDを取り出す。
func pathOrQueryID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	if raw == "" {
		raw = r.URL.Query().Get("id")
	}
	return parseID(raw)
}

// flexibleID はJSONの数値・文字列どちらの形式でも受け付けるID。
type flexibleID struct {
	Raw string
	Set bool
}

// UnmarshalJSON はjson.Unmarshalerを実装する。nullは未指定として扱う。
func (f *flexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	f.Set = true
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &f.Raw)
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	f.Raw = n.String()
	return nil
}

// Int64 は正の整数として解析したIDを返す。
func (f flexibleID) Int64() (int64, error) {
	if !f.Set {
		return 0, model.NewInvalidIDError("")
	}
	return parseID(f.Raw)
}
