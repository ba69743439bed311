// Package security はアプリケーションのセキュリティ機能を提供する。
//
// 公開投稿はプレーンテキストとして表示されるため、保存前にbluemondayの
// StrictPolicyでマークアップを取り除く。
package security

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// ContentSanitizerService は投稿の本文・タイトルのサニタイズ機能のインターフェース。
type ContentSanitizerService interface {
	// Sanitize はタグを全て除去したプレーンテキストを返す。
	// script, style等は中身ごと除去される。タグ以外の文字（&, <, >, "など）はそのまま残る。
	// 前後の空白は保持する。
	Sanitize(raw string) string

	// SanitizeText はSanitizeに加えて前後の空白を除去する。タイトル向け。
	SanitizeText(raw string) string
}

// contentSanitizer はContentSanitizerServiceの実装。
// bluemondayのポリシーはスレッドセーフで、複数リクエストから共有できる。
type contentSanitizer struct {
	strict *bluemonday.Policy
}

// NewContentSanitizer はContentSanitizerServiceの新しいインスタンスを生成する。
func NewContentSanitizer() *contentSanitizer {
	return &contentSanitizer{strict: bluemonday.StrictPolicy()}
}

// Sanitize はタグを除去し、bluemondayがエスケープした文字を元に戻したテキストを返す。
// 出力はJSONのテキストとして返し、HTMLとして描画しない前提。
func (s *contentSanitizer) Sanitize(raw string) string {
	return html.UnescapeString(s.strict.Sanitize(raw))
}

// SanitizeText はSanitizeの結果から前後の空白を除去する。
func (s *contentSanitizer) SanitizeText(raw string) string {
	return strings.TrimSpace(s.Sanitize(raw))
}
