package app

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/hitoshi/memoboard/internal/auth"
	"github.com/hitoshi/memoboard/internal/config"
)

const testJWTSecret = "test-jwt-secret-with-at-least-32-bytes!!"

func TestRunIssueToken_IssuesVerifiableToken(t *testing.T) {
	cfg := &config.Config{JWTSecret: testJWTSecret}

	var buf bytes.Buffer
	err := runIssueToken(&buf, cfg, []string{"-email", "alice@example.com", "-name", "Alice", "-ttl", "1h"})
	if err != nil {
		t.Fatalf("runIssueToken() error = %v", err)
	}

	token := strings.TrimSpace(buf.String())
	ident, err := auth.NewJWTVerifier(testJWTSecret).Verify(token)
	if err != nil {
		t.Fatalf("issued token should verify: %v", err)
	}
	if ident.Email != "alice@example.com" || ident.Name != "Alice" {
		t.Errorf("identity = %+v", ident)
	}
	// sub未指定時はemailを外部IDにする
	if ident.ExternalID != "alice@example.com" {
		t.Errorf("ExternalID = %q, want email", ident.ExternalID)
	}
}

func TestRunIssueToken_BearerDisabled(t *testing.T) {
	var buf bytes.Buffer
	err := runIssueToken(&buf, &config.Config{}, []string{"-email", "a@example.com"})
	if !errors.Is(err, errBearerDisabled) {
		t.Errorf("error = %v, want errBearerDisabled", err)
	}
}

func TestRunIssueToken_InvalidArgs(t *testing.T) {
	cfg := &config.Config{JWTSecret: testJWTSecret}

	tests := []struct {
		name string
		args []string
	}{
		{"email未指定", nil},
		{"ttlが0", []string{"-email", "a@example.com", "-ttl", "0s"}},
		{"未知のフラグ", []string{"-unknown"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := runIssueToken(&buf, cfg, tt.args); err == nil {
				t.Error("expected error")
			}
		})
	}
}
