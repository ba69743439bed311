package app

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/hitoshi/memoboard/internal/auth"
	"github.com/hitoshi/memoboard/internal/config"
)

// errBearerDisabled はAUTH_JWT_SECRET未設定でトークン発行を要求された場合のエラー。
var errBearerDisabled = errors.New("AUTH_JWT_SECRET is not set; bearer token authentication is disabled")

// runIssueToken はAUTH_JWT_SECRETで署名したBearerトークンを発行し、wに出力する。
//
//	memoboard issue-token -email alice@example.com [-sub alice] [-name Alice] [-ttl 24h]
func runIssueToken(w io.Writer, cfg *config.Config, args []string) error {
	if !cfg.BearerEnabled() {
		return errBearerDisabled
	}

	fs := flag.NewFlagSet(string(CommandIssueToken), flag.ContinueOnError)
	fs.SetOutput(w)
	email := fs.String("email", "", "トークンに含めるメールアドレス（必須）")
	sub := fs.String("sub", "", "外部ユーザーID（未指定時はemail）")
	name := fs.String("name", "", "表示名")
	ttl := fs.Duration("ttl", 24*time.Hour, "有効期間")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *email == "" {
		return errors.New("-email is required")
	}
	if *ttl <= 0 {
		return fmt.Errorf("-ttl must be positive: %v", *ttl)
	}
	if *sub == "" {
		*sub = *email
	}

	token, err := auth.NewJWTVerifier(cfg.JWTSecret).Issue(auth.ExternalIdentity{
		Provider:   auth.ProviderJWT,
		ExternalID: *sub,
		Email:      *email,
		Name:       *name,
	}, *ttl)
	if err != nil {
		return fmt.Errorf("failed to sign token: %w", err)
	}

	_, err = fmt.Fprintln(w, token)
	return err
}
