package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	defaultGoogleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"
	defaultGoogleTimeout     = 10 * time.Second

	// ProviderGoogle はGoogleで認証されたExternalIdentityのProvider値。
	ProviderGoogle = "google"
)

// GoogleOAuthConfig はGoogle OAuthプロバイダーの設定。
type GoogleOAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string

	// テスト用にオーバーライド可能なURL。未指定時はgoogle.Endpointを使う
	AuthURL     string
	TokenURL    string
	UserInfoURL string

	// HTTPClient はトークン交換とユーザー情報取得の下位クライアント。
	HTTPClient *http.Client
	// Timeout はExchangeCode全体のタイムアウト。未指定時は10秒。
	Timeout time.Duration
}

// GoogleOAuthProvider はGoogle OAuth 2.0の認可コードフローで外部IDを取得する。
type GoogleOAuthProvider struct {
	oauth       *oauth2.Config
	userInfoURL string
	client      *http.Client
	timeout     time.Duration
}

// NewGoogleOAuthProvider はGoogleOAuthProviderを生成する。
func NewGoogleOAuthProvider(config GoogleOAuthConfig) *GoogleOAuthProvider {
	endpoint := google.Endpoint
	if config.AuthURL != "" {
		endpoint.AuthURL = config.AuthURL
	}
	if config.TokenURL != "" {
		endpoint.TokenURL = config.TokenURL
	}

	p := &GoogleOAuthProvider{
		oauth: &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			RedirectURL:  config.RedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     endpoint,
		},
		userInfoURL: config.UserInfoURL,
		client:      config.HTTPClient,
		timeout:     config.Timeout,
	}
	if p.userInfoURL == "" {
		p.userInfoURL = defaultGoogleUserInfoURL
	}
	if p.timeout <= 0 {
		p.timeout = defaultGoogleTimeout
	}
	return p
}

// GetLoginURL はGoogle OAuthの認証URLを生成する。
// スコープにはopenid, email, profileを含む。
func (p *GoogleOAuthProvider) GetLoginURL(state string) string {
	return p.oauth.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// googleUserInfo はGoogleのユーザー情報エンドポイントのレスポンス。
type googleUserInfo struct {
	Sub   string `json:"sub"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// ExchangeCode は認可コードをアクセストークンに交換し、外部IDを取得する。
func (p *GoogleOAuthProvider) ExchangeCode(ctx context.Context, code string) (*ExternalIdentity, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	if p.client != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, p.client)
	}

	// 1. 認可コードをアクセストークンに交換
	token, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange token: %w", err)
	}

	// 2. トークン付きクライアントでユーザー情報を取得
	userInfo, err := p.fetchUserInfo(ctx, p.oauth.Client(ctx, token))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user info: %w", err)
	}

	return &ExternalIdentity{
		Provider:   ProviderGoogle,
		ExternalID: userInfo.Sub,
		Email:      userInfo.Email,
		Name:       userInfo.Name,
	}, nil
}

// fetchUserInfo はGoogleのユーザー情報を取得する。
// clientはAuthorizationヘッダーを付与するoauth2のクライアント。
func (p *GoogleOAuthProvider) fetchUserInfo(ctx context.Context, client *http.Client) (*googleUserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create user info request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("user info request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read user info response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("user info fetch failed with status %d: %s", resp.StatusCode, string(body))
	}

	var userInfo googleUserInfo
	if err := json.Unmarshal(body, &userInfo); err != nil {
		return nil, fmt.Errorf("failed to parse user info response: %w", err)
	}

	if userInfo.Sub == "" {
		return nil, fmt.Errorf("empty sub in user info response")
	}
	if userInfo.Email == "" {
		return nil, fmt.Errorf("empty email in user info response")
	}

	return &userInfo, nil
}

// compile-time interface check
var _ OAuthProvider = (*GoogleOAuthProvider)(nil)
