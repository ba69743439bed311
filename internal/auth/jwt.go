package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ProviderJWT はBearerトークンで認証されたExternalIdentityのProvider値。
const ProviderJWT = "jwt"

// BearerClaims はBearerトークンに含まれるクレーム。
// subを外部ID、emailとnameをユーザー情報として扱う。
type BearerClaims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// JWTVerifier はHS256署名のBearerトークンを検証する。
type JWTVerifier struct {
	secret []byte
	now    func() time.Time
}

// NewJWTVerifier はJWTVerifierを生成する。
func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret), now: time.Now}
}

// Verify はトークンの署名と有効期限を検証し、外部IDを返す。
func (v *JWTVerifier) Verify(tokenString string) (*ExternalIdentity, error) {
	claims := &BearerClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) { return v.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid bearer token: %w", err)
	}
	if claims.Subject == "" || claims.Email == "" {
		return nil, errors.New("invalid bearer token: sub and email claims are required")
	}

	return &ExternalIdentity{
		Provider:   ProviderJWT,
		ExternalID: claims.Subject,
		Email:      claims.Email,
		Name:       claims.Name,
	}, nil
}

// Issue は外部IDから有効期間ttlのトークンを署名して返す。
func (v *JWTVerifier) Issue(ident ExternalIdentity, ttl time.Duration) (string, error) {
	now := v.now()
	claims := BearerClaims{
		Email: ident.Email,
		Name:  ident.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   ident.ExternalID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}
