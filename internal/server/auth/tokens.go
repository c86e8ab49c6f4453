// Package auth issues and verifies bearer tokens and decides resource
// ownership.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/postboard/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the token payload: the registered claims (sub carries the user
// id) plus the display name at issue time.
type Claims struct {
	jwt.RegisteredClaims
	Name string `json:"name,omitempty"`
}

// TokenService signs HS256 tokens with a process-wide secret. Verification
// depends only on the token, the secret and the clock.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService fails with common.ErrConfiguration when the secret is
// empty or the ttl is not positive.
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, fmt.Errorf("%w: token signing secret is not set", common.ErrConfiguration)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("%w: token ttl must be positive, got %s", common.ErrConfiguration, ttl)
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// TTL returns the lifetime of issued tokens.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue returns a signed token for id expiring after the configured ttl.
func (s *TokenService) Issue(id common.UserID, name string) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Name: name,
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify returns the user id embedded in token. It fails with
// common.ErrTokenExpired once now reaches exp and with
// common.ErrInvalidToken for anything else that is wrong with the token.
func (s *TokenService) Verify(token string) (common.UserID, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return common.NilUserID, common.ErrTokenExpired
		}
		return common.NilUserID, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	id, err := common.ParseUserID(claims.Subject)
	if err != nil || id.IsZero() {
		return common.NilUserID, fmt.Errorf("%w: bad subject", common.ErrInvalidToken)
	}
	return id, nil
}
