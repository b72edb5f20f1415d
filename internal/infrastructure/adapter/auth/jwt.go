package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/crownplay/casino-engine/internal/domain/entity"
	errs "github.com/crownplay/casino-engine/internal/domain/error"
	coreport "github.com/crownplay/casino-engine/internal/domain/port/core"
)

// Claims is the JWT payload carried by session tokens
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies session tokens. The subject claim holds
// the account ID; role changes require a fresh token.
type TokenService struct {
	secret       []byte
	ttl          time.Duration
	issuer       string
	timeProvider coreport.TimeProvider
}

// NewTokenService creates a token service with an HMAC signing secret
func NewTokenService(secret string, ttl time.Duration, issuer string, timeProvider coreport.TimeProvider) *TokenService {
	return &TokenService{
		secret:       []byte(secret),
		ttl:          ttl,
		issuer:       issuer,
		timeProvider: timeProvider,
	}
}

// Issue signs a session token for the given identity
func (s *TokenService) Issue(identity *entity.Identity) (string, error) {
	if identity == nil || identity.AccountID == "" {
		return "", errs.ErrUnauthenticated
	}

	now := s.timeProvider.Now()
	claims := Claims{
		Username: identity.Username,
		Role:     string(identity.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.AccountID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing session token: %w", err)
	}
	return signed, nil
}

// Verify parses a session token and returns the identity it carries
func (s *TokenService) Verify(tokenString string) (*entity.Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.secret, nil
	},
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.timeProvider.Now),
	)
	if err != nil || !token.Valid {
		return nil, errs.ErrUnauthenticated
	}

	role := entity.Role(claims.Role)
	if !entity.IsValidRole(claims.Role) {
		role = entity.RolePlayer
	}

	return &entity.Identity{
		AccountID: claims.Subject,
		Username:  claims.Username,
		Role:      role,
	}, nil
}
