// Package auth issues and verifies the signed tokens used for sessions and email
// verification.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/cannaconnect/cannaconnect-api/internal/config"
)

type TokenType string

const (
	TokenAccess      TokenType = "access"
	TokenRefresh     TokenType = "refresh"
	TokenVerifyEmail TokenType = "verify_email"
)

var (
	// ErrExpired is returned for a well-formed token whose validity window has passed.
	ErrExpired = errors.New("token expired")
	// ErrInvalid is returned for every other verification failure.
	ErrInvalid = errors.New("token invalid")
)

// Claims is the payload of every token. ID carries the jti used by the revocation list.
type Claims struct {
	UserID    uint64    `json:"user_id"`
	TokenType TokenType `json:"token_type"`
	jwt.RegisteredClaims
}

// ExpiresAtTime returns the expiry, or the zero time when absent.
func (c *Claims) ExpiresAtTime() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

// TokenManager signs and verifies HS256 tokens.
type TokenManager struct {
	secret []byte
	issuer string
	ttls   map[TokenType]time.Duration
	now    func() time.Time
}

func NewTokenManager(cfg config.JWTConfig) *TokenManager {
	return &TokenManager{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
		ttls: map[TokenType]time.Duration{
			TokenAccess:      cfg.AccessTokenTTL,
			TokenRefresh:     cfg.RefreshTokenTTL,
			TokenVerifyEmail: cfg.VerifyTokenTTL,
		},
		now: time.Now,
	}
}

// Issue signs a new token of the given type for the user.
func (m *TokenManager) Issue(userID uint64, typ TokenType) (string, *Claims, error) {
	ttl, ok := m.ttls[typ]
	if !ok {
		return "", nil, fmt.Errorf("unknown token type %q", typ)
	}

	now := m.now()
	claims := &Claims{
		UserID:    userID,
		TokenType: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatUint(userID, 10),
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, claims, nil
}

// Parse verifies the signature and type of a token before its issuer and expiry, so
// a token of the wrong type is always ErrInvalid, even when it has expired.
func (m *TokenManager) Parse(tokenString string, want TokenType) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return m.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalid
	}
	if claims.TokenType != want || claims.ID == "" || claims.UserID == 0 {
		return nil, ErrInvalid
	}

	validator := jwt.NewValidator(
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err := validator.Validate(claims); err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrInvalid
	}
	return claims, nil
}
