// Package jwtauth verifica tokens HS256 firmados con un secreto compartido
// e implementa auth.AuthVerifier.
package jwtauth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"caretrack/internal/platform/clock"
	"caretrack/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "caretrack"

var (
	ErrTokenEmpty    = errors.New("token is empty")
	ErrSecretMissing = errors.New("jwt secret is empty")
)

type tokenClaims struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

type Verifier struct {
	secret []byte
	clk    clock.Clock
}

func NewVerifier(secret string, clk clock.Clock) (*Verifier, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrSecretMissing
	}
	if clk == nil {
		clk = clock.Real{}
	}
	return &Verifier{secret: []byte(secret), clk: clk}, nil
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	var tc tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &tc, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(v.clk.Now),
	)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("parse token: %w", err)
	}
	if !parsed.Valid {
		return auth.Claims{}, errors.New("invalid token")
	}

	uid := strings.TrimSpace(tc.Subject)
	if uid == "" {
		return auth.Claims{}, errors.New("token claims missing subject")
	}
	return auth.Claims{UserID: uid, Name: tc.Name, Email: tc.Email}, nil
}

// Sign emite un token para c válido durante ttl. Lo usa el comando
// `caretrack token` para dar acceso a un familiar.
func (v *Verifier) Sign(c auth.Claims, ttl time.Duration) (string, error) {
	if strings.TrimSpace(c.UserID) == "" {
		return "", errors.New("user id is required")
	}
	now := v.clk.Now()
	tc := tokenClaims{
		Name:  c.Name,
		Email: c.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   c.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tc).SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
