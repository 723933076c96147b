// Package auth issues and verifies the bearer tokens guarding the API.
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken       = errors.New("token is invalid")
	ErrExpiredToken       = errors.New("token is expired")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

const DefaultTokenTTL = 12 * time.Hour

// Session identifies an authenticated caller.
type Session struct {
	User      string
	ExpiresAt time.Time
}

// Manager signs and verifies HS256 tokens for a single configured user.
type Manager struct {
	secret   []byte
	user     string
	password string
	ttl      time.Duration
}

func NewManager(secret, user, password string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Manager{
		secret:   []byte(secret),
		user:     user,
		password: password,
		ttl:      ttl,
	}
}

// Login checks credentials and returns a signed token.
func (m *Manager) Login(user, password string) (string, error) {
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(m.user)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(m.password)) == 1
	if !userOK || !passOK {
		return "", ErrInvalidCredentials
	}
	return m.IssueToken(user)
}

// IssueToken signs a token for the given user.
func (m *Manager) IssueToken(user string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken parses and validates a token string.
func (m *Manager) VerifyToken(tokenString string) (Session, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return m.secret, nil
		})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Session{}, ErrExpiredToken
		}
		return Session{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return Session{}, ErrInvalidToken
	}

	var expires time.Time
	if claims.ExpiresAt != nil {
		expires = claims.ExpiresAt.Time
	}
	return Session{User: claims.Subject, ExpiresAt: expires}, nil
}

// TokenTTL reports the lifetime applied to issued tokens.
func (m *Manager) TokenTTL() time.Duration {
	return m.ttl
}
