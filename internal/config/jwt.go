package config

import (
	"crypto/rand"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type SessionClaims struct {
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

type JWT struct {
	secret        []byte
	signingMethod jwt.SigningMethod
	tokenLifetime time.Duration
	now           func() time.Time
}

func loadSecret() ([]byte, error) {
	secret, ok := os.LookupEnv("SESSION_SECRET")
	if ok {
		return []byte(secret), nil
	}
	secretPath, ok := os.LookupEnv("SESSION_SECRET_FILE")
	if !ok {
		return nil, fmt.Errorf("no SESSION_SECRET or SESSION_SECRET_FILE env variable set")
	}
	secretBytes, err := os.ReadFile(secretPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read session secret: %w", err)
	}
	return []byte(strings.TrimSpace(string(secretBytes))), nil
}

// NewJWT reads the signing secret from the environment. In development an
// ephemeral secret is generated when none is configured.
func NewJWT(tokenLifetime time.Duration) (*JWT, error) {
	secret, err := loadSecret()
	if err != nil {
		if !Development() {
			return nil, err
		}
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("unable to generate session secret: %w", err)
		}
	}
	if len(secret) < 16 {
		return nil, fmt.Errorf("session secret must be at least 16 bytes")
	}
	return NewJWTWithSecret(secret, tokenLifetime), nil
}

func NewJWTWithSecret(secret []byte, tokenLifetime time.Duration) *JWT {
	return &JWT{
		secret:        secret,
		signingMethod: jwt.SigningMethodHS256,
		tokenLifetime: tokenLifetime,
		now:           time.Now,
	}
}

// SetClock replaces the time source used to issue and validate tokens.
func (j *JWT) SetClock(now func() time.Time) {
	j.now = now
}

func (j *JWT) Sign(claims jwt.Claims) (string, error) {
	return jwt.NewWithClaims(j.signingMethod, claims).SignedString(j.secret)
}

// IssueSessionToken grants access to one game for tokenLifetime. Every
// accepted move issues a fresh token, so the token outlives the game only
// while the player keeps it active.
func (j *JWT) IssueSessionToken(sessionID string) (string, error) {
	now := j.now()
	return j.Sign(&SessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.tokenLifetime)),
		},
	})
}

func (j *JWT) ParseSessionClaims(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&SessionClaims{},
		func(t *jwt.Token) (interface{}, error) {
			return j.secret, nil
		},
		jwt.WithValidMethods([]string{j.signingMethod.Alg()}),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok {
		return nil, fmt.Errorf("malformed claims")
	}
	return claims, nil
}
