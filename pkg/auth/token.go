package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenIssuer   = "portfolio-backend"
	tokenAudience = "operator"
	minSecretLen  = 32
)

// ErrSecretTooShort is returned when the signing secret is shorter than 32 bytes.
var ErrSecretTooShort = errors.New("auth: operator token secret must be at least 32 bytes")

// IssueOperatorToken signs an HS256 token for subject valid for ttl.
func IssueOperatorToken(subject string, ttl time.Duration, secret []byte) (string, error) {
	if len(secret) < minSecretLen {
		return "", ErrSecretTooShort
	}
	if subject == "" {
		return "", errors.New("auth: subject is required")
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   subject,
		Audience:  jwt.ClaimStrings{tokenAudience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

// VerifyOperatorToken validates tokenString and returns its subject.
func VerifyOperatorToken(tokenString string, secret []byte) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithAudience(tokenAudience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", errors.New("auth: token has no subject")
	}
	return claims.Subject, nil
}
