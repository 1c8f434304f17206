// Package share signs media references into expiring share links.
package share

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/playrelay/playrelay/internal/media"
)

const (
	TokenDuration = 7 * 24 * time.Hour
	tokenType     = "share"
)

var ErrInvalidToken = errors.New("share: invalid token")

type Claims struct {
	URL       string `json:"url"`
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

func GenerateToken(secret string, ref media.Reference, now time.Time) (string, error) {
	if ref.IsZero() {
		return "", media.ErrEmptyReference
	}
	claims := &Claims{
		URL:       ref.String(),
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateToken returns the reference signed into tokenStr.
func ValidateToken(secret string, tokenStr string) (media.Reference, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return media.Reference{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.TokenType != tokenType {
		return media.Reference{}, ErrInvalidToken
	}
	ref, err := media.NewReference(claims.URL)
	if err != nil {
		return media.Reference{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return ref, nil
}
