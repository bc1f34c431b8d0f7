// file: internals/features/users/auth/service/token_service.go
package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"netbill_backend/internals/configs"
	"netbill_backend/internals/features/users/auth/model"
)

const (
	accessTTL  = 2 * time.Hour
	refreshTTL = 7 * 24 * time.Hour
)

var (
	ErrSecretMissing       = errors.New("JWT secret is not configured")
	ErrInvalidRefreshToken = errors.New("refresh token is invalid")
)

// IssueAccessToken signs the short-lived token the middleware checks on
// every request. Claim names ("id", "role", "user_name") match what the
// auth middleware stores into Locals.
func IssueAccessToken(user *model.UserModel, now time.Time) (string, error) {
	if configs.JWTSecret == "" {
		return "", ErrSecretMissing
	}
	claims := jwt.MapClaims{
		"id":        user.UserID.String(),
		"role":      string(user.UserRole),
		"user_name": user.UserName,
		"iat":       now.Unix(),
		"exp":       now.Add(accessTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(configs.JWTSecret))
}

// IssueRefreshToken signs the long-lived token carrying only the subject.
func IssueRefreshToken(userID uuid.UUID, now time.Time) (string, error) {
	if configs.JWTRefreshSecret == "" {
		return "", ErrSecretMissing
	}
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"iat": now.Unix(),
		"exp": now.Add(refreshTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(configs.JWTRefreshSecret))
}

// ParseRefreshToken validates a refresh token and returns its subject.
func ParseRefreshToken(raw string) (uuid.UUID, error) {
	if configs.JWTRefreshSecret == "" {
		return uuid.Nil, ErrSecretMissing
	}

	tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidRefreshToken
		}
		return []byte(configs.JWTRefreshSecret), nil
	})
	if err != nil || !tok.Valid {
		return uuid.Nil, ErrInvalidRefreshToken
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, ErrInvalidRefreshToken
	}
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, ErrInvalidRefreshToken
	}
	return userID, nil
}

// AccessTokenExpiry reports when a raw access token lapses, for blacklist
// bookkeeping at logout. Signature errors are ignored on purpose: even a
// token we cannot verify gets blacklisted until its claimed expiry.
func AccessTokenExpiry(raw string) time.Time {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return time.Now().Add(accessTTL)
	}
	if exp, ok := claims["exp"].(float64); ok {
		return time.Unix(int64(exp), 0)
	}
	return time.Now().Add(accessTTL)
}
