package api

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const maxUserIDLength = 64

var (
	errMissingBearerToken = errors.New("missing bearer token")
	errInvalidToken       = errors.New("invalid token")
	errInvalidUserID      = errors.New("invalid user id")
)

// IssueToken signs an HS256 token whose subject is userID.
func IssueToken(secret string, userID string, ttl time.Duration, now time.Time) (string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" || len(userID) > maxUserIDLength {
		return "", errInvalidUserID
	}
	if ttl <= 0 {
		return "", fmt.Errorf("token ttl must be positive")
	}

	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func (handler *Handler) parseToken(tokenValue string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenValue, claims, func(token *jwt.Token) (interface{}, error) {
		return handler.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(handler.now),
	)
	if err != nil || !token.Valid {
		return "", errInvalidToken
	}

	userID := strings.TrimSpace(claims.Subject)
	if userID == "" || len(userID) > maxUserIDLength {
		return "", errInvalidUserID
	}
	return userID, nil
}

func bearerToken(header string) (string, error) {
	scheme, value, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", errMissingBearerToken
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", errMissingBearerToken
	}
	return value, nil
}
