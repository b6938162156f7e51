package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Role levels carried in access tokens
const (
	RoleStudent = 1
	RoleTutor   = 2
	RoleAdmin   = 3
)

// Claims is the authenticated identity extracted from an access token
type Claims struct {
	UserID int
	Role   int
}

// TokenValidator validates access tokens issued by the identity provider.
// Tokens are HS256-signed with the shared secret.
type TokenValidator struct {
	secret []byte
}

// NewTokenValidator creates a new token validator
func NewTokenValidator(secret string) *TokenValidator {
	return &TokenValidator{secret: []byte(secret)}
}

// GenerateAccessToken signs an access token for the given user.
// The identity provider owns token issuance; this is used by learnctl and tests.
func (tv *TokenValidator) GenerateAccessToken(userID, role int, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     now.Add(expiry).Unix(),
		"iat":     now.Unix(),
		"type":    "access",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tv.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return tokenString, nil
}

// ValidateAccessToken validates an access token and returns its claims
func (tv *TokenValidator) ValidateAccessToken(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return tv.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("token is invalid")
	}

	if tokenType, _ := claims["type"].(string); tokenType != "access" {
		return nil, fmt.Errorf("token is not an access token")
	}

	// JWT claims decode numbers as float64
	userID, ok := claims["user_id"].(float64)
	if !ok || userID <= 0 {
		return nil, fmt.Errorf("user_id not found in token")
	}
	role, ok := claims["role"].(float64)
	if !ok {
		return nil, fmt.Errorf("role not found in token")
	}

	return &Claims{UserID: int(userID), Role: int(role)}, nil
}
