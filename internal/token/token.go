package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vaughan-dsouza/postboard/internal/models"
)

// TTL is the fixed session lifetime. There is no refresh flow; a token
// lives for exactly this long from issuance.
const TTL = 7 * 24 * time.Hour

// Verification failures. Callers treat all three as "not logged in", but
// they stay distinguishable for logging and tests.
var (
	ErrMalformed    = errors.New("token: malformed")
	ErrBadSignature = errors.New("token: bad signature")
	ErrExpired      = errors.New("token: expired")
)

// Claims is the session payload: the subject's id and the role frozen at
// issuance. Authorization checks trust this role for the token's lifetime.
type Claims struct {
	UserID int64       `json:"userId"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

func Issue(userID int64, role models.Role, secret []byte) (string, error) {
	if len(secret) == 0 {
		return "", errors.New("token: secret not configured")
	}

	now := time.Now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TTL)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func Verify(tokenStr string, secret []byte) (int64, models.Role, error) {
	if len(secret) == 0 {
		return 0, "", errors.New("token: secret not configured")
	}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))

	var claims Claims
	_, err := parser.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return 0, "", ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return 0, "", ErrBadSignature
		default:
			return 0, "", ErrMalformed
		}
	}

	if claims.ExpiresAt == nil || !claims.ExpiresAt.Time.After(time.Now()) {
		return 0, "", ErrExpired
	}
	if claims.UserID == 0 || !claims.Role.Valid() {
		return 0, "", ErrMalformed
	}

	return claims.UserID, claims.Role, nil
}
