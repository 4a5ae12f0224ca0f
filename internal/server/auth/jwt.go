// Package auth issues and validates the HS256 tokens that bind API requests
// to a user identifier.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/akshatj27/signspeak/internal/common"
)

// Claims carries the standard registered claims plus the user identifier.
type Claims struct {
	jwt.RegisteredClaims
	UserID string
}

// GenerateToken signs a token for userID. A zero validityDuration issues a
// token without an expiry claim, which is how login tokens are minted. Any
// other value, including a negative one, sets ExpiresAt; a negative duration
// yields a token that is already expired.
func GenerateToken(userID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	claims := Claims{UserID: userID}
	if validityDuration != 0 {
		claims.RegisteredClaims = jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetUserIDFromToken verifies tokenString and extracts the bound user id.
func GetUserIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return "", err
	}

	if !token.Valid {
		return "", common.ErrInvalidToken
	}

	return claims.UserID, nil
}
