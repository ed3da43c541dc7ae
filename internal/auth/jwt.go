package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/uptask-dev/uptask-api/internal/constants"
)

var jwtSecret []byte

// Init sets the signing secret. Must be called before issuing or verifying.
func Init(secret string) error {
	if secret == "" {
		return fmt.Errorf("JWT secret is not set")
	}
	jwtSecret = []byte(secret)
	return nil
}

// GenerateJWT issues a session token asserting the user's identity.
func GenerateJWT(userID uint64) (string, error) {
	claims := jwt.MapClaims{
		"id":  userID,
		"exp": time.Now().Add(constants.SessionTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// VerifyJWT validates a session token and returns the embedded user ID.
func VerifyJWT(tokenString string) (uint64, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fmt.Errorf("invalid token claims")
	}

	idFloat, ok := claims["id"].(float64)
	if !ok || idFloat < 0 {
		return 0, fmt.Errorf("invalid user ID in token claims")
	}

	return uint64(idFloat), nil
}
