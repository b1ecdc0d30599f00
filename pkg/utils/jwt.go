package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var jwtSecret = []byte("secret")

// SetSecret allows injecting the secret from config
func SetSecret(secret string) {
	jwtSecret = []byte(secret)
}

const UserClaimsKey = "userClaims"

// UserClaims carries the caller identity plus the tenant/event scope every
// store call is bounded by. Identity itself is issued by the external
// provider; this service only reads the claims.
type UserClaims struct {
	UserID      string   `json:"user_id"`
	DisplayName string   `json:"display_name"`
	TenantID    string   `json:"tenant_id"`
	EventID     string   `json:"event_id"`
	Roles       []string `json:"roles"`
	jwt.RegisteredClaims
}

func GenerateToken(userID, displayName, tenantID, eventID string, roles []string) (string, error) {
	claims := UserClaims{
		UserID:      userID,
		DisplayName: displayName,
		TenantID:    tenantID,
		EventID:     eventID,
		Roles:       roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 72)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

func ValidateToken(tokenString string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return jwtSecret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*UserClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrTokenSignatureInvalid
}
