// Package tokens выпускает и проверяет JWT пользователей LMS.
package tokens

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Issuer пишется в iss и проверяется при разборе.
const Issuer = "lms-backend"

var (
	ErrTokenExpired  = errors.New("token expired")
	ErrInvalidClaims = errors.New("invalid claims")
)

// UserClaims - полезная нагрузка токена: id пользователя и его роль для casbin.
type UserClaims struct {
	jwt.RegisteredClaims
	ID   int64  `json:"id"`
	Role string `json:"role"`
}

func GenerateUserJWT(id int64, role string, expire time.Duration, key []byte) (string, error) {
	now := time.Now()
	claims := UserClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   strconv.FormatInt(id, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expire)),
		},
		ID:   id,
		Role: role,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		return "", fmt.Errorf("signing user jwt: %w", err)
	}
	return signed, nil
}

// ValidateUserJWT проверяет подпись, издателя и срок действия токена.
// Для просроченного токена возвращается ErrTokenExpired.
func ValidateUserJWT(tokenString string, key []byte) (*UserClaims, error) {
	claims := new(UserClaims)
	_, err := jwt.ParseWithClaims(tokenString, claims, func(_ *jwt.Token) (any, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(Issuer))

	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrTokenExpired
	case err != nil:
		return nil, fmt.Errorf("validating user jwt: %w", err)
	case claims.ID <= 0 || claims.Role == "":
		return nil, ErrInvalidClaims
	}
	return claims, nil
}
