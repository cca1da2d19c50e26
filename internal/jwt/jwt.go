package jwt

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/postline-dev/postline/internal/domain"
	internal_errors "github.com/postline-dev/postline/internal/errors"
	"github.com/postline-dev/postline/internal/logger"
)

type Service interface {
	NewToken(user domain.User) (string, error)
	DecodeUser(jwtStr string) (*domain.User, error)
}

type Jwt struct {
	secretKey string
	ttl       time.Duration
}

func New(secretKey string, ttl time.Duration) Service {
	return &Jwt{secretKey, ttl}
}

func (j *Jwt) NewToken(user domain.User) (string, error) {
	claims := jwt.MapClaims{
		"uid":      user.Id,
		"username": user.Username,
		"admin":    user.Admin,
		"exp":      time.Now().Add(j.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		logger.Log.Error("signing token", "error", err)
		return "", errors.New("can't create token")
	}

	return tokenString, nil
}

// DecodeUser verifies the token and rebuilds the user identity carried in
// its claims.
func (j *Jwt) DecodeUser(jwtStr string) (*domain.User, error) {
	token, err := jwt.Parse(jwtStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, &internal_errors.ErrorWithStatusCode{Message: fmt.Sprintf("unexpected signing method: %v", token.Header["alg"]), StatusCode: http.StatusUnauthorized}
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return nil, &internal_errors.ErrorWithStatusCode{Message: "invalid token signature", StatusCode: http.StatusUnauthorized}
	}
	if !token.Valid {
		return nil, &internal_errors.ErrorWithStatusCode{Message: "invalid access token", StatusCode: http.StatusUnauthorized}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, &internal_errors.ErrorWithStatusCode{Message: "invalid token claims", StatusCode: http.StatusUnauthorized}
	}

	uid, uidOk := claims["uid"].(float64)
	username, nameOk := claims["username"].(string)
	admin, adminOk := claims["admin"].(bool)
	if !uidOk || !nameOk || !adminOk {
		return nil, &internal_errors.ErrorWithStatusCode{Message: "invalid token claims", StatusCode: http.StatusUnauthorized}
	}

	return &domain.User{Id: int64(uid), Username: username, Admin: admin}, nil
}
