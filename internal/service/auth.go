package service

import (
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/postline-dev/postline/internal/domain"
	internal_errors "github.com/postline-dev/postline/internal/errors"
	"github.com/postline-dev/postline/internal/jwt"
)

var errBadCredentials = &internal_errors.ErrorWithStatusCode{Message: "Invalid username or password", StatusCode: http.StatusUnauthorized}

type AuthService interface {
	SignUp(username, email, password string) (string, error)
	Login(username, password string) (string, error)
}

type AuthStorage interface {
	CreateUser(username, email, passHash string) (int64, error)
	GetUserByUsername(username string) (*domain.User, error)
}

type Auth struct {
	storage AuthStorage
	jwt     jwt.Service
}

func NewAuth(storage AuthStorage, jwt jwt.Service) AuthService {
	return &Auth{storage, jwt}
}

// SignUp registers a user and returns a session token, so a fresh
// signup is immediately logged in.
func (s *Auth) SignUp(username, email, password string) (string, error) {
	passHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	id, err := s.storage.CreateUser(username, email, string(passHash))
	if err != nil {
		return "", err
	}

	return s.jwt.NewToken(domain.User{Id: id, Username: username})
}

func (s *Auth) Login(username, password string) (string, error) {
	user, err := s.storage.GetUserByUsername(username)
	if err != nil {
		var statusErr *internal_errors.ErrorWithStatusCode
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			// same answer as a bad password, do not leak which accounts exist
			return "", errBadCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PassHash), []byte(password)); err != nil {
		return "", errBadCredentials
	}

	return s.jwt.NewToken(*user)
}
