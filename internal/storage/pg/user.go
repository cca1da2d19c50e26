package pg

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/lib/pq"

	"github.com/postline-dev/postline/internal/domain"
	internal_errors "github.com/postline-dev/postline/internal/errors"
)

func (s *Storage) CreateUser(username, email, passHash string) (int64, error) {
	created := time.Now().UTC().Round(time.Microsecond)

	var id int64
	err := s.db.QueryRow(`
	INSERT INTO users(username, email, pass_hash, created)
	VALUES($1, $2, $3, $4)
	RETURNING id`, username, email, passHash, created).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, &internal_errors.ErrorWithStatusCode{Message: "User already exists", StatusCode: http.StatusConflict}
		}
		return 0, err
	}
	return id, nil
}

func (s *Storage) GetUserByUsername(username string) (*domain.User, error) {
	var u domain.User
	err := s.db.QueryRow(`
	SELECT id, username, email, pass_hash, admin, created
	FROM users
	WHERE username = $1`, username).Scan(&u.Id, &u.Username, &u.Email, &u.PassHash, &u.Admin, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internal_errors.NotFound("User")
		}
		return nil, err
	}
	return &u, nil
}
