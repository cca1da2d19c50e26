package pg

import (
	"errors"
	"time"

	"github.com/lib/pq"

	"github.com/postline-dev/postline/internal/domain"
	internal_errors "github.com/postline-dev/postline/internal/errors"
)

func (s *Storage) CreateComment(postId, authorId int64, text string) (int64, error) {
	created := time.Now().UTC().Round(time.Microsecond)

	var id int64
	err := s.db.QueryRow(`
	INSERT INTO comments(post_id, author_id, text, created)
	VALUES($1, $2, $3, $4)
	RETURNING id`, postId, authorId, text, created).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			return 0, internal_errors.NotFound("Post")
		}
		return 0, err
	}
	return id, nil
}

// ListComments returns a post's comments in chronological order.
func (s *Storage) ListComments(postId int64) ([]domain.Comment, error) {
	rows, err := s.db.Query(`
	SELECT
		c.id,
		c.post_id,
		c.text,
		c.created,
		u.id,
		u.username
	FROM comments c
	JOIN users u ON u.id = c.author_id
	WHERE c.post_id = $1
	ORDER BY c.created, c.id`, postId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []domain.Comment
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.Id, &c.PostId, &c.Text, &c.Created, &c.Author.Id, &c.Author.Username); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (s *Storage) CountComments(postId int64) (int, error) {
	return s.count(`SELECT count(*) FROM comments WHERE post_id = $1`, postId)
}
