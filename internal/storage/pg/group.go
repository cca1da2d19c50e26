package pg

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/lib/pq"

	"github.com/postline-dev/postline/internal/domain"
	internal_errors "github.com/postline-dev/postline/internal/errors"
)

func (s *Storage) CreateGroup(title, slug, description string) (int64, error) {
	var id int64
	err := s.db.QueryRow(`
	INSERT INTO groups(title, slug, description)
	VALUES($1, $2, $3)
	RETURNING id`, title, slug, description).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, &internal_errors.ErrorWithStatusCode{Message: "Group with this slug already exists", StatusCode: http.StatusConflict}
		}
		return 0, err
	}
	return id, nil
}

func (s *Storage) GetGroupBySlug(slug string) (*domain.Group, error) {
	var g domain.Group
	err := s.db.QueryRow(`
	SELECT id, title, slug, description
	FROM groups
	WHERE slug = $1`, slug).Scan(&g.Id, &g.Title, &g.Slug, &g.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internal_errors.NotFound("Group")
		}
		return nil, err
	}
	return &g, nil
}

func (s *Storage) GetGroup(id int64) (*domain.Group, error) {
	var g domain.Group
	err := s.db.QueryRow(`
	SELECT id, title, slug, description
	FROM groups
	WHERE id = $1`, id).Scan(&g.Id, &g.Title, &g.Slug, &g.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internal_errors.NotFound("Group")
		}
		return nil, err
	}
	return &g, nil
}

// ListGroups returns all groups for the post form's select box.
func (s *Storage) ListGroups() ([]domain.Group, error) {
	rows, err := s.db.Query(`SELECT id, title, slug, description FROM groups ORDER BY title`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []domain.Group
	for rows.Next() {
		var g domain.Group
		if err := rows.Scan(&g.Id, &g.Title, &g.Slug, &g.Description); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}
