package pg

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/postline-dev/postline/internal/domain"
	internal_errors "github.com/postline-dev/postline/internal/errors"
)

const postColumns = `
	p.id,
	p.text,
	p.pub_date,
	p.image_path,
	u.id,
	u.username,
	g.id,
	g.title,
	g.slug,
	g.description`

const postFrom = `
	FROM posts p
	JOIN users u ON u.id = p.author_id
	LEFT JOIN groups g ON g.id = p.group_id`

// CreatePost inserts a new post. pub_date is assigned here and never
// changes afterwards.
func (s *Storage) CreatePost(authorId int64, text string, groupId *int64, imagePath string) (int64, error) {
	pubDate := time.Now().UTC().Round(time.Microsecond) // database anyway rounds to microsecond

	var id int64
	err := s.db.QueryRow(`
	INSERT INTO posts(text, pub_date, author_id, group_id, image_path)
	VALUES($1, $2, $3, NULLIF($4, 0), NULLIF($5, ''))
	RETURNING id`,
		text, pubDate, authorId, deref(groupId), imagePath).Scan(&id)
	if err != nil {
		return 0, mapPostConstraint(err)
	}
	return id, nil
}

// UpdatePost rewrites the mutable fields in place. Author and pub_date
// are never touched.
func (s *Storage) UpdatePost(id int64, text string, groupId *int64, imagePath string) error {
	result, err := s.db.Exec(`
	UPDATE posts SET
		text = $1,
		group_id = NULLIF($2, 0),
		image_path = NULLIF($3, '')
	WHERE id = $4`,
		text, deref(groupId), imagePath, id)
	if err != nil {
		return mapPostConstraint(err)
	}
	updated, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if updated == 0 {
		return internal_errors.NotFound("Post")
	}
	return nil
}

func (s *Storage) GetPost(id int64) (*domain.Post, error) {
	row := s.db.QueryRow(`SELECT`+postColumns+postFrom+` WHERE p.id = $1`, id)
	post, err := scanPost(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internal_errors.NotFound("Post")
		}
		return nil, err
	}
	return post, nil
}

func (s *Storage) ListPosts(limit, offset int) ([]domain.Post, error) {
	return s.listPosts(`SELECT`+postColumns+postFrom+`
	ORDER BY p.pub_date DESC, p.id DESC
	LIMIT $1 OFFSET $2`, limit, offset)
}

func (s *Storage) CountPosts() (int, error) {
	return s.count(`SELECT count(*) FROM posts`)
}

func (s *Storage) ListGroupPosts(groupId int64, limit, offset int) ([]domain.Post, error) {
	return s.listPosts(`SELECT`+postColumns+postFrom+`
	WHERE p.group_id = $3
	ORDER BY p.pub_date DESC, p.id DESC
	LIMIT $1 OFFSET $2`, limit, offset, groupId)
}

func (s *Storage) CountGroupPosts(groupId int64) (int, error) {
	return s.count(`SELECT count(*) FROM posts WHERE group_id = $1`, groupId)
}

func (s *Storage) ListAuthorPosts(authorId int64, limit, offset int) ([]domain.Post, error) {
	return s.listPosts(`SELECT`+postColumns+postFrom+`
	WHERE p.author_id = $3
	ORDER BY p.pub_date DESC, p.id DESC
	LIMIT $1 OFFSET $2`, limit, offset, authorId)
}

func (s *Storage) CountAuthorPosts(authorId int64) (int, error) {
	return s.count(`SELECT count(*) FROM posts WHERE author_id = $1`, authorId)
}

func (s *Storage) listPosts(query string, args ...any) ([]domain.Post, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *post)
	}
	return posts, rows.Err()
}

func (s *Storage) count(query string, args ...any) (int, error) {
	var n int
	if err := s.db.QueryRow(query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*domain.Post, error) {
	var post domain.Post
	var imagePath sql.NullString
	var groupId sql.NullInt64
	var groupTitle, groupSlug, groupDescription sql.NullString

	err := row.Scan(
		&post.Id, &post.Text, &post.PubDate, &imagePath,
		&post.Author.Id, &post.Author.Username,
		&groupId, &groupTitle, &groupSlug, &groupDescription,
	)
	if err != nil {
		return nil, err
	}

	post.ImagePath = imagePath.String
	if groupId.Valid {
		post.Group = &domain.Group{
			Id:          groupId.Int64,
			Title:       groupTitle.String,
			Slug:        groupSlug.String,
			Description: groupDescription.String,
		}
	}
	return &post, nil
}

func deref(id *int64) int64 {
	if id == nil {
		return 0
	}
	return *id
}

func mapPostConstraint(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
		if pqErr.Constraint == "posts_group_id_fkey" {
			return internal_errors.NotFound("Group")
		}
		return internal_errors.NotFound("Author")
	}
	return fmt.Errorf("posts query: %w", err)
}
