package service

import (
	"errors"
	"io"

	"github.com/postline-dev/postline/internal/domain"
	internal_errors "github.com/postline-dev/postline/internal/errors"
	"github.com/postline-dev/postline/internal/logger"
	"github.com/postline-dev/postline/internal/pagination"
)

// ErrNotOwner is returned when someone other than the author tries to
// edit a post. Handlers recover silently: redirect to the detail page,
// no error messaging.
var ErrNotOwner = errors.New("not the post author")

type PostService interface {
	List(page int) ([]domain.Post, pagination.Page, error)
	ListGroup(slug string, page int) (*domain.Group, []domain.Post, pagination.Page, error)
	ListAuthor(username string, page int) (*domain.User, []domain.Post, pagination.Page, error)
	Get(id int64) (*domain.Post, error)
	CountByAuthor(authorId int64) (int, error)
	Create(author domain.User, draft domain.PostDraft) (int64, error)
	Update(id int64, editor domain.User, draft domain.PostDraft) error
}

type PostStorage interface {
	CreatePost(authorId int64, text string, groupId *int64, imagePath string) (int64, error)
	UpdatePost(id int64, text string, groupId *int64, imagePath string) error
	GetPost(id int64) (*domain.Post, error)
	ListPosts(limit, offset int) ([]domain.Post, error)
	CountPosts() (int, error)
	ListGroupPosts(groupId int64, limit, offset int) ([]domain.Post, error)
	CountGroupPosts(groupId int64) (int, error)
	ListAuthorPosts(authorId int64, limit, offset int) ([]domain.Post, error)
	CountAuthorPosts(authorId int64) (int, error)
	GetGroup(id int64) (*domain.Group, error)
	GetGroupBySlug(slug string) (*domain.Group, error)
	GetUserByUsername(username string) (*domain.User, error)
}

type MediaStorage interface {
	SaveImage(data io.Reader, ext string) (string, error)
	Delete(relativePath string) error
}

type Post struct {
	storage PostStorage
	media   MediaStorage
}

func NewPost(storage PostStorage, media MediaStorage) PostService {
	return &Post{storage, media}
}

func (s *Post) List(page int) ([]domain.Post, pagination.Page, error) {
	count, err := s.storage.CountPosts()
	if err != nil {
		return nil, pagination.Page{}, err
	}
	p := pagination.New(page, domain.PostsPerPage, count)
	posts, err := s.storage.ListPosts(p.Size, p.Offset())
	if err != nil {
		return nil, pagination.Page{}, err
	}
	return posts, p, nil
}

func (s *Post) ListGroup(slug string, page int) (*domain.Group, []domain.Post, pagination.Page, error) {
	group, err := s.storage.GetGroupBySlug(slug)
	if err != nil {
		return nil, nil, pagination.Page{}, err
	}
	count, err := s.storage.CountGroupPosts(group.Id)
	if err != nil {
		return nil, nil, pagination.Page{}, err
	}
	p := pagination.New(page, domain.PostsPerPage, count)
	posts, err := s.storage.ListGroupPosts(group.Id, p.Size, p.Offset())
	if err != nil {
		return nil, nil, pagination.Page{}, err
	}
	return group, posts, p, nil
}

func (s *Post) ListAuthor(username string, page int) (*domain.User, []domain.Post, pagination.Page, error) {
	author, err := s.storage.GetUserByUsername(username)
	if err != nil {
		return nil, nil, pagination.Page{}, err
	}
	count, err := s.storage.CountAuthorPosts(author.Id)
	if err != nil {
		return nil, nil, pagination.Page{}, err
	}
	p := pagination.New(page, domain.PostsPerPage, count)
	posts, err := s.storage.ListAuthorPosts(author.Id, p.Size, p.Offset())
	if err != nil {
		return nil, nil, pagination.Page{}, err
	}
	return author, posts, p, nil
}

func (s *Post) Get(id int64) (*domain.Post, error) {
	return s.storage.GetPost(id)
}

func (s *Post) CountByAuthor(authorId int64) (int, error) {
	return s.storage.CountAuthorPosts(authorId)
}

// Create persists a new post owned by author. The referenced group must
// exist; a dangling reference is a form error, not a server error.
func (s *Post) Create(author domain.User, draft domain.PostDraft) (int64, error) {
	if err := s.checkGroup(draft.GroupId); err != nil {
		return 0, err
	}

	imagePath, err := s.saveImage(draft.Image)
	if err != nil {
		return 0, err
	}

	id, err := s.storage.CreatePost(author.Id, draft.Text, draft.GroupId, imagePath)
	if err != nil {
		s.discardImage(imagePath)
		return 0, err
	}
	return id, nil
}

// Update rewrites a post in place. The ownership check runs before any
// validation against storage; non-authors get ErrNotOwner and nothing
// is modified.
func (s *Post) Update(id int64, editor domain.User, draft domain.PostDraft) error {
	post, err := s.storage.GetPost(id)
	if err != nil {
		return err
	}
	if post.Author.Id != editor.Id {
		return ErrNotOwner
	}

	if err := s.checkGroup(draft.GroupId); err != nil {
		return err
	}

	imagePath := post.ImagePath // no new upload keeps the old image
	if draft.Image != nil {
		imagePath, err = s.saveImage(draft.Image)
		if err != nil {
			return err
		}
	}

	if err := s.storage.UpdatePost(id, draft.Text, draft.GroupId, imagePath); err != nil {
		if draft.Image != nil {
			s.discardImage(imagePath)
		}
		return err
	}

	if draft.Image != nil && post.ImagePath != "" && post.ImagePath != imagePath {
		s.discardImage(post.ImagePath)
	}
	return nil
}

func (s *Post) checkGroup(groupId *int64) error {
	if groupId == nil {
		return nil
	}
	if _, err := s.storage.GetGroup(*groupId); err != nil {
		var statusErr *internal_errors.ErrorWithStatusCode
		if errors.As(err, &statusErr) && statusErr.StatusCode == 404 {
			return internal_errors.NewValidation("group", "select a valid group")
		}
		return err
	}
	return nil
}

func (s *Post) saveImage(image *domain.PendingImage) (string, error) {
	if image == nil {
		return "", nil
	}
	defer func() {
		if closer, ok := image.Data.(io.Closer); ok {
			closer.Close()
		}
	}()
	return s.media.SaveImage(image.Data, image.Ext)
}

func (s *Post) discardImage(imagePath string) {
	if imagePath == "" {
		return
	}
	if err := s.media.Delete(imagePath); err != nil {
		logger.Log.Warn("removing orphaned image", "path", imagePath, "error", err)
	}
}
