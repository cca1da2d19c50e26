package service

import (
	"github.com/postline-dev/postline/internal/domain"
)

type CommentService interface {
	Create(postId int64, author domain.User, text string) (int64, error)
	List(postId int64) ([]domain.Comment, error)
}

type CommentStorage interface {
	CreateComment(postId, authorId int64, text string) (int64, error)
	ListComments(postId int64) ([]domain.Comment, error)
}

type Comment struct {
	storage CommentStorage
}

func NewComment(storage CommentStorage) CommentService {
	return &Comment{storage}
}

func (s *Comment) Create(postId int64, author domain.User, text string) (int64, error) {
	return s.storage.CreateComment(postId, author.Id, text)
}

func (s *Comment) List(postId int64) ([]domain.Comment, error) {
	return s.storage.ListComments(postId)
}
