package service

import (
	"github.com/postline-dev/postline/internal/domain"
)

type GroupService interface {
	Create(title, slug, description string) (int64, error)
	GetBySlug(slug string) (*domain.Group, error)
	List() ([]domain.Group, error)
}

type GroupStorage interface {
	CreateGroup(title, slug, description string) (int64, error)
	GetGroupBySlug(slug string) (*domain.Group, error)
	ListGroups() ([]domain.Group, error)
}

type Group struct {
	storage GroupStorage
}

func NewGroup(storage GroupStorage) GroupService {
	return &Group{storage}
}

func (s *Group) Create(title, slug, description string) (int64, error) {
	return s.storage.CreateGroup(title, slug, description)
}

func (s *Group) GetBySlug(slug string) (*domain.Group, error) {
	return s.storage.GetGroupBySlug(slug)
}

func (s *Group) List() ([]domain.Group, error) {
	return s.storage.ListGroups()
}
