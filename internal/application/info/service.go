package info

import (
	"context"
	"sort"

	"github.com/cp-portal/internal/domain"
	"github.com/cp-portal/internal/pkg/id"
)

type InfoStore interface {
	Put(ctx context.Context, e *domain.InfoEntry) error
	List(ctx context.Context) ([]domain.InfoEntry, error)
}

type Service interface {
	List(ctx context.Context) ([]domain.InfoEntry, error)
	Create(ctx context.Context, title, body string, order int) (*domain.InfoEntry, error)
}

type service struct {
	store InfoStore
}

func NewService(store InfoStore) Service {
	return &service{store: store}
}

// List returns entries by display order, then title.
func (s *service) List(ctx context.Context) ([]domain.InfoEntry, error) {
	entries, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []domain.InfoEntry{}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Order != entries[j].Order {
			return entries[i].Order < entries[j].Order
		}
		return entries[i].Title < entries[j].Title
	})
	return entries, nil
}

func (s *service) Create(ctx context.Context, title, body string, order int) (*domain.InfoEntry, error) {
	e := &domain.InfoEntry{InfoID: id.New(), Title: title, Body: body, Order: order}
	if err := s.store.Put(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}
