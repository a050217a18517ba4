package profile

import (
	"context"
	"fmt"
	"time"

	"github.com/cp-portal/internal/domain"
)

type AccountStore interface {
	Get(ctx context.Context, accountID string) (*domain.Account, error)
}

type RatingStore interface {
	ListByAccount(ctx context.Context, accountID string) ([]domain.RatingChange, error)
	Record(ctx context.Context, c *domain.RatingChange) error
}

type Service interface {
	Get(ctx context.Context, accountID string) (*domain.Profile, error)
	RecordRatingChange(ctx context.Context, accountID string, in domain.RatingChangeInput) (*domain.RatingChange, error)
}

type service struct {
	accounts AccountStore
	ratings  RatingStore
	now      func() time.Time
}

func NewService(accounts AccountStore, ratings RatingStore) Service {
	return &service{accounts: accounts, ratings: ratings, now: time.Now}
}

func (s *service) Get(ctx context.Context, accountID string) (*domain.Profile, error) {
	a, err := s.accounts.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}
	history, err := s.ratings.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("list rating history: %w", err)
	}
	return &domain.Profile{
		FullName: a.FullName,
		Email:    a.Email,
		Rating:   a.Rating,
		Phone:    a.Phone,
		History:  history,
	}, nil
}

// RecordRatingChange appends a manual history entry and applies its change
// to the account rating.
func (s *service) RecordRatingChange(ctx context.Context, accountID string, in domain.RatingChangeInput) (*domain.RatingChange, error) {
	c := &domain.RatingChange{
		AccountID:          accountID,
		RecordedAt:         s.now().UTC().Truncate(time.Second),
		ContestID:          in.ContestID,
		Placement:          in.Placement,
		Change:             in.Change,
		Manual:             true,
		SourceRatingChange: in.SourceRatingChange,
	}
	if err := s.ratings.Record(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
