package calendar

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/cp-portal/internal/domain"
	"github.com/cp-portal/internal/pkg/id"
)

// StatusUpcoming is assigned to events created without an explicit status.
const StatusUpcoming = "upcoming"

type EventStore interface {
	Put(ctx context.Context, e *domain.CalendarEvent) error
	List(ctx context.Context) ([]domain.CalendarEvent, error)
}

// Range bounds event start dates. Zero bounds are open.
type Range struct {
	From time.Time
	To   time.Time
}

func (r Range) contains(t time.Time) bool {
	if !r.From.IsZero() && t.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && t.After(r.To) {
		return false
	}
	return true
}

type Service interface {
	List(ctx context.Context, r Range) ([]domain.CalendarEvent, error)
	Create(ctx context.Context, in domain.CalendarEventInput) (*domain.CalendarEvent, error)
}

type service struct {
	events EventStore
}

func NewService(events EventStore) Service {
	return &service{events: events}
}

// List returns events whose start date falls in r, earliest first.
func (s *service) List(ctx context.Context, r Range) ([]domain.CalendarEvent, error) {
	if !r.From.IsZero() && !r.To.IsZero() && r.To.Before(r.From) {
		return nil, fmt.Errorf("range end before start: %w", domain.ErrBadRequest)
	}
	all, err := s.events.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.CalendarEvent, 0, len(all))
	for _, e := range all {
		if r.contains(e.StartDate) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out, nil
}

func (s *service) Create(ctx context.Context, in domain.CalendarEventInput) (*domain.CalendarEvent, error) {
	if in.EndDate.Before(in.StartDate) {
		return nil, fmt.Errorf("end_date before start_date: %w", domain.ErrBadRequest)
	}
	status := in.Status
	if status == "" {
		status = StatusUpcoming
	}
	e := &domain.CalendarEvent{
		EventID:          id.New(),
		Title:            in.Title,
		Platform:         in.Platform,
		Status:           status,
		StartDate:        in.StartDate.UTC(),
		EndDate:          in.EndDate.UTC(),
		RegistrationLink: in.RegistrationLink,
	}
	if err := s.events.Put(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}
