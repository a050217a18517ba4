package http

import (
	"context"
	"io"
	"time"

	"github.com/cp-portal/internal/application/activity"
	"github.com/cp-portal/internal/domain"
	jwtinfra "github.com/cp-portal/internal/infrastructure/jwt"
	"github.com/cp-portal/internal/infrastructure/smtp"
	"github.com/cp-portal/internal/transport/http/handler"
)

// AccountRepository is the minimal interface the router requires from an account store.
type AccountRepository interface {
	Create(ctx context.Context, a *domain.Account) error
	Get(ctx context.Context, accountID string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	SetVerificationCode(ctx context.Context, accountID, code string, expiry time.Time) error
	ConfirmVerification(ctx context.Context, accountID, code string) error
}

// LinkRepository is the minimal interface the router requires from an external-account link store.
type LinkRepository interface {
	Put(ctx context.Context, l *domain.ExternalAccount) error
	Get(ctx context.Context, accountID, platform string) (*domain.ExternalAccount, error)
	CompleteVerification(ctx context.Context, accountID, platform, handle, challenge string, rating int) error
}

// RatingRepository is the minimal interface the router requires from a rating history store.
type RatingRepository interface {
	ListByAccount(ctx context.Context, accountID string) ([]domain.RatingChange, error)
	Record(ctx context.Context, c *domain.RatingChange) error
}

// EventRepository is the minimal interface the router requires from a calendar store.
type EventRepository interface {
	Put(ctx context.Context, e *domain.CalendarEvent) error
	List(ctx context.Context) ([]domain.CalendarEvent, error)
}

// InfoRepository is the minimal interface the router requires from an info store.
type InfoRepository interface {
	Put(ctx context.Context, e *domain.InfoEntry) error
	List(ctx context.Context) ([]domain.InfoEntry, error)
}

// ObjectStore is the minimal interface the router requires from an object storage backend.
type ObjectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	Download(ctx context.Context, key string) (io.ReadCloser, error)
}

// TokenProvider signs and verifies bearer tokens.
type TokenProvider interface {
	Sign(accountID, role string) (string, error)
	Verify(token string) (*jwtinfra.Claims, error)
}

// ProfileFetcher looks up public profiles on Codeforces.
type ProfileFetcher interface {
	FetchProfile(ctx context.Context, handle string) (*domain.ExternalProfile, error)
}

// ChatModel streams replies from the hosted language model.
type ChatModel interface {
	Stream(ctx context.Context, messages []domain.ChatMessage) (domain.ChatStream, error)
}

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	Accounts AccountRepository
	Links    LinkRepository
	Ratings  RatingRepository
	Events   EventRepository
	Info     InfoRepository
	Objects  ObjectStore
	Mailer   smtp.Mailer
	Activity activity.Publisher
	Tokens   TokenProvider
	Profiles ProfileFetcher
	Model    ChatModel

	// Readiness backs /v1/health-check/ready. Optional.
	Readiness handler.Pinger
}
