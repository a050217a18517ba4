package activity

import (
	"context"
	"log/slog"
	"time"

	"github.com/cp-portal/internal/domain"
)

// Publisher delivers activity events to an external bus.
type Publisher interface {
	Publish(ctx context.Context, a domain.Activity) error
}

// Noop discards every event. Used when no activity backend is configured.
type Noop struct{}

func (Noop) Publish(context.Context, domain.Activity) error { return nil }

// Emit publishes a best-effort event: failures are logged and never returned.
func Emit(ctx context.Context, p Publisher, kind, accountID string, attrs map[string]string) {
	if p == nil {
		return
	}
	a := domain.Activity{
		Type:       kind,
		AccountID:  accountID,
		Attributes: attrs,
		OccurredAt: time.Now().UTC(),
	}
	if err := p.Publish(ctx, a); err != nil {
		slog.Warn("failed to publish activity", "type", kind, "account_id", accountID, "err", err)
	}
}
