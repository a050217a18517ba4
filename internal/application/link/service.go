package link

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cp-portal/internal/application/activity"
	"github.com/cp-portal/internal/domain"
	pkgtoken "github.com/cp-portal/internal/pkg/token"
)

// LinkStore persists external account links.
type LinkStore interface {
	Put(ctx context.Context, l *domain.ExternalAccount) error
	Get(ctx context.Context, accountID, platform string) (*domain.ExternalAccount, error)
	CompleteVerification(ctx context.Context, accountID, platform, handle, challenge string, rating int) error
}

// ProfileFetcher looks up a public profile on the external platform.
type ProfileFetcher interface {
	FetchProfile(ctx context.Context, handle string) (*domain.ExternalProfile, error)
}

type Service interface {
	Initiate(ctx context.Context, accountID, handle string) (challenge string, err error)
	Verify(ctx context.Context, accountID string) (*domain.ExternalAccount, error)
}

type ServiceDeps struct {
	Links           LinkStore
	Profiles        ProfileFetcher
	Activity        activity.Publisher
	ChallengePrefix string
}

type service struct {
	links        LinkStore
	profiles     ProfileFetcher
	activity     activity.Publisher
	prefix       string
	newChallenge func(prefix string) (string, error)
}

func NewService(d ServiceDeps) Service {
	return &service{
		links:        d.Links,
		profiles:     d.Profiles,
		activity:     d.Activity,
		prefix:       d.ChallengePrefix,
		newChallenge: pkgtoken.NewChallenge,
	}
}

// Initiate writes a pending Codeforces link, replacing any previous one.
func (s *service) Initiate(ctx context.Context, accountID, handle string) (string, error) {
	handle = strings.TrimSpace(handle)
	if accountID == "" || handle == "" {
		return "", fmt.Errorf("handle and account id are required: %w", domain.ErrBadRequest)
	}
	challenge, err := s.newChallenge(s.prefix)
	if err != nil {
		return "", err
	}
	l := &domain.ExternalAccount{
		AccountID: accountID,
		Platform:  domain.PlatformCodeforces,
		Handle:    handle,
		Challenge: &challenge,
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.links.Put(ctx, l); err != nil {
		return "", err
	}
	return challenge, nil
}

// Verify checks that the pending challenge appears in the external display
// name and, if so, completes the link and mirrors the rating onto the account.
func (s *service) Verify(ctx context.Context, accountID string) (*domain.ExternalAccount, error) {
	if accountID == "" {
		return nil, fmt.Errorf("account id is required: %w", domain.ErrBadRequest)
	}
	l, err := s.links.Get(ctx, accountID, domain.PlatformCodeforces)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("verify link: %w", domain.ErrNoPendingRequest)
	}
	if err != nil {
		return nil, err
	}
	if !l.Pending() || l.Handle == "" {
		return nil, fmt.Errorf("verify link: %w", domain.ErrNoPendingRequest)
	}

	profile, err := s.profiles.FetchProfile(ctx, l.Handle)
	if err != nil {
		return nil, err
	}
	if !strings.Contains(profile.DisplayName, *l.Challenge) {
		slog.Info("challenge not found in profile", "account_id", accountID, "handle", l.Handle)
		return nil, fmt.Errorf("handle %s: %w", l.Handle, domain.ErrChallengeNotFound)
	}

	// Completion is conditional on the checked handle and challenge, so a
	// re-initiation during the lookup makes it fail with ErrNoPendingRequest.
	if err := s.links.CompleteVerification(ctx, accountID, domain.PlatformCodeforces, l.Handle, *l.Challenge, profile.Rating); err != nil {
		return nil, err
	}
	l.Verified = true
	l.Challenge = nil
	l.Rating = profile.Rating

	activity.Emit(ctx, s.activity, domain.ActivityLinkVerified, accountID, map[string]string{
		"platform": domain.PlatformCodeforces,
		"handle":   l.Handle,
	})
	return l, nil
}
