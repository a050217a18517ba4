package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cp-portal/internal/application/activity"
	"github.com/cp-portal/internal/domain"
	"github.com/cp-portal/internal/pkg/id"
	"golang.org/x/crypto/bcrypt"
)

// AccountStore is the subset of the account repository the flow needs.
type AccountStore interface {
	Create(ctx context.Context, a *domain.Account) error
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
}

// CodeIssuer owns the verification code lifecycle.
type CodeIssuer interface {
	Assign(a *domain.Account) (string, error)
	Reissue(ctx context.Context, a *domain.Account) (string, error)
	Consume(ctx context.Context, a *domain.Account, supplied string) error
}

// Mailer delivers verification codes out of band.
type Mailer interface {
	SendEmail(to, subject, text, html string) error
}

// maxPasswordBytes is the bcrypt input limit. It counts bytes, not characters.
const maxPasswordBytes = 72

type Service interface {
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.Account, error)
	Confirm(ctx context.Context, email, code string) (*domain.Account, error)
	Resend(ctx context.Context, email string) error
}

type ServiceDeps struct {
	Accounts AccountStore
	Codes    CodeIssuer
	Mailer   Mailer
	Activity activity.Publisher
}

type service struct {
	accounts AccountStore
	codes    CodeIssuer
	mailer   Mailer
	activity activity.Publisher
}

func NewService(d ServiceDeps) Service {
	return &service{
		accounts: d.Accounts,
		codes:    d.Codes,
		mailer:   d.Mailer,
		activity: d.Activity,
	}
}

func (s *service) Register(ctx context.Context, req domain.RegisterRequest) (*domain.Account, error) {
	email := domain.NormalizeEmail(req.Email)
	if email == "" || req.Password == "" || strings.TrimSpace(req.FullName) == "" {
		return nil, fmt.Errorf("email, password and full_name are required: %w", domain.ErrBadRequest)
	}
	if len(req.Password) > maxPasswordBytes {
		return nil, fmt.Errorf("password longer than %d bytes: %w", maxPasswordBytes, domain.ErrBadRequest)
	}

	if _, err := s.accounts.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("email %s: %w", email, domain.ErrDuplicateKey)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	a := &domain.Account{
		AccountID:    id.New(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(req.FullName),
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	code, err := s.codes.Assign(a)
	if err != nil {
		return nil, err
	}
	if err := s.accounts.Create(ctx, a); err != nil {
		return nil, err
	}

	s.deliverCode(a, code)
	return a, nil
}

func (s *service) Confirm(ctx context.Context, email, code string) (*domain.Account, error) {
	a, err := s.accounts.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if err := s.codes.Consume(ctx, a, code); err != nil {
		return nil, err
	}
	activity.Emit(ctx, s.activity, domain.ActivityAccountVerified, a.AccountID, map[string]string{"email": a.Email})
	return a, nil
}

func (s *service) Resend(ctx context.Context, email string) error {
	a, err := s.accounts.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		return err
	}
	code, err := s.codes.Reissue(ctx, a)
	if err != nil {
		return err
	}
	s.deliverCode(a, code)
	return nil
}

// deliverCode is best-effort: the account state is already committed.
func (s *service) deliverCode(a *domain.Account, code string) {
	text, html, err := codeMessage(a.FullName, code)
	if err != nil {
		slog.Warn("failed to render verification email", "account_id", a.AccountID, "err", err)
		return
	}
	if err := s.mailer.SendEmail(a.Email, codeSubject, text, html); err != nil {
		slog.Warn("failed to send verification email", "account_id", a.AccountID, "email", a.Email, "err", err)
	}
}
