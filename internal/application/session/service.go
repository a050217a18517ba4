package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/cp-portal/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

type AccountStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
}

type TokenSigner interface {
	Sign(accountID, role string) (string, error)
}

type LoginResult struct {
	Bearer  string
	Account *domain.Account
}

type Service interface {
	Login(ctx context.Context, req domain.LoginRequest) (*LoginResult, error)
}

type ServiceDeps struct {
	Accounts AccountStore
	Tokens   TokenSigner
}

type service struct {
	accounts AccountStore
	tokens   TokenSigner
}

func NewService(d ServiceDeps) Service {
	return &service{accounts: d.Accounts, tokens: d.Tokens}
}

// Login checks the password before the verified flag.
func (s *service) Login(ctx context.Context, req domain.LoginRequest) (*LoginResult, error) {
	a, err := s.accounts.GetByEmail(ctx, domain.NormalizeEmail(req.Email))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !a.Verified {
		return nil, fmt.Errorf("login %s: %w", a.Email, domain.ErrEmailNotVerified)
	}
	bearer, err := s.tokens.Sign(a.AccountID, a.Role)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &LoginResult{Bearer: bearer, Account: a}, nil
}
