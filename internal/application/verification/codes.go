package verification

import (
	"context"
	"fmt"
	"time"

	"github.com/cp-portal/internal/domain"
	pkgtoken "github.com/cp-portal/internal/pkg/token"
)

// CodeStore persists verification codes on account records.
type CodeStore interface {
	SetVerificationCode(ctx context.Context, accountID, code string, expiry time.Time) error
	ConfirmVerification(ctx context.Context, accountID, code string) error
}

// Codes manages the one-time email verification code held on an account.
type Codes struct {
	store   CodeStore
	ttl     time.Duration
	now     func() time.Time
	newCode func() (string, error)
}

func NewCodes(store CodeStore, ttl time.Duration) *Codes {
	return &Codes{store: store, ttl: ttl, now: time.Now, newCode: pkgtoken.NewCode}
}

// Assign sets a fresh code and expiry on a not yet persisted account and
// returns the code for delivery.
func (c *Codes) Assign(a *domain.Account) (string, error) {
	code, err := c.newCode()
	if err != nil {
		return "", err
	}
	expiry := c.now().UTC().Add(c.ttl)
	a.VerificationCode = &code
	a.CodeExpiry = &expiry
	return code, nil
}

// Reissue replaces the code of a stored unverified account. The previous code
// stops validating as soon as the write lands.
func (c *Codes) Reissue(ctx context.Context, a *domain.Account) (string, error) {
	if a.Verified {
		return "", fmt.Errorf("reissue code: %w", domain.ErrAlreadyVerified)
	}
	code, err := c.newCode()
	if err != nil {
		return "", err
	}
	expiry := c.now().UTC().Add(c.ttl)
	if err := c.store.SetVerificationCode(ctx, a.AccountID, code, expiry); err != nil {
		return "", err
	}
	a.VerificationCode = &code
	a.CodeExpiry = &expiry
	return code, nil
}

// Validate checks supplied against the account's current code at now.
// Checks run in order: already verified, expired, mismatch.
func Validate(a *domain.Account, supplied string, now time.Time) error {
	if a.Verified {
		return domain.ErrAlreadyVerified
	}
	if a.CodeExpiry != nil && now.After(*a.CodeExpiry) {
		return domain.ErrCodeExpired
	}
	if a.VerificationCode == nil || *a.VerificationCode == "" || *a.VerificationCode != supplied {
		return domain.ErrCodeMismatch
	}
	return nil
}

// Consume validates supplied and, on success, atomically marks the account
// verified and clears the code. A concurrent reissue or confirm makes the
// write fail with domain.ErrCodeMismatch.
func (c *Codes) Consume(ctx context.Context, a *domain.Account, supplied string) error {
	if err := Validate(a, supplied, c.now()); err != nil {
		return err
	}
	if err := c.store.ConfirmVerification(ctx, a.AccountID, supplied); err != nil {
		return err
	}
	a.Verified = true
	a.VerificationCode = nil
	a.CodeExpiry = nil
	return nil
}
