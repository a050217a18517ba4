package session

import (
	"context"
	"errors"
	"testing"

	"github.com/cp-portal/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// --- mocks ---

type mockAccountStore struct{ mock.Mock }

func (m *mockAccountStore) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	args := m.Called(ctx, email)
	if a, _ := args.Get(0).(*domain.Account); a != nil {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockSigner struct{ mock.Mock }

func (m *mockSigner) Sign(accountID, role string) (string, error) {
	args := m.Called(accountID, role)
	return args.String(0), args.Error(1)
}

func hashed(t *testing.T, pw string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestLogin_Success(t *testing.T) {
	as := &mockAccountStore{}
	acc := &domain.Account{AccountID: "acc-1", Email: "a@b.com", PasswordHash: hashed(t, "pw"), Verified: true, Role: domain.RoleUser}
	as.On("GetByEmail", mock.Anything, "a@b.com").Return(acc, nil)
	sg := &mockSigner{}
	sg.On("Sign", "acc-1", domain.RoleUser).Return("token", nil)

	svc := NewService(ServiceDeps{Accounts: as, Tokens: sg})
	res, err := svc.Login(context.Background(), domain.LoginRequest{Email: " A@B.com", Password: "pw"})

	require.NoError(t, err)
	assert.Equal(t, "token", res.Bearer)
	assert.Equal(t, acc, res.Account)
	sg.AssertExpectations(t)
}

func TestLogin_UnknownEmail(t *testing.T) {
	as := &mockAccountStore{}
	as.On("GetByEmail", mock.Anything, "x@b.com").Return(nil, domain.ErrNotFound)

	svc := NewService(ServiceDeps{Accounts: as})
	_, err := svc.Login(context.Background(), domain.LoginRequest{Email: "x@b.com", Password: "pw"})

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_WrongPassword(t *testing.T) {
	as := &mockAccountStore{}
	as.On("GetByEmail", mock.Anything, "a@b.com").Return(&domain.Account{PasswordHash: hashed(t, "pw")}, nil)

	svc := NewService(ServiceDeps{Accounts: as})
	_, err := svc.Login(context.Background(), domain.LoginRequest{Email: "a@b.com", Password: "nope"})

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_Unverified(t *testing.T) {
	as := &mockAccountStore{}
	as.On("GetByEmail", mock.Anything, "a@b.com").Return(&domain.Account{Email: "a@b.com", PasswordHash: hashed(t, "pw")}, nil)
	sg := &mockSigner{}

	svc := NewService(ServiceDeps{Accounts: as, Tokens: sg})
	_, err := svc.Login(context.Background(), domain.LoginRequest{Email: "a@b.com", Password: "pw"})

	assert.ErrorIs(t, err, domain.ErrEmailNotVerified)
	sg.AssertNotCalled(t, "Sign", mock.Anything, mock.Anything)
}

func TestLogin_StoreError(t *testing.T) {
	as := &mockAccountStore{}
	as.On("GetByEmail", mock.Anything, "a@b.com").Return(nil, errors.New("db down"))

	svc := NewService(ServiceDeps{Accounts: as})
	_, err := svc.Login(context.Background(), domain.LoginRequest{Email: "a@b.com", Password: "pw"})

	assert.EqualError(t, err, "db down")
}
