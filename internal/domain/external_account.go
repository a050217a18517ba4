package domain

import "time"

// PlatformCodeforces is the only external platform currently linkable.
const PlatformCodeforces = "codeforces"

// ExternalAccount links a local account to a third-party handle.
// PK: account_id, SK: platform. At most one record per pair.
type ExternalAccount struct {
	AccountID string    `json:"account_id" dynamodbav:"account_id"`
	Platform  string    `json:"platform" dynamodbav:"platform"`
	Handle    string    `json:"handle" dynamodbav:"handle"`
	Challenge *string   `json:"-" dynamodbav:"challenge,omitempty"`
	Verified  bool      `json:"verified" dynamodbav:"verified"`
	Rating    int       `json:"rating" dynamodbav:"rating"`
	UpdatedAt time.Time `json:"updated" dynamodbav:"updated_at"`
}

// Pending reports whether the link is waiting for its challenge to appear in the external profile.
func (e *ExternalAccount) Pending() bool {
	return e.Challenge != nil && *e.Challenge != ""
}

// ExternalProfile is the subset of a third-party profile used for verification.
type ExternalProfile struct {
	Handle      string
	DisplayName string
	Rating      int
}

type InitiateLinkRequest struct {
	Handle    string `json:"handle" validate:"required"`
	AccountID string `json:"user_id" validate:"required"`
}

type VerifyLinkRequest struct {
	AccountID string `json:"user_id" validate:"required"`
}
