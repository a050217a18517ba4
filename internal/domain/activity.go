package domain

import "time"

const (
	ActivityAccountVerified = "account.verified"
	ActivityLinkVerified    = "link.verified"
)

// Activity is a best-effort notification about a completed state transition.
type Activity struct {
	Type       string            `json:"type"`
	AccountID  string            `json:"account_id"`
	Attributes map[string]string `json:"attributes,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}
