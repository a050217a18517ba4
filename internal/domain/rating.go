package domain

import "time"

// RatingChange is one entry of an account's rating history.
// PK: account_id, SK: recorded_at (RFC3339 string, sorts chronologically).
type RatingChange struct {
	AccountID          string    `json:"-" dynamodbav:"account_id"`
	RecordedAt         time.Time `json:"date_recorded" dynamodbav:"recorded_at"`
	ContestID          string    `json:"contest,omitempty" dynamodbav:"contest_id"`
	Placement          int       `json:"placement" dynamodbav:"placement"`
	Change             int       `json:"mmr_change" dynamodbav:"change"`
	Manual             bool      `json:"is_manual" dynamodbav:"manual"`
	SourceRatingChange int       `json:"source_rating_change" dynamodbav:"source_rating_change"`
}

type RatingChangeInput struct {
	ContestID          string `json:"contest"`
	Placement          int    `json:"placement" validate:"gte=0"`
	Change             int    `json:"mmr_change"`
	SourceRatingChange int    `json:"source_rating_change"`
}

// Profile is the account view served to its owner.
type Profile struct {
	FullName string         `json:"full_name"`
	Email    string         `json:"email"`
	Rating   int            `json:"bscp_rating"`
	Phone    string         `json:"phone"`
	History  []RatingChange `json:"history"`
}
