package dynamo

// DynamoDB attribute names used in key and update expressions across repos.
const (
	fieldAccountID        = "account_id"
	fieldEmail            = "email"
	fieldPlatform         = "platform"
	fieldRecordedAt       = "recorded_at"
	fieldEventID          = "event_id"
	fieldInfoID           = "info_id"
	fieldVerified         = "verified"
	fieldVerificationCode = "verification_code"
	fieldCodeExpiry       = "code_expiry"
	fieldChallenge        = "challenge"
	fieldHandle           = "handle"
	fieldRating           = "rating"
	fieldUpdatedAt        = "updated_at"
)
