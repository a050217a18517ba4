package domain

import (
	"strings"
	"time"
)

// Account is the local identity record. Email is stored lower-cased and is unique.
type Account struct {
	AccountID        string     `json:"id" dynamodbav:"account_id"`
	Email            string     `json:"email" dynamodbav:"email"`
	PasswordHash     string     `json:"-" dynamodbav:"password_hash"`
	FullName         string     `json:"full_name" dynamodbav:"full_name"`
	Phone            string     `json:"phone" dynamodbav:"phone"`
	Verified         bool       `json:"verified" dynamodbav:"verified"`
	VerificationCode *string    `json:"-" dynamodbav:"verification_code,omitempty"`
	CodeExpiry       *time.Time `json:"-" dynamodbav:"code_expiry,omitempty"`
	Role             string     `json:"role" dynamodbav:"role"`
	Rating           int        `json:"rating" dynamodbav:"rating"`
	CreatedAt        time.Time  `json:"created" dynamodbav:"created_at"`
	UpdatedAt        time.Time  `json:"updated" dynamodbav:"updated_at"`
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,max=72"`
	FullName string `json:"full_name" validate:"required"`
}

type ConfirmRequest struct {
	Email string `json:"email" validate:"required"`
	Code  string `json:"code" validate:"required"`
}

type ResendRequest struct {
	Email string `json:"email" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// NormalizeEmail is the case-insensitive key used for account lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
