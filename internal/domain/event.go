package domain

import "time"

// CalendarEvent is a contest shown on the calendar.
type CalendarEvent struct {
	EventID          string    `json:"id" dynamodbav:"event_id"`
	Title            string    `json:"title" dynamodbav:"title"`
	Platform         string    `json:"platform" dynamodbav:"platform"`
	Status           string    `json:"status" dynamodbav:"status"`
	StartDate        time.Time `json:"start_date" dynamodbav:"start_date"`
	EndDate          time.Time `json:"end_date" dynamodbav:"end_date"`
	RegistrationLink string    `json:"registration_link" dynamodbav:"registration_link"`
}

type CalendarEventInput struct {
	Title            string    `json:"title" validate:"required"`
	Platform         string    `json:"platform" validate:"required"`
	Status           string    `json:"status"`
	StartDate        time.Time `json:"start_date" validate:"required"`
	EndDate          time.Time `json:"end_date" validate:"required,gtefield=StartDate"`
	RegistrationLink string    `json:"registration_link" validate:"omitempty,url"`
}

// InfoEntry is a free-form informational block shown on the portal.
type InfoEntry struct {
	InfoID string `json:"id" dynamodbav:"info_id"`
	Title  string `json:"title" dynamodbav:"title"`
	Body   string `json:"body" dynamodbav:"body"`
	Order  int    `json:"order" dynamodbav:"order"`
}

type InfoEntryInput struct {
	Title string `json:"title" validate:"required"`
	Body  string `json:"body" validate:"required"`
	Order int    `json:"order"`
}
