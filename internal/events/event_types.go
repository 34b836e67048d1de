package events

import (
	"time"

	"github.com/hackforge/hackathon-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventHackerCreated       EventType = "hacker_created"
	EventHackerUpdated       EventType = "hacker_updated"
	EventHackerStatusChanged EventType = "hacker_status_changed"
	EventResumeUploaded      EventType = "hacker_resume_uploaded"
)

// Actor identifies the account that caused an event.
type Actor struct {
	AccountID   string             `json:"account_id"`
	AccountType domain.AccountType `json:"account_type"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	HackerID  string    `json:"hacker_id"`
	Actor     Actor     `json:"actor"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// HackerCreatedPayload payload.
type HackerCreatedPayload struct {
	AccountID string              `json:"account_id"`
	Status    domain.HackerStatus `json:"status"`
}

// HackerStatusChangedPayload payload.
type HackerStatusChangedPayload struct {
	NewStatus domain.HackerStatus `json:"new_status"`
	Email     string              `json:"email"`
}

// ResumeUploadedPayload payload.
type ResumeUploadedPayload struct {
	Key  string `json:"key"`
	Size int    `json:"size"`
}
