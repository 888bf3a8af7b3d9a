package domain

import (
	"context"
	"errors"
	"time"
)

// Fault sentinels returned (wrapped) by the contact usecase
var (
	ErrMissingFields      = errors.New("all fields are required")
	ErrRelayNotConfigured = errors.New("message relay is not configured")
	ErrDeliveryFailed     = errors.New("message delivery failed")
)

// ContactRequest represents a contact form submission.
// The server only checks presence; format and length rules live in the client.
type ContactRequest struct {
	Name    string `json:"name" binding:"required" example:"Jo"`
	Email   string `json:"email" binding:"required" example:"jo@example.com"`
	Message string `json:"message" binding:"required" example:"Hello there friend"`
}

// ContactMessage is what a relay delivers for one accepted submission
type ContactMessage struct {
	ReferenceID string
	Name        string
	Email       string
	Message     string
	SubmittedAt time.Time
}

// MessageRelay forwards a contact message to an external channel with one outbound call
type MessageRelay interface {
	// Name identifies the relay in logs
	Name() string
	// IsConfigured reports whether the relay holds the credentials it needs
	IsConfigured() bool
	Deliver(ctx context.Context, msg *ContactMessage) error
}

// ContactUsecase defines the interface for contact form operations
type ContactUsecase interface {
	// SendContactMessage checks presence of all fields and relays the message
	SendContactMessage(ctx context.Context, req *ContactRequest) error
}
