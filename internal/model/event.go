package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EventType names a token lifecycle event.
type EventType string

const (
	EventTokenIssued        EventType = "token.issued"
	EventTokenRotated       EventType = "token.rotated"
	EventTokenRevoked       EventType = "token.revoked"
	EventTokenReuseDetected EventType = "token.reuse_detected"
	EventTokenExpired       EventType = "token.expired"
)

// TokenEvent describes something that happened to a principal's refresh token.
type TokenEvent struct {
	ID          uuid.UUID `json:"id"`
	Type        EventType `json:"type"`
	PrincipalID uuid.UUID `json:"principal_id"`
	TokenID     uuid.UUID `json:"token_id"`
	Reason      string    `json:"reason,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// EventPublisher accepts events without blocking the caller.
type EventPublisher interface {
	Publish(ctx context.Context, event TokenEvent)
}

// EventSink delivers a single event somewhere.
type EventSink interface {
	Emit(ctx context.Context, event TokenEvent) error
}
