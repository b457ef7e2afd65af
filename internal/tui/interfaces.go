package tui

import (
	"context"

	"naomi/internal/domain"
)

// AssistantQuerier provides assistant access to the TUI.
type AssistantQuerier interface {
	Ask(ctx context.Context, sessionID, message string) (*domain.Reply, error)
	ResetSession(ctx context.Context, sessionID string) error
}

// Services bundles the dependencies injected into the TUI.
type Services struct {
	Assistant AssistantQuerier
	Username  string
	SessionID string
}
