package mcp

import (
	"context"

	"naomi/internal/domain"
)

// Assistant exposes the conversational pipeline to MCP clients.
type Assistant interface {
	Ask(ctx context.Context, sessionID, message string) (*domain.Reply, error)
	Classify(sessionID, message string) domain.Classification
	CheckSafety(message string) domain.SafetyVerdict
	AnalyzeCoin(ctx context.Context, symbol string) (*domain.CoinAnalysis, error)
}
