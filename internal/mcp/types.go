package mcp

import (
	"fmt"
	"strings"

	"naomi/internal/domain"
)

type classifyMessageInput struct {
	Message   string `json:"message" jsonschema:"user message to classify"`
	SessionID string `json:"session_id,omitempty" jsonschema:"optional session id for context carry-over"`
}

type classifyMessageOutput struct {
	Classification domain.Classification `json:"classification"`
}

type safetyCheckInput struct {
	Message string `json:"message" jsonschema:"user message to evaluate"`
}

type safetyCheckOutput struct {
	Verdict domain.SafetyVerdict `json:"verdict"`
}

type analyzeCoinInput struct {
	Symbol string `json:"symbol" jsonschema:"asset symbol or name (e.g. BTC, ethereum)"`
}

type analyzeCoinOutput struct {
	Analysis *domain.CoinAnalysis `json:"analysis"`
}

type chatInput struct {
	Message   string `json:"message" jsonschema:"user message"`
	SessionID string `json:"session_id,omitempty" jsonschema:"optional session id; omit for a one-shot exchange"`
}

type chatOutput struct {
	SessionID string        `json:"session_id"`
	Reply     *domain.Reply `json:"reply"`
}

func normalizeMessage(message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", fmt.Errorf("message is required")
	}
	return message, nil
}

func normalizeSymbol(symbol string) (string, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return "", fmt.Errorf("symbol is required")
	}
	if ticker, ok := domain.ResolveTicker(symbol); ok {
		return ticker, nil
	}
	return strings.ToUpper(symbol), nil
}
