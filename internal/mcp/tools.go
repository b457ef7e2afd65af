package mcp

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerTools(server *mcp.Server, assistant Assistant) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "classify_message",
		Description: "Classify a user message into an intent and extract asset symbols and timeframe",
	}, func(_ context.Context, _ *mcp.CallToolRequest, in classifyMessageInput) (*mcp.CallToolResult, classifyMessageOutput, error) {
		if assistant == nil {
			return nil, classifyMessageOutput{}, fmt.Errorf("assistant unavailable")
		}
		message, err := normalizeMessage(in.Message)
		if err != nil {
			return nil, classifyMessageOutput{}, err
		}
		return nil, classifyMessageOutput{Classification: assistant.Classify(in.SessionID, message)}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "safety_check",
		Description: "Evaluate a message against the content safety filter",
	}, func(_ context.Context, _ *mcp.CallToolRequest, in safetyCheckInput) (*mcp.CallToolResult, safetyCheckOutput, error) {
		if assistant == nil {
			return nil, safetyCheckOutput{}, fmt.Errorf("assistant unavailable")
		}
		message, err := normalizeMessage(in.Message)
		if err != nil {
			return nil, safetyCheckOutput{}, err
		}
		return nil, safetyCheckOutput{Verdict: assistant.CheckSafety(message)}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "analyze_coin",
		Description: "Fetch market data, smart money flows and social sentiment for one asset",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in analyzeCoinInput) (*mcp.CallToolResult, analyzeCoinOutput, error) {
		if assistant == nil {
			return nil, analyzeCoinOutput{}, fmt.Errorf("assistant unavailable")
		}
		symbol, err := normalizeSymbol(in.Symbol)
		if err != nil {
			return nil, analyzeCoinOutput{}, err
		}
		analysis, err := assistant.AnalyzeCoin(ctx, symbol)
		if err != nil {
			return nil, analyzeCoinOutput{}, err
		}
		return nil, analyzeCoinOutput{Analysis: analysis}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "chat",
		Description: "Send a message through the full assistant pipeline and get Naomi's reply",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in chatInput) (*mcp.CallToolResult, chatOutput, error) {
		if assistant == nil {
			return nil, chatOutput{}, fmt.Errorf("assistant unavailable")
		}
		message, err := normalizeMessage(in.Message)
		if err != nil {
			return nil, chatOutput{}, err
		}
		sessionID := in.SessionID
		if sessionID == "" {
			sessionID = uuid.NewString()
		}
		reply, err := assistant.Ask(ctx, sessionID, message)
		if err != nil {
			return nil, chatOutput{}, err
		}
		return nil, chatOutput{SessionID: sessionID, Reply: reply}, nil
	})
}
