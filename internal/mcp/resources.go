package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"naomi/internal/domain"
	"naomi/internal/safety"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerResources(server *mcp.Server, assistant Assistant) {
	server.AddResource(&mcp.Resource{
		URI:         "market://supported-symbols",
		Name:        "supported-symbols",
		Description: "Tickers the assistant can resolve to market data",
		MIMEType:    "application/json",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		_ = ctx
		return jsonResource(req.Params.URI, domain.SupportedTickers)
	})

	server.AddResource(&mcp.Resource{
		URI:         "safety://categories",
		Name:        "safety-categories",
		Description: "Moderation categories the safety filter can reject on",
		MIMEType:    "application/json",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		_ = ctx
		return jsonResource(req.Params.URI, []string{
			safety.CategoryAdult,
			safety.CategoryHate,
			safety.CategoryViolence,
		})
	})

	server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: "analysis://{symbol}",
		Name:        "coin-analysis",
		Description: "Full market, flow and sentiment analysis for one asset",
		MIMEType:    "application/json",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if assistant == nil {
			return nil, fmt.Errorf("assistant unavailable")
		}

		parsed, err := url.Parse(req.Params.URI)
		if err != nil {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		if parsed.Scheme != "analysis" {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}

		symbol, err := normalizeSymbol(strings.Trim(parsed.Host+parsed.Path, "/"))
		if err != nil {
			return nil, err
		}

		analysis, err := assistant.AnalyzeCoin(ctx, symbol)
		if err != nil {
			return nil, err
		}
		return jsonResource(req.Params.URI, analyzeCoinOutput{Analysis: analysis})
	})
}

func jsonResource(uri string, payload any) (*mcp.ReadResourceResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(body),
		}},
	}, nil
}
