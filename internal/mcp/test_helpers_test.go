package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"naomi/internal/domain"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

type stubAssistant struct {
	analyses map[string]*domain.CoinAnalysis

	lastAskSession string
	lastAskMessage string
	lastAnalyzed   string
}

func (s *stubAssistant) Ask(ctx context.Context, sessionID, message string) (*domain.Reply, error) {
	s.lastAskSession = sessionID
	s.lastAskMessage = message
	return &domain.Reply{
		Text:    "BTC is looking strong today.",
		Verdict: domain.SafetyVerdict{Status: domain.SafetyAllowed},
		Intent:  domain.IntentPriceQuery,
		Symbols: []string{"BTC"},
	}, nil
}

func (s *stubAssistant) Classify(sessionID, message string) domain.Classification {
	return domain.Classification{
		Intent:    domain.IntentPriceQuery,
		Symbols:   []domain.SymbolCandidate{{Symbol: "BTC", Provenance: domain.ProvenanceKeywordMatch}},
		Timeframe: domain.Timeframe24h,
	}
}

func (s *stubAssistant) CheckSafety(message string) domain.SafetyVerdict {
	return domain.SafetyVerdict{Status: domain.SafetyAllowed}
}

func (s *stubAssistant) AnalyzeCoin(ctx context.Context, symbol string) (*domain.CoinAnalysis, error) {
	s.lastAnalyzed = symbol
	if analysis, ok := s.analyses[symbol]; ok {
		return analysis, nil
	}
	return nil, fmt.Errorf("no data for %s", symbol)
}

func testServer() (*sdkmcp.Server, *stubAssistant) {
	assistant := &stubAssistant{
		analyses: map[string]*domain.CoinAnalysis{
			"BTC": {
				Symbol: "BTC",
				Details: &domain.CoinDetails{
					CoinID: "bitcoin", Symbol: "BTC", Name: "Bitcoin",
					PriceUSD: 65000, MarketCapUSD: 1.28e12,
					Change24hPct: 2.5, Change7dPct: -1.2, Change30dPct: 10.4,
				},
				SmartMoney: &domain.SmartMoneyFlow{
					Symbol:  "BTC",
					Flow24h: &domain.SmartMoneyWindow{NetFlowUSD: 1.5e6, TraderCount: 42},
				},
				Sentiment: &domain.SocialSentiment{Symbol: "BTC", Summary: "bullish chatter", Mood: "positive"},
			},
		},
	}

	srv := NewServer(nil, assistant, ServerConfig{RequestTimeout: time.Second})
	return srv, assistant
}

func connectInMemory(ctx context.Context, srv *sdkmcp.Server) (*sdkmcp.ClientSession, context.CancelFunc, error) {
	clientTransport, serverTransport := sdkmcp.NewInMemoryTransports()
	runCtx, cancel := context.WithCancel(ctx)
	go func() { _ = srv.Run(runCtx, serverTransport) }()

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "mcp-test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		cancel()
		return nil, nil, err
	}
	return session, cancel, nil
}

type authRoundTripper struct {
	token string
	base  http.RoundTripper
}

func (t *authRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	if t.token != "" {
		clone.Header.Set("Authorization", "Bearer "+t.token)
	}
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(clone)
}

func decodeResourceJSON(result *sdkmcp.ReadResourceResult, out any) error {
	if len(result.Contents) == 0 {
		return nil
	}
	return json.Unmarshal([]byte(result.Contents[0].Text), out)
}
