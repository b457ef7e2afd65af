package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"naomi/internal/cache"
	"naomi/internal/domain"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/trace"
)

const nansenBaseURL = "https://api.nansen.ai/api/beta"

type nansenAsset struct {
	chain   string
	address string
	native  bool
}

// nansenAssets maps tickers to the chain and contract the flow-intelligence
// endpoint wants. Flow data only exists for assets Nansen tracks.
var nansenAssets = map[string]nansenAsset{
	"ETH":  {chain: "ethereum", address: "0xeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee", native: true},
	"WBTC": {chain: "ethereum", address: "0x2260fac5e5542a773aa44fbcfedf7c193bc2c599"},
	"USDT": {chain: "ethereum", address: "0xdac17f958d2ee523a2206206994597c13d831ec7"},
	"USDC": {chain: "ethereum", address: "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48"},
	"UNI":  {chain: "ethereum", address: "0x1f9840a85d5af5bf1d1762f925bdaddc4201f984"},
	"LINK": {chain: "ethereum", address: "0x514910771af9ca656af840dff83e8264ecf986ca"},
	"SHIB": {chain: "ethereum", address: "0x95ad61b0a150d79219dcf64e1e6cc01f0b64c4ce"},
	"PEPE": {chain: "ethereum", address: "0x6982508145454ce325ddbe47a25d4ec3d2311933"},
	"AAVE": {chain: "ethereum", address: "0x7fc66500c84a76ad7e9c93437bfc5ac33e2ddae9"},
}

// NansenProvider aggregates smart-money flow over the 24h, 7d and 30d
// windows for assets with tracked on-chain activity.
type NansenProvider struct {
	tracer     trace.Tracer
	client     *http.Client
	cache      *redis.Client
	baseURL    string
	apiKey     string
	cacheTTL   time.Duration
	maxRetries int
}

func NewNansenProvider(tracer trace.Tracer, rdb *redis.Client, apiKey string, timeout, cacheTTL time.Duration, maxRetries int) *NansenProvider {
	return &NansenProvider{
		tracer:     tracer,
		client:     &http.Client{Timeout: timeout},
		cache:      rdb,
		baseURL:    nansenBaseURL,
		apiKey:     apiKey,
		cacheTTL:   cacheTTL,
		maxRetries: maxRetries,
	}
}

type nansenFlowEntry struct {
	SmartTraderFlow float64 `json:"smartTraderFlow"`
	TraderCount     int     `json:"traderCount"`
}

// GetSmartMoneyFlow returns ErrNotFound for assets outside the tracked set;
// callers degrade to a partial answer rather than failing the turn.
func (p *NansenProvider) GetSmartMoneyFlow(ctx context.Context, symbol string) (*domain.SmartMoneyFlow, error) {
	ctx, span := p.tracer.Start(ctx, "nansen.get-smart-money-flow")
	defer span.End()

	ticker := strings.ToUpper(strings.TrimSpace(symbol))
	asset, ok := nansenAssets[ticker]
	if !ok {
		return nil, ErrNotFound
	}
	if p.apiKey == "" {
		return nil, ErrUnavailable
	}

	cacheKey := "nansen:flow:" + ticker
	var cached domain.SmartMoneyFlow
	if hit, err := cache.GetJSON(ctx, p.cache, cacheKey, &cached); err == nil && hit {
		return &cached, nil
	}

	flow := &domain.SmartMoneyFlow{Symbol: ticker}
	windows := []struct {
		timeframe string
		dest      **domain.SmartMoneyWindow
	}{
		{"1d", &flow.Flow24h},
		{"7d", &flow.Flow7d},
		{"30d", &flow.Flow30d},
	}
	for _, w := range windows {
		entry, err := p.fetchWindow(ctx, asset, w.timeframe)
		if err != nil {
			span.RecordError(err)
			continue
		}
		*w.dest = &domain.SmartMoneyWindow{
			NetFlowUSD:  entry.SmartTraderFlow,
			TraderCount: entry.TraderCount,
		}
	}
	if flow.Flow24h == nil && flow.Flow7d == nil && flow.Flow30d == nil {
		return nil, ErrUnavailable
	}

	flow.Summary = summarizeFlow(flow)
	if err := cache.SetJSON(ctx, p.cache, cacheKey, flow, p.cacheTTL); err != nil {
		span.RecordError(err)
	}
	return flow, nil
}

func (p *NansenProvider) fetchWindow(ctx context.Context, asset nansenAsset, timeframe string) (*nansenFlowEntry, error) {
	payload := map[string]any{
		"parameters": map[string]any{
			"chain":        asset.chain,
			"tokenAddress": asset.address,
			"timeframe":    timeframe,
		},
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	url := p.baseURL + "/tgm/flow-intelligence"
	resp, err := doWithRetries(ctx, p.client, func() (*http.Request, error) {
		req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(raw))
		if err != nil {
			return nil, err
		}
		req.Header.Set("apiKey", p.apiKey)
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	}, p.maxRetries)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: nansen status %d", ErrUnavailable, resp.StatusCode)
	}

	var entries []nansenFlowEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode nansen response: %w", err)
	}
	if len(entries) == 0 {
		return nil, ErrNotFound
	}
	return &entries[0], nil
}

// summarizeFlow renders the windows the way the charts do: sign first, then
// the humanized dollar amount.
func summarizeFlow(flow *domain.SmartMoneyFlow) string {
	var parts []string
	for _, w := range []struct {
		label  string
		window *domain.SmartMoneyWindow
	}{
		{"24h", flow.Flow24h},
		{"7d", flow.Flow7d},
		{"30d", flow.Flow30d},
	} {
		if w.window == nil {
			continue
		}
		direction := "accumulating"
		if w.window.NetFlowUSD < 0 {
			direction = "distributing"
		}
		parts = append(parts, fmt.Sprintf("%s: %s (%s, %d traders)",
			w.label, FormatUSD(w.window.NetFlowUSD), direction, w.window.TraderCount))
	}
	return strings.Join(parts, "; ")
}

// FormatUSD humanizes a dollar amount with K/M suffixes, keeping the sign.
func FormatUSD(v float64) string {
	abs := v
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs >= 1_000_000:
		return fmt.Sprintf("$%.2fM", v/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("$%.2fK", v/1_000)
	default:
		return fmt.Sprintf("$%.2f", v)
	}
}
