package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"naomi/internal/cache"
	"naomi/internal/domain"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/trace"
)

const (
	coinGeckoPublicURL = "https://api.coingecko.com/api/v3"
	coinGeckoProURL    = "https://pro-api.coingecko.com/api/v3"
)

// CoinGeckoProvider fetches market snapshots. Responses are cached in Redis
// so repeated questions about the same coin do not burn rate limits.
type CoinGeckoProvider struct {
	tracer     trace.Tracer
	client     *http.Client
	cache      *redis.Client
	baseURL    string
	apiKey     string
	cacheTTL   time.Duration
	maxRetries int
}

func NewCoinGeckoProvider(tracer trace.Tracer, rdb *redis.Client, apiKey string, timeout, cacheTTL time.Duration, maxRetries int) *CoinGeckoProvider {
	baseURL := coinGeckoPublicURL
	if apiKey != "" {
		baseURL = coinGeckoProURL
	}
	return &CoinGeckoProvider{
		tracer:     tracer,
		client:     &http.Client{Timeout: timeout},
		cache:      rdb,
		baseURL:    baseURL,
		apiKey:     apiKey,
		cacheTTL:   cacheTTL,
		maxRetries: maxRetries,
	}
}

type coinGeckoResponse struct {
	ID         string `json:"id"`
	Symbol     string `json:"symbol"`
	Name       string `json:"name"`
	MarketData struct {
		CurrentPrice map[string]float64 `json:"current_price"`
		MarketCap    map[string]float64 `json:"market_cap"`
		Change1h     map[string]float64 `json:"price_change_percentage_1h_in_currency"`
		Change24h    map[string]float64 `json:"price_change_percentage_24h_in_currency"`
		Change7d     map[string]float64 `json:"price_change_percentage_7d_in_currency"`
		Change30d    map[string]float64 `json:"price_change_percentage_30d_in_currency"`
	} `json:"market_data"`
}

// GetCoinDetails resolves a ticker to a CoinGecko id and returns the market
// snapshot. Unknown tickers are tried verbatim as ids, then through the
// search endpoint, before giving up.
func (p *CoinGeckoProvider) GetCoinDetails(ctx context.Context, symbol string) (*domain.CoinDetails, error) {
	ctx, span := p.tracer.Start(ctx, "coingecko.get-coin-details")
	defer span.End()

	ticker := strings.ToUpper(strings.TrimSpace(symbol))
	if ticker == "" {
		return nil, ErrNotFound
	}
	coinID, known := domain.CoinGeckoID[ticker]
	if !known {
		coinID = strings.ToLower(ticker)
	}

	cacheKey := "cg:details:" + ticker
	var cached domain.CoinDetails
	if hit, err := cache.GetJSON(ctx, p.cache, cacheKey, &cached); err == nil && hit {
		return &cached, nil
	}

	details, err := p.fetchDetails(ctx, coinID, ticker)
	if errors.Is(err, ErrNotFound) && !known {
		id, searchErr := p.searchCoinID(ctx, ticker)
		if searchErr == nil && id != "" {
			details, err = p.fetchDetails(ctx, id, ticker)
		}
	}
	if err != nil {
		return nil, err
	}

	if err := cache.SetJSON(ctx, p.cache, cacheKey, details, p.cacheTTL); err != nil {
		span.RecordError(err)
	}
	return details, nil
}

func (p *CoinGeckoProvider) fetchDetails(ctx context.Context, coinID, ticker string) (*domain.CoinDetails, error) {
	reqURL := fmt.Sprintf("%s/coins/%s?localization=false&tickers=false&community_data=false&developer_data=false", p.baseURL, coinID)
	resp, err := doWithRetries(ctx, p.client, func() (*http.Request, error) {
		req, err := http.NewRequest(http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, err
		}
		if p.apiKey != "" {
			req.Header.Set("x-cg-pro-api-key", p.apiKey)
		}
		return req, nil
	}, p.maxRetries)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: coingecko status %d", ErrUnavailable, resp.StatusCode)
	}

	var body coinGeckoResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode coingecko response: %w", err)
	}

	details := &domain.CoinDetails{
		CoinID:       body.ID,
		Symbol:       ticker,
		Name:         body.Name,
		PriceUSD:     body.MarketData.CurrentPrice["usd"],
		MarketCapUSD: body.MarketData.MarketCap["usd"],
		Change1hPct:  body.MarketData.Change1h["usd"],
		Change24hPct: body.MarketData.Change24h["usd"],
		Change7dPct:  body.MarketData.Change7d["usd"],
		Change30dPct: body.MarketData.Change30d["usd"],
	}
	if asset, ok := nansenAssets[ticker]; ok {
		details.Chain = asset.chain
		details.IsNativeAsset = asset.native
		details.ContractAddress = asset.address
	}
	return details, nil
}

// searchCoinID queries the search endpoint and returns the id of the best
// match whose symbol equals the ticker, or the first hit.
func (p *CoinGeckoProvider) searchCoinID(ctx context.Context, ticker string) (string, error) {
	ctx, span := p.tracer.Start(ctx, "coingecko.search-coin")
	defer span.End()

	reqURL := fmt.Sprintf("%s/search?query=%s", p.baseURL, url.QueryEscape(strings.ToLower(ticker)))
	resp, err := doWithRetries(ctx, p.client, func() (*http.Request, error) {
		req, err := http.NewRequest(http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, err
		}
		if p.apiKey != "" {
			req.Header.Set("x-cg-pro-api-key", p.apiKey)
		}
		return req, nil
	}, p.maxRetries)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: coingecko search status %d", ErrUnavailable, resp.StatusCode)
	}

	var body struct {
		Coins []struct {
			ID     string `json:"id"`
			Symbol string `json:"symbol"`
		} `json:"coins"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode coingecko search response: %w", err)
	}
	if len(body.Coins) == 0 {
		return "", ErrNotFound
	}
	for _, c := range body.Coins {
		if strings.EqualFold(c.Symbol, ticker) {
			return c.ID, nil
		}
	}
	return body.Coins[0].ID, nil
}
