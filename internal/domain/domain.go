package domain

import (
	"strings"
	"time"
)

// Intent is the classified purpose category of a user utterance.
type Intent string

const (
	IntentPriceQuery       Intent = "price_query"
	IntentPerformanceQuery Intent = "performance_query"
	IntentOnchainAnalysis  Intent = "onchain_analysis"
	IntentSocialSentiment  Intent = "social_sentiment"
	IntentGeneralCrypto    Intent = "general_crypto"
	IntentGeneralChat      Intent = "general_chat"
)

func (i Intent) IsValid() bool {
	switch i {
	case IntentPriceQuery, IntentPerformanceQuery, IntentOnchainAnalysis,
		IntentSocialSentiment, IntentGeneralCrypto, IntentGeneralChat:
		return true
	}
	return false
}

// IsDataQuery reports whether the intent requires asset data from providers.
// GENERAL_CHAT is the only intent that never dispatches to a data source.
func (i Intent) IsDataQuery() bool {
	return i.IsValid() && i != IntentGeneralChat
}

type SafetyStatus string

const (
	SafetyAllowed   SafetyStatus = "allowed"
	SafetyRejected  SafetyStatus = "rejected"
	SafetyAmbiguous SafetyStatus = "ambiguous"
)

// SafetyVerdict is the outcome of the content safety filter for one utterance.
// MatchedTerm and Category are set for rejections and fuzzy hits; Similarity is
// 1.0 for exact matches and the computed ratio for fuzzy ones.
type SafetyVerdict struct {
	Status      SafetyStatus `json:"status"`
	MatchedTerm string       `json:"matched_term,omitempty"`
	Category    string       `json:"category,omitempty"`
	Similarity  float64      `json:"similarity,omitempty"`
}

// Provenance records which extraction strategy produced a symbol candidate.
type Provenance string

const (
	ProvenanceDollarSign   Provenance = "dollar_sign"
	ProvenanceKeywordMatch Provenance = "keyword_match"
	ProvenanceLastWord     Provenance = "fallback_last_word"
	ProvenanceContext      Provenance = "context"
)

type SymbolCandidate struct {
	Symbol     string     `json:"symbol"`
	Provenance Provenance `json:"provenance"`
}

type Timeframe string

const (
	Timeframe1h  Timeframe = "1h"
	Timeframe24h Timeframe = "24h"
	Timeframe7d  Timeframe = "7d"
	Timeframe30d Timeframe = "30d"
)

var SupportedTimeframes = []Timeframe{Timeframe1h, Timeframe24h, Timeframe7d, Timeframe30d}

// Classification is the full output of the intent classifier for one utterance.
type Classification struct {
	Intent    Intent            `json:"intent"`
	Symbols   []SymbolCandidate `json:"symbols,omitempty"`
	Timeframe Timeframe         `json:"timeframe,omitempty"`
}

// PrimarySymbol returns the highest-priority extracted symbol, or "" when
// extraction produced no candidate. Callers must treat "" explicitly.
func (c Classification) PrimarySymbol() string {
	if len(c.Symbols) == 0 {
		return ""
	}
	return c.Symbols[0].Symbol
}

type ConversationTurn struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Intent    Intent    `json:"intent,omitempty"`
	Symbol    string    `json:"symbol,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ContextWindow caps the number of turns retained per session; the oldest
// turns are evicted first.
const ContextWindow = 10

// ConversationContext is the ordered history for one session, most recent
// last. It only supplies a default symbol for ambiguity resolution; it never
// changes classification rules.
type ConversationContext struct {
	Turns []ConversationTurn
}

func (c *ConversationContext) Append(turn ConversationTurn) {
	c.Turns = append(c.Turns, turn)
	if len(c.Turns) > ContextWindow {
		c.Turns = c.Turns[len(c.Turns)-ContextWindow:]
	}
}

// LastSymbol returns the most recently extracted symbol in the window, or "".
func (c *ConversationContext) LastSymbol() string {
	for i := len(c.Turns) - 1; i >= 0; i-- {
		if s := strings.TrimSpace(c.Turns[i].Symbol); s != "" {
			return s
		}
	}
	return ""
}

// CoinDetails is a market snapshot for one asset as reported by the
// market-data provider.
type CoinDetails struct {
	CoinID          string  `json:"coin_id"`
	Symbol          string  `json:"symbol"`
	Name            string  `json:"name"`
	PriceUSD        float64 `json:"price_usd"`
	MarketCapUSD    float64 `json:"market_cap_usd"`
	Change1hPct     float64 `json:"change_1h_pct"`
	Change24hPct    float64 `json:"change_24h_pct"`
	Change7dPct     float64 `json:"change_7d_pct"`
	Change30dPct    float64 `json:"change_30d_pct"`
	Chain           string  `json:"chain,omitempty"`
	IsNativeAsset   bool    `json:"is_native_asset"`
	ContractAddress string  `json:"contract_address,omitempty"`
}

// SmartMoneyWindow is one timeframe of aggregated smart-money flow.
type SmartMoneyWindow struct {
	NetFlowUSD  float64 `json:"netflow_usd"`
	TraderCount int     `json:"trader_count"`
}

type SmartMoneyFlow struct {
	Symbol   string            `json:"symbol"`
	Flow24h  *SmartMoneyWindow `json:"flow_24h,omitempty"`
	Flow7d   *SmartMoneyWindow `json:"flow_7d,omitempty"`
	Flow30d  *SmartMoneyWindow `json:"flow_30d,omitempty"`
	Summary  string            `json:"summary,omitempty"`
	Fallback bool              `json:"fallback,omitempty"`
}

type TweetRef struct {
	URL        string `json:"url"`
	Sentiment  string `json:"sentiment"`
	Engagement int    `json:"engagement"`
}

type SocialSentiment struct {
	Symbol           string     `json:"symbol"`
	Summary          string     `json:"summary"`
	Mood             string     `json:"mood"`
	TrendingHashtags []string   `json:"trending_hashtags,omitempty"`
	CitedTweets      []TweetRef `json:"cited_tweets,omitempty"`
}

// CoinAnalysis bundles every data source for one asset. Nil fields mean
// the source had nothing for the symbol or was unavailable.
type CoinAnalysis struct {
	Symbol     string           `json:"symbol"`
	Details    *CoinDetails     `json:"details,omitempty"`
	SmartMoney *SmartMoneyFlow  `json:"smart_money,omitempty"`
	Sentiment  *SocialSentiment `json:"sentiment,omitempty"`
	Charts     string           `json:"charts,omitempty"`
}

// Reply is the assistant's complete answer for one inbound message.
type Reply struct {
	Text       string        `json:"text"`
	Verdict    SafetyVerdict `json:"verdict"`
	Intent     Intent        `json:"intent,omitempty"`
	Symbols    []string      `json:"symbols,omitempty"`
	Charts     string        `json:"charts,omitempty"`
	Disclaimer bool          `json:"disclaimer,omitempty"`
}
