package classify

import (
	"regexp"
	"strings"

	"naomi/internal/domain"
)

// Conversational openers are checked before any data pattern so that a
// greeting containing a coin word ("gm, bitcoin fam") still reads as chat.
var conversationalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(hi|hello|hey|sup|howdy|yo|greetings|gm|gn|hola|oi|bonjour|ciao)\b`),
	regexp.MustCompile(`^(what'?s up|whats up|good (morning|afternoon|evening|night))\b`),
	regexp.MustCompile(`^(bye|goodbye|see you|later|cya|take care|peace( out)?|adios|farewell)\b`),
	regexp.MustCompile(`how (are|have) (you|things)|how'?s it going|what'?s new`),
	regexp.MustCompile(`^(ok|okay|yeah|yep|nope|nah|sure|cool|nice|wow|omg|lol|haha|thanks|thank you|thx|ty)\b`),
}

// intentRules is evaluated in order; the first match wins. On-chain and
// social patterns outrank price so "smart money flow for btc price action"
// lands on the richer analysis.
var intentRules = []struct {
	intent  domain.Intent
	pattern *regexp.Regexp
}{
	{domain.IntentOnchainAnalysis, regexp.MustCompile(`smart money|on.?chain|netflow|flows?\b|whale|wallet|transfer|accumulation|distribution`)},
	{domain.IntentSocialSentiment, regexp.MustCompile(`sentiment|twitter|tweet|social|community|hype|buzz|vibe|news|rumor|talking about`)},
	{domain.IntentPriceQuery, regexp.MustCompile(`price|cost|current value|trading at|market cap|volume|worth|how much|how many`)},
	{domain.IntentPerformanceQuery, regexp.MustCompile(`performance|performing|gain|loss|return|pumping|dumping|\bchange\b|\b(1h|24h|7d|30d)\b`)},
}

var generalCryptoPattern = regexp.MustCompile(`\b(coin|crypto|token|blockchain|defi|nft|altcoin|staking|airdrop|market)\b`)

var timeframePatterns = []struct {
	timeframe domain.Timeframe
	pattern   *regexp.Regexp
}{
	{domain.Timeframe1h, regexp.MustCompile(`\b1h\b|1 hour|last hour|past hour`)},
	{domain.Timeframe7d, regexp.MustCompile(`\b7d\b|7 days|this week|past week|\bweek\b`)},
	{domain.Timeframe30d, regexp.MustCompile(`\b30d\b|30 days|this month|past month|\bmonth\b`)},
	{domain.Timeframe24h, regexp.MustCompile(`\b24h\b|24 hours|\bday\b|today|yesterday`)},
}

var dollarSymbolPattern = regexp.MustCompile(`\$([A-Za-z0-9]+)`)

var wordPattern = regexp.MustCompile(`\b[a-z0-9]{3,}\b`)

// Classifier turns one utterance into an intent, extracted symbols and an
// optional timeframe. It is stateless; conversation context is supplied by
// the caller per call.
type Classifier struct{}

func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify never fails: unrecognized input degrades to general_chat with no
// symbols. ctx may be nil when no prior conversation exists.
func (c *Classifier) Classify(utterance string, ctx *domain.ConversationContext) domain.Classification {
	text := strings.ToLower(strings.TrimSpace(utterance))

	result := domain.Classification{Intent: domain.IntentGeneralChat}
	if text == "" {
		return result
	}

	for _, pattern := range conversationalPatterns {
		if pattern.MatchString(text) {
			return result
		}
	}

	result.Timeframe = extractTimeframe(text)

	for _, rule := range intentRules {
		if rule.pattern.MatchString(text) {
			result.Intent = rule.intent
			break
		}
	}

	result.Symbols = extractSymbols(utterance, text, result.Intent)

	if result.Intent == domain.IntentGeneralChat {
		if len(result.Symbols) > 0 || generalCryptoPattern.MatchString(text) {
			result.Intent = domain.IntentGeneralCrypto
			if len(result.Symbols) == 0 {
				result.Symbols = extractSymbols(utterance, text, result.Intent)
			}
		}
	}

	// A data query with no symbol of its own inherits the subject of the
	// conversation ("what about its smart money flow?").
	if len(result.Symbols) == 0 && result.Intent.IsDataQuery() && ctx != nil {
		if last := ctx.LastSymbol(); last != "" {
			result.Symbols = []domain.SymbolCandidate{{
				Symbol:     last,
				Provenance: domain.ProvenanceContext,
			}}
		}
	}

	return result
}

// extractSymbols applies the extraction strategies in strict order and
// returns candidates from the first strategy that produced any. The raw
// utterance is needed for $TICKER casing; text is its lowercase form.
func extractSymbols(raw, text string, intent domain.Intent) []domain.SymbolCandidate {
	if symbols := dollarSymbols(raw); len(symbols) > 0 {
		return symbols
	}
	if symbols := keywordSymbols(text); len(symbols) > 0 {
		return symbols
	}
	if intent.IsDataQuery() {
		return fallbackSymbol(text)
	}
	return nil
}

func dollarSymbols(raw string) []domain.SymbolCandidate {
	matches := dollarSymbolPattern.FindAllStringSubmatch(raw, -1)
	if len(matches) == 0 {
		return nil
	}
	var out []domain.SymbolCandidate
	seen := map[string]struct{}{}
	for _, m := range matches {
		symbol := canonicalize(m[1])
		if _, dup := seen[symbol]; dup {
			continue
		}
		seen[symbol] = struct{}{}
		out = append(out, domain.SymbolCandidate{
			Symbol:     symbol,
			Provenance: domain.ProvenanceDollarSign,
		})
	}
	return out
}

func keywordSymbols(text string) []domain.SymbolCandidate {
	var out []domain.SymbolCandidate
	seen := map[string]struct{}{}
	for _, word := range strings.Fields(text) {
		word = strings.Trim(word, "?.!,:;\"'()")
		ticker, ok := domain.ResolveTicker(word)
		if !ok {
			continue
		}
		if _, dup := seen[ticker]; dup {
			continue
		}
		seen[ticker] = struct{}{}
		out = append(out, domain.SymbolCandidate{
			Symbol:     ticker,
			Provenance: domain.ProvenanceKeywordMatch,
		})
	}
	return out
}

// fallbackSymbol picks the last non-stopword token of three or more
// characters. It fires only for data queries, where the user plainly asked
// about something even if we do not recognize the name.
func fallbackSymbol(text string) []domain.SymbolCandidate {
	words := wordPattern.FindAllString(text, -1)
	for i := len(words) - 1; i >= 0; i-- {
		if _, stop := stopwords[words[i]]; stop {
			continue
		}
		return []domain.SymbolCandidate{{
			Symbol:     canonicalize(words[i]),
			Provenance: domain.ProvenanceLastWord,
		}}
	}
	return nil
}

func extractTimeframe(text string) domain.Timeframe {
	for _, tf := range timeframePatterns {
		if tf.pattern.MatchString(text) {
			return tf.timeframe
		}
	}
	return ""
}

// canonicalize maps a raw token to its canonical ticker when known,
// otherwise uppercases it as-is.
func canonicalize(token string) string {
	if ticker, ok := domain.ResolveTicker(strings.ToLower(token)); ok {
		return ticker
	}
	return strings.ToUpper(token)
}
