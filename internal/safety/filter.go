package safety

import (
	"sort"
	"strings"

	"naomi/internal/domain"

	"github.com/agnivade/levenshtein"
)

// FuzzyThreshold is the minimum normalized similarity between an utterance
// token and a banned phrase for the filter to flag the token as ambiguous.
// Fuzzy hits never reject outright; they request clarification instead.
const FuzzyThreshold = 0.85

const (
	CategoryAdult    = "adult_exploitation"
	CategoryHate     = "hate_speech"
	CategoryViolence = "violence_illegal"
)

// categoryOrder fixes the iteration order over Banned so a multi-category
// utterance always reports the same matched term and category. Categories
// outside the built-in three are appended in sorted order.
var categoryOrder = []string{CategoryAdult, CategoryHate, CategoryViolence}

func orderedCategories(banned map[string][]string) []string {
	ordered := make([]string, 0, len(banned))
	for _, category := range categoryOrder {
		if _, ok := banned[category]; ok {
			ordered = append(ordered, category)
		}
	}
	var extra []string
	for category := range banned {
		known := false
		for _, c := range categoryOrder {
			if c == category {
				known = true
				break
			}
		}
		if !known {
			extra = append(extra, category)
		}
	}
	sort.Strings(extra)
	return append(ordered, extra...)
}

// Ruleset holds the static tables the filter evaluates against. It is built
// once at startup and shared read-only across requests.
type Ruleset struct {
	// Banned maps a category to its canonical prohibited phrases. Matching
	// is case-insensitive substring, exactly mirroring the phrase as written.
	Banned map[string][]string

	// Whitelist lists banned terms that are legitimate crypto vocabulary
	// when the utterance carries crypto context (a smart-contract "exploit",
	// an exchange "hack"). A whitelisted hit is downgraded to allowed only
	// when a whitelist-context term co-occurs.
	Whitelist map[string]struct{}

	// WhitelistContext are the co-occurring terms that activate the
	// whitelist override (security/analysis vocabulary).
	WhitelistContext []string

	// CryptoIndicators mark an utterance as a crypto-domain query, a
	// precondition for any whitelist override.
	CryptoIndicators []string

	// AmbiguousTerms request clarification on their own, without matching
	// the banned list.
	AmbiguousTerms []string
}

// Filter gates every inbound utterance before classification. Evaluate is a
// pure function of the utterance and the ruleset; it always returns a
// verdict and never errors, even on empty or malformed input.
type Filter struct {
	rules *Ruleset
}

func NewFilter(rules *Ruleset) *Filter {
	if rules == nil {
		rules = DefaultRuleset()
	}
	return &Filter{rules: rules}
}

// Evaluate applies the checks in fixed order: exact/substring ban match
// (fail-closed, subject to the whitelist override), then fuzzy similarity
// against the banned list (fail-open to AMBIGUOUS), then the standalone
// ambiguous-term list, then ALLOWED.
func (f *Filter) Evaluate(utterance string) domain.SafetyVerdict {
	text := strings.ToLower(utterance)
	if strings.TrimSpace(text) == "" {
		return domain.SafetyVerdict{Status: domain.SafetyAllowed}
	}

	cryptoContext := f.hasCryptoContext(text)

	if verdict, hit := f.exactMatch(text, cryptoContext); hit {
		return verdict
	}
	if verdict, hit := f.fuzzyMatch(text, cryptoContext); hit {
		return verdict
	}
	for _, term := range f.rules.AmbiguousTerms {
		if containsWord(text, term) {
			return domain.SafetyVerdict{
				Status:      domain.SafetyAmbiguous,
				MatchedTerm: term,
			}
		}
	}
	return domain.SafetyVerdict{Status: domain.SafetyAllowed}
}

func (f *Filter) exactMatch(text string, cryptoContext bool) (domain.SafetyVerdict, bool) {
	for _, category := range orderedCategories(f.rules.Banned) {
		for _, phrase := range f.rules.Banned[category] {
			if !strings.Contains(text, phrase) {
				continue
			}
			if f.whitelisted(phrase, text, cryptoContext) {
				continue
			}
			return domain.SafetyVerdict{
				Status:      domain.SafetyRejected,
				MatchedTerm: phrase,
				Category:    category,
				Similarity:  1.0,
			}, true
		}
	}
	return domain.SafetyVerdict{}, false
}

func (f *Filter) fuzzyMatch(text string, cryptoContext bool) (domain.SafetyVerdict, bool) {
	var tokens []string
	for _, token := range tokenize(text) {
		if f.exemptToken(token) {
			continue
		}
		tokens = append(tokens, token)
	}
	for _, category := range orderedCategories(f.rules.Banned) {
		for _, phrase := range f.rules.Banned[category] {
			for _, token := range tokens {
				sim := similarity(phrase, token)
				if sim < FuzzyThreshold {
					continue
				}
				if f.whitelisted(phrase, text, cryptoContext) {
					continue
				}
				return domain.SafetyVerdict{
					Status:      domain.SafetyAmbiguous,
					MatchedTerm: phrase,
					Category:    category,
					Similarity:  sim,
				}, true
			}
		}
	}
	return domain.SafetyVerdict{}, false
}

// exemptToken excludes recognized crypto vocabulary from fuzzy matching.
// Coin names sit one edit away from several banned joke tickers ("bitcoin"
// vs "titcoin"), so a token that resolves to a known coin or is itself an
// indicator never counts as a near-miss spelling.
func (f *Filter) exemptToken(token string) bool {
	if _, ok := domain.ResolveTicker(token); ok {
		return true
	}
	if _, ok := f.rules.Whitelist[token]; ok {
		return true
	}
	for _, indicator := range f.rules.CryptoIndicators {
		if token == indicator {
			return true
		}
	}
	return false
}

// whitelisted reports whether a banned-term hit should be downgraded:
// the term is crypto vocabulary, the utterance is a crypto query, and
// security/analysis context co-occurs.
func (f *Filter) whitelisted(phrase, text string, cryptoContext bool) bool {
	if !cryptoContext {
		return false
	}
	if _, ok := f.rules.Whitelist[phrase]; !ok {
		return false
	}
	for _, ctx := range f.rules.WhitelistContext {
		if strings.Contains(text, ctx) {
			return true
		}
	}
	return false
}

func (f *Filter) hasCryptoContext(text string) bool {
	for _, indicator := range f.rules.CryptoIndicators {
		if strings.Contains(text, indicator) {
			return true
		}
	}
	return false
}

// similarity is the normalized Levenshtein ratio 1 - dist/maxlen. Chosen over
// token-set overlap because banned terms are single phrases and the target is
// catching near-miss spellings of individual words.
func similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	dist := levenshtein.ComputeDistance(a, b)
	if dist >= longest {
		return 0
	}
	return 1 - float64(dist)/float64(longest)
}

func tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9')
	})
}

func containsWord(text, word string) bool {
	for _, token := range tokenize(text) {
		if token == word {
			return true
		}
	}
	return false
}
