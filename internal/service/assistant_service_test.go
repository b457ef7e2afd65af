package service

import (
	"context"
	"strings"
	"sync"
	"testing"

	"naomi/internal/domain"
	"naomi/internal/provider"

	"go.opentelemetry.io/otel/trace"
)

type stubFilter struct {
	verdict domain.SafetyVerdict
}

func (s *stubFilter) Evaluate(string) domain.SafetyVerdict { return s.verdict }

type stubClassifier struct {
	cls domain.Classification
}

func (s *stubClassifier) Classify(string, *domain.ConversationContext) domain.Classification {
	return s.cls
}

type stubSessions struct {
	history  domain.ConversationContext
	appended []domain.ConversationTurn
	resets   []string
}

func (s *stubSessions) Context(string) domain.ConversationContext { return s.history }
func (s *stubSessions) Append(_ string, turns ...domain.ConversationTurn) {
	s.appended = append(s.appended, turns...)
}
func (s *stubSessions) Reset(sessionID string) { s.resets = append(s.resets, sessionID) }

type stubTurnRepo struct {
	appended []domain.ConversationTurn
	deleted  []string
}

func (s *stubTurnRepo) AppendTurn(_ context.Context, _ string, turn domain.ConversationTurn) error {
	s.appended = append(s.appended, turn)
	return nil
}

func (s *stubTurnRepo) DeleteSession(_ context.Context, sessionID string) error {
	s.deleted = append(s.deleted, sessionID)
	return nil
}

type stubMarket struct {
	mu      sync.Mutex
	details map[string]*domain.CoinDetails
	err     error
	calls   []string
}

func (s *stubMarket) GetCoinDetails(_ context.Context, symbol string) (*domain.CoinDetails, error) {
	s.mu.Lock()
	s.calls = append(s.calls, symbol)
	s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	d, ok := s.details[symbol]
	if !ok {
		return nil, provider.ErrNotFound
	}
	return d, nil
}

type stubSmartMoney struct {
	mu    sync.Mutex
	flow  *domain.SmartMoneyFlow
	err   error
	calls []string
}

func (s *stubSmartMoney) GetSmartMoneyFlow(_ context.Context, symbol string) (*domain.SmartMoneyFlow, error) {
	s.mu.Lock()
	s.calls = append(s.calls, symbol)
	s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return s.flow, nil
}

type stubSentiment struct {
	mu        sync.Mutex
	sentiment *domain.SocialSentiment
	err       error
	calls     []string
}

func (s *stubSentiment) GetSocialSentiment(_ context.Context, symbol string) (*domain.SocialSentiment, error) {
	s.mu.Lock()
	s.calls = append(s.calls, symbol)
	s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return s.sentiment, nil
}

type stubLLM struct {
	enabled    bool
	out        string
	err        error
	lastSystem string
	lastUser   string
}

func (s *stubLLM) Enabled() bool { return s.enabled }

func (s *stubLLM) Complete(_ context.Context, system string, _ []domain.ConversationTurn, user string) (string, error) {
	s.lastSystem = system
	s.lastUser = user
	if s.err != nil {
		return "", s.err
	}
	return s.out, nil
}

type stubCharts struct {
	out string
}

func (s *stubCharts) Render(*domain.CoinDetails, *domain.SmartMoneyFlow, *domain.SocialSentiment) string {
	return s.out
}

type assistantFixture struct {
	svc        *AssistantService
	filter     *stubFilter
	classifier *stubClassifier
	sessions   *stubSessions
	turns      *stubTurnRepo
	market     *stubMarket
	smartMoney *stubSmartMoney
	sentiment  *stubSentiment
	llm        *stubLLM
}

func newAssistantFixture() *assistantFixture {
	f := &assistantFixture{
		filter:     &stubFilter{verdict: domain.SafetyVerdict{Status: domain.SafetyAllowed}},
		classifier: &stubClassifier{},
		sessions:   &stubSessions{},
		turns:      &stubTurnRepo{},
		market:     &stubMarket{details: map[string]*domain.CoinDetails{}},
		smartMoney: &stubSmartMoney{},
		sentiment:  &stubSentiment{},
		llm:        &stubLLM{},
	}
	f.svc = NewAssistantService(
		trace.NewNoopTracerProvider().Tracer("test"),
		f.filter, f.classifier, f.sessions, f.turns,
		f.market, f.smartMoney, f.sentiment, f.llm,
		&stubCharts{out: "charts"}, 2,
	)
	return f
}

func btcDetails() *domain.CoinDetails {
	return &domain.CoinDetails{
		CoinID:       "bitcoin",
		Symbol:       "BTC",
		Name:         "Bitcoin",
		PriceUSD:     65000,
		MarketCapUSD: 1_280_000_000,
		Change24hPct: 2.5,
		Change7dPct:  -1.2,
		Change30dPct: 10.4,
	}
}

func TestAskRejectedMessageShortCircuits(t *testing.T) {
	f := newAssistantFixture()
	f.filter.verdict = domain.SafetyVerdict{
		Status:      domain.SafetyRejected,
		MatchedTerm: "bad phrase",
		Category:    "violence_illegal",
	}

	reply, err := f.svc.Ask(context.Background(), "s1", "something awful")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.Verdict.Status != domain.SafetyRejected {
		t.Fatalf("expected rejected verdict, got %s", reply.Verdict.Status)
	}
	if !strings.Contains(reply.Text, "safety policies") {
		t.Fatalf("unexpected refusal text: %q", reply.Text)
	}
	if len(f.sessions.appended) != 0 || len(f.turns.appended) != 0 {
		t.Fatal("rejected message must not be recorded")
	}
	if len(f.market.calls) != 0 {
		t.Fatal("rejected message must not reach providers")
	}
}

func TestAskAmbiguousMessageAsksForClarification(t *testing.T) {
	f := newAssistantFixture()
	f.filter.verdict = domain.SafetyVerdict{Status: domain.SafetyAmbiguous, MatchedTerm: "nsfw"}

	reply, err := f.svc.Ask(context.Background(), "s1", "nsfw stuff")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.Verdict.Status != domain.SafetyAmbiguous {
		t.Fatalf("expected ambiguous verdict, got %s", reply.Verdict.Status)
	}
	if !strings.Contains(reply.Text, "clarify") {
		t.Fatalf("unexpected clarification text: %q", reply.Text)
	}
	if len(f.sessions.appended) != 0 {
		t.Fatal("ambiguous message must not be recorded")
	}
}

func TestAskEmptyMessageFails(t *testing.T) {
	f := newAssistantFixture()
	if _, err := f.svc.Ask(context.Background(), "s1", "   "); err == nil {
		t.Fatal("expected error for empty message")
	}
}

func TestAskGreetingWithoutLLM(t *testing.T) {
	f := newAssistantFixture()
	f.classifier.cls = domain.Classification{Intent: domain.IntentGeneralChat}

	reply, err := f.svc.Ask(context.Background(), "s1", "hey there")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(reply.Text, "Naomi") {
		t.Fatalf("expected canned greeting, got %q", reply.Text)
	}
	if len(f.market.calls) != 0 {
		t.Fatal("chat must not dispatch providers")
	}
	if len(f.sessions.appended) != 2 {
		t.Fatalf("expected 2 recorded turns, got %d", len(f.sessions.appended))
	}
	if f.sessions.appended[0].Role != "user" || f.sessions.appended[1].Role != "assistant" {
		t.Fatalf("unexpected turn roles: %s, %s", f.sessions.appended[0].Role, f.sessions.appended[1].Role)
	}
	if len(f.turns.appended) != 2 {
		t.Fatalf("expected 2 persisted turns, got %d", len(f.turns.appended))
	}
}

func TestAskPriceQueryBuildsSummary(t *testing.T) {
	f := newAssistantFixture()
	f.market.details["BTC"] = btcDetails()
	f.classifier.cls = domain.Classification{
		Intent:  domain.IntentPriceQuery,
		Symbols: []domain.SymbolCandidate{{Symbol: "BTC", Provenance: domain.ProvenanceKeywordMatch}},
	}

	reply, err := f.svc.Ask(context.Background(), "s1", "what's the price of bitcoin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(reply.Text, "Bitcoin (BTC) is trading at $65000.00") {
		t.Fatalf("summary missing price line: %q", reply.Text)
	}
	if !strings.Contains(reply.Text, "24h: +2.50%") {
		t.Fatalf("summary missing 24h change: %q", reply.Text)
	}
	if len(f.smartMoney.calls) != 0 || len(f.sentiment.calls) != 0 {
		t.Fatal("price query must only hit the market provider")
	}
	if reply.Intent != domain.IntentPriceQuery {
		t.Fatalf("unexpected intent: %s", reply.Intent)
	}
	if len(reply.Symbols) != 1 || reply.Symbols[0] != "BTC" {
		t.Fatalf("unexpected symbols: %v", reply.Symbols)
	}
	if reply.Charts != "charts" {
		t.Fatalf("expected rendered charts, got %q", reply.Charts)
	}
	if f.sessions.appended[0].Intent != domain.IntentPriceQuery || f.sessions.appended[0].Symbol != "BTC" {
		t.Fatalf("user turn missing classification: %+v", f.sessions.appended[0])
	}
}

func TestAskPerformanceQueryUsesTimeframe(t *testing.T) {
	f := newAssistantFixture()
	f.market.details["BTC"] = btcDetails()
	f.classifier.cls = domain.Classification{
		Intent:    domain.IntentPerformanceQuery,
		Symbols:   []domain.SymbolCandidate{{Symbol: "BTC", Provenance: domain.ProvenanceKeywordMatch}},
		Timeframe: domain.Timeframe7d,
	}

	reply, err := f.svc.Ask(context.Background(), "s1", "btc performance last week")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(reply.Text, "-1.20% over the last 7d") {
		t.Fatalf("summary missing 7d change: %q", reply.Text)
	}
}

func TestAskGeneralCryptoDegradesOnProviderFailure(t *testing.T) {
	f := newAssistantFixture()
	f.market.details["BTC"] = btcDetails()
	f.smartMoney.err = provider.ErrUnavailable
	f.sentiment.sentiment = &domain.SocialSentiment{
		Symbol:  "BTC",
		Summary: "12 recent tweets analyzed.",
		Mood:    "positive",
	}
	f.classifier.cls = domain.Classification{
		Intent:  domain.IntentGeneralCrypto,
		Symbols: []domain.SymbolCandidate{{Symbol: "BTC", Provenance: domain.ProvenanceKeywordMatch}},
	}

	reply, err := f.svc.Ask(context.Background(), "s1", "tell me about bitcoin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(reply.Text, "Bitcoin (BTC) is trading at") {
		t.Fatalf("summary missing price section: %q", reply.Text)
	}
	if !strings.Contains(reply.Text, "positive") {
		t.Fatalf("summary missing sentiment section: %q", reply.Text)
	}
	if len(f.smartMoney.calls) != 1 {
		t.Fatalf("expected one smart money attempt, got %d", len(f.smartMoney.calls))
	}
}

func TestAskOnchainQueryFetchesFlow(t *testing.T) {
	f := newAssistantFixture()
	f.market.details["ETH"] = &domain.CoinDetails{Symbol: "ETH", Name: "Ethereum", PriceUSD: 3200}
	f.smartMoney.flow = &domain.SmartMoneyFlow{
		Symbol:  "ETH",
		Flow24h: &domain.SmartMoneyWindow{NetFlowUSD: -900_000, TraderCount: 17},
	}
	f.classifier.cls = domain.Classification{
		Intent:  domain.IntentOnchainAnalysis,
		Symbols: []domain.SymbolCandidate{{Symbol: "ETH", Provenance: domain.ProvenanceKeywordMatch}},
	}

	reply, err := f.svc.Ask(context.Background(), "s1", "eth smart money flow")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(reply.Text, "24h net flow $-900.00K across 17 traders") {
		t.Fatalf("summary missing flow line: %q", reply.Text)
	}
	if len(f.sentiment.calls) != 0 {
		t.Fatal("onchain query must not hit the sentiment provider")
	}
}

func TestAskSynthesizesWithLLM(t *testing.T) {
	f := newAssistantFixture()
	f.market.details["BTC"] = btcDetails()
	f.llm.enabled = true
	f.llm.out = "BTC is holding up nicely, anon."
	f.classifier.cls = domain.Classification{
		Intent:  domain.IntentPriceQuery,
		Symbols: []domain.SymbolCandidate{{Symbol: "BTC", Provenance: domain.ProvenanceKeywordMatch}},
	}

	reply, err := f.svc.Ask(context.Background(), "s1", "btc price?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.Text != "BTC is holding up nicely, anon." {
		t.Fatalf("expected llm output, got %q", reply.Text)
	}
	if !strings.Contains(f.llm.lastUser, "Market data:") {
		t.Fatalf("llm prompt missing data summary: %q", f.llm.lastUser)
	}
	if !strings.Contains(f.llm.lastSystem, "Naomi") {
		t.Fatalf("llm system prompt missing persona: %q", f.llm.lastSystem)
	}
}

func TestAskFallsBackWhenLLMFails(t *testing.T) {
	f := newAssistantFixture()
	f.market.details["BTC"] = btcDetails()
	f.llm.enabled = true
	f.llm.err = provider.ErrUnavailable
	f.classifier.cls = domain.Classification{
		Intent:  domain.IntentPriceQuery,
		Symbols: []domain.SymbolCandidate{{Symbol: "BTC", Provenance: domain.ProvenanceKeywordMatch}},
	}

	reply, err := f.svc.Ask(context.Background(), "s1", "btc price?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(reply.Text, "Bitcoin (BTC) is trading at") {
		t.Fatalf("expected data summary fallback, got %q", reply.Text)
	}
}

func TestAskAppendsDisclaimerForAdviceQuestions(t *testing.T) {
	f := newAssistantFixture()
	f.market.details["BTC"] = btcDetails()
	f.classifier.cls = domain.Classification{
		Intent:  domain.IntentGeneralCrypto,
		Symbols: []domain.SymbolCandidate{{Symbol: "BTC", Provenance: domain.ProvenanceKeywordMatch}},
	}

	reply, err := f.svc.Ask(context.Background(), "s1", "should I buy bitcoin right now?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reply.Disclaimer {
		t.Fatal("expected disclaimer flag")
	}
	if !strings.Contains(reply.Text, "not financial advice") {
		t.Fatalf("expected disclaimer text, got %q", reply.Text)
	}
}

func TestAskCapsSymbolFanOut(t *testing.T) {
	f := newAssistantFixture()
	for _, s := range []string{"BTC", "ETH", "SOL", "ADA"} {
		d := btcDetails()
		d.Symbol = s
		f.market.details[s] = d
	}
	f.classifier.cls = domain.Classification{
		Intent: domain.IntentPriceQuery,
		Symbols: []domain.SymbolCandidate{
			{Symbol: "BTC"}, {Symbol: "ETH"}, {Symbol: "SOL"}, {Symbol: "ADA"},
		},
	}

	reply, err := f.svc.Ask(context.Background(), "s1", "prices for btc eth sol ada")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reply.Symbols) != 3 {
		t.Fatalf("expected symbol cap of 3, got %v", reply.Symbols)
	}
	if len(f.market.calls) != 3 {
		t.Fatalf("expected 3 market fetches, got %d", len(f.market.calls))
	}
}

func TestAskUnknownSymbolStillReplies(t *testing.T) {
	f := newAssistantFixture()
	f.classifier.cls = domain.Classification{
		Intent:  domain.IntentPriceQuery,
		Symbols: []domain.SymbolCandidate{{Symbol: "WIBBLECOIN", Provenance: domain.ProvenanceLastWord}},
	}

	reply, err := f.svc.Ask(context.Background(), "s1", "price of wibblecoin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.Text == "" {
		t.Fatal("expected a fallback reply")
	}
}

func TestAnalyzeCoin(t *testing.T) {
	f := newAssistantFixture()
	f.market.details["BTC"] = btcDetails()
	f.smartMoney.flow = &domain.SmartMoneyFlow{Symbol: "BTC"}
	f.sentiment.sentiment = &domain.SocialSentiment{Symbol: "BTC", Mood: "neutral"}

	analysis, err := f.svc.AnalyzeCoin(context.Background(), "bitcoin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if analysis.Symbol != "BTC" {
		t.Fatalf("expected resolved symbol BTC, got %s", analysis.Symbol)
	}
	if analysis.Details == nil || analysis.SmartMoney == nil || analysis.Sentiment == nil {
		t.Fatal("expected all sources populated")
	}
	if analysis.Charts != "charts" {
		t.Fatalf("expected rendered charts, got %q", analysis.Charts)
	}
}

func TestAnalyzeCoinNotFound(t *testing.T) {
	f := newAssistantFixture()
	f.smartMoney.err = provider.ErrNotFound
	f.sentiment.err = provider.ErrNotFound

	if _, err := f.svc.AnalyzeCoin(context.Background(), "WIBBLECOIN"); err == nil {
		t.Fatal("expected not found error")
	}
}

func TestResetSession(t *testing.T) {
	f := newAssistantFixture()
	if err := f.svc.ResetSession(context.Background(), "s1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.sessions.resets) != 1 || f.sessions.resets[0] != "s1" {
		t.Fatalf("expected session reset, got %v", f.sessions.resets)
	}
	if len(f.turns.deleted) != 1 || f.turns.deleted[0] != "s1" {
		t.Fatalf("expected persisted history delete, got %v", f.turns.deleted)
	}
}
