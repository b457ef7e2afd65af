package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"sync"
	"time"

	"naomi/internal/domain"
	"naomi/internal/provider"

	"go.opentelemetry.io/otel/trace"
)

const (
	defaultMaxParallel = 4
	maxSymbolsPerAsk   = 3

	refusalText       = "Content violates safety policies. I keep things strictly crypto, so let's talk markets instead."
	clarificationText = "Could you please clarify your question? I'm here to help with crypto-related topics!"
	disclaimerText    = "\n\n⚠️ Disclaimer: This is not financial advice. Naomi provides factual insights and data only. Always do your own research before making investment decisions!"

	greetingText = "Hey! Naomi here, your Gen Z crypto analyst from Insight Labs AI. Got a coin or trend you want to dig into?"

	personaPrompt = `You are Naomi, a sharp-witted, Gen Z crypto market analyst created by Insight Labs AI. You are confident and you ALWAYS back up your sass with hard data, but never mention the data vendors or models working behind the scenes.

When market data is provided with a question, synthesize it:
- Always include current price and performance metrics (24h, 7d, 30d) when available
- Interpret smart money flows: positive flows = buying, negative flows = selling
- Correlate price movements with smart money behavior and social sentiment
- Use your signature Gen Z style: confident, witty, and data-driven

Historical context (1h, 24h, 7d, 30d) is crucial for momentum. Don't just report numbers, interpret them. Never give financial advice; stick to what the data says.`
)

var advicePattern = regexp.MustCompile(`(?i)should i (buy|sell|hold|invest|ape|dca|fomo|exit|enter|cash out|take profit)|is (it|this|that|[a-z0-9$]+) (a good (buy|investment|idea)|worth|safe|risky|legit|legitimate|a scam|a rug|a ponzi)|would you (buy|sell|hold|invest)|do you recommend`)

type SafetyFilter interface {
	Evaluate(utterance string) domain.SafetyVerdict
}

type IntentClassifier interface {
	Classify(utterance string, ctx *domain.ConversationContext) domain.Classification
}

type MarketDataProvider interface {
	GetCoinDetails(ctx context.Context, symbol string) (*domain.CoinDetails, error)
}

type SmartMoneyProvider interface {
	GetSmartMoneyFlow(ctx context.Context, symbol string) (*domain.SmartMoneyFlow, error)
}

type SentimentProvider interface {
	GetSocialSentiment(ctx context.Context, symbol string) (*domain.SocialSentiment, error)
}

type LLMClient interface {
	Enabled() bool
	Complete(ctx context.Context, system string, history []domain.ConversationTurn, user string) (string, error)
}

type SessionStore interface {
	Context(sessionID string) domain.ConversationContext
	Append(sessionID string, turns ...domain.ConversationTurn)
	Reset(sessionID string)
}

type TurnRepository interface {
	AppendTurn(ctx context.Context, sessionID string, turn domain.ConversationTurn) error
	DeleteSession(ctx context.Context, sessionID string) error
}

type ChartRenderer interface {
	Render(details *domain.CoinDetails, flow *domain.SmartMoneyFlow, sentiment *domain.SocialSentiment) string
}

// symbolData is everything fetched for one symbol during a single ask.
type symbolData struct {
	symbol    string
	details   *domain.CoinDetails
	flow      *domain.SmartMoneyFlow
	sentiment *domain.SocialSentiment
}

type AssistantService struct {
	tracer      trace.Tracer
	filter      SafetyFilter
	classifier  IntentClassifier
	sessions    SessionStore
	turns       TurnRepository
	market      MarketDataProvider
	smartMoney  SmartMoneyProvider
	sentiment   SentimentProvider
	llm         LLMClient
	charts      ChartRenderer
	maxParallel int
}

func NewAssistantService(
	tracer trace.Tracer,
	filter SafetyFilter,
	classifier IntentClassifier,
	sessions SessionStore,
	turns TurnRepository,
	market MarketDataProvider,
	smartMoney SmartMoneyProvider,
	sentiment SentimentProvider,
	llm LLMClient,
	charts ChartRenderer,
	maxParallel int,
) *AssistantService {
	if maxParallel <= 0 {
		maxParallel = defaultMaxParallel
	}
	return &AssistantService{
		tracer:      tracer,
		filter:      filter,
		classifier:  classifier,
		sessions:    sessions,
		turns:       turns,
		market:      market,
		smartMoney:  smartMoney,
		sentiment:   sentiment,
		llm:         llm,
		charts:      charts,
		maxParallel: maxParallel,
	}
}

// Ask runs one message through the full pipeline: safety gate, intent
// classification, data fan-out, chart rendering and response synthesis.
// Rejected and ambiguous messages short-circuit and are never recorded
// into the session history.
func (s *AssistantService) Ask(ctx context.Context, sessionID, message string) (*domain.Reply, error) {
	ctx, span := s.tracer.Start(ctx, "assistant-service.ask")
	defer span.End()

	message = strings.TrimSpace(message)
	if message == "" {
		return nil, fmt.Errorf("empty message")
	}

	verdict := s.filter.Evaluate(message)
	switch verdict.Status {
	case domain.SafetyRejected:
		return &domain.Reply{Text: refusalText, Verdict: verdict}, nil
	case domain.SafetyAmbiguous:
		return &domain.Reply{Text: clarificationText, Verdict: verdict}, nil
	}

	history := s.sessions.Context(sessionID)
	classification := s.classifier.Classify(message, &history)

	var reply *domain.Reply
	if classification.Intent == domain.IntentGeneralChat {
		reply = s.chatReply(ctx, message, history.Turns, verdict, classification)
	} else {
		reply = s.dataReply(ctx, message, history.Turns, verdict, classification)
	}

	s.record(ctx, sessionID, message, classification, reply)
	return reply, nil
}

// Classify exposes classification without dispatching providers.
func (s *AssistantService) Classify(sessionID, message string) domain.Classification {
	history := s.sessions.Context(sessionID)
	return s.classifier.Classify(message, &history)
}

func (s *AssistantService) CheckSafety(message string) domain.SafetyVerdict {
	return s.filter.Evaluate(message)
}

// AnalyzeCoin fetches the full data picture for one symbol regardless of
// intent. Used by the analysis endpoint and tooling surfaces.
func (s *AssistantService) AnalyzeCoin(ctx context.Context, symbol string) (*domain.CoinAnalysis, error) {
	ctx, span := s.tracer.Start(ctx, "assistant-service.analyze-coin")
	defer span.End()

	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, fmt.Errorf("empty symbol")
	}
	if ticker, ok := domain.ResolveTicker(symbol); ok {
		symbol = ticker
	}
	if v := s.filter.Evaluate(symbol); v.Status == domain.SafetyRejected {
		return nil, fmt.Errorf("symbol rejected by safety filter")
	}

	data := s.fetchSymbol(ctx, symbol, domain.IntentGeneralCrypto)
	if data.details == nil && data.flow == nil && data.sentiment == nil {
		return nil, provider.ErrNotFound
	}
	return &domain.CoinAnalysis{
		Symbol:     symbol,
		Details:    data.details,
		SmartMoney: data.flow,
		Sentiment:  data.sentiment,
		Charts:     s.charts.Render(data.details, data.flow, data.sentiment),
	}, nil
}

// ResetSession clears both the in-memory window and the persisted history.
func (s *AssistantService) ResetSession(ctx context.Context, sessionID string) error {
	s.sessions.Reset(sessionID)
	if s.turns == nil {
		return nil
	}
	return s.turns.DeleteSession(ctx, sessionID)
}

func (s *AssistantService) chatReply(ctx context.Context, message string, history []domain.ConversationTurn, verdict domain.SafetyVerdict, cls domain.Classification) *domain.Reply {
	text := greetingText
	if s.llm != nil && s.llm.Enabled() {
		if out, err := s.llm.Complete(ctx, personaPrompt, history, message); err == nil {
			text = out
		} else {
			log.Printf("llm completion failed, using canned greeting: %v", err)
		}
	}
	return &domain.Reply{Text: text, Verdict: verdict, Intent: cls.Intent}
}

func (s *AssistantService) dataReply(ctx context.Context, message string, history []domain.ConversationTurn, verdict domain.SafetyVerdict, cls domain.Classification) *domain.Reply {
	symbols := make([]string, 0, maxSymbolsPerAsk)
	for _, c := range cls.Symbols {
		symbols = append(symbols, c.Symbol)
		if len(symbols) == maxSymbolsPerAsk {
			break
		}
	}

	results := s.fetchAll(ctx, symbols, cls.Intent)

	summary := buildSummary(cls, results)
	charts := ""
	if len(results) > 0 {
		charts = s.charts.Render(results[0].details, results[0].flow, results[0].sentiment)
	}

	text := summary
	if s.llm != nil && s.llm.Enabled() && summary != "" {
		user := message + "\n\nMarket data:\n" + summary
		if out, err := s.llm.Complete(ctx, personaPrompt, history, user); err == nil {
			text = out
		} else {
			log.Printf("llm completion failed, falling back to data summary: %v", err)
		}
	}
	if text == "" {
		text = "I couldn't pull any data for that one. Try a ticker like BTC or ETH?"
	}

	reply := &domain.Reply{
		Text:    text,
		Verdict: verdict,
		Intent:  cls.Intent,
		Symbols: symbols,
		Charts:  charts,
	}
	if advicePattern.MatchString(message) {
		reply.Text += disclaimerText
		reply.Disclaimer = true
	}
	return reply
}

// fetchAll runs the per-symbol fetches with at most maxParallel in flight.
func (s *AssistantService) fetchAll(ctx context.Context, symbols []string, intent domain.Intent) []symbolData {
	results := make([]symbolData, len(symbols))
	sem := make(chan struct{}, s.maxParallel)
	var wg sync.WaitGroup
	for i, symbol := range symbols {
		wg.Add(1)
		go func(i int, symbol string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[i] = s.fetchSymbol(ctx, symbol, intent)
		}(i, symbol)
	}
	wg.Wait()

	kept := results[:0]
	for _, r := range results {
		if r.details != nil || r.flow != nil || r.sentiment != nil {
			kept = append(kept, r)
		}
	}
	return kept
}

// fetchSymbol pulls only the sources the intent needs. Provider failures
// degrade to partial data rather than failing the whole reply.
func (s *AssistantService) fetchSymbol(ctx context.Context, symbol string, intent domain.Intent) symbolData {
	data := symbolData{symbol: symbol}

	needFlow := intent == domain.IntentOnchainAnalysis || intent == domain.IntentGeneralCrypto
	needSentiment := intent == domain.IntentSocialSentiment || intent == domain.IntentGeneralCrypto

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		details, err := s.market.GetCoinDetails(ctx, symbol)
		if err != nil {
			logProviderError("market data", symbol, err)
			return
		}
		data.details = details
	}()
	if needFlow && s.smartMoney != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			flow, err := s.smartMoney.GetSmartMoneyFlow(ctx, symbol)
			if err != nil {
				logProviderError("smart money", symbol, err)
				return
			}
			data.flow = flow
		}()
	}
	if needSentiment && s.sentiment != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sent, err := s.sentiment.GetSocialSentiment(ctx, symbol)
			if err != nil {
				logProviderError("sentiment", symbol, err)
				return
			}
			data.sentiment = sent
		}()
	}
	wg.Wait()
	return data
}

func logProviderError(source, symbol string, err error) {
	if errors.Is(err, provider.ErrNotFound) || errors.Is(err, provider.ErrUnavailable) {
		return
	}
	log.Printf("%s fetch failed for %s: %v", source, symbol, err)
}

// buildSummary renders a focused plain-text answer for the classified
// intent. It doubles as the final reply when no LLM is configured.
func buildSummary(cls domain.Classification, results []symbolData) string {
	var b strings.Builder
	for _, r := range results {
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		switch cls.Intent {
		case domain.IntentPriceQuery:
			writePriceSummary(&b, r)
		case domain.IntentPerformanceQuery:
			writePerformanceSummary(&b, r, cls.Timeframe)
		case domain.IntentOnchainAnalysis:
			writeFlowSummary(&b, r)
		case domain.IntentSocialSentiment:
			writeSentimentSummary(&b, r)
		default:
			writePriceSummary(&b, r)
			if r.flow != nil {
				b.WriteString("\n")
				writeFlowSummary(&b, r)
			}
			if r.sentiment != nil {
				b.WriteString("\n")
				writeSentimentSummary(&b, r)
			}
		}
	}
	return b.String()
}

func writePriceSummary(b *strings.Builder, r symbolData) {
	if r.details == nil {
		fmt.Fprintf(b, "%s: price data unavailable right now.", r.symbol)
		return
	}
	d := r.details
	fmt.Fprintf(b, "%s (%s) is trading at %s with a market cap of %s. 24h: %+.2f%%, 7d: %+.2f%%, 30d: %+.2f%%.",
		d.Name, d.Symbol, formatPrice(d.PriceUSD), provider.FormatUSD(d.MarketCapUSD),
		d.Change24hPct, d.Change7dPct, d.Change30dPct)
}

func writePerformanceSummary(b *strings.Builder, r symbolData, tf domain.Timeframe) {
	if r.details == nil {
		fmt.Fprintf(b, "%s: performance data unavailable right now.", r.symbol)
		return
	}
	d := r.details
	if tf == "" {
		tf = domain.Timeframe24h
	}
	fmt.Fprintf(b, "%s (%s) is %+.2f%% over the last %s, currently at %s.",
		d.Name, d.Symbol, changeFor(d, tf), tf, formatPrice(d.PriceUSD))
}

func writeFlowSummary(b *strings.Builder, r symbolData) {
	if r.flow == nil {
		fmt.Fprintf(b, "%s: smart money data unavailable right now.", r.symbol)
		return
	}
	f := r.flow
	fmt.Fprintf(b, "Smart money on %s:", f.Symbol)
	if f.Flow24h != nil {
		fmt.Fprintf(b, " 24h net flow %s across %d traders.", provider.FormatUSD(f.Flow24h.NetFlowUSD), f.Flow24h.TraderCount)
	}
	if f.Flow7d != nil {
		fmt.Fprintf(b, " 7d net flow %s across %d traders.", provider.FormatUSD(f.Flow7d.NetFlowUSD), f.Flow7d.TraderCount)
	}
	if f.Flow30d != nil {
		fmt.Fprintf(b, " 30d net flow %s across %d traders.", provider.FormatUSD(f.Flow30d.NetFlowUSD), f.Flow30d.TraderCount)
	}
	if f.Summary != "" {
		fmt.Fprintf(b, " %s", f.Summary)
	}
}

func writeSentimentSummary(b *strings.Builder, r symbolData) {
	if r.sentiment == nil {
		fmt.Fprintf(b, "%s: social sentiment unavailable right now.", r.symbol)
		return
	}
	sn := r.sentiment
	fmt.Fprintf(b, "Social sentiment on %s is %s. %s", sn.Symbol, sn.Mood, sn.Summary)
	for _, t := range sn.CitedTweets {
		fmt.Fprintf(b, "\n  %s (%s, engagement %d)", t.URL, t.Sentiment, t.Engagement)
	}
}

func changeFor(d *domain.CoinDetails, tf domain.Timeframe) float64 {
	switch tf {
	case domain.Timeframe1h:
		return d.Change1hPct
	case domain.Timeframe7d:
		return d.Change7dPct
	case domain.Timeframe30d:
		return d.Change30dPct
	default:
		return d.Change24hPct
	}
}

func formatPrice(v float64) string {
	if v >= 1 {
		return fmt.Sprintf("$%.2f", v)
	}
	return fmt.Sprintf("$%.6f", v)
}

// record appends both turns to the in-memory window and best-effort
// persists them. Persistence failures are logged, never surfaced.
func (s *AssistantService) record(ctx context.Context, sessionID, message string, cls domain.Classification, reply *domain.Reply) {
	now := time.Now().UTC()
	userTurn := domain.ConversationTurn{
		Role:      "user",
		Content:   message,
		Intent:    cls.Intent,
		Symbol:    cls.PrimarySymbol(),
		CreatedAt: now,
	}
	assistantTurn := domain.ConversationTurn{
		Role:      "assistant",
		Content:   reply.Text,
		CreatedAt: now,
	}
	s.sessions.Append(sessionID, userTurn, assistantTurn)
	if s.turns == nil {
		return
	}
	if err := s.turns.AppendTurn(ctx, sessionID, userTurn); err != nil {
		log.Printf("failed to persist user turn for session %s: %v", sessionID, err)
	}
	if err := s.turns.AppendTurn(ctx, sessionID, assistantTurn); err != nil {
		log.Printf("failed to persist assistant turn for session %s: %v", sessionID, err)
	}
}
