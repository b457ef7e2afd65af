package bot

import (
	"strings"
	"testing"

	"naomi/internal/domain"
)

func TestStartTelegramBotSkipsWithoutToken(t *testing.T) {
	if b := StartTelegramBot("", nil); b != nil {
		t.Fatal("expected nil bot without a token")
	}
}

func TestFormatAnalysisAllSections(t *testing.T) {
	out := formatAnalysis(&domain.CoinAnalysis{
		Symbol: "BTC",
		Details: &domain.CoinDetails{
			Symbol:       "BTC",
			Name:         "Bitcoin",
			PriceUSD:     65000,
			Change24hPct: 2.5,
			Change7dPct:  -1.2,
			Change30dPct: 10.4,
		},
		SmartMoney: &domain.SmartMoneyFlow{Symbol: "BTC", Summary: "24h: smart money bought $1.50M"},
		Sentiment:  &domain.SocialSentiment{Symbol: "BTC", Summary: "Community is buzzing."},
		Charts:     "charts block",
	})

	for _, want := range []string{
		"Bitcoin (BTC)",
		"Price: $65000.00",
		"24h: +2.50% | 7d: -1.20% | 30d: +10.40%",
		"smart money bought",
		"Community is buzzing.",
		"charts block",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("analysis output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatAnalysisWithoutDetailsFallsBackToSymbol(t *testing.T) {
	out := formatAnalysis(&domain.CoinAnalysis{Symbol: "PEPE"})
	if !strings.HasPrefix(out, "PEPE") {
		t.Fatalf("expected symbol fallback, got %q", out)
	}
}

func TestTruncateReply(t *testing.T) {
	long := strings.Repeat("a", maxTelegramReply+100)
	out := truncateReply(long)
	if !strings.HasSuffix(out, "[truncated]") {
		t.Fatal("expected truncation marker")
	}
	if len(out) >= len(long) {
		t.Fatal("expected shorter output")
	}
	if got := truncateReply("short"); got != "short" {
		t.Fatalf("short replies must pass through, got %q", got)
	}
}
