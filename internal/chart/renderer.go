package chart

import (
	"fmt"
	"strings"

	"naomi/internal/domain"
)

// Renderer produces the compact emoji charts embedded in replies. Sections
// with no data are omitted rather than rendered empty.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render builds the chart block for whatever data the turn gathered. Any
// argument may be nil.
func (r *Renderer) Render(details *domain.CoinDetails, flow *domain.SmartMoneyFlow, sentiment *domain.SocialSentiment) string {
	var sections []string

	if details != nil {
		sections = append(sections, priceSection(details))
	}
	if flow != nil {
		sections = append(sections, flowSection(flow))
	}
	if sentiment != nil {
		sections = append(sections, sentimentSection(sentiment))
	}

	if len(sections) == 0 {
		return "📊 Charts: Data unavailable"
	}
	return strings.Join(sections, "\n\n")
}

func priceSection(details *domain.CoinDetails) string {
	lines := []string{"📈 Price Performance:"}
	for _, row := range []struct {
		label string
		pct   float64
	}{
		{"24h", details.Change24hPct},
		{"7d", details.Change7dPct},
		{"30d", details.Change30dPct},
	} {
		lines = append(lines, fmt.Sprintf("%-4s %s %+.2f%%", row.label+":", trendDot(row.pct), row.pct))
	}
	return strings.Join(lines, "\n")
}

func flowSection(flow *domain.SmartMoneyFlow) string {
	lines := []string{"💰 Smart Money Flow:"}
	for _, row := range []struct {
		label  string
		window *domain.SmartMoneyWindow
	}{
		{"24h", flow.Flow24h},
		{"7d", flow.Flow7d},
		{"30d", flow.Flow30d},
	} {
		if row.window == nil {
			continue
		}
		lines = append(lines, fmt.Sprintf("%-4s %s %s (%d traders)",
			row.label+":", trendDot(row.window.NetFlowUSD), formatUSD(row.window.NetFlowUSD), row.window.TraderCount))
	}
	if len(lines) == 1 {
		lines = append(lines, "No recent flow data")
	}
	return strings.Join(lines, "\n")
}

func sentimentSection(sentiment *domain.SocialSentiment) string {
	lines := []string{"📱 Social Sentiment:"}
	switch sentiment.Mood {
	case "positive":
		lines = append(lines, "🟢 Bullish community sentiment")
	case "negative":
		lines = append(lines, "🔴 Bearish community sentiment")
	default:
		lines = append(lines, "⚪ Neutral community sentiment")
	}
	return strings.Join(lines, "\n")
}

func trendDot(v float64) string {
	switch {
	case v > 0:
		return "🟢"
	case v < 0:
		return "🔴"
	default:
		return "⚪"
	}
}

func formatUSD(v float64) string {
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
