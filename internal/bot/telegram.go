package bot

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"naomi/internal/domain"

	tele "gopkg.in/telebot.v3"
)

const maxTelegramReply = 4000

type Assistant interface {
	Ask(ctx context.Context, sessionID, message string) (*domain.Reply, error)
	AnalyzeCoin(ctx context.Context, symbol string) (*domain.CoinAnalysis, error)
	ResetSession(ctx context.Context, sessionID string) error
}

// StartTelegramBot wires the assistant into a long-polling Telegram bot.
// An empty token disables the bot so local setups without Telegram still run.
func StartTelegramBot(token string, assistant Assistant) *tele.Bot {
	if token == "" {
		log.Println("TELEGRAM_BOT_TOKEN not set, skipping Telegram bot startup")
		return nil
	}
	pref := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := tele.NewBot(pref)
	if err != nil {
		log.Fatalf("failed to create Telegram bot: %v", err)
	}

	b.Handle("/ping", func(c tele.Context) error {
		return c.Send("pong")
	})

	b.Handle("/start", func(c tele.Context) error {
		return c.Send("Hey! Naomi here, your crypto analyst. Ask me anything about the markets, or try /analyze BTC.")
	})

	b.Handle("/help", func(c tele.Context) error {
		return c.Send("Just type a question, e.g. \"what's the price of bitcoin?\"\n\nCommands:\n/ask <question> - same as typing it\n/analyze <symbol> - full data rundown\n/reset - forget this conversation\n/ping - liveness check")
	})

	b.Handle("/ask", func(c tele.Context) error {
		question := strings.TrimSpace(strings.Join(c.Args(), " "))
		if question == "" {
			return c.Send("Usage: /ask what's the price of bitcoin?")
		}
		return handleQuestion(c, assistant, question)
	})

	b.Handle("/analyze", func(c tele.Context) error {
		args := c.Args()
		if len(args) == 0 {
			return c.Send("Usage: /analyze BTC")
		}
		return handleAnalyze(c, assistant, args[0])
	})

	b.Handle("/reset", func(c tele.Context) error {
		if err := assistant.ResetSession(context.Background(), chatSessionID(c)); err != nil {
			log.Printf("session reset failed for chat %d: %v", c.Chat().ID, err)
		}
		return c.Send("Fresh start! What do you want to know?")
	})

	b.Handle(tele.OnText, func(c tele.Context) error {
		text := strings.TrimSpace(c.Text())
		if text == "" {
			return nil
		}
		return handleQuestion(c, assistant, text)
	})

	log.Println("Telegram bot started")
	go b.Start()
	return b
}

func handleQuestion(c tele.Context, assistant Assistant, question string) error {
	_ = c.Notify(tele.Typing)

	reply, err := assistant.Ask(context.Background(), chatSessionID(c), question)
	if err != nil {
		log.Printf("assistant error for chat %d: %v", c.Chat().ID, err)
		return c.Send("Sorry, I'm having trouble right now. Give me a moment and try again.")
	}

	text := reply.Text
	if reply.Charts != "" {
		text += "\n\n" + reply.Charts
	}
	return c.Send(truncateReply(text))
}

func handleAnalyze(c tele.Context, assistant Assistant, symbol string) error {
	_ = c.Notify(tele.Typing)

	analysis, err := assistant.AnalyzeCoin(context.Background(), symbol)
	if err != nil {
		return c.Send(fmt.Sprintf("Couldn't pull data for %s. Try a ticker like BTC or ETH.", strings.ToUpper(symbol)))
	}
	return c.Send(truncateReply(formatAnalysis(analysis)))
}

func formatAnalysis(a *domain.CoinAnalysis) string {
	var b strings.Builder
	if a.Details != nil {
		fmt.Fprintf(&b, "%s (%s)\nPrice: $%.2f\n24h: %+.2f%% | 7d: %+.2f%% | 30d: %+.2f%%",
			a.Details.Name, a.Details.Symbol,
			a.Details.PriceUSD, a.Details.Change24hPct, a.Details.Change7dPct, a.Details.Change30dPct)
	} else {
		b.WriteString(a.Symbol)
	}
	if a.SmartMoney != nil && a.SmartMoney.Summary != "" {
		b.WriteString("\n\n" + a.SmartMoney.Summary)
	}
	if a.Sentiment != nil && a.Sentiment.Summary != "" {
		b.WriteString("\n\n" + a.Sentiment.Summary)
	}
	if a.Charts != "" {
		b.WriteString("\n\n" + a.Charts)
	}
	return b.String()
}

func chatSessionID(c tele.Context) string {
	return fmt.Sprintf("tg:%d", c.Chat().ID)
}

func truncateReply(text string) string {
	if len(text) > maxTelegramReply {
		return text[:maxTelegramReply] + "\n\n[truncated]"
	}
	return text
}
