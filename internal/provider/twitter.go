package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"naomi/internal/cache"
	"naomi/internal/domain"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/trace"
)

const twitterSearchURL = "https://api.twitter.com/2/tweets/search/recent"

// TwitterProvider samples recent tweets mentioning a ticker and scores them
// with a small crypto-tuned lexicon.
type TwitterProvider struct {
	tracer     trace.Tracer
	client     *http.Client
	cache      *redis.Client
	searchURL  string
	bearer     string
	cacheTTL   time.Duration
	maxRetries int
}

func NewTwitterProvider(tracer trace.Tracer, rdb *redis.Client, bearer string, timeout, cacheTTL time.Duration, maxRetries int) *TwitterProvider {
	return &TwitterProvider{
		tracer:     tracer,
		client:     &http.Client{Timeout: timeout},
		cache:      rdb,
		searchURL:  twitterSearchURL,
		bearer:     bearer,
		cacheTTL:   cacheTTL,
		maxRetries: maxRetries,
	}
}

var positiveWords = []string{
	"bullish", "moon", "pump", "ath", "gains", "buy", "undervalued",
	"breakout", "rally", "surge", "adoption", "partnership", "upgrade",
	"strong", "winning", "lfg", "wagmi", "great", "love", "best",
}

var negativeWords = []string{
	"bearish", "dump", "crash", "rekt", "rug", "scam", "sell",
	"overvalued", "bleeding", "down", "weak", "dead", "fear",
	"capitulation", "ngmi", "bad", "worst", "avoid", "warning",
}

type twitterResponse struct {
	Data []struct {
		ID            string `json:"id"`
		Text          string `json:"text"`
		PublicMetrics struct {
			LikeCount    int `json:"like_count"`
			RetweetCount int `json:"retweet_count"`
		} `json:"public_metrics"`
	} `json:"data"`
}

// GetSocialSentiment aggregates up to 50 recent tweets. No relevant tweets
// is ErrNotFound, not an empty report.
func (p *TwitterProvider) GetSocialSentiment(ctx context.Context, symbol string) (*domain.SocialSentiment, error) {
	ctx, span := p.tracer.Start(ctx, "twitter.get-social-sentiment")
	defer span.End()

	ticker := strings.ToUpper(strings.TrimSpace(symbol))
	if ticker == "" {
		return nil, ErrNotFound
	}
	if p.bearer == "" {
		return nil, ErrUnavailable
	}

	cacheKey := "twitter:sentiment:" + ticker
	var cached domain.SocialSentiment
	if hit, err := cache.GetJSON(ctx, p.cache, cacheKey, &cached); err == nil && hit {
		return &cached, nil
	}

	query := fmt.Sprintf("$%s lang:en -is:retweet", ticker)
	endpoint := fmt.Sprintf("%s?query=%s&max_results=50&tweet.fields=public_metrics",
		p.searchURL, url.QueryEscape(query))

	resp, err := doWithRetries(ctx, p.client, func() (*http.Request, error) {
		req, err := http.NewRequest(http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+p.bearer)
		return req, nil
	}, p.maxRetries)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: twitter status %d", ErrUnavailable, resp.StatusCode)
	}

	var body twitterResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode twitter response: %w", err)
	}
	if len(body.Data) == 0 {
		return nil, ErrNotFound
	}

	type scored struct {
		ref   domain.TweetRef
		score int
	}
	var pos, neg, neu int
	var all []scored
	hashtags := map[string]int{}
	for _, tweet := range body.Data {
		for _, tag := range extractHashtags(tweet.Text) {
			hashtags[tag]++
		}
		score := scoreTweet(tweet.Text)
		sentiment := "neutral"
		switch {
		case score > 0:
			pos++
			sentiment = "positive"
		case score < 0:
			neg++
			sentiment = "negative"
		default:
			neu++
		}
		all = append(all, scored{
			ref: domain.TweetRef{
				URL:        "https://twitter.com/i/web/status/" + tweet.ID,
				Sentiment:  sentiment,
				Engagement: tweet.PublicMetrics.LikeCount + tweet.PublicMetrics.RetweetCount,
			},
			score: score,
		})
	}

	total := pos + neg + neu
	posPct := 100 * pos / total
	negPct := 100 * neg / total
	mood := "neutral"
	if posPct > negPct+10 {
		mood = "positive"
	} else if negPct > posPct+10 {
		mood = "negative"
	}

	sort.Slice(all, func(i, j int) bool { return all[i].ref.Engagement > all[j].ref.Engagement })
	var cited []domain.TweetRef
	for _, s := range all {
		if len(cited) == 4 {
			break
		}
		cited = append(cited, s.ref)
	}

	result := &domain.SocialSentiment{
		Symbol: ticker,
		Mood:   mood,
		Summary: fmt.Sprintf("Social sentiment for %s: %d%% positive, %d%% negative, %d%% neutral (based on %d recent tweets)",
			ticker, posPct, negPct, 100-posPct-negPct, total),
		TrendingHashtags: topHashtags(hashtags, 3),
		CitedTweets:      cited,
	}
	if err := cache.SetJSON(ctx, p.cache, cacheKey, result, p.cacheTTL); err != nil {
		span.RecordError(err)
	}
	return result, nil
}

func extractHashtags(text string) []string {
	var tags []string
	for _, field := range strings.Fields(text) {
		if !strings.HasPrefix(field, "#") {
			continue
		}
		tag := strings.ToLower(strings.TrimFunc(field, func(r rune) bool {
			return !('a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || '0' <= r && r <= '9' || r == '#')
		}))
		if len(tag) > 1 {
			tags = append(tags, tag)
		}
	}
	return tags
}

func topHashtags(counts map[string]int, n int) []string {
	tags := make([]string, 0, len(counts))
	for tag := range counts {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool {
		if counts[tags[i]] != counts[tags[j]] {
			return counts[tags[i]] > counts[tags[j]]
		}
		return tags[i] < tags[j]
	})
	if len(tags) > n {
		tags = tags[:n]
	}
	return tags
}

func scoreTweet(text string) int {
	lower := strings.ToLower(text)
	score := 0
	for _, w := range positiveWords {
		if strings.Contains(lower, w) {
			score++
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(lower, w) {
			score--
		}
	}
	return score
}
