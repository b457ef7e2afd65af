package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const twitterFixture = `{
	"data": [
		{"id": "1", "text": "$SOL is so bullish, moon soon #solana", "public_metrics": {"like_count": 120, "retweet_count": 30}},
		{"id": "2", "text": "$SOL breakout incoming, huge gains #solana #altseason", "public_metrics": {"like_count": 80, "retweet_count": 10}},
		{"id": "3", "text": "$SOL looks bearish, might dump", "public_metrics": {"like_count": 5, "retweet_count": 1}},
		{"id": "4", "text": "watching $SOL charts today", "public_metrics": {"like_count": 2, "retweet_count": 0}}
	]
}`

func TestGetSocialSentiment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer token" {
			t.Errorf("unexpected auth header %q", got)
		}
		if q := r.URL.Query().Get("query"); !strings.Contains(q, "$SOL") {
			t.Errorf("query missing cashtag: %q", q)
		}
		w.Write([]byte(twitterFixture))
	}))
	defer srv.Close()

	p := NewTwitterProvider(testTracer(), nil, "token", 5*time.Second, time.Minute, 0)
	p.searchURL = srv.URL

	got, err := p.GetSocialSentiment(context.Background(), "sol")
	if err != nil {
		t.Fatalf("GetSocialSentiment failed: %v", err)
	}
	if got.Symbol != "SOL" {
		t.Fatalf("expected SOL, got %s", got.Symbol)
	}
	if got.Mood != "positive" {
		t.Fatalf("expected positive mood, got %s", got.Mood)
	}
	if !strings.Contains(got.Summary, "4 recent tweets") {
		t.Fatalf("unexpected summary: %s", got.Summary)
	}
	if len(got.TrendingHashtags) == 0 || got.TrendingHashtags[0] != "#solana" {
		t.Fatalf("expected #solana as top hashtag, got %v", got.TrendingHashtags)
	}
	if len(got.CitedTweets) != 4 {
		t.Fatalf("expected 4 cited tweets, got %d", len(got.CitedTweets))
	}
	if got.CitedTweets[0].Engagement != 150 {
		t.Fatalf("expected highest engagement first, got %+v", got.CitedTweets[0])
	}
}

func TestSocialSentimentNoTweets(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": []}`))
	}))
	defer srv.Close()

	p := NewTwitterProvider(testTracer(), nil, "token", 5*time.Second, time.Minute, 0)
	p.searchURL = srv.URL

	if _, err := p.GetSocialSentiment(context.Background(), "SOL"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for no tweets, got %v", err)
	}
}

func TestSocialSentimentWithoutBearer(t *testing.T) {
	p := NewTwitterProvider(testTracer(), nil, "", 5*time.Second, time.Minute, 0)
	if _, err := p.GetSocialSentiment(context.Background(), "SOL"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable without bearer, got %v", err)
	}
}

func TestScoreTweet(t *testing.T) {
	if scoreTweet("this is so bullish, moon!") <= 0 {
		t.Fatal("expected positive score")
	}
	if scoreTweet("total scam, will dump") >= 0 {
		t.Fatal("expected negative score")
	}
	if scoreTweet("just watching the chart") != 0 {
		t.Fatal("expected neutral score")
	}
}
